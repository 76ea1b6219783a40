package repository

import (
	"context"
	"fmt"

	"cpr-rag-backend/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DocumentRepository handles database operations for scraped documents
type DocumentRepository struct {
	db *pgxpool.Pool
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Upsert stores or refreshes a scraped document
func (r *DocumentRepository) Upsert(ctx context.Context, doc *models.LegalDocument) error {
	query := `
		INSERT INTO documents (id, title, full_text, source_url, scraped_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			full_text = EXCLUDED.full_text,
			source_url = EXCLUDED.source_url,
			scraped_at = EXCLUDED.scraped_at`

	_, err := r.db.Exec(ctx, query, doc.ID, doc.Title, doc.FullText, doc.SourceURL, doc.ScrapedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert document %s: %w", doc.ID, err)
	}
	return nil
}

// GetByID retrieves a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*models.LegalDocument, error) {
	doc := &models.LegalDocument{}
	query := `
		SELECT id, title, full_text, source_url, scraped_at
		FROM documents
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.Title,
		&doc.FullText,
		&doc.SourceURL,
		&doc.ScrapedAt,
	)
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// List returns all stored documents without their full text
func (r *DocumentRepository) List(ctx context.Context) ([]models.LegalDocument, error) {
	query := `
		SELECT id, title, source_url, scraped_at
		FROM documents
		ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []models.LegalDocument
	for rows.Next() {
		var doc models.LegalDocument
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.SourceURL, &doc.ScrapedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}

	return docs, nil
}
