package repository

import (
	"context"
	"fmt"
	"strings"

	"cpr-rag-backend/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EmbeddingDimensions is the vector size of the configured embedding model
// (Azure OpenAI text-embedding-ada-002).
const EmbeddingDimensions = 1536

// ChunkRepository handles database operations for document chunks
type ChunkRepository struct {
	db *pgxpool.Pool
}

// NewChunkRepository creates a new chunk repository
func NewChunkRepository(db *pgxpool.Pool) *ChunkRepository {
	return &ChunkRepository{db: db}
}

// formatVector formats an embedding vector as a string for pgx
func formatVector(embedding []float32) string {
	if len(embedding) == 0 {
		return "[]"
	}
	var parts []string
	for _, v := range embedding {
		parts = append(parts, fmt.Sprintf("%.6f", v))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// Insert stores one chunk row with its embedding
func (r *ChunkRepository) Insert(ctx context.Context, chunk *models.DocumentChunk) error {
	if len(chunk.Embedding) != EmbeddingDimensions {
		return fmt.Errorf("embedding must be %d dimensions, got %d", EmbeddingDimensions, len(chunk.Embedding))
	}

	query := `
		INSERT INTO document_chunks (
			id, parent_id, content, sourcepage, sourcefile,
			chunk_index, total_chunks, section_context, embedding
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::vector)
		ON CONFLICT (id) DO UPDATE SET
			content = EXCLUDED.content,
			sourcepage = EXCLUDED.sourcepage,
			sourcefile = EXCLUDED.sourcefile,
			section_context = EXCLUDED.section_context,
			embedding = EXCLUDED.embedding,
			updated_at = NOW()`

	_, err := r.db.Exec(
		ctx, query,
		chunk.ID,
		chunk.ParentID,
		chunk.Content,
		chunk.SourcePage,
		chunk.SourceFile,
		chunk.ChunkIndex,
		chunk.TotalChunks,
		chunk.SectionContext,
		formatVector(chunk.Embedding),
	)
	if err != nil {
		return fmt.Errorf("failed to insert chunk %s: %w", chunk.ID, err)
	}

	return nil
}

// Search performs a vector similarity search over stored chunks, optionally
// filtered to one source file, and returns fragments for the citation
// pipeline ordered by ascending distance.
func (r *ChunkRepository) Search(
	ctx context.Context,
	embedding []float32,
	sourceFile string,
	limit int,
) ([]models.SourceFragment, error) {
	if len(embedding) != EmbeddingDimensions {
		return nil, fmt.Errorf("embedding must be %d dimensions, got %d", EmbeddingDimensions, len(embedding))
	}

	vectorStr := formatVector(embedding)

	var fileFilter string
	var args []interface{}
	if sourceFile == "" {
		fileFilter = "TRUE"
		args = []interface{}{vectorStr, limit}
	} else {
		fileFilter = "sourcefile = $2"
		args = []interface{}{vectorStr, sourceFile, limit}
	}

	query := fmt.Sprintf(`
		SELECT
			id,
			content,
			sourcepage,
			sourcefile,
			embedding <=> $1::vector AS distance
		FROM document_chunks
		WHERE %s
		ORDER BY
			embedding <=> $1::vector
		LIMIT $%d`, fileFilter, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer rows.Close()

	var fragments []models.SourceFragment
	for rows.Next() {
		var frag models.SourceFragment
		err := rows.Scan(
			&frag.ID,
			&frag.Content,
			&frag.SourcePage,
			&frag.SourceFile,
			&frag.Distance,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		fragments = append(fragments, frag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chunks: %w", err)
	}

	return fragments, nil
}

// CountByParent returns how many chunks are stored for a document
func (r *ChunkRepository) CountByParent(ctx context.Context, parentID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM document_chunks WHERE parent_id = $1", parentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count chunks for %s: %w", parentID, err)
	}
	return count, nil
}

// DeleteByParent removes every chunk belonging to a document
func (r *ChunkRepository) DeleteByParent(ctx context.Context, parentID string) error {
	_, err := r.db.Exec(ctx,
		"DELETE FROM document_chunks WHERE parent_id = $1", parentID)
	if err != nil {
		return fmt.Errorf("failed to delete chunks for %s: %w", parentID, err)
	}
	return nil
}
