package repository

import (
	"context"
	"fmt"

	"cpr-rag-backend/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// FeedbackRepository handles database operations for answer feedback
type FeedbackRepository struct {
	db *pgxpool.Pool
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create stores one feedback record
func (r *FeedbackRepository) Create(ctx context.Context, fb *models.Feedback) error {
	query := `
		INSERT INTO feedback (
			user_id, question, answer, rating, comment, citations
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		fb.UserID,
		fb.Question,
		fb.Answer,
		fb.Rating,
		fb.Comment,
		fb.Citations,
	).Scan(&fb.ID, &fb.CreatedAt)

	return err
}

// List returns the most recent feedback records, newest first
func (r *FeedbackRepository) List(ctx context.Context, limit int) ([]models.Feedback, error) {
	query := `
		SELECT id, user_id, question, answer, rating, comment, citations, created_at
		FROM feedback
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	var records []models.Feedback
	for rows.Next() {
		var fb models.Feedback
		err := rows.Scan(
			&fb.ID,
			&fb.UserID,
			&fb.Question,
			&fb.Answer,
			&fb.Rating,
			&fb.Comment,
			&fb.Citations,
			&fb.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		records = append(records, fb)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feedback: %w", err)
	}

	return records, nil
}
