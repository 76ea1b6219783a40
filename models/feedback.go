package models

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackRating is the user's verdict on a generated answer
type FeedbackRating string

const (
	RatingPositive FeedbackRating = "positive"
	RatingNegative FeedbackRating = "negative"
)

// Feedback represents user feedback on one chat answer
type Feedback struct {
	ID        uuid.UUID      `json:"id"`
	UserID    *uuid.UUID     `json:"user_id,omitempty"`
	Question  string         `json:"question"`
	Answer    string         `json:"answer"`
	Rating    FeedbackRating `json:"rating"`
	Comment   *string        `json:"comment,omitempty"`
	Citations []string       `json:"citations,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
