package handlers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestIsNotFound(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		expected bool
	}{
		{"bare_no_rows", pgx.ErrNoRows, true},
		{"wrapped_no_rows", fmt.Errorf("failed to get document: %w", pgx.ErrNoRows), true},
		{"other_error", errors.New("connection refused"), false},
		{"nil", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isNotFound(tc.err); got != tc.expected {
				t.Errorf("isNotFound(%v): got %v, want %v", tc.err, got, tc.expected)
			}
		})
	}
}
