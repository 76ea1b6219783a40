package repository

import (
	"strings"
	"testing"
)

func TestFormatVector(t *testing.T) {
	cases := []struct {
		name      string
		embedding []float32
		expected  string
	}{
		{"empty", nil, "[]"},
		{"single", []float32{0.5}, "[0.500000]"},
		{"multiple", []float32{1, -0.25, 0}, "[1.000000,-0.250000,0.000000]"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := formatVector(tc.embedding)
			if got != tc.expected {
				t.Errorf("formatVector: got %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestFormatVectorDimensions(t *testing.T) {
	embedding := make([]float32, EmbeddingDimensions)
	got := formatVector(embedding)
	if !strings.HasPrefix(got, "[") || !strings.HasSuffix(got, "]") {
		t.Errorf("Vector literal must be bracketed, got %q...", got[:10])
	}
	if strings.Count(got, ",") != EmbeddingDimensions-1 {
		t.Errorf("Expected %d separators, got %d", EmbeddingDimensions-1, strings.Count(got, ","))
	}
}
