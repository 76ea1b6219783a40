package chunker

import (
	"strings"
	"unicode"
)

// TokenCounter counts tokens the way the target embedding model's tokenizer
// would. Implementations must be deterministic and monotonic in text length.
type TokenCounter interface {
	CountTokens(text string) (int, error)
}

// EstimatorCounter approximates token counts without a model tokenizer.
// English prose averages roughly four characters per token; short words and
// punctuation each cost at least one token, so the estimate blends a
// character-based count with a word count and takes the larger of the two.
type EstimatorCounter struct{}

// NewEstimatorCounter creates an estimator-based token counter
func NewEstimatorCounter() *EstimatorCounter {
	return &EstimatorCounter{}
}

// CountTokens estimates the token count of text. It never fails.
func (e *EstimatorCounter) CountTokens(text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	chars := len(text)
	charEstimate := (chars + 3) / 4

	words := 0
	inWord := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			inWord = false
			continue
		}
		if !inWord {
			words++
			inWord = true
		}
	}

	// Punctuation-heavy legal text tokenizes denser than plain prose
	punct := strings.Count(text, "(") + strings.Count(text, ")") +
		strings.Count(text, ".") + strings.Count(text, ";")
	wordEstimate := words + punct/2

	if wordEstimate > charEstimate {
		return wordEstimate, nil
	}
	return charEstimate, nil
}
