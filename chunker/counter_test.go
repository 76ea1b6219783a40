package chunker

import (
	"strings"
	"testing"
)

func TestEstimatorCounterBasics(t *testing.T) {
	e := NewEstimatorCounter()

	empty, err := e.CountTokens("")
	if err != nil {
		t.Fatalf("CountTokens failed: %v", err)
	}
	if empty != 0 {
		t.Errorf("Empty text: got %d tokens, want 0", empty)
	}

	short, _ := e.CountTokens("claim form")
	long, _ := e.CountTokens(strings.Repeat("claim form ", 100))
	if short <= 0 {
		t.Errorf("Non-empty text must count at least one token, got %d", short)
	}
	if long <= short {
		t.Errorf("Counter must be monotonic in length: %d then %d", short, long)
	}
}

func TestEstimatorCounterDeterministic(t *testing.T) {
	e := NewEstimatorCounter()
	text := "Rule 31.1 sets out the scope of disclosure; see also Rule 31.2."

	a, _ := e.CountTokens(text)
	b, _ := e.CountTokens(text)
	if a != b {
		t.Errorf("Counter must be deterministic: %d then %d", a, b)
	}
}
