package service

import (
	"strings"
	"testing"

	"cpr-rag-backend/models"
)

func TestBuildUserPrompt(t *testing.T) {
	sources := []models.ProcessedSource{
		{Citation: "7.1, PART 7", Content: "Proceedings are started when the court issues a claim form."},
		{Citation: "Rule 31.1, PART 31", Content: "This Part sets out rules about disclosure."},
	}

	prompt := buildUserPrompt("How do I start a claim?", sources)

	if !strings.Contains(prompt, "[1]: 7.1, PART 7: Proceedings are started") {
		t.Errorf("Prompt missing enumerated first source:\n%s", prompt)
	}
	if !strings.Contains(prompt, "[2]: Rule 31.1, PART 31:") {
		t.Errorf("Prompt missing enumerated second source:\n%s", prompt)
	}
	if !strings.HasSuffix(prompt, "Question: How do I start a claim?") {
		t.Errorf("Prompt must end with the question:\n%s", prompt)
	}

	if strings.Index(prompt, "[1]:") > strings.Index(prompt, "[2]:") {
		t.Error("Sources must keep their retrieval order")
	}
}

func TestNewChatServiceDefaults(t *testing.T) {
	s := NewChatService()
	if s.topK != defaultTopK {
		t.Errorf("Default topK: got %d, want %d", s.topK, defaultTopK)
	}
	if s.processor == nil {
		t.Error("Processor must be initialized")
	}
}
