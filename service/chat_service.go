package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"cpr-rag-backend/citation"
	"cpr-rag-backend/models"
	"cpr-rag-backend/repository"

	openai "github.com/sashabaranov/go-openai"
)

var (
	ErrEmptyQuestion    = errors.New("question must not be empty")
	ErrEmbeddingFailed  = errors.New("failed to embed question")
	ErrSearchFailed     = errors.New("failed to search the index")
	ErrNoSources        = errors.New("no sources found for question")
	ErrGenerationFailed = errors.New("failed to generate answer")
)

const defaultTopK = 5

const systemPrompt = `You are an assistant answering questions about the UK Civil Procedure Rules and court guides.
Answer ONLY from the numbered sources below. Cite every fact with the source number in square brackets, e.g. [1].
If the sources do not contain the answer, say you do not know. Do not invent rules or citations.`

// ChatService answers questions by retrieving indexed CPR chunks and
// generating a grounded, citation-backed response.
type ChatService struct {
	chunkRepo      *repository.ChunkRepository
	embedder       *EmbeddingService
	client         *openai.Client
	chatDeployment string
	processor      *citation.SourceProcessor
	topK           int
}

// ChatServiceOption is a functional option for ChatService
type ChatServiceOption func(*ChatService)

// ChatWithChunkRepository sets the chunk repository
func ChatWithChunkRepository(repo *repository.ChunkRepository) ChatServiceOption {
	return func(s *ChatService) {
		s.chunkRepo = repo
	}
}

// ChatWithEmbeddingService sets the embedding service
func ChatWithEmbeddingService(embedder *EmbeddingService) ChatServiceOption {
	return func(s *ChatService) {
		s.embedder = embedder
	}
}

// ChatWithOpenAIClient sets the Azure OpenAI client used for generation
func ChatWithOpenAIClient(client *openai.Client) ChatServiceOption {
	return func(s *ChatService) {
		s.client = client
	}
}

// ChatWithChatDeployment sets the chat completion deployment name
func ChatWithChatDeployment(deployment string) ChatServiceOption {
	return func(s *ChatService) {
		s.chatDeployment = deployment
	}
}

// ChatWithTopK sets how many chunks retrieval returns
func ChatWithTopK(k int) ChatServiceOption {
	return func(s *ChatService) {
		s.topK = k
	}
}

// NewChatService creates a new chat service
func NewChatService(opts ...ChatServiceOption) *ChatService {
	s := &ChatService{
		processor: citation.NewSourceProcessor(),
		topK:      defaultTopK,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.chatDeployment == "" {
		s.chatDeployment = os.Getenv("AZURE_OPENAI_CHAT_DEPLOYMENT")
	}
	if s.chatDeployment == "" {
		s.chatDeployment = "gpt-4o"
	}
	return s
}

// AskRequest represents one question to the chat backend
type AskRequest struct {
	Question            string
	SourceFileFilter    string
	UseSemanticCaptions bool
}

// AskResult carries the generated answer with its citable sources
type AskResult struct {
	Answer  string                   `json:"answer"`
	Sources []models.ProcessedSource `json:"sources"`
}

// Ask runs the retrieve-then-read pipeline: embed the question, search the
// chunk index, build the enumerated source list with citations, and ask the
// chat deployment for a grounded answer.
func (s *ChatService) Ask(ctx context.Context, req AskRequest) (*AskResult, error) {
	if s.chunkRepo == nil {
		return nil, errors.New("chunk repository not set")
	}
	if s.embedder == nil {
		return nil, errors.New("embedding service not set")
	}
	if s.client == nil {
		return nil, errors.New("openai client not set")
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	queryVector, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}

	fragments, err := s.chunkRepo.Search(ctx, queryVector, req.SourceFileFilter, s.topK)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	if len(fragments) == 0 {
		return nil, ErrNoSources
	}

	sources := s.processor.ProcessDocuments(fragments, req.UseSemanticCaptions, false)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.chatDeployment,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(question, sources)},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrGenerationFailed
	}

	return &AskResult{
		Answer:  resp.Choices[0].Message.Content,
		Sources: sources,
	}, nil
}

// buildUserPrompt enumerates the processed sources as "[i]: citation: content"
// ahead of the question, matching the numbering the system prompt asks the
// model to cite.
func buildUserPrompt(question string, sources []models.ProcessedSource) string {
	var sb strings.Builder
	sb.WriteString("Sources:\n")
	for i, src := range sources {
		sb.WriteString(fmt.Sprintf("[%d]: %s: %s\n", i+1, src.Citation, src.Content))
	}
	sb.WriteString("\nQuestion: ")
	sb.WriteString(question)
	return sb.String()
}
