package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	embeddingBatchSize = 16
	maxRetries         = 3
	initialBackoff     = time.Second
)

// EmbeddingService generates query and document embeddings through an
// Azure OpenAI embedding deployment.
type EmbeddingService struct {
	client     *openai.Client
	deployment string
	dimensions int
}

// NewEmbeddingService creates an embedding service around an existing client
func NewEmbeddingService(client *openai.Client, deployment string) *EmbeddingService {
	return &EmbeddingService{
		client:     client,
		deployment: deployment,
		dimensions: 1536,
	}
}

// NewEmbeddingServiceFromEnv builds the Azure OpenAI client from environment
// variables (AZURE_OPENAI_ENDPOINT, AZURE_OPENAI_API_KEY,
// AZURE_OPENAI_EMBEDDING_DEPLOYMENT).
func NewEmbeddingServiceFromEnv() (*EmbeddingService, error) {
	endpoint := os.Getenv("AZURE_OPENAI_ENDPOINT")
	apiKey := os.Getenv("AZURE_OPENAI_API_KEY")
	if endpoint == "" || apiKey == "" {
		return nil, errors.New("AZURE_OPENAI_ENDPOINT and AZURE_OPENAI_API_KEY environment variables are required")
	}

	deployment := os.Getenv("AZURE_OPENAI_EMBEDDING_DEPLOYMENT")
	if deployment == "" {
		deployment = "text-embedding-ada-002"
	}

	cfg := openai.DefaultAzureConfig(apiKey, endpoint)
	client := openai.NewClientWithConfig(cfg)

	return NewEmbeddingService(client, deployment), nil
}

// Dimensions returns the embedding vector size
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// Embed generates an embedding for a single text
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, errors.New("cannot embed empty text")
	}

	vectors, err := s.embedWithRetry(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch generates embeddings for many texts, batching requests to the
// embedding deployment.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += embeddingBatchSize {
		end := start + embeddingBatchSize
		if end > len(texts) {
			end = len(texts)
		}

		vectors, err := s.embedWithRetry(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("embedding batch starting at %d: %w", start, err)
		}
		out = append(out, vectors...)
	}

	return out, nil
}

// embedWithRetry calls the embedding API with exponential backoff, since
// transient throttling is the common failure mode on shared deployments.
func (s *EmbeddingService) embedWithRetry(ctx context.Context, inputs []string) ([][]float32, error) {
	backoff := initialBackoff

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		resp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Model: openai.EmbeddingModel(s.deployment),
			Input: inputs,
		})
		if err != nil {
			lastErr = err
			continue
		}
		if len(resp.Data) != len(inputs) {
			lastErr = fmt.Errorf("expected %d embeddings, got %d", len(inputs), len(resp.Data))
			continue
		}

		vectors := make([][]float32, len(inputs))
		for _, d := range resp.Data {
			vectors[d.Index] = d.Embedding
		}
		return vectors, nil
	}

	return nil, fmt.Errorf("embedding request failed after %d attempts: %w", maxRetries, lastErr)
}
