package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cpr-rag-backend/chunker"
	"cpr-rag-backend/citation"
	"cpr-rag-backend/models"
	"cpr-rag-backend/repository"
	"cpr-rag-backend/storage"
)

var (
	ErrEmptyDocument  = errors.New("document has no text")
	ErrChunkingFailed = errors.New("failed to chunk document")
	ErrStoreFailed    = errors.New("failed to store chunks")
)

// IngestService runs the ingestion pipeline for one scraped document:
// chunk, embed, store, snapshot.
type IngestService struct {
	chunker   *chunker.Chunker
	builder   *citation.Builder
	embedder  *EmbeddingService
	docRepo   *repository.DocumentRepository
	chunkRepo *repository.ChunkRepository
	store     storage.Storage
}

// IngestServiceOption is a functional option for IngestService
type IngestServiceOption func(*IngestService)

// IngestWithChunker sets the document chunker
func IngestWithChunker(c *chunker.Chunker) IngestServiceOption {
	return func(s *IngestService) {
		s.chunker = c
	}
}

// IngestWithEmbeddingService sets the embedding service
func IngestWithEmbeddingService(embedder *EmbeddingService) IngestServiceOption {
	return func(s *IngestService) {
		s.embedder = embedder
	}
}

// IngestWithDocumentRepository sets the document repository
func IngestWithDocumentRepository(repo *repository.DocumentRepository) IngestServiceOption {
	return func(s *IngestService) {
		s.docRepo = repo
	}
}

// IngestWithChunkRepository sets the chunk repository
func IngestWithChunkRepository(repo *repository.ChunkRepository) IngestServiceOption {
	return func(s *IngestService) {
		s.chunkRepo = repo
	}
}

// IngestWithStorage sets the raw-document snapshot store
func IngestWithStorage(store storage.Storage) IngestServiceOption {
	return func(s *IngestService) {
		s.store = store
	}
}

// NewIngestService creates a new ingestion service
func NewIngestService(opts ...IngestServiceOption) *IngestService {
	s := &IngestService{
		chunker: chunker.New(),
		builder: citation.NewBuilder(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IngestResult reports what one document ingestion produced
type IngestResult struct {
	DocumentID   string
	ChunksStored int
	Skipped      bool
}

// IngestDocument chunks a scraped document, embeds every chunk and stores
// the rows under "{document_id}_chunk_{i:03d}" IDs. Documents that already
// have chunks in the index are skipped; call Reingest to replace them.
func (s *IngestService) IngestDocument(ctx context.Context, doc models.LegalDocument) (*IngestResult, error) {
	if s.embedder == nil {
		return nil, errors.New("embedding service not set")
	}
	if s.docRepo == nil || s.chunkRepo == nil {
		return nil, errors.New("repositories not set")
	}
	if strings.TrimSpace(doc.FullText) == "" {
		return nil, ErrEmptyDocument
	}

	count, err := s.chunkRepo.CountByParent(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}
	if count > 0 {
		return &IngestResult{DocumentID: doc.ID, Skipped: true}, nil
	}

	return s.ingest(ctx, doc)
}

// Reingest removes a document's existing chunks and ingests it fresh
func (s *IngestService) Reingest(ctx context.Context, doc models.LegalDocument) (*IngestResult, error) {
	if err := s.chunkRepo.DeleteByParent(ctx, doc.ID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}
	return s.ingest(ctx, doc)
}

func (s *IngestService) ingest(ctx context.Context, doc models.LegalDocument) (*IngestResult, error) {
	chunks, err := s.chunker.Chunk(doc.FullText, doc.ID, doc.Title)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChunkingFailed, err)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, err
	}

	if err := s.docRepo.Upsert(ctx, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}

	for i, c := range chunks {
		row := &models.DocumentChunk{
			ID:             fmt.Sprintf("%s_chunk_%03d", doc.ID, i),
			ParentID:       doc.ID,
			Content:        c.Text,
			SourcePage:     s.sourcePageFor(doc.ID, c.Text, i),
			SourceFile:     doc.Title,
			ChunkIndex:     c.ChunkIndex,
			TotalChunks:    c.TotalChunks,
			SectionContext: c.SectionContext,
			Embedding:      embeddings[i],
		}
		if err := s.chunkRepo.Insert(ctx, row); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreFailed, err)
		}
	}

	if s.store != nil {
		reader := strings.NewReader(doc.FullText)
		if _, err := s.store.Upload(ctx, doc.ID, doc.ID+".txt", reader); err != nil {
			return nil, fmt.Errorf("%w: snapshot upload: %v", ErrStoreFailed, err)
		}
	}

	return &IngestResult{DocumentID: doc.ID, ChunksStored: len(chunks)}, nil
}

// sourcePageFor derives the chunk's sourcepage identifier. When the chunk
// opens with a recognizable subsection the page encodes it as
// "<docID>-<subsection>" so the citation pipeline can decode it back;
// otherwise the chunk ordinal stands in.
func (s *IngestService) sourcePageFor(docID, content string, index int) string {
	sub := s.builder.ExtractSubsection(models.SourceFragment{Content: content})
	if sub != "" && !strings.Contains(sub, " ") {
		return fmt.Sprintf("%s-%s", docID, sub)
	}
	return fmt.Sprintf("%s_chunk_%03d", docID, index)
}
