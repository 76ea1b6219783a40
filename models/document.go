package models

import (
	"time"
)

// LegalDocument represents one scraped CPR page or court guide.
// It is created once by the scraper and never mutated afterwards.
type LegalDocument struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	FullText  string    `json:"full_text"`
	SourceURL string    `json:"source_url,omitempty"`
	ScrapedAt time.Time `json:"scraped_at,omitempty"`
}

// Chunk is a token-bounded slice of a legal document prepared for embedding.
type Chunk struct {
	Text           string `json:"text"`
	TokenCount     int    `json:"token_count"`
	ChunkIndex     int    `json:"chunk_index"`
	TotalChunks    int    `json:"total_chunks"`
	NeedsChunking  bool   `json:"needs_chunking"`
	SectionContext string `json:"section_context"`
}

// DocumentChunk is a chunk row as stored in the search index.
// The ID follows the "{document_id}_chunk_{i:03d}" convention so chunks
// sort naturally under their parent document.
type DocumentChunk struct {
	ID             string    `json:"id"`
	ParentID       string    `json:"parent_id"`
	Content        string    `json:"content"`
	SourcePage     string    `json:"sourcepage"`
	SourceFile     string    `json:"sourcefile"`
	ChunkIndex     int       `json:"chunk_index"`
	TotalChunks    int       `json:"total_chunks"`
	SectionContext string    `json:"section_context,omitempty"`
	Embedding      []float32 `json:"-"`
	Distance       float64   `json:"distance,omitempty"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}
