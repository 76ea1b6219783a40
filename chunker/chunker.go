// Package chunker splits long legal documents into token-bounded segments
// for embedding, preferring breaks at legal-structural boundaries (Parts,
// Practice Directions, Rules, numbered paragraphs) over breaks mid-sentence.
package chunker

import (
	"fmt"
	"regexp"
	"strings"

	"cpr-rag-backend/models"
)

const (
	// DefaultMaxTokens is the per-chunk token budget.
	DefaultMaxTokens = 7500

	// DefaultOverlapTokens is reserved for overlap-based continuity between
	// adjacent chunks. The boundary walk does not insert overlap today.
	DefaultOverlapTokens = 200

	// charsPerToken is the approximate character cost of one token, used
	// only for sizing heuristics and the hard-cut backstop.
	charsPerToken = 4
)

// Chunker produces boundary-aware chunks from one document. It is stateless
// and safe for concurrent use as long as the TokenCounter is.
type Chunker struct {
	maxTokens     int
	overlapTokens int
	counter       TokenCounter
}

// Option configures a Chunker
type Option func(*Chunker)

// WithMaxTokens sets the per-chunk token budget
func WithMaxTokens(n int) Option {
	return func(c *Chunker) {
		c.maxTokens = n
	}
}

// WithOverlapTokens sets the reserved overlap budget
func WithOverlapTokens(n int) Option {
	return func(c *Chunker) {
		c.overlapTokens = n
	}
}

// WithTokenCounter sets the token counter implementation
func WithTokenCounter(tc TokenCounter) Option {
	return func(c *Chunker) {
		c.counter = tc
	}
}

// New creates a chunker with the given options. Defaults: 7500 max tokens,
// 200 overlap tokens, estimator-based counting.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		maxTokens:     DefaultMaxTokens,
		overlapTokens: DefaultOverlapTokens,
		counter:       NewEstimatorCounter(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// rawChunk is a chunk before the context-header formatting pass.
type rawChunk struct {
	content string
	section string
}

// Chunk splits documentText into token-bounded chunks. A document that fits
// the budget comes back as a single chunk with the text untouched. Longer
// documents are partitioned in order with no gaps: concatenating the raw
// chunk contents reproduces the source text exactly.
func (c *Chunker) Chunk(documentText, documentID, title string) ([]models.Chunk, error) {
	total, err := c.counter.CountTokens(documentText)
	if err != nil {
		return nil, fmt.Errorf("counting document tokens: %w", err)
	}

	if total <= c.maxTokens {
		return []models.Chunk{{
			Text:          documentText,
			TokenCount:    total,
			ChunkIndex:    0,
			TotalChunks:   1,
			NeedsChunking: false,
		}}, nil
	}

	bounds := findBoundaries(documentText)

	var raw []rawChunk
	if len(bounds) == 0 {
		raw, err = c.chunkBySentences(documentText)
	} else {
		raw, err = c.walkBoundaries(documentText, bounds)
	}
	if err != nil {
		return nil, err
	}

	return c.formatChunks(raw, title)
}

// walkBoundaries accumulates text between boundary markers, emitting a chunk
// whenever the accumulated candidate would exceed the token budget. The most
// recent Part/Practice Direction/Rule/major-section header is carried as the
// section context of each emitted chunk.
func (c *Chunker) walkBoundaries(text string, bounds []boundary) ([]rawChunk, error) {
	var out []rawChunk
	cut := 0
	section := ""

	for _, b := range bounds {
		if b.pos <= cut {
			if sectionKinds[b.kind] && b.header != "" {
				section = b.header
			}
			continue
		}

		for {
			cand := text[cut:b.pos]
			n, err := c.counter.CountTokens(cand)
			if err != nil {
				return nil, fmt.Errorf("counting candidate tokens: %w", err)
			}
			if n <= c.maxTokens {
				break
			}
			br := c.findSafeBreak(cand)
			if br <= 0 || br >= len(cand) {
				// No usable break inside the candidate: take it whole
				out = append(out, rawChunk{content: cand, section: section})
				cut = b.pos
				break
			}
			out = append(out, rawChunk{content: text[cut : cut+br], section: section})
			cut += br
		}

		if sectionKinds[b.kind] && b.header != "" {
			section = b.header
		}
	}

	tail := text[cut:]
	if tail != "" {
		n, err := c.counter.CountTokens(tail)
		if err != nil {
			return nil, fmt.Errorf("counting tail tokens: %w", err)
		}
		if n > c.maxTokens {
			split, err := c.splitOversized(tail, section)
			if err != nil {
				return nil, err
			}
			out = append(out, split...)
		} else {
			out = append(out, rawChunk{content: tail, section: section})
		}
	}

	return out, nil
}

// splitOversized breaks a span that still exceeds the budget after the
// boundary walk, sliding a window of roughly maxTokens worth of characters
// and reusing the safe-break search inside each window.
func (c *Chunker) splitOversized(span, section string) ([]rawChunk, error) {
	var out []rawChunk
	windowChars := c.maxTokens * charsPerToken

	remaining := span
	for {
		n, err := c.counter.CountTokens(remaining)
		if err != nil {
			return nil, fmt.Errorf("counting window tokens: %w", err)
		}
		if n <= c.maxTokens {
			break
		}

		window := remaining
		if len(window) > windowChars {
			window = window[:windowChars]
		}
		br := c.findSafeBreak(window)
		if br <= 0 || br >= len(remaining) {
			break
		}
		out = append(out, rawChunk{content: remaining[:br], section: section})
		remaining = remaining[br:]
	}

	if remaining != "" {
		out = append(out, rawChunk{content: remaining, section: section})
	}
	return out, nil
}

// Break-point classes in priority order. Offsets are byte positions where
// the chunk ends (the break falls after double newlines and sentence ends,
// and just after the newline that precedes a paragraph marker).
var (
	reDoubleBreak     = regexp.MustCompile(`\n[ \t]*\n`)
	reSentenceNewline = regexp.MustCompile(`[.!?][ \t]*\n`)
	reParaMarker      = regexp.MustCompile(`\n\((?:[a-z]|\d{1,2})\)`)
	reSentenceEnd     = regexp.MustCompile(`[.!?][ \t]`)
)

// findSafeBreak picks a break offset inside span. Each break class is tried
// in priority order; within a class the match closest to 70% of the span
// length wins, biasing toward late breaks without leaving tiny trailers.
// Breaks that would produce a chunk under 30% of the token budget are
// rejected. When nothing qualifies, the hard cut at maxTokens*4 characters
// is the backstop.
func (c *Chunker) findSafeBreak(span string) int {
	hardCut := c.maxTokens * charsPerToken
	if hardCut >= len(span) {
		hardCut = len(span)
	}
	minChars := (c.maxTokens * charsPerToken * 3) / 10
	target := (len(span) * 7) / 10

	classes := []struct {
		re    *regexp.Regexp
		atEnd bool // break after the match instead of inside it
	}{
		{reDoubleBreak, true},
		{reSentenceNewline, true},
		{reParaMarker, false},
		{reSentenceEnd, true},
	}

	for _, class := range classes {
		best := -1
		bestDist := -1
		for _, loc := range class.re.FindAllStringIndex(span, -1) {
			off := loc[1]
			if !class.atEnd {
				// Break right after the newline, before the (a)/(1) marker
				off = loc[0] + 1
			}
			if off < minChars || off > hardCut || off >= len(span) {
				continue
			}
			dist := off - target
			if dist < 0 {
				dist = -dist
			}
			if best == -1 || dist < bestDist {
				best = off
				bestDist = dist
			}
		}
		if best != -1 {
			return best
		}
	}

	return hardCut
}

var sentenceEndings = map[rune]bool{'.': true, '!': true, '?': true}

// chunkBySentences is the fallback for documents with no recognizable legal
// structure: sentences accumulate into the current chunk until the next one
// would blow the budget. All bytes of the source, including inter-sentence
// whitespace, are preserved.
func (c *Chunker) chunkBySentences(text string) ([]rawChunk, error) {
	sentences := splitSentences(text)

	var out []rawChunk
	var current strings.Builder
	currentTokens := 0

	for _, s := range sentences {
		n, err := c.counter.CountTokens(s)
		if err != nil {
			return nil, fmt.Errorf("counting sentence tokens: %w", err)
		}
		if current.Len() > 0 && currentTokens+n > c.maxTokens {
			out = append(out, rawChunk{content: current.String()})
			current.Reset()
			currentTokens = 0
		}
		current.WriteString(s)
		currentTokens += n
	}
	if current.Len() > 0 {
		out = append(out, rawChunk{content: current.String()})
	}

	return out, nil
}

// splitSentences cuts text after sentence-ending punctuation followed by
// whitespace. No bytes are dropped or trimmed: the concatenation of the
// returned slices is the input.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	runes := []rune(text)
	byteOff := 0

	for i, r := range runes {
		next := byteOff + len(string(r))
		if sentenceEndings[r] && i+1 < len(runes) &&
			(runes[i+1] == ' ' || runes[i+1] == '\n' || runes[i+1] == '\t') {
			sentences = append(sentences, text[start:next])
			start = next
		}
		byteOff = next
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}

// formatChunks runs the header-injection pass. Multi-chunk documents get a
// context header naming the document, the nearest section heading and the
// chunk's position; single chunks pass through untouched.
func (c *Chunker) formatChunks(raw []rawChunk, title string) ([]models.Chunk, error) {
	total := len(raw)
	chunks := make([]models.Chunk, 0, total)

	for i, rc := range raw {
		text := rc.content
		if total > 1 {
			var header strings.Builder
			header.WriteString("Document: " + title + "\n")
			if rc.section != "" {
				header.WriteString("Section: " + rc.section + "\n")
			}
			header.WriteString(fmt.Sprintf("Part %d of %d\n\n", i+1, total))
			text = header.String() + rc.content
		}

		n, err := c.counter.CountTokens(text)
		if err != nil {
			return nil, fmt.Errorf("counting chunk tokens: %w", err)
		}

		chunks = append(chunks, models.Chunk{
			Text:           text,
			TokenCount:     n,
			ChunkIndex:     i,
			TotalChunks:    total,
			NeedsChunking:  total > 1,
			SectionContext: rc.section,
		})
	}

	return chunks, nil
}
