// Package citation derives human-legible legal citations from retrieved
// search-index fragments of UK Civil Procedure Rules and court guides, and
// splits fragments that span multiple subsections into independently
// citable units.
package citation

import (
	"fmt"
	"regexp"
	"strings"

	"cpr-rag-backend/models"
)

// maxContentScanLines caps how far into a fragment's content the subsection
// scan reaches, bounding regex cost on adversarial input.
const maxContentScanLines = 20

// Content-first subsection patterns, evaluated in order against the opening
// lines of a fragment. The first capture to hit wins.
var contentSubsectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^([A-Z]\d+\.\d+)\b`),         // A4.1
	regexp.MustCompile(`^(\d+\.\d+)\b`),              // 1.1
	regexp.MustCompile(`^([A-Z]\d+)\b`),              // A4
	regexp.MustCompile(`^(Rule \d+(?:\.\d+)?)\b`),    // Rule 31.1
	regexp.MustCompile(`^(Para \d+(?:\.\d+)?)\b`),    // Para 5.2
	regexp.MustCompile(`^(\d+\.\d+)$`),               // bare numbered line
}

// Encoded sourcepage shape: prefix-dash-subsection, e.g. PD3E-1.1 or
// cpr-part07-7.1. The prefix may itself contain dashes; the subsection is
// whatever follows the last one.
var encodedSourcePagePattern = regexp.MustCompile(`^[A-Za-z0-9-]+-([A-Z]?\d+(?:\.\d+)?)$`)

// Direct sourcepage patterns: the sourcepage itself starts with a
// subsection identifier.
var sourcePagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^([A-Z]\d+\.\d+)\b`),
	regexp.MustCompile(`^(\d+\.\d+)\b`),
	regexp.MustCompile(`^([A-Z]\d+)\b`),
	regexp.MustCompile(`^(Rule \d+(?:\.\d+)?)\b`),
	regexp.MustCompile(`^(Para \d+(?:\.\d+)?)\b`),
	regexp.MustCompile(`^(Part \d+)\b`),
}

// Builder extracts subsection identifiers and assembles citations.
// It is stateless and safe for concurrent use.
type Builder struct{}

// NewBuilder creates a citation builder
func NewBuilder() *Builder {
	return &Builder{}
}

// ExtractSubsection returns the subsection identifier of a fragment, or ""
// when none can be found. Content is consulted first, then the encoded
// sourcepage form, then the sourcepage directly.
func (b *Builder) ExtractSubsection(frag models.SourceFragment) string {
	lines := strings.Split(frag.Content, "\n")
	if len(lines) > maxContentScanLines {
		lines = lines[:maxContentScanLines]
	}
	for _, re := range contentSubsectionPatterns {
		for _, line := range lines {
			if m := re.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
				return m[1]
			}
		}
	}

	if m := encodedSourcePagePattern.FindStringSubmatch(frag.SourcePage); m != nil {
		return m[1]
	}

	for _, re := range sourcePagePatterns {
		if m := re.FindStringSubmatch(frag.SourcePage); m != nil {
			return m[1]
		}
	}

	return ""
}

// BuildEnhancedCitation assembles the fragment's citation string. Precedence:
// subsection+sourcepage+sourcefile, then subsection+sourcefile, then
// sourcepage+sourcefile, then sourcefile, then "Source <n>". A sourcepage
// that merely repeats the subsection (exactly, or as "<prefix>-<subsection>")
// is dropped as redundant.
func (b *Builder) BuildEnhancedCitation(frag models.SourceFragment, sourceIndex int) string {
	subsection := b.ExtractSubsection(frag)
	return assembleCitation(subsection, frag.SourcePage, frag.SourceFile, sourceIndex)
}

// assembleCitation applies the dedup rule and the precedence chain shared by
// the single-fragment and split-subsection paths.
func assembleCitation(subsection, sourcePage, sourceFile string, sourceIndex int) string {
	if subsection != "" && sourcePage != "" {
		if sourcePage == subsection {
			sourcePage = ""
		} else if i := strings.LastIndex(sourcePage, "-"); i > 0 && sourcePage[i+1:] == subsection {
			sourcePage = ""
		}
	}

	var parts []string
	if subsection != "" {
		parts = append(parts, subsection)
	}
	if sourcePage != "" {
		parts = append(parts, sourcePage)
	}
	if sourceFile != "" {
		parts = append(parts, sourceFile)
	}

	if len(parts) == 0 {
		return fmt.Sprintf("Source %d", sourceIndex)
	}
	return strings.Join(parts, ", ")
}
