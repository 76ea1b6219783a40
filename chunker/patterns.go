package chunker

import (
	"regexp"
	"sort"
	"strings"
)

// BoundaryKind classifies a structural boundary found in legal text.
type BoundaryKind int

const (
	BoundaryPracticeDirection BoundaryKind = iota
	BoundaryPart
	BoundaryMajorSection
	BoundaryRule
	BoundarySubRule
	BoundaryParagraph
	BoundaryTopicHeading
)

// boundary is one structural marker located in the document text.
type boundary struct {
	pos    int
	kind   BoundaryKind
	header string
}

// boundaryPattern pairs a compiled regex with the kind of boundary it finds.
// Patterns are evaluated in order; the first pattern to claim a position wins,
// so the more specific header shapes come before the generic ones.
type boundaryPattern struct {
	re   *regexp.Regexp
	kind BoundaryKind
}

var boundaryPatterns = []boundaryPattern{
	// PRACTICE DIRECTION 3E — COSTS MANAGEMENT
	{regexp.MustCompile(`(?m)^(PRACTICE DIRECTION\s+\d+[A-Z]?\s*[—–-]\s*\S.*)$`), BoundaryPracticeDirection},
	// PART 7 — HOW TO START PROCEEDINGS
	{regexp.MustCompile(`(?m)^(PART\s+\d+[A-Z]?\s*[—–-]\s*\S.*)$`), BoundaryPart},
	// Roman-numeral headings ("IV. Disclosure") and all-caps headers
	{regexp.MustCompile(`(?m)^((?:[IVXLC]+\.\s+\S.*)|(?:[A-Z][A-Z0-9 ,']{8,}))\s*$`), BoundaryMajorSection},
	// Rule 31.1
	{regexp.MustCompile(`(?m)^(Rule\s+\d+(?:\.\d+)?)\b`), BoundaryRule},
	// 7.1 Title of the sub-rule
	{regexp.MustCompile(`(?m)^(\d+\.\d+)\s+\S`), BoundarySubRule},
	// (a) / (1) paragraph markers at line start
	{regexp.MustCompile(`(?m)^\((?:[a-z]|\d{1,2})\)`), BoundaryParagraph},
	// Topic header immediately followed by a numbered clause
	{regexp.MustCompile(`(?m)^([A-Z][A-Za-z ,'()\-]{3,80})\n\d+\.\d+\s`), BoundaryTopicHeading},
}

// sectionKinds are the boundary kinds that update the tracked section
// context used in chunk headers.
var sectionKinds = map[BoundaryKind]bool{
	BoundaryMajorSection:      true,
	BoundaryPart:              true,
	BoundaryPracticeDirection: true,
	BoundaryRule:              true,
}

// findBoundaries scans the text with every boundary pattern and returns the
// matches sorted by position. When two patterns match at the same position
// the earlier pattern in the table keeps it.
func findBoundaries(text string) []boundary {
	claimed := make(map[int]bool)
	var bounds []boundary

	for _, bp := range boundaryPatterns {
		for _, loc := range bp.re.FindAllStringSubmatchIndex(text, -1) {
			pos := loc[0]
			if claimed[pos] {
				continue
			}
			claimed[pos] = true

			header := ""
			if len(loc) >= 4 && loc[2] >= 0 {
				header = strings.TrimSpace(text[loc[2]:loc[3]])
			}
			bounds = append(bounds, boundary{pos: pos, kind: bp.kind, header: header})
		}
	}

	sort.Slice(bounds, func(i, j int) bool { return bounds[i].pos < bounds[j].pos })
	return bounds
}
