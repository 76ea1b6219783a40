package citation

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"cpr-rag-backend/models"
)

// minSubsectionContentLen filters out heading-only spans with no usable
// body text.
const minSubsectionContentLen = 10

// headingPattern recognizes every subsection heading shape in one pass:
// word-prefixed references (Rule/CPR/Para[graph] n[.n]), letter-prefixed
// identifiers (A4.1, A4) and bare numeric identifiers (1.1).
var headingPattern = regexp.MustCompile(
	`^(?:(Rule|CPR|Para(?:graph)?)\s+(\d+(?:\.\d+)?)|([A-Z]\d+\.\d+)|(\d+\.\d+)|([A-Z]\d+))\b`)

// subsectionHeading is a heading located while scanning fragment content.
type subsectionHeading struct {
	line  int
	label string
}

// matchHeading returns the canonical label for a heading line, or "" when
// the line is not a heading. Word prefixes normalize to "Rule n", "CPR n"
// and "Para n"; token identifiers are upper-cased as matched.
func matchHeading(line string) string {
	m := headingPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return ""
	}
	switch {
	case m[1] != "":
		word := m[1]
		if strings.HasPrefix(word, "Para") {
			word = "Para"
		}
		return word + " " + m[2]
	case m[3] != "":
		return strings.ToUpper(m[3])
	case m[4] != "":
		return m[4]
	default:
		return strings.ToUpper(m[5])
	}
}

// ExtractMultipleSubsections detects fragments that actually contain two or
// more distinct legal subsections. Fewer than two headings means the
// fragment is a single citable unit and nil is returned. Each returned
// split spans from its heading line to the line before the next heading,
// sorted by the natural subsection order.
func (b *Builder) ExtractMultipleSubsections(frag models.SourceFragment) []models.SubsectionSplit {
	lines := strings.Split(frag.Content, "\n")

	var headings []subsectionHeading
	for i, line := range lines {
		if label := matchHeading(line); label != "" {
			headings = append(headings, subsectionHeading{line: i, label: label})
		}
	}
	if len(headings) < 2 {
		return nil
	}

	var splits []models.SubsectionSplit
	for i, h := range headings {
		end := len(lines)
		if i+1 < len(headings) {
			end = headings[i+1].line
		}
		content := strings.TrimSpace(strings.Join(lines[h.line:end], "\n"))
		if len(content) < minSubsectionContentLen {
			continue
		}
		splits = append(splits, models.SubsectionSplit{
			Subsection: h.label,
			Content:    content,
		})
	}

	sort.SliceStable(splits, func(i, j int) bool {
		return parseSortKey(splits[i].Subsection).less(parseSortKey(splits[j].Subsection))
	})
	return splits
}

// subsectionKind ranks subsection label categories for the natural sort.
type subsectionKind int

const (
	kindNumeric      subsectionKind = iota // 1.1
	kindAlphaNumeric                       // A4.1, A4
	kindRule                               // Rule 31.1, CPR 7, Para 5.2
	kindFallback                           // anything else
)

// sortKey is the tagged sort key for subsection labels: category rank,
// then alphabetic prefix, then major and minor numbers. The ordering is
// total across all four categories.
type sortKey struct {
	kind   subsectionKind
	prefix string
	major  int
	minor  int
}

var (
	numericLabel = regexp.MustCompile(`^(\d+)\.(\d+)$`)
	alphaLabel   = regexp.MustCompile(`^([A-Z]+)(\d+)(?:\.(\d+))?$`)
	wordLabel    = regexp.MustCompile(`^(Rule|CPR|Para) (\d+)(?:\.(\d+))?$`)
)

func parseSortKey(label string) sortKey {
	if m := numericLabel.FindStringSubmatch(label); m != nil {
		return sortKey{kind: kindNumeric, major: atoi(m[1]), minor: atoi(m[2])}
	}
	if m := alphaLabel.FindStringSubmatch(label); m != nil {
		return sortKey{kind: kindAlphaNumeric, prefix: m[1], major: atoi(m[2]), minor: atoi(m[3])}
	}
	if m := wordLabel.FindStringSubmatch(label); m != nil {
		return sortKey{kind: kindRule, prefix: strings.ToUpper(m[1]), major: atoi(m[2]), minor: atoi(m[3])}
	}
	return sortKey{kind: kindFallback, prefix: label}
}

func (k sortKey) less(other sortKey) bool {
	if k.kind != other.kind {
		return k.kind < other.kind
	}
	if k.prefix != other.prefix {
		return k.prefix < other.prefix
	}
	if k.major != other.major {
		return k.major < other.major
	}
	return k.minor < other.minor
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
