package citation

import (
	"strings"
	"testing"

	"cpr-rag-backend/models"
)

func TestExtractSubsection(t *testing.T) {
	builder := NewBuilder()

	cases := []struct {
		name       string
		content    string
		sourcePage string
		expected   string
	}{
		{
			name:     "numeric_heading_in_content",
			content:  "1.1 Filing Requirements\nAll documents must be filed electronically.",
			expected: "1.1",
		},
		{
			name:     "letter_prefixed_heading",
			content:  "A4.1 Case management conference\nThe court will fix a CMC.",
			expected: "A4.1",
		},
		{
			name:     "rule_heading",
			content:  "Rule 31.1 Scope of this Part\nThis Part sets out rules about disclosure.",
			expected: "Rule 31.1",
		},
		{
			name:     "para_heading",
			content:  "Para 5.2 Skeleton arguments\nSkeleton arguments must be concise.",
			expected: "Para 5.2",
		},
		{
			name:     "heading_beyond_first_line",
			content:  "Disclosure and inspection\n\n31.2 Meaning of disclosure\nA party discloses a document.",
			expected: "31.2",
		},
		{
			name:       "encoded_sourcepage",
			content:    "",
			sourcePage: "PD3E-1.1",
			expected:   "1.1",
		},
		{
			name:       "encoded_sourcepage_letter_prefix",
			content:    "",
			sourcePage: "PD3E-A4.1",
			expected:   "A4.1",
		},
		{
			name:       "encoded_sourcepage_dashed_prefix",
			content:    "",
			sourcePage: "cpr-part07-7.1",
			expected:   "7.1",
		},
		{
			name:       "encoded_sourcepage_dashed_prefix_letter_subsection",
			content:    "",
			sourcePage: "cpr-pd3e-A4.1",
			expected:   "A4.1",
		},
		{
			name:       "direct_sourcepage_part",
			content:    "",
			sourcePage: "Part 36",
			expected:   "Part 36",
		},
		{
			name:       "direct_sourcepage_numeric",
			content:    "",
			sourcePage: "7.4 Particulars of claim",
			expected:   "7.4",
		},
		{
			// Patterns are ranked by specificity, not line position: the
			// numeric form on line 2 beats the Rule wording on line 1.
			name:     "pattern_order_beats_line_order",
			content:  "Rule 31.1 Scope of this Part\n31.2 Meaning of disclosure",
			expected: "31.2",
		},
		{
			name:     "nothing_recognizable",
			content:  "General guidance about listing hearings.",
			expected: "",
		},
		{
			name:     "heading_past_scan_cap_ignored",
			content:  strings.Repeat("filler line\n", 25) + "1.1 Too deep to find",
			expected: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			frag := models.SourceFragment{Content: tc.content, SourcePage: tc.sourcePage}
			got := builder.ExtractSubsection(frag)
			if got != tc.expected {
				t.Errorf("ExtractSubsection: got %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestBuildEnhancedCitation(t *testing.T) {
	builder := NewBuilder()

	cases := []struct {
		name     string
		frag     models.SourceFragment
		index    int
		expected string
	}{
		{
			name: "full_three_part_citation",
			frag: models.SourceFragment{
				Content:    "1.1 Filing Requirements\nDetails follow.",
				SourcePage: "Section A",
				SourceFile: "Commercial Court Guide",
			},
			index:    1,
			expected: "1.1, Section A, Commercial Court Guide",
		},
		{
			name: "dedup_exact_sourcepage",
			frag: models.SourceFragment{
				SourcePage: "1.1",
				SourceFile: "CPR",
			},
			index:    1,
			expected: "1.1, CPR",
		},
		{
			name: "dedup_encoded_sourcepage",
			frag: models.SourceFragment{
				SourcePage: "PD3E-1.1",
				SourceFile: "Practice Direction 3E",
			},
			index:    1,
			expected: "1.1, Practice Direction 3E",
		},
		{
			name: "dedup_encoded_sourcepage_dashed_prefix",
			frag: models.SourceFragment{
				SourcePage: "cpr-part07-7.1",
				SourceFile: "PART 7 — HOW TO START PROCEEDINGS",
			},
			index:    1,
			expected: "7.1, PART 7 — HOW TO START PROCEEDINGS",
		},
		{
			name: "sourcepage_and_file_only",
			frag: models.SourceFragment{
				Content:    "no markers here at all",
				SourcePage: "Annex B",
				SourceFile: "Chancery Guide",
			},
			index:    2,
			expected: "Annex B, Chancery Guide",
		},
		{
			name: "sourcefile_only",
			frag: models.SourceFragment{
				SourceFile: "Chancery Guide",
			},
			index:    3,
			expected: "Chancery Guide",
		},
		{
			name:     "fallback_source_index",
			frag:     models.SourceFragment{},
			index:    4,
			expected: "Source 4",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := builder.BuildEnhancedCitation(tc.frag, tc.index)
			if got != tc.expected {
				t.Errorf("BuildEnhancedCitation: got %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestCitationDedupAppearsOnce(t *testing.T) {
	builder := NewBuilder()
	frag := models.SourceFragment{SourcePage: "1.1", SourceFile: "CPR"}

	got := builder.BuildEnhancedCitation(frag, 1)
	if strings.Count(got, "1.1") != 1 {
		t.Errorf("Subsection must appear exactly once after dedup, got %q", got)
	}
}
