package scraper

import (
	"strings"
	"testing"
)

func TestCleanHTML(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips_tags",
			input:    "<p>Proceedings are started when the court issues a claim form.</p>",
			expected: "Proceedings are started when the court issues a claim form.",
		},
		{
			name:     "removes_scripts_and_styles",
			input:    "<script>var x = 1;</script><style>.a{color:red}</style><p>Rule 7.1</p>",
			expected: "Rule 7.1",
		},
		{
			name:     "decodes_entities",
			input:    "<p>PART 7 &#8212; HOW TO START PROCEEDINGS</p>",
			expected: "PART 7 — HOW TO START PROCEEDINGS",
		},
		{
			name:     "block_tags_become_newlines",
			input:    "<h2>PART 7 — HOW TO START PROCEEDINGS</h2><p>7.1 Scope of this Part</p>",
			expected: "PART 7 — HOW TO START PROCEEDINGS\n\n7.1 Scope of this Part",
		},
		{
			name:     "collapses_blank_runs",
			input:    "<p>first</p>\n\n\n\n<p>second</p>",
			expected: "first\n\nsecond",
		},
		{
			name:     "removes_comments",
			input:    "<!-- nav -->7.1 Scope",
			expected: "7.1 Scope",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CleanHTML(tc.input)
			if got != tc.expected {
				t.Errorf("CleanHTML:\ngot  %q\nwant %q", got, tc.expected)
			}
		})
	}
}

func TestCleanHTMLKeepsHeadersOnOwnLines(t *testing.T) {
	input := "<div><h1>PRACTICE DIRECTION 3E — COSTS MANAGEMENT</h1>" +
		"<p>1.1 This Practice Direction applies to costs management.</p></div>"

	got := CleanHTML(input)
	for _, line := range []string{
		"PRACTICE DIRECTION 3E — COSTS MANAGEMENT",
		"1.1 This Practice Direction applies to costs management.",
	} {
		found := false
		for _, l := range strings.Split(got, "\n") {
			if l == line {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected %q on its own line in:\n%s", line, got)
		}
	}
}

func TestDefaultCPRPages(t *testing.T) {
	pages := DefaultCPRPages()
	if len(pages) == 0 {
		t.Fatal("Expected default pages")
	}
	seen := map[string]bool{}
	for _, p := range pages {
		if p.URL == "" || p.ID == "" || p.Title == "" {
			t.Errorf("Incomplete page ref: %+v", p)
		}
		if seen[p.ID] {
			t.Errorf("Duplicate page ID %q", p.ID)
		}
		seen[p.ID] = true
	}
}
