package citation

import (
	"testing"

	"cpr-rag-backend/models"
)

func TestExtractMultipleSubsectionsOrdering(t *testing.T) {
	builder := NewBuilder()

	// Headings deliberately out of order in the content.
	frag := models.SourceFragment{
		Content: "2.1 Starting a claim\n" +
			"A claim is started when the court issues a claim form.\n" +
			"A4.1 Case management conference\n" +
			"The court will fix a case management conference promptly.\n" +
			"Rule 31.1 Scope of this Part\n" +
			"This Part sets out rules about the disclosure of documents.\n" +
			"1.1 Scope of this guide\n" +
			"This guide applies to claims proceeding in the commercial list.",
	}

	splits := builder.ExtractMultipleSubsections(frag)
	if len(splits) != 4 {
		t.Fatalf("Expected 4 splits, got %d", len(splits))
	}

	expected := []string{"1.1", "2.1", "A4.1", "Rule 31.1"}
	for i, want := range expected {
		if splits[i].Subsection != want {
			t.Errorf("Split %d: got %q, want %q", i, splits[i].Subsection, want)
		}
	}
}

func TestExtractMultipleSubsectionsThreshold(t *testing.T) {
	builder := NewBuilder()

	cases := []struct {
		name    string
		content string
	}{
		{
			name:    "zero_headings",
			content: "General guidance on listing.\nNothing numbered in here.",
		},
		{
			name:    "single_heading",
			content: "1.1 Scope of this guide\nThis guide applies to commercial claims.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			splits := builder.ExtractMultipleSubsections(models.SourceFragment{Content: tc.content})
			if len(splits) != 0 {
				t.Errorf("Expected no splits, got %d", len(splits))
			}
		})
	}
}

func TestExtractMultipleSubsectionsDiscardsNoise(t *testing.T) {
	builder := NewBuilder()

	// The middle heading has no body worth citing.
	frag := models.SourceFragment{
		Content: "1.1 Scope of this guide\n" +
			"This guide applies to claims proceeding in the commercial list.\n" +
			"1.2\n" +
			"1.3 Allocation of claims\n" +
			"Claims are allocated to the list by the judge in charge.",
	}

	splits := builder.ExtractMultipleSubsections(frag)
	if len(splits) != 2 {
		t.Fatalf("Expected 2 splits after noise filtering, got %d", len(splits))
	}
	if splits[0].Subsection != "1.1" || splits[1].Subsection != "1.3" {
		t.Errorf("Got splits %q and %q, want 1.1 and 1.3", splits[0].Subsection, splits[1].Subsection)
	}
}

func TestHeadingNormalization(t *testing.T) {
	cases := []struct {
		line     string
		expected string
	}{
		{"Rule 31.1 Scope", "Rule 31.1"},
		{"CPR 7 overview", "CPR 7"},
		{"Paragraph 5.2 Skeletons", "Para 5.2"},
		{"Para 5 Skeletons", "Para 5"},
		{"A4.1 Conference", "A4.1"},
		{"12.3 Service", "12.3"},
		{"B7 Applications", "B7"},
		{"The court may order otherwise", ""},
		{"", ""},
	}

	for _, tc := range cases {
		if got := matchHeading(tc.line); got != tc.expected {
			t.Errorf("matchHeading(%q): got %q, want %q", tc.line, got, tc.expected)
		}
	}
}

func TestSortKeyTotalOrdering(t *testing.T) {
	cases := []struct {
		smaller string
		larger  string
	}{
		{"1.1", "1.2"},
		{"1.2", "2.1"},
		{"2.1", "A4.1"},
		{"A4.1", "B1.1"},
		{"A4.1", "A4.2"},
		{"B1.1", "CPR 7"},
		{"CPR 7", "Para 5.2"},
		{"Para 5.2", "Rule 3.1"},
		{"Rule 3.1", "Rule 31.1"},
		{"Rule 31.1", "Schedule X"},
	}

	for _, tc := range cases {
		a, b := parseSortKey(tc.smaller), parseSortKey(tc.larger)
		if !a.less(b) {
			t.Errorf("Expected %q < %q", tc.smaller, tc.larger)
		}
		if b.less(a) {
			t.Errorf("Ordering must be asymmetric for %q and %q", tc.smaller, tc.larger)
		}
	}
}
