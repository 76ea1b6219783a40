package citation

import (
	"strings"
	"testing"

	"cpr-rag-backend/models"
)

func TestProcessDocumentsSingleFragment(t *testing.T) {
	p := NewSourceProcessor()

	frags := []models.SourceFragment{
		{
			ID:         "cpr-part07_chunk_000",
			Content:    "7.1 Scope of this Part\nProceedings are started when the court issues a claim form.",
			SourcePage: "cpr-part07-7.1",
			SourceFile: "PART 7 — HOW TO START PROCEEDINGS",
		},
	}

	out := p.ProcessDocuments(frags, false, false)
	if len(out) != 1 {
		t.Fatalf("Expected 1 processed source, got %d", len(out))
	}

	src := out[0]
	if src.Subsection != "7.1" {
		t.Errorf("Subsection: got %q, want 7.1", src.Subsection)
	}
	// Encoded sourcepage is redundant with the subsection and drops out.
	if src.Citation != "7.1, PART 7 — HOW TO START PROCEEDINGS" {
		t.Errorf("Citation: got %q", src.Citation)
	}
	if src.TotalSubsections != 1 || src.SubsectionIndex != 0 {
		t.Errorf("Single fragment must report 0 of 1, got %d of %d", src.SubsectionIndex, src.TotalSubsections)
	}
}

func TestProcessDocumentsSplitsMultiSubsectionFragment(t *testing.T) {
	p := NewSourceProcessor()

	frags := []models.SourceFragment{
		{
			ID:         "frag-0",
			Content:    "no structural markers in this one, plain commentary text",
			SourceFile: "Chancery Guide",
		},
		{
			ID: "frag-1",
			Content: "2.1 Starting a claim\n" +
				"A claim is started when the court issues a claim form.\n" +
				"1.1 Scope of this guide\n" +
				"This guide applies to claims proceeding in the commercial list.",
			SourcePage: "guide-p4",
			SourceFile: "Commercial Court Guide",
		},
	}

	out := p.ProcessDocuments(frags, false, false)
	if len(out) != 3 {
		t.Fatalf("Expected 3 processed sources (1 single + 2 splits), got %d", len(out))
	}

	// Input order preserved: the unsplit fragment stays first.
	if out[0].ID != "frag-0" {
		t.Errorf("First output must be the unsplit fragment, got %q", out[0].ID)
	}

	// Split units appear together, in subsection order, in the parent's slot.
	if out[1].Subsection != "1.1" || out[2].Subsection != "2.1" {
		t.Errorf("Splits out of order: %q then %q", out[1].Subsection, out[2].Subsection)
	}
	for i, src := range out[1:] {
		if src.ParentID != "frag-1" {
			t.Errorf("Split %d parent: got %q, want frag-1", i, src.ParentID)
		}
		if src.TotalSubsections != 2 {
			t.Errorf("Split %d total subsections: got %d, want 2", i, src.TotalSubsections)
		}
		if src.SubsectionIndex != i {
			t.Errorf("Split %d index: got %d", i, src.SubsectionIndex)
		}
		if !strings.Contains(src.Citation, "Commercial Court Guide") {
			t.Errorf("Split citation must carry the parent sourcefile, got %q", src.Citation)
		}
	}
}

func TestProcessDocumentsFallbackCitation(t *testing.T) {
	p := NewSourceProcessor()

	out := p.ProcessDocuments([]models.SourceFragment{{ID: "x"}}, false, false)
	if len(out) != 1 {
		t.Fatalf("Expected 1 processed source, got %d", len(out))
	}
	if out[0].Citation != "Source 1" {
		t.Errorf("Empty fragment must fall back to Source 1, got %q", out[0].Citation)
	}
}

func TestProcessDocumentsSemanticCaptions(t *testing.T) {
	p := NewSourceProcessor()

	frags := []models.SourceFragment{
		{
			ID:         "frag-0",
			Content:    "full chunk content that should be replaced",
			Captions:   []string{"caption one", "caption two"},
			SourceFile: "CPR",
		},
	}

	out := p.ProcessDocuments(frags, true, false)
	if out[0].Content != "caption one. caption two" {
		t.Errorf("Semantic captions must replace content, got %q", out[0].Content)
	}
}

func TestProcessDocumentsCaptionsDoNotReplaceSplitContent(t *testing.T) {
	p := NewSourceProcessor()

	frags := []models.SourceFragment{
		{
			ID: "frag-0",
			Content: "2.1 Starting a claim\n" +
				"A claim is started when the court issues a claim form.\n" +
				"1.1 Scope of this guide\n" +
				"This guide applies to claims proceeding in the commercial list.",
			Captions:   []string{"caption for the whole fragment"},
			SourceFile: "Commercial Court Guide",
		},
	}

	out := p.ProcessDocuments(frags, true, false)
	if len(out) != 2 {
		t.Fatalf("Expected 2 split sources, got %d", len(out))
	}
	for i, src := range out {
		if strings.Contains(src.Content, "caption for the whole fragment") {
			t.Errorf("Split %d must keep its own content span, got %q", i, src.Content)
		}
		if !strings.HasPrefix(src.Content, src.Subsection) {
			t.Errorf("Split %d content must start with its subsection heading, got %q", i, src.Content)
		}
	}
}

func TestProcessDocumentsImageCitation(t *testing.T) {
	p := NewSourceProcessor()

	frags := []models.SourceFragment{
		{
			ID:         "frag-0",
			Content:    "1.1 Something\n2.1 Something else that is long enough",
			SourcePage: "4",
			SourceFile: "guide.pdf",
		},
	}

	out := p.ProcessDocuments(frags, false, true)
	if len(out) != 1 {
		t.Fatalf("Image mode must not split fragments, got %d records", len(out))
	}
	if out[0].Citation != "guide-4.png" {
		t.Errorf("Image citation: got %q, want guide-4.png", out[0].Citation)
	}
}
