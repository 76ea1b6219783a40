package models

// SourceFragment is a retrieved search-index record handed to the citation
// pipeline. Read-only to that subsystem.
type SourceFragment struct {
	ID         string   `json:"id"`
	Content    string   `json:"content"`
	SourcePage string   `json:"sourcepage"`
	SourceFile string   `json:"sourcefile"`
	Captions   []string `json:"captions,omitempty"`
	Distance   float64  `json:"distance,omitempty"`
}

// SubsectionSplit is one citable unit carved out of a fragment that spans
// multiple legal subsections.
type SubsectionSplit struct {
	Subsection string `json:"subsection"`
	Content    string `json:"content"`
}

// ProcessedSource is the citation pipeline's output record: one enumerable,
// citable source for the answer prompt and the UI. When a fragment was split
// into multiple subsections, SubsectionIndex/TotalSubsections link the unit
// back to its parent fragment.
type ProcessedSource struct {
	ID               string `json:"id"`
	ParentID         string `json:"parent_id,omitempty"`
	Content          string `json:"content"`
	Citation         string `json:"citation"`
	Subsection       string `json:"subsection,omitempty"`
	SourcePage       string `json:"sourcepage,omitempty"`
	SourceFile       string `json:"sourcefile,omitempty"`
	SubsectionIndex  int    `json:"subsection_index"`
	TotalSubsections int    `json:"total_subsections"`
}
