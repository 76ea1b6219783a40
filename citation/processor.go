package citation

import (
	"fmt"
	"path/filepath"
	"strings"

	"cpr-rag-backend/models"
)

// SourceProcessor turns retrieved fragments into the enumerated source list
// consumed by the answer prompt and the UI. Stateless; share one instance
// across requests or create one per request, both are equivalent.
type SourceProcessor struct {
	builder *Builder
}

// NewSourceProcessor creates a source processor
func NewSourceProcessor() *SourceProcessor {
	return &SourceProcessor{builder: NewBuilder()}
}

// Builder exposes the underlying citation builder
func (p *SourceProcessor) Builder() *Builder {
	return p.builder
}

// ProcessDocuments emits one citable record per fragment, or several when a
// fragment spans multiple subsections. Input fragment order is preserved;
// split units appear together, in subsection order, where their parent
// fragment would have appeared. Semantic captions substitute the content of
// unsplit fragments only: split units always carry their own content span,
// since captions describe the whole fragment and cannot be attributed to one
// subsection.
func (p *SourceProcessor) ProcessDocuments(
	fragments []models.SourceFragment,
	useSemanticCaptions bool,
	useImageCitation bool,
) []models.ProcessedSource {
	var out []models.ProcessedSource

	for i, frag := range fragments {
		sourceIndex := i + 1

		content := frag.Content
		if useSemanticCaptions && len(frag.Captions) > 0 {
			content = strings.Join(frag.Captions, ". ")
		}

		if useImageCitation {
			out = append(out, models.ProcessedSource{
				ID:               frag.ID,
				Content:          content,
				Citation:         imageCitation(frag.SourcePage, frag.SourceFile),
				SourcePage:       frag.SourcePage,
				SourceFile:       frag.SourceFile,
				SubsectionIndex:  0,
				TotalSubsections: 1,
			})
			continue
		}

		splits := p.builder.ExtractMultipleSubsections(frag)
		if len(splits) >= 2 {
			for j, split := range splits {
				out = append(out, models.ProcessedSource{
					ID:               fmt.Sprintf("%s_sub_%d", frag.ID, j),
					ParentID:         frag.ID,
					Content:          split.Content,
					Citation:         assembleCitation(split.Subsection, frag.SourcePage, frag.SourceFile, sourceIndex),
					Subsection:       split.Subsection,
					SourcePage:       frag.SourcePage,
					SourceFile:       frag.SourceFile,
					SubsectionIndex:  j,
					TotalSubsections: len(splits),
				})
			}
			continue
		}

		out = append(out, models.ProcessedSource{
			ID:               frag.ID,
			Content:          content,
			Citation:         p.builder.BuildEnhancedCitation(frag, sourceIndex),
			Subsection:       p.builder.ExtractSubsection(frag),
			SourcePage:       frag.SourcePage,
			SourceFile:       frag.SourceFile,
			SubsectionIndex:  0,
			TotalSubsections: 1,
		})
	}

	return out
}

// imageCitation names the page image rendered for a fragment, derived from
// the source file name and page identifier.
func imageCitation(sourcePage, sourceFile string) string {
	if sourceFile == "" {
		return sourcePage
	}
	base := strings.TrimSuffix(sourceFile, filepath.Ext(sourceFile))
	if sourcePage == "" {
		return base + ".png"
	}
	return base + "-" + sourcePage + ".png"
}
