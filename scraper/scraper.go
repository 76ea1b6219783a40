// Package scraper fetches UK Civil Procedure Rules pages and court guides
// and reduces their HTML to the plain text the chunking pipeline consumes.
package scraper

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"cpr-rag-backend/models"
)

const (
	defaultTimeout = 30 * time.Second
	defaultDelay   = 2 * time.Second
	userAgent      = "cpr-rag-backend/1.0 (legal research indexer)"
	maxBodyBytes   = 10 << 20
)

// PageRef identifies one page to scrape
type PageRef struct {
	URL   string
	ID    string
	Title string
}

// DefaultCPRPages lists the core CPR Parts and Practice Directions indexed
// by default. The justice.gov.uk URL scheme is stable per Part.
func DefaultCPRPages() []PageRef {
	return []PageRef{
		{URL: "https://www.justice.gov.uk/courts/procedure-rules/civil/rules/part07", ID: "cpr-part07", Title: "PART 7 — HOW TO START PROCEEDINGS"},
		{URL: "https://www.justice.gov.uk/courts/procedure-rules/civil/rules/part08", ID: "cpr-part08", Title: "PART 8 — ALTERNATIVE PROCEDURE FOR CLAIMS"},
		{URL: "https://www.justice.gov.uk/courts/procedure-rules/civil/rules/part31", ID: "cpr-part31", Title: "PART 31 — DISCLOSURE AND INSPECTION OF DOCUMENTS"},
		{URL: "https://www.justice.gov.uk/courts/procedure-rules/civil/rules/part36", ID: "cpr-part36", Title: "PART 36 — OFFERS TO SETTLE"},
		{URL: "https://www.justice.gov.uk/courts/procedure-rules/civil/rules/pd_part03e", ID: "cpr-pd3e", Title: "PRACTICE DIRECTION 3E — COSTS MANAGEMENT"},
	}
}

// Scraper fetches pages politely with a fixed delay between requests
type Scraper struct {
	client *http.Client
	delay  time.Duration
}

// Option configures a Scraper
type Option func(*Scraper)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(s *Scraper) {
		s.client = client
	}
}

// WithDelay sets the pause between successive fetches
func WithDelay(d time.Duration) Option {
	return func(s *Scraper) {
		s.delay = d
	}
}

// New creates a scraper with a 30s timeout client and a 2s request delay
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{Timeout: defaultTimeout},
		delay:  defaultDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchDocument retrieves one page and returns it as a LegalDocument with
// cleaned plain text.
func (s *Scraper) FetchDocument(ctx context.Context, ref PageRef) (*models.LegalDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", ref.URL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", ref.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", ref.URL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ref.URL, err)
	}

	return &models.LegalDocument{
		ID:        ref.ID,
		Title:     ref.Title,
		FullText:  CleanHTML(string(body)),
		SourceURL: ref.URL,
		ScrapedAt: time.Now().UTC(),
	}, nil
}

// FetchAll fetches every page in order, pausing between requests. Pages
// that fail are skipped and reported through the errs slice so one broken
// page does not abort a full crawl.
func (s *Scraper) FetchAll(ctx context.Context, refs []PageRef) (docs []models.LegalDocument, errs []error) {
	for i, ref := range refs {
		if i > 0 {
			select {
			case <-ctx.Done():
				errs = append(errs, ctx.Err())
				return docs, errs
			case <-time.After(s.delay):
			}
		}
		doc, err := s.FetchDocument(ctx, ref)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		docs = append(docs, *doc)
	}
	return docs, errs
}

var (
	reScript    = regexp.MustCompile(`(?is)<script.*?</script>`)
	reStyle     = regexp.MustCompile(`(?is)<style.*?</style>`)
	reComment   = regexp.MustCompile(`(?s)<!--.*?-->`)
	reBlockTag  = regexp.MustCompile(`(?i)</?(?:p|div|br|h[1-6]|li|tr|table|section|article)[^>]*>`)
	reAnyTag    = regexp.MustCompile(`<[^>]+>`)
	reSpaces    = regexp.MustCompile(`[ \t]+`)
	reBlankRuns = regexp.MustCompile(`\n{3,}`)
)

// CleanHTML strips markup down to plain text while keeping block boundaries
// as newlines, so structural headers like "PART 7 — ..." stay on their own
// lines for the chunker's boundary scan.
func CleanHTML(raw string) string {
	text := reScript.ReplaceAllString(raw, " ")
	text = reStyle.ReplaceAllString(text, " ")
	text = reComment.ReplaceAllString(text, " ")
	text = reBlockTag.ReplaceAllString(text, "\n")
	text = reAnyTag.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)

	text = reSpaces.ReplaceAllString(text, " ")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		lines = append(lines, strings.TrimSpace(line))
	}
	text = strings.Join(lines, "\n")
	text = reBlankRuns.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
