// Package report renders aggregated competition results into downloadable
// byte buffers: a two-sheet workbook and a paginated PDF document. Neither
// renderer performs file I/O; writing the buffer to its destination is the
// caller's responsibility.
package report

import "github.com/pesumela/mela/internal/domain/scoring"

// Download metadata for the two export formats.
const (
	WorkbookFilename = "competition_results.xlsx"
	WorkbookMIME     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	DocumentFilename = "competition_results.pdf"
	DocumentMIME     = "application/pdf"
)

// defaultTitle heads the paginated document.
const defaultTitle = "Competition Results Summary"

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithTitle overrides the document title line.
func WithTitle(title string) Option {
	return func(r *Renderer) {
		if title != "" {
			r.title = title
		}
	}
}

// Renderer produces the export formats. It reads evaluations and summaries
// and never mutates them; both render methods are pure functions of their
// input and safe for concurrent use.
type Renderer struct {
	agg   *scoring.Aggregator
	title string
}

// NewRenderer creates a Renderer that computes per-record totals with agg.
func NewRenderer(agg *scoring.Aggregator, opts ...Option) *Renderer {
	r := &Renderer{
		agg:   agg,
		title: defaultTitle,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
