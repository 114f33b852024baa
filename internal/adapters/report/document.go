package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/pesumela/mela/internal/domain/model"
)

// Page layout constants, in points on an A4 page (595x842). The cursor is
// measured from the top of the page.
const (
	leftMargin    = 50.0
	topMargin     = 50.0
	bottomMargin  = 50.0
	firstRowY     = 100.0
	lineHeight    = 20.0
	titleFontSize = 16.0
	bodyFontSize  = 11.0
)

// cursor tracks the vertical layout position across page breaks.
type cursor struct {
	y          float64
	pageBottom float64
	page       int
}

// newCursor starts below the title on the first page.
func newCursor(pageHeight float64) *cursor {
	return &cursor{
		y:          firstRowY,
		pageBottom: pageHeight - bottomMargin,
		page:       1,
	}
}

// advance moves down one row. It reports true when the cursor crossed the
// bottom margin and the caller must start a new page; the cursor is then
// already reset to the top margin of the next page.
func (c *cursor) advance() bool {
	c.y += lineHeight
	if c.y > c.pageBottom {
		c.y = topMargin
		c.page++
		return true
	}
	return false
}

// Document renders the team summaries into a paginated A4 PDF: a bold title
// line followed by one body line per summary, `<name> | Score: <total>` with
// the total formatted to two decimals. Rows appear in the order given; the
// caller sorts first if a particular order is wanted. Empty input yields a
// single page carrying only the title.
func (r *Renderer) Document(ctx context.Context, summaries []model.TeamSummary) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	_, pageHeight := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "B", titleFontSize)
	pdf.Text(leftMargin, topMargin, r.title)
	pdf.SetFont("Helvetica", "", bodyFontSize)

	cur := newCursor(pageHeight)
	for _, s := range summaries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pdf.Text(leftMargin, cur.y, fmt.Sprintf("%s | Score: %.2f", s.TeamName, s.TotalScore))
		if cur.advance() {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "", bodyFontSize)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return buf.Bytes(), nil
}
