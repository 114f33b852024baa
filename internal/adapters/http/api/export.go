// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pesumela/mela/internal/adapters/report"
)

// ExportDependencies defines the interface for report downloads.
type ExportDependencies interface {
	ExportWorkbook(ctx context.Context) ([]byte, error)
	ExportDocument(ctx context.Context) ([]byte, error)
}

// ExportHandler handles report download requests.
type ExportHandler struct {
	deps ExportDependencies
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps ExportDependencies) *ExportHandler {
	return &ExportHandler{deps: deps}
}

// HandleExportWorkbook handles GET /export/workbook requests and streams
// the two-sheet xlsx workbook as an attachment.
func (h *ExportHandler) HandleExportWorkbook(w http.ResponseWriter, r *http.Request) {
	const op = "api.export_workbook"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	buf, err := h.deps.ExportWorkbook(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeAttachment(w, buf, report.WorkbookMIME, report.WorkbookFilename)
}

// HandleExportDocument handles GET /export/document requests and streams
// the paginated PDF as an attachment.
func (h *ExportHandler) HandleExportDocument(w http.ResponseWriter, r *http.Request) {
	const op = "api.export_document"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	buf, err := h.deps.ExportDocument(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeAttachment(w, buf, report.DocumentMIME, report.DocumentFilename)
}

// writeAttachment streams an in-memory export buffer as a file download.
func writeAttachment(w http.ResponseWriter, buf []byte, mime, filename string) {
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(buf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf)
}
