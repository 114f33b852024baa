package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pesumela/mela/internal/domain/model"
)

// Sheet names, in workbook order.
const (
	RawSheet   = "Raw Evaluations"
	FinalSheet = "Final Scores"
)

// columnHeader is the shared column shape of both sheets.
var columnHeader = []any{
	"Team Name", "Novelty", "Scalability", "Social Impact", "Feasibility", "Total Score",
}

// Workbook renders evaluations and summaries into an xlsx workbook with
// exactly two sheets: RawSheet carries one row per evaluation with its
// computed total, FinalSheet one row per team summary. Output is stable for
// identical input. Empty input yields a workbook with both sheets and only
// header rows.
func (r *Renderer) Workbook(ctx context.Context, evals []model.Evaluation, summaries []model.TeamSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// Reuse the default sheet for raw evaluations so the workbook holds
	// exactly two sheets.
	if err := f.SetSheetName(f.GetSheetName(0), RawSheet); err != nil {
		return nil, fmt.Errorf("rename raw sheet: %w", err)
	}
	if _, err := f.NewSheet(FinalSheet); err != nil {
		return nil, fmt.Errorf("add final sheet: %w", err)
	}

	if err := f.SetSheetRow(RawSheet, "A1", &columnHeader); err != nil {
		return nil, fmt.Errorf("write raw header: %w", err)
	}
	for i, e := range evals {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := []any{
			e.TeamName,
			e.Novelty,
			e.Scalability,
			e.SocialImpact,
			e.Feasibility,
			r.agg.WeightedTotal(e),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("raw row %d: %w", i, err)
		}
		if err := f.SetSheetRow(RawSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write raw row %d: %w", i, err)
		}
	}

	if err := f.SetSheetRow(FinalSheet, "A1", &columnHeader); err != nil {
		return nil, fmt.Errorf("write final header: %w", err)
	}
	for i, s := range summaries {
		row := []any{
			s.TeamName,
			s.Novelty,
			s.Scalability,
			s.SocialImpact,
			s.Feasibility,
			s.TotalScore,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("final row %d: %w", i, err)
		}
		if err := f.SetSheetRow(FinalSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write final row %d: %w", i, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
