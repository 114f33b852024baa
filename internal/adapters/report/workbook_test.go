package report_test

import (
	"bytes"
	"context"
	"strconv"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/xuri/excelize/v2"

	"github.com/pesumela/mela/internal/adapters/report"
	"github.com/pesumela/mela/internal/domain/model"
	"github.com/pesumela/mela/internal/domain/scoring"
)

func TestRenderer_Workbook(t *testing.T) {
	ctx := context.Background()
	agg := scoring.NewAggregator()

	evals := []model.Evaluation{
		{TeamName: "Alpha", Novelty: 4, Scalability: 3, SocialImpact: 5, Feasibility: 2},
		{TeamName: "Alpha", Novelty: 2, Scalability: 5, SocialImpact: 3, Feasibility: 4},
		{TeamName: "Beta", Novelty: 5, Scalability: 5, SocialImpact: 5, Feasibility: 5},
	}
	summaries := agg.Summarize(evals)

	Convey("Given a renderer over the default aggregator", t, func() {
		r := report.NewRenderer(agg)

		Convey("When rendering evaluations and summaries", func() {
			buf, err := r.Workbook(ctx, evals, summaries)
			So(err, ShouldBeNil)

			f, err := excelize.OpenReader(bytes.NewReader(buf))
			So(err, ShouldBeNil)
			defer func() { _ = f.Close() }()

			Convey("Then the workbook holds exactly the two named sheets", func() {
				So(f.GetSheetList(), ShouldResemble, []string{report.RawSheet, report.FinalSheet})
			})

			Convey("And the raw sheet carries one row per evaluation plus the header", func() {
				rows, err := f.GetRows(report.RawSheet)
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, len(evals)+1)
				So(rows[0][0], ShouldEqual, "Team Name")
				So(rows[0][5], ShouldEqual, "Total Score")
				So(rows[1][0], ShouldEqual, "Alpha")
				So(rows[3][0], ShouldEqual, "Beta")
			})

			Convey("And each raw row carries the weighted total of its record", func() {
				rows, err := f.GetRows(report.RawSheet)
				So(err, ShouldBeNil)
				got, err := strconv.ParseFloat(rows[1][5], 64)
				So(err, ShouldBeNil)
				So(got, ShouldAlmostEqual, agg.WeightedTotal(evals[0]), 1e-9)
			})

			Convey("And the final sheet carries one row per team summary", func() {
				rows, err := f.GetRows(report.FinalSheet)
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, len(summaries)+1)
				So(rows[1][0], ShouldEqual, "Alpha")
				So(rows[2][0], ShouldEqual, "Beta")

				got, err := strconv.ParseFloat(rows[1][5], 64)
				So(err, ShouldBeNil)
				So(got, ShouldAlmostEqual, summaries[0].TotalScore, 1e-9)
			})
		})

		Convey("When rendering with no evaluations at all", func() {
			buf, err := r.Workbook(ctx, nil, nil)
			So(err, ShouldBeNil)

			f, err := excelize.OpenReader(bytes.NewReader(buf))
			So(err, ShouldBeNil)
			defer func() { _ = f.Close() }()

			Convey("Then both sheets exist with only their header row", func() {
				So(f.GetSheetList(), ShouldResemble, []string{report.RawSheet, report.FinalSheet})
				rawRows, err := f.GetRows(report.RawSheet)
				So(err, ShouldBeNil)
				So(rawRows, ShouldHaveLength, 1)
				finalRows, err := f.GetRows(report.FinalSheet)
				So(err, ShouldBeNil)
				So(finalRows, ShouldHaveLength, 1)
			})
		})

		Convey("When the context is already cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			_, err := r.Workbook(cancelled, evals, summaries)

			Convey("Then rendering aborts with the context error", func() {
				So(err, ShouldEqual, context.Canceled)
			})
		})
	})
}
