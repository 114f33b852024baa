package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/pesumela/mela/internal/adapters/http/api"
	"github.com/pesumela/mela/internal/adapters/report"
	repository "github.com/pesumela/mela/internal/adapters/repository"
	"github.com/pesumela/mela/internal/domain/model"
)

// mockDeps is a scripted Dependencies implementation for handler tests.
type mockDeps struct {
	registerErr error
	submitErr   error
	teams       []model.Team
	evals       []model.Evaluation
	summaries   []model.TeamSummary
	workbook    []byte
	document    []byte
	exportErr   error
}

func (m *mockDeps) RegisterTeam(_ context.Context, team model.Team) (model.Team, error) {
	if m.registerErr != nil {
		return model.Team{}, m.registerErr
	}
	team.RegisteredAt = time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)
	m.teams = append(m.teams, team)
	return team, nil
}

func (m *mockDeps) SubmitEvaluation(_ context.Context, e model.Evaluation) (model.Evaluation, error) {
	if m.submitErr != nil {
		return model.Evaluation{}, m.submitErr
	}
	e.ID = fmt.Sprintf("receipt-%d", len(m.evals)+1)
	e.SubmittedAt = time.Date(2026, time.March, 14, 11, 0, 0, 0, time.UTC)
	m.evals = append(m.evals, e)
	return e, nil
}

func (m *mockDeps) ListTeams(context.Context) []model.Team             { return m.teams }
func (m *mockDeps) ListEvaluations(context.Context) []model.Evaluation { return m.evals }
func (m *mockDeps) Summarize(context.Context) []model.TeamSummary      { return m.summaries }

func (m *mockDeps) TeamResult(_ context.Context, name string) (model.TeamSummary, error) {
	for _, s := range m.summaries {
		if s.TeamName == name {
			return s, nil
		}
	}
	return model.TeamSummary{}, fmt.Errorf("%w: %q", repository.ErrUnknownTeam, name)
}

func (m *mockDeps) Leaderboard(_ context.Context, n int) ([]model.TeamSummary, error) {
	if n < len(m.summaries) {
		return m.summaries[:n], nil
	}
	return m.summaries, nil
}

func (m *mockDeps) ExportWorkbook(context.Context) ([]byte, error) {
	return m.workbook, m.exportErr
}

func (m *mockDeps) ExportDocument(context.Context) ([]byte, error) {
	return m.document, m.exportErr
}

// mockStats is a fixed StatsProvider.
type mockStats struct{}

func (mockStats) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true, "totalTeams": 2}
}

func newTestServer(deps *mockDeps) *httptest.Server {
	mux := http.NewServeMux()
	api.NewServer(deps, mockStats{}, 100).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func getURL(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHandleTeams(t *testing.T) {
	Convey("Given the API mounted over a scripted core", t, func() {
		deps := &mockDeps{}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When posting a valid registration", func() {
			resp := postJSON(t, srv.URL+"/teams", `{"name":"Lumen","size":4,"description":"smart lighting"}`)

			Convey("Then 201 comes back with the stored record", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusCreated)
				var got struct {
					Name         string `json:"name"`
					RegisteredAt string `json:"registered_at"`
				}
				decodeBody(t, resp, &got)
				So(got.Name, ShouldEqual, "Lumen")
				So(got.RegisteredAt, ShouldNotBeEmpty)
			})
		})

		Convey("When posting a registration without any description", func() {
			resp := postJSON(t, srv.URL+"/teams", `{"name":"Quiet","size":3}`)

			Convey("Then the description stays optional and 201 comes back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusCreated)
				_ = resp.Body.Close()
				So(deps.teams, ShouldHaveLength, 1)
				So(deps.teams[0].Description, ShouldBeEmpty)
			})
		})

		Convey("When posting an audio pitch instead of a description", func() {
			resp := postJSON(t, srv.URL+"/teams", `{"name":"Echo","size":2,"audio_pitch":true}`)

			Convey("Then the sentinel description is stored", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusCreated)
				_ = resp.Body.Close()
				So(deps.teams, ShouldHaveLength, 1)
				So(deps.teams[0].Description, ShouldEqual, model.AudioDescription)
			})
		})

		Convey("When posting malformed or invalid payloads", func() {
			cases := []struct {
				body string
				code string
			}{
				{`{not json`, "bad_request"},
				{`{"name":"","size":3,"description":"x"}`, "validation_error"},
				{`{"name":"Zero","size":0,"description":"x"}`, "validation_error"},
			}

			Convey("Then each fails with 400 and the right code", func() {
				for _, c := range cases {
					resp := postJSON(t, srv.URL+"/teams", c.body)
					So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
					var got struct {
						Code string `json:"code"`
					}
					decodeBody(t, resp, &got)
					So(got.Code, ShouldEqual, c.code)
				}
			})
		})

		Convey("When the core rejects a duplicate name", func() {
			deps.registerErr = fmt.Errorf("%w: %q", repository.ErrDuplicateTeam, "Lumen")
			resp := postJSON(t, srv.URL+"/teams", `{"name":"Lumen","size":4,"description":"x"}`)

			Convey("Then 400 validation_error comes back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
				var got struct {
					Code string `json:"code"`
				}
				decodeBody(t, resp, &got)
				So(got.Code, ShouldEqual, "validation_error")
			})
		})

		Convey("When listing teams", func() {
			postJSON(t, srv.URL+"/teams", `{"name":"Lumen","size":4,"description":"x"}`).Body.Close()
			resp := getURL(t, srv.URL+"/teams")

			Convey("Then the registered teams come back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var got []map[string]any
				decodeBody(t, resp, &got)
				So(got, ShouldHaveLength, 1)
			})
		})
	})
}

func TestHandleEvaluations(t *testing.T) {
	Convey("Given the API mounted over a scripted core", t, func() {
		deps := &mockDeps{}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When submitting a valid evaluation", func() {
			resp := postJSON(t, srv.URL+"/evaluations",
				`{"team_name":"Lumen","novelty":4,"scalability":3,"social_impact":5,"feasibility":2}`)

			Convey("Then 201 comes back with a receipt", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusCreated)
				var got struct {
					ID          string `json:"id"`
					SubmittedAt string `json:"submitted_at"`
				}
				decodeBody(t, resp, &got)
				So(got.ID, ShouldEqual, "receipt-1")
				So(got.SubmittedAt, ShouldNotBeEmpty)
			})
		})

		Convey("When the core does not know the team", func() {
			deps.submitErr = fmt.Errorf("%w: %q", repository.ErrUnknownTeam, "Ghost")
			resp := postJSON(t, srv.URL+"/evaluations",
				`{"team_name":"Ghost","novelty":3,"scalability":3,"social_impact":3,"feasibility":3}`)

			Convey("Then 404 unknown_team comes back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
				var got struct {
					Code string `json:"code"`
				}
				decodeBody(t, resp, &got)
				So(got.Code, ShouldEqual, "unknown_team")
			})
		})

		Convey("When the core rejects an out-of-range score", func() {
			deps.submitErr = fmt.Errorf("%w: novelty=9", repository.ErrScoreOutOfRange)
			resp := postJSON(t, srv.URL+"/evaluations",
				`{"team_name":"Lumen","novelty":9,"scalability":3,"social_impact":3,"feasibility":3}`)

			Convey("Then 400 validation_error comes back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
				var got struct {
					Code string `json:"code"`
				}
				decodeBody(t, resp, &got)
				So(got.Code, ShouldEqual, "validation_error")
			})
		})

		Convey("When the payload has no team name", func() {
			resp := postJSON(t, srv.URL+"/evaluations",
				`{"novelty":3,"scalability":3,"social_impact":3,"feasibility":3}`)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			_ = resp.Body.Close()
		})
	})
}

func TestHandleResults(t *testing.T) {
	summaries := []model.TeamSummary{
		{TeamName: "Alpha", Novelty: 3, Scalability: 4, SocialImpact: 4, Feasibility: 3, TotalScore: 3.5},
		{TeamName: "Beta", Novelty: 5, Scalability: 5, SocialImpact: 5, Feasibility: 5, TotalScore: 5},
	}

	Convey("Given the API mounted over a scripted core", t, func() {
		deps := &mockDeps{summaries: summaries}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When fetching all results", func() {
			resp := getURL(t, srv.URL+"/results")

			Convey("Then the summaries come back in order", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var got []model.TeamSummary
				decodeBody(t, resp, &got)
				So(got, ShouldResemble, summaries)
			})
		})

		Convey("When no evaluations exist yet", func() {
			deps.summaries = nil
			resp := getURL(t, srv.URL+"/results")

			Convey("Then an empty JSON array comes back, not null", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				defer func() { _ = resp.Body.Close() }()
				var raw bytes.Buffer
				_, err := raw.ReadFrom(resp.Body)
				So(err, ShouldBeNil)
				So(strings.TrimSpace(raw.String()), ShouldEqual, "[]")
			})
		})

		Convey("When fetching a single team's result", func() {
			resp := getURL(t, srv.URL+"/results/Beta")

			Convey("Then its summary comes back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var got model.TeamSummary
				decodeBody(t, resp, &got)
				So(got.TeamName, ShouldEqual, "Beta")
				So(got.TotalScore, ShouldAlmostEqual, 5.0, 1e-9)
			})
		})

		Convey("When fetching an unknown team's result", func() {
			resp := getURL(t, srv.URL+"/results/Nobody")

			Convey("Then 404 not_found comes back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
				var got struct {
					Code string `json:"code"`
				}
				decodeBody(t, resp, &got)
				So(got.Code, ShouldEqual, "not_found")
			})
		})
	})
}

func TestHandleLeaderboard(t *testing.T) {
	summaries := []model.TeamSummary{
		{TeamName: "Beta", TotalScore: 5},
		{TeamName: "Alpha", TotalScore: 3.5},
	}

	Convey("Given the API mounted over a scripted core", t, func() {
		deps := &mockDeps{summaries: summaries}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When requesting the top entry", func() {
			resp := getURL(t, srv.URL+"/leaderboard?limit=1")

			Convey("Then one summary comes back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var got []model.TeamSummary
				decodeBody(t, resp, &got)
				So(got, ShouldHaveLength, 1)
				So(got[0].TeamName, ShouldEqual, "Beta")
			})
		})

		Convey("When the limit is missing, non-numeric or non-positive", func() {
			for _, q := range []string{"", "?limit=abc", "?limit=0", "?limit=-3"} {
				resp := getURL(t, srv.URL+"/leaderboard"+q)
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
				_ = resp.Body.Close()
			}
		})

		Convey("When the limit exceeds the configured maximum", func() {
			resp := getURL(t, srv.URL+"/leaderboard?limit=101")

			Convey("Then 400 limit_exceeded comes back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
				var got struct {
					Code string `json:"code"`
				}
				decodeBody(t, resp, &got)
				So(got.Code, ShouldEqual, "limit_exceeded")
			})
		})
	})
}

func TestHandleExports(t *testing.T) {
	Convey("Given the API mounted over a scripted core", t, func() {
		deps := &mockDeps{
			workbook: []byte("PK\x03\x04workbook-bytes"),
			document: []byte("%PDF-1.4 document-bytes"),
		}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When downloading the workbook", func() {
			resp := getURL(t, srv.URL+"/export/workbook")
			defer func() { _ = resp.Body.Close() }()

			Convey("Then attachment headers carry the xlsx metadata", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(resp.Header.Get("Content-Type"), ShouldEqual, report.WorkbookMIME)
				So(resp.Header.Get("Content-Disposition"), ShouldContainSubstring, report.WorkbookFilename)
				So(resp.ContentLength, ShouldEqual, int64(len(deps.workbook)))
			})
		})

		Convey("When downloading the document", func() {
			resp := getURL(t, srv.URL+"/export/document")
			defer func() { _ = resp.Body.Close() }()

			Convey("Then attachment headers carry the pdf metadata", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(resp.Header.Get("Content-Type"), ShouldEqual, report.DocumentMIME)
				So(resp.Header.Get("Content-Disposition"), ShouldContainSubstring, report.DocumentFilename)
			})
		})

		Convey("When rendering fails upstream", func() {
			deps.exportErr = fmt.Errorf("render blew up")
			resp := getURL(t, srv.URL+"/export/workbook")

			Convey("Then 500 internal_error comes back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusInternalServerError)
				var got struct {
					Code string `json:"code"`
				}
				decodeBody(t, resp, &got)
				So(got.Code, ShouldEqual, "internal_error")
			})
		})
	})
}

func TestHealthAndStats(t *testing.T) {
	Convey("Given the API mounted over a scripted core", t, func() {
		srv := newTestServer(&mockDeps{})
		defer srv.Close()

		Convey("When probing /healthz", func() {
			resp := getURL(t, srv.URL+"/healthz")
			defer func() { _ = resp.Body.Close() }()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})

		Convey("When fetching /stats", func() {
			resp := getURL(t, srv.URL+"/stats")

			Convey("Then the provider's snapshot comes back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var got map[string]any
				decodeBody(t, resp, &got)
				So(got["started"], ShouldEqual, true)
			})
		})

		Convey("When using an unsupported method", func() {
			resp, err := http.Head(srv.URL + "/results")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}
