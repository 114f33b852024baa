package site_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/pesumela/mela/internal/adapters/http/site"
)

func TestRegister(t *testing.T) {
	Convey("Given a mux with the embedded UI registered", t, func() {
		mux := http.NewServeMux()
		site.Register(context.Background(), mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		Convey("When fetching the root page", func() {
			resp, err := http.Get(srv.URL + "/")
			So(err, ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()

			Convey("Then the judging UI is served", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(resp.Header.Get("Content-Type"), ShouldContainSubstring, "text/html")
				body, err := io.ReadAll(resp.Body)
				So(err, ShouldBeNil)
				So(string(body), ShouldContainSubstring, "<html")
			})
		})
	})

	Convey("Given a nil mux", t, func() {
		Convey("Then Register panics", func() {
			So(func() { site.Register(context.Background(), nil) }, ShouldPanic)
		})
	})
}
