package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsMiddleware(t *testing.T) {
	Convey("Given a handler wrapped in the metrics middleware", t, func() {
		Convey("When the handler writes an explicit status", func() {
			wrapped := MetricsMiddleware(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTeapot)
			}, "test")
			rec := httptest.NewRecorder()
			wrapped(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

			Convey("Then the status passes through untouched", func() {
				So(rec.Code, ShouldEqual, http.StatusTeapot)
			})
		})

		Convey("When the handler writes a body without a status", func() {
			wrapped := MetricsMiddleware(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("ok"))
			}, "test")
			rec := httptest.NewRecorder()
			wrapped(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

			Convey("Then the implicit 200 is recorded", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldEqual, "ok")
			})
		})
	})
}

func TestErrorClassification(t *testing.T) {
	Convey("Given the status code classifiers", t, func() {
		Convey("Then error types map by status family", func() {
			So(getErrorType(http.StatusInternalServerError), ShouldEqual, "server_error")
			So(getErrorType(http.StatusNotFound), ShouldEqual, "not_found")
			So(getErrorType(http.StatusBadRequest), ShouldEqual, "client_error")
			So(getErrorType(http.StatusOK), ShouldEqual, "unknown")
		})

		Convey("And severities follow the same families", func() {
			So(getErrorSeverity(http.StatusBadGateway), ShouldEqual, "high")
			So(getErrorSeverity(http.StatusConflict), ShouldEqual, "medium")
			So(getErrorSeverity(http.StatusOK), ShouldEqual, "low")
		})
	})
}
