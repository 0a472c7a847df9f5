package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareRecordsStatus(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/items/{id}", "418"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("status: got %d, want 418", rec.Code)
	}

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/items/{id}", "418"))
	if after-before != 1 {
		t.Errorf("counter delta: got %v, want 1", after-before)
	}
}

func TestAnalysisTotal(t *testing.T) {
	before := testutil.ToFloat64(analysisTotal.WithLabelValues("ok", "image/png"))
	AnalysisTotal("ok", "image/png")
	after := testutil.ToFloat64(analysisTotal.WithLabelValues("ok", "image/png"))

	if after-before != 1 {
		t.Errorf("counter delta: got %v, want 1", after-before)
	}
}
