package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hbnb_web/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record one sample so counters are non-zero
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	if !strings.Contains(out, "hbnb_http_requests_total") {
		t.Fatalf("expected hbnb_http_requests_total in output")
	}
}

func TestPageFailureCounter(t *testing.T) {
	reg := observability.InitRegistry()
	observability.ObservePageFailure("list_places", "fetch_failed")
	observability.ObserveExternal("hbnb", "/places", 503, 3*time.Millisecond)

	rr := httptest.NewRecorder()
	observability.MetricsHandler(reg).ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))

	out := rr.Body.String()
	for _, want := range []string{
		`hbnb_page_failures_total{kind="fetch_failed",op="list_places"}`,
		`hbnb_external_requests_total{endpoint="/places",service="hbnb",status="503"}`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output", want)
		}
	}
}
