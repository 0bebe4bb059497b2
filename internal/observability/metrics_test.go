package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRecordAndServe(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("GET", "/api/skills", "200", 15*time.Millisecond)
	m.ObserveAPI("GET", "/api/skills", "200", 5*time.Millisecond)
	m.ObserveGapAnalysis(3*time.Millisecond, 2, 1)
	m.IncGapAnalysisError()
	m.IncAuthAttempt("login", "ok")

	if got := testutil.ToFloat64(m.apiRequests.WithLabelValues("GET", "/api/skills", "200")); got != 2 {
		t.Fatalf("api requests: got=%v want=2", got)
	}
	if got := testutil.ToFloat64(m.gapAnalyses.WithLabelValues("ok")); got != 1 {
		t.Fatalf("gap analyses ok: got=%v want=1", got)
	}
	if got := testutil.ToFloat64(m.gapAnalyses.WithLabelValues("error")); got != 1 {
		t.Fatalf("gap analyses error: got=%v want=1", got)
	}

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()
	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	for _, want := range []string{
		"jobtrack_api_requests_total",
		"jobtrack_skill_gap_entries_bucket",
		"jobtrack_auth_attempts_total",
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("scrape output missing %q", want)
		}
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", "200", time.Millisecond)
	m.ApiInflightInc()
	m.ApiInflightDec()
	m.ObserveGapAnalysis(time.Millisecond, 0, 0)
	m.IncGapAnalysisError()
	m.IncAuthAttempt("login", "ok")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("nil handler status: got=%d want=%d", rec.Code, http.StatusNotFound)
	}
}

func TestParseHeaders(t *testing.T) {
	got := ParseHeaders([]string{"a=1", "bad", "b = 2 ", "=x"})
	if len(got) != 2 || got["a"] != "1" || got["b"] != "2" {
		t.Fatalf("unexpected headers: %+v", got)
	}
	if ParseHeaders(nil) != nil {
		t.Fatalf("expected nil for empty input")
	}
}
