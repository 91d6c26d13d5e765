package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.SectionLoaded("beliefs", "loaded", 0.1)
	m.PageDiscarded()
	m.FallbackSubstituted("beliefs")
	m.Download("saved_locally", 10)
	m.Login("success")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("nil Handler() status = %d, want 404", rec.Code)
	}
}

func TestCounters(t *testing.T) {
	m := NewWith(prometheus.NewRegistry())

	m.SectionLoaded("statistics", "failed", 0.01)
	m.SectionLoaded("statistics", "failed", 0.02)
	m.FallbackSubstituted("beliefs")
	m.Download("opened_remote", 0)

	if got := testutil.ToFloat64(m.sectionLoads.WithLabelValues("statistics", "failed")); got != 2 {
		t.Errorf("section loads = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.fallbackSubs.WithLabelValues("beliefs")); got != 1 {
		t.Errorf("fallback substitutions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.downloads.WithLabelValues("opened_remote")); got != 1 {
		t.Errorf("downloads = %v, want 1", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.Login("invalid_credentials")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"strataministry_admin_logins_total",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
