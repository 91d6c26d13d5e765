// Package metrics holds the Prometheus collectors for page content loading,
// fallback substitution, document downloads, and admin sign-in.
//
// A nil *Metrics is valid and records nothing, so components can be built
// without a registry in tests.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the set of application collectors.
type Metrics struct {
	reg *prometheus.Registry

	sectionLoads      *prometheus.CounterVec
	sectionDuration   *prometheus.HistogramVec
	fallbackSubs      *prometheus.CounterVec
	downloads         *prometheus.CounterVec
	downloadBytes     prometheus.Histogram
	logins            *prometheus.CounterVec
	discardedPageLoad prometheus.Counter
}

// New registers all collectors on a fresh registry, alongside the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWith(reg)
}

// NewWith registers all collectors on reg.
func NewWith(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{reg: reg}

	m.sectionLoads = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strataministry_section_loads_total",
			Help: "content section loads by section and final state",
		},
		[]string{"section", "state"},
	)
	m.sectionDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "strataministry_section_load_seconds",
			Help:    "time spent fetching one content section",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"section"},
	)
	m.fallbackSubs = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strataministry_fallback_substitutions_total",
			Help: "sections rendered from built-in default content",
		},
		[]string{"section"},
	)
	m.downloads = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strataministry_downloads_total",
			Help: "document download requests by outcome",
		},
		[]string{"outcome"},
	)
	m.downloadBytes = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "strataministry_download_bytes",
			Help:    "size of documents served as attachments",
			Buckets: prometheus.ExponentialBuckets(16*1024, 4, 8),
		},
	)
	m.logins = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strataministry_admin_logins_total",
			Help: "admin sign-in attempts by result",
		},
		[]string{"result"},
	)
	m.discardedPageLoad = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "strataministry_page_loads_discarded_total",
			Help: "page loads abandoned before all sections settled",
		},
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

func (m *Metrics) SectionLoaded(section, state string, seconds float64) {
	if m == nil {
		return
	}
	m.sectionLoads.WithLabelValues(section, state).Inc()
	m.sectionDuration.WithLabelValues(section).Observe(seconds)
}

func (m *Metrics) PageDiscarded() {
	if m == nil {
		return
	}
	m.discardedPageLoad.Inc()
}

func (m *Metrics) FallbackSubstituted(section string) {
	if m == nil {
		return
	}
	m.fallbackSubs.WithLabelValues(section).Inc()
}

func (m *Metrics) Download(outcome string, bytes int) {
	if m == nil {
		return
	}
	m.downloads.WithLabelValues(outcome).Inc()
	if bytes > 0 {
		m.downloadBytes.Observe(float64(bytes))
	}
}

func (m *Metrics) Login(result string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(result).Inc()
}
