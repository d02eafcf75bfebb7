package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics records catalog writes and rendered reports.
type CatalogMetrics struct {
	writes         *prometheus.CounterVec
	reports        *prometheus.CounterVec
	reportDuration *prometheus.HistogramVec
}

// NewCatalogMetrics registers the catalog metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	writes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_writes_total",
		Help: "Catalog write operations by entity and action.",
	}, []string{"entity", "action"})
	reports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_reports_total",
		Help: "PDF reports rendered by kind and outcome.",
	}, []string{"kind", "outcome"})
	reportDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_report_duration_seconds",
		Help:    "Time spent rendering PDF reports.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
	reg.MustRegister(writes, reports, reportDuration)
	return &CatalogMetrics{
		writes:         writes,
		reports:        reports,
		reportDuration: reportDuration,
	}
}

// IncWrite counts one write against entity ("product", "category").
func (m *CatalogMetrics) IncWrite(entity, action string) {
	if m == nil || m.writes == nil {
		return
	}
	m.writes.WithLabelValues(normalizeLabel(entity), normalizeLabel(action)).Inc()
}

// ObserveReport records a rendered report of kind ("list", "detail").
func (m *CatalogMetrics) ObserveReport(kind string, duration time.Duration, err error) {
	if m == nil || m.reports == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	kind = normalizeLabel(kind)
	m.reports.WithLabelValues(kind, outcome).Inc()
	m.reportDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
