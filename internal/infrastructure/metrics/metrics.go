package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	ExaminationsFiled   prometheus.Counter
	SickLeavesIssued    prometheus.Counter
	ReportCacheHits     *prometheus.CounterVec
	ReportCacheMisses   *prometheus.CounterVec
}

// New registers all collectors on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "medical_record_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "medical_record_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route and method",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route", "method"}),
		ExaminationsFiled: factory.NewCounter(prometheus.CounterOpts{
			Name: "medical_record_examinations_filed_total",
			Help: "Total number of examinations filed",
		}),
		SickLeavesIssued: factory.NewCounter(prometheus.CounterOpts{
			Name: "medical_record_sick_leaves_issued_total",
			Help: "Total number of sick leaves issued",
		}),
		ReportCacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "medical_record_report_cache_hits_total",
			Help: "Report results served from cache",
		}, []string{"report"}),
		ReportCacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "medical_record_report_cache_misses_total",
			Help: "Report results computed from the database",
		}, []string{"report"}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRequest(route, method string, status int, start time.Time) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, method, http.StatusText(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementExaminationsFiled() {
	if m == nil {
		return
	}
	m.ExaminationsFiled.Inc()
}

func (m *Metrics) IncrementSickLeavesIssued() {
	if m == nil {
		return
	}
	m.SickLeavesIssued.Inc()
}

func (m *Metrics) IncrementReportCacheHit(report string) {
	if m == nil {
		return
	}
	m.ReportCacheHits.WithLabelValues(report).Inc()
}

func (m *Metrics) IncrementReportCacheMiss(report string) {
	if m == nil {
		return
	}
	m.ReportCacheMisses.WithLabelValues(report).Inc()
}
