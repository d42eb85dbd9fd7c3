package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so several instances can coexist in
// tests.
type Metrics struct {
	registry *prometheus.Registry

	viewDuration   *prometheus.HistogramVec
	viewPoints     *prometheus.HistogramVec
	datasetRecords prometheus.Gauge
	httpDuration   *prometheus.SummaryVec
	httpRequests   *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		viewDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dashboard_view_compute_seconds",
				Help:    "Time spent filtering and aggregating one dashboard view",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"view"},
		),
		viewPoints: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dashboard_view_points",
				Help:    "Number of chart points returned per view",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
			},
			[]string{"view"},
		),
		datasetRecords: f.NewGauge(prometheus.GaugeOpts{
			Name: "dashboard_dataset_records",
			Help: "Number of job postings held in memory",
		}),
		httpDuration: f.NewSummaryVec(
			prometheus.SummaryOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request duration in seconds",
				Objectives: map[float64]float64{
					0.5:  0.05,
					0.9:  0.01,
					0.95: 0.005,
					0.99: 0.001,
				},
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
	}
}

func (m *Metrics) ObserveView(view string, d time.Duration, points int) {
	if m == nil {
		return
	}
	m.viewDuration.WithLabelValues(view).Observe(d.Seconds())
	m.viewPoints.WithLabelValues(view).Observe(float64(points))
}

func (m *Metrics) SetDatasetRecords(n int) {
	if m == nil {
		return
	}
	m.datasetRecords.Set(float64(n))
}

func (m *Metrics) ObserveRequest(method, path, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, path, status).Observe(d.Seconds())
	m.httpRequests.WithLabelValues(method, path, status).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
