package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	aggregationsTotal      *prometheus.CounterVec
	aggregationDuration    prometheus.Histogram
	reportsAssembledTotal  *prometheus.CounterVec
	reportAssemblyDuration prometheus.Histogram
	classificationWarnings *prometheus.CounterVec
	forecastsTotal         *prometheus.CounterVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		aggregationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_aggregations_total",
				Help: "Total number of period aggregations computed",
			},
			[]string{"location"},
		),
		aggregationDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ledger_aggregation_duration_milliseconds",
				Help:    "Period aggregation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		reportsAssembledTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reports_assembled_total",
				Help: "Total number of monthly reports assembled",
			},
			[]string{"location"},
		),
		reportAssemblyDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "report_assembly_duration_milliseconds",
				Help:    "Report assembly duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		classificationWarnings: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "classification_warnings_total",
				Help: "Total number of ledger rows excluded from aggregation",
			},
			[]string{"location"},
		),
		forecastsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budget_forecasts_total",
				Help: "Total number of budget forecasts computed",
			},
			[]string{"method"},
		),
	}
}

func (m *PrometheusMetrics) RecordAggregation(locationID string, duration time.Duration) {
	m.aggregationsTotal.WithLabelValues(locationID).Inc()
	m.aggregationDuration.Observe(float64(duration.Milliseconds()))
}

func (m *PrometheusMetrics) RecordReportAssembled(locationID string, duration time.Duration) {
	m.reportsAssembledTotal.WithLabelValues(locationID).Inc()
	m.reportAssemblyDuration.Observe(float64(duration.Milliseconds()))
}

func (m *PrometheusMetrics) RecordClassificationWarnings(locationID string, count int) {
	m.classificationWarnings.WithLabelValues(locationID).Add(float64(count))
}

func (m *PrometheusMetrics) RecordForecast(method string) {
	m.forecastsTotal.WithLabelValues(method).Inc()
}
