package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	JobsServed      prometheus.Gauge
	StoreReadErrors prometheus.Counter
	JobsGeocoded    *prometheus.CounterVec
	ProviderErrors  prometheus.Counter
	ProviderSeconds *prometheus.HistogramVec
	ActiveWorkers   prometheus.Gauge
	JobsImported    prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "jobheat_http_requests_total",
			Help: "Total number of HTTP requests served by the jobs API.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jobheat_http_request_duration_seconds",
			Help:    "Duration of HTTP requests served by the jobs API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		JobsServed: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "jobheat_jobs_served",
			Help: "Number of jobs returned by the last successful store read.",
		}),
		StoreReadErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "jobheat_store_read_errors_total",
			Help: "Total number of failed reads from the job record store.",
		}),
		JobsGeocoded: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "jobheat_geocoding_jobs_processed_total",
			Help: "Total number of postings processed by the geocoding worker.",
		}, []string{"status"}),
		ProviderErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "jobheat_geocoding_provider_api_errors_total",
			Help: "Total number of errors received from the geocoding provider API.",
		}),
		ProviderSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jobheat_geocoding_provider_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "jobheat_geocoding_active_workers",
			Help: "Current number of active workers geocoding postings.",
		}),
		JobsImported: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "jobheat_jobs_imported_total",
			Help: "Total number of postings written by the importer.",
		}),
	}
}
