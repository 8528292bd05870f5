// Package metrics exposes Prometheus collectors for the complaint workflow.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is safe to use as a nil pointer; every method becomes a no-op.
type Recorder struct {
	registry        *prometheus.Registry
	created         prometheus.Counter
	transitions     *prometheus.CounterVec
	escalations     prometheus.Counter
	appeals         prometheus.Counter
	storeFailures   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	r := &Recorder{
		registry: registry,
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "complaints_created_total",
			Help: "Complaints submitted by citizens",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "complaint_status_transitions_total",
			Help: "Admin status updates by target status",
		}, []string{"status"}),
		escalations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "complaint_escalations_total",
			Help: "Escalation calls, including repeated ones",
		}),
		appeals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "complaint_appeals_total",
			Help: "Appeals raised by citizens",
		}),
		storeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "complaint_store_failures_total",
			Help: "Record store failures by operation",
		}, []string{"operation"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.created,
		r.transitions,
		r.escalations,
		r.appeals,
		r.storeFailures,
		r.requestDuration,
	)
	return r
}

func (r *Recorder) ComplaintCreated() {
	if r == nil {
		return
	}
	r.created.Inc()
}

func (r *Recorder) StatusChanged(status string) {
	if r == nil {
		return
	}
	r.transitions.WithLabelValues(status).Inc()
}

func (r *Recorder) Escalated() {
	if r == nil {
		return
	}
	r.escalations.Inc()
}

func (r *Recorder) AppealRaised() {
	if r == nil {
		return
	}
	r.appeals.Inc()
}

func (r *Recorder) StoreFailure(operation string) {
	if r == nil {
		return
	}
	r.storeFailures.WithLabelValues(operation).Inc()
}

func (r *Recorder) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.requestDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(duration.Seconds())
}

// Handler serves the private registry.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}
