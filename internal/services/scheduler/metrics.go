package scheduler

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type exportJobMetrics struct {
	runs      prometheus.Counter
	outcomes  *prometheus.CounterVec
	tickets   prometheus.Counter
	durations prometheus.Observer
}

var (
	jobMetricsOnce sync.Once
	jobMetricsInst *exportJobMetrics
)

func jobMetrics() *exportJobMetrics {
	jobMetricsOnce.Do(func() {
		jobMetricsInst = newExportJobMetrics()
	})
	return jobMetricsInst
}

func newExportJobMetrics() *exportJobMetrics {
	return &exportJobMetrics{
		runs: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "zamexport",
			Subsystem: "scheduler",
			Name:      "runs_total",
			Help:      "Scheduled export executions",
		}),
		outcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zamexport",
			Subsystem: "scheduler",
			Name:      "outcomes_total",
			Help:      "Scheduled export results, labeled by status",
		}, []string{"status"}),
		tickets: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "zamexport",
			Subsystem: "scheduler",
			Name:      "tickets_exported_total",
			Help:      "Tickets exported by scheduled runs",
		}),
		durations: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "zamexport",
			Subsystem: "scheduler",
			Name:      "run_duration_seconds",
			Help:      "Duration of scheduled export executions",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func (m *exportJobMetrics) recordRun() func() {
	if m == nil {
		return func() {}
	}
	m.runs.Inc()
	timer := prometheus.NewTimer(m.durations)
	return func() {
		timer.ObserveDuration()
	}
}

func (m *exportJobMetrics) recordOutcome(success bool, tickets int) {
	if m == nil {
		return
	}
	status := "success"
	if !success {
		status = "failure"
	}
	m.outcomes.WithLabelValues(status).Inc()
	m.tickets.Add(float64(tickets))
}
