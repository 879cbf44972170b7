package zammad

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "zamexport",
		Subsystem: "client",
		Name:      "requests_total",
		Help:      "Outbound API requests, labeled by outcome",
	}, []string{"outcome"})

	retriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "zamexport",
		Subsystem: "client",
		Name:      "retries_total",
		Help:      "Retries performed after transient failures",
	})

	ticketsFetched = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "zamexport",
		Subsystem: "client",
		Name:      "tickets_fetched_total",
		Help:      "Tickets retained after filtering",
	})

	articlesFetched = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "zamexport",
		Subsystem: "client",
		Name:      "articles_fetched_total",
		Help:      "Articles retained across all tickets",
	})
)
