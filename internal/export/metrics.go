package export

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	daysProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "zamexport",
		Subsystem: "pipeline",
		Name:      "days_processed_total",
		Help:      "Calendar days processed by the pipeline",
	})

	rowsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "zamexport",
		Subsystem: "sink",
		Name:      "rows_written_total",
		Help:      "Flattened rows appended to the export destination",
	})
)
