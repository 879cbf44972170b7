package export

import (
	"context"
	"fmt"
	"log"
)

// SinkError marks a failure writing the export destination, so callers can
// report it separately from fetch failures.
type SinkError struct {
	Err error
}

func (e *SinkError) Error() string { return "write export: " + e.Err.Error() }
func (e *SinkError) Unwrap() error { return e.Err }

// Runner executes one full range request: fetch and flatten every day, then
// hand the accumulated batch to the sink exactly once.
type Runner struct {
	processor *Processor
	sink      Sink
	logger    *log.Logger
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithRunnerLogger sets a custom logger.
func WithRunnerLogger(l *log.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// NewRunner creates a runner over a processor and a sink.
func NewRunner(processor *Processor, sink Sink, opts ...RunnerOption) *Runner {
	r := &Runner{
		processor: processor,
		sink:      sink,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes the range and appends the batch. It returns the number of
// tickets processed.
func (r *Runner) Run(ctx context.Context, dr DateRange) (int, error) {
	r.logger.Printf("starting ticket fetch for range %s", dr)

	records, err := r.processor.ProcessRange(ctx, dr)
	if err != nil {
		return 0, err
	}
	if err := r.sink.Append(records); err != nil {
		return 0, fmt.Errorf("range %s: %w", dr, &SinkError{Err: err})
	}

	r.logger.Printf("finished range %s: %d tickets exported", dr, len(records))
	return len(records), nil
}
