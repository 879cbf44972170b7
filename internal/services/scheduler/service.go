// Package scheduler runs the optional recurring export job: once per cron
// tick it exports the previous calendar day, so a cron spec of
// "15 0 * * *" keeps the destination file one day behind real time.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/goatkit/zammad-export/internal/export"
)

// RangeRunner matches the export runner's Run method.
type RangeRunner interface {
	Run(ctx context.Context, dr export.DateRange) (int, error)
}

// Service owns the cron instance and the previous-day job.
type Service struct {
	opts   options
	runner RangeRunner
	cron   *cron.Cron
}

// NewService creates the scheduler around a range runner.
func NewService(runner RangeRunner, opts ...Option) *Service {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s := &Service{opts: o, runner: runner}
	if o.Cron != nil {
		s.cron = o.Cron
	} else {
		s.cron = cron.New(cron.WithLocation(o.Location))
	}
	return s
}

// Start registers the previous-day job under spec and starts the cron loop.
func (s *Service) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.runPreviousDay); err != nil {
		return fmt.Errorf("register daily export job %q: %w", spec, err)
	}
	s.cron.Start()
	s.opts.Logger.Printf("daily export scheduled: %q (%s)", spec, s.opts.Location)
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Service) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// runPreviousDay exports yesterday relative to the configured location.
func (s *Service) runPreviousDay() {
	day := previousDay(s.opts.Now(), s.opts.Location)
	dr := export.DateRange{Start: day, End: day}
	runID := uuid.NewString()

	s.opts.Logger.Printf("[%s] scheduled export for %s", runID, day.Format(export.DayLayout))
	done := jobMetrics().recordRun()
	defer done()

	total, err := s.runner.Run(context.Background(), dr)
	if err != nil {
		jobMetrics().recordOutcome(false, 0)
		s.opts.Logger.Printf("[%s] scheduled export failed: %v", runID, err)
		return
	}
	jobMetrics().recordOutcome(true, total)
	s.opts.Logger.Printf("[%s] scheduled export done: %d tickets", runID, total)
}

// previousDay truncates now to a calendar day in loc and steps back one day,
// returned at UTC midnight the way the pipeline expects dates.
func previousDay(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	y, m, d := local.AddDate(0, 0, -1).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
