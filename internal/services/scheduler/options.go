package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

type options struct {
	Logger   *log.Logger
	Cron     *cron.Cron
	Location *time.Location
	Now      func() time.Time
}

// Option applies configuration to the scheduler service.
type Option func(*options)

func defaultOptions() options {
	return options{Logger: log.Default(), Location: time.UTC, Now: time.Now}
}

// WithLogger injects a custom logger implementation.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.Logger = l
	}
}

// WithCron overrides the cron instance.
func WithCron(c *cron.Cron) Option {
	return func(o *options) {
		o.Cron = c
	}
}

// WithLocation sets the timezone used to decide which day is "yesterday".
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		o.Location = loc
	}
}

// WithNow overrides the clock (tests).
func WithNow(now func() time.Time) Option {
	return func(o *options) {
		o.Now = now
	}
}
