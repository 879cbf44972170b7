package export

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/goatkit/zammad-export/internal/zammad"
)

// DayLayout is the wire format for calendar dates.
const DayLayout = "2006-01-02"

var dayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Validation sentinels let the HTTP layer map failures to client-error
// codes without parsing messages.
var (
	ErrDateFormat = errors.New("invalid date")
	ErrDateOrder  = errors.New("invalid date range")
)

// DateRange is an inclusive pair of calendar days. Both ends are plain
// dates at UTC midnight; there is no time-of-day component.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseRange validates two YYYY-MM-DD strings and their ordering. A failure
// here is a client-input error; no network activity has happened yet.
func ParseRange(start, end string) (DateRange, error) {
	s, err := parseDay(start)
	if err != nil {
		return DateRange{}, fmt.Errorf("start_date: %w", err)
	}
	e, err := parseDay(end)
	if err != nil {
		return DateRange{}, fmt.Errorf("end_date: %w", err)
	}
	if s.After(e) {
		return DateRange{}, fmt.Errorf("%w: start_date %s is after end_date %s", ErrDateOrder, start, end)
	}
	return DateRange{Start: s, End: e}, nil
}

func parseDay(s string) (time.Time, error) {
	if !dayPattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("%w: %q is not in YYYY-MM-DD format", ErrDateFormat, s)
	}
	t, err := time.ParseInLocation(DayLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a valid calendar date", ErrDateFormat, s)
	}
	return t, nil
}

// String renders the range the way the API reports it back.
func (r DateRange) String() string {
	return r.Start.Format(DayLayout) + " to " + r.End.Format(DayLayout)
}

// TicketSource is the slice of the Zammad client the pipeline consumes.
type TicketSource interface {
	FetchAllTicketsForDay(ctx context.Context, day string) ([]zammad.Ticket, error)
	FetchArticles(ctx context.Context, ticketID int64) []zammad.Article
}

// Processor orchestrates the pager and the article fetcher into flattened
// records, one day at a time.
type Processor struct {
	source TicketSource
	logger *log.Logger
}

// ProcessorOption configures the processor.
type ProcessorOption func(*Processor)

// WithLogger sets a custom logger.
func WithLogger(l *log.Logger) ProcessorOption {
	return func(p *Processor) { p.logger = l }
}

// NewProcessor creates a processor over the given ticket source.
func NewProcessor(source TicketSource, opts ...ProcessorOption) *Processor {
	p := &Processor{
		source: source,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessDay fetches every retained ticket for one day and enriches each
// with its article thread. Article fetch failures never fail the day; the
// ticket is emitted with zero article columns. A ticket that declared a
// positive article_count but retained nothing gets a warning because it
// usually signals upstream data loss.
func (p *Processor) ProcessDay(ctx context.Context, day time.Time) ([]Record, error) {
	dayStr := day.Format(DayLayout)
	tickets, err := p.source.FetchAllTicketsForDay(ctx, dayStr)
	if err != nil {
		return nil, fmt.Errorf("process day %s: %w", dayStr, err)
	}

	records := make([]Record, 0, len(tickets))
	for _, t := range tickets {
		articles := p.source.FetchArticles(ctx, t.ID)
		if len(articles) == 0 && t.ArticleCount > 0 {
			p.logger.Printf("warning: ticket %d declares %d articles but none were retained", t.ID, t.ArticleCount)
		}
		records = append(records, Record{
			ID:           t.ID,
			State:        t.State,
			Title:        t.Title,
			ArticleCount: t.ArticleCount,
			Articles:     articles,
		})
	}

	p.logger.Printf("processed %d tickets for %s", len(records), dayStr)
	daysProcessed.Inc()
	return records, nil
}

// ProcessRange runs every calendar day from Start to End inclusive, in
// increasing order, exactly once, and concatenates the results. There is no
// retry here: the first day that fails hard aborts the range, and partially
// completed ranges are not resumed.
func (p *Processor) ProcessRange(ctx context.Context, r DateRange) ([]Record, error) {
	var all []Record
	for day := r.Start; !day.After(r.End); day = day.AddDate(0, 0, 1) {
		p.logger.Printf("processing day: %s", day.Format(DayLayout))
		records, err := p.ProcessDay(ctx, day)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}
