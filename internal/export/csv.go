package export

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
)

// Sink appends one batch of flattened records to a durable destination.
type Sink interface {
	Append(records []Record) error
}

// CSVSink appends batches to a CSV file: create-with-header on first write,
// append-without-header thereafter. Each batch is padded to its own union
// width; later batches may be wider than the original header, which the
// consuming side tolerates.
type CSVSink struct {
	path   string
	logger *log.Logger
}

// CSVOption configures the sink.
type CSVOption func(*CSVSink)

// WithCSVLogger sets a custom logger.
func WithCSVLogger(l *log.Logger) CSVOption {
	return func(s *CSVSink) { s.logger = l }
}

// NewCSVSink creates a sink writing to path.
func NewCSVSink(path string, opts ...CSVOption) *CSVSink {
	s := &CSVSink{path: path, logger: log.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append writes the batch. An empty batch is a logged no-op.
func (s *CSVSink) Append(records []Record) error {
	if len(records) == 0 {
		s.logger.Printf("warning: no records to append to %s", s.path)
		return nil
	}

	width := MaxArticles(records)
	s.logger.Printf("appending %d rows to %s (max articles in batch: %d)", len(records), s.path, width)

	_, statErr := os.Stat(s.path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open export file %s: %w", s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(Header(width)); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, r := range records {
		if err := w.Write(r.Row(width)); err != nil {
			return fmt.Errorf("write row for ticket %d: %w", r.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", s.path, err)
	}

	rowsWritten.Add(float64(len(records)))
	if writeHeader {
		s.logger.Printf("created %s with %d rows", s.path, len(records))
	} else {
		s.logger.Printf("appended %d rows to existing %s", len(records), s.path)
	}
	return nil
}
