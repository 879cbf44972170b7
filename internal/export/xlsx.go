package export

import (
	"fmt"
	"log"
	"os"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Tickets"

// XLSXSink appends batches to an XLSX workbook. Unlike CSV the header row
// can be widened in place when a later batch needs more article columns.
type XLSXSink struct {
	path   string
	logger *log.Logger
}

// XLSXOption configures the sink.
type XLSXOption func(*XLSXSink)

// WithXLSXLogger sets a custom logger.
func WithXLSXLogger(l *log.Logger) XLSXOption {
	return func(s *XLSXSink) { s.logger = l }
}

// NewXLSXSink creates a sink writing to path.
func NewXLSXSink(path string, opts ...XLSXOption) *XLSXSink {
	s := &XLSXSink{path: path, logger: log.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append writes the batch. An empty batch is a logged no-op.
func (s *XLSXSink) Append(records []Record) error {
	if len(records) == 0 {
		s.logger.Printf("warning: no records to append to %s", s.path)
		return nil
	}

	width := MaxArticles(records)

	f, nextRow, err := s.open(width)
	if err != nil {
		return err
	}
	defer f.Close()

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, nextRow+i)
		if err != nil {
			return fmt.Errorf("row coordinates: %w", err)
		}
		if err := f.SetSheetRow(xlsxSheet, cell, rowValues(r.Row(width))); err != nil {
			return fmt.Errorf("write row for ticket %d: %w", r.ID, err)
		}
	}

	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("save workbook %s: %w", s.path, err)
	}
	rowsWritten.Add(float64(len(records)))
	s.logger.Printf("appended %d rows to %s", len(records), s.path)
	return nil
}

// open returns the workbook and the first free row, creating the file with
// a header row when it does not exist and widening the header when the
// incoming batch is wider than previous ones.
func (s *XLSXSink) open(width int) (*excelize.File, int, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		f := excelize.NewFile()
		index, err := f.NewSheet(xlsxSheet)
		if err != nil {
			f.Close()
			return nil, 0, fmt.Errorf("create sheet: %w", err)
		}
		f.SetActiveSheet(index)
		if err := f.DeleteSheet("Sheet1"); err != nil {
			f.Close()
			return nil, 0, fmt.Errorf("drop default sheet: %w", err)
		}
		if err := f.SetSheetRow(xlsxSheet, "A1", rowValues(Header(width))); err != nil {
			f.Close()
			return nil, 0, fmt.Errorf("write header: %w", err)
		}
		return f, 2, nil
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, 0, fmt.Errorf("open workbook %s: %w", s.path, err)
	}
	rows, err := f.GetRows(xlsxSheet)
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("read sheet %s: %w", xlsxSheet, err)
	}
	if len(rows) > 0 && len(rows[0]) < len(baseHeader)+2*width {
		if err := f.SetSheetRow(xlsxSheet, "A1", rowValues(Header(width))); err != nil {
			f.Close()
			return nil, 0, fmt.Errorf("widen header: %w", err)
		}
	}
	return f, len(rows) + 1, nil
}

func rowValues(cols []string) *[]interface{} {
	vals := make([]interface{}, len(cols))
	for i, c := range cols {
		vals[i] = c
	}
	return &vals
}
