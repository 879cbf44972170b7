// Package export turns fetched tickets into flattened rows and appends them
// to a tabular destination. The day processor and range driver live here,
// as do the CSV and XLSX sinks.
package export

import (
	"fmt"
	"strconv"

	"github.com/goatkit/zammad-export/internal/zammad"
)

// Record is one ticket flattened for export: the four base fields plus the
// retained articles in fetch order. Column names (from_i/body_i) are only
// materialized at the sink, which pads every row to the widest record of
// the batch.
type Record struct {
	ID           int64
	State        *int64
	Title        string
	ArticleCount int
	Articles     []zammad.Article
}

var baseHeader = []string{"id", "state", "title", "article_count"}

// Header returns the column names for a batch holding at most width
// articles per record.
func Header(width int) []string {
	cols := make([]string, 0, len(baseHeader)+2*width)
	cols = append(cols, baseHeader...)
	for i := 1; i <= width; i++ {
		cols = append(cols, fmt.Sprintf("from_%d", i), fmt.Sprintf("body_%d", i))
	}
	return cols
}

// Row renders the record padded to width article slots. Missing slots are
// empty strings; a nil state renders empty.
func (r Record) Row(width int) []string {
	row := make([]string, 0, len(baseHeader)+2*width)
	state := ""
	if r.State != nil {
		state = strconv.FormatInt(*r.State, 10)
	}
	row = append(row,
		strconv.FormatInt(r.ID, 10),
		state,
		r.Title,
		strconv.Itoa(r.ArticleCount),
	)
	for i := 0; i < width; i++ {
		if i < len(r.Articles) {
			row = append(row, r.Articles[i].From, r.Articles[i].Body)
		} else {
			row = append(row, "", "")
		}
	}
	return row
}

// MaxArticles returns the union width needed for a batch.
func MaxArticles(records []Record) int {
	max := 0
	for _, r := range records {
		if len(r.Articles) > max {
			max = len(r.Articles)
		}
	}
	return max
}
