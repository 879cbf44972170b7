package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goatkit/zammad-export/internal/zammad"
)

func int64p(v int64) *int64 { return &v }

func sampleRecords() []Record {
	return []Record{
		{
			ID:           1,
			State:        int64p(2),
			Title:        "VPN down",
			ArticleCount: 2,
			Articles: []zammad.Article{
				{From: "customer@example.com", Body: "It broke"},
				{From: "agent@example.com", Body: "Restarting it"},
			},
		},
		{
			ID:           2,
			Title:        "Printer jam",
			ArticleCount: 1,
			Articles: []zammad.Article{
				{From: "customer@example.com", Body: "Paper everywhere"},
			},
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestHeaderAndRowPadding(t *testing.T) {
	assert.Equal(t,
		[]string{"id", "state", "title", "article_count", "from_1", "body_1", "from_2", "body_2"},
		Header(2))

	records := sampleRecords()
	width := MaxArticles(records)
	assert.Equal(t, 2, width)

	// The second record has one article; its second slot pads empty.
	row := records[1].Row(width)
	assert.Equal(t, []string{"2", "", "Printer jam", "1", "customer@example.com", "Paper everywhere", "", ""}, row)
}

func TestCSVSink_CreateThenAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickets.csv")
	sink := NewCSVSink(path, WithCSVLogger(silentLogger()))

	require.NoError(t, sink.Append(sampleRecords()))

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, Header(2), rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "2", rows[1][1]) // state
	assert.Equal(t, "", rows[2][1])  // nil state renders empty

	// Second batch appends without a second header, at its own width.
	second := []Record{{
		ID:           3,
		Title:        "Email bounce",
		ArticleCount: 3,
		Articles: []zammad.Article{
			{From: "a@example.com", Body: "one"},
			{From: "b@example.com", Body: "two"},
			{From: "c@example.com", Body: "three"},
		},
	}}
	require.NoError(t, sink.Append(second))

	rows = readCSV(t, path)
	require.Len(t, rows, 4)
	assert.NotEqual(t, "id", rows[3][0], "no repeated header")
	assert.Len(t, rows[3], len(Header(3)))
	assert.Equal(t, "three", rows[3][len(rows[3])-1])
}

func TestCSVSink_EmptyBatchIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickets.csv")
	sink := NewCSVSink(path, WithCSVLogger(silentLogger()))

	require.NoError(t, sink.Append(nil))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "empty batch must not create the file")
}

func TestCSVSink_NoEmptyBodiesInOutput(t *testing.T) {
	// The pipeline never puts an empty-body article in a record; the sink
	// only pads columns beyond a record's own articles.
	path := filepath.Join(t.TempDir(), "tickets.csv")
	sink := NewCSVSink(path, WithCSVLogger(silentLogger()))

	records := []Record{
		{ID: 1, Title: "t", Articles: []zammad.Article{{From: "x", Body: "kept"}}},
		{ID: 2, Title: "u"},
	}
	require.NoError(t, sink.Append(records))

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, "kept", rows[1][5])
	assert.Equal(t, "", rows[2][4])
	assert.Equal(t, "", rows[2][5])
}
