package results

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadastral-labs/pointhist-cli/internal/core/domain"
)

func TestFileSink_Write(t *testing.T) {
	t.Run("writes indented report with both lists", func(t *testing.T) {
		dir := t.TempDir()
		sink := NewFileSink(dir)

		report := domain.NewResultsReport()
		report.Record(domain.PointOutcome{PointNumber: "1234", ItemID: 42, Success: true})
		report.Record(domain.PointOutcome{PointNumber: "5678", ItemID: 43, Success: false, Error: "no text file"})

		require.NoError(t, sink.Write(report))

		data, err := os.ReadFile(filepath.Join(dir, "processing_results.json"))
		require.NoError(t, err)

		expected := `{
  "successful": [
    {
      "id": 42,
      "number": "1234"
    }
  ],
  "failed": [
    {
      "id": 43,
      "number": "5678"
    }
  ]
}`
		assert.Equal(t, expected, string(data))
	})

	t.Run("empty report serialises as empty arrays", func(t *testing.T) {
		dir := t.TempDir()
		sink := NewFileSink(dir)

		require.NoError(t, sink.Write(domain.NewResultsReport()))

		data, err := os.ReadFile(sink.Path())
		require.NoError(t, err)
		assert.JSONEq(t, `{"successful": [], "failed": []}`, string(data))
	})

	t.Run("rewrite replaces the previous snapshot", func(t *testing.T) {
		dir := t.TempDir()
		sink := NewFileSink(dir)

		first := domain.NewResultsReport()
		first.Record(domain.PointOutcome{PointNumber: "1", ItemID: 1, Success: true})
		require.NoError(t, sink.Write(first))

		second := domain.NewResultsReport()
		second.Record(domain.PointOutcome{PointNumber: "1", ItemID: 1, Success: true})
		second.Record(domain.PointOutcome{PointNumber: "2", ItemID: 2, Success: true})
		require.NoError(t, sink.Write(second))

		data, err := os.ReadFile(sink.Path())
		require.NoError(t, err)
		assert.JSONEq(t, `{"successful": [{"id": 1, "number": "1"}, {"id": 2, "number": "2"}], "failed": []}`, string(data))
	})

	t.Run("creates the output directory when missing", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "out")
		sink := NewFileSink(dir)

		require.NoError(t, sink.Write(domain.NewResultsReport()))
		assert.FileExists(t, sink.Path())
	})
}
