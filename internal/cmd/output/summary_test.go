package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/boorusync"
	"github.com/agentstation/boorusync/pkg/reconciler"
)

func sampleResult() *boorusync.Result {
	return &boorusync.Result{
		RunID:     "run-1",
		Scanned:   10,
		Processed: 8,
		Matched:   5,
		Exact:     3,
		Similar:   2,
		Tags:      reconciler.Counts{Discovered: 12, Added: 7},
		Sources:   reconciler.Counts{Discovered: 4, Added: 1},
		Failures:  1,
	}
}

func TestSummaryData(t *testing.T) {
	data := SummaryData(sampleResult())
	assert.Equal(t, []string{"Counter", "Value"}, data.Headers)
	assert.Contains(t, data.Rows, []string{"Scanned posts", "10"})
	assert.Contains(t, data.Rows, []string{"Added tags to posts", "7"})
	assert.Contains(t, data.Rows, []string{"Failures", "1"})
}

func TestWriteSummary(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteSummary(&buf, FormatTable, sampleResult()))
		out := buf.String()
		assert.Contains(t, out, "Discovered sources")
		assert.Contains(t, out, "12")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteSummary(&buf, FormatJSON, sampleResult()))
		var got map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "run-1", got["run_id"])
		assert.Equal(t, float64(10), got["scanned"])
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteSummary(&buf, FormatYAML, sampleResult()))
		var got map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "run-1", got["run_id"])
	})

	t.Run("nil result", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteSummary(&buf, FormatTable, nil))
		assert.Empty(t, buf.String())
	})
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" YAML ")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
