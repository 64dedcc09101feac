package output

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter/tw"

	"github.com/agentstation/boorusync"
)

// SummaryData renders a run result as a two-column counter table.
func SummaryData(r *boorusync.Result) Data {
	rows := [][]string{
		{"Scanned posts", strconv.Itoa(r.Scanned)},
		{"Processed image posts", strconv.Itoa(r.Processed)},
		{"Skipped by type", strconv.Itoa(r.SkippedByType)},
		{"Matched posts", strconv.Itoa(r.Matched)},
		{"  exact matches", strconv.Itoa(r.Exact)},
		{"  similar matches", strconv.Itoa(r.Similar)},
		{"  too-far similars", strconv.Itoa(r.TooFar)},
		{"  no match", strconv.Itoa(r.Unmatched)},
		{"Discovered tags", strconv.Itoa(r.Tags.Discovered)},
		{"Added tags to posts", strconv.Itoa(r.Tags.Added)},
		{"Discovered sources", strconv.Itoa(r.Sources.Discovered)},
		{"Added sources to posts", strconv.Itoa(r.Sources.Added)},
		{"Failures", strconv.Itoa(r.Failures)},
	}
	return Data{
		Headers:         []string{"Counter", "Value"},
		Rows:            rows,
		ColumnAlignment: []tw.Align{tw.AlignLeft, tw.AlignRight},
	}
}

// WriteSummary writes r in format. Table output gets the counter table;
// JSON and YAML get the full result.
func WriteSummary(w io.Writer, format Format, r *boorusync.Result) error {
	if r == nil {
		return nil
	}
	formatter := NewFormatter(format)
	switch format {
	case FormatJSON, FormatYAML:
		return formatter.Format(w, r)
	default:
		return formatter.Format(w, SummaryData(r))
	}
}
