package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RenderTable writes the per-task console report.
func RenderTable(w io.Writer, summary *RunSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Footer = text.FormatDefault

	t.AppendHeader(table.Row{"Task", "Results", "Two-combo results", "Two-combos", "Three-combos", "Size", "File"})
	for _, ts := range summary.Tasks {
		t.AppendRow(table.Row{
			ts.Name,
			resultsCell(ts),
			ts.TwoComboResults,
			ts.TwoCombos,
			ts.ThreeCombos,
			humanize.Bytes(uint64(ts.SizeBytes)),
			ts.Filename,
		})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d tasks", summary.TotalTasks), "", "", "", "", "", summary.IndexPath})

	t.Render()
}

// resultsCell shows dedup savings only when duplicates were removed.
func resultsCell(ts TaskSummary) string {
	if ts.Dedup != nil && ts.Dedup.Removed > 0 {
		return fmt.Sprintf("%d (original: %d, removed %d duplicates)", ts.Results, ts.Dedup.Original, ts.Dedup.Removed)
	}
	return fmt.Sprintf("%d", ts.Results)
}
