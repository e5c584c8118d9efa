package history

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	dbpkg "github.com/dtnitsch/task-data-parser/pkg/db"
)

// Flags returns the history command flags.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "db", Usage: "run history database (default: next to the binary)"},
		&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "number of runs to show", Value: 10},
		&cli.BoolFlag{Name: "tasks", Usage: "also show per-task counts of the latest run"},
	}
}

// HistoryAction lists recent conversion runs.
func HistoryAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to open history database: %v", err), 2)
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet. Run 'tdp convert' first")
		return nil
	}

	RenderRuns(os.Stdout, runs, time.Now())

	if c.Bool("tasks") {
		tasks, err := database.GetRunTasks(runs[0].RunID)
		if err != nil {
			return err
		}
		RenderTasks(os.Stdout, tasks)
	}
	return nil
}

// RenderRuns prints runs as a table, with start times relative to now.
func RenderRuns(w io.Writer, runs []dbpkg.Run, now time.Time) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Run", "Started", "Duration", "Status", "Tasks", "Output"})
	for _, r := range runs {
		status := r.Status
		if r.Error != "" {
			status = fmt.Sprintf("%s: %s", r.Status, r.Error)
		}
		t.AppendRow(table.Row{
			r.RunID,
			humanize.RelTime(r.StartedAt, now, "ago", "from now"),
			r.Duration().Round(time.Millisecond),
			status,
			r.TaskCount,
			r.OutputDir,
		})
	}

	t.Render()
}

// RenderTasks prints the per-task counts of a run.
func RenderTasks(w io.Writer, tasks []dbpkg.RunTask) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Task", "Results", "Original", "Two-combo results", "Two-combos", "Three-combos"})
	for _, task := range tasks {
		t.AppendRow(table.Row{
			task.TaskName,
			task.Results,
			task.ResultsOriginal,
			task.TwoComboResults,
			task.TwoCombos,
			task.ThreeCombos,
		})
	}

	t.Render()
}
