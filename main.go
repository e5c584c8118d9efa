package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/task-data-parser/internal/convert"
	"github.com/dtnitsch/task-data-parser/internal/history"
	"github.com/dtnitsch/task-data-parser/internal/watch"
)

func main() {
	app := &cli.App{
		Name:  "tdp",
		Usage: "convert search pipeline task logs into front-end JSON",
		Description: "Reads <task-data>/<task>/results.txt, <task-data>/<task>/two_combo_results_<task>.txt " +
			"and <summary-logs>/<task>_summary.txt, then writes <output>/<task>.json and <output>/index.json.",
		Flags:  convert.Flags(),
		Action: convert.ConvertAction,
		Commands: []*cli.Command{
			{
				Name:   "convert",
				Usage:  "parse all tasks once and write the JSON output",
				Flags:  convert.Flags(),
				Action: convert.ConvertAction,
			},
			{
				Name:   "watch",
				Usage:  "regenerate the JSON output on a cron schedule",
				Flags:  watch.Flags(),
				Action: watch.WatchAction,
			},
			{
				Name:   "history",
				Usage:  "list recent conversion runs",
				Flags:  history.Flags(),
				Action: history.HistoryAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
