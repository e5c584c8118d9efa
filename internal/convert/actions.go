package convert

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/task-data-parser/models"
	"github.com/dtnitsch/task-data-parser/pkg/db"
	"github.com/dtnitsch/task-data-parser/pkg/langdetect"
	"github.com/dtnitsch/task-data-parser/pkg/storage"
)

// Flags returns the flags shared by convert and watch.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file"},
		&cli.StringFlag{Name: "task-data", Usage: "task data root (one directory per task)", Value: models.DefaultTaskDataDir},
		&cli.StringFlag{Name: "summary-logs", Usage: "directory of <task>_summary.txt files", Value: models.DefaultSummaryLogsDir},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output directory for task JSON and index.json", Value: models.DefaultOutputDir},
		&cli.StringFlag{Name: "db", Usage: "run history database (default: next to the binary)"},
		&cli.BoolFlag{Name: "no-history", Usage: "do not record the run in the history database"},
		&cli.StringFlag{Name: "summary-file", Usage: "write a YAML run summary to this path"},
		&cli.BoolFlag{Name: "detect-languages", Usage: "detect result languages for the run summary"},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
	}
}

// ResolveConfig loads --config and applies any flags set on the command line.
func ResolveConfig(c *cli.Context) (*models.RunConfig, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("task-data") || cfg.TaskDataDir == "" {
		cfg.TaskDataDir = c.String("task-data")
	}
	if c.IsSet("summary-logs") || cfg.SummaryLogsDir == "" {
		cfg.SummaryLogsDir = c.String("summary-logs")
	}
	if c.IsSet("output") || cfg.OutputDir == "" {
		cfg.OutputDir = c.String("output")
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if c.Bool("no-history") {
		cfg.History = false
	}
	if c.IsSet("summary-file") {
		cfg.SummaryFile = c.String("summary-file")
	}
	if c.IsSet("detect-languages") {
		cfg.DetectLanguages = c.Bool("detect-languages")
	}
	if c.IsSet("cron") {
		cfg.Cron = c.String("cron")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewLogger builds the JSON stderr logger used by every command.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// NewRunner wires a Runner for cfg. The returned cleanup closes the history
// database, if one was opened.
func NewRunner(logger *slog.Logger, cfg *models.RunConfig) (*Runner, func(), error) {
	r := &Runner{
		Logger:  logger,
		Storage: &storage.Storage{},
		Out:     os.Stdout,
	}
	cleanup := func() {}

	if cfg.History {
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open history database: %w", err)
		}
		r.DB = database
		cleanup = func() { _ = database.Close() }
	}

	if cfg.DetectLanguages {
		logger.Info("loading language models")
		r.Detector = langdetect.NewDetector()
	}

	return r, cleanup, nil
}

// ConvertAction runs a single conversion.
func ConvertAction(c *cli.Context) error {
	logger := NewLogger(c)

	cfg, err := ResolveConfig(c)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return cli.Exit(err.Error(), 2)
	}

	runner, cleanup, err := NewRunner(logger, cfg)
	if err != nil {
		logger.Error("failed to initialize", "error", err)
		return cli.Exit(err.Error(), 2)
	}
	defer cleanup()

	if _, err := runner.Run(cfg); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}
