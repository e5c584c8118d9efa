package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/task-data-parser/internal/convert"
	"github.com/dtnitsch/task-data-parser/models"
)

// Flags returns the convert flags plus --cron.
func Flags() []cli.Flag {
	return append(convert.Flags(),
		&cli.StringFlag{Name: "cron", Usage: "5-field cron schedule", Value: models.DefaultCron},
		&cli.BoolFlag{Name: "now", Usage: "run once immediately before waiting for the schedule"},
	)
}

// Scheduler reruns a conversion on a cron schedule.
type Scheduler struct {
	logger *slog.Logger
	cron   *cron.Cron
}

func NewScheduler(logger *slog.Logger) *Scheduler {
	// Standard 5-field cron parser (minute hour day month weekday)
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	c := cron.New(
		cron.WithParser(parser),
		cron.WithLogger(cronLogger{logger}),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger}), cron.Recover(cronLogger{logger})),
	)
	return &Scheduler{logger: logger, cron: c}
}

// cronLogger routes cron's internal messages through slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append([]interface{}{"error", err}, keysAndValues...)...)
}

// Schedule registers job under expr.
func (s *Scheduler) Schedule(expr string, job func()) error {
	if _, err := s.cron.AddFunc(expr, job); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", expr, err)
	}
	return nil
}

// Run starts the scheduler and blocks until ctx is done, then waits for a
// running job to finish.
func (s *Scheduler) Run(ctx context.Context) {
	s.cron.Start()
	s.logger.Info("scheduler started", "entries", len(s.cron.Entries()))

	<-ctx.Done()

	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// WatchAction regenerates the output on a schedule until interrupted.
func WatchAction(c *cli.Context) error {
	logger := convert.NewLogger(c)

	cfg, err := convert.ResolveConfig(c)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return cli.Exit(err.Error(), 2)
	}

	runner, cleanup, err := convert.NewRunner(logger, cfg)
	if err != nil {
		logger.Error("failed to initialize", "error", err)
		return cli.Exit(err.Error(), 2)
	}
	defer cleanup()

	job := func() {
		// Errors are already logged by the runner; the next tick retries.
		_, _ = runner.Run(cfg)
	}

	s := NewScheduler(logger)
	if err := s.Schedule(cfg.Cron, job); err != nil {
		logger.Error("failed to schedule conversion", "error", err)
		return cli.Exit(err.Error(), 2)
	}

	if c.Bool("now") {
		job()
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("watching", "cron", cfg.Cron, "task_data_dir", cfg.TaskDataDir, "summary_logs_dir", cfg.SummaryLogsDir)
	s.Run(ctx)
	return nil
}
