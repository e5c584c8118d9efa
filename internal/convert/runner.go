package convert

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/dtnitsch/task-data-parser/models"
	"github.com/dtnitsch/task-data-parser/pkg/db"
	"github.com/dtnitsch/task-data-parser/pkg/langdetect"
	"github.com/dtnitsch/task-data-parser/pkg/orchestrator"
	"github.com/dtnitsch/task-data-parser/pkg/report"
	"github.com/dtnitsch/task-data-parser/pkg/storage"
)

// Runner performs one conversion run. DB and Detector are optional.
type Runner struct {
	Logger   *slog.Logger
	Storage  *storage.Storage
	DB       *db.DB
	Detector *langdetect.Detector
	Out      io.Writer
}

// Run converts the inputs named by cfg and returns the run summary.
// Only unreadable input roots and failed output writes are errors; history
// bookkeeping problems are logged.
func (r *Runner) Run(cfg *models.RunConfig) (*report.RunSummary, error) {
	runID := uuid.NewString()
	started := time.Now()
	logger := r.Logger.With("run_id", runID)

	if r.DB != nil {
		err := r.DB.StartRun(db.Run{
			RunID:          runID,
			StartedAt:      started,
			TaskDataDir:    cfg.TaskDataDir,
			SummaryLogsDir: cfg.SummaryLogsDir,
			OutputDir:      cfg.OutputDir,
		})
		if err != nil {
			logger.Warn("failed to record run start", "error", err)
		}
	}

	summary, err := r.convert(logger, runID, started, cfg)

	if r.DB != nil {
		taskCount := 0
		if summary != nil {
			taskCount = summary.TotalTasks
		}
		if ferr := r.DB.FinishRun(runID, taskCount, err); ferr != nil {
			logger.Warn("failed to record run finish", "error", ferr)
		}
	}

	if err != nil {
		logger.Error("conversion failed", "error", err)
		return nil, err
	}
	logger.Info("conversion finished", "tasks", summary.TotalTasks, "duration", time.Since(started).String())

	return summary, nil
}

func (r *Runner) convert(logger *slog.Logger, runID string, started time.Time, cfg *models.RunConfig) (*report.RunSummary, error) {
	logger.Info("collecting task data", "task_data_dir", cfg.TaskDataDir, "summary_logs_dir", cfg.SummaryLogsDir)

	col, err := orchestrator.NewCollector(logger, r.Storage).Collect(cfg.TaskDataDir, cfg.SummaryLogsDir)
	if err != nil {
		return nil, err
	}

	wr, err := orchestrator.Write(logger, r.Storage, col, cfg.OutputDir)
	if err != nil {
		return nil, err
	}

	b := &report.Builder{Detector: r.Detector}
	summary := b.Build(runID, cfg, started, col, wr)
	stats, err := r.Storage.GetFileStats(wr.IndexPath)
	if err != nil {
		return nil, err
	}
	summary.IndexSizeBytes = stats.SizeBytes
	summary.ChangedInputs = r.recordHistory(logger, runID, col, summary)

	if cfg.SummaryFile != "" {
		if err := report.WriteYAML(cfg.SummaryFile, summary, r.Storage); err != nil {
			return nil, err
		}
		logger.Info("run summary saved", "path", cfg.SummaryFile)
	}

	if r.Out != nil {
		for _, f := range wr.Files {
			fmt.Fprintf(r.Out, "Saved: %s\n", f.Path)
		}
		report.RenderTable(r.Out, summary)
		fmt.Fprintf(r.Out, "Index file: %s (%s)\n", wr.IndexPath, humanize.Bytes(uint64(stats.SizeBytes)))
	}

	return summary, nil
}

// recordHistory stores per-task counts and input hashes, returning the inputs
// whose content changed since the previous run.
func (r *Runner) recordHistory(logger *slog.Logger, runID string, col *orchestrator.Collection, summary *report.RunSummary) []string {
	if r.DB == nil {
		return nil
	}

	for _, ts := range summary.Tasks {
		rt := db.RunTask{
			TaskName:        ts.Name,
			Filename:        ts.Filename,
			Results:         ts.Results,
			ResultsOriginal: ts.Results,
			TwoComboResults: ts.TwoComboResults,
			TwoCombos:       ts.TwoCombos,
			ThreeCombos:     ts.ThreeCombos,
		}
		if ts.Dedup != nil {
			rt.ResultsOriginal = ts.Dedup.Original
		}
		if err := r.DB.InsertRunTask(runID, rt); err != nil {
			logger.Warn("failed to record task", "task", ts.Name, "error", err)
		}
	}

	var changed []string
	for _, t := range col.Tasks {
		for _, src := range t.Sources {
			isChanged, err := r.DB.RecordSourceFile(runID, src.Path, src.Kind, src.Hash)
			if err != nil {
				logger.Warn("failed to record source file", "path", src.Path, "error", err)
				continue
			}
			if isChanged {
				changed = append(changed, src.Path)
			}
		}
	}

	return changed
}
