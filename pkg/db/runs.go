package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const (
	RunStatusRunning = "running"
	RunStatusSuccess = "success"
	RunStatusFailed  = "failed"
)

// Run represents a conversion run
type Run struct {
	RunID          string
	StartedAt      time.Time
	FinishedAt     *time.Time
	TaskDataDir    string
	SummaryLogsDir string
	OutputDir      string
	Status         string
	Error          string
	TaskCount      int
}

// Duration returns how long the run took, zero while still running.
func (r Run) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// RunTask holds the per-task counts recorded for a run
type RunTask struct {
	TaskName        string
	Filename        string
	Results         int
	ResultsOriginal int
	TwoComboResults int
	TwoCombos       int
	ThreeCombos     int
}

// StartRun inserts a run in the running state.
func (db *DB) StartRun(run Run) error {
	if run.Status == "" {
		run.Status = RunStatusRunning
	}
	_, err := db.Exec(`
		INSERT INTO runs (run_id, started_at, task_data_dir, summary_logs_dir, output_dir, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.RunID, run.StartedAt.UTC(), run.TaskDataDir, run.SummaryLogsDir, run.OutputDir, run.Status)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// FinishRun marks a run as finished. A non-nil runErr marks it failed.
func (db *DB) FinishRun(runID string, taskCount int, runErr error) error {
	status := RunStatusSuccess
	var errText sql.NullString
	if runErr != nil {
		status = RunStatusFailed
		errText = sql.NullString{String: runErr.Error(), Valid: true}
	}

	result, err := db.Exec(`
		UPDATE runs
		SET finished_at = ?, status = ?, error = ?, task_count = ?
		WHERE run_id = ?
	`, time.Now().UTC(), status, errText, taskCount, runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check run update: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("run not found: %s", runID)
	}
	return nil
}

// InsertRunTask records the counts of one task for a run.
func (db *DB) InsertRunTask(runID string, t RunTask) error {
	_, err := db.Exec(`
		INSERT INTO run_tasks (run_id, task_name, filename, results, results_original, two_combo_results, two_combos, three_combos)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, task_name) DO UPDATE SET
			filename = excluded.filename,
			results = excluded.results,
			results_original = excluded.results_original,
			two_combo_results = excluded.two_combo_results,
			two_combos = excluded.two_combos,
			three_combos = excluded.three_combos
	`, runID, t.TaskName, t.Filename, t.Results, t.ResultsOriginal, t.TwoComboResults, t.TwoCombos, t.ThreeCombos)
	if err != nil {
		return fmt.Errorf("failed to insert run task: %w", err)
	}
	return nil
}

// RecordSourceFile stores the content hash of an input file and reports
// whether it differs from the hash seen by the previous run.
// Files seen for the first time count as changed.
func (db *DB) RecordSourceFile(runID, path, kind, hash string) (bool, error) {
	var previous string
	err := db.QueryRow("SELECT content_hash FROM source_files WHERE path = ?", path).Scan(&previous)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("failed to check source file: %w", err)
	}
	changed := errors.Is(err, sql.ErrNoRows) || previous != hash

	_, err = db.Exec(`
		INSERT INTO source_files (path, kind, content_hash, last_run_id, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(path) DO UPDATE SET
			kind = excluded.kind,
			content_hash = excluded.content_hash,
			last_run_id = excluded.last_run_id,
			updated_at = CURRENT_TIMESTAMP
	`, path, kind, hash, runID)
	if err != nil {
		return false, fmt.Errorf("failed to record source file: %w", err)
	}

	return changed, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	rows, err := db.Query(`
		SELECT run_id, started_at, finished_at, task_data_dir, summary_logs_dir, output_dir,
		       status, COALESCE(error, ''), task_count
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var finished sql.NullTime
		if err := rows.Scan(&r.RunID, &r.StartedAt, &finished, &r.TaskDataDir, &r.SummaryLogsDir,
			&r.OutputDir, &r.Status, &r.Error, &r.TaskCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if finished.Valid {
			t := finished.Time
			r.FinishedAt = &t
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// GetRunTasks returns the task counts recorded for a run, ordered by task name.
func (db *DB) GetRunTasks(runID string) ([]RunTask, error) {
	rows, err := db.Query(`
		SELECT task_name, filename, results, results_original, two_combo_results, two_combos, three_combos
		FROM run_tasks
		WHERE run_id = ?
		ORDER BY task_name
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run tasks: %w", err)
	}
	defer rows.Close()

	var tasks []RunTask
	for rows.Next() {
		var t RunTask
		if err := rows.Scan(&t.TaskName, &t.Filename, &t.Results, &t.ResultsOriginal,
			&t.TwoComboResults, &t.TwoCombos, &t.ThreeCombos); err != nil {
			return nil, fmt.Errorf("failed to scan run task: %w", err)
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}
