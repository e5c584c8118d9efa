package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- Runs: one row per conversion run
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,             -- uuid
    started_at TIMESTAMP NOT NULL,
    finished_at TIMESTAMP,
    task_data_dir TEXT NOT NULL,
    summary_logs_dir TEXT NOT NULL,
    output_dir TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'running', -- running, success, failed
    error TEXT,
    task_count INTEGER DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

-- Per-task counts for a run
CREATE TABLE IF NOT EXISTS run_tasks (
    run_task_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    task_name TEXT NOT NULL,
    filename TEXT NOT NULL,
    results INTEGER DEFAULT 0,
    results_original INTEGER DEFAULT 0,
    two_combo_results INTEGER DEFAULT 0,
    two_combos INTEGER DEFAULT 0,
    three_combos INTEGER DEFAULT 0,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    UNIQUE(run_id, task_name)
);

CREATE INDEX IF NOT EXISTS idx_run_tasks_run ON run_tasks(run_id);

-- Latest known content hash of every input file
CREATE TABLE IF NOT EXISTS source_files (
    path TEXT PRIMARY KEY,
    kind TEXT NOT NULL,                  -- results, two_combo_results, summary
    content_hash TEXT NOT NULL,
    last_run_id TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`
