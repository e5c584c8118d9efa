// Package orchestrator discovers task inputs, runs the parsers and writes
// one JSON document per task plus index.json.
package orchestrator

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/task-data-parser/internal/common"
	"github.com/dtnitsch/task-data-parser/models"
	"github.com/dtnitsch/task-data-parser/pkg/comboresults"
	"github.com/dtnitsch/task-data-parser/pkg/manifest"
	"github.com/dtnitsch/task-data-parser/pkg/results"
	"github.com/dtnitsch/task-data-parser/pkg/storage"
	"github.com/dtnitsch/task-data-parser/pkg/summarylog"
)

const (
	ResultsFileName    = "results.txt"
	SummaryFilePattern = "*_summary.txt"
	summarySuffix      = "_summary"
)

// SourceFile is an input file that contributed to a task.
type SourceFile struct {
	Path string
	Kind string // "results", "two_combo_results" or "summary"
	Hash string
}

// Task is the aggregated data of one task name.
type Task struct {
	Name    string
	Data    *models.TaskData
	Dedup   *models.DedupStats // nil when the task has no results file
	Sources []SourceFile
}

// Collection holds tasks in the order they were first discovered.
type Collection struct {
	Tasks  []*Task
	byName map[string]*Task
}

func newCollection() *Collection {
	return &Collection{byName: make(map[string]*Task)}
}

// Get returns the task with the given name, or nil.
func (c *Collection) Get(name string) *Task {
	return c.byName[name]
}

// task returns the named task, creating it on first use.
func (c *Collection) task(name string) *Task {
	if t, ok := c.byName[name]; ok {
		return t
	}
	t := &Task{Name: name, Data: &models.TaskData{}}
	c.byName[name] = t
	c.Tasks = append(c.Tasks, t)
	return t
}

// Collector runs the discovery pass over the two input roots.
type Collector struct {
	logger  *slog.Logger
	storage *storage.Storage
}

func NewCollector(logger *slog.Logger, s *storage.Storage) *Collector {
	return &Collector{logger: logger, storage: s}
}

// Collect scans the task-data root and then the summary-logs root. Failure to
// list either root is returned; unreadable optional files are skipped.
func (c *Collector) Collect(taskDataDir, summaryLogsDir string) (*Collection, error) {
	col := newCollection()

	if err := c.collectTaskDirs(col, taskDataDir); err != nil {
		return nil, err
	}
	if err := c.collectSummaryLogs(col, summaryLogsDir); err != nil {
		return nil, err
	}

	return col, nil
}

func (c *Collector) collectTaskDirs(col *Collection, root string) error {
	dirs, err := c.storage.ListDirs(root)
	if err != nil {
		return fmt.Errorf("failed to scan task data: %w", err)
	}

	for _, name := range dirs {
		taskDir := filepath.Join(root, name)

		resultsPath := filepath.Join(taskDir, ResultsFileName)
		if c.storage.HasFile(resultsPath) {
			if data, ok := c.read(resultsPath); ok {
				parsed := results.Parse(string(data))
				stats := parsed.Stats()

				t := col.task(name)
				t.Data.Results = &parsed.Records
				t.Dedup = &stats
				t.Sources = append(t.Sources, SourceFile{Path: resultsPath, Kind: "results", Hash: common.ContentHash(data)})

				c.logger.Debug("parsed results", "task", name, "original", stats.Original, "deduplicated", stats.Deduplicated)
			}
		}

		comboPath := filepath.Join(taskDir, comboresults.FileName(name))
		if c.storage.HasFile(comboPath) {
			if data, ok := c.read(comboPath); ok {
				records := comboresults.Parse(string(data))

				t := col.task(name)
				t.Data.TwoComboResults = &records
				t.Sources = append(t.Sources, SourceFile{Path: comboPath, Kind: "two_combo_results", Hash: common.ContentHash(data)})

				c.logger.Debug("parsed combo results", "task", name, "count", len(records))
			}
		}
	}

	return nil
}

func (c *Collector) collectSummaryLogs(col *Collection, root string) error {
	files, err := c.storage.Glob(root, SummaryFilePattern)
	if err != nil {
		return fmt.Errorf("failed to scan summary logs: %w", err)
	}

	for _, path := range files {
		data, ok := c.read(path)
		if !ok {
			continue
		}

		name := TaskNameFromSummary(path)
		two, three := summarylog.Parse(string(data))

		t := col.task(name)
		t.Data.TwoCombos = &two
		t.Data.ThreeCombos = &three
		t.Sources = append(t.Sources, SourceFile{Path: path, Kind: "summary", Hash: common.ContentHash(data)})

		c.logger.Debug("parsed summary log", "task", name, "two_combos", len(two), "three_combos", len(three))
	}

	return nil
}

func (c *Collector) read(path string) ([]byte, bool) {
	data, err := c.storage.ReadFile(path)
	if err != nil {
		c.logger.Warn("skipping unreadable input", "path", path, "error", err)
		return nil, false
	}
	return data, true
}

// TaskNameFromSummary derives the task name from a summary log path:
// "logs/solar_summary.txt" → "solar".
func TaskNameFromSummary(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.TrimSuffix(stem, summarySuffix)
}

// OutputFile describes a written task document.
type OutputFile struct {
	Task      string
	Path      string
	SizeBytes int64
}

// WriteResult is what Write produced.
type WriteResult struct {
	IndexPath string
	Entries   []manifest.TaskEntry
	Files     []OutputFile
}

// Write saves one JSON document per task and the index. Any write failure
// aborts the run.
func Write(logger *slog.Logger, s *storage.Storage, col *Collection, outputDir string) (*WriteResult, error) {
	wr := &WriteResult{}

	for _, t := range col.Tasks {
		entry := manifest.NewTaskEntry(t.Name, t.Data)
		path := filepath.Join(outputDir, entry.Filename)

		size, err := s.SaveJSON(path, t.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to write task %s: %w", t.Name, err)
		}
		logger.Debug("saved task", "task", t.Name, "path", path, "size_bytes", size)

		wr.Entries = append(wr.Entries, entry)
		wr.Files = append(wr.Files, OutputFile{Task: t.Name, Path: path, SizeBytes: size})
	}

	indexPath, err := manifest.GenerateIndex(wr.Entries, outputDir, s)
	if err != nil {
		return nil, err
	}
	wr.IndexPath = indexPath

	return wr, nil
}
