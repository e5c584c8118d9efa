// Package report builds the run summary: per-task counts, deduplication
// savings, date coverage, keyword hits and result languages.
package report

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/task-data-parser/models"
	"github.com/dtnitsch/task-data-parser/pkg/langdetect"
	"github.com/dtnitsch/task-data-parser/pkg/mapreduce"
	"github.com/dtnitsch/task-data-parser/pkg/orchestrator"
	"github.com/dtnitsch/task-data-parser/pkg/storage"
)

const topKeywordLimit = 10

// RunSummary is the document written to --summary-file.
type RunSummary struct {
	RunID          string        `yaml:"run_id"`
	StartedAt      time.Time     `yaml:"started_at"`
	FinishedAt     time.Time     `yaml:"finished_at"`
	TaskDataDir    string        `yaml:"task_data_dir"`
	SummaryLogsDir string        `yaml:"summary_logs_dir"`
	OutputDir      string        `yaml:"output_dir"`
	IndexPath      string        `yaml:"index_path"`
	IndexSizeBytes int64         `yaml:"index_size_bytes"`
	TotalTasks     int           `yaml:"total_tasks"`
	TopKeywords    []string      `yaml:"top_keywords,omitempty"`
	ChangedInputs  []string      `yaml:"changed_inputs,omitempty"`
	Tasks          []TaskSummary `yaml:"tasks"`
}

// TaskSummary describes one task's output.
type TaskSummary struct {
	Name            string             `yaml:"name"`
	Filename        string             `yaml:"filename"`
	SizeBytes       int64              `yaml:"size_bytes"`
	Results         int                `yaml:"results"`
	TwoComboResults int                `yaml:"two_combo_results"`
	TwoCombos       int                `yaml:"two_combos"`
	ThreeCombos     int                `yaml:"three_combos"`
	Dedup           *models.DedupStats `yaml:"dedup,omitempty"`
	Dates           *DateCoverage      `yaml:"dates,omitempty"`
	TopKeywords     []string           `yaml:"top_keywords,omitempty"`
	Language        string             `yaml:"language,omitempty"`
	Languages       map[string]int     `yaml:"languages,omitempty"`
}

// DateCoverage counts how many results carry a parsed date, bucketed by month.
type DateCoverage struct {
	Parsed      int            `yaml:"parsed"`
	Unparsed    int            `yaml:"unparsed"`
	ByYearMonth map[string]int `yaml:"by_year_month,omitempty"`
}

// Builder assembles a RunSummary. Detector is optional.
type Builder struct {
	Detector *langdetect.Detector
}

// Build summarizes a collected and written run.
func (b *Builder) Build(runID string, cfg *models.RunConfig, started time.Time, col *orchestrator.Collection, wr *orchestrator.WriteResult) *RunSummary {
	summary := &RunSummary{
		RunID:          runID,
		StartedAt:      started,
		FinishedAt:     time.Now(),
		TaskDataDir:    cfg.TaskDataDir,
		SummaryLogsDir: cfg.SummaryLogsDir,
		OutputDir:      cfg.OutputDir,
		IndexPath:      wr.IndexPath,
		TotalTasks:     len(col.Tasks),
	}

	sizes := make(map[string]int64, len(wr.Files))
	for _, f := range wr.Files {
		sizes[f.Task] = f.SizeBytes
	}

	var allHits []map[string]int
	for i, t := range col.Tasks {
		entry := wr.Entries[i]
		ts := TaskSummary{
			Name:            t.Name,
			Filename:        entry.Filename,
			SizeBytes:       sizes[t.Name],
			Results:         entry.Results,
			TwoComboResults: entry.TwoComboResults,
			TwoCombos:       entry.TwoCombos,
			ThreeCombos:     entry.ThreeCombos,
			Dedup:           t.Dedup,
		}

		if t.Data.Results != nil {
			ts.Dates = dateCoverage(*t.Data.Results)
			if b.Detector != nil {
				texts := make([]string, 0, len(*t.Data.Results))
				for _, r := range *t.Data.Results {
					texts = append(texts, r.Title+"\n"+r.Content)
				}
				ts.Languages = b.Detector.Distribution(texts)
				ts.Language = langdetect.Dominant(ts.Languages)
			}
		}

		hits := mapreduce.Map(t.Data)
		ts.TopKeywords = mapreduce.TopKeywords(hits, topKeywordLimit)
		allHits = append(allHits, hits)

		summary.Tasks = append(summary.Tasks, ts)
	}
	summary.TopKeywords = mapreduce.TopKeywords(mapreduce.Reduce(allHits), topKeywordLimit)

	return summary
}

func dateCoverage(records []models.ResultRecord) *DateCoverage {
	dc := &DateCoverage{ByYearMonth: make(map[string]int)}
	for _, r := range records {
		if r.DateInfo == nil {
			dc.Unparsed++
			continue
		}
		dc.Parsed++
		dc.ByYearMonth[r.YearMonth]++
	}
	return dc
}

// WriteYAML saves the summary as YAML.
func WriteYAML(path string, summary *RunSummary, s *storage.Storage) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}
	if err := s.SaveFile(path, data); err != nil {
		return fmt.Errorf("failed to write run summary: %w", err)
	}
	return nil
}
