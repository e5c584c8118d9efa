package report

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/task-data-parser/models"
	"github.com/dtnitsch/task-data-parser/pkg/orchestrator"
	"github.com/dtnitsch/task-data-parser/pkg/storage"
)

func buildRun(t *testing.T) (*models.RunConfig, *orchestrator.Collection, *orchestrator.WriteResult) {
	t.Helper()
	root := t.TempDir()
	cfg := &models.RunConfig{
		TaskDataDir:    filepath.Join(root, "task_data"),
		SummaryLogsDir: filepath.Join(root, "logs"),
		OutputDir:      filepath.Join(root, "data"),
	}

	files := map[string]string{
		filepath.Join(cfg.TaskDataDir, "solar", "results.txt"): "9 de febrero del 2023|||A|||x\n---QUERY_RESULT_END---\n" +
			"December 25, 2022|||A|||x\n---QUERY_RESULT_END---\n" +
			"2023-2-20|||B|||y\n---QUERY_RESULT_END---\n" +
			"someday|||C|||z\n---QUERY_RESULT_END---\n",
		filepath.Join(cfg.SummaryLogsDir, "solar_summary.txt"): "条件: solar+panel | 结果: 40 条 | URL: u\n",
		filepath.Join(cfg.SummaryLogsDir, "wind_summary.txt"):  "条件: wind+turbine+cost | 结果: 5 条 | URL: u\n",
	}
	for path, content := range files {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := &storage.Storage{}
	col, err := orchestrator.NewCollector(logger, s).Collect(cfg.TaskDataDir, cfg.SummaryLogsDir)
	require.NoError(t, err)
	wr, err := orchestrator.Write(logger, s, col, cfg.OutputDir)
	require.NoError(t, err)

	return cfg, col, wr
}

func TestBuild(t *testing.T) {
	cfg, col, wr := buildRun(t)

	b := &Builder{}
	summary := b.Build("run-1", cfg, time.Now(), col, wr)

	assert.Equal(t, "run-1", summary.RunID)
	assert.Equal(t, 2, summary.TotalTasks)
	require.Len(t, summary.Tasks, 2)

	solar := summary.Tasks[0]
	assert.Equal(t, "solar", solar.Name)
	assert.Equal(t, 3, solar.Results)
	require.NotNil(t, solar.Dedup)
	assert.Equal(t, 1, solar.Dedup.Removed)
	require.NotNil(t, solar.Dates)
	assert.Equal(t, 2, solar.Dates.Parsed)
	assert.Equal(t, 1, solar.Dates.Unparsed)
	assert.Equal(t, map[string]int{"2023-02": 2}, solar.Dates.ByYearMonth)
	assert.Equal(t, []string{"panel:40", "solar:40"}, solar.TopKeywords)
	assert.Positive(t, solar.SizeBytes)
	assert.Empty(t, solar.Language)

	wind := summary.Tasks[1]
	assert.Nil(t, wind.Dates)
	assert.Nil(t, wind.Dedup)
	assert.Equal(t, 1, wind.ThreeCombos)

	assert.Equal(t, "panel:40", summary.TopKeywords[0])
	assert.Len(t, summary.TopKeywords, 5)
}

func TestWriteYAML(t *testing.T) {
	cfg, col, wr := buildRun(t)
	summary := (&Builder{}).Build("run-1", cfg, time.Now(), col, wr)

	path := filepath.Join(t.TempDir(), "reports", "run-summary.yaml")
	require.NoError(t, WriteYAML(path, summary, &storage.Storage{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got RunSummary
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, 2, got.TotalTasks)
	assert.Equal(t, "solar.json", got.Tasks[0].Filename)
}

func TestRenderTable(t *testing.T) {
	cfg, col, wr := buildRun(t)
	summary := (&Builder{}).Build("run-1", cfg, time.Now(), col, wr)

	var buf bytes.Buffer
	RenderTable(&buf, summary)
	out := buf.String()

	assert.Contains(t, out, "solar")
	assert.Contains(t, out, "wind")
	assert.Contains(t, out, "3 (original: 4, removed 1 duplicates)")
	assert.Contains(t, out, "2 tasks")
	assert.True(t, strings.Count(out, "\n") > 4)
}
