package orchestrator

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtnitsch/task-data-parser/pkg/manifest"
	"github.com/dtnitsch/task-data-parser/pkg/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// fixture lays out:
//
//	task_data/solar/results.txt
//	task_data/solar/two_combo_results_solar.txt
//	task_data/wind/ (empty)
//	task_data/notes.txt (file, ignored)
//	logs/solar_summary.txt
//	logs/hydro_summary.txt
//	logs/readme.txt (ignored)
func fixture(t *testing.T) (taskDir, logDir string) {
	t.Helper()
	root := t.TempDir()
	taskDir = filepath.Join(root, "task_data")
	logDir = filepath.Join(root, "logs")

	writeFile(t, filepath.Join(taskDir, "solar", "results.txt"),
		"2023-01-05|||Panel news|||Prices fell\n---QUERY_RESULT_END---\n"+
			"2023-01-06|||Panel  news|||Prices\nfell\n---QUERY_RESULT_END---\n"+
			"not a date|||Other|||Body\n---QUERY_RESULT_END---\n")
	writeFile(t, filepath.Join(taskDir, "solar", "two_combo_results_solar.txt"),
		"energy|||solar|||panel|||x|||12\n")
	require.NoError(t, os.MkdirAll(filepath.Join(taskDir, "wind"), 0755))
	writeFile(t, filepath.Join(taskDir, "notes.txt"), "ignored")

	writeFile(t, filepath.Join(logDir, "solar_summary.txt"),
		"条件: solar+panel | 结果: 42 条 | URL: http://x\n"+
			"条件: solar+panel+cost | 结果: 3 条 | URL: http://y\n")
	writeFile(t, filepath.Join(logDir, "hydro_summary.txt"),
		"条件: hydro+dam | 结果: 8 条 | URL: http://z\n")
	writeFile(t, filepath.Join(logDir, "readme.txt"), "条件: a+b | 结果: 1 条 | URL: u\n")

	return taskDir, logDir
}

func TestCollect(t *testing.T) {
	taskDir, logDir := fixture(t)
	c := NewCollector(discardLogger(), &storage.Storage{})

	col, err := c.Collect(taskDir, logDir)
	require.NoError(t, err)

	// wind has neither file, so it never becomes a task
	names := make([]string, 0, len(col.Tasks))
	for _, task := range col.Tasks {
		names = append(names, task.Name)
	}
	assert.Equal(t, []string{"solar", "hydro"}, names)

	solar := col.Get("solar")
	require.NotNil(t, solar)
	assert.Equal(t, 2, solar.Data.ResultCount())
	assert.Equal(t, 1, solar.Data.TwoComboResultCount())
	assert.Equal(t, 1, solar.Data.TwoComboCount())
	assert.Equal(t, 1, solar.Data.ThreeComboCount())
	require.NotNil(t, solar.Dedup)
	assert.Equal(t, 3, solar.Dedup.Original)
	assert.Equal(t, 1, solar.Dedup.Removed)
	assert.Len(t, solar.Sources, 3)

	hydro := col.Get("hydro")
	require.NotNil(t, hydro)
	assert.Nil(t, hydro.Data.Results)
	assert.Nil(t, hydro.Dedup)
	assert.Equal(t, 1, hydro.Data.TwoComboCount())
	assert.Equal(t, 0, hydro.Data.ThreeComboCount())

	assert.Nil(t, col.Get("readme"))
}

func TestCollect_MissingRootsAreFatal(t *testing.T) {
	taskDir, logDir := fixture(t)
	c := NewCollector(discardLogger(), &storage.Storage{})

	_, err := c.Collect(filepath.Join(taskDir, "nope"), logDir)
	assert.Error(t, err)

	_, err = c.Collect(taskDir, filepath.Join(logDir, "nope"))
	assert.Error(t, err)
}

func TestCollect_ResultsDirectoryIsNotAFile(t *testing.T) {
	root := t.TempDir()
	taskDir := filepath.Join(root, "task_data")
	logDir := filepath.Join(root, "logs")
	require.NoError(t, os.MkdirAll(filepath.Join(taskDir, "odd", "results.txt"), 0755))
	require.NoError(t, os.MkdirAll(logDir, 0755))

	col, err := NewCollector(discardLogger(), &storage.Storage{}).Collect(taskDir, logDir)
	require.NoError(t, err)
	assert.Empty(t, col.Tasks)
}

func TestTaskNameFromSummary(t *testing.T) {
	assert.Equal(t, "solar", TaskNameFromSummary("/logs/solar_summary.txt"))
	assert.Equal(t, "光伏 solar", TaskNameFromSummary("光伏 solar_summary.txt"))
	assert.Equal(t, "a_summary_b", TaskNameFromSummary("a_summary_b_summary.txt"))
}

func TestWrite(t *testing.T) {
	taskDir, logDir := fixture(t)
	outDir := filepath.Join(t.TempDir(), "data")
	s := &storage.Storage{}

	col, err := NewCollector(discardLogger(), s).Collect(taskDir, logDir)
	require.NoError(t, err)

	wr, err := Write(discardLogger(), s, col, outDir)
	require.NoError(t, err)
	require.Len(t, wr.Files, 2)
	assert.Equal(t, filepath.Join(outDir, "index.json"), wr.IndexPath)

	raw, err := os.ReadFile(filepath.Join(outDir, "solar.json"))
	require.NoError(t, err)
	var solar map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &solar))
	assert.Contains(t, solar, "results")
	assert.Contains(t, solar, "two_combo_results")
	assert.Contains(t, solar, "two_combos")
	assert.Contains(t, solar, "three_combos")

	raw, err = os.ReadFile(filepath.Join(outDir, "hydro.json"))
	require.NoError(t, err)
	var hydro map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &hydro))
	assert.NotContains(t, hydro, "results")
	assert.NotContains(t, hydro, "two_combo_results")
	// an empty but discovered list is still written
	assert.JSONEq(t, `[]`, string(hydro["three_combos"]))

	raw, err = os.ReadFile(wr.IndexPath)
	require.NoError(t, err)
	var index manifest.Index
	require.NoError(t, json.Unmarshal(raw, &index))
	assert.Equal(t, 2, index.TotalTasks)
	assert.Equal(t, manifest.TaskEntry{
		Name: "hydro", Filename: "hydro.json", TwoCombos: 1,
	}, index.Tasks[1])
	assert.Equal(t, 2, index.Tasks[0].Results)
	assert.Equal(t, 1, index.Tasks[0].TwoComboResults)
}

func TestWrite_OverwritesExistingOutput(t *testing.T) {
	taskDir, logDir := fixture(t)
	outDir := t.TempDir()
	s := &storage.Storage{}
	writeFile(t, filepath.Join(outDir, "hydro.json"), "stale content that is much longer than the new document should be")

	col, err := NewCollector(discardLogger(), s).Collect(taskDir, logDir)
	require.NoError(t, err)
	_, err = Write(discardLogger(), s, col, outDir)
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(outDir, "hydro.json"))
	require.NoError(t, err)
	assert.True(t, json.Valid(raw))
}

func TestWrite_UnwritableOutputIsFatal(t *testing.T) {
	taskDir, logDir := fixture(t)
	s := &storage.Storage{}
	blocker := filepath.Join(t.TempDir(), "blocker")
	writeFile(t, blocker, "a file where the output dir should be")

	col, err := NewCollector(discardLogger(), s).Collect(taskDir, logDir)
	require.NoError(t, err)
	_, err = Write(discardLogger(), s, col, blocker)
	assert.Error(t, err)
}
