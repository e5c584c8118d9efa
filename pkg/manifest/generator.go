package manifest

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dtnitsch/task-data-parser/models"
	"github.com/dtnitsch/task-data-parser/pkg/storage"
)

const IndexFileName = "index.json"

var unsafeFilenameChar = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeFilename turns a task name into a safe file name stem.
// Reserved characters become underscores; leading and trailing dots and
// spaces are removed.
func SanitizeFilename(name string) string {
	name = unsafeFilenameChar.ReplaceAllString(name, "_")
	return strings.Trim(name, ". ")
}

// TaskFilename returns the JSON file name for a task.
func TaskFilename(taskName string) string {
	return SanitizeFilename(taskName) + ".json"
}

// NewTaskEntry counts the lists of one task.
func NewTaskEntry(name string, data *models.TaskData) TaskEntry {
	return TaskEntry{
		Name:            name,
		Filename:        TaskFilename(name),
		TwoCombos:       data.TwoComboCount(),
		ThreeCombos:     data.ThreeComboCount(),
		Results:         data.ResultCount(),
		TwoComboResults: data.TwoComboResultCount(),
	}
}

// GenerateIndex writes index.json into outputDir.
// Returns the path to the generated index file and any error.
func GenerateIndex(entries []TaskEntry, outputDir string, s *storage.Storage) (string, error) {
	index := Index{
		Tasks:      entries,
		TotalTasks: len(entries),
	}
	if index.Tasks == nil {
		index.Tasks = []TaskEntry{}
	}

	indexPath := filepath.Join(outputDir, IndexFileName)
	if _, err := s.SaveJSON(indexPath, index); err != nil {
		return "", fmt.Errorf("error saving index: %w", err)
	}

	return indexPath, nil
}
