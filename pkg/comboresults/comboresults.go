// Package comboresults parses two_combo_results files.
//
// Each line holds category|||keyword1|||keyword2|||<unused>|||count.
package comboresults

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dtnitsch/task-data-parser/models"
)

const (
	fieldSeparator = "|||"
	minFields      = 5
)

// FileName returns the combo results file name expected inside a task directory.
func FileName(taskName string) string {
	return fmt.Sprintf("two_combo_results_%s.txt", taskName)
}

// ParseFile reads a combo results file and parses it.
func ParseFile(path string) ([]models.SimpleComboRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read combo results: %w", err)
	}
	return Parse(string(data)), nil
}

// Parse returns one record per non-blank line with at least five fields.
func Parse(content string) []models.SimpleComboRecord {
	records := []models.SimpleComboRecord{}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Split(line, fieldSeparator)
		if len(parts) < minFields {
			continue
		}

		records = append(records, models.SimpleComboRecord{
			Category: strings.TrimSpace(parts[0]),
			Keyword1: strings.TrimSpace(parts[1]),
			Keyword2: strings.TrimSpace(parts[2]),
			Count:    parseCount(parts[4]),
		})
	}

	return records
}

// parseCount accepts only plain decimal digits; anything else is 0.
func parseCount(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
