// Package results parses query result dumps and removes duplicate records.
package results

import (
	"fmt"
	"os"
	"strings"

	"github.com/dtnitsch/task-data-parser/models"
	"github.com/dtnitsch/task-data-parser/pkg/dateparse"
)

const (
	ItemSeparator  = "---QUERY_RESULT_END---"
	FieldSeparator = "|||"
)

// Parsed holds the unique records of a results file along with the number of
// non-blank raw items seen before deduplication.
type Parsed struct {
	Records  []models.ResultRecord
	RawCount int
}

// Stats summarizes how much deduplication removed.
func (p *Parsed) Stats() models.DedupStats {
	return models.DedupStats{
		Original:     p.RawCount,
		Deduplicated: len(p.Records),
		Removed:      p.RawCount - len(p.Records),
	}
}

// ParseFile reads a results file and parses it.
func ParseFile(path string) (*Parsed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results: %w", err)
	}
	return Parse(string(data)), nil
}

// Parse splits content into result items and keeps the first occurrence of
// every distinct title/content pair. Records keep their original text;
// whitespace only matters for the dedup key.
func Parse(content string) *Parsed {
	p := &Parsed{Records: []models.ResultRecord{}}
	seen := make(map[string]struct{})

	for _, item := range strings.Split(content, ItemSeparator) {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		p.RawCount++

		parts := strings.Split(item, FieldSeparator)
		if len(parts) < 3 {
			continue
		}
		date := strings.TrimSpace(parts[0])
		title := strings.TrimSpace(parts[1])
		text := strings.TrimSpace(parts[2])

		key := DedupKey(title, text)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		record := models.ResultRecord{
			Date:    date,
			Title:   title,
			Content: text,
		}
		if info, ok := dateparse.Parse(date); ok {
			record.DateInfo = info
		}
		p.Records = append(p.Records, record)
	}

	return p
}

// DedupKey builds the identity of a result from its title and content with
// every whitespace run collapsed to a single space.
func DedupKey(title, content string) string {
	return normalizeSpace(title) + FieldSeparator + normalizeSpace(content)
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
