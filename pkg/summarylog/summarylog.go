// Package summarylog extracts keyword-combination queries from search summary logs.
//
// Each useful line has the form
//
//	条件: keyword1+keyword2 | 结果: 42 条 | URL: https://...
//
// Conditions with two keywords become TwoCombo records, three keywords
// ThreeCombo records. Anything else is ignored.
package summarylog

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/dtnitsch/task-data-parser/internal/common"
	"github.com/dtnitsch/task-data-parser/models"
)

const linePrefix = "条件:"

const sp = common.Space

var linePattern = regexp.MustCompile(`^条件:` + sp + `*(.+?)` + sp + `*\|` + sp + `*结果:` + sp + `*(` + common.Digit + `+)` + sp + `*条` + sp + `*\|` + sp + `*URL:` + sp + `*(.+)`)

// ParseFile reads a summary log and parses it.
func ParseFile(path string) ([]models.TwoCombo, []models.ThreeCombo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read summary log: %w", err)
	}
	two, three := Parse(string(data))
	return two, three, nil
}

// Parse splits content into lines and routes every well-formed condition line
// to the two- or three-keyword list. The returned slices are never nil.
func Parse(content string) ([]models.TwoCombo, []models.ThreeCombo) {
	two := []models.TwoCombo{}
	three := []models.ThreeCombo{}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.HasPrefix(line, linePrefix) {
			continue
		}

		m := linePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		condition := strings.TrimSpace(m[1])
		count, err := common.Atoi(m[2])
		if err != nil {
			// Only reachable on overflow; the pattern guarantees digits.
			continue
		}
		url := strings.TrimSpace(m[3])

		keywords := SplitCondition(condition)
		switch len(keywords) {
		case 2:
			two = append(two, models.TwoCombo{
				Keyword1:  keywords[0],
				Keyword2:  keywords[1],
				Count:     count,
				URL:       url,
				Condition: condition,
			})
		case 3:
			three = append(three, models.ThreeCombo{
				Keyword1:  keywords[0],
				Keyword2:  keywords[1],
				Keyword3:  keywords[2],
				Count:     count,
				URL:       url,
				Condition: condition,
			})
		}
	}

	return two, three
}

// SplitCondition splits a condition on "+" and drops empty fragments.
func SplitCondition(condition string) []string {
	var keywords []string
	for _, k := range strings.Split(condition, "+") {
		k = strings.TrimSpace(k)
		if k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}
