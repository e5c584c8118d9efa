package mapreduce

import (
	"fmt"
	"sort"

	"github.com/dtnitsch/task-data-parser/models"
)

// Map sums the search hit counts of every keyword used in a task's combo queries.
func Map(data *models.TaskData) map[string]int {
	hits := make(map[string]int)

	if data.TwoCombos != nil {
		for _, c := range *data.TwoCombos {
			hits[c.Keyword1] += c.Count
			hits[c.Keyword2] += c.Count
		}
	}
	if data.ThreeCombos != nil {
		for _, c := range *data.ThreeCombos {
			hits[c.Keyword1] += c.Count
			hits[c.Keyword2] += c.Count
			hits[c.Keyword3] += c.Count
		}
	}
	if data.TwoComboResults != nil {
		for _, c := range *data.TwoComboResults {
			hits[c.Keyword1] += c.Count
			hits[c.Keyword2] += c.Count
		}
	}

	return hits
}

// Reduce aggregates a slice of keyword hit maps into a single map.
func Reduce(intermediate []map[string]int) map[string]int {
	finalResults := make(map[string]int)

	for _, counts := range intermediate {
		for word, count := range counts {
			finalResults[word] += count
		}
	}

	return finalResults
}

// TopKeywords returns the top N keywords as "keyword:hits" strings, highest
// first. Equal counts sort by keyword.
func TopKeywords(hits map[string]int, n int) []string {
	type kv struct {
		Key   string
		Value int
	}

	ss := make([]kv, 0, len(hits))
	for k, v := range hits {
		ss = append(ss, kv{k, v})
	}

	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Value != ss[j].Value {
			return ss[i].Value > ss[j].Value
		}
		return ss[i].Key < ss[j].Key
	})

	limit := n
	if len(ss) < n {
		limit = len(ss)
	}
	if limit < 0 {
		limit = 0
	}

	keywords := make([]string, limit)
	for i := 0; i < limit; i++ {
		keywords[i] = fmt.Sprintf("%s:%d", ss[i].Key, ss[i].Value)
	}

	return keywords
}
