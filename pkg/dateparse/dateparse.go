// Package dateparse classifies free-form result dates into year/month buckets.
//
// Three layouts are recognized, in priority order: Spanish long dates
// ("9 de febrero del 2023"), English long dates ("December 25, 2022") and
// ISO-like dates ("2023-2-9") found anywhere in the string.
package dateparse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dtnitsch/task-data-parser/internal/common"
	"github.com/dtnitsch/task-data-parser/models"
)

var spanishMonths = map[string]int{
	"enero": 1, "febrero": 2, "marzo": 3, "abril": 4,
	"mayo": 5, "junio": 6, "julio": 7, "agosto": 8,
	"septiembre": 9, "octubre": 10, "noviembre": 11, "diciembre": 12,
}

var englishMonths = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4,
	"may": 5, "june": 6, "july": 7, "august": 8,
	"september": 9, "october": 10, "november": 11, "december": 12,
}

// word matches Unicode letters, digits and underscore so accented month
// spellings still reach the vocabulary lookup.
const word = `[\p{L}\p{N}_]+`

const (
	sp = common.Space
	d  = common.Digit
)

var (
	spanishPattern = regexp.MustCompile(`(` + d + `+)` + sp + `+de` + sp + `+(` + word + `)` + sp + `+del?` + sp + `+(` + d + `{4})`)
	englishPattern = regexp.MustCompile(`(` + word + `)` + sp + `+(` + d + `+),?` + sp + `+(` + d + `{4})`)
	isoPattern     = regexp.MustCompile(`(` + d + `{4})-(` + d + `{1,2})-(` + d + `{1,2})`)
)

// Parse returns the year/month classification of raw, or false when none of
// the known layouts match.
func Parse(raw string) (*models.DateInfo, bool) {
	s := strings.TrimSpace(strings.ToLower(raw))

	if m := spanishPattern.FindStringSubmatch(s); m != nil {
		if month, ok := spanishMonths[m[2]]; ok {
			return newDateInfo(m[3], month)
		}
	}

	if m := englishPattern.FindStringSubmatch(s); m != nil {
		if month, ok := englishMonths[m[1]]; ok {
			return newDateInfo(m[3], month)
		}
	}

	if m := isoPattern.FindStringSubmatch(s); m != nil {
		month, err := common.Atoi(m[2])
		if err != nil {
			return nil, false
		}
		return newDateInfo(m[1], month)
	}

	return nil, false
}

func newDateInfo(yearStr string, month int) (*models.DateInfo, bool) {
	year, err := common.Atoi(yearStr)
	if err != nil {
		return nil, false
	}
	ym := fmt.Sprintf("%s-%02d", yearStr, month)
	return &models.DateInfo{
		Year:      year,
		Month:     month,
		YearMonth: ym,
		YearStr:   yearStr,
		MonthStr:  ym,
	}, true
}
