package models

// TwoCombo is a two-keyword query from a summary log.
type TwoCombo struct {
	Keyword1  string `json:"keyword1"`
	Keyword2  string `json:"keyword2"`
	Count     int    `json:"count"`
	URL       string `json:"url"`
	Condition string `json:"condition"`
}

// ThreeCombo is a three-keyword query from a summary log.
type ThreeCombo struct {
	Keyword1  string `json:"keyword1"`
	Keyword2  string `json:"keyword2"`
	Keyword3  string `json:"keyword3"`
	Count     int    `json:"count"`
	URL       string `json:"url"`
	Condition string `json:"condition"`
}

// DateInfo is the year/month classification derived from a raw date string.
type DateInfo struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	YearMonth string `json:"year_month"`
	YearStr   string `json:"year_str"`
	MonthStr  string `json:"month_str"`
}

// ResultRecord is a single search result. The date fields are only
// serialized when DateInfo is set.
type ResultRecord struct {
	Date    string `json:"date"`
	Title   string `json:"title"`
	Content string `json:"content"`
	*DateInfo
}

// SimpleComboRecord is a line from a two_combo_results file.
type SimpleComboRecord struct {
	Category string `json:"category"`
	Keyword1 string `json:"keyword1"`
	Keyword2 string `json:"keyword2"`
	Count    int    `json:"count"`
}

// TaskData aggregates everything discovered for one task. A nil field means
// the source for that list was never found; a non-nil empty slice is
// written as [].
type TaskData struct {
	Results         *[]ResultRecord      `json:"results,omitempty"`
	TwoComboResults *[]SimpleComboRecord `json:"two_combo_results,omitempty"`
	TwoCombos       *[]TwoCombo          `json:"two_combos,omitempty"`
	ThreeCombos     *[]ThreeCombo        `json:"three_combos,omitempty"`
}

// ResultCount returns the number of results, zero when absent.
func (t *TaskData) ResultCount() int {
	if t.Results == nil {
		return 0
	}
	return len(*t.Results)
}

// TwoComboResultCount returns the number of two-combo result lines, zero when absent.
func (t *TaskData) TwoComboResultCount() int {
	if t.TwoComboResults == nil {
		return 0
	}
	return len(*t.TwoComboResults)
}

// TwoComboCount returns the number of two-keyword combos, zero when absent.
func (t *TaskData) TwoComboCount() int {
	if t.TwoCombos == nil {
		return 0
	}
	return len(*t.TwoCombos)
}

// ThreeComboCount returns the number of three-keyword combos, zero when absent.
func (t *TaskData) ThreeComboCount() int {
	if t.ThreeCombos == nil {
		return 0
	}
	return len(*t.ThreeCombos)
}

// DedupStats records how many raw result items collapsed into unique records.
type DedupStats struct {
	Original     int `json:"original" yaml:"original"`
	Deduplicated int `json:"deduplicated" yaml:"deduplicated"`
	Removed      int `json:"removed" yaml:"removed"`
}
