package manifest

// Index represents the structure of index.json.
// The front-end loads it first to build its task list.
type Index struct {
	Tasks      []TaskEntry `json:"tasks"`
	TotalTasks int         `json:"total_tasks"`
}

// TaskEntry represents summary information for a single task file.
// Lists that were never discovered count as zero.
type TaskEntry struct {
	Name            string `json:"name"`
	Filename        string `json:"filename"`
	TwoCombos       int    `json:"two_combos"`
	ThreeCombos     int    `json:"three_combos"`
	Results         int    `json:"results"`
	TwoComboResults int    `json:"two_combo_results"`
}
