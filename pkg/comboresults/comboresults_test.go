package comboresults

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dtnitsch/task-data-parser/models"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []models.SimpleComboRecord
	}{
		{
			name: "numeric count",
			line: "catA|||kw1|||kw2|||ignored|||7",
			want: []models.SimpleComboRecord{{Category: "catA", Keyword1: "kw1", Keyword2: "kw2", Count: 7}},
		},
		{
			name: "non numeric count defaults to zero",
			line: "catA|||kw1|||kw2|||x|||abc",
			want: []models.SimpleComboRecord{{Category: "catA", Keyword1: "kw1", Keyword2: "kw2", Count: 0}},
		},
		{
			name: "negative count defaults to zero",
			line: "c|||a|||b|||x|||-3",
			want: []models.SimpleComboRecord{{Category: "c", Keyword1: "a", Keyword2: "b", Count: 0}},
		},
		{
			name: "fields are trimmed",
			line: " c ||| a ||| b ||| x ||| 12 |||extra",
			want: []models.SimpleComboRecord{{Category: "c", Keyword1: "a", Keyword2: "b", Count: 12}},
		},
		{
			name: "too few fields",
			line: "c|||a|||b|||7",
			want: []models.SimpleComboRecord{},
		},
		{
			name: "empty count field",
			line: "c|||a|||b|||x|||",
			want: []models.SimpleComboRecord{{Category: "c", Keyword1: "a", Keyword2: "b", Count: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.line)
			if len(got) != len(tt.want) {
				t.Fatalf("Parse() returned %d records, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Parse()[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParse_MultipleLines(t *testing.T) {
	content := "a|||k1|||k2|||-|||1\n\n   \nb|||k3|||k4|||-|||2\r\nbroken\n"

	got := Parse(content)
	if len(got) != 2 {
		t.Fatalf("Parse() returned %d records, want 2", len(got))
	}
	if got[0].Category != "a" || got[1].Category != "b" {
		t.Errorf("records out of order: %+v", got)
	}
	if got[1].Count != 2 {
		t.Errorf("Count = %d, want 2", got[1].Count)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName("solar"))
	if err := os.WriteFile(path, []byte("cat|||a|||b|||x|||5\n"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	got, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if len(got) != 1 || got[0].Count != 5 {
		t.Errorf("ParseFile() = %+v", got)
	}

	if _, err := ParseFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("ParseFile() on missing file should fail")
	}
}

func TestFileName(t *testing.T) {
	if got := FileName("solar"); got != "two_combo_results_solar.txt" {
		t.Errorf("FileName() = %q", got)
	}
}
