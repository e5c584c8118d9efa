// Package langdetect finds the dominant language of a task's result texts.
package langdetect

import (
	"sort"
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Unknown is reported when no text could be classified.
const Unknown = "unknown"

// Detector wraps a lingua detector restricted to the languages the crawl
// pipeline searches in. Building one loads language models, so create it
// once per run.
type Detector struct {
	detector lingua.LanguageDetector
}

func NewDetector() *Detector {
	d := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.English, lingua.Spanish, lingua.Chinese).
		Build()
	return &Detector{detector: d}
}

// Detect returns the lowercase ISO 639-1 code of text's language, or Unknown.
func (d *Detector) Detect(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return Unknown
	}
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return Unknown
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}

// Distribution counts the detected language of each text.
func (d *Detector) Distribution(texts []string) map[string]int {
	dist := make(map[string]int)
	for _, text := range texts {
		dist[d.Detect(text)]++
	}
	return dist
}

// Dominant returns the most frequent known language in dist.
// Ties resolve alphabetically so output is stable.
func Dominant(dist map[string]int) string {
	langs := make([]string, 0, len(dist))
	for lang := range dist {
		if lang != Unknown {
			langs = append(langs, lang)
		}
	}
	if len(langs) == 0 {
		return Unknown
	}
	sort.Slice(langs, func(i, j int) bool {
		if dist[langs[i]] != dist[langs[j]] {
			return dist[langs[i]] > dist[langs[j]]
		}
		return langs[i] < langs[j]
	})
	return langs[0]
}
