package qualitycheck

import (
	"bufio"
	"embed"
	"log"
	"regexp"
	"strings"
	"sync"

	"github.com/sajari/fuzzy"
)

//go:embed data/words.txt
var embeddedFS embed.FS

var (
	spellOnce  sync.Once
	fuzzyModel *fuzzy.Model
	dictionary map[string]bool
)

var (
	docstringRegexp = regexp.MustCompile(`(?s)"""(.*?)"""`)
	wordRegexp      = regexp.MustCompile(`[A-Za-z]+`)
)

// initSpelling loads the embedded dictionary and trains the fuzzy model
// once per process
func initSpelling() {
	spellOnce.Do(func() {
		dictionary = make(map[string]bool)

		model := fuzzy.NewModel()
		model.SetDepth(2)
		model.SetThreshold(1)

		file, err := embeddedFS.Open("data/words.txt")
		if err != nil {
			log.Printf("[QualityCheck] Error opening embedded dictionary: %v", err)
			fuzzyModel = model
			return
		}
		defer file.Close()

		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			word := strings.ToLower(strings.TrimSpace(scanner.Text()))
			if word != "" {
				dictionary[word] = true
				model.TrainWord(word)
			}
		}
		if err := scanner.Err(); err != nil {
			log.Printf("[QualityCheck] Error reading embedded dictionary: %v", err)
		}

		fuzzyModel = model
	})
}

// checkSpelling scans the docstrings of Python files for words missing
// from the dictionary. The result is informational and does not affect
// any score.
func checkSpelling(files []SourceFile) *SpellingDiagnostic {
	initSpelling()

	diagnostic := &SpellingDiagnostic{Misspelled: []Misspelling{}}
	reported := map[string]bool{}

	for _, file := range files {
		if file.Language != "python" {
			continue
		}
		for _, doc := range docstringRegexp.FindAllStringSubmatch(file.Content, -1) {
			for _, word := range wordRegexp.FindAllString(doc[1], -1) {
				if len(word) < 4 {
					continue
				}
				lower := strings.ToLower(word)
				diagnostic.CheckedWords++

				if dictionary[lower] || reported[lower] {
					continue
				}

				suggestions := fuzzyModel.SpellCheckSuggestions(lower, 3)
				if len(suggestions) == 0 {
					// No close dictionary word; likely an identifier or
					// domain term, not a typo
					continue
				}

				reported[lower] = true
				diagnostic.Misspelled = append(diagnostic.Misspelled, Misspelling{
					Word:        word,
					Suggestions: suggestions,
				})
			}
		}
	}

	return diagnostic
}
