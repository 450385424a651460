package semantic

import (
	"sort"
	"strings"
	"unicode"
)

// Category is the coarse class a keyword belongs to.
type Category string

const (
	CategoryValue   Category = "value"
	CategoryFactual Category = "factual"
)

// entry binds a canonical keyword to the word stems that signal it. A token
// matches a stem when it starts with it.
type entry struct {
	keyword string
	stems   []string
}

func defaultValueLexicon() []entry {
	return []entry{
		{"wellbeing", []string{"wellbeing", "welfare"}},
		{"duty", []string{"duty", "duties", "obligat"}},
		{"rights", []string{"right"}},
		{"fairness", []string{"fair", "equal", "equit"}},
		{"character", []string{"character", "virtu"}},
		{"honesty", []string{"honest"}},
		{"courage", []string{"courag"}},
		{"care", []string{"caring", "relationship"}},
		{"harm", []string{"harm"}},
		{"dignity", []string{"dignit", "respect"}},
		{"vulnerability", []string{"vulnerab", "dependent"}},
	}
}

func defaultFactualLexicon() []entry {
	return []entry{
		{"total", []string{"total", "aggregate", "sum"}},
		{"benefit", []string{"benefit"}},
		{"score", []string{"score"}},
		{"urgency", []string{"urgen"}},
		{"population", []string{"population", "people", "person"}},
		{"cost", []string{"cost", "budget", "price"}},
		{"distribution", []string{"distribut"}},
		{"evidence", []string{"evidence", "data", "measur"}},
	}
}

// Tokenize lowercases text and splits it on anything that is not a letter or
// digit.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func matchEntries(tokens []string, entries []entry) []string {
	found := make(map[string]struct{})
	for _, tok := range tokens {
		for _, e := range entries {
			for _, stem := range e.stems {
				if strings.HasPrefix(tok, stem) {
					found[e.keyword] = struct{}{}
					break
				}
			}
		}
	}
	out := make([]string, 0, len(found))
	for k := range found {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
