package semantic

import "sort"

// Classifier maps free text to keyword categories. Implementations are
// heuristic; misclassification is tolerated downstream because conflict
// nature only nudges severity.
type Classifier interface {
	// Keywords returns the canonical keywords found in text with their category.
	Keywords(text string) map[string]Category
}

// KeywordClassifier is the lexicon-driven Classifier.
type KeywordClassifier struct {
	value   []entry
	factual []entry
}

// NewKeywordClassifier builds a classifier with the built-in lexicons.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{
		value:   defaultValueLexicon(),
		factual: defaultFactualLexicon(),
	}
}

func (c *KeywordClassifier) Keywords(text string) map[string]Category {
	tokens := Tokenize(text)
	out := make(map[string]Category)
	for _, k := range matchEntries(tokens, c.factual) {
		out[k] = CategoryFactual
	}
	for _, k := range matchEntries(tokens, c.value) {
		out[k] = CategoryValue
	}
	return out
}

// Shared returns the keywords of a given category present in both maps,
// sorted.
func Shared(a, b map[string]Category, category Category) []string {
	var out []string
	for k, cat := range a {
		if cat != category {
			continue
		}
		if other, ok := b[k]; ok && other == category {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// KeywordSet flattens a keyword map to its sorted keys.
func KeywordSet(m map[string]Category) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
