package semantic

import (
	"regexp"
	"strings"
)

// Tag labels the moral element a sentence expresses.
type Tag string

const (
	TagDuty        Tag = "duty"
	TagUtility     Tag = "utility"
	TagVirtue      Tag = "virtue"
	TagConsequence Tag = "consequence"
	TagCare        Tag = "care"
	TagJustice     Tag = "justice"
)

var sentenceBoundary = regexp.MustCompile(`[.!?;]+(\s+|$)`)

// negativeMarkers flag a sentence as forbidding whatever option it names.
var negativeMarkers = []string{
	"must not", "should not", "cannot", "can't", "never", "forbid", "prohibit",
	"violate", "not permitted", "unacceptable",
}

// Sentence is one tagged fragment of source text.
type Sentence struct {
	Text string
	Tags map[Tag]bool
}

// Has reports whether the sentence carries tag.
func (s Sentence) Has(tag Tag) bool { return s.Tags[tag] }

// Negative reports whether the sentence contains a prohibition marker.
func (s Sentence) Negative() bool {
	lower := strings.ToLower(s.Text)
	for _, m := range negativeMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// Mentions reports whether the sentence names label, case-insensitively.
func (s Sentence) Mentions(label string) bool {
	return label != "" && strings.Contains(strings.ToLower(s.Text), strings.ToLower(label))
}

// FirstMention returns whichever of labels appears earliest in the sentence,
// or "" if none does.
func (s Sentence) FirstMention(labels ...string) string {
	lower := strings.ToLower(s.Text)
	best, bestAt := "", -1
	for _, l := range labels {
		at := strings.Index(lower, strings.ToLower(l))
		if at >= 0 && (bestAt < 0 || at < bestAt) {
			best, bestAt = l, at
		}
	}
	return best
}

// Tagger splits text into sentences and tags them with a stem lexicon.
type Tagger struct {
	lexicon map[Tag][]string
}

// NewTagger builds a tagger with the built-in lexicon.
func NewTagger() *Tagger {
	return &Tagger{lexicon: map[Tag][]string{
		TagDuty:        {"duty", "duties", "obligat", "must", "right", "respect", "promise"},
		TagUtility:     {"wellbeing", "welfare", "benefit", "aggregate", "utility", "maximiz"},
		TagVirtue:      {"honest", "courag", "character", "virtu", "integrity"},
		TagConsequence: {"outcome", "consequen", "result", "benefit", "wellbeing", "aggregate"},
		TagCare:        {"caring", "relationship", "vulnerab", "dependent", "harm"},
		TagJustice:     {"fair", "justice", "equal", "distribut", "right"},
	}}
}

// Split tags every sentence of every text, in order.
func (t *Tagger) Split(texts ...string) []Sentence {
	var out []Sentence
	for _, text := range texts {
		for _, raw := range sentenceBoundary.Split(text, -1) {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			out = append(out, Sentence{Text: raw, Tags: t.tag(raw)})
		}
	}
	return out
}

func (t *Tagger) tag(sentence string) map[Tag]bool {
	tags := make(map[Tag]bool)
	tokens := Tokenize(sentence)
	for tag, stems := range t.lexicon {
		for _, tok := range tokens {
			if hasStem(tok, stems) {
				tags[tag] = true
				break
			}
		}
	}
	return tags
}

func hasStem(token string, stems []string) bool {
	for _, s := range stems {
		if strings.HasPrefix(token, s) {
			return true
		}
	}
	return false
}

// Filter returns the sentences carrying tag.
func Filter(sentences []Sentence, tag Tag) []Sentence {
	var out []Sentence
	for _, s := range sentences {
		if s.Has(tag) {
			out = append(out, s)
		}
	}
	return out
}
