package precedent

import (
	"sort"
	"strings"

	"godilemma/domain/dilemma"
	"godilemma/domain/verdict"
	"godilemma/internal/semantic"
)

const (
	keywordWeight   = 0.6
	dimensionWeight = 0.4
)

var stopWords = map[string]bool{
	"about": true, "after": true, "against": true, "among": true, "before": true,
	"between": true, "could": true, "every": true, "from": true, "have": true,
	"into": true, "must": true, "over": true, "should": true, "that": true,
	"their": true, "there": true, "these": true, "this": true, "those": true,
	"under": true, "what": true, "when": true, "which": true, "while": true,
	"will": true, "with": true, "would": true,
}

// Profile is the comparable fingerprint of a dilemma.
type Profile struct {
	Keywords   []string
	Dimensions []string
}

// NewProfile extracts keywords from the title and description and dimensions
// from frameworks, contextual factors and stakeholder concerns.
func NewProfile(d *dilemma.Dilemma) Profile {
	return Profile{
		Keywords:   Keywords(d.Title + " " + d.Description),
		Dimensions: dimensions(d),
	}
}

// Keywords returns the distinct content words of text, sorted.
func Keywords(text string) []string {
	seen := make(map[string]struct{})
	for _, tok := range semantic.Tokenize(text) {
		if len(tok) < 4 || stopWords[tok] {
			continue
		}
		seen[tok] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func dimensions(d *dilemma.Dilemma) []string {
	var dims []string
	dims = append(dims, d.Frameworks...)
	for _, f := range d.ContextualFactors {
		dims = append(dims, normalize(f.Factor))
	}
	for _, s := range d.Stakeholders {
		for _, c := range s.Concerns {
			dims = append(dims, normalize(c))
		}
	}
	return semantic.Union(dims)
}

func normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}

// Similarity is 0.6 × keyword Jaccard + 0.4 × dimension Jaccard.
func Similarity(p Profile, c verdict.PrecedentCase) float64 {
	return keywordWeight*semantic.Jaccard(p.Keywords, c.Keywords) +
		dimensionWeight*semantic.Jaccard(p.Dimensions, c.Dimensions)
}

// Rank scores at most budget cases against p and returns those at or above
// minSimilarity, best first, truncated to topK. A non-positive budget or topK
// means no limit.
func Rank(p Profile, cases []verdict.PrecedentCase, minSimilarity float64, topK, budget int) []verdict.PrecedentCase {
	if budget > 0 && len(cases) > budget {
		cases = cases[:budget]
	}

	var out []verdict.PrecedentCase
	for _, c := range cases {
		c.Similarity = Similarity(p, c)
		if c.Similarity >= minSimilarity {
			out = append(out, c)
		}
	}
	sortCases(out)
	if topK > 0 && len(out) > topK {
		out = out[:topK]
	}
	return out
}

func sortCases(cases []verdict.PrecedentCase) {
	sort.SliceStable(cases, func(i, j int) bool {
		if cases[i].Similarity != cases[j].Similarity {
			return cases[i].Similarity > cases[j].Similarity
		}
		return cases[i].ID < cases[j].ID
	})
}
