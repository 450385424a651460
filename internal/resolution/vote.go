package resolution

import (
	"sort"

	"godilemma/domain/verdict"
)

// tally accumulates vote weight per action, remembering the first voter of
// each action for tie-breaking.
type tally struct {
	votes  map[string]float64
	counts map[string]int
	first  map[string]int
	seq    int
	// byName breaks final ties on the action id instead of first appearance.
	byName bool
}

func newTally() *tally {
	return &tally{
		votes:  make(map[string]float64),
		counts: make(map[string]int),
		first:  make(map[string]int),
	}
}

func (t *tally) add(action string, weight float64) {
	if _, ok := t.first[action]; !ok {
		t.first[action] = t.seq
	}
	t.seq++
	t.votes[action] += weight
	t.counts[action]++
}

func (t *tally) total() float64 {
	sum := 0.0
	for _, v := range t.votes {
		sum += v
	}
	return sum
}

// actions returns actions ordered by votes, then group size, then first
// appearance or name.
func (t *tally) actions() []string {
	out := make([]string, 0, len(t.votes))
	for a := range t.votes {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if t.votes[a] != t.votes[b] {
			return t.votes[a] > t.votes[b]
		}
		if t.counts[a] != t.counts[b] {
			return t.counts[a] > t.counts[b]
		}
		if t.byName {
			return a < b
		}
		return t.first[a] < t.first[b]
	})
	return out
}

// winner returns the leading action and its share of the total vote.
func (t *tally) winner() (string, float64) {
	ranked := t.actions()
	if len(ranked) == 0 {
		return "", 0
	}
	total := t.total()
	if total <= 0 {
		return ranked[0], 0
	}
	return ranked[0], t.votes[ranked[0]] / total
}

// majority is the unweighted vote over frameworks; ties go to the action
// recommended first.
func majority(frameworks []string, recs map[string]verdict.FrameworkRecommendation) (string, float64) {
	t := newTally()
	for _, fw := range frameworks {
		t.add(recs[fw].RecommendedAction, 1)
	}
	return t.winner()
}
