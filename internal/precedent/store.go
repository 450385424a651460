package precedent

import (
	"context"

	"godilemma/domain/dilemma"
	"godilemma/domain/verdict"
)

// MemoryStore is a read-only in-memory PrecedentFinder.
type MemoryStore struct {
	cases  []verdict.PrecedentCase
	topK   int
	budget int
}

// NewMemoryStore copies cases into a store that returns at most topK results
// and scores at most budget cases per lookup.
func NewMemoryStore(cases []verdict.PrecedentCase, topK, budget int) *MemoryStore {
	return &MemoryStore{
		cases:  append([]verdict.PrecedentCase(nil), cases...),
		topK:   topK,
		budget: budget,
	}
}

// NewStaticStore serves the built-in precedent set.
func NewStaticStore(topK, budget int) *MemoryStore {
	return NewMemoryStore(StaticCases(), topK, budget)
}

// FindSimilar ranks the stored cases against d.
func (s *MemoryStore) FindSimilar(ctx context.Context, d *dilemma.Dilemma, minSimilarity float64) ([]verdict.PrecedentCase, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Rank(NewProfile(d), s.cases, minSimilarity, s.topK, s.budget), nil
}
