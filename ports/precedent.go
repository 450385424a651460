package ports

import (
	"context"

	"godilemma/domain/dilemma"
	"godilemma/domain/verdict"
)

// PrecedentFinder is the read-only precedent collaborator. Results are
// ranked by descending similarity and filtered by minSimilarity.
type PrecedentFinder interface {
	FindSimilar(ctx context.Context, d *dilemma.Dilemma, minSimilarity float64) ([]verdict.PrecedentCase, error)
}
