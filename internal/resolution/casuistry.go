package resolution

import (
	"context"
	"fmt"

	"godilemma/domain/verdict"
	"godilemma/internal/precedent"
)

// casuistry waits on an in-flight precedent lookup. The future always
// resolves, to the static set if the lookup misses its deadline.
func (e *Engine) casuistry(ctx context.Context, in input, fut *precedent.Future) (verdict.Resolution, error) {
	var (
		cases  []verdict.PrecedentCase
		source string
	)
	select {
	case <-fut.Done():
		cases, source = fut.Wait()
	case <-ctx.Done():
		return verdict.Resolution{}, ctx.Err()
	}

	fws := in.frameworks()
	res := verdict.Resolution{
		Weights:         Equal(fws),
		PrecedentCases:  cases,
		PrecedentSource: source,
	}

	all := evaluated(in.d, in.recs)
	action, share := majority(all, in.recs)
	if share > 0.5 {
		res.RecommendedAction = action
		res.Confidence = share
		res.Reasoning = fmt.Sprintf("Consulted %d %s precedent(s); the multi-framework majority already favors %q, so precedent serves as corroboration.",
			len(cases), source, action)
		return res, nil
	}

	for _, c := range cases {
		if c.RecommendedAction == "" {
			continue
		}
		res.RecommendedAction = in.mapper.ToDilemmaAction(c.RecommendedAction)
		res.Confidence = c.Similarity
		res.Reasoning = fmt.Sprintf("Reasoned by analogy from %q (similarity %.2f, %s): %s",
			c.Title, c.Similarity, source, c.ResolutionSummary)
		return res, nil
	}

	res.RecommendedAction = action
	res.Confidence = share
	res.Reasoning = fmt.Sprintf("No usable precedent among %d %s case(s); falling back to the plurality recommendation %q.",
		len(cases), source, action)
	return res, nil
}
