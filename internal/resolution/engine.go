package resolution

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"golang.org/x/sync/semaphore"

	"godilemma/domain/dilemma"
	"godilemma/domain/verdict"
	"godilemma/internal/config"
	"godilemma/internal/contextual"
	"godilemma/internal/errors"
	"godilemma/internal/framework"
	"godilemma/internal/precedent"
	"godilemma/internal/semantic"
	"godilemma/ports"
)

// Item pairs a conflict with the strategy selected for it.
type Item struct {
	Conflict verdict.Conflict
	Strategy verdict.Strategy
}

// Engine applies resolution strategies to conflicts. Every resolver is a
// pure function of its inputs apart from the precedent lookup.
type Engine struct {
	reader     *contextual.Reader
	tagger     *semantic.Tagger
	precedents *precedent.Guard
	floor      float64
	precision  int
	workers    int64
	logger     *slog.Logger
}

// NewEngine creates a resolution engine.
func NewEngine(reader *contextual.Reader, tagger *semantic.Tagger, precedents *precedent.Guard, cfg config.EngineConfig, logger *slog.Logger) *Engine {
	workers := int64(cfg.Workers)
	if workers < 1 {
		workers = 1
	}
	if precedents == nil {
		cfg := config.Default().Precedent
		precedents = precedent.NewGuard(precedent.NewStaticStore(cfg.TopK, cfg.ScanBudget), cfg, logger)
	}
	return &Engine{
		reader:     reader,
		tagger:     tagger,
		precedents: precedents,
		floor:      cfg.WeightFloor,
		precision:  cfg.WeightPrecision,
		workers:    workers,
		logger:     logger,
	}
}

// input is what every resolver sees.
type input struct {
	conflict verdict.Conflict
	d        *dilemma.Dilemma
	recs     map[string]verdict.FrameworkRecommendation
	signals  contextual.Signals
	mapper   ports.ActionMapper
}

// frameworks returns the frameworks a resolution weighs: the participants of
// framework conflicts, otherwise every evaluated framework.
func (in input) frameworks() []string {
	if in.conflict.Kind != verdict.KindStakeholder {
		var out []string
		for _, p := range in.conflict.Participants {
			if _, ok := in.recs[p]; ok {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return evaluated(in.d, in.recs)
}

func (in input) action(fw string) string {
	return in.recs[fw].RecommendedAction
}

func (in input) internalAction(fw string) string {
	return in.mapper.ToFrameworkAction(in.recs[fw].RecommendedAction)
}

func evaluated(d *dilemma.Dilemma, recs map[string]verdict.FrameworkRecommendation) []string {
	var out []string
	for _, fw := range d.Frameworks {
		if _, ok := recs[fw]; ok {
			out = append(out, fw)
		}
	}
	return out
}

// Resolve applies strategy to conflict. Panics inside a resolver are
// converted to RESOLUTION_FAILURE errors.
func (e *Engine) Resolve(ctx context.Context, strategy verdict.Strategy, conflict verdict.Conflict, d *dilemma.Dilemma, recs map[string]verdict.FrameworkRecommendation) (res verdict.Resolution, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.ResolutionFailure(string(strategy), fmt.Errorf("panic: %v", r))
		}
	}()

	in := input{
		conflict: conflict,
		d:        d,
		recs:     recs,
		signals:  e.reader.Read(d),
		mapper:   framework.NewTableMapper(d),
	}
	if len(in.frameworks()) == 0 {
		return verdict.Resolution{}, errors.ResolutionFailure(string(strategy), fmt.Errorf("no evaluated frameworks"))
	}

	switch strategy {
	case verdict.StrategyFrameworkBalancing:
		res, err = e.balancing(in)
	case verdict.StrategyPrincipledPriority:
		res, err = e.priority(in)
	case verdict.StrategyCompromise:
		res, err = e.compromise(in)
	case verdict.StrategyProcedural:
		res, err = e.procedural(in)
	case verdict.StrategyMetaEthical:
		res, err = e.metaEthical(in)
	case verdict.StrategyCasuistry:
		res, err = e.casuistry(ctx, in, e.precedents.Lookup(ctx, d))
	case verdict.StrategyMultiFrameworkIntegration:
		res, err = e.integration(in)
	case verdict.StrategyDutyBoundedUtilitarianism:
		res, err = e.dutyBounded(in)
	case verdict.StrategyVirtueGuidedConsequentialism:
		res, err = e.virtueGuided(in)
	case verdict.StrategyCareBasedJustice:
		res, err = e.careBasedJustice(in)
	case verdict.StrategyFallback:
		return e.Fallback(conflict, d, recs, nil), nil
	default:
		return verdict.Resolution{}, errors.ResolutionFailure(string(strategy), fmt.Errorf("unknown strategy"))
	}
	if err != nil {
		return verdict.Resolution{}, errors.ResolutionFailure(string(strategy), err)
	}

	res.ConflictID = conflict.ID
	res.Strategy = strategy
	e.finish(&res)
	return res, nil
}

// ResolveAll resolves items concurrently, bounded by the worker count. The
// result order matches items. A failed item yields a fallback resolution and
// never affects the others.
func (e *Engine) ResolveAll(ctx context.Context, d *dilemma.Dilemma, recs map[string]verdict.FrameworkRecommendation, items []Item) []verdict.Resolution {
	out := make([]verdict.Resolution, len(items))
	sem := semaphore.NewWeighted(e.workers)
	var wg sync.WaitGroup

	for i, item := range items {
		if err := sem.Acquire(ctx, 1); err != nil {
			out[i] = e.Fallback(item.Conflict, d, recs, err)
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			res, err := e.Resolve(ctx, item.Strategy, item.Conflict, d, recs)
			if err != nil {
				e.logger.Error("resolution failed, using fallback",
					"conflict", item.Conflict.ID,
					"strategy", item.Strategy,
					"error", err)
				res = e.Fallback(item.Conflict, d, recs, err)
			}
			out[i] = res
		}()
	}
	wg.Wait()
	return out
}

// Fallback is the low-detail resolution used when a strategy fails: equal
// weights and the majority action.
func (e *Engine) Fallback(conflict verdict.Conflict, d *dilemma.Dilemma, recs map[string]verdict.FrameworkRecommendation, cause error) verdict.Resolution {
	in := input{conflict: conflict, d: d, recs: recs}
	keys := in.frameworks()
	action, share := majority(evaluated(d, recs), recs)

	reasoning := fmt.Sprintf("Fallback resolution: equal weights across %d frameworks and the majority action.", len(keys))
	if cause != nil {
		reasoning = fmt.Sprintf("%s Cause: %v", reasoning, cause)
	}

	res := verdict.Resolution{
		ConflictID:        conflict.ID,
		Strategy:          verdict.StrategyFallback,
		Weights:           Equal(keys),
		RecommendedAction: action,
		Reasoning:         reasoning,
		Confidence:        share,
	}
	e.finish(&res)
	return res
}

func (e *Engine) finish(res *verdict.Resolution) {
	res.Weights, res.OriginalWeights = Normalize(res.Weights, e.floor, e.precision)
	res.Confidence = math.Max(0, math.Min(1, res.Confidence))
}
