package sensitivity

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"godilemma/domain/dilemma"
	"godilemma/domain/verdict"
	"godilemma/internal/config"
	"godilemma/internal/errors"
)

// Oracle evaluates a framework on a dilemma. *framework.Evaluator satisfies it.
type Oracle interface {
	Evaluate(d *dilemma.Dilemma, framework string) (verdict.Evaluation, error)
}

// Analysis is the sensitivity profile of one framework on one dilemma.
type Analysis struct {
	Framework           string
	BaselineAction      string
	SensitiveParameters []string
	Thresholds          map[string]verdict.Threshold
}

// Analyzer searches each numeric parameter for the value at which a
// framework changes its recommendation.
type Analyzer struct {
	oracle        Oracle
	workers       int
	cutoff        float64
	maxIterations int
	logger        *slog.Logger
}

// NewAnalyzer creates an analyzer from the engine configuration.
func NewAnalyzer(oracle Oracle, cfg config.EngineConfig, logger *slog.Logger) *Analyzer {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &Analyzer{
		oracle:        oracle,
		workers:       workers,
		cutoff:        cfg.SensitivityCutoff,
		maxIterations: cfg.MaxBisectionIterations,
		logger:        logger,
	}
}

type probeResult struct {
	name      string
	threshold verdict.Threshold
	retained  bool
}

// Analyze probes every numeric parameter of d concurrently. Each probe works
// on its own copy of the dilemma.
func (a *Analyzer) Analyze(ctx context.Context, d *dilemma.Dilemma, framework string) (Analysis, error) {
	baseline, err := a.oracle.Evaluate(d, framework)
	if err != nil {
		return Analysis{}, err
	}

	names := d.NumericParameterNames()
	results := make([]probeResult, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := a.probe(d, framework, name, baseline.Action)
			if err != nil {
				return errors.Wrapf(err, "probing %s for %s", name, framework)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Analysis{}, err
	}

	out := Analysis{
		Framework:           framework,
		BaselineAction:      baseline.Action,
		SensitiveParameters: []string{},
		Thresholds:          make(map[string]verdict.Threshold),
	}
	for _, res := range results {
		if !res.retained {
			continue
		}
		out.Thresholds[res.name] = res.threshold
		if res.threshold.SensitivityScore > a.cutoff {
			out.SensitiveParameters = append(out.SensitiveParameters, res.name)
		}
	}
	sort.Strings(out.SensitiveParameters)

	a.logger.Debug("sensitivity analysis complete",
		"framework", framework,
		"parameters", len(names),
		"thresholds", len(out.Thresholds),
		"sensitive", len(out.SensitiveParameters))
	return out, nil
}

func (a *Analyzer) probe(d *dilemma.Dilemma, framework, name, baseline string) (probeResult, error) {
	v, _ := d.Number(name)
	step := math.Max(0.1*math.Abs(v), 1)
	delta := 0.5 * math.Abs(v)
	if v == 0 {
		delta = step
	}

	th := verdict.Threshold{OriginalValue: v}

	dec, decAction, err := a.search(d, framework, name, baseline, v, v-delta, step)
	if err != nil {
		return probeResult{}, err
	}
	inc, incAction, err := a.search(d, framework, name, baseline, v, v+delta, step)
	if err != nil {
		return probeResult{}, err
	}

	var pDec, pInc float64
	relDist := math.Inf(1)
	if dec != nil {
		th.DecreaseThreshold = dec
		th.ActionAtDecrease = decAction
		r := RelativeDistance(v, *dec)
		pDec = proximity(r)
		relDist = math.Min(relDist, r)
	}
	if inc != nil {
		th.IncreaseThreshold = inc
		th.ActionAtIncrease = incAction
		r := RelativeDistance(v, *inc)
		pInc = proximity(r)
		relDist = math.Min(relDist, r)
	}
	if dec == nil && inc == nil {
		return probeResult{name: name}, nil
	}

	th.RelativeDistance = relDist
	th.SensitivityScore = 1 - (1-pDec)*(1-pInc)
	return probeResult{name: name, threshold: th, retained: true}, nil
}

// search looks for a flip between the original value and extreme. It returns
// nil when the extreme leaves the action unchanged or when re-evaluation at
// the located boundary does not confirm the flip.
func (a *Analyzer) search(d *dilemma.Dilemma, framework, name, baseline string, original, extreme, step float64) (*float64, string, error) {
	action, err := a.actionAt(d, framework, name, extreme)
	if err != nil {
		return nil, "", err
	}
	if action == baseline {
		return nil, "", nil
	}

	// lo keeps the baseline action, hi flips it.
	lo, hi := original, extreme
	tolerance := 0.1 * step
	for i := 0; i < a.maxIterations && math.Abs(hi-lo) >= tolerance; i++ {
		mid := (lo + hi) / 2
		act, err := a.actionAt(d, framework, name, mid)
		if err != nil {
			return nil, "", err
		}
		if act == baseline {
			lo = mid
		} else {
			hi = mid
		}
	}

	flipped, err := a.actionAt(d, framework, name, hi)
	if err != nil {
		return nil, "", err
	}
	if flipped == baseline {
		return nil, "", nil
	}
	threshold := hi
	return &threshold, flipped, nil
}

func (a *Analyzer) actionAt(d *dilemma.Dilemma, framework, name string, value float64) (string, error) {
	ev, err := a.oracle.Evaluate(d.WithParameter(name, value), framework)
	if err != nil {
		return "", err
	}
	return ev.Action, nil
}

// RelativeDistance is |t-v| scaled by max(|v|, 1).
func RelativeDistance(v, t float64) float64 {
	return math.Abs(t-v) / math.Max(math.Abs(v), 1)
}

// proximity maps a relative distance to (0,1], saturating as the distance
// grows.
func proximity(relDist float64) float64 {
	return 1 - math.Tanh(5*relDist)
}
