package resolution

import (
	"fmt"
	"math"

	"godilemma/domain/dilemma"
	"godilemma/domain/verdict"
	"godilemma/internal/contextual"
)

const (
	minBalanceWeight = 0.15
	maxBalanceWeight = 0.85
)

func (e *Engine) balancing(in input) (verdict.Resolution, error) {
	fws := in.frameworks()
	if len(fws) < 2 {
		return verdict.Resolution{}, fmt.Errorf("balancing needs two frameworks, got %d", len(fws))
	}
	a, b := fws[0], fws[1]

	impA := e.reader.Importance(in.signals, a)
	impB := e.reader.Importance(in.signals, b)
	shift := (impA - impB) * (0.5 + 0.5*in.conflict.Severity)

	wA := clamp(0.5+shift, minBalanceWeight, maxBalanceWeight)
	wB := clamp(0.5-shift, minBalanceWeight, maxBalanceWeight)
	sum := wA + wB
	wA, wB = wA/sum, wB/sum

	heavier, lighter := a, b
	switch {
	case wB > wA:
		heavier, lighter = b, a
	case wA == wB && len(in.recs[b].SensitiveParameters) < len(in.recs[a].SensitiveParameters):
		// Even split: prefer the recommendation with fewer sensitive parameters.
		heavier, lighter = b, a
	}

	return verdict.Resolution{
		Weights:           map[string]float64{a: wA, b: wB},
		RecommendedAction: in.action(heavier),
		Confidence:        math.Max(wA, wB),
		Reasoning: fmt.Sprintf(
			"Balanced %s (importance %.2f) against %s (importance %.2f) at severity %.2f; %s carries %.0f%% of the weight and its recommendation %q prevails over %s.",
			label(a), impA, label(b), impB, in.conflict.Severity,
			label(heavier), 100*math.Max(wA, wB), in.action(heavier), label(lighter)),
	}, nil
}

func (e *Engine) priority(in input) (verdict.Resolution, error) {
	fws := in.frameworks()
	chosen, rule := e.priorityFramework(in, fws)

	weight := 0.7 + 0.2*in.conflict.Severity
	weights := map[string]float64{chosen: weight}
	if len(fws) > 1 {
		rest := (1 - weight) / float64(len(fws)-1)
		for _, fw := range fws {
			if fw != chosen {
				weights[fw] = rest
			}
		}
	} else {
		weights[chosen] = 1
	}

	// the floor can trim the priority weight; report what survives it
	normalized, _ := Normalize(weights, e.floor, e.precision)

	return verdict.Resolution{
		Weights:           weights,
		RecommendedAction: in.action(chosen),
		PriorityFramework: chosen,
		Confidence:        normalized[chosen],
		Reasoning: fmt.Sprintf("Gave priority to %s because %s; its recommendation %q carries %.0f%% of the weight.",
			label(chosen), rule, in.action(chosen), 100*normalized[chosen]),
	}, nil
}

// priorityFramework applies the contextual priority rules in order and falls
// back to the most important participant.
func (e *Engine) priorityFramework(in input, fws []string) (string, string) {
	has := func(fw string) bool {
		for _, f := range fws {
			if f == fw {
				return true
			}
		}
		return false
	}

	rules := []struct {
		level     float64
		framework string
		reason    string
	}{
		{in.signals.Level(contextual.SignalUrgency), dilemma.Utilitarian, "the situation is urgent"},
		{in.signals.Level(contextual.SignalVulnerability), dilemma.CareEthics, "vulnerable people are affected"},
		{in.signals.Level(contextual.SignalRights), dilemma.Deontology, "fundamental rights are at stake"},
	}
	for _, r := range rules {
		if r.level >= 0.7 && has(r.framework) {
			return r.framework, r.reason
		}
	}

	best, bestImp := fws[0], e.reader.Importance(in.signals, fws[0])
	for _, fw := range fws[1:] {
		if imp := e.reader.Importance(in.signals, fw); imp > bestImp {
			best, bestImp = fw, imp
		}
	}
	return best, fmt.Sprintf("it has the highest contextual importance (%.2f)", bestImp)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// label renders a framework id for narrative text.
func label(framework string) string {
	switch framework {
	case dilemma.Utilitarian:
		return "utilitarianism"
	case dilemma.Deontology:
		return "deontology"
	case dilemma.VirtueEthics:
		return "virtue ethics"
	case dilemma.CareEthics:
		return "care ethics"
	case dilemma.Justice:
		return "justice"
	default:
		return framework
	}
}
