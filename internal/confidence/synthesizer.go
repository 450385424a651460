package confidence

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"

	"godilemma/domain/core"
	"godilemma/domain/dilemma"
	"godilemma/domain/verdict"
)

// Factor weights of the overall confidence.
const (
	agreementWeight  = 0.4
	diversityWeight  = 0.1
	validationWeight = 0.2
	stabilityWeight  = 0.3
)

// Synthesizer aggregates recommendations, conflicts and resolutions into the
// final recommendation.
type Synthesizer struct {
	logger *slog.Logger
}

// NewSynthesizer creates a synthesizer.
func NewSynthesizer(logger *slog.Logger) *Synthesizer {
	return &Synthesizer{logger: logger}
}

// Synthesize picks the final action and scores confidence in it. issues is
// the number of validation issues and evaluation warnings raised upstream.
func (s *Synthesizer) Synthesize(d *dilemma.Dilemma, recs map[string]verdict.FrameworkRecommendation, conflicts []verdict.Conflict, resolutions []verdict.Resolution, issues int) verdict.FinalRecommendation {
	var frameworks []string
	for _, fw := range d.Frameworks {
		if _, ok := recs[fw]; ok {
			frameworks = append(frameworks, fw)
		}
	}
	if len(frameworks) == 0 {
		return verdict.FinalRecommendation{
			ConfidenceFactors:    map[string]float64{},
			SupportingFrameworks: []string{},
			OpposingFrameworks:   []string{},
			CriticalParameters:   []verdict.CriticalParameter{},
			Reasoning:            "No framework produced a recommendation.",
		}
	}

	action, distinct := Majority(frameworks, recs)
	source := "majority vote"
	if integrated, ok := integrationOverride(conflicts, resolutions); ok && integrated != action {
		s.logger.Debug("integration overrides majority", "majority", action, "integrated", integrated)
		action = integrated
		source = "multi-framework integration of the most severe conflict"
	} else if ok {
		source = "majority vote, confirmed by multi-framework integration"
	}

	final := verdict.FinalRecommendation{
		Action:               action,
		SupportingFrameworks: []string{},
		OpposingFrameworks:   []string{},
	}
	for _, fw := range frameworks {
		if recs[fw].RecommendedAction == action {
			final.SupportingFrameworks = append(final.SupportingFrameworks, fw)
		} else {
			final.OpposingFrameworks = append(final.OpposingFrameworks, fw)
		}
	}

	n := float64(len(frameworks))
	agreement := float64(len(final.SupportingFrameworks)) / n
	diversity := 1.0
	if len(frameworks) > 1 {
		diversity = 1 - float64(distinct-1)/(n-1)
	}
	validation := 1 / (1 + float64(max(issues, 0)))
	stability := Stability(frameworks, recs)

	final.ConfidenceFactors = map[string]float64{
		verdict.FactorAgreement:          agreement,
		verdict.FactorDiversity:          diversity,
		verdict.FactorValidationQuality:  validation,
		verdict.FactorParameterStability: stability,
	}
	final.Confidence = clamp01(agreementWeight*agreement + diversityWeight*diversity +
		validationWeight*validation + stabilityWeight*stability)
	final.CriticalParameters = CriticalParameters(frameworks, recs)
	final.Reasoning = reasoning(final, source, len(frameworks))
	return final
}

// Majority returns the most recommended action, ties going to the earliest
// framework, and the number of distinct actions.
func Majority(frameworks []string, recs map[string]verdict.FrameworkRecommendation) (string, int) {
	counts := make(map[string]int)
	var order []string
	for _, fw := range frameworks {
		a := recs[fw].RecommendedAction
		if counts[a] == 0 {
			order = append(order, a)
		}
		counts[a]++
	}
	best := ""
	for _, a := range order {
		if best == "" || counts[a] > counts[best] {
			best = a
		}
	}
	return best, len(order)
}

// integrationOverride returns the integration action when its conflict is the
// most severe of the resolved conflicts.
func integrationOverride(conflicts []verdict.Conflict, resolutions []verdict.Resolution) (string, bool) {
	severity := make(map[core.ConflictID]float64, len(conflicts))
	for _, c := range conflicts {
		severity[c.ID] = c.Severity
	}

	maxSeverity := math.Inf(-1)
	for _, r := range resolutions {
		if sev, ok := severity[r.ConflictID]; ok && sev > maxSeverity {
			maxSeverity = sev
		}
	}

	for _, r := range resolutions {
		if r.Strategy != verdict.StrategyMultiFrameworkIntegration || r.RecommendedAction == "" {
			continue
		}
		if sev, ok := severity[r.ConflictID]; ok && sev >= maxSeverity {
			return r.RecommendedAction, true
		}
	}
	return "", false
}

// Stability is the mean of 1 - score over every sensitive parameter, or 1
// when nothing is sensitive.
func Stability(frameworks []string, recs map[string]verdict.FrameworkRecommendation) float64 {
	var values []float64
	for _, fw := range frameworks {
		rec := recs[fw]
		for _, p := range rec.SensitiveParameters {
			values = append(values, 1-rec.Thresholds[p].SensitivityScore)
		}
	}
	if len(values) == 0 {
		return 1
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return 1
	}
	return clamp01(mean)
}

// CriticalParameters lists every sensitive parameter, closest to flipping
// first.
func CriticalParameters(frameworks []string, recs map[string]verdict.FrameworkRecommendation) []verdict.CriticalParameter {
	out := []verdict.CriticalParameter{}
	order := make(map[string]int, len(frameworks))
	for i, fw := range frameworks {
		order[fw] = i
		rec := recs[fw]
		for _, p := range rec.SensitiveParameters {
			th, ok := rec.Thresholds[p]
			if !ok {
				continue
			}
			value, direction, flipsTo, ok := th.NearestThreshold()
			if !ok {
				continue
			}
			out = append(out, verdict.CriticalParameter{
				Parameter:        p,
				Framework:        fw,
				Threshold:        value,
				Direction:        direction,
				RelativeDistance: th.RelativeDistance,
				SensitivityScore: th.SensitivityScore,
				CurrentAction:    rec.RecommendedAction,
				FlipsTo:          flipsTo,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.RelativeDistance != b.RelativeDistance {
			return a.RelativeDistance < b.RelativeDistance
		}
		if a.SensitivityScore != b.SensitivityScore {
			return a.SensitivityScore > b.SensitivityScore
		}
		if a.Parameter != b.Parameter {
			return a.Parameter < b.Parameter
		}
		return order[a.Framework] < order[b.Framework]
	})
	return out
}

func reasoning(f verdict.FinalRecommendation, source string, n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Recommended %q by %s: %d of %d frameworks support it", f.Action, source, len(f.SupportingFrameworks), n)
	if len(f.SupportingFrameworks) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(f.SupportingFrameworks, ", "))
	}
	b.WriteString(".")
	if len(f.OpposingFrameworks) > 0 {
		fmt.Fprintf(&b, " Opposed by %s.", strings.Join(f.OpposingFrameworks, ", "))
	}
	if len(f.CriticalParameters) > 0 {
		cp := f.CriticalParameters[0]
		fmt.Fprintf(&b, " Most fragile: %s for %s would flip to %q at %.4g.", cp.Parameter, cp.Framework, cp.FlipsTo, cp.Threshold)
	}
	fmt.Fprintf(&b, " Confidence %.2f.", f.Confidence)
	return b.String()
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
