package resolution

import (
	"fmt"
	"strings"

	"godilemma/domain/verdict"
)

func (e *Engine) compromise(in input) (verdict.Resolution, error) {
	fws := in.frameworks()
	action := in.mapper.ToDilemmaAction(verdict.ActionNegotiateCompromises)

	var parties string
	if in.conflict.Kind == verdict.KindStakeholder {
		parties = strings.Join(in.conflict.Participants, " and ")
	} else {
		parties = joinLabels(in.conflict.Participants)
	}

	focus := "the considerations each side weighs most heavily"
	if len(in.conflict.CompromiseAreas) > 0 {
		focus = strings.Join(in.conflict.CompromiseAreas, ", ")
	}

	return verdict.Resolution{
		Weights:            Equal(fws),
		RecommendedAction:  action,
		Confidence:         0.5,
		CompromiseProposal: fmt.Sprintf("Bring %s to a negotiated settlement that concentrates on %s.", parties, focus),
		Reasoning:          fmt.Sprintf("No side clearly dominates, so the frameworks are weighted equally and the dilemma is resolved by negotiation (%s).", action),
	}, nil
}

func (e *Engine) procedural(in input) (verdict.Resolution, error) {
	fws := in.frameworks()
	all := evaluated(in.d, in.recs)
	action, share := majority(all, in.recs)

	venue := "a structured deliberation"
	if in.signals.InstitutionalReferences {
		venue = "the responsible institutional review body"
	}

	supporters := 0
	for _, fw := range all {
		if in.recs[fw].RecommendedAction == action {
			supporters++
		}
	}

	return verdict.Resolution{
		Weights:           Equal(fws),
		RecommendedAction: action,
		Confidence:        share,
		ProceduralProposal: fmt.Sprintf("Refer the decision to %s where each position is heard in turn; %d of %d frameworks currently favor %q.",
			venue, supporters, len(all), action),
		Reasoning: fmt.Sprintf("A fair process outranks any single framework here; pending that process the majority recommendation %q stands.", action),
	}, nil
}

func (e *Engine) metaEthical(in input) (verdict.Resolution, error) {
	fws := in.frameworks()

	t := newTally()
	var parts []string
	for _, fw := range fws {
		imp := e.reader.Importance(in.signals, fw)
		t.add(in.action(fw), imp)
		parts = append(parts, fmt.Sprintf("%s %.2f", label(fw), imp))
	}
	action, share := t.winner()

	var premise string
	switch in.conflict.Nature {
	case verdict.NatureValue:
		premise = "the frameworks appeal to the same values but rank them differently"
	case verdict.NatureFactual:
		premise = "the frameworks read the same quantities differently"
	default:
		premise = "the frameworks reason from different premises"
	}

	return verdict.Resolution{
		Weights:           Equal(fws),
		RecommendedAction: action,
		Confidence:        share,
		MetaAnalysis: fmt.Sprintf("In this disagreement %s. Weighing each by contextual importance (%s) favors %q with %.0f%% of the weighted vote.",
			premise, strings.Join(parts, ", "), action, 100*share),
		Reasoning: fmt.Sprintf("Resolved at the level of method by an importance-weighted vote, which favors %q.", action),
	}, nil
}

func joinLabels(frameworks []string) string {
	out := make([]string, len(frameworks))
	for i, fw := range frameworks {
		out[i] = label(fw)
	}
	switch len(out) {
	case 0:
		return ""
	case 1:
		return out[0]
	default:
		return strings.Join(out[:len(out)-1], ", ") + " and " + out[len(out)-1]
	}
}
