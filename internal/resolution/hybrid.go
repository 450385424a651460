package resolution

import (
	"fmt"

	"godilemma/domain/dilemma"
	"godilemma/domain/verdict"
	"godilemma/internal/semantic"
)

const (
	survivorWeight = 0.65
	yieldingWeight = 0.35
)

// hybridSides names the two frameworks a hybrid combines and the sentence
// tags that identify each side's reasoning.
type hybridSides struct {
	lens, base       string
	lensTag, baseTag semantic.Tag
	lensKey, baseKey string
}

func (e *Engine) sentences(in input, sides hybridSides) []semantic.Sentence {
	return e.tagger.Split(in.recs[sides.base].Justification, in.recs[sides.lens].Justification, in.d.Description)
}

func (e *Engine) dutyBounded(in input) (verdict.Resolution, error) {
	sides := hybridSides{
		lens: dilemma.Deontology, base: dilemma.Utilitarian,
		lensTag: semantic.TagDuty, baseTag: semantic.TagUtility,
		lensKey: "duties", baseKey: "utility",
	}
	return e.constrain(in, sides, "duty-bounded utilitarianism")
}

func (e *Engine) careBasedJustice(in input) (verdict.Resolution, error) {
	// Care leads; justice principles act as the constraint.
	sides := hybridSides{
		lens: dilemma.Justice, base: dilemma.CareEthics,
		lensTag: semantic.TagJustice, baseTag: semantic.TagCare,
		lensKey: "justice_principles", baseKey: "care_considerations",
	}
	return e.constrain(in, sides, "care-based justice")
}

// constrain keeps the base framework's action unless a lens sentence forbids
// it, in which case the lens framework's action is taken.
func (e *Engine) constrain(in input, sides hybridSides, name string) (verdict.Resolution, error) {
	if err := requireParticipants(in, sides.lens, sides.base); err != nil {
		return verdict.Resolution{}, err
	}

	all := e.sentences(in, sides)
	lensS := semantic.Filter(all, sides.lensTag)
	baseS := semantic.Filter(all, sides.baseTag)
	if len(lensS) == 0 || len(baseS) == 0 {
		return e.blended(in, sides, name), nil
	}

	baseAction := in.internalAction(sides.base)
	optionLabel := blockLabel(baseAction)

	var blocker *semantic.Sentence
	for i := range lensS {
		if lensS[i].Negative() && lensS[i].Mentions(optionLabel) {
			blocker = &lensS[i]
			break
		}
	}

	survivor, yielding := sides.base, sides.lens
	reasoning := fmt.Sprintf("Applied %s: no %s statement forbids %s, so the %s recommendation %q stands.",
		name, label(sides.lens), optionLabel, label(sides.base), in.action(sides.base))
	if blocker != nil {
		survivor, yielding = sides.lens, sides.base
		reasoning = fmt.Sprintf("Applied %s: %q rules out %s, so the %s recommendation %q is adopted instead.",
			name, blocker.Text, optionLabel, label(sides.lens), in.action(sides.lens))
	}

	return verdict.Resolution{
		Weights:           map[string]float64{survivor: survivorWeight, yielding: yieldingWeight},
		RecommendedAction: in.action(survivor),
		Confidence:        survivorWeight,
		Reasoning:         reasoning,
		HybridElements: map[string][]string{
			sides.lensKey: texts(lensS),
			sides.baseKey: texts(baseS),
		},
	}, nil
}

func (e *Engine) virtueGuided(in input) (verdict.Resolution, error) {
	sides := hybridSides{
		lens: dilemma.VirtueEthics, base: dilemma.Utilitarian,
		lensTag: semantic.TagVirtue, baseTag: semantic.TagConsequence,
		lensKey: "virtues", baseKey: "consequences",
	}
	name := "virtue-guided consequentialism"
	if err := requireParticipants(in, sides.lens, sides.base); err != nil {
		return verdict.Resolution{}, err
	}

	all := e.sentences(in, sides)
	virtues := semantic.Filter(all, sides.lensTag)
	consequences := semantic.Filter(all, sides.baseTag)
	if len(virtues) == 0 || len(consequences) == 0 {
		return e.blended(in, sides, name), nil
	}

	// Each virtue sentence credits the option it names first, or debits it
	// when the sentence is a prohibition.
	const optionA, optionB = "option a", "option b"
	score := map[string]int{}
	for _, s := range virtues {
		first := s.FirstMention(optionA, optionB)
		if first == "" {
			continue
		}
		if s.Negative() {
			score[first]--
		} else {
			score[first]++
		}
	}

	var chosen string
	switch {
	case score[optionA] > score[optionB]:
		chosen = verdict.ActionApproveOptionA
	case score[optionB] > score[optionA]:
		chosen = verdict.ActionApproveOptionB
	default:
		chosen = in.internalAction(sides.base)
	}

	survivor, yielding := sides.lens, sides.base
	if in.internalAction(sides.lens) != chosen && in.internalAction(sides.base) == chosen {
		survivor, yielding = sides.base, sides.lens
	}

	action := in.mapper.ToDilemmaAction(chosen)
	return verdict.Resolution{
		Weights:           map[string]float64{survivor: survivorWeight, yielding: yieldingWeight},
		RecommendedAction: action,
		Confidence:        survivorWeight,
		Reasoning: fmt.Sprintf("Applied %s: virtue statements favor option A %d to option B %d; the consequentialist choice is read through that lens and %q is adopted.",
			name, score[optionA], score[optionB], action),
		HybridElements: map[string][]string{
			sides.lensKey: texts(virtues),
			sides.baseKey: texts(consequences),
		},
	}, nil
}

// blended is the hybrid fallback used when one side's reasoning cannot be
// identified: the more important framework leads.
func (e *Engine) blended(in input, sides hybridSides, name string) verdict.Resolution {
	first, second := sides.base, sides.lens
	if in.d.FrameworkIndex(sides.lens) < in.d.FrameworkIndex(sides.base) {
		first, second = sides.lens, sides.base
	}
	lead, other := first, second
	if e.reader.Importance(in.signals, second) > e.reader.Importance(in.signals, first) {
		lead, other = second, first
	}

	return verdict.Resolution{
		Weights:           map[string]float64{lead: survivorWeight, other: yieldingWeight},
		RecommendedAction: in.action(lead),
		Confidence:        0.5,
		Reasoning: fmt.Sprintf("Applied %s as a blend: the %s and %s arguments could not both be isolated, so %s leads and its recommendation %q is adopted.",
			name, label(sides.lens), label(sides.base), label(lead), in.action(lead)),
	}
}

func requireParticipants(in input, frameworks ...string) error {
	for _, fw := range frameworks {
		if _, ok := in.recs[fw]; !ok {
			return fmt.Errorf("no recommendation for %s", fw)
		}
	}
	return nil
}

// blockLabel is the phrase a prohibition must name to rule out action.
func blockLabel(internalAction string) string {
	switch internalAction {
	case verdict.ActionApproveOptionA:
		return "option a"
	case verdict.ActionApproveOptionB:
		return "option b"
	default:
		return "compromise"
	}
}

func texts(sentences []semantic.Sentence) []string {
	out := make([]string, len(sentences))
	for i, s := range sentences {
		out[i] = s.Text
	}
	return out
}
