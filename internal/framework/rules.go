package framework

import (
	"godilemma/domain/dilemma"
	"godilemma/domain/verdict"
)

// combineFunc folds an option's parameter values into one total.
type combineFunc func(values []float64) float64

func product(values []float64) float64 {
	total := 1.0
	for _, v := range values {
		total *= v
	}
	return total
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

// rule is the closed-form comparison a framework applies to a dilemma.
type rule struct {
	framework  string
	optionA    []string
	optionB    []string
	combine    combineFunc
	tieDefault string
	// template receives winner label, winner total, loser total, loser label.
	template string
	tieText  string
}

func newRuleTable() map[string]rule {
	rules := []rule{
		{
			framework:  dilemma.Utilitarian,
			optionA:    []string{"population_served_option_a", "benefit_per_person_option_a"},
			optionB:    []string{"population_served_option_b", "benefit_per_person_option_b"},
			combine:    product,
			tieDefault: verdict.ActionApproveOptionA,
			template:   "Maximizes aggregate wellbeing: %s delivers a total benefit of %.1f against %.1f for %s.",
			tieText:    "Aggregate wellbeing is identical for both options",
		},
		{
			framework:  dilemma.Deontology,
			optionA:    []string{"urgency_option_a"},
			optionB:    []string{"urgency_option_b"},
			combine:    sum,
			tieDefault: verdict.ActionNegotiateCompromises,
			template:   "Honors the stronger duty: %s carries urgency %.1f against %.1f for %s, and the rights of those owed the duty must be respected.",
			tieText:    "Both options carry equal urgency, so no duty outweighs the other",
		},
		{
			framework:  dilemma.VirtueEthics,
			optionA:    []string{"honesty_option_a", "courage_option_a"},
			optionB:    []string{"honesty_option_b", "courage_option_b"},
			combine:    sum,
			tieDefault: verdict.ActionNegotiateCompromises,
			template:   "Reflects good character: %s scores %.1f on honesty and courage against %.1f for %s.",
			tieText:    "Both options express honesty and courage equally",
		},
		{
			framework:  dilemma.CareEthics,
			optionA:    []string{"vulnerable_population_option_a", "relationship_impact_option_a"},
			optionB:    []string{"vulnerable_population_option_b", "relationship_impact_option_b"},
			combine:    product,
			tieDefault: verdict.ActionApproveOptionB,
			template:   "Protects relationships and limits harm to the vulnerable: %s scores %.1f against %.1f for %s on the wellbeing of dependents.",
			tieText:    "Both options protect dependents equally",
		},
		{
			framework:  dilemma.Justice,
			optionA:    []string{"fairness_score_option_a"},
			optionB:    []string{"fairness_score_option_b"},
			combine:    sum,
			tieDefault: verdict.ActionNegotiateCompromises,
			template:   "Upholds fairness and equal rights: %s scores %.1f against %.1f for %s on fair distribution.",
			tieText:    "Both options distribute burdens with equal fairness",
		},
	}

	table := make(map[string]rule, len(rules))
	for _, r := range rules {
		table[r.framework] = r
	}
	return table
}

// ParametersFor returns the parameter names a framework reads, option A
// first. Unknown frameworks return nil.
func ParametersFor(framework string) []string {
	r, ok := newRuleTable()[framework]
	if !ok {
		return nil
	}
	out := append([]string(nil), r.optionA...)
	return append(out, r.optionB...)
}

// OptionLabel returns the human label used in justifications for a
// framework-internal action.
func OptionLabel(internalAction string) string {
	switch internalAction {
	case verdict.ActionApproveOptionA:
		return "option A"
	case verdict.ActionApproveOptionB:
		return "option B"
	case verdict.ActionNegotiateCompromises:
		return "a negotiated compromise"
	default:
		return internalAction
	}
}
