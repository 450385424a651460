package framework

import (
	"fmt"

	"godilemma/domain/dilemma"
	"godilemma/domain/verdict"
	"godilemma/internal/errors"
)

// Evaluator applies each framework's closed-form rule to a dilemma. It holds
// no mutable state and is safe for concurrent use.
type Evaluator struct {
	rules map[string]rule
}

// NewEvaluator creates an evaluator with the built-in framework rules.
func NewEvaluator() *Evaluator {
	return &Evaluator{rules: newRuleTable()}
}

// Supports reports whether framework has a rule.
func (e *Evaluator) Supports(framework string) bool {
	_, ok := e.rules[framework]
	return ok
}

// Evaluate computes the framework's recommended action for d. The result is a
// pure function of its inputs.
func (e *Evaluator) Evaluate(d *dilemma.Dilemma, framework string) (verdict.Evaluation, error) {
	r, ok := e.rules[framework]
	if !ok {
		return verdict.Evaluation{}, errors.UnknownFramework(framework)
	}

	var warnings []verdict.Warning
	totalA := r.combine(collect(d, framework, r.optionA, &warnings))
	totalB := r.combine(collect(d, framework, r.optionB, &warnings))

	var internal, justification string
	switch {
	case totalA > totalB:
		internal = verdict.ActionApproveOptionA
		justification = fmt.Sprintf(r.template, OptionLabel(internal), totalA, totalB, OptionLabel(verdict.ActionApproveOptionB))
	case totalB > totalA:
		internal = verdict.ActionApproveOptionB
		justification = fmt.Sprintf(r.template, OptionLabel(internal), totalB, totalA, OptionLabel(verdict.ActionApproveOptionA))
	default:
		internal = r.tieDefault
		justification = fmt.Sprintf("%s (%.1f each); defaulting to %s.", r.tieText, totalA, OptionLabel(internal))
		if totalA == 0 {
			warnings = append(warnings, verdict.Warning{
				Code:      errors.CodeDegenerateComparison,
				Framework: framework,
				Message:   fmt.Sprintf("both compared totals are zero; defaulting to %s", internal),
			})
		}
	}

	mapper := NewTableMapper(d)
	return verdict.Evaluation{
		Framework:      framework,
		Action:         mapper.ToDilemmaAction(internal),
		InternalAction: internal,
		Justification:  justification,
		Totals:         [2]float64{totalA, totalB},
		Warnings:       warnings,
	}, nil
}

// Action is a convenience wrapper returning only the mapped action.
func (e *Evaluator) Action(d *dilemma.Dilemma, framework string) (string, error) {
	ev, err := e.Evaluate(d, framework)
	if err != nil {
		return "", err
	}
	return ev.Action, nil
}

func collect(d *dilemma.Dilemma, framework string, names []string, warnings *[]verdict.Warning) []float64 {
	values := make([]float64, len(names))
	for i, name := range names {
		v, ok := d.Number(name)
		if !ok {
			*warnings = append(*warnings, verdict.Warning{
				Code:      errors.CodeMissingParameter,
				Framework: framework,
				Parameter: name,
				Message:   fmt.Sprintf("parameter %s is missing; using 0", name),
			})
			continue
		}
		values[i] = v
	}
	return values
}
