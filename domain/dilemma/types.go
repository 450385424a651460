package dilemma

import (
	"fmt"
	"sort"

	"godilemma/domain/core"
)

// Framework names understood by the evaluator.
const (
	Utilitarian  = "utilitarian"
	Deontology   = "deontology"
	VirtueEthics = "virtue_ethics"
	CareEthics   = "care_ethics"
	Justice      = "justice"
)

// KnownFrameworks lists every framework in canonical order.
var KnownFrameworks = []string{Utilitarian, Deontology, VirtueEthics, CareEthics, Justice}

// Parameter is a named scenario input. Value holds numeric parameters; Text
// holds string parameters.
type Parameter struct {
	Value       float64 `json:"value" yaml:"value"`
	Text        string  `json:"text,omitempty" yaml:"text,omitempty"`
	Numeric     bool    `json:"numeric" yaml:"numeric"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// NumericParameter builds a numeric parameter.
func NumericParameter(value float64, description string) Parameter {
	return Parameter{Value: value, Numeric: true, Description: description}
}

// TextParameter builds a string parameter.
func TextParameter(text, description string) Parameter {
	return Parameter{Text: text, Description: description}
}

// String renders the parameter value.
func (p Parameter) String() string {
	if p.Numeric {
		return fmt.Sprintf("%g", p.Value)
	}
	return p.Text
}

// Stakeholder is a party affected by the decision.
type Stakeholder struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Concerns  []string `json:"concerns" yaml:"concerns"`
	Influence float64  `json:"influence" yaml:"influence"`
}

// HasConcern reports whether the stakeholder lists concern.
func (s Stakeholder) HasConcern(concern string) bool {
	for _, c := range s.Concerns {
		if c == concern {
			return true
		}
	}
	return false
}

// ContextualFactor describes a situational signal such as urgency or
// resource scarcity.
type ContextualFactor struct {
	Factor      string  `json:"factor" yaml:"factor"`
	Value       string  `json:"value" yaml:"value"`
	Relevance   float64 `json:"relevance" yaml:"relevance"`
	Explanation string  `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// Action is a candidate decision.
type Action struct {
	ID          string `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
}

// Dilemma is the standardized scenario. Treat it as immutable: use Clone or
// WithParameter to derive variants.
type Dilemma struct {
	ID                core.DilemmaID       `json:"id" yaml:"id"`
	Title             string               `json:"title" yaml:"title"`
	Description       string               `json:"description" yaml:"description"`
	Parameters        map[string]Parameter `json:"parameters" yaml:"parameters"`
	Stakeholders      []Stakeholder        `json:"stakeholders" yaml:"stakeholders"`
	Frameworks        []string             `json:"frameworks" yaml:"frameworks"`
	ContextualFactors []ContextualFactor   `json:"contextual_factors" yaml:"contextual_factors"`
	PossibleActions   []Action             `json:"possible_actions" yaml:"possible_actions"`
	ActionMapping     map[string]string    `json:"action_mapping,omitempty" yaml:"action_mapping,omitempty"`
}

// NumericParameterNames returns the numeric parameter names in sorted order.
func (d *Dilemma) NumericParameterNames() []string {
	names := make([]string, 0, len(d.Parameters))
	for name, p := range d.Parameters {
		if p.Numeric {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Number returns the numeric value of a parameter and whether it was present.
func (d *Dilemma) Number(name string) (float64, bool) {
	p, ok := d.Parameters[name]
	if !ok || !p.Numeric {
		return 0, false
	}
	return p.Value, true
}

// ActionDescription returns the description of a possible action, or the id
// itself when the action is not listed.
func (d *Dilemma) ActionDescription(id string) string {
	for _, a := range d.PossibleActions {
		if a.ID == id {
			return a.Description
		}
	}
	return id
}

// FrameworkIndex returns the position of framework in d.Frameworks or -1.
func (d *Dilemma) FrameworkIndex(framework string) int {
	for i, f := range d.Frameworks {
		if f == framework {
			return i
		}
	}
	return -1
}
