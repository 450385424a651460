package dilemmafile

import (
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"godilemma/domain/core"
	"godilemma/domain/dilemma"
	"godilemma/internal/errors"
)

type yamlDilemma struct {
	ID                string                     `yaml:"id"`
	Title             string                     `yaml:"title"`
	Description       string                     `yaml:"description"`
	Parameters        map[string]yaml.Node       `yaml:"parameters"`
	Stakeholders      []dilemma.Stakeholder      `yaml:"stakeholders"`
	Frameworks        []string                   `yaml:"frameworks"`
	ContextualFactors []dilemma.ContextualFactor `yaml:"contextual_factors"`
	PossibleActions   []dilemma.Action           `yaml:"possible_actions"`
	ActionMapping     map[string]string          `yaml:"action_mapping"`
}

func parseYAML(data []byte) (*dilemma.Dilemma, error) {
	var raw yamlDilemma
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("parse yaml dilemma: %w", err))
	}

	d := &dilemma.Dilemma{
		ID:                core.DilemmaID(raw.ID),
		Title:             raw.Title,
		Description:       raw.Description,
		Parameters:        make(map[string]dilemma.Parameter, len(raw.Parameters)),
		Stakeholders:      raw.Stakeholders,
		Frameworks:        raw.Frameworks,
		ContextualFactors: raw.ContextualFactors,
		PossibleActions:   raw.PossibleActions,
		ActionMapping:     raw.ActionMapping,
	}
	for name, node := range raw.Parameters {
		p, err := yamlParameter(&node)
		if err != nil {
			return nil, errors.InvalidInput(fmt.Sprintf("parameter %q: %v", name, err))
		}
		d.Parameters[name] = p
	}
	return d, nil
}

func yamlParameter(n *yaml.Node) (dilemma.Parameter, error) {
	switch n.Kind {
	case yaml.MappingNode:
		var wrapped struct {
			Value       yaml.Node `yaml:"value"`
			Description string    `yaml:"description"`
		}
		if err := n.Decode(&wrapped); err != nil {
			return dilemma.Parameter{}, err
		}
		if wrapped.Value.Kind == 0 {
			return dilemma.Parameter{}, fmt.Errorf("missing value")
		}
		p, err := yamlScalar(&wrapped.Value)
		p.Description = wrapped.Description
		return p, err
	case yaml.ScalarNode:
		return yamlScalar(n)
	default:
		return dilemma.Parameter{}, fmt.Errorf("expected a scalar or {value, description}")
	}
}

func yamlScalar(n *yaml.Node) (dilemma.Parameter, error) {
	if n.Kind != yaml.ScalarNode {
		return dilemma.Parameter{}, fmt.Errorf("value must be a scalar")
	}
	switch n.ShortTag() {
	case "!!int", "!!float":
		var v float64
		if err := n.Decode(&v); err != nil {
			return dilemma.Parameter{}, err
		}
		return dilemma.NumericParameter(v, ""), nil
	default:
		// yaml resolves out-of-range floats such as 1e400 to strings
		if n.Style == 0 {
			if v, err := strconv.ParseFloat(n.Value, 64); err != nil && math.IsInf(v, 0) {
				return dilemma.NumericParameter(v, ""), nil
			}
		}
		return dilemma.TextParameter(n.Value, ""), nil
	}
}
