package testkit

import (
	"godilemma/domain/dilemma"
)

// Builder assembles dilemma fixtures fluently. Every Build call returns a
// fresh value so tests never share mutable state.
type Builder struct {
	d dilemma.Dilemma
}

// NewBuilder starts a fixture with the given id and frameworks.
func NewBuilder(id string, frameworks ...string) *Builder {
	return &Builder{d: dilemma.Dilemma{
		ID:         dilemmaID(id),
		Title:      id,
		Parameters: map[string]dilemma.Parameter{},
		Frameworks: append([]string(nil), frameworks...),
	}}
}

// Param sets a numeric parameter.
func (b *Builder) Param(name string, value float64) *Builder {
	b.d.Parameters[name] = dilemma.NumericParameter(value, "")
	return b
}

// Text sets a string parameter.
func (b *Builder) Text(name, value string) *Builder {
	b.d.Parameters[name] = dilemma.TextParameter(value, "")
	return b
}

// Description sets the free-text description.
func (b *Builder) Description(text string) *Builder {
	b.d.Description = text
	return b
}

// Factor adds a contextual factor.
func (b *Builder) Factor(factor, value string, relevance float64) *Builder {
	b.d.ContextualFactors = append(b.d.ContextualFactors, dilemma.ContextualFactor{
		Factor:    factor,
		Value:     value,
		Relevance: relevance,
	})
	return b
}

// Stakeholder adds a stakeholder.
func (b *Builder) Stakeholder(id string, influence float64, concerns ...string) *Builder {
	b.d.Stakeholders = append(b.d.Stakeholders, dilemma.Stakeholder{
		ID:        id,
		Name:      id,
		Concerns:  append([]string(nil), concerns...),
		Influence: influence,
	})
	return b
}

// Action adds a possible action.
func (b *Builder) Action(id, description string) *Builder {
	b.d.PossibleActions = append(b.d.PossibleActions, dilemma.Action{ID: id, Description: description})
	return b
}

// Build returns an independent copy of the fixture.
func (b *Builder) Build() *dilemma.Dilemma {
	return b.d.Clone()
}
