package framework

import (
	"godilemma/domain/dilemma"
	"godilemma/domain/verdict"
	"godilemma/ports"
)

var _ ports.ActionMapper = (*TableMapper)(nil)

// positionalActions is the order in which unlabeled dilemma actions are bound
// to the framework vocabulary.
var positionalActions = []string{
	verdict.ActionApproveOptionA,
	verdict.ActionApproveOptionB,
	verdict.ActionNegotiateCompromises,
}

// TableMapper is an ActionMapper backed by two lookup tables. Ids without an
// entry pass through unchanged.
type TableMapper struct {
	toFramework map[string]string
	toDilemma   map[string]string
}

// NewTableMapper derives the mapping for d. An explicit ActionMapping wins;
// otherwise actions that already use framework ids map to themselves and the
// rest are bound by position.
func NewTableMapper(d *dilemma.Dilemma) *TableMapper {
	m := &TableMapper{
		toFramework: make(map[string]string),
		toDilemma:   make(map[string]string),
	}

	if len(d.ActionMapping) > 0 {
		for dilemmaID, frameworkID := range d.ActionMapping {
			m.bind(dilemmaID, frameworkID)
		}
		return m
	}

	if usesFrameworkVocabulary(d.PossibleActions) {
		return m
	}

	for i, action := range d.PossibleActions {
		if i >= len(positionalActions) {
			break
		}
		m.bind(action.ID, positionalActions[i])
	}
	return m
}

func (m *TableMapper) bind(dilemmaID, frameworkID string) {
	m.toFramework[dilemmaID] = frameworkID
	if _, exists := m.toDilemma[frameworkID]; !exists {
		m.toDilemma[frameworkID] = dilemmaID
	}
}

// ToFrameworkAction maps a dilemma action id to the framework vocabulary.
func (m *TableMapper) ToFrameworkAction(dilemmaActionID string) string {
	if id, ok := m.toFramework[dilemmaActionID]; ok {
		return id
	}
	return dilemmaActionID
}

// ToDilemmaAction maps a framework action id back to the dilemma vocabulary.
func (m *TableMapper) ToDilemmaAction(frameworkActionID string) string {
	if id, ok := m.toDilemma[frameworkActionID]; ok {
		return id
	}
	return frameworkActionID
}

func usesFrameworkVocabulary(actions []dilemma.Action) bool {
	for _, a := range actions {
		switch a.ID {
		case verdict.ActionApproveOptionA, verdict.ActionApproveOptionB, verdict.ActionNegotiateCompromises:
		default:
			return false
		}
	}
	return true
}
