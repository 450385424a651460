package resolution

import (
	"fmt"
	"strings"

	"godilemma/domain/dilemma"
	"godilemma/domain/verdict"
	"godilemma/internal/contextual"
)

// integrationSignals maps a framework to the contextual signal that raises
// the weight of its vote.
var integrationSignals = map[string]contextual.Signal{
	dilemma.CareEthics:  contextual.SignalVulnerability,
	dilemma.Deontology:  contextual.SignalUrgency,
	dilemma.Utilitarian: contextual.SignalScarcity,
}

func (e *Engine) integration(in input) (verdict.Resolution, error) {
	fws := in.frameworks()

	t := newTally()
	t.byName = true
	weights := make(map[string]float64, len(fws))
	for _, fw := range fws {
		w := 1.0
		if sig, ok := integrationSignals[fw]; ok {
			w += 0.5 * in.signals.Level(sig)
		}
		weights[fw] = w
		t.add(in.action(fw), w)
	}
	action, share := t.winner()

	var parts []string
	for _, a := range t.actions() {
		parts = append(parts, fmt.Sprintf("%q %.2f", a, t.votes[a]))
	}

	return verdict.Resolution{
		Weights:           weights,
		RecommendedAction: action,
		Confidence:        share,
		Reasoning: fmt.Sprintf("Integrated %d frameworks by context-weighted vote (%s); %q wins %.0f%% of the vote.",
			len(fws), strings.Join(parts, ", "), action, 100*share),
	}, nil
}
