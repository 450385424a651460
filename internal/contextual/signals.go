package contextual

import (
	"math"
	"strings"

	"godilemma/domain/dilemma"
)

// Signal names a contextual pressure read from a dilemma's factors.
type Signal string

const (
	SignalUrgency       Signal = "urgency"
	SignalVulnerability Signal = "vulnerability"
	SignalScarcity      Signal = "scarcity"
	SignalRights        Signal = "rights"
	SignalCharacter     Signal = "character"
	SignalFairness      Signal = "fairness"
)

// Signals is the contextual reading of one dilemma. Levels are in [0,1].
type Signals struct {
	Levels                  map[Signal]float64
	PrecedentReferences     bool
	InstitutionalReferences bool
}

// Reader extracts Signals with a stem lexicon. It is built per pipeline run.
type Reader struct {
	stems         map[Signal][]string
	frameworks    map[string]Signal
	precedent     []string
	institutional []string
}

// NewReader creates a reader with the built-in lexicon.
func NewReader() *Reader {
	return &Reader{
		stems: map[Signal][]string{
			SignalUrgency:       {"urgen", "emergenc", "crisis", "deadline", "immediate", "time pressure"},
			SignalVulnerability: {"vulnerab", "child", "elderly", "patient", "dependent", "disab", "minor"},
			SignalScarcity:      {"scarc", "budget", "shortage", "limited", "resource", "funding"},
			SignalRights:        {"right", "legal", "law", "consent", "duty", "obligat", "contract"},
			SignalCharacter:     {"reputation", "integrity", "honest", "trust", "character"},
			SignalFairness:      {"fair", "equit", "equal", "discriminat", "distribut"},
		},
		frameworks: map[string]Signal{
			dilemma.Utilitarian:  SignalScarcity,
			dilemma.Deontology:   SignalRights,
			dilemma.VirtueEthics: SignalCharacter,
			dilemma.CareEthics:   SignalVulnerability,
			dilemma.Justice:      SignalFairness,
		},
		precedent:     []string{"precedent", "prior case", "previous case", "case law", "past decision", "similar case"},
		institutional: []string{"committee", "board", "policy", "procedure", "regulat", "institution", "governance", "review panel"},
	}
}

// Read derives the signals of d. A factor contributes its relevance to every
// signal it mentions, damped when its value says the pressure is low.
func (r *Reader) Read(d *dilemma.Dilemma) Signals {
	s := Signals{Levels: make(map[Signal]float64, len(r.stems))}
	for sig := range r.stems {
		s.Levels[sig] = 0
	}

	corpus := []string{strings.ToLower(d.Description)}
	for _, f := range d.ContextualFactors {
		text := strings.ToLower(f.Factor + " " + f.Value + " " + f.Explanation)
		corpus = append(corpus, text)

		level := clamp01(f.Relevance) * intensity(f.Value)
		if level == 0 {
			continue
		}
		for sig, stems := range r.stems {
			if containsAny(strings.ToLower(f.Factor+" "+f.Explanation), stems) && level > s.Levels[sig] {
				s.Levels[sig] = level
			}
		}
	}

	joined := strings.Join(corpus, " ")
	s.PrecedentReferences = containsAny(joined, r.precedent)
	s.InstitutionalReferences = containsAny(joined, r.institutional)
	return s
}

// SignalFor returns the signal that raises a framework's importance.
func (r *Reader) SignalFor(framework string) (Signal, bool) {
	sig, ok := r.frameworks[framework]
	return sig, ok
}

// Importance is a framework's contextual importance: 0.5 plus half of the
// level of the signal it answers to.
func (r *Reader) Importance(s Signals, framework string) float64 {
	sig, ok := r.SignalFor(framework)
	if !ok {
		return 0.5
	}
	return 0.5 + 0.5*s.Level(sig)
}

// ImportanceGap is the absolute importance difference of two frameworks.
func (r *Reader) ImportanceGap(s Signals, a, b string) float64 {
	return math.Abs(r.Importance(s, a) - r.Importance(s, b))
}

// Level returns the level of sig, zero when absent.
func (s Signals) Level(sig Signal) float64 {
	return s.Levels[sig]
}

func intensity(value string) float64 {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "none", "no", "false", "absent":
		return 0
	case "low", "minimal", "minor":
		return 0.25
	case "medium", "moderate":
		return 0.5
	default:
		return 1
	}
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
