package strategy

import (
	"log/slog"
	"sort"

	"godilemma/domain/dilemma"
	"godilemma/domain/verdict"
	"godilemma/internal/contextual"
)

const (
	baseScore    = 0.3
	tieTolerance = 1e-9
)

// Features are the conflict and dilemma properties strategies score against.
type Features struct {
	Kind                    verdict.ConflictKind
	Nature                  verdict.ConflictNature
	Severity                float64
	ImportanceGap           float64
	Participants            int
	Evenness                float64
	HasCompromiseAreas      bool
	PrecedentReferences     bool
	InstitutionalReferences bool
}

// Candidate is one scored strategy.
type Candidate struct {
	Strategy verdict.Strategy `json:"strategy"`
	Score    float64          `json:"score"`
}

type entry struct {
	strategy verdict.Strategy
	kinds    map[verdict.ConflictKind]bool
	score    func(Features) float64
}

func kinds(ks ...verdict.ConflictKind) map[verdict.ConflictKind]bool {
	out := make(map[verdict.ConflictKind]bool, len(ks))
	for _, k := range ks {
		out[k] = true
	}
	return out
}

// Selector picks a resolution strategy for each conflict. Its registry and
// override table belong to the instance.
type Selector struct {
	registry  []entry
	overrides map[[2]string]verdict.Strategy
	reader    *contextual.Reader
	logger    *slog.Logger
}

// NewSelector builds a selector with the standard registry.
func NewSelector(reader *contextual.Reader, logger *slog.Logger) *Selector {
	return &Selector{
		registry:  newRegistry(),
		overrides: newOverrides(),
		reader:    reader,
		logger:    logger,
	}
}

func newRegistry() []entry {
	all := kinds(verdict.KindFramework, verdict.KindMultiFramework, verdict.KindStakeholder)
	return []entry{
		{
			strategy: verdict.StrategyFrameworkBalancing,
			kinds:    kinds(verdict.KindFramework),
			score: func(f Features) float64 {
				s := baseScore
				if f.ImportanceGap < 0.1 {
					s += 0.3
				}
				if f.Severity >= 0.3 && f.Severity <= 0.7 {
					s += 0.2
				}
				return s
			},
		},
		{
			strategy: verdict.StrategyPrincipledPriority,
			kinds:    kinds(verdict.KindFramework),
			score: func(f Features) float64 {
				s := baseScore
				if f.ImportanceGap >= 0.3 {
					s += 0.4
				}
				if f.Severity >= 0.7 {
					s += 0.2
				}
				return s
			},
		},
		{
			strategy: verdict.StrategyCompromise,
			kinds:    all,
			score: func(f Features) float64 {
				s := baseScore
				if f.HasCompromiseAreas {
					s += 0.2
				}
				if f.Kind == verdict.KindStakeholder {
					s += 0.1
				}
				return s
			},
		},
		{
			strategy: verdict.StrategyProcedural,
			kinds:    all,
			score: func(f Features) float64 {
				s := baseScore
				if f.InstitutionalReferences {
					s += 0.3
				}
				if f.Kind == verdict.KindStakeholder {
					s += 0.1
				}
				return s
			},
		},
		{
			strategy: verdict.StrategyMetaEthical,
			kinds:    kinds(verdict.KindFramework, verdict.KindMultiFramework),
			score: func(f Features) float64 {
				s := baseScore
				if f.Nature == verdict.NatureMethodological {
					s += 0.2
				}
				if f.Severity >= 0.8 {
					s += 0.1
				}
				return s
			},
		},
		{
			strategy: verdict.StrategyCasuistry,
			kinds:    all,
			score: func(f Features) float64 {
				s := baseScore
				if f.PrecedentReferences {
					s += 0.3
				}
				return s
			},
		},
		{
			strategy: verdict.StrategyMultiFrameworkIntegration,
			kinds:    kinds(verdict.KindMultiFramework),
			score: func(f Features) float64 {
				s := baseScore
				if f.Participants >= 3 {
					s += 0.4
				}
				if f.Evenness >= 0.9 {
					s += 0.1
				}
				return s
			},
		},
	}
}

func newOverrides() map[[2]string]verdict.Strategy {
	return map[[2]string]verdict.Strategy{
		pairKey(dilemma.Deontology, dilemma.Utilitarian):   verdict.StrategyDutyBoundedUtilitarianism,
		pairKey(dilemma.VirtueEthics, dilemma.Utilitarian): verdict.StrategyVirtueGuidedConsequentialism,
		pairKey(dilemma.CareEthics, dilemma.Justice):       verdict.StrategyCareBasedJustice,
	}
}

func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

// Features extracts the scoring inputs for conflict c.
func (s *Selector) Features(c verdict.Conflict, d *dilemma.Dilemma) Features {
	signals := s.reader.Read(d)
	f := Features{
		Kind:                    c.Kind,
		Nature:                  c.Nature,
		Severity:                c.Severity,
		Participants:            len(c.Participants),
		Evenness:                c.Evenness,
		HasCompromiseAreas:      len(c.CompromiseAreas) > 0,
		PrecedentReferences:     signals.PrecedentReferences,
		InstitutionalReferences: signals.InstitutionalReferences,
	}
	if c.Kind == verdict.KindFramework && len(c.Participants) == 2 {
		f.ImportanceGap = s.reader.ImportanceGap(signals, c.Participants[0], c.Participants[1])
	}
	return f
}

// Override returns the hybrid strategy dedicated to a framework pair, if any.
func (s *Selector) Override(c verdict.Conflict) (verdict.Strategy, bool) {
	if c.Kind != verdict.KindFramework || len(c.Participants) != 2 {
		return "", false
	}
	st, ok := s.overrides[pairKey(c.Participants[0], c.Participants[1])]
	return st, ok
}

// Rank scores every strategy applicable to c, best first. Ties put
// framework_balancing first, then registry order.
func (s *Selector) Rank(c verdict.Conflict, d *dilemma.Dilemma) []Candidate {
	f := s.Features(c, d)

	type ranked struct {
		Candidate
		index int
	}
	var rs []ranked
	for i, e := range s.registry {
		if !e.kinds[c.Kind] {
			continue
		}
		rs = append(rs, ranked{Candidate{Strategy: e.strategy, Score: e.score(f)}, i})
	}

	sort.SliceStable(rs, func(i, j int) bool {
		a, b := rs[i], rs[j]
		if diff := a.Score - b.Score; diff > tieTolerance || diff < -tieTolerance {
			return diff > 0
		}
		if (a.Strategy == verdict.StrategyFrameworkBalancing) != (b.Strategy == verdict.StrategyFrameworkBalancing) {
			return a.Strategy == verdict.StrategyFrameworkBalancing
		}
		return a.index < b.index
	})

	out := make([]Candidate, len(rs))
	for i, r := range rs {
		out[i] = r.Candidate
	}
	return out
}

// Select returns the strategy for c. Hybrid overrides bypass scoring.
func (s *Selector) Select(c verdict.Conflict, d *dilemma.Dilemma) verdict.Strategy {
	if st, ok := s.Override(c); ok {
		s.logger.Debug("hybrid override", "conflict", c.ID, "strategy", st)
		return st
	}

	ranked := s.Rank(c, d)
	if len(ranked) == 0 {
		return verdict.StrategyFallback
	}
	s.logger.Debug("strategy selected",
		"conflict", c.ID,
		"strategy", ranked[0].Strategy,
		"score", ranked[0].Score)
	return ranked[0].Strategy
}
