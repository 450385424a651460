package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"godilemma/domain/dilemma"
	"godilemma/domain/verdict"
	"godilemma/internal/contextual"
	"godilemma/internal/logging"
	"godilemma/internal/testkit"
)

func newSelector() *Selector {
	return NewSelector(contextual.NewReader(), logging.Discard())
}

func frameworkConflict(a, b string, severity float64, nature verdict.ConflictNature) verdict.Conflict {
	return verdict.Conflict{
		ID:           "framework:" + "x",
		Kind:         verdict.KindFramework,
		Participants: []string{a, b},
		Severity:     severity,
		Nature:       nature,
	}
}

func TestModerateSeverityEqualImportancePrefersBalancing(t *testing.T) {
	s := newSelector()
	d := testkit.NewBuilder("balanced", dilemma.Deontology, dilemma.Justice).Build()
	c := frameworkConflict(dilemma.Deontology, dilemma.Justice, 0.55, verdict.NatureFactual)

	assert.Equal(t, verdict.StrategyFrameworkBalancing, s.Select(c, d))

	ranked := s.Rank(c, d)
	require.NotEmpty(t, ranked)
	assert.InDelta(t, 0.8, ranked[0].Score, 1e-9)
	for _, cand := range ranked {
		if cand.Strategy == verdict.StrategyPrincipledPriority {
			assert.InDelta(t, 0.3, cand.Score, 1e-9)
		}
	}
}

func TestDominantImportancePrefersPriority(t *testing.T) {
	s := newSelector()
	d := testkit.NewBuilder("dominant", dilemma.CareEthics, dilemma.VirtueEthics).
		Factor("vulnerable_population", "high", 0.8).
		Build()
	c := frameworkConflict(dilemma.CareEthics, dilemma.VirtueEthics, 0.75, verdict.NatureFactual)

	assert.Equal(t, verdict.StrategyPrincipledPriority, s.Select(c, d))
}

func TestHybridOverridesBypassScoring(t *testing.T) {
	s := newSelector()
	d := testkit.ClinicDilemma()

	tests := []struct {
		a, b string
		want verdict.Strategy
	}{
		{dilemma.Utilitarian, dilemma.Deontology, verdict.StrategyDutyBoundedUtilitarianism},
		{dilemma.Deontology, dilemma.Utilitarian, verdict.StrategyDutyBoundedUtilitarianism},
		{dilemma.Utilitarian, dilemma.VirtueEthics, verdict.StrategyVirtueGuidedConsequentialism},
		{dilemma.Justice, dilemma.CareEthics, verdict.StrategyCareBasedJustice},
	}
	for _, tt := range tests {
		c := frameworkConflict(tt.a, tt.b, 0.55, verdict.NatureMethodological)
		assert.Equal(t, tt.want, s.Select(c, d), "%s vs %s", tt.a, tt.b)
	}

	multi := verdict.Conflict{Kind: verdict.KindMultiFramework, Participants: []string{dilemma.Deontology, dilemma.Utilitarian}}
	_, ok := s.Override(multi)
	assert.False(t, ok)
}

func TestMultiFrameworkPrefersIntegration(t *testing.T) {
	s := newSelector()
	d := testkit.MajorityDilemma()
	c := verdict.Conflict{
		Kind:         verdict.KindMultiFramework,
		Participants: d.Frameworks,
		Severity:     0.68,
		Evenness:     0.81,
	}

	assert.Equal(t, verdict.StrategyMultiFrameworkIntegration, s.Select(c, d))
	for _, cand := range s.Rank(c, d) {
		assert.NotEqual(t, verdict.StrategyFrameworkBalancing, cand.Strategy)
		assert.NotEqual(t, verdict.StrategyPrincipledPriority, cand.Strategy)
	}
}

func TestStakeholderSelection(t *testing.T) {
	s := newSelector()
	c := verdict.Conflict{
		Kind:            verdict.KindStakeholder,
		Participants:    []string{"patients", "clinicians"},
		Severity:        0.5,
		CompromiseAreas: []string{"quality"},
	}

	plain := testkit.NewBuilder("plain", dilemma.Justice).Build()
	assert.Equal(t, verdict.StrategyCompromise, s.Select(c, plain))
	assert.Len(t, s.Rank(c, plain), 3)

	institutional := testkit.NewBuilder("board", dilemma.Justice).
		Description("The hospital board follows a formal review procedure.").
		Build()
	assert.Equal(t, verdict.StrategyProcedural, s.Select(c, institutional))
}

func TestTiesFallToRegistryOrder(t *testing.T) {
	s := newSelector()
	c := verdict.Conflict{Kind: verdict.KindStakeholder, Participants: []string{"a", "b"}, Severity: 0.5}
	d := testkit.NewBuilder("tie", dilemma.Justice).Build()

	ranked := s.Rank(c, d)
	require.Len(t, ranked, 3)
	assert.Equal(t, verdict.StrategyCompromise, ranked[0].Strategy)
	assert.Equal(t, verdict.StrategyProcedural, ranked[1].Strategy)
	assert.InDelta(t, ranked[0].Score, ranked[1].Score, 1e-12)
}

func TestPrecedentReferencesFavorCasuistry(t *testing.T) {
	s := newSelector()
	c := verdict.Conflict{Kind: verdict.KindStakeholder, Participants: []string{"a", "b"}, Severity: 0.5}
	d := testkit.NewBuilder("precedent", dilemma.Justice).
		Description("A similar case was settled by precedent last year.").
		Build()

	assert.Equal(t, verdict.StrategyCasuistry, s.Select(c, d))
}
