package framework

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"godilemma/domain/dilemma"
	"godilemma/domain/verdict"
	"godilemma/internal/errors"
	"godilemma/internal/testkit"
)

func TestUtilitarianPrefersLargerProduct(t *testing.T) {
	ev, err := NewEvaluator().Evaluate(testkit.UtilitarianScenario(), dilemma.Utilitarian)
	require.NoError(t, err)

	assert.Equal(t, verdict.ActionApproveOptionB, ev.Action)
	assert.Equal(t, [2]float64{200, 250}, ev.Totals)
	assert.Contains(t, ev.Justification, "250.0")
	assert.Empty(t, ev.Warnings)
}

func TestDeontologyZeroUrgencyBreaksTieToCompromise(t *testing.T) {
	ev, err := NewEvaluator().Evaluate(testkit.ZeroUrgencyScenario(), dilemma.Deontology)
	require.NoError(t, err)

	assert.Equal(t, verdict.ActionNegotiateCompromises, ev.Action)
	require.Len(t, ev.Warnings, 1)
	assert.Equal(t, errors.CodeDegenerateComparison, ev.Warnings[0].Code)
	assert.Equal(t, dilemma.Deontology, ev.Warnings[0].Framework)
}

func TestMissingParametersDefaultToZeroWithWarnings(t *testing.T) {
	d := testkit.NewBuilder("sparse", dilemma.Justice).Param("fairness_score_option_a", 0.4).Build()

	ev, err := NewEvaluator().Evaluate(d, dilemma.Justice)
	require.NoError(t, err)

	assert.Equal(t, verdict.ActionApproveOptionA, ev.Action)
	require.Len(t, ev.Warnings, 1)
	assert.Equal(t, errors.CodeMissingParameter, ev.Warnings[0].Code)
	assert.Equal(t, "fairness_score_option_b", ev.Warnings[0].Parameter)
}

func TestTextParameterCountsAsMissing(t *testing.T) {
	d := testkit.NewBuilder("text", dilemma.Deontology).
		Text("urgency_option_a", "high").
		Param("urgency_option_b", 1).
		Build()

	ev, err := NewEvaluator().Evaluate(d, dilemma.Deontology)
	require.NoError(t, err)
	assert.Equal(t, verdict.ActionApproveOptionB, ev.Action)
	assert.Len(t, ev.Warnings, 1)
}

func TestEqualNonZeroTotalsUseDefaultWithoutWarning(t *testing.T) {
	d := testkit.NewBuilder("equal", dilemma.CareEthics).
		Param("vulnerable_population_option_a", 10).
		Param("relationship_impact_option_a", 1).
		Param("vulnerable_population_option_b", 5).
		Param("relationship_impact_option_b", 2).
		Build()

	ev, err := NewEvaluator().Evaluate(d, dilemma.CareEthics)
	require.NoError(t, err)
	assert.Equal(t, verdict.ActionApproveOptionB, ev.Action)
	assert.Empty(t, ev.Warnings)
}

func TestClinicFrameworksSplit(t *testing.T) {
	d := testkit.ClinicDilemma()
	e := NewEvaluator()

	want := map[string]string{
		dilemma.Utilitarian:  verdict.ActionApproveOptionB,
		dilemma.Deontology:   verdict.ActionApproveOptionA,
		dilemma.VirtueEthics: verdict.ActionApproveOptionA,
		dilemma.CareEthics:   verdict.ActionApproveOptionB,
		dilemma.Justice:      verdict.ActionApproveOptionA,
	}
	for fw, action := range want {
		got, err := e.Action(d, fw)
		require.NoError(t, err)
		assert.Equal(t, action, got, fw)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	d := testkit.ClinicDilemma()
	e := NewEvaluator()
	for _, fw := range dilemma.KnownFrameworks {
		first, err := e.Evaluate(d, fw)
		require.NoError(t, err)
		second, err := e.Evaluate(d, fw)
		require.NoError(t, err)
		assert.Equal(t, first, second, fw)
	}
}

func TestUnknownFramework(t *testing.T) {
	_, err := NewEvaluator().Evaluate(testkit.ClinicDilemma(), "stoicism")
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnknownFramework, errors.GetCode(err))
}

func TestActionsArePassedThroughMapper(t *testing.T) {
	d := testkit.NewBuilder("mapped", dilemma.Utilitarian).
		Param("population_served_option_a", 1).
		Param("benefit_per_person_option_a", 1).
		Action("build_clinic", "Build the clinic").
		Action("buy_ambulances", "Buy ambulances").
		Build()

	ev, err := NewEvaluator().Evaluate(d, dilemma.Utilitarian)
	require.NoError(t, err)
	assert.Equal(t, verdict.ActionApproveOptionA, ev.InternalAction)
	assert.Equal(t, "build_clinic", ev.Action)
}

func TestParametersFor(t *testing.T) {
	assert.Equal(t, []string{"urgency_option_a", "urgency_option_b"}, ParametersFor(dilemma.Deontology))
	assert.Nil(t, ParametersFor("unknown"))
}
