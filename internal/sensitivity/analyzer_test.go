package sensitivity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"godilemma/domain/dilemma"
	"godilemma/domain/verdict"
	"godilemma/internal/config"
	"godilemma/internal/framework"
	"godilemma/internal/logging"
	"godilemma/internal/testkit"
)

func newAnalyzer() (*Analyzer, *framework.Evaluator) {
	ev := framework.NewEvaluator()
	return NewAnalyzer(ev, config.Default().Engine, logging.Discard()), ev
}

func TestBisectionLocatesUrgencyThreshold(t *testing.T) {
	a, _ := newAnalyzer()
	d := testkit.NewBuilder("urgency", dilemma.Deontology).
		Param("urgency_option_a", 10).
		Param("urgency_option_b", 9).
		Build()

	got, err := a.Analyze(context.Background(), d, dilemma.Deontology)
	require.NoError(t, err)

	assert.Equal(t, verdict.ActionApproveOptionA, got.BaselineAction)
	th, ok := got.Thresholds["urgency_option_a"]
	require.True(t, ok)
	require.NotNil(t, th.DecreaseThreshold)
	assert.Nil(t, th.IncreaseThreshold)
	assert.InDelta(t, 8.984375, *th.DecreaseThreshold, 1e-9)
	assert.Equal(t, verdict.ActionApproveOptionB, th.ActionAtDecrease)
	assert.InDelta(t, 0.1015625, th.RelativeDistance, 1e-9)
	assert.Greater(t, th.SensitivityScore, 0.3)
	assert.Contains(t, got.SensitiveParameters, "urgency_option_a")

	thB := got.Thresholds["urgency_option_b"]
	require.NotNil(t, thB.IncreaseThreshold)
	assert.InDelta(t, 10.0546875, *thB.IncreaseThreshold, 1e-9)
	assert.Nil(t, thB.DecreaseThreshold)
}

func TestZeroValuedParametersUseUnitStep(t *testing.T) {
	a, _ := newAnalyzer()

	got, err := a.Analyze(context.Background(), testkit.ZeroUrgencyScenario(), dilemma.Deontology)
	require.NoError(t, err)

	th := got.Thresholds["urgency_option_a"]
	require.NotNil(t, th.DecreaseThreshold)
	require.NotNil(t, th.IncreaseThreshold)
	assert.InDelta(t, -0.0625, *th.DecreaseThreshold, 1e-9)
	assert.InDelta(t, 0.0625, *th.IncreaseThreshold, 1e-9)
	assert.Equal(t, verdict.ActionApproveOptionB, th.ActionAtDecrease)
	assert.Equal(t, verdict.ActionApproveOptionA, th.ActionAtIncrease)
	assert.ElementsMatch(t, []string{"urgency_option_a", "urgency_option_b"}, got.SensitiveParameters)
}

func TestDistantThresholdIsRetainedButNotSensitive(t *testing.T) {
	a, _ := newAnalyzer()

	got, err := a.Analyze(context.Background(), testkit.UtilitarianScenario(), dilemma.Utilitarian)
	require.NoError(t, err)

	th, ok := got.Thresholds["population_served_option_a"]
	require.True(t, ok)
	require.NotNil(t, th.IncreaseThreshold)
	assert.Less(t, th.SensitivityScore, 0.3)
	assert.NotContains(t, got.SensitiveParameters, "population_served_option_a")
}

func TestThresholdSoundness(t *testing.T) {
	a, ev := newAnalyzer()
	d := testkit.ClinicDilemma()

	for _, fw := range d.Frameworks {
		got, err := a.Analyze(context.Background(), d, fw)
		require.NoError(t, err)

		for name, th := range got.Thresholds {
			for _, value := range []*float64{th.DecreaseThreshold, th.IncreaseThreshold} {
				if value == nil {
					continue
				}
				action, err := ev.Action(d.WithParameter(name, *value), fw)
				require.NoError(t, err)
				assert.NotEqual(t, got.BaselineAction, action, "%s/%s at %v", fw, name, *value)
			}
			assert.GreaterOrEqual(t, th.SensitivityScore, 0.0)
			assert.LessOrEqual(t, th.SensitivityScore, 1.0)
		}
	}
}

func TestAnalyzeIsDeterministicAndDoesNotMutate(t *testing.T) {
	a, _ := newAnalyzer()
	d := testkit.ClinicDilemma()
	before := d.Clone()

	first, err := a.Analyze(context.Background(), d, dilemma.Justice)
	require.NoError(t, err)
	second, err := a.Analyze(context.Background(), d, dilemma.Justice)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, before, d)
}

func TestAnalyzeErrors(t *testing.T) {
	a, _ := newAnalyzer()

	_, err := a.Analyze(context.Background(), testkit.ClinicDilemma(), "stoicism")
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = a.Analyze(ctx, testkit.ClinicDilemma(), dilemma.Justice)
	assert.Error(t, err)
}

func TestRelativeDistance(t *testing.T) {
	assert.InDelta(t, 0.5, RelativeDistance(0, 0.5), 1e-12)
	assert.InDelta(t, 0.25, RelativeDistance(100, 125), 1e-12)
	assert.InDelta(t, 1.0, proximity(0), 1e-12)
}
