package app

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"godilemma/domain/dilemma"
	"godilemma/domain/verdict"
	"godilemma/internal/confidence"
	"godilemma/internal/config"
	"godilemma/internal/conflict"
	"godilemma/internal/contextual"
	"godilemma/internal/errors"
	"godilemma/internal/framework"
	"godilemma/internal/logging"
	"godilemma/internal/resolution"
	"godilemma/internal/semantic"
	"godilemma/internal/sensitivity"
	"godilemma/internal/strategy"
	"godilemma/internal/testkit"
	"godilemma/internal/validation"
)

func newService() *EvaluationService {
	cfg := config.Default()
	logger := logging.Discard()
	evaluator := framework.NewEvaluator()
	reader := contextual.NewReader()
	return NewEvaluationService(Stages{
		Standardizer: validation.NewStandardizer(evaluator, logger),
		Evaluator:    evaluator,
		Analyzer:     sensitivity.NewAnalyzer(evaluator, cfg.Engine, logger),
		Detector:     conflict.NewDetector(semantic.NewKeywordClassifier(), logger),
		Selector:     strategy.NewSelector(reader, logger),
		Engine:       resolution.NewEngine(reader, semantic.NewTagger(), nil, cfg.Engine, logger),
		Synthesizer:  confidence.NewSynthesizer(logger),
	}, 4, logger)
}

func TestSingleFrameworkRun(t *testing.T) {
	result, err := newService().Evaluate(context.Background(), testkit.UtilitarianScenario())
	require.NoError(t, err)

	assert.Equal(t, verdict.ActionApproveOptionB, result.Recommendations[dilemma.Utilitarian].RecommendedAction)
	assert.Equal(t, verdict.ActionApproveOptionB, result.Final.Action)
	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.Resolutions)
	assert.Equal(t, []string{dilemma.Utilitarian}, result.Final.SupportingFrameworks)
	assert.NotEmpty(t, result.RunID)
	assert.NotEmpty(t, result.Fingerprint)
}

func TestDegenerateComparisonLowersValidationQuality(t *testing.T) {
	result, err := newService().Evaluate(context.Background(), testkit.ZeroUrgencyScenario())
	require.NoError(t, err)

	assert.Equal(t, verdict.ActionNegotiateCompromises, result.Final.Action)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, errors.CodeDegenerateComparison, result.Warnings[0].Code)
	assert.InDelta(t, 0.5, result.Final.ConfidenceFactors[verdict.FactorValidationQuality], 1e-12)
}

func TestMajorityMultiConflictRun(t *testing.T) {
	result, err := newService().Evaluate(context.Background(), testkit.MajorityDilemma())
	require.NoError(t, err)

	var multi *verdict.Resolution
	for i, c := range result.Conflicts {
		if c.Kind == verdict.KindMultiFramework {
			multi = &result.Resolutions[i]
		}
	}
	require.NotNil(t, multi)
	assert.Equal(t, verdict.StrategyMultiFrameworkIntegration, multi.Strategy)
	assert.Equal(t, verdict.ActionApproveOptionA, multi.RecommendedAction)
	assert.Equal(t, verdict.ActionApproveOptionA, result.Final.Action)

	assert.Len(t, result.Resolutions, len(result.Conflicts))
	for i, res := range result.Resolutions {
		assert.Equal(t, result.Conflicts[i].ID, res.ConflictID)
		var sum float64
		for _, w := range res.Weights {
			sum += w
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
	assert.GreaterOrEqual(t, result.Final.Confidence, 0.0)
	assert.LessOrEqual(t, result.Final.Confidence, 1.0)
}

func TestRunsAreDeterministic(t *testing.T) {
	svc := newService()
	first, err := svc.Evaluate(context.Background(), testkit.ClinicDilemma())
	require.NoError(t, err)
	second, err := svc.Evaluate(context.Background(), testkit.ClinicDilemma())
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.Equal(t, first.Recommendations, second.Recommendations)
	assert.Equal(t, first.Conflicts, second.Conflicts)
	assert.Equal(t, first.Resolutions, second.Resolutions)
	assert.Equal(t, first.Final, second.Final)
}

func TestCriticalValidationHaltsRun(t *testing.T) {
	d := testkit.ClinicBuilder(dilemma.Justice, "astrology").Build()

	result, err := newService().Evaluate(context.Background(), d)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, errors.CodeValidationFailure, errors.GetCode(err))
}

func TestNonFiniteParameterHaltsRun(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		d := testkit.UtilitarianScenario()
		d.Parameters["benefit_per_person_option_a"] = dilemma.NumericParameter(v, "")

		result, err := newService().Evaluate(context.Background(), d)

		require.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, errors.CodeValidationFailure, errors.GetCode(err))
		issues := validation.IssuesOf(err)
		require.Len(t, issues, 1)
		assert.Equal(t, "parameters.benefit_per_person_option_a", issues[0].Field)
	}
}

func TestNonCriticalIssuesAreReported(t *testing.T) {
	d := testkit.UtilitarianScenario()
	d.Title = ""

	result, err := newService().Evaluate(context.Background(), d)
	require.NoError(t, err)

	require.Len(t, result.ValidationIssues, 1)
	assert.Equal(t, "title", result.ValidationIssues[0].Field)
}

func TestNilDilemma(t *testing.T) {
	_, err := newService().Evaluate(context.Background(), nil)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}
