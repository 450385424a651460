package validation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"godilemma/adapters/dilemmafile"
	"godilemma/domain/dilemma"
	"godilemma/internal/errors"
	"godilemma/internal/framework"
	"godilemma/internal/logging"
	"godilemma/internal/testkit"
)

func newStandardizer() *Standardizer {
	return NewStandardizer(framework.NewEvaluator(), logging.Discard())
}

func TestCleanDilemmaHasNoIssues(t *testing.T) {
	d := testkit.ClinicDilemma()
	out, issues := newStandardizer().Standardize(d)

	assert.Empty(t, issues)
	assert.NoError(t, Err(issues))
	assert.Equal(t, d.Frameworks, out.Frameworks)
}

func TestCriticalIssues(t *testing.T) {
	tests := []struct {
		name       string
		frameworks []string
		field      string
	}{
		{"no frameworks", nil, "frameworks"},
		{"unknown framework", []string{"stoicism"}, "frameworks[0]"},
		{"duplicate framework", []string{"justice", "Justice"}, "frameworks[1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := testkit.ClinicBuilder(tt.frameworks...).Build()
			_, issues := newStandardizer().Standardize(d)

			require.True(t, HasCritical(issues))
			var fields []string
			for _, is := range issues {
				fields = append(fields, is.Field)
			}
			assert.Contains(t, fields, tt.field)

			err := Err(issues)
			require.Error(t, err)
			assert.Equal(t, errors.CodeValidationFailure, errors.GetCode(err))
		})
	}
}

func TestNonFiniteParametersAreCritical(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format dilemmafile.Format
	}{
		{"yaml nan", "id: d\ntitle: T\nframeworks: [utilitarian]\nparameters:\n  urgency_option_a: .nan\n", dilemmafile.FormatYAML},
		{"yaml negative inf", "id: d\ntitle: T\nframeworks: [utilitarian]\nparameters:\n  urgency_option_a: {value: -.inf}\n", dilemmafile.FormatYAML},
		{"yaml overflow", "id: d\ntitle: T\nframeworks: [utilitarian]\nparameters:\n  urgency_option_a: 1e400\n", dilemmafile.FormatYAML},
		{"json overflow", `{"id": "d", "title": "T", "frameworks": ["utilitarian"], "parameters": {"urgency_option_a": 1e400}}`, dilemmafile.FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := dilemmafile.Parse([]byte(tt.data), tt.format)
			require.NoError(t, err)

			_, issues := newStandardizer().Standardize(d)

			require.True(t, HasCritical(issues))
			var fields []string
			for _, is := range issues {
				if is.Critical {
					fields = append(fields, is.Field)
				}
			}
			assert.Equal(t, []string{"parameters.urgency_option_a"}, fields)
			assert.Equal(t, errors.CodeValidationFailure, errors.GetCode(Err(issues)))
		})
	}
}

func TestFiniteAndTextParametersPass(t *testing.T) {
	d := testkit.ClinicBuilder(dilemma.Utilitarian).
		Param("urgency_option_a", math.MaxFloat64).
		Text("region", "NaN").
		Build()

	_, issues := newStandardizer().Standardize(d)

	assert.False(t, HasCritical(issues))
}

func TestNonCriticalIssuesAreCorrected(t *testing.T) {
	d := testkit.NewBuilder("", dilemma.Justice).
		Stakeholder("a", 1.4, "cost", "cost", "access").
		Stakeholder("a", -0.2).
		Factor("urgency", "high", 2).
		Action("x", "first").
		Build()
	d.Title = ""

	out, issues := newStandardizer().Standardize(d)

	assert.False(t, HasCritical(issues))
	assert.NoError(t, Err(issues))
	fields := map[string]bool{}
	for _, is := range issues {
		fields[is.Field] = true
	}
	for _, f := range []string{"id", "title", "stakeholders[0].influence", "stakeholders[1].influence", "stakeholders[1].id", "contextual_factors[0].relevance", "possible_actions"} {
		assert.True(t, fields[f], f)
	}

	assert.Equal(t, 1.0, out.Stakeholders[0].Influence)
	assert.Equal(t, 0.0, out.Stakeholders[1].Influence)
	assert.Equal(t, 1.0, out.ContextualFactors[0].Relevance)
	assert.Equal(t, []string{"access", "cost"}, out.Stakeholders[0].Concerns)
	// the input is untouched
	assert.Equal(t, 1.4, d.Stakeholders[0].Influence)
}

func TestFailureCarriesIssues(t *testing.T) {
	d := testkit.ClinicBuilder(dilemma.Justice, "astrology").Build()
	d.Title = ""
	_, issues := newStandardizer().Standardize(d)

	err := errors.Wrap(Err(issues), "evaluate")
	assert.True(t, errors.HasCode(err, errors.CodeValidationFailure))
	assert.Equal(t, issues, IssuesOf(err))
	assert.Len(t, IssuesOf(err), 2)

	assert.NoError(t, Err(nil))
	assert.Nil(t, IssuesOf(errors.InvalidInput("bad body")))
}

func TestNormalizeFramework(t *testing.T) {
	assert.Equal(t, dilemma.VirtueEthics, NormalizeFramework(" Virtue Ethics "))
	assert.Equal(t, dilemma.CareEthics, NormalizeFramework("care-ethics"))
}
