package dilemma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Dilemma {
	return &Dilemma{
		ID:    "d-1",
		Title: "Clinic funding",
		Parameters: map[string]Parameter{
			"urgency_option_a": NumericParameter(3, "urgency of A"),
			"region":           TextParameter("north", ""),
		},
		Stakeholders: []Stakeholder{
			{ID: "s1", Name: "Patients", Concerns: []string{"access", "cost", "access"}, Influence: 0.8},
		},
		Frameworks:      []string{Utilitarian, Deontology},
		PossibleActions: []Action{{ID: "approve_option_a", Description: "Fund A"}},
		ActionMapping:   map[string]string{"fund_a": "approve_option_a"},
	}
}

func TestCloneIsIndependent(t *testing.T) {
	d := sample()
	c := d.Clone()
	require.Equal(t, d, c)

	c.Parameters["urgency_option_a"] = NumericParameter(99, "")
	c.Stakeholders[0].Concerns[0] = "changed"
	c.Frameworks[0] = Justice
	c.ActionMapping["fund_a"] = "other"

	assert.Equal(t, 3.0, d.Parameters["urgency_option_a"].Value)
	assert.Equal(t, "access", d.Stakeholders[0].Concerns[0])
	assert.Equal(t, Utilitarian, d.Frameworks[0])
	assert.Equal(t, "approve_option_a", d.ActionMapping["fund_a"])
}

func TestWithParameterDoesNotAlias(t *testing.T) {
	d := sample()
	v := d.WithParameter("urgency_option_a", 7)

	got, ok := v.Number("urgency_option_a")
	require.True(t, ok)
	assert.Equal(t, 7.0, got)

	orig, _ := d.Number("urgency_option_a")
	assert.Equal(t, 3.0, orig)
	assert.Equal(t, "urgency of A", v.Parameters["urgency_option_a"].Description)
}

func TestNumericParameterNamesSkipsText(t *testing.T) {
	d := sample()
	assert.Equal(t, []string{"urgency_option_a"}, d.NumericParameterNames())
}

func TestNormalizeConcerns(t *testing.T) {
	d := sample()
	d.NormalizeConcerns()
	assert.Equal(t, []string{"access", "cost"}, d.Stakeholders[0].Concerns)
	assert.True(t, d.Stakeholders[0].HasConcern("cost"))
}
