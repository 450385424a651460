package testkit

import (
	"godilemma/domain/core"
	"godilemma/domain/dilemma"
	"godilemma/domain/verdict"
)

func dilemmaID(id string) core.DilemmaID { return core.DilemmaID(id) }

// standardActions adds the three framework-vocabulary actions.
func standardActions(b *Builder) *Builder {
	return b.
		Action(verdict.ActionApproveOptionA, "Fund the rural clinic expansion").
		Action(verdict.ActionApproveOptionB, "Fund the urban trauma unit").
		Action(verdict.ActionNegotiateCompromises, "Split funding after negotiation")
}

// UtilitarianScenario is the 100×2 versus 50×5 case: option B wins 250 to 200.
func UtilitarianScenario() *dilemma.Dilemma {
	return standardActions(NewBuilder("utilitarian-scenario", dilemma.Utilitarian)).
		Param("population_served_option_a", 100).
		Param("benefit_per_person_option_a", 2).
		Param("population_served_option_b", 50).
		Param("benefit_per_person_option_b", 5).
		Build()
}

// ZeroUrgencyScenario has both deontological urgencies at zero.
func ZeroUrgencyScenario() *dilemma.Dilemma {
	return standardActions(NewBuilder("zero-urgency", dilemma.Deontology)).
		Param("urgency_option_a", 0).
		Param("urgency_option_b", 0).
		Build()
}

// ClinicDilemma evaluates all five frameworks. Deontology, virtue ethics and
// justice favor option A; utilitarianism and care ethics favor option B.
func ClinicDilemma() *dilemma.Dilemma {
	return clinicBuilder(dilemma.KnownFrameworks...).Build()
}

// MajorityDilemma has four frameworks split three to one in favor of option A
// with no contextual factors.
func MajorityDilemma() *dilemma.Dilemma {
	return clinicBuilder(dilemma.Utilitarian, dilemma.Deontology, dilemma.VirtueEthics, dilemma.Justice).Build()
}

// ClinicBuilder exposes the clinic fixture for tests that need variations.
func ClinicBuilder(frameworks ...string) *Builder {
	return clinicBuilder(frameworks...)
}

func clinicBuilder(frameworks ...string) *Builder {
	return standardActions(NewBuilder("clinic-funding", frameworks...)).
		Description("A regional health board must choose between two proposals with a fixed budget.").
		Param("population_served_option_a", 100).
		Param("benefit_per_person_option_a", 2).
		Param("population_served_option_b", 50).
		Param("benefit_per_person_option_b", 5).
		Param("urgency_option_a", 8).
		Param("urgency_option_b", 5).
		Param("honesty_option_a", 7).
		Param("courage_option_a", 6).
		Param("honesty_option_b", 6).
		Param("courage_option_b", 5).
		Param("vulnerable_population_option_a", 30).
		Param("relationship_impact_option_a", 0.8).
		Param("vulnerable_population_option_b", 40).
		Param("relationship_impact_option_b", 0.9).
		Param("fairness_score_option_a", 0.7).
		Param("fairness_score_option_b", 0.6).
		Text("region", "north").
		Stakeholder("patients", 0.8, "access", "quality").
		Stakeholder("clinicians", 0.6, "workload", "quality").
		Stakeholder("taxpayers", 0.4, "cost")
}
