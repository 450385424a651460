package precedent

import (
	"godilemma/domain/dilemma"
	"godilemma/domain/verdict"
)

// StaticCases returns the built-in precedent set. It is the fallback when
// the configured finder is slow or unavailable, and the seed for SQL stores.
func StaticCases() []verdict.PrecedentCase {
	return []verdict.PrecedentCase{
		{
			ID:                "triage-ventilators-2020",
			Title:             "Ventilator allocation during a regional surge",
			ResolutionSummary: "Allocated by expected benefit with a fair lottery among equal candidates.",
			RecommendedAction: verdict.ActionApproveOptionA,
			Keywords:          []string{"allocation", "hospital", "patients", "scarce", "surge", "triage", "ventilators"},
			Dimensions:        []string{dilemma.Utilitarian, dilemma.Justice, "scarcity", "access", "quality"},
		},
		{
			ID:                "clinic-closure-rural",
			Title:             "Closing a rural clinic to fund an urban hospital wing",
			ResolutionSummary: "Kept a reduced rural service while phasing the urban build.",
			RecommendedAction: verdict.ActionNegotiateCompromises,
			Keywords:          []string{"budget", "clinic", "funding", "health", "hospital", "regional", "rural", "urban"},
			Dimensions:        []string{dilemma.CareEthics, dilemma.Justice, "access", "cost"},
		},
		{
			ID:                "whistleblower-disclosure",
			Title:             "Disclosing a safety defect against an NDA",
			ResolutionSummary: "Disclosure upheld; the duty to prevent harm outweighed the contractual promise.",
			RecommendedAction: verdict.ActionApproveOptionB,
			Keywords:          []string{"contract", "defect", "disclosure", "honesty", "safety", "whistleblower"},
			Dimensions:        []string{dilemma.Deontology, dilemma.VirtueEthics, "rights", "reputation"},
		},
		{
			ID:                "school-district-redraw",
			Title:             "Redrawing school district boundaries",
			ResolutionSummary: "Adopted the plan with the most equal outcomes after public hearings.",
			RecommendedAction: verdict.ActionApproveOptionA,
			Keywords:          []string{"boundaries", "children", "district", "education", "equity", "school"},
			Dimensions:        []string{dilemma.Justice, dilemma.CareEthics, "fairness", "vulnerability"},
		},
		{
			ID:                "layoffs-versus-paycut",
			Title:             "Layoffs versus an across-the-board pay cut",
			ResolutionSummary: "Chose a temporary pay cut negotiated with employee representatives.",
			RecommendedAction: verdict.ActionNegotiateCompromises,
			Keywords:          []string{"employees", "layoffs", "payroll", "salary", "workforce", "workload"},
			Dimensions:        []string{dilemma.Utilitarian, dilemma.CareEthics, "workload", "cost"},
		},
		{
			ID:                "data-sharing-research",
			Title:             "Sharing patient records with a research consortium",
			ResolutionSummary: "Shared de-identified records only after consent review.",
			RecommendedAction: verdict.ActionApproveOptionB,
			Keywords:          []string{"consent", "data", "patient", "privacy", "records", "research"},
			Dimensions:        []string{dilemma.Deontology, dilemma.Utilitarian, "rights", "quality"},
		},
	}
}
