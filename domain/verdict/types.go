package verdict

import (
	"godilemma/domain/core"
)

// Framework-internal action vocabulary. Dilemma-specific action ids are
// mapped onto these by an ActionMapper.
const (
	ActionApproveOptionA       = "approve_option_a"
	ActionApproveOptionB       = "approve_option_b"
	ActionNegotiateCompromises = "negotiate_compromises"
)

// Warning is a non-fatal issue raised while evaluating a dilemma.
type Warning struct {
	Code      string `json:"code"`
	Framework string `json:"framework,omitempty"`
	Parameter string `json:"parameter,omitempty"`
	Message   string `json:"message"`
}

// Evaluation is the raw output of a single framework evaluation.
type Evaluation struct {
	Framework      string     `json:"framework"`
	Action         string     `json:"action"`
	InternalAction string     `json:"internal_action"`
	Justification  string     `json:"justification"`
	Totals         [2]float64 `json:"totals"`
	Warnings       []Warning  `json:"warnings,omitempty"`
}

// Threshold records where a parameter flips a framework's recommendation.
// Nil thresholds mean no flip was found in that direction.
type Threshold struct {
	OriginalValue     float64  `json:"original_value"`
	DecreaseThreshold *float64 `json:"decrease_threshold"`
	IncreaseThreshold *float64 `json:"increase_threshold"`
	SensitivityScore  float64  `json:"sensitivity_score"`
	RelativeDistance  float64  `json:"relative_distance"`
	ActionAtDecrease  string   `json:"action_at_decrease,omitempty"`
	ActionAtIncrease  string   `json:"action_at_increase,omitempty"`
}

// NearestThreshold returns the threshold closest to the original value along
// with its direction ("decrease" or "increase") and the action it produces.
func (t Threshold) NearestThreshold() (value float64, direction string, action string, ok bool) {
	switch {
	case t.DecreaseThreshold != nil && t.IncreaseThreshold != nil:
		if t.OriginalValue-*t.DecreaseThreshold <= *t.IncreaseThreshold-t.OriginalValue {
			return *t.DecreaseThreshold, "decrease", t.ActionAtDecrease, true
		}
		return *t.IncreaseThreshold, "increase", t.ActionAtIncrease, true
	case t.DecreaseThreshold != nil:
		return *t.DecreaseThreshold, "decrease", t.ActionAtDecrease, true
	case t.IncreaseThreshold != nil:
		return *t.IncreaseThreshold, "increase", t.ActionAtIncrease, true
	default:
		return 0, "", "", false
	}
}

// FrameworkRecommendation is one framework's verdict on the dilemma.
type FrameworkRecommendation struct {
	Framework           string               `json:"framework"`
	RecommendedAction   string               `json:"recommended_action"`
	Justification       string               `json:"justification"`
	SensitiveParameters []string             `json:"sensitive_parameters"`
	Thresholds          map[string]Threshold `json:"thresholds"`
	Warnings            []Warning            `json:"warnings,omitempty"`
}

// ConflictKind classifies who disagrees.
type ConflictKind string

const (
	KindFramework      ConflictKind = "framework"
	KindMultiFramework ConflictKind = "multi_framework"
	KindStakeholder    ConflictKind = "stakeholder"
)

// ConflictNature classifies why two frameworks disagree.
type ConflictNature string

const (
	NatureValue          ConflictNature = "value"
	NatureFactual        ConflictNature = "factual"
	NatureMethodological ConflictNature = "methodological"
)

// Conflict is a detected disagreement. Conflicts are never mutated after
// detection.
type Conflict struct {
	ID              core.ConflictID     `json:"id"`
	Kind            ConflictKind        `json:"kind"`
	Participants    []string            `json:"participants"`
	Severity        float64             `json:"severity"`
	Nature          ConflictNature      `json:"nature,omitempty"`
	CompromiseAreas []string            `json:"compromise_areas"`
	Actions         map[string]string   `json:"actions,omitempty"`
	Groups          map[string][]string `json:"groups,omitempty"`
	Evenness        float64             `json:"evenness,omitempty"`
}

// InteractionKind classifies agreement records.
type InteractionKind string

const (
	InteractionAgreement InteractionKind = "agreement"
	InteractionConsensus InteractionKind = "consensus"
)

// Interaction records frameworks that agree. Used for narrative only.
type Interaction struct {
	Kind         InteractionKind `json:"kind"`
	Participants []string        `json:"participants"`
	Action       string          `json:"action"`
	Similarity   float64         `json:"similarity"`
}

// PrecedentCase is a ranked result from the precedent collaborator.
type PrecedentCase struct {
	ID                string   `json:"id" db:"id"`
	Title             string   `json:"title" db:"title"`
	Similarity        float64  `json:"similarity" db:"-"`
	ResolutionSummary string   `json:"resolution_summary" db:"resolution_summary"`
	RecommendedAction string   `json:"recommended_action,omitempty" db:"recommended_action"`
	Keywords          []string `json:"keywords,omitempty" db:"-"`
	Dimensions        []string `json:"dimensions,omitempty" db:"-"`
}

// Resolution is the outcome of applying one strategy to one conflict.
type Resolution struct {
	ConflictID         core.ConflictID     `json:"conflict_id"`
	Strategy           Strategy            `json:"strategy"`
	Weights            map[string]float64  `json:"weights"`
	OriginalWeights    map[string]float64  `json:"_original_weights,omitempty"`
	RecommendedAction  string              `json:"recommended_action"`
	Reasoning          string              `json:"reasoning"`
	Confidence         float64             `json:"confidence,omitempty"`
	PriorityFramework  string              `json:"priority_framework,omitempty"`
	PrecedentCases     []PrecedentCase     `json:"precedent_cases,omitempty"`
	PrecedentSource    string              `json:"precedent_source,omitempty"`
	CompromiseProposal string              `json:"compromise_proposal,omitempty"`
	ProceduralProposal string              `json:"procedural_proposal,omitempty"`
	MetaAnalysis       string              `json:"meta_analysis,omitempty"`
	HybridElements     map[string][]string `json:"hybrid_elements,omitempty"`
}

// CriticalParameter is a parameter close to flipping some framework.
type CriticalParameter struct {
	Parameter        string  `json:"parameter"`
	Framework        string  `json:"framework"`
	Threshold        float64 `json:"threshold"`
	Direction        string  `json:"direction"`
	RelativeDistance float64 `json:"relative_distance"`
	SensitivityScore float64 `json:"sensitivity_score"`
	CurrentAction    string  `json:"current_action"`
	FlipsTo          string  `json:"flips_to"`
}

// Confidence factor names.
const (
	FactorAgreement          = "agreement"
	FactorDiversity          = "diversity"
	FactorValidationQuality  = "validation_quality"
	FactorParameterStability = "parameter_stability"
)

// FinalRecommendation is the single answer synthesized from every stage.
type FinalRecommendation struct {
	Action               string              `json:"action"`
	Confidence           float64             `json:"confidence"`
	ConfidenceFactors    map[string]float64  `json:"confidence_factors"`
	SupportingFrameworks []string            `json:"supporting_frameworks"`
	OpposingFrameworks   []string            `json:"opposing_frameworks"`
	CriticalParameters   []CriticalParameter `json:"critical_parameters"`
	Reasoning            string              `json:"reasoning"`
}

// ValidationIssue is reported by the standardization collaborator.
type ValidationIssue struct {
	Field    string `json:"field"`
	Message  string `json:"message"`
	Critical bool   `json:"critical"`
}

// Result is the complete output of one pipeline run.
type Result struct {
	RunID            core.RunID                         `json:"run_id"`
	DilemmaID        core.DilemmaID                     `json:"dilemma_id"`
	Title            string                             `json:"title"`
	Fingerprint      core.Hash                          `json:"fingerprint"`
	Frameworks       []string                           `json:"frameworks"`
	Recommendations  map[string]FrameworkRecommendation `json:"recommendations"`
	Conflicts        []Conflict                         `json:"conflicts"`
	Interactions     []Interaction                      `json:"interactions"`
	Resolutions      []Resolution                       `json:"resolutions"`
	Final            FinalRecommendation                `json:"final_recommendation"`
	Warnings         []Warning                          `json:"warnings,omitempty"`
	ValidationIssues []ValidationIssue                  `json:"validation_issues,omitempty"`
	GeneratedAt      core.Timestamp                     `json:"generated_at"`
}
