package validation

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"godilemma/domain/dilemma"
	"godilemma/domain/verdict"
	"godilemma/internal/errors"
	"godilemma/internal/framework"
)

// Standardizer checks a dilemma and returns a normalized copy. Critical
// issues stop a run; the rest are reported and corrected where possible.
type Standardizer struct {
	evaluator *framework.Evaluator
	logger    *slog.Logger
}

// NewStandardizer creates a standardizer that accepts the frameworks
// evaluator has rules for.
func NewStandardizer(evaluator *framework.Evaluator, logger *slog.Logger) *Standardizer {
	return &Standardizer{evaluator: evaluator, logger: logger}
}

// Standardize validates d and returns a normalized copy with the issues found.
// The input is never modified.
func (s *Standardizer) Standardize(d *dilemma.Dilemma) (*dilemma.Dilemma, []verdict.ValidationIssue) {
	if d == nil {
		return nil, []verdict.ValidationIssue{{Field: "dilemma", Message: "dilemma is missing", Critical: true}}
	}
	out := d.Clone()
	out.NormalizeConcerns()

	var issues []verdict.ValidationIssue
	report := func(field string, critical bool, format string, args ...interface{}) {
		issues = append(issues, verdict.ValidationIssue{
			Field:    field,
			Message:  fmt.Sprintf(format, args...),
			Critical: critical,
		})
	}

	if strings.TrimSpace(string(out.ID)) == "" {
		report("id", false, "dilemma id is empty")
	}
	if strings.TrimSpace(out.Title) == "" {
		report("title", false, "dilemma title is empty")
	}

	if len(out.Frameworks) == 0 {
		report("frameworks", true, "at least one framework is required")
	}
	seen := make(map[string]bool, len(out.Frameworks))
	for i, fw := range out.Frameworks {
		name := NormalizeFramework(fw)
		out.Frameworks[i] = name
		field := fmt.Sprintf("frameworks[%d]", i)
		if !s.evaluator.Supports(name) {
			report(field, true, "unknown framework %q", fw)
		}
		if seen[name] {
			report(field, true, "duplicate framework %q", name)
		}
		seen[name] = true
	}

	names := make([]string, 0, len(out.Parameters))
	for name := range out.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p := out.Parameters[name]
		if p.Numeric && (math.IsNaN(p.Value) || math.IsInf(p.Value, 0)) {
			report("parameters."+name, true, "parameter value %v is not a finite number", p.Value)
		}
	}

	stakeholders := make(map[string]bool, len(out.Stakeholders))
	for i := range out.Stakeholders {
		sh := &out.Stakeholders[i]
		field := fmt.Sprintf("stakeholders[%d]", i)
		if sh.Influence < 0 || sh.Influence > 1 {
			report(field+".influence", false, "influence %.2f outside [0,1]; clamped", sh.Influence)
			sh.Influence = clamp01(sh.Influence)
		}
		if stakeholders[sh.ID] {
			report(field+".id", false, "duplicate stakeholder id %q", sh.ID)
		}
		stakeholders[sh.ID] = true
	}

	for i := range out.ContextualFactors {
		f := &out.ContextualFactors[i]
		if f.Relevance < 0 || f.Relevance > 1 {
			report(fmt.Sprintf("contextual_factors[%d].relevance", i), false, "relevance %.2f outside [0,1]; clamped", f.Relevance)
			f.Relevance = clamp01(f.Relevance)
		}
	}

	if len(out.PossibleActions) < 2 {
		report("possible_actions", false, "fewer than two possible actions (%d)", len(out.PossibleActions))
	}
	actions := make(map[string]bool, len(out.PossibleActions))
	for i, a := range out.PossibleActions {
		if actions[a.ID] {
			report(fmt.Sprintf("possible_actions[%d].id", i), false, "duplicate action id %q", a.ID)
		}
		actions[a.ID] = true
	}

	if len(issues) > 0 {
		s.logger.Info("dilemma standardized with issues",
			"dilemma", out.ID,
			"issues", len(issues),
			"critical", HasCritical(issues))
	}
	return out, issues
}

// NormalizeFramework lowercases a framework name and joins words with
// underscores, so "Virtue Ethics" becomes "virtue_ethics".
func NormalizeFramework(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(name)
}

// HasCritical reports whether any issue is critical.
func HasCritical(issues []verdict.ValidationIssue) bool {
	for _, is := range issues {
		if is.Critical {
			return true
		}
	}
	return false
}

// Failure is the error for a dilemma with critical issues. It carries every
// issue found so callers can report them alongside the error.
type Failure struct {
	Issues []verdict.ValidationIssue
	err    *errors.AppError
}

func (f *Failure) Error() string { return f.err.Error() }

func (f *Failure) Unwrap() error { return f.err }

// Err returns a VALIDATION_FAILURE *Failure describing the critical issues,
// or nil when there are none.
func Err(issues []verdict.ValidationIssue) error {
	var msgs []string
	for _, is := range issues {
		if is.Critical {
			msgs = append(msgs, fmt.Sprintf("%s: %s", is.Field, is.Message))
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return &Failure{
		Issues: issues,
		err:    errors.ValidationFailure("critical validation issues: " + strings.Join(msgs, "; ")),
	}
}

// IssuesOf returns the issues carried by a Failure anywhere in err's chain.
func IssuesOf(err error) []verdict.ValidationIssue {
	var f *Failure
	if stderrors.As(err, &f) {
		return f.Issues
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
