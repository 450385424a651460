package report

import (
	"fmt"
	"strings"

	"godilemma/domain/verdict"
)

// Markdown renders a human readable summary of result.
func Markdown(result *verdict.Result) string {
	var b strings.Builder
	final := result.Final

	fmt.Fprintf(&b, "# %s\n\n", result.Title)
	fmt.Fprintf(&b, "**Recommended action:** `%s` (%s confidence)\n\n", final.Action, percent(final.Confidence))
	fmt.Fprintf(&b, "%s\n\n", final.Reasoning)

	b.WriteString("## Framework recommendations\n\n")
	b.WriteString("| Framework | Action | Sensitive parameters |\n|---|---|---|\n")
	for _, fw := range result.Frameworks {
		rec := result.Recommendations[fw]
		fmt.Fprintf(&b, "| %s | %s | %s |\n", fw, rec.RecommendedAction, strings.Join(rec.SensitiveParameters, ", "))
	}
	b.WriteString("\n")

	if len(result.Conflicts) > 0 {
		resolutions := resolutionFor(result)
		b.WriteString("## Conflicts\n\n")
		b.WriteString("| Conflict | Kind | Severity | Strategy | Action | Weights |\n|---|---|---|---|---|---|\n")
		for _, c := range result.Conflicts {
			r := resolutions[c.ID.String()]
			fmt.Fprintf(&b, "| %s | %s | %.2f | %s | %s | %s |\n",
				c.ID, c.Kind, c.Severity, r.Strategy, r.RecommendedAction, strings.Join(sortedWeights(r.Weights), " "))
		}
		b.WriteString("\n")
	}

	if len(final.CriticalParameters) > 0 {
		b.WriteString("## Critical parameters\n\n")
		b.WriteString("| Parameter | Framework | Threshold | Direction | Flips to |\n|---|---|---|---|---|\n")
		for _, p := range final.CriticalParameters {
			fmt.Fprintf(&b, "| %s | %s | %.4g | %s | %s |\n", p.Parameter, p.Framework, p.Threshold, p.Direction, p.FlipsTo)
		}
		b.WriteString("\n")
	}

	if len(result.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range result.Warnings {
			fmt.Fprintf(&b, "- `%s` %s\n", w.Code, w.Message)
		}
		b.WriteString("\n")
	}

	if len(result.ValidationIssues) > 0 {
		b.WriteString("## Validation issues\n\n")
		for _, is := range result.ValidationIssues {
			fmt.Fprintf(&b, "- %s: %s\n", is.Field, is.Message)
		}
		b.WriteString("\n")
	}

	return b.String()
}
