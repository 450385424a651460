package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"godilemma/domain/verdict"
)

// TextWriter writes an aligned plain text summary for terminals.
type TextWriter struct{}

func (TextWriter) Write(w io.Writer, result *verdict.Result) error {
	final := result.Final
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\n", result.Title)
	fmt.Fprintf(tw, "Recommendation:\t%s\n", final.Action)
	fmt.Fprintf(tw, "Confidence:\t%s\n", percent(final.Confidence))
	fmt.Fprintf(tw, "Supporting:\t%s\n", strings.Join(final.SupportingFrameworks, ", "))
	fmt.Fprintf(tw, "Opposing:\t%s\n", strings.Join(final.OpposingFrameworks, ", "))
	fmt.Fprintf(tw, "Run:\t%s\n\n", result.RunID)

	fmt.Fprintln(tw, "FRAMEWORK\tACTION\tSENSITIVE")
	for _, fw := range result.Frameworks {
		rec := result.Recommendations[fw]
		fmt.Fprintf(tw, "%s\t%s\t%s\n", fw, rec.RecommendedAction, strings.Join(rec.SensitiveParameters, ","))
	}

	if len(result.Conflicts) > 0 {
		resolutions := resolutionFor(result)
		fmt.Fprintln(tw, "\nCONFLICT\tSEVERITY\tSTRATEGY\tACTION")
		for _, c := range result.Conflicts {
			r := resolutions[c.ID.String()]
			fmt.Fprintf(tw, "%s\t%.2f\t%s\t%s\n", c.ID, c.Severity, r.Strategy, r.RecommendedAction)
		}
	}

	for _, p := range final.CriticalParameters {
		fmt.Fprintf(tw, "\ncritical: %s (%s) flips to %s at %.4g\n", p.Parameter, p.Framework, p.FlipsTo, p.Threshold)
	}
	for _, warn := range result.Warnings {
		fmt.Fprintf(tw, "warning: %s %s\n", warn.Code, warn.Message)
	}

	fmt.Fprintf(tw, "\n%s\n", final.Reasoning)
	return tw.Flush()
}

func (TextWriter) ContentType() string { return "text/plain; charset=utf-8" }
