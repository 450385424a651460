package report

import (
	"fmt"
	"sort"
	"strings"

	"godilemma/domain/verdict"
	"godilemma/internal/errors"
	"godilemma/ports"
)

// Output formats understood by New.
const (
	FormatJSON = "json"
	FormatXLSX = "xlsx"
	FormatHTML = "html"
	FormatText = "text"
)

// Formats lists every supported format.
var Formats = []string{FormatJSON, FormatXLSX, FormatHTML, FormatText}

// New returns the writer for format.
func New(format string) (ports.ReportWriter, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return JSONWriter{}, nil
	case FormatXLSX:
		return XLSXWriter{}, nil
	case FormatHTML:
		return HTMLWriter{}, nil
	case FormatText, "txt":
		return TextWriter{}, nil
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unknown report format %q (want one of %s)", format, strings.Join(Formats, ", ")))
	}
}

// resolutionFor pairs each conflict with its resolution by conflict id.
func resolutionFor(result *verdict.Result) map[string]verdict.Resolution {
	out := make(map[string]verdict.Resolution, len(result.Resolutions))
	for _, r := range result.Resolutions {
		out[r.ConflictID.String()] = r
	}
	return out
}

func sortedWeights(weights map[string]float64) []string {
	keys := make([]string, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%.2f", k, weights[k])
	}
	return parts
}

func percent(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}
