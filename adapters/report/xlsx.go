package report

import (
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"godilemma/domain/verdict"
)

// XLSXWriter writes one worksheet per result section.
type XLSXWriter struct{}

// Sheet names written by XLSXWriter.
const (
	SheetSummary     = "Summary"
	SheetFrameworks  = "Frameworks"
	SheetConflicts   = "Conflicts"
	SheetCriticalSet = "Critical Parameters"
)

func (XLSXWriter) Write(w io.Writer, result *verdict.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	final := result.Final
	summary := [][]interface{}{
		{"Field", "Value"},
		{"Dilemma", result.DilemmaID.String()},
		{"Title", result.Title},
		{"Run", result.RunID.String()},
		{"Action", final.Action},
		{"Confidence", final.Confidence},
		{"Supporting", strings.Join(final.SupportingFrameworks, ", ")},
		{"Opposing", strings.Join(final.OpposingFrameworks, ", ")},
		{"Fingerprint", result.Fingerprint.String()},
	}
	for _, name := range []string{verdict.FactorAgreement, verdict.FactorDiversity, verdict.FactorValidationQuality, verdict.FactorParameterStability} {
		summary = append(summary, []interface{}{name, final.ConfidenceFactors[name]})
	}
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return err
	}
	if err := writeRows(f, SheetSummary, summary); err != nil {
		return err
	}

	frameworks := [][]interface{}{{"Framework", "Action", "Sensitive parameters", "Justification"}}
	for _, fw := range result.Frameworks {
		rec := result.Recommendations[fw]
		frameworks = append(frameworks, []interface{}{fw, rec.RecommendedAction, strings.Join(rec.SensitiveParameters, ", "), rec.Justification})
	}

	resolutions := resolutionFor(result)
	conflicts := [][]interface{}{{"Conflict", "Kind", "Participants", "Severity", "Strategy", "Action", "Confidence", "Weights"}}
	for _, c := range result.Conflicts {
		r := resolutions[c.ID.String()]
		conflicts = append(conflicts, []interface{}{
			c.ID.String(), string(c.Kind), strings.Join(c.Participants, ", "), c.Severity,
			r.Strategy.String(), r.RecommendedAction, r.Confidence, strings.Join(sortedWeights(r.Weights), " "),
		})
	}

	critical := [][]interface{}{{"Parameter", "Framework", "Threshold", "Direction", "Relative distance", "Sensitivity", "Flips to"}}
	for _, p := range final.CriticalParameters {
		critical = append(critical, []interface{}{p.Parameter, p.Framework, p.Threshold, p.Direction, p.RelativeDistance, p.SensitivityScore, p.FlipsTo})
	}

	for _, sheet := range []struct {
		name string
		rows [][]interface{}
	}{
		{SheetFrameworks, frameworks},
		{SheetConflicts, conflicts},
		{SheetCriticalSet, critical},
	} {
		if _, err := f.NewSheet(sheet.name); err != nil {
			return err
		}
		if err := writeRows(f, sheet.name, sheet.rows); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func (XLSXWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
