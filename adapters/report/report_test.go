package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"godilemma/domain/core"
	"godilemma/domain/dilemma"
	"godilemma/domain/verdict"
	"godilemma/internal/errors"
)

func sampleResult() *verdict.Result {
	conflictID := core.ComposeConflictID("framework", dilemma.Utilitarian, dilemma.Deontology)
	return &verdict.Result{
		RunID:      "run-1",
		DilemmaID:  "clinic-funding",
		Title:      "Clinic funding",
		Frameworks: []string{dilemma.Utilitarian, dilemma.Deontology},
		Recommendations: map[string]verdict.FrameworkRecommendation{
			dilemma.Utilitarian: {Framework: dilemma.Utilitarian, RecommendedAction: verdict.ActionApproveOptionB},
			dilemma.Deontology:  {Framework: dilemma.Deontology, RecommendedAction: verdict.ActionApproveOptionA, SensitiveParameters: []string{"urgency_option_b"}},
		},
		Conflicts: []verdict.Conflict{{
			ID:           conflictID,
			Kind:         verdict.KindFramework,
			Participants: []string{dilemma.Utilitarian, dilemma.Deontology},
			Severity:     0.77,
		}},
		Resolutions: []verdict.Resolution{{
			ConflictID:        conflictID,
			Strategy:          verdict.StrategyFrameworkBalancing,
			Weights:           map[string]float64{dilemma.Utilitarian: 0.45, dilemma.Deontology: 0.55},
			RecommendedAction: verdict.ActionApproveOptionA,
		}},
		Final: verdict.FinalRecommendation{
			Action:               verdict.ActionApproveOptionA,
			Confidence:           0.62,
			ConfidenceFactors:    map[string]float64{verdict.FactorAgreement: 0.5},
			SupportingFrameworks: []string{dilemma.Deontology},
			OpposingFrameworks:   []string{dilemma.Utilitarian},
			CriticalParameters: []verdict.CriticalParameter{{
				Parameter: "urgency_option_b", Framework: dilemma.Deontology, Threshold: 8.98, Direction: "increase", FlipsTo: verdict.ActionApproveOptionB,
			}},
			Reasoning: "Deontology prevails after balancing.",
		},
		Warnings: []verdict.Warning{{Code: errors.CodeMissingParameter, Message: "missing honesty_option_a"}},
	}
}

func TestNew(t *testing.T) {
	for _, format := range Formats {
		w, err := New(format)
		require.NoError(t, err, format)
		assert.NotEmpty(t, w.ContentType())
	}
	_, err := New("pdf")
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSONWriter{}.Write(&buf, sampleResult()))

	var decoded verdict.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, verdict.ActionApproveOptionA, decoded.Final.Action)
	assert.Equal(t, 0.55, decoded.Resolutions[0].Weights[dilemma.Deontology])
}

func TestMarkdownSections(t *testing.T) {
	md := Markdown(sampleResult())

	assert.Contains(t, md, "# Clinic funding")
	assert.Contains(t, md, "`approve_option_a` (62% confidence)")
	assert.Contains(t, md, "## Conflicts")
	assert.Contains(t, md, "deontology=0.55 utilitarian=0.45")
	assert.Contains(t, md, "## Critical parameters")
	assert.Contains(t, md, "## Warnings")
	assert.NotContains(t, md, "## Validation issues")
}

func TestHTMLWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTMLWriter{}.Write(&buf, sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "<title>Clinic funding</title>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "framework_balancing")
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TextWriter{}.Write(&buf, sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "approve_option_a")
	assert.Contains(t, out, "62%")
	assert.Contains(t, out, "critical: urgency_option_b (deontology)")
	assert.Contains(t, out, "Deontology prevails after balancing.")
}

func TestXLSXWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, XLSXWriter{}.Write(&buf, sampleResult()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetFrameworks, SheetConflicts, SheetCriticalSet}, f.GetSheetList())

	action, err := f.GetCellValue(SheetSummary, "B5")
	require.NoError(t, err)
	assert.Equal(t, verdict.ActionApproveOptionA, action)

	rows, err := f.GetRows(SheetConflicts)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "framework_balancing", rows[1][4])
}
