package app

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"godilemma/domain/core"
	"godilemma/domain/dilemma"
	"godilemma/domain/verdict"
	"godilemma/internal/confidence"
	"godilemma/internal/conflict"
	"godilemma/internal/errors"
	"godilemma/internal/framework"
	"godilemma/internal/resolution"
	"godilemma/internal/sensitivity"
	"godilemma/internal/strategy"
	"godilemma/internal/validation"
)

// EvaluationService runs the full pipeline for one dilemma: standardize,
// evaluate every framework, probe sensitivity, detect conflicts, select and
// apply strategies, and synthesize the final recommendation.
type EvaluationService struct {
	standardizer *validation.Standardizer
	evaluator    *framework.Evaluator
	analyzer     *sensitivity.Analyzer
	detector     *conflict.Detector
	selector     *strategy.Selector
	engine       *resolution.Engine
	synthesizer  *confidence.Synthesizer
	workers      int
	logger       *slog.Logger
}

// Stages groups the pipeline components handed to NewEvaluationService.
type Stages struct {
	Standardizer *validation.Standardizer
	Evaluator    *framework.Evaluator
	Analyzer     *sensitivity.Analyzer
	Detector     *conflict.Detector
	Selector     *strategy.Selector
	Engine       *resolution.Engine
	Synthesizer  *confidence.Synthesizer
}

// NewEvaluationService creates an evaluation service
func NewEvaluationService(stages Stages, workers int, logger *slog.Logger) *EvaluationService {
	if workers < 1 {
		workers = 1
	}
	return &EvaluationService{
		standardizer: stages.Standardizer,
		evaluator:    stages.Evaluator,
		analyzer:     stages.Analyzer,
		detector:     stages.Detector,
		selector:     stages.Selector,
		engine:       stages.Engine,
		synthesizer:  stages.Synthesizer,
		workers:      workers,
		logger:       logger,
	}
}

// Validate standardizes d without evaluating it.
func (s *EvaluationService) Validate(d *dilemma.Dilemma) (*dilemma.Dilemma, []verdict.ValidationIssue) {
	return s.standardizer.Standardize(d)
}

// Evaluate runs the pipeline. Critical validation issues abort the run with
// VALIDATION_FAILURE before any framework is evaluated.
func (s *EvaluationService) Evaluate(ctx context.Context, d *dilemma.Dilemma) (*verdict.Result, error) {
	if d == nil {
		return nil, errors.InvalidInput("dilemma is required")
	}

	// Step 1: Standardize
	std, issues := s.standardizer.Standardize(d)
	if err := validation.Err(issues); err != nil {
		return nil, err
	}

	runID := core.NewRunID()
	logger := s.logger.With("run_id", runID.String(), "dilemma", std.ID.String())
	logger.Info("evaluation started", "frameworks", len(std.Frameworks))

	// Step 2: Per-framework recommendation and sensitivity
	recs, warnings, err := s.recommend(ctx, std)
	if err != nil {
		return nil, errors.Wrap(err, "framework evaluation failed")
	}

	// Step 3: Conflicts
	detection := s.detector.Detect(std, recs)

	// Step 4: Strategy selection and resolution
	items := make([]resolution.Item, 0, len(detection.Conflicts))
	for _, c := range detection.Conflicts {
		items = append(items, resolution.Item{Conflict: c, Strategy: s.selector.Select(c, std)})
	}
	resolutions := s.engine.ResolveAll(ctx, std, recs, items)

	// Step 5: Final recommendation
	final := s.synthesizer.Synthesize(std, recs, detection.Conflicts, resolutions, len(issues)+len(warnings))

	result := &verdict.Result{
		RunID:            runID,
		DilemmaID:        std.ID,
		Title:            std.Title,
		Frameworks:       append([]string(nil), std.Frameworks...),
		Recommendations:  recs,
		Conflicts:        nonNilConflicts(detection.Conflicts),
		Interactions:     nonNilInteractions(detection.Interactions),
		Resolutions:      nonNilResolutions(resolutions),
		Final:            final,
		Warnings:         warnings,
		ValidationIssues: issues,
		GeneratedAt:      core.Now(),
	}
	result.Fingerprint = Fingerprint(std, final)

	logger.Info("evaluation finished",
		"action", final.Action,
		"confidence", final.Confidence,
		"conflicts", len(result.Conflicts))
	return result, nil
}

// recommend evaluates every framework and its sensitivity profile on a
// bounded worker group. Results keep the dilemma's framework order.
func (s *EvaluationService) recommend(ctx context.Context, d *dilemma.Dilemma) (map[string]verdict.FrameworkRecommendation, []verdict.Warning, error) {
	out := make([]verdict.FrameworkRecommendation, len(d.Frameworks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, fw := range d.Frameworks {
		g.Go(func() error {
			eval, err := s.evaluator.Evaluate(d, fw)
			if err != nil {
				return err
			}
			analysis, err := s.analyzer.Analyze(gctx, d, fw)
			if err != nil {
				return errors.Wrapf(err, "sensitivity analysis for %s", fw)
			}
			out[i] = verdict.FrameworkRecommendation{
				Framework:           fw,
				RecommendedAction:   eval.Action,
				Justification:       eval.Justification,
				SensitiveParameters: analysis.SensitiveParameters,
				Thresholds:          analysis.Thresholds,
				Warnings:            eval.Warnings,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	recs := make(map[string]verdict.FrameworkRecommendation, len(out))
	var warnings []verdict.Warning
	for _, rec := range out {
		recs[rec.Framework] = rec
		warnings = append(warnings, rec.Warnings...)
	}
	return recs, warnings, nil
}

// Fingerprint identifies a run by its inputs and answer. Two runs over the
// same dilemma produce the same fingerprint.
func Fingerprint(d *dilemma.Dilemma, final verdict.FinalRecommendation) core.Hash {
	return core.ComputeFingerprint(map[string]interface{}{
		"dilemma_id": d.ID,
		"frameworks": d.Frameworks,
		"parameters": d.Parameters,
		"factors":    d.ContextualFactors,
		"action":     final.Action,
		"confidence": final.Confidence,
	})
}

func nonNilConflicts(v []verdict.Conflict) []verdict.Conflict {
	if v == nil {
		return []verdict.Conflict{}
	}
	return v
}

func nonNilInteractions(v []verdict.Interaction) []verdict.Interaction {
	if v == nil {
		return []verdict.Interaction{}
	}
	return v
}

func nonNilResolutions(v []verdict.Resolution) []verdict.Resolution {
	if v == nil {
		return []verdict.Resolution{}
	}
	return v
}
