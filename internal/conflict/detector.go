package conflict

import (
	"log/slog"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"godilemma/domain/core"
	"godilemma/domain/dilemma"
	"godilemma/domain/verdict"
	"godilemma/internal/semantic"
)

const (
	baseSeverity        = 0.5
	distanceFactor      = 0.3
	valueAdjustment     = 0.1
	factualAdjustment   = -0.1
	stakeholderSeverity = 0.5
	minMultiFrameworks  = 3
)

// Detection is everything the detector found for one run.
type Detection struct {
	Conflicts    []verdict.Conflict
	Interactions []verdict.Interaction
}

// Detector finds disagreements between framework recommendations and between
// stakeholders. It only reads its inputs.
type Detector struct {
	classifier semantic.Classifier
	distances  distanceTable
	logger     *slog.Logger
}

// NewDetector creates a detector using classifier to label conflict nature.
func NewDetector(classifier semantic.Classifier, logger *slog.Logger) *Detector {
	return &Detector{
		classifier: classifier,
		distances:  newDistanceTable(),
		logger:     logger,
	}
}

// Detect runs pairwise, multi-framework and stakeholder detection. Output
// follows the dilemma's framework order, then stakeholder order.
func (det *Detector) Detect(d *dilemma.Dilemma, recs map[string]verdict.FrameworkRecommendation) Detection {
	var frameworks []string
	for _, fw := range d.Frameworks {
		if _, ok := recs[fw]; ok {
			frameworks = append(frameworks, fw)
		}
	}

	keywords := make(map[string]map[string]semantic.Category, len(frameworks))
	for _, fw := range frameworks {
		keywords[fw] = det.classifier.Keywords(recs[fw].Justification)
	}

	out := Detection{Conflicts: []verdict.Conflict{}, Interactions: []verdict.Interaction{}}
	for i := 0; i < len(frameworks); i++ {
		for j := i + 1; j < len(frameworks); j++ {
			a, b := recs[frameworks[i]], recs[frameworks[j]]
			if a.RecommendedAction != b.RecommendedAction {
				out.Conflicts = append(out.Conflicts, det.pairwise(a, b, keywords))
				continue
			}
			out.Interactions = append(out.Interactions, verdict.Interaction{
				Kind:         verdict.InteractionAgreement,
				Participants: []string{a.Framework, b.Framework},
				Action:       a.RecommendedAction,
				Similarity:   det.similarity(a, b, keywords),
			})
		}
	}

	if len(frameworks) >= minMultiFrameworks {
		c, consensus := det.multi(frameworks, recs, keywords)
		if c != nil {
			out.Conflicts = append(out.Conflicts, *c)
		}
		if consensus != nil {
			out.Interactions = append(out.Interactions, *consensus)
		}
	}

	out.Conflicts = append(out.Conflicts, det.stakeholders(d)...)

	det.logger.Debug("conflict detection complete",
		"dilemma", d.ID,
		"conflicts", len(out.Conflicts),
		"interactions", len(out.Interactions))
	return out
}

func (det *Detector) pairwise(a, b verdict.FrameworkRecommendation, keywords map[string]map[string]semantic.Category) verdict.Conflict {
	ka, kb := keywords[a.Framework], keywords[b.Framework]
	sharedValues := semantic.Shared(ka, kb, semantic.CategoryValue)
	sharedFacts := semantic.Shared(ka, kb, semantic.CategoryFactual)

	nature := verdict.NatureMethodological
	adjustment := 0.0
	switch {
	case len(sharedValues) > 0:
		nature = verdict.NatureValue
		adjustment = valueAdjustment
	case len(sharedFacts) > 0:
		nature = verdict.NatureFactual
		adjustment = factualAdjustment
	}

	severity := baseSeverity + det.distances.Distance(a.Framework, b.Framework)*distanceFactor + adjustment

	return verdict.Conflict{
		ID:              core.ComposeConflictID(string(verdict.KindFramework), a.Framework, b.Framework),
		Kind:            verdict.KindFramework,
		Participants:    []string{a.Framework, b.Framework},
		Severity:        clamp01(severity),
		Nature:          nature,
		CompromiseAreas: semantic.Union(semantic.Intersect(a.SensitiveParameters, b.SensitiveParameters), sharedValues),
		Actions: map[string]string{
			a.Framework: a.RecommendedAction,
			b.Framework: b.RecommendedAction,
		},
	}
}

func (det *Detector) similarity(a, b verdict.FrameworkRecommendation, keywords map[string]map[string]semantic.Category) float64 {
	params := semantic.Jaccard(a.SensitiveParameters, b.SensitiveParameters)
	words := semantic.Jaccard(semantic.KeywordSet(keywords[a.Framework]), semantic.KeywordSet(keywords[b.Framework]))
	return 0.5*params + 0.5*words
}

func (det *Detector) multi(frameworks []string, recs map[string]verdict.FrameworkRecommendation, keywords map[string]map[string]semantic.Category) (*verdict.Conflict, *verdict.Interaction) {
	groups := make(map[string][]string)
	var order []string
	actions := make(map[string]string, len(frameworks))
	for _, fw := range frameworks {
		action := recs[fw].RecommendedAction
		if _, ok := groups[action]; !ok {
			order = append(order, action)
		}
		groups[action] = append(groups[action], fw)
		actions[fw] = action
	}

	n := len(frameworks)
	if len(groups) == 1 {
		var sims []float64
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				sims = append(sims, det.similarity(recs[frameworks[i]], recs[frameworks[j]], keywords))
			}
		}
		mean, err := stats.Mean(sims)
		if err != nil {
			mean = 0
		}
		return nil, &verdict.Interaction{
			Kind:         verdict.InteractionConsensus,
			Participants: append([]string(nil), frameworks...),
			Action:       order[0],
			Similarity:   mean,
		}
	}

	g := len(groups)
	sizes := make([]int, g)
	for i, action := range order {
		sizes[i] = len(groups[action])
	}
	evenness := Evenness(sizes)
	severity := 0.3 + 0.4*float64(g-1)/float64(n-1) + 0.3*evenness

	// Parameters sensitive on both sides of the split are where movement could
	// bring the groups together.
	paramGroups := make(map[string]map[string]struct{})
	for _, action := range order {
		for _, fw := range groups[action] {
			for _, p := range recs[fw].SensitiveParameters {
				if paramGroups[p] == nil {
					paramGroups[p] = make(map[string]struct{})
				}
				paramGroups[p][action] = struct{}{}
			}
		}
	}
	areas := []string{}
	for p, seen := range paramGroups {
		if len(seen) > 1 {
			areas = append(areas, p)
		}
	}
	sort.Strings(areas)

	return &verdict.Conflict{
		ID:              core.ComposeConflictID(string(verdict.KindMultiFramework), frameworks...),
		Kind:            verdict.KindMultiFramework,
		Participants:    append([]string(nil), frameworks...),
		Severity:        clamp01(severity),
		CompromiseAreas: areas,
		Actions:         actions,
		Groups:          groups,
		Evenness:        evenness,
	}, nil
}

// Evenness is the Shannon entropy of the group sizes normalized by its
// maximum, log(g). Fewer than two groups have evenness 0.
func Evenness(sizes []int) float64 {
	g := len(sizes)
	if g < 2 {
		return 0
	}
	total := 0
	for _, n := range sizes {
		total += n
	}
	p := make([]float64, g)
	for i, n := range sizes {
		p[i] = float64(n) / float64(total)
	}
	return clamp01(stat.Entropy(p) / math.Log(float64(g)))
}

func (det *Detector) stakeholders(d *dilemma.Dilemma) []verdict.Conflict {
	var out []verdict.Conflict
	for i := 0; i < len(d.Stakeholders); i++ {
		for j := i + 1; j < len(d.Stakeholders); j++ {
			a, b := d.Stakeholders[i], d.Stakeholders[j]
			shared := semantic.Intersect(a.Concerns, b.Concerns)
			if len(shared) == 0 {
				continue
			}
			out = append(out, verdict.Conflict{
				ID:              core.ComposeConflictID(string(verdict.KindStakeholder), a.ID, b.ID),
				Kind:            verdict.KindStakeholder,
				Participants:    []string{a.ID, b.ID},
				Severity:        stakeholderSeverity,
				CompromiseAreas: shared,
			})
		}
	}
	return out
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
