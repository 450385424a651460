package resolution

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Normalize rescales weights to sum to 1 while preserving their ratios,
// lifts any weight below floor to floor by water-filling the remainder, and
// rounds to precision decimals with the rounding residual added to the largest
// weight. When len(weights)×floor exceeds 1 the floor drops to 1/n. The
// second return value is a copy of the input.
func Normalize(weights map[string]float64, floor float64, precision int) (map[string]float64, map[string]float64) {
	original := make(map[string]float64, len(weights))
	for k, v := range weights {
		original[k] = v
	}
	n := len(weights)
	if n == 0 {
		return map[string]float64{}, original
	}

	keys := make([]string, 0, n)
	for k := range weights {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	raw := make([]float64, n)
	for i, k := range keys {
		raw[i] = math.Max(0, weights[k])
	}
	if floats.Sum(raw) <= 0 {
		for i := range raw {
			raw[i] = 1
		}
	}

	if floor*float64(n) > 1 {
		floor = 1 / float64(n)
	}
	if floor < 0 {
		floor = 0
	}

	p := waterFill(raw, floor)
	return round(keys, p, precision), original
}

// waterFill distributes unit mass proportionally to raw, pinning entries that
// would fall below floor and redistributing among the rest until none do.
func waterFill(raw []float64, floor float64) []float64 {
	n := len(raw)
	pinned := make([]bool, n)
	p := make([]float64, n)

	for {
		free := 0.0
		pinnedCount := 0
		for i, v := range raw {
			if pinned[i] {
				pinnedCount++
				continue
			}
			free += v
		}
		mass := 1 - float64(pinnedCount)*floor

		changed := false
		for i, v := range raw {
			if pinned[i] {
				p[i] = floor
				continue
			}
			if free > 0 {
				p[i] = v / free * mass
			} else {
				p[i] = mass / float64(n-pinnedCount)
			}
			if p[i] < floor {
				pinned[i] = true
				changed = true
			}
		}
		if !changed {
			return p
		}
	}
}

func round(keys []string, p []float64, precision int) map[string]float64 {
	scale := math.Pow(10, float64(precision))
	rounded := make([]float64, len(p))
	for i, v := range p {
		rounded[i] = math.Round(v*scale) / scale
	}

	// First index of the maximum keeps ties on the lexically smallest key.
	largest := floats.MaxIdx(rounded)
	residual := 1 - floats.Sum(rounded)
	rounded[largest] = math.Round((rounded[largest]+residual)*scale) / scale

	out := make(map[string]float64, len(keys))
	for i, k := range keys {
		out[k] = rounded[i]
	}
	return out
}

// Equal returns equal weights over keys.
func Equal(keys []string) map[string]float64 {
	out := make(map[string]float64, len(keys))
	for _, k := range keys {
		out[k] = 1
	}
	return out
}
