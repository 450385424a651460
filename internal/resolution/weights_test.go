package resolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sum(m map[string]float64) float64 {
	total := 0.0
	for _, v := range m {
		total += v
	}
	return total
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]float64
		want  map[string]float64
	}{
		{
			name:  "ratios preserved",
			input: map[string]float64{"a": 2, "b": 1},
			want:  map[string]float64{"a": 0.6667, "b": 0.3333},
		},
		{
			name:  "floor water-filled",
			input: map[string]float64{"a": 0.9, "b": 0.05, "c": 0.05},
			want:  map[string]float64{"a": 0.7, "b": 0.15, "c": 0.15},
		},
		{
			name:  "residual goes to largest",
			input: map[string]float64{"a": 1, "b": 1, "c": 1},
			want:  map[string]float64{"a": 0.3334, "b": 0.3333, "c": 0.3333},
		},
		{
			name:  "all zero becomes equal",
			input: map[string]float64{"a": 0, "b": 0},
			want:  map[string]float64{"a": 0.5, "b": 0.5},
		},
		{
			name:  "single weight",
			input: map[string]float64{"a": 0.2},
			want:  map[string]float64{"a": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, original := Normalize(tt.input, 0.15, 4)
			assert.Equal(t, tt.input, original)
			assert.InDelta(t, 1.0, sum(got), 1e-6)
			for k, v := range tt.want {
				assert.InDelta(t, v, got[k], 1e-9, k)
			}
		})
	}
}

func TestNormalizeLowersFloorForManyFrameworks(t *testing.T) {
	input := map[string]float64{}
	for _, k := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		input[k] = 1
	}
	input["a"] = 100

	got, _ := Normalize(input, 0.15, 4)
	assert.InDelta(t, 1.0, sum(got), 1e-6)
	for k, v := range got {
		assert.GreaterOrEqual(t, v, 0.125-1e-4, k)
	}
}

func TestNormalizeKeepsFloorWhenItBinds(t *testing.T) {
	got, _ := Normalize(map[string]float64{"a": 0.82, "b": 0.045, "c": 0.045, "d": 0.045, "e": 0.045}, 0.15, 4)
	assert.InDelta(t, 1.0, sum(got), 1e-6)
	assert.InDelta(t, 0.4, got["a"], 1e-9)
	for _, k := range []string{"b", "c", "d", "e"} {
		assert.InDelta(t, 0.15, got[k], 1e-9)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	got, original := Normalize(nil, 0.15, 4)
	assert.Empty(t, got)
	assert.Empty(t, original)
}
