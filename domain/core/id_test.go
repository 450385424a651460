package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 1000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}
}

func TestComposeConflictID(t *testing.T) {
	id := ComposeConflictID("framework", "deontology", "utilitarian")
	if id.String() != "framework:deontology:utilitarian" {
		t.Errorf("unexpected conflict id %q", id)
	}
}

func TestComputeFingerprintIsOrderIndependent(t *testing.T) {
	a := ComputeFingerprint(map[string]interface{}{"x": 1, "y": "two"})
	b := ComputeFingerprint(map[string]interface{}{"y": "two", "x": 1})
	if !a.Equals(b) {
		t.Errorf("fingerprints differ: %s vs %s", a, b)
	}
	c := ComputeFingerprint(map[string]interface{}{"x": 2, "y": "two"})
	if a.Equals(c) {
		t.Error("expected different fingerprint for different values")
	}
}
