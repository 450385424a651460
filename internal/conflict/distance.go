package conflict

import "godilemma/domain/dilemma"

const defaultDistance = 0.5

type pair struct{ a, b string }

func key(a, b string) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a, b}
}

// distanceTable holds the conceptual distance between framework pairs.
type distanceTable map[pair]float64

func newDistanceTable() distanceTable {
	return distanceTable{
		key(dilemma.Utilitarian, dilemma.Deontology):   0.9,
		key(dilemma.Utilitarian, dilemma.VirtueEthics): 0.6,
		key(dilemma.Utilitarian, dilemma.CareEthics):   0.7,
		key(dilemma.Utilitarian, dilemma.Justice):      0.5,
		key(dilemma.Deontology, dilemma.VirtueEthics):  0.5,
		key(dilemma.Deontology, dilemma.CareEthics):    0.6,
		key(dilemma.Deontology, dilemma.Justice):       0.3,
		key(dilemma.VirtueEthics, dilemma.CareEthics):  0.4,
		key(dilemma.VirtueEthics, dilemma.Justice):     0.5,
		key(dilemma.CareEthics, dilemma.Justice):       0.6,
	}
}

// Distance returns the symmetric distance between two frameworks.
func (t distanceTable) Distance(a, b string) float64 {
	if d, ok := t[key(a, b)]; ok {
		return d
	}
	return defaultDistance
}
