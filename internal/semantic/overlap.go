package semantic

import "sort"

// Jaccard is |a∩b| / |a∪b| over the distinct members of a and b. Two empty
// sets have similarity 0.
func Jaccard(a, b []string) float64 {
	union := make(map[string]struct{}, len(a)+len(b))
	seen := make(map[string]struct{}, len(a))
	for _, x := range a {
		seen[x] = struct{}{}
		union[x] = struct{}{}
	}
	inter := 0
	counted := make(map[string]struct{}, len(b))
	for _, x := range b {
		union[x] = struct{}{}
		if _, ok := seen[x]; ok {
			if _, dup := counted[x]; !dup {
				inter++
				counted[x] = struct{}{}
			}
		}
	}
	if len(union) == 0 {
		return 0
	}
	return float64(inter) / float64(len(union))
}

// Intersect returns the sorted distinct members common to a and b.
func Intersect(a, b []string) []string {
	seen := make(map[string]struct{}, len(a))
	for _, x := range a {
		seen[x] = struct{}{}
	}
	found := make(map[string]struct{})
	for _, x := range b {
		if _, ok := seen[x]; ok {
			found[x] = struct{}{}
		}
	}
	out := make([]string, 0, len(found))
	for x := range found {
		out = append(out, x)
	}
	sort.Strings(out)
	return out
}

// Union returns the sorted distinct members of every set.
func Union(sets ...[]string) []string {
	found := make(map[string]struct{})
	for _, s := range sets {
		for _, x := range s {
			found[x] = struct{}{}
		}
	}
	out := make([]string, 0, len(found))
	for x := range found {
		out = append(out, x)
	}
	sort.Strings(out)
	return out
}
