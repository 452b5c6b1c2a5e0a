package detection

import (
	"math"
	"sort"
)

// Dedup removes near-duplicate centers with a greedy first-wins scan.
//
// Candidates are visited in order; each is kept unless an already kept
// candidate lies within squared distance tol². Concatenation order therefore
// decides which duplicate survives, and callers put primary detections first.
func Dedup(candidates []Candidate, tol float64) []Candidate {
	unique := make([]Candidate, 0, len(candidates))
	tol2 := tol * tol
	for _, c := range candidates {
		duplicate := false
		for _, u := range unique {
			dx := c.X - u.X
			dy := c.Y - u.Y
			if dx*dx+dy*dy <= tol2 {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, c)
		}
	}
	return unique
}

// SelectTopNByRadius keeps the n candidates whose radius is closest to the
// median radius.
//
// When there are at most n candidates the input is returned unchanged (as a
// copy). Ties keep their original relative order.
func SelectTopNByRadius(candidates []Candidate, n int) []Candidate {
	out := append([]Candidate(nil), candidates...)
	if len(out) <= n {
		return out
	}
	if n <= 0 {
		return []Candidate{}
	}

	med := medianRadius(out)
	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].R-med) < math.Abs(out[j].R-med)
	})
	return out[:n]
}

// NormalizeRadius replaces every radius with the rounded median radius.
//
// It returns the normalized copy, the common radius, and false when the
// input is empty (no common radius exists). Halves round to even.
func NormalizeRadius(candidates []Candidate) ([]Candidate, float64, bool) {
	if len(candidates) == 0 {
		return []Candidate{}, 0, false
	}

	common := math.RoundToEven(medianRadius(candidates))
	out := make([]Candidate, len(candidates))
	for i, c := range candidates {
		out[i] = Candidate{X: c.X, Y: c.Y, R: common}
	}
	return out, common, true
}

// ToLowerLeft moves candidates from the top-left image frame to a
// lower-left origin frame: y' = height - y. Applying it twice with the same
// height is the identity.
func ToLowerLeft(candidates []Candidate, height int) []Candidate {
	out := make([]Candidate, len(candidates))
	for i, c := range candidates {
		out[i] = Candidate{X: c.X, Y: float64(height) - c.Y, R: c.R}
	}
	return out
}

// Assemble orders candidates by ascending X, then ascending Y, and numbers
// them 1..n in that order. Full ties keep their input order.
func Assemble(candidates []Candidate) []Player {
	sorted := append([]Candidate(nil), candidates...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	players := make([]Player, len(sorted))
	for i, c := range sorted {
		players[i] = Player{ID: i + 1, X: c.X, Y: c.Y, Radius: c.R}
	}
	return players
}

// medianRadius returns the median of the radii, averaging the two middle
// values for an even count. The caller guarantees a non-empty slice.
func medianRadius(candidates []Candidate) float64 {
	radii := make([]float64, len(candidates))
	for i, c := range candidates {
		radii[i] = c.R
	}
	sort.Float64s(radii)

	mid := len(radii) / 2
	if len(radii)%2 == 1 {
		return radii[mid]
	}
	return (radii[mid-1] + radii[mid]) / 2
}
