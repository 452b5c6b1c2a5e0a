package detection

import "math"

// DefaultExpected is the player count of a full two-team pitch.
const DefaultExpected = 22

// Fixed detector settings. Only the radius, spacing and area bounds scale
// with resolution; see ScaledParams.
const (
	houghDP     = 1.2
	houghParam1 = 80 // Canny high threshold
	houghParam2 = 28 // accumulator vote threshold

	medianKernel    = 5
	thresholdBlock  = 15
	thresholdC      = 7
	morphRadius     = 2 // 5x5 ellipse
	openIterations  = 1
	closeIterations = 2

	// MinCircularity is the lowest 4πA/P² a blob may score and still count
	// as a player disc.
	MinCircularity = 0.35
)

// HoughParams configures the gradient circle transform.
type HoughParams struct {
	// DP is the inverse ratio of accumulator resolution to image resolution.
	DP float64 `json:"dp"`

	// MinDist is the minimum distance between accepted circle centers.
	MinDist float64 `json:"min_dist"`

	// Param1 is the Canny high threshold; the low threshold is half of it.
	Param1 float64 `json:"param1"`

	// Param2 is the threshold on the votes gathered by a center cell and its
	// eight neighbours.
	Param2 float64 `json:"param2"`

	MinRadius int `json:"min_radius"`
	MaxRadius int `json:"max_radius"`
}

// Params bundles every resolution-dependent tolerance of one pipeline run.
type Params struct {
	Hough HoughParams `json:"hough"`

	// MinArea and MaxArea bound contour areas for the blob fallback.
	MinArea float64 `json:"min_area"`
	MaxArea float64 `json:"max_area"`

	// DedupTolerance is the center distance under which two candidates merge.
	DedupTolerance float64 `json:"dedup_tolerance"`
}

// ScaledParams derives detection tolerances from the image size so they
// adapt to resolution instead of being fixed pixel counts.
//
// With m = min(width, height), using integer division where pixel counts
// are produced:
//   - MinDist = max(15, m/30)
//   - MinRadius = m/120, MaxRadius = m/30
//   - MinArea = trunc(0.3π(m/120)²), MaxArea = trunc(3π(m/30)²)
//   - DedupTolerance = max(4, m/60)
func ScaledParams(width, height int) Params {
	m := min(width, height)
	fm := float64(m)

	return Params{
		Hough: HoughParams{
			DP:        houghDP,
			MinDist:   float64(max(15, m/30)),
			Param1:    houghParam1,
			Param2:    houghParam2,
			MinRadius: m / 120,
			MaxRadius: m / 30,
		},
		MinArea:        math.Trunc(0.3 * math.Pi * (fm / 120) * (fm / 120)),
		MaxArea:        math.Trunc(3.0 * math.Pi * (fm / 30) * (fm / 30)),
		DedupTolerance: float64(max(4, m/60)),
	}
}
