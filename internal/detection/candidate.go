package detection

// Candidate is an unconfirmed circle detection in image coordinates
// (origin top-left, Y increasing downward).
//
// Detectors round centers and radii to whole pixels, so the fields hold
// integral values, but they are float64 to keep the arithmetic of later
// stages free of conversions.
type Candidate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	R float64 `json:"r"`
}

// Player is a confirmed detection in the output frame.
//
// X and Y use the lower-left origin: Y increases upward from the bottom edge
// of the image. ID is the 1-based position in the final left-to-right,
// bottom-to-top ordering and carries no identity across images.
type Player struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// Counts records how many candidates each pipeline stage produced.
type Counts struct {
	// Hough is the number of candidates from the parametric circle transform.
	Hough int `json:"hough"`

	// Contours is the number of candidates from the blob fallback.
	// Zero when FallbackUsed is false.
	Contours int `json:"contours"`

	// FallbackUsed reports whether the contour detector ran.
	FallbackUsed bool `json:"fallback_used"`

	// Unique is the candidate count after duplicate removal.
	Unique int `json:"unique"`

	// Selected is the candidate count after count-constrained selection.
	Selected int `json:"selected"`
}

// DetectionResult is the terminal artifact of the pipeline.
//
// Detected never holds more than Expected players. Fewer is a valid,
// degraded result: callers must compare len(Detected) with Expected rather
// than assume a nil error means a full count.
type DetectionResult struct {
	ImageWidth  int `json:"image_width"`
	ImageHeight int `json:"image_height"`

	// Detected is ordered by ascending X, then ascending Y, with IDs 1..n.
	Detected []Player `json:"detected"`

	// CommonRadius is the shared radius of every detected player, or nil
	// when nothing was detected.
	CommonRadius *float64 `json:"common_radius"`

	// Expected is the requested player count.
	Expected int `json:"expected"`

	Counts Counts `json:"counts"`
}

// Complete reports whether the full expected count was detected.
func (r *DetectionResult) Complete() bool {
	return len(r.Detected) == r.Expected
}
