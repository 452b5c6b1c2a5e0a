package detection

import (
	"image"

	"github.com/ironsheep/player-locator/internal/imaging"
)

// Backend produces raw circle candidates from a grayscale image.
//
// Implementations own their preprocessing: Hough smooths the image itself
// and Contours builds its own foreground mask, so the two branches stay
// independent. Both methods are total and return an empty slice when
// nothing is found.
type Backend interface {
	// Name identifies the backend in logs and tool output.
	Name() string

	// Hough runs the parametric circle transform.
	Hough(gray *image.Gray, p HoughParams) []Candidate

	// Contours runs the blob fallback with the given area bounds.
	Contours(gray *image.Gray, minArea, maxArea float64) []Candidate
}

// NativeBackend is the pure Go implementation. It needs no cgo and is the
// default unless the binary is built with the opencv tag.
type NativeBackend struct{}

// Name implements Backend.
func (NativeBackend) Name() string { return "native" }

// Hough implements Backend: median blur, then DetectHough.
func (NativeBackend) Hough(gray *image.Gray, p HoughParams) []Candidate {
	return DetectHough(SmoothForHough(gray), p)
}

// Contours implements Backend: ForegroundMask, then DetectContours.
func (NativeBackend) Contours(gray *image.Gray, minArea, maxArea float64) []Candidate {
	return DetectContours(ForegroundMask(gray), minArea, maxArea)
}

// SmoothForHough prepares the parametric branch: a 5x5 median blur.
func SmoothForHough(gray *image.Gray) *image.Gray {
	return imaging.MedianBlur(gray, medianKernel)
}

// ForegroundMask prepares the contour branch: inverted Gaussian adaptive
// threshold, an opening to drop speckle, then a closing to fill gaps.
func ForegroundMask(gray *image.Gray) *image.Gray {
	mask := imaging.AdaptiveThresholdInv(gray, thresholdBlock, thresholdC)
	mask = imaging.Open(mask, morphRadius, openIterations)
	return imaging.Close(mask, morphRadius, closeIterations)
}
