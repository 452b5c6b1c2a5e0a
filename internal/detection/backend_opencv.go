//go:build opencv

package detection

import (
	"image"
	"math"

	"gocv.io/x/gocv"
)

// DefaultBackend returns the backend compiled into this binary.
func DefaultBackend() Backend {
	return OpenCVBackend{}
}

// OpenCVBackend runs both detectors through OpenCV via gocv.
//
// Build with -tags opencv; OpenCV 4 and its development headers must be
// installed. Results follow the same contract as NativeBackend.
type OpenCVBackend struct{}

// Name implements Backend.
func (OpenCVBackend) Name() string { return "opencv" }

// Hough implements Backend with cv::medianBlur and cv::HoughCircles.
func (OpenCVBackend) Hough(gray *image.Gray, p HoughParams) []Candidate {
	src, err := gocv.ImageGrayToMatGray(gray)
	if err != nil {
		return []Candidate{}
	}
	defer src.Close()

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.MedianBlur(src, &blurred, medianKernel)

	circles := gocv.NewMat()
	defer circles.Close()
	gocv.HoughCirclesWithParams(
		blurred,
		&circles,
		gocv.HoughGradient,
		p.DP,
		p.MinDist,
		p.Param1,
		p.Param2,
		p.MinRadius,
		p.MaxRadius,
	)

	out := make([]Candidate, 0, circles.Cols())
	for i := 0; i < circles.Cols(); i++ {
		v := circles.GetVecfAt(0, i)
		out = append(out, Candidate{
			X: math.RoundToEven(float64(v[0])),
			Y: math.RoundToEven(float64(v[1])),
			R: math.RoundToEven(float64(v[2])),
		})
	}
	return out
}

// Contours implements Backend with cv::adaptiveThreshold, cv::morphologyEx
// and cv::findContours.
func (OpenCVBackend) Contours(gray *image.Gray, minArea, maxArea float64) []Candidate {
	src, err := gocv.ImageGrayToMatGray(gray)
	if err != nil {
		return []Candidate{}
	}
	defer src.Close()

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.AdaptiveThreshold(src, &mask, 255, gocv.AdaptiveThresholdGaussian,
		gocv.ThresholdBinaryInv, thresholdBlock, thresholdC)

	kernel := gocv.GetStructuringElement(gocv.MorphEllipse, image.Pt(2*morphRadius+1, 2*morphRadius+1))
	defer kernel.Close()
	for i := 0; i < openIterations; i++ {
		gocv.MorphologyEx(mask, &mask, gocv.MorphOpen, kernel)
	}
	// Repeated closes approximate cv::morphologyEx with iterations=2.
	for i := 0; i < closeIterations; i++ {
		gocv.MorphologyEx(mask, &mask, gocv.MorphClose, kernel)
	}

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	out := make([]Candidate, 0)
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		area := gocv.ContourArea(c)
		if area < minArea || area > maxArea {
			continue
		}
		perimeter := gocv.ArcLength(c, true)
		if perimeter <= 0 {
			continue
		}
		if Circularity(area, perimeter) < MinCircularity {
			continue
		}
		x, y, r := gocv.MinEnclosingCircle(c)
		out = append(out, Candidate{
			X: math.RoundToEven(float64(x)),
			Y: math.RoundToEven(float64(y)),
			R: math.RoundToEven(float64(r)),
		})
	}
	return out
}
