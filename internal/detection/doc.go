// Package detection locates circular player markers in a top-down image.
//
// A fixed number of players is expected. Candidates come from a Hough
// gradient circle transform; when that finds too few, a contour-based blob
// detector supplements them. Candidates are then merged, filtered to the
// expected count, given one shared radius, converted to a lower-left origin
// and numbered left to right.
//
// # Pipeline
//
//  1. Hough: median blur, Canny edges, gradient voting (DetectHough)
//  2. Contours, only if Hough is short: adaptive threshold, open/close,
//     external contours filtered by area and circularity (DetectContours)
//  3. Dedup: first candidate wins within a resolution-scaled tolerance
//  4. SelectTopNByRadius: keep the N radii closest to the median
//  5. NormalizeRadius: every radius becomes the rounded median
//  6. ToLowerLeft: y becomes height - y
//  7. Assemble: sort by x then y, IDs 1..n
//
// Every tolerance scales with min(width, height); see ScaledParams.
//
// # Coordinate System
//
// Candidates use image coordinates: origin at the top-left, Y down.
// Players in a DetectionResult use a lower-left origin with Y up.
//
// # Backends
//
// NativeBackend is pure Go. Building with -tags opencv swaps DefaultBackend
// for an OpenCV implementation through gocv.
package detection
