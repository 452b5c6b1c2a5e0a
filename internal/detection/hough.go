package detection

import (
	"image"
	"math"
	"sort"

	"github.com/ironsheep/player-locator/internal/imaging"
)

// minRadialSupport is the fraction of a circle's circumference that must be
// covered by edge pixels at the chosen radius.
const minRadialSupport = 0.3

// DetectHough finds circles in a smoothed grayscale image with the Hough
// gradient method.
//
// Returns an empty slice, never nil, when nothing is found. Centers and radii
// are rounded to whole pixels.
//
// # Algorithm (Hough Gradient)
//
//  1. Edge Detection: Canny with thresholds Param1/2 and Param1
//  2. Voting: every edge pixel casts one vote per whole-pixel radius
//     MinRadius..MaxRadius, in both directions along its gradient, into the
//     accumulator cell nearest the implied center. Cell (i, j) sits at image
//     position (i*DP, j*DP).
//  3. Center Selection: a cell scores the votes of its 3x3 neighbourhood, which
//     collects the spread left by quantized gradient directions. Cells scoring
//     above Param2 that are 4-neighbour local maxima are visited by descending
//     score. A center closer than MinDist to an accepted one is dropped.
//  4. Radius Estimation: distances from the center to all edge pixels are
//     binned per whole pixel; the radius with the highest smoothed count per
//     unit circumference wins, if it covers at least 30% of the circumference.
//
// Unlike voting around every edge pixel at every angle, voting along the
// gradient touches O(edges × radii) cells, so large images stay cheap.
func DetectHough(gray *image.Gray, p HoughParams) []Candidate {
	edges := imaging.Canny(gray, p.Param1/2, p.Param1)
	return houghFromEdges(edges, p)
}

type houghPeak struct {
	x, y  int
	votes int
}

type edgePoint struct {
	x, y float64
}

func houghFromEdges(edges *imaging.EdgeMap, p HoughParams) []Candidate {
	width, height := edges.Width, edges.Height
	dp := p.DP
	if dp < 1 {
		dp = 1
	}
	minR := max(p.MinRadius, 1)
	maxR := p.MaxRadius
	if maxR <= 0 {
		maxR = max(width, height)
	}
	if maxR < minR || width == 0 || height == 0 {
		return []Candidate{}
	}

	accW := int(math.Round(float64(width-1)/dp)) + 1
	accH := int(math.Round(float64(height-1)/dp)) + 1
	acc := make([]int, accW*accH)

	points := make([]edgePoint, 0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !edges.Edges[y][x] {
				continue
			}
			gx, gy := edges.GradX[y][x], edges.GradY[y][x]
			mag := math.Hypot(gx, gy)
			if mag == 0 {
				continue
			}
			points = append(points, edgePoint{x: float64(x), y: float64(y)})

			ux, uy := gx/mag, gy/mag
			for _, sign := range [2]float64{1, -1} {
				for r := minR; r <= maxR; r++ {
					d := sign * float64(r)
					ix := int(math.Floor((float64(x)+d*ux)/dp + 0.5))
					iy := int(math.Floor((float64(y)+d*uy)/dp + 0.5))
					// Each ray moves away monotonically, so it never re-enters.
					if ix < 0 || iy < 0 || ix >= accW || iy >= accH {
						break
					}
					acc[iy*accW+ix]++
				}
			}
		}
	}

	score := neighbourhoodSums(acc, accW, accH)
	threshold := int(p.Param2)
	peaks := make([]houghPeak, 0)
	for y := 1; y < accH-1; y++ {
		for x := 1; x < accW-1; x++ {
			i := y*accW + x
			v := score[i]
			if v > threshold && v > score[i-1] && v >= score[i+1] && v > score[i-accW] && v >= score[i+accW] {
				peaks = append(peaks, houghPeak{x: x, y: y, votes: v})
			}
		}
	}
	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].votes > peaks[j].votes
	})

	minDist2 := p.MinDist * p.MinDist
	circles := make([]Candidate, 0)
	for _, pk := range peaks {
		cx := float64(pk.x) * dp
		cy := float64(pk.y) * dp

		tooClose := false
		for _, c := range circles {
			dx, dy := c.X-cx, c.Y-cy
			if dx*dx+dy*dy < minDist2 {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}

		r, ok := estimateRadius(points, cx, cy, minR, maxR)
		if !ok {
			continue
		}
		circles = append(circles, Candidate{
			X: math.RoundToEven(cx),
			Y: math.RoundToEven(cy),
			R: float64(r),
		})
	}
	return circles
}

// neighbourhoodSums returns, for every accumulator cell, the votes of the
// 3x3 block centered on it, clipped at the borders.
func neighbourhoodSums(acc []int, w, h int) []int {
	rows := make([]int, len(acc))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s := acc[y*w+x]
			if x > 0 {
				s += acc[y*w+x-1]
			}
			if x < w-1 {
				s += acc[y*w+x+1]
			}
			rows[y*w+x] = s
		}
	}
	sums := make([]int, len(acc))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s := rows[y*w+x]
			if y > 0 {
				s += rows[(y-1)*w+x]
			}
			if y < h-1 {
				s += rows[(y+1)*w+x]
			}
			sums[y*w+x] = s
		}
	}
	return sums
}

// estimateRadius picks the radius best supported by edge pixels around
// (cx, cy). Neighbouring bins count half so that a center off by a fraction
// of a pixel still concentrates its support.
func estimateRadius(points []edgePoint, cx, cy float64, minR, maxR int) (int, bool) {
	counts := make([]float64, maxR+2)
	for _, pt := range points {
		d := math.Round(math.Hypot(pt.x-cx, pt.y-cy))
		if d < float64(minR-1) || d > float64(maxR+1) {
			continue
		}
		counts[int(d)]++
	}

	best, bestScore := 0, 0.0
	for r := minR; r <= maxR; r++ {
		support := counts[r] + 0.5*(counts[r-1]+counts[r+1])
		score := support / (2 * math.Pi * float64(r))
		if score > bestScore {
			best, bestScore = r, score
		}
	}
	if best == 0 || bestScore < minRadialSupport {
		return 0, false
	}
	return best, true
}
