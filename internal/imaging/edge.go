package imaging

import (
	"image"
	"math"
)

// EdgeMap is the output of Canny: thin edge flags plus the Sobel gradient
// that produced them.
//
// GradX and GradY are kept because the Hough gradient transform votes along
// the gradient direction at each edge pixel.
type EdgeMap struct {
	Width  int
	Height int

	// Edges[y][x] is true for pixels that survived hysteresis.
	Edges [][]bool

	// GradX and GradY are the raw 3x3 Sobel responses on the 0-255 scale.
	GradX [][]float64
	GradY [][]float64
}

// Count returns the number of edge pixels.
func (m *EdgeMap) Count() int {
	n := 0
	for y := range m.Edges {
		for _, e := range m.Edges[y] {
			if e {
				n++
			}
		}
	}
	return n
}

// Canny performs Canny edge detection on an already smoothed grayscale image.
//
// Parameters:
//   - gray: Source luminance grid. No blur is applied here; callers smooth first.
//   - low: Hysteresis low threshold on gradient magnitude.
//   - high: Hysteresis high threshold on gradient magnitude.
//
// # Algorithm
//
//  1. Gradient computation: unnormalized 3x3 Sobel on 0-255 values,
//     magnitude = sqrt(Gx² + Gy²)
//
//  2. Non-maximum suppression: keep only local maxima along the gradient
//     direction, quantized to four orientations
//
//  3. Hysteresis: pixels above high seed edges; pixels above low are kept
//     when 8-connected to a seed, following chains of any length
//
// Thresholds are on the unnormalized Sobel scale, so a clean black/white
// step produces a magnitude near 1020.
func Canny(gray *image.Gray, low, high float64) *EdgeMap {
	src := rebase(gray)
	width := src.Bounds().Dx()
	height := src.Bounds().Dy()

	at := func(x, y int) float64 {
		return float64(src.Pix[clamp(y, 0, height-1)*src.Stride+clamp(x, 0, width-1)])
	}

	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	gradX := make([][]float64, height)
	gradY := make([][]float64, height)
	magnitude := make([][]float64, height)

	for y := 0; y < height; y++ {
		gradX[y] = make([]float64, width)
		gradY[y] = make([]float64, width)
		magnitude[y] = make([]float64, width)

		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := at(x+kx, y+ky)
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			gradX[y][x] = gx
			gradY[y][x] = gy
			magnitude[y][x] = math.Sqrt(gx*gx + gy*gy)
		}
	}

	// Non-maximum suppression
	suppressed := make([][]float64, height)
	for y := 0; y < height; y++ {
		suppressed[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			if y == 0 || y == height-1 || x == 0 || x == width-1 {
				continue
			}

			mag := magnitude[y][x]
			if mag < low {
				continue
			}
			angle := math.Atan2(gradY[y][x], gradX[y][x])

			var n1, n2 float64
			if (angle >= -math.Pi/8 && angle < math.Pi/8) || (angle >= 7*math.Pi/8 || angle < -7*math.Pi/8) {
				n1 = magnitude[y][x-1]
				n2 = magnitude[y][x+1]
			} else if (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8) {
				n1 = magnitude[y-1][x-1]
				n2 = magnitude[y+1][x+1]
			} else if (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8) {
				n1 = magnitude[y-1][x]
				n2 = magnitude[y+1][x]
			} else {
				n1 = magnitude[y-1][x+1]
				n2 = magnitude[y+1][x-1]
			}

			// A two-pixel plateau keeps only its first pixel, so edges stay one pixel wide.
			if mag > n1 && mag >= n2 {
				suppressed[y][x] = mag
			}
		}
	}

	edges := make([][]bool, height)
	for y := range edges {
		edges[y] = make([]bool, width)
	}

	// Hysteresis: grow from strong pixels through weak ones.
	stack := make([]image.Point, 0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if suppressed[y][x] >= high && !edges[y][x] {
				edges[y][x] = true
				stack = append(stack, image.Point{X: x, Y: y})
			}
		}
	}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height || edges[ny][nx] {
					continue
				}
				if suppressed[ny][nx] >= low {
					edges[ny][nx] = true
					stack = append(stack, image.Point{X: nx, Y: ny})
				}
			}
		}
	}

	return &EdgeMap{
		Width:  width,
		Height: height,
		Edges:  edges,
		GradX:  gradX,
		GradY:  gradY,
	}
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
