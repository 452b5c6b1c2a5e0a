package detection

import (
	"image"
	"math"
)

// Contour is a closed boundary polygon through pixel centers.
type Contour []image.Point

// Area returns the enclosed area using the shoelace formula.
func (c Contour) Area() float64 {
	if len(c) < 3 {
		return 0
	}
	var sum float64
	for i := range c {
		j := (i + 1) % len(c)
		sum += float64(c[i].X*c[j].Y - c[j].X*c[i].Y)
	}
	return math.Abs(sum) / 2
}

// Perimeter returns the length of the closed polygon.
func (c Contour) Perimeter() float64 {
	if len(c) < 2 {
		return 0
	}
	var sum float64
	for i := range c {
		j := (i + 1) % len(c)
		sum += math.Hypot(float64(c[j].X-c[i].X), float64(c[j].Y-c[i].Y))
	}
	return sum
}

// Circularity returns 4πA/P²: 1.0 for a perfect circle, lower for elongated
// or ragged shapes. A zero perimeter yields 0.
func Circularity(area, perimeter float64) float64 {
	if perimeter <= 0 {
		return 0
	}
	return 4 * math.Pi * area / (perimeter * perimeter)
}

// acceptContour applies the blob filters: area within [minArea, maxArea],
// a non-zero perimeter, and circularity of at least MinCircularity.
func acceptContour(c Contour, minArea, maxArea float64) bool {
	area := c.Area()
	if area < minArea || area > maxArea {
		return false
	}
	perimeter := c.Perimeter()
	if perimeter <= 0 {
		return false
	}
	return Circularity(area, perimeter) >= MinCircularity
}

// DetectContours turns a binary foreground mask into circle candidates.
//
// Each external contour that passes acceptContour is fitted with its
// minimal enclosing circle, rounded to whole pixels. Candidates come out in
// raster order of each blob's top-left pixel.
func DetectContours(mask *image.Gray, minArea, maxArea float64) []Candidate {
	circles := make([]Candidate, 0)
	for _, c := range FindExternalContours(mask) {
		if !acceptContour(c, minArea, maxArea) {
			continue
		}
		x, y, r := minEnclosingCircle(c)
		circles = append(circles, Candidate{
			X: math.RoundToEven(x),
			Y: math.RoundToEven(y),
			R: math.RoundToEven(r),
		})
	}
	return circles
}

// moore lists the 8 neighbour offsets clockwise (Y down), starting east.
var moore = [8]image.Point{
	{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: -1, Y: 1},
	{X: -1, Y: 0}, {X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
}

const west = 4

// FindExternalContours returns the outer boundary of every 8-connected
// foreground blob that is not enclosed in another blob's hole.
//
// Foreground is any non-zero pixel. Holes inside a blob do not produce
// contours of their own.
func FindExternalContours(mask *image.Gray) []Contour {
	b := mask.Bounds()
	width, height := b.Dx(), b.Dy()
	fg := make([]bool, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			fg[y*width+x] = mask.GrayAt(x+b.Min.X, y+b.Min.Y).Y != 0
		}
	}

	outside := outsideBackground(fg, width, height)
	labels := make([]int, width*height)
	contours := make([]Contour, 0)
	next := 0

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			if !fg[i] || labels[i] != 0 {
				continue
			}
			next++
			labelComponent(fg, labels, width, height, x, y, next)

			label := next
			inBlob := func(p image.Point) bool {
				return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height && labels[p.Y*width+p.X] == label
			}
			boundary := traceBoundary(image.Point{X: x, Y: y}, inBlob, 4*width*height+8)
			if touchesOutside(boundary, outside, width, height) {
				contours = append(contours, boundary)
			}
		}
	}
	return contours
}

// labelComponent flood-fills one 8-connected blob with the given label.
// Uses an explicit stack so large blobs cannot overflow the goroutine stack.
func labelComponent(fg []bool, labels []int, width, height, startX, startY, label int) {
	stack := []image.Point{{X: startX, Y: startY}}
	labels[startY*width+startX] = label

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, d := range moore {
			q := p.Add(d)
			if q.X < 0 || q.X >= width || q.Y < 0 || q.Y >= height {
				continue
			}
			j := q.Y*width + q.X
			if fg[j] && labels[j] == 0 {
				labels[j] = label
				stack = append(stack, q)
			}
		}
	}
}

// outsideBackground marks background pixels 4-connected to the image border.
func outsideBackground(fg []bool, width, height int) []bool {
	outside := make([]bool, width*height)
	stack := make([]image.Point, 0)
	push := func(x, y int) {
		i := y*width + x
		if !fg[i] && !outside[i] {
			outside[i] = true
			stack = append(stack, image.Point{X: x, Y: y})
		}
	}
	for x := 0; x < width; x++ {
		push(x, 0)
		push(x, height-1)
	}
	for y := 0; y < height; y++ {
		push(0, y)
		push(width-1, y)
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range [4]image.Point{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}} {
			q := p.Add(d)
			if q.X >= 0 && q.X < width && q.Y >= 0 && q.Y < height {
				push(q.X, q.Y)
			}
		}
	}
	return outside
}

// touchesOutside reports whether a boundary lies on the image border or next
// to border-connected background, i.e. the blob is not nested in a hole.
func touchesOutside(boundary Contour, outside []bool, width, height int) bool {
	for _, p := range boundary {
		if p.X == 0 || p.Y == 0 || p.X == width-1 || p.Y == height-1 {
			return true
		}
		for _, d := range [4]image.Point{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}} {
			q := p.Add(d)
			if outside[q.Y*width+q.X] {
				return true
			}
		}
	}
	return false
}

// traceBoundary follows the outer boundary of a blob clockwise with Moore
// neighbour tracing.
//
// start must be the blob's first pixel in raster order, so its west
// neighbour is background. Tracing stops when the walk re-enters start and
// is about to repeat its first move (Jacob's criterion). limit bounds the
// number of steps.
func traceBoundary(start image.Point, inBlob func(image.Point) bool, limit int) Contour {
	step := func(p image.Point, back int) (image.Point, int, bool) {
		for i := 0; i < 8; i++ {
			d := (back + 1 + i) % 8
			q := p.Add(moore[d])
			if inBlob(q) {
				prev := p.Add(moore[(d+7)%8])
				return q, direction(q, prev), true
			}
		}
		return p, back, false
	}

	contour := Contour{start}
	p, back, ok := step(start, west)
	if !ok {
		return contour
	}
	second := p

	for n := 0; n < limit; n++ {
		if p == start {
			if q, _, _ := step(p, back); q == second {
				break
			}
		}
		contour = append(contour, p)
		p, back, _ = step(p, back)
	}
	return contour
}

// direction returns the Moore index of the offset from p to q.
func direction(p, q image.Point) int {
	d := q.Sub(p)
	for i, m := range moore {
		if m == d {
			return i
		}
	}
	return west
}
