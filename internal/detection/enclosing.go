package detection

import "math"

const enclosingEps = 1e-7

type circle struct {
	x, y, r float64
}

func (c circle) contains(x, y float64) bool {
	return math.Hypot(x-c.x, y-c.y) <= c.r+enclosingEps
}

// minEnclosingCircle returns the smallest circle containing every contour
// point, using Welzl's incremental construction.
//
// The expected cost is linear for typical boundaries. An empty contour
// yields a zero circle.
func minEnclosingCircle(c Contour) (x, y, r float64) {
	if len(c) == 0 {
		return 0, 0, 0
	}
	pts := make([][2]float64, len(c))
	for i, p := range c {
		pts[i] = [2]float64{float64(p.X), float64(p.Y)}
	}

	best := circle{x: pts[0][0], y: pts[0][1]}
	for i := 1; i < len(pts); i++ {
		if best.contains(pts[i][0], pts[i][1]) {
			continue
		}
		best = circle{x: pts[i][0], y: pts[i][1]}
		for j := 0; j < i; j++ {
			if best.contains(pts[j][0], pts[j][1]) {
				continue
			}
			best = circleFrom2(pts[i], pts[j])
			for k := 0; k < j; k++ {
				if best.contains(pts[k][0], pts[k][1]) {
					continue
				}
				best = circleFrom3(pts[i], pts[j], pts[k])
			}
		}
	}
	return best.x, best.y, best.r
}

func circleFrom2(a, b [2]float64) circle {
	cx := (a[0] + b[0]) / 2
	cy := (a[1] + b[1]) / 2
	return circle{x: cx, y: cy, r: math.Hypot(a[0]-cx, a[1]-cy)}
}

// circleFrom3 returns the circumcircle of three points. Collinear points
// fall back to the circle on their farthest pair.
func circleFrom3(a, b, c [2]float64) circle {
	bx, by := b[0]-a[0], b[1]-a[1]
	cx, cy := c[0]-a[0], c[1]-a[1]
	d := 2 * (bx*cy - by*cx)
	if math.Abs(d) < enclosingEps {
		best := circleFrom2(a, b)
		for _, cand := range []circle{circleFrom2(a, c), circleFrom2(b, c)} {
			if cand.r > best.r {
				best = cand
			}
		}
		return best
	}

	b2 := bx*bx + by*by
	c2 := cx*cx + cy*cy
	ux := (cy*b2 - by*c2) / d
	uy := (bx*c2 - cx*b2) / d
	return circle{x: ux + a[0], y: uy + a[1], r: math.Hypot(ux, uy)}
}
