package detection

import (
	"image"
	"image/color"
	"image/draw"
)

// referencePlayers is a hand-measured 22-player layout on a 788x500 frame,
// in lower-left coordinates, all with radius 19.
var referencePlayers = []Player{
	{ID: 1, X: 38, Y: 230, Radius: 19},
	{ID: 2, X: 115, Y: 62, Radius: 19},
	{ID: 3, X: 115, Y: 174, Radius: 19},
	{ID: 4, X: 115, Y: 286, Radius: 19},
	{ID: 5, X: 115, Y: 400, Radius: 19},
	{ID: 6, X: 192, Y: 230, Radius: 19},
	{ID: 7, X: 268, Y: 140, Radius: 19},
	{ID: 8, X: 268, Y: 320, Radius: 19},
	{ID: 9, X: 345, Y: 82, Radius: 19},
	{ID: 10, X: 345, Y: 230, Radius: 19},
	{ID: 11, X: 345, Y: 378, Radius: 19},
	{ID: 12, X: 448, Y: 230, Radius: 19},
	{ID: 13, X: 525, Y: 78, Radius: 19},
	{ID: 14, X: 525, Y: 230, Radius: 19},
	{ID: 15, X: 525, Y: 382, Radius: 19},
	{ID: 16, X: 602, Y: 140, Radius: 19},
	{ID: 17, X: 602, Y: 320, Radius: 19},
	{ID: 18, X: 678, Y: 62, Radius: 19},
	{ID: 19, X: 678, Y: 174, Radius: 19},
	{ID: 20, X: 678, Y: 286, Radius: 19},
	{ID: 21, X: 678, Y: 400, Radius: 19},
	{ID: 22, X: 755, Y: 230, Radius: 19},
}

const (
	referenceWidth  = 788
	referenceHeight = 500
)

// referenceCandidates returns the reference layout as top-left image
// candidates, in reverse order so that sorting has work to do.
func referenceCandidates() []Candidate {
	out := make([]Candidate, 0, len(referencePlayers))
	for i := len(referencePlayers) - 1; i >= 0; i-- {
		p := referencePlayers[i]
		out = append(out, Candidate{X: p.X, Y: referenceHeight - p.Y, R: p.Radius})
	}
	return out
}

func newCanvas(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

// fillDisc paints every pixel whose center lies within r of (cx, cy).
func fillDisc(img draw.Image, cx, cy, r int, c color.Color) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				img.Set(x, y, c)
			}
		}
	}
}

func fillRect(img draw.Image, x0, y0, x1, y1 int, c color.Color) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			img.Set(x, y, c)
		}
	}
}
