package render

import (
	"image"
	"math"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/player-locator/internal/detection"
	"github.com/ironsheep/player-locator/internal/formation"
)

// fillAlpha is the weight of the team color when tinting a disc.
const fillAlpha = 0.5

// Overlay returns a copy of img with every detected player painted on it:
// a disc tinted with the team color, a one-pixel outline, and the player ID
// above the disc.
//
// Player coordinates are read in the lower-left frame and mapped back to
// image rows using the image height. The source image is not modified.
func Overlay(img image.Image, result *detection.DetectionResult, pal Palette) *image.NRGBA {
	dst := imaging.Clone(img)
	height := dst.Bounds().Dy()

	for _, p := range result.Detected {
		team := pal.Team(formation.TeamOf(p.ID, result.Expected))
		cx, cy := p.X, float64(height)-p.Y
		paintDisc(dst, cx, cy, p.Radius, team, pal.Outline)

		text := strconv.Itoa(p.ID)
		scale := max(1, int(p.Radius)/8)
		w, h := labelSize(text, scale)
		x := int(math.Round(cx)) - w/2
		y := int(math.Round(cy-p.Radius)) - h - scale
		drawLabel(dst, x, y, text, scale, nrgba(pal.Label, 1), nrgba(team, 1))
	}
	return dst
}

// paintDisc blends fill into every pixel within r of (cx, cy) and draws the
// outermost one-pixel ring in outline.
func paintDisc(dst *image.NRGBA, cx, cy, r float64, fill, outline colorful.Color) {
	b := dst.Bounds()
	x0 := max(b.Min.X, int(math.Floor(cx-r)))
	x1 := min(b.Max.X-1, int(math.Ceil(cx+r)))
	y0 := max(b.Min.Y, int(math.Floor(cy-r)))
	y1 := min(b.Max.Y-1, int(math.Ceil(cy+r)))
	edge := nrgba(outline, 1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			switch {
			case d > r:
				continue
			case d > r-1:
				dst.SetNRGBA(x, y, edge)
			default:
				src, ok := colorful.MakeColor(dst.NRGBAAt(x, y))
				if !ok {
					dst.SetNRGBA(x, y, nrgba(fill, fillAlpha))
					continue
				}
				dst.SetNRGBA(x, y, nrgba(src.BlendLab(fill, fillAlpha), 1))
			}
		}
	}
}
