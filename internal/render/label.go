package render

import (
	"image"
	"image/color"
	"image/draw"
)

// glyphs is a 3x5 pixel font covering player IDs.
var glyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
}

const (
	glyphAdvance = 4
	glyphHeight  = 5
)

// labelSize returns the pixel size of text at the given scale, background
// padding included.
func labelSize(text string, scale int) (int, int) {
	return (len(text)*glyphAdvance + 1) * scale, (glyphHeight + 2) * scale
}

// drawLabel renders text with its top-left corner at (x, y) on a solid
// background. Each font pixel becomes a scale x scale block. Pixels outside
// img are clipped.
func drawLabel(img draw.Image, x, y int, text string, scale int, fg, bg color.Color) {
	if scale < 1 {
		scale = 1
	}
	w, h := labelSize(text, scale)
	bgRect := image.Rect(x, y, x+w, y+h).Intersect(img.Bounds())
	draw.Draw(img, bgRect, &image.Uniform{C: bg}, image.Point{}, draw.Src)

	cx := x + scale
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += glyphAdvance * scale
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel != '1' {
					continue
				}
				px := cx + col*scale
				py := y + scale + row*scale
				block := image.Rect(px, py, px+scale, py+scale).Intersect(img.Bounds())
				draw.Draw(img, block, &image.Uniform{C: fg}, image.Point{}, draw.Src)
			}
		}
		cx += glyphAdvance * scale
	}
}
