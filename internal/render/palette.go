package render

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/player-locator/internal/formation"
)

// Palette holds the colors used for both teams.
type Palette struct {
	TeamA   colorful.Color
	TeamB   colorful.Color
	Outline colorful.Color
	Label   colorful.Color
}

// DefaultPalette is red for TeamA, blue for TeamB, black outlines and white
// labels.
func DefaultPalette() Palette {
	return Palette{
		TeamA:   mustHex("#d62728"),
		TeamB:   mustHex("#1f77b4"),
		Outline: mustHex("#000000"),
		Label:   mustHex("#ffffff"),
	}
}

// ParsePalette builds a palette from two hex team colors. Outline and label
// colors keep their defaults.
func ParsePalette(teamA, teamB string) (Palette, error) {
	p := DefaultPalette()
	var err error
	if p.TeamA, err = colorful.Hex(teamA); err != nil {
		return Palette{}, fmt.Errorf("team A color %q: %w", teamA, err)
	}
	if p.TeamB, err = colorful.Hex(teamB); err != nil {
		return Palette{}, fmt.Errorf("team B color %q: %w", teamB, err)
	}
	return p, nil
}

// Team returns the fill color for a team.
func (p Palette) Team(t formation.Team) colorful.Color {
	if t == formation.TeamA {
		return p.TeamA
	}
	return p.TeamB
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// nrgba converts to an 8-bit color with the given alpha (0..1).
func nrgba(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha*255 + 0.5)}
}
