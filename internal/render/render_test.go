package render

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/player-locator/internal/detection"
	"github.com/ironsheep/player-locator/internal/formation"
)

func whiteImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	return img
}

func twoPlayerResult() *detection.DetectionResult {
	r := 10.0
	return &detection.DetectionResult{
		ImageWidth:  200,
		ImageHeight: 100,
		Expected:    2,
		Detected: []detection.Player{
			{ID: 1, X: 50, Y: 30, Radius: r},
			{ID: 2, X: 150, Y: 70, Radius: r},
		},
		CommonRadius: &r,
	}
}

func TestDefaultPalette(t *testing.T) {
	p := DefaultPalette()
	assert.Equal(t, "#d62728", p.TeamA.Hex())
	assert.Equal(t, "#1f77b4", p.TeamB.Hex())
	assert.Equal(t, p.TeamA, p.Team(formation.TeamA))
	assert.Equal(t, p.TeamB, p.Team(formation.TeamB))
}

func TestParsePalette(t *testing.T) {
	p, err := ParsePalette("#00ff00", "#ff00ff")
	require.NoError(t, err)
	assert.Equal(t, "#00ff00", p.TeamA.Hex())

	_, err = ParsePalette("green", "#ff00ff")
	assert.Error(t, err)
}

func TestOverlay(t *testing.T) {
	src := whiteImage(200, 100)
	res := twoPlayerResult()

	out := Overlay(src, res, DefaultPalette())
	require.Equal(t, src.Bounds(), out.Bounds())

	// Player 1 sits at row 100-30 = 70. Its center is tinted toward red.
	c := out.NRGBAAt(50, 70)
	assert.Greater(t, c.R, c.B)
	assert.Less(t, c.G, uint8(250))

	// Player 2 at row 30 is tinted toward blue.
	c = out.NRGBAAt(150, 30)
	assert.Greater(t, c.B, c.R)

	// Outline pixel on the right edge of player 1.
	assert.Equal(t, color.NRGBA{A: 255}, out.NRGBAAt(60, 70))

	// Far from any player, nothing changes.
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, out.NRGBAAt(100, 50))

	// Source stays untouched.
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, src.RGBAAt(50, 70))
}

func TestOverlay_LabelAboveDisc(t *testing.T) {
	out := Overlay(whiteImage(200, 100), twoPlayerResult(), DefaultPalette())

	// The label background uses the team color just above player 1's disc.
	found := false
	for y := 40; y < 59; y++ {
		if out.NRGBAAt(50, y) != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
			found = true
			break
		}
	}
	assert.True(t, found, "no label drawn above player 1")
}

func TestOverlay_ClipsAtBorder(t *testing.T) {
	r := 10.0
	res := &detection.DetectionResult{
		ImageWidth: 40, ImageHeight: 40, Expected: 1,
		Detected:     []detection.Player{{ID: 1, X: 2, Y: 2, Radius: r}},
		CommonRadius: &r,
	}
	assert.NotPanics(t, func() { Overlay(whiteImage(40, 40), res, DefaultPalette()) })
}

func TestEncode(t *testing.T) {
	enc, err := Encode(whiteImage(40, 20), 1)
	require.NoError(t, err)
	assert.Equal(t, 40, enc.Width)
	assert.Equal(t, 20, enc.Height)
	assert.Equal(t, "image/png", enc.MimeType)

	raw, err := base64.StdEncoding.DecodeString(enc.ImageBase64)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
}

func TestEncode_Scaled(t *testing.T) {
	enc, err := Encode(whiteImage(40, 20), 0.5)
	require.NoError(t, err)
	assert.Equal(t, 20, enc.Width)
	assert.Equal(t, 10, enc.Height)
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.png")
	require.NoError(t, Save(whiteImage(10, 10), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	assert.Error(t, Save(whiteImage(10, 10), filepath.Join(t.TempDir(), "overlay.unknown")))
}

func TestPlot(t *testing.T) {
	res := twoPlayerResult()
	opts := ResultPlotOptions(res)
	opts.Edges = formation.CompleteGraph(res.Detected)

	path := filepath.Join(t.TempDir(), "players.png")
	require.NoError(t, Plot(res.Detected, opts, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), img.Bounds().Dy())
}

func TestPlot_InvalidExtents(t *testing.T) {
	err := Plot(nil, PlotOptions{Palette: DefaultPalette()}, filepath.Join(t.TempDir(), "x.png"))
	assert.Error(t, err)
}

func TestNewPlot_Axes(t *testing.T) {
	res := twoPlayerResult()
	p, err := NewPlot(res.Detected, ResultPlotOptions(res))
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.X.Min)
	assert.Equal(t, 200.0, p.X.Max)
	assert.Equal(t, 100.0, p.Y.Max)
}

func TestDiscsDataRange(t *testing.T) {
	d := &discs{players: twoPlayerResult().Detected}
	xmin, xmax, ymin, ymax := d.DataRange()
	assert.Equal(t, 40.0, xmin)
	assert.Equal(t, 160.0, xmax)
	assert.Equal(t, 20.0, ymin)
	assert.Equal(t, 80.0, ymax)
}
