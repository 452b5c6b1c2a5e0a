package detection

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/ironsheep/player-locator/internal/imaging"
)

var (
	pitchGreen = color.RGBA{R: 200, G: 230, B: 200, A: 255}
	kitNavy    = color.RGBA{R: 30, G: 30, B: 120, A: 255}
)

func TestNativeBackend_ContoursSolidDisc(t *testing.T) {
	// The inverted adaptive threshold leaves only a ring around a solid
	// disc; the opening must not cut that ring into pieces.
	img := newCanvas(120, 120, pitchGreen)
	fillDisc(img, 60, 60, 12, kitNavy)

	got := NativeBackend{}.Contours(imaging.Grayscale(img), 0, 10000)
	want := []Candidate{{X: 60, Y: 60, R: 12}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Contours() mismatch (-want +got):\n%s", diff)
	}
}

func TestNativeBackend_ContoursPitch(t *testing.T) {
	const width, height, radius = 600, 600, 12
	img := newCanvas(width, height, pitchGreen)
	for _, c := range syntheticPitchCenters {
		fillDisc(img, c[0], c[1], radius, kitNavy)
	}
	params := ScaledParams(width, height)

	got := NativeBackend{}.Contours(imaging.Grayscale(img), params.MinArea, params.MaxArea)

	// Raster order of each blob's top pixel.
	want := []Candidate{
		{X: 500, Y: 90, R: 12},
		{X: 100, Y: 100, R: 12},
		{X: 300, Y: 120, R: 12},
		{X: 480, Y: 400, R: 12},
		{X: 110, Y: 450, R: 12},
		{X: 320, Y: 480, R: 12},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Contours() mismatch (-want +got):\n%s", diff)
	}
}

func TestNativeBackend_HoughPitch(t *testing.T) {
	const width, height, radius = 600, 600, 12
	img := newCanvas(width, height, pitchGreen)
	for _, c := range syntheticPitchCenters {
		fillDisc(img, c[0], c[1], radius, kitNavy)
	}

	got := NativeBackend{}.Hough(imaging.Grayscale(img), ScaledParams(width, height).Hough)
	assert.Len(t, got, len(syntheticPitchCenters))
	for _, c := range got {
		assert.InDelta(t, radius, c.R, 1.5)
	}
}

func TestNativeBackend_Name(t *testing.T) {
	assert.Equal(t, "native", NativeBackend{}.Name())
}
