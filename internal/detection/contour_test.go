package detection

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMask(width, height int) *image.Gray {
	return image.NewGray(image.Rect(0, 0, width, height))
}

func TestContour_AreaPerimeter(t *testing.T) {
	square := Contour{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}
	assert.Equal(t, 16.0, square.Area())
	assert.Equal(t, 16.0, square.Perimeter())

	assert.Zero(t, Contour{{X: 1, Y: 1}}.Area())
	assert.Zero(t, Contour{{X: 1, Y: 1}}.Perimeter())
}

func TestCircularity(t *testing.T) {
	c := discBoundary(0, 0, 30, 36)
	assert.InDelta(t, 1.0, Circularity(c.Area(), c.Perimeter()), 0.05)
	assert.Zero(t, Circularity(100, 0))
}

func TestAcceptContour(t *testing.T) {
	disc := discBoundary(50, 50, 10, 64)
	area := disc.Area()

	t.Run("circle at the area threshold", func(t *testing.T) {
		assert.True(t, acceptContour(disc, area, area+1))
	})

	t.Run("below min area", func(t *testing.T) {
		assert.False(t, acceptContour(disc, area+1, area*2))
	})

	t.Run("above max area", func(t *testing.T) {
		assert.False(t, acceptContour(disc, 0, area-1))
	})

	t.Run("elongated shape", func(t *testing.T) {
		bar := Contour{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 2}, {X: 0, Y: 2}}
		require.Less(t, Circularity(bar.Area(), bar.Perimeter()), MinCircularity)
		assert.False(t, acceptContour(bar, 0, 1000))
	})

	t.Run("zero perimeter", func(t *testing.T) {
		assert.False(t, acceptContour(Contour{{X: 3, Y: 3}}, 0, 1000))
	})
}

func TestTraceBoundary_Square(t *testing.T) {
	mask := newMask(4, 4)
	fillRect(mask, 1, 1, 2, 2, color.Gray{Y: 255})

	contours := FindExternalContours(mask)
	require.Len(t, contours, 1)
	assert.Equal(t, Contour{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2}, {X: 1, Y: 2}}, contours[0])
	assert.Equal(t, 1.0, contours[0].Area())
}

func TestTraceBoundary_SinglePixel(t *testing.T) {
	mask := newMask(5, 5)
	mask.SetGray(2, 2, color.Gray{Y: 255})

	contours := FindExternalContours(mask)
	require.Len(t, contours, 1)
	assert.Equal(t, Contour{{X: 2, Y: 2}}, contours[0])
}

func TestFindExternalContours_SkipsNestedBlobs(t *testing.T) {
	mask := newMask(20, 20)
	white := color.Gray{Y: 255}
	// Square ring two pixels thick with a dot inside its hole.
	fillRect(mask, 2, 2, 17, 17, white)
	fillRect(mask, 4, 4, 15, 15, color.Gray{})
	fillRect(mask, 9, 9, 10, 10, white)

	contours := FindExternalContours(mask)
	require.Len(t, contours, 1)
	assert.Equal(t, image.Point{X: 2, Y: 2}, contours[0][0])
}

func TestFindExternalContours_RasterOrder(t *testing.T) {
	mask := newMask(30, 30)
	white := color.Gray{Y: 255}
	fillRect(mask, 20, 3, 24, 7, white)
	fillRect(mask, 2, 15, 6, 19, white)
	fillRect(mask, 0, 25, 3, 29, white) // touches the border

	contours := FindExternalContours(mask)
	require.Len(t, contours, 3)
	assert.Equal(t, image.Point{X: 20, Y: 3}, contours[0][0])
	assert.Equal(t, image.Point{X: 2, Y: 15}, contours[1][0])
	assert.Equal(t, image.Point{X: 0, Y: 25}, contours[2][0])
}

func TestFindExternalContours_Empty(t *testing.T) {
	assert.Empty(t, FindExternalContours(newMask(10, 10)))
}

func TestDetectContours(t *testing.T) {
	mask := newMask(60, 60)
	white := color.Gray{Y: 255}
	fillDisc(mask, 30, 30, 10, white)
	fillRect(mask, 5, 50, 44, 52, white) // bar, too elongated

	got := DetectContours(mask, 50, 2000)
	require.Len(t, got, 1)
	assert.InDelta(t, 30, got[0].X, 1)
	assert.InDelta(t, 30, got[0].Y, 1)
	assert.InDelta(t, 10, got[0].R, 1)
}

func TestDetectContours_AreaBounds(t *testing.T) {
	mask := newMask(60, 60)
	fillDisc(mask, 30, 30, 10, color.Gray{Y: 255})

	assert.Empty(t, DetectContours(mask, 1000, 2000))
	assert.Empty(t, DetectContours(mask, 0, 50))
	assert.NotNil(t, DetectContours(mask, 1000, 2000))
}

func TestDirection(t *testing.T) {
	p := image.Point{X: 5, Y: 5}
	for i, m := range moore {
		assert.Equal(t, i, direction(p, p.Add(m)))
	}
}
