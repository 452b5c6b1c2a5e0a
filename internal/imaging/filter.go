package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// Grayscale converts any image to an 8-bit luminance grid with its origin at
// (0, 0), weighting 0.3R + 0.6G + 0.1B.
func Grayscale(img image.Image) *image.Gray {
	return redChannel(effect.Grayscale(img))
}

// MedianBlur replaces each pixel with the median of its neighbourhood.
//
// ksize follows the usual odd aperture convention: 5 means a 5x5 square
// window. Sizes below 3 return a copy.
func MedianBlur(gray *image.Gray, ksize int) *image.Gray {
	if ksize < 3 {
		return rebase(gray)
	}
	return redChannel(effect.Median(gray, float64(ksize/2)))
}

// AdaptiveThresholdInv produces an inverted binary mask from a Gaussian-weighted
// local mean.
//
// A pixel becomes foreground (255) when its value is at or below the local
// mean minus c; everything else is background (0). Dark objects on a lighter
// field therefore come out white. blockSize sets the Gaussian sigma using
// sigma = 0.3*((blockSize-1)*0.5 - 1) + 0.8.
func AdaptiveThresholdInv(gray *image.Gray, blockSize int, c float64) *image.Gray {
	src := rebase(gray)
	sigma := 0.3*(float64(blockSize-1)*0.5-1) + 0.8
	mean := imaging.Blur(src, sigma)

	b := src.Bounds()
	out := image.NewGray(b)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			local := float64(mean.Pix[y*mean.Stride+x*4])
			if float64(src.Pix[y*src.Stride+x]) <= local-c {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}

// Open removes speckle that the elliptical (2*radius+1) structuring element
// cannot fit inside: erode then dilate, each applied iterations times.
//
// Any non-zero input pixel counts as foreground; the result is 0 or 255.
func Open(mask *image.Gray, radius, iterations int) *image.Gray {
	se := ellipse(radius)
	out := binarize(mask)
	for i := 0; i < iterations; i++ {
		out = se.erode(out)
	}
	for i := 0; i < iterations; i++ {
		out = se.dilate(out)
	}
	return out
}

// Close fills gaps narrower than the elliptical (2*radius+1) structuring
// element: dilate then erode, each applied iterations times.
func Close(mask *image.Gray, radius, iterations int) *image.Gray {
	se := ellipse(radius)
	out := binarize(mask)
	for i := 0; i < iterations; i++ {
		out = se.dilate(out)
	}
	for i := 0; i < iterations; i++ {
		out = se.erode(out)
	}
	return out
}

// structuringElement is a binary morphology window stored as a convolution
// kernel whose n members each weigh 1/n.
type structuringElement struct {
	kernel *convolution.Kernel
	n      int
}

// ellipse builds the elliptical structuring element OpenCV calls
// MORPH_ELLIPSE. For radius 2 that is a 5x5 square without the four corner
// triples:
//
//	. . # . .
//	# # # # #
//	# # # # #
//	# # # # #
//	. . # . .
//
// Convolving a 0/255 mask with it yields 255 times the fraction of members
// that are foreground.
func ellipse(radius int) structuringElement {
	if radius < 0 {
		radius = 0
	}
	size := 2*radius + 1
	k := convolution.NewKernel(size, size)
	n := 0
	for y := 0; y < size; y++ {
		dx := radius
		if radius > 0 {
			dy := float64(y - radius)
			r := float64(radius)
			dx = int(math.RoundToEven(r * math.Sqrt((r*r-dy*dy)/(r*r))))
		}
		for x := radius - dx; x <= radius+dx; x++ {
			k.Matrix[y*size+x] = 1
			n++
		}
	}
	for i, v := range k.Matrix {
		k.Matrix[i] = v / float64(n)
	}
	return structuringElement{kernel: k, n: n}
}

// erode keeps a pixel only when every kernel member is foreground.
func (se structuringElement) erode(mask *image.Gray) *image.Gray {
	full := 255 - 127.5/float64(se.n)
	return se.apply(mask, func(v uint8) bool { return float64(v) >= full })
}

// dilate sets a pixel when any kernel member is foreground.
func (se structuringElement) dilate(mask *image.Gray) *image.Gray {
	return se.apply(mask, func(v uint8) bool { return v > 0 })
}

// apply convolves a 0/255 mask with the element and re-binarizes the
// coverage. Borders extend the nearest pixel.
func (se structuringElement) apply(mask *image.Gray, keep func(uint8) bool) *image.Gray {
	cov := convolution.Convolve(mask, se.kernel, nil)
	b := cov.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if keep(cov.Pix[y*cov.Stride+x*4]) {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}

// binarize maps every non-zero pixel to 255 on a grid anchored at (0, 0).
func binarize(src *image.Gray) *image.Gray {
	out := rebase(src)
	for i, v := range out.Pix {
		if v != 0 {
			out.Pix[i] = 255
		}
	}
	return out
}

// redChannel collapses an RGBA result with equal channels back to gray.
func redChannel(src *image.RGBA) *image.Gray {
	b := src.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.Pix[y*out.Stride+x] = src.Pix[y*src.Stride+x*4]
		}
	}
	return out
}

// rebase copies a gray image into a fresh grid anchored at (0, 0) so that
// Pix offsets can be computed without consulting Bounds().Min.
func rebase(src *image.Gray) *image.Gray {
	b := src.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.SetGray(x, y, color.Gray{Y: src.GrayAt(x+b.Min.X, y+b.Min.Y).Y})
		}
	}
	return out
}
