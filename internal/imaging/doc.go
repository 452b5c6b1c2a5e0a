// Package imaging provides image ingestion and the low-level raster operations
// used by the player detection pipeline.
//
// All operations work with standard Go image types. Filters take and return
// *image.Gray grids anchored at (0,0), where X increases rightward and Y
// increases downward.
//
// # Ingestion
//
// ImageCache decodes PNG, JPEG and GIF files (with EXIF orientation applied)
// and keeps the decoded image keyed by path. Any failure to produce a non-empty
// pixel grid is reported as *LoadError.
//
// # Filters
//
//   - Grayscale: luminance conversion
//   - MedianBlur: salt-and-pepper suppression ahead of edge detection
//   - AdaptiveThresholdInv: Gaussian local-mean threshold yielding a
//     foreground mask of dark objects
//   - Open / Close: morphological cleanup of binary masks with an elliptical window
//   - Canny: thin edges plus the Sobel gradient field
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Filters are stateless and
// never modify their inputs.
package imaging
