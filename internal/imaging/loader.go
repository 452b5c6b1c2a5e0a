package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"
)

// errEmptyImage is wrapped by LoadError when a file decodes to zero pixels.
var errEmptyImage = errors.New("image has no pixels")

// LoadError reports that a source image could not be turned into a pixel grid.
//
// It is the only fatal error of the detection pipeline: a missing file,
// undecodable content, or a zero-area image. Use errors.As to detect it.
type LoadError struct {
	// Path is the path that was requested.
	Path string

	// Err is the underlying open or decode error.
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load image %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ImageCache provides thread-safe caching of decoded images to avoid redundant disk reads.
//
// The cache stores decoded image.Image objects keyed by their file path. Once an image
// is loaded, subsequent Load() calls for the same path return the cached copy without
// disk I/O. This matters for the MCP server, where several tools usually run
// against the same frame.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict() or Clear().
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("/path/to/topdown.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cache.Evict("/path/to/topdown.png") // Optional: free memory
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves an image from the cache or decodes it from disk if not cached.
//
// Supported formats are PNG, JPEG, and GIF. JPEG EXIF orientation is applied
// so that phone captures of a pitch come out upright.
//
// # Errors
//
// Every failure is returned as *LoadError:
//   - the file does not exist or cannot be read
//   - the file is not a valid PNG, JPEG, or GIF image
//   - the decoded image has zero width or height
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("failed to open image: %w", err)}
	}
	defer f.Close()

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("failed to decode image: %w", err)}
	}
	if img.Bounds().Empty() {
		return nil, &LoadError{Path: path, Err: errEmptyImage}
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is "png", "jpeg", "gif", or "unknown", taken from the file extension.
	Format string `json:"format"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through the cache and returns its metadata.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch filepath.Ext(path) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		FileSizeBytes: stat.Size(),
	}, nil
}
