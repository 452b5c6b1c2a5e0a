package detection

import (
	"image"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/player-locator/internal/imaging"
)

// Option configures a Detector.
type Option func(*Detector)

// WithBackend selects the candidate generator. Nil keeps the default.
func WithBackend(b Backend) Option {
	return func(d *Detector) {
		if b != nil {
			d.backend = b
		}
	}
}

// WithLogger routes diagnostics to the given logger. Nil keeps the default.
func WithLogger(l logrus.FieldLogger) Option {
	return func(d *Detector) {
		if l != nil {
			d.log = l
		}
	}
}

// WithExpected sets the number of players to look for. Values below 1 are
// ignored.
func WithExpected(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.expected = n
		}
	}
}

// WithDebug promotes per-stage candidate counts from debug to info level.
func WithDebug(debug bool) Option {
	return func(d *Detector) {
		d.debug = debug
	}
}

// Detector runs the detection-and-normalization pipeline:
//
//	Hough → [if short: Contours] → Dedup → Select → Normalize → Convert → Assemble
//
// A Detector holds no per-run state and is safe for concurrent use when its
// Backend is.
type Detector struct {
	backend  Backend
	log      logrus.FieldLogger
	expected int
	debug    bool
}

// NewDetector creates a Detector looking for DefaultExpected players with
// DefaultBackend, logging to the logrus standard logger.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		backend:  DefaultBackend(),
		log:      logrus.StandardLogger(),
		expected: DefaultExpected,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Expected returns the configured player count.
func (d *Detector) Expected() int { return d.expected }

// Backend returns the configured candidate generator.
func (d *Detector) Backend() Backend { return d.backend }

// DetectFile loads path through cache and runs Detect.
//
// The only error is *imaging.LoadError; every later stage degrades into a
// shorter result instead of failing.
func (d *Detector) DetectFile(cache *imaging.ImageCache, path string) (*DetectionResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		d.log.WithFields(logrus.Fields{"path": path, "error": err}).Error("image load failed")
		return nil, err
	}
	return d.Detect(img), nil
}

// Detect locates up to Expected players in img.
func (d *Detector) Detect(img image.Image) *DetectionResult {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	params := ScaledParams(width, height)
	gray := imaging.Grayscale(img)

	var counts Counts
	candidates := d.backend.Hough(gray, params.Hough)
	counts.Hough = len(candidates)
	d.diag(logrus.Fields{"hough": counts.Hough}, "parametric detector finished")

	if len(candidates) < d.expected {
		fallback := d.backend.Contours(gray, params.MinArea, params.MaxArea)
		counts.FallbackUsed = true
		counts.Contours = len(fallback)
		d.diag(logrus.Fields{"contours": counts.Contours}, "contour fallback finished")
		candidates = append(candidates, fallback...)
	}

	unique := Dedup(candidates, params.DedupTolerance)
	counts.Unique = len(unique)
	d.diag(logrus.Fields{"unique": counts.Unique, "tolerance": params.DedupTolerance}, "duplicates removed")

	selected := SelectTopNByRadius(unique, d.expected)
	counts.Selected = len(selected)

	normalized, common, ok := NormalizeRadius(selected)
	players := Assemble(ToLowerLeft(normalized, height))

	result := &DetectionResult{
		ImageWidth:  width,
		ImageHeight: height,
		Detected:    players,
		Expected:    d.expected,
		Counts:      counts,
	}
	if ok {
		result.CommonRadius = &common
	}

	fields := logrus.Fields{
		"backend":  d.backend.Name(),
		"width":    width,
		"height":   height,
		"detected": len(players),
		"expected": d.expected,
	}
	if ok {
		fields["common_radius"] = common
	}
	if result.Complete() {
		d.log.WithFields(fields).Info("players detected")
	} else {
		d.log.WithFields(fields).Warn("fewer players detected than expected")
	}
	return result
}

func (d *Detector) diag(fields logrus.Fields, msg string) {
	entry := d.log.WithFields(fields)
	if d.debug {
		entry.Info(msg)
		return
	}
	entry.Debug(msg)
}
