package engrave

import (
	"fmt"
	"image"
	"time"

	"github.com/gogpu/engrave/internal/gradient"
	"github.com/gogpu/engrave/internal/hatch"
	intImage "github.com/gogpu/engrave/internal/image"
	"github.com/gogpu/engrave/internal/parallel"
	"github.com/gogpu/engrave/internal/shade"
)

// ImageBuf is a grayscale pixel buffer with an optional alpha channel.
// It is the input and output type of Run.
type ImageBuf = intImage.ImageBuf

// Region is a maximal 4-connected set of pixels sharing one shade index,
// together with its hatching angle.
type Region = shade.Region

// Coord is a pixel coordinate.
type Coord = shade.Coord

// Field holds the per-pixel minimum-gradient angles of a run.
type Field = gradient.Field

// Polarity selects which intensity fills the band of each stripe period.
type Polarity = hatch.Polarity

// Polarity values.
const (
	// PolarityBandPaper paints the band with paper and the rest with ink.
	PolarityBandPaper = hatch.PolarityBandPaper

	// PolarityBandInk paints the band with ink and the rest with paper.
	PolarityBandInk = hatch.PolarityBandInk
)

// ParsePolarity parses "paper" or "ink"; the empty string selects
// PolarityBandPaper.
func ParsePolarity(s string) (Polarity, error) {
	return hatch.ParsePolarity(s)
}

// Params are the numeric settings of an engraving.
type Params struct {
	// Shades is the number of brightness levels, in [2, 256].
	Shades int

	// Directions is the number of candidate stripe orientations, at least 1.
	// More directions also widen the sampling window.
	Directions int

	// StrokeWidth is the stripe period in pixels, at least 1.
	StrokeWidth int
}

// Validate reports whether p can be used for a run.
func (p Params) Validate() error {
	if _, err := shade.NewQuantizer(p.Shades); err != nil {
		return err
	}
	if p.Directions < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidDirectionCount, p.Directions)
	}
	if p.StrokeWidth < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidStrokeWidth, p.StrokeWidth)
	}
	return nil
}

// Result holds the output of Run together with its intermediate data.
type Result struct {
	// Image is the hatched output: same size as the source, fully opaque,
	// every pixel either ink (0) or paper (255).
	Image *ImageBuf

	// Regions are the shade regions with their aggregated angles.
	Regions []Region

	// Field is the per-pixel direction field.
	Field *Field
}

// Run engraves src.
//
// The source is read only. Every buffer in the Result is freshly allocated.
// Any error aborts the run; there is no partial output.
func Run(src *ImageBuf, p Params, opts ...Option) (*Result, error) {
	if src == nil {
		return nil, ErrNilImage
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	renderer, err := hatch.NewRenderer(p.Shades, p.StrokeWidth, o.polarity)
	if err != nil {
		return nil, err
	}
	q, err := shade.NewQuantizer(p.Shades)
	if err != nil {
		return nil, err
	}

	log := Logger()
	w, h := src.Bounds()
	start := time.Now()

	pool := parallel.NewWorkerPool(o.workers)
	defer pool.Close()

	t := time.Now()
	regions := shade.Segment(q.Quantize(src))
	log.Debug("engrave: segmented",
		"width", w, "height", h, "shades", q.Shades(),
		"regions", len(regions), "elapsed", time.Since(t))

	t = time.Now()
	field, err := gradient.Compute(src, p.Directions, pool)
	if err != nil {
		return nil, fmt.Errorf("engrave: direction field: %w", err)
	}
	log.Debug("engrave: direction field",
		"directions", p.Directions, "radius", gradient.Radius(p.Directions),
		"workers", pool.Workers(), "elapsed", time.Since(t))

	t = time.Now()
	hatch.Aggregate(regions, field, pool)
	log.Debug("engrave: aggregated", "regions", len(regions), "elapsed", time.Since(t))

	t = time.Now()
	out, err := renderer.Render(regions, w, h, pool)
	if err != nil {
		return nil, fmt.Errorf("engrave: render: %w", err)
	}
	log.Debug("engrave: rendered",
		"stroke", p.StrokeWidth, "polarity", o.polarity, "elapsed", time.Since(t))

	log.Info("engrave: done",
		"width", w, "height", h, "regions", len(regions),
		"elapsed", time.Since(start))

	return &Result{Image: out, Regions: regions, Field: field}, nil
}

// Engrave is Run for standard library images. Color input is reduced to
// luma; the result is an *image.Gray.
func Engrave(src image.Image, p Params, opts ...Option) (image.Image, error) {
	if src == nil {
		return nil, ErrNilImage
	}
	buf, err := intImage.FromStdImage(src)
	if err != nil {
		return nil, fmt.Errorf("engrave: convert source: %w", err)
	}
	res, err := Run(buf, p, opts...)
	if err != nil {
		return nil, err
	}
	return res.Image.ToStdImage(), nil
}

// LoadImage decodes the image file at path into a grayscale buffer.
// Grayscale files stay one byte per pixel; anything else keeps its alpha.
// If maxSize is positive, images whose longer side exceeds it are first
// scaled down to fit, keeping the aspect ratio.
func LoadImage(path string, maxSize int) (*ImageBuf, error) {
	if maxSize <= 0 {
		return intImage.LoadImage(path)
	}
	img, err := intImage.LoadStdImage(path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	img = intImage.Downscale(img, maxSize)
	if nb := img.Bounds(); nb != b {
		Logger().Debug("engrave: downscaled",
			"path", path, "from", b.Size(), "to", nb.Size())
	}
	return intImage.FromStdImage(img)
}
