package hatch

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/engrave/internal/image"
	"github.com/gogpu/engrave/internal/parallel"
	"github.com/gogpu/engrave/internal/shade"
)

// Output intensities.
const (
	Ink   uint8 = 0
	Paper uint8 = 255
)

var (
	// ErrInvalidStrokeWidth is returned for stroke widths below one pixel.
	ErrInvalidStrokeWidth = errors.New("hatch: invalid stroke width")

	// ErrInvalidPolarity is returned when a polarity name is not recognized.
	ErrInvalidPolarity = errors.New("hatch: invalid polarity")
)

// Polarity selects which intensity fills the band of each stripe period.
type Polarity int

const (
	// PolarityBandPaper paints the band with paper and the remainder with
	// ink. The band grows with the shade index, so dark source regions come
	// out densely inked.
	PolarityBandPaper Polarity = iota

	// PolarityBandInk paints the band with ink and the remainder with paper.
	PolarityBandInk
)

// String returns the polarity name accepted by ParsePolarity.
func (p Polarity) String() string {
	switch p {
	case PolarityBandPaper:
		return "paper"
	case PolarityBandInk:
		return "ink"
	default:
		return fmt.Sprintf("Polarity(%d)", int(p))
	}
}

// ParsePolarity parses "paper" or "ink". The empty string selects
// PolarityBandPaper.
func ParsePolarity(s string) (Polarity, error) {
	switch s {
	case "", "paper":
		return PolarityBandPaper, nil
	case "ink":
		return PolarityBandInk, nil
	default:
		return 0, fmt.Errorf("%w: %q (want paper or ink)", ErrInvalidPolarity, s)
	}
}

// BandWidth returns the band width in pixels for shade index i out of n
// shades at the given stroke period: floor(i/n * stroke).
func BandWidth(i, n, stroke int) int {
	return i * stroke / n
}

// Phase returns the position of (x, y) within the stripe period when stripes
// run at angle theta: the projection onto (cos θ, sin θ) modulo stroke, in
// [0, stroke).
func Phase(x, y int, theta float64, stroke int) float64 {
	s, c := math.Sincos(theta)
	w := float64(stroke)
	d := math.Mod(float64(x)*c+float64(y)*s, w)
	if d < 0 {
		d += w
	}
	return d
}

// Renderer paints hatched regions into a gray+alpha buffer.
type Renderer struct {
	shades   int
	stroke   int
	polarity Polarity
}

// NewRenderer returns a renderer for regions quantized into the given number
// of shades, with stripes repeating every stroke pixels.
func NewRenderer(shades, stroke int, polarity Polarity) (*Renderer, error) {
	if stroke < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStrokeWidth, stroke)
	}
	if shades < 2 {
		return nil, fmt.Errorf("%w: %d", shade.ErrInvalidShadeCount, shades)
	}
	if polarity != PolarityBandPaper && polarity != PolarityBandInk {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPolarity, polarity)
	}
	return &Renderer{shades: shades, stroke: stroke, polarity: polarity}, nil
}

// Render allocates a width×height buffer filled with the background tone and
// paints the band pixels of every region into it. Regions must partition the
// buffer; each pixel is written at most once, so regions are painted
// concurrently over pool without locking. A nil pool paints them in order.
func (r *Renderer) Render(regions []shade.Region, width, height int, pool *parallel.WorkerPool) (*image.ImageBuf, error) {
	dst, err := image.NewImageBuf(width, height, image.FormatGrayAlpha8)
	if err != nil {
		return nil, err
	}

	bandLuma, restLuma := Paper, Ink
	if r.polarity == PolarityBandInk {
		bandLuma, restLuma = Ink, Paper
	}
	dst.Fill(restLuma, 255)

	paint := func(i int) error {
		reg := &regions[i]
		band := float64(BandWidth(reg.Shade, r.shades, r.stroke))
		for _, c := range reg.Coords {
			if Phase(c.X, c.Y, reg.Angle, r.stroke) >= band {
				if dst.PixelOffset(c.X, c.Y) < 0 {
					return fmt.Errorf("hatch: region %d: %w", i, image.ErrOutOfBounds)
				}
				continue
			}
			if err := dst.SetLumaAlpha(c.X, c.Y, bandLuma, 255); err != nil {
				return fmt.Errorf("hatch: region %d: %w", i, err)
			}
		}
		return nil
	}

	if pool == nil {
		for i := range regions {
			if err := paint(i); err != nil {
				return nil, err
			}
		}
		return dst, nil
	}
	if err := pool.ForEachErr(len(regions), paint); err != nil {
		return nil, err
	}
	return dst, nil
}
