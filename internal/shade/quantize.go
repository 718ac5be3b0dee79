// Package shade reduces an image to a few discrete brightness levels and
// partitions it into connected regions of equal level.
package shade

import (
	"errors"
	"fmt"

	"github.com/gogpu/engrave/internal/image"
)

// MaxShades is the largest supported shade count; beyond it the quantization
// step would drop to zero.
const MaxShades = 256

// ErrInvalidShadeCount is returned for shade counts outside [2, MaxShades].
var ErrInvalidShadeCount = errors.New("shade: invalid shade count")

// Quantizer maps 8-bit brightness to a shade index in [0, Shades()).
// Brightness is split into equal steps of 255/(n-1) (integer division);
// the top value can land one past the last step and is clamped down.
type Quantizer struct {
	shades int
	step   int
}

// NewQuantizer returns a Quantizer for n shades.
func NewQuantizer(n int) (Quantizer, error) {
	if n < 2 || n > MaxShades {
		return Quantizer{}, fmt.Errorf("%w: %d (want 2..%d)", ErrInvalidShadeCount, n, MaxShades)
	}
	return Quantizer{shades: n, step: 255 / (n - 1)}, nil
}

// Shades returns the number of shade levels.
func (q Quantizer) Shades() int {
	return q.shades
}

// Index returns the shade index of brightness b.
func (q Quantizer) Index(b uint8) int {
	return min(int(b)/q.step, q.shades-1)
}

// Grid holds one shade index per pixel, row-major.
type Grid struct {
	Width  int
	Height int
	Index  []uint8
}

// At returns the shade index at (x, y). Coordinates must be in bounds.
func (g *Grid) At(x, y int) uint8 {
	return g.Index[y*g.Width+x]
}

// Quantize computes the shade grid of img.
func (q Quantizer) Quantize(img *image.ImageBuf) *Grid {
	w, h := img.Bounds()
	g := &Grid{Width: w, Height: h, Index: make([]uint8, w*h)}

	// A lookup table keeps the per-pixel work to one load.
	var lut [256]uint8
	for b := range lut {
		lut[b] = uint8(q.Index(uint8(b)))
	}

	for y := range h {
		row := g.Index[y*w : (y+1)*w]
		for x := range row {
			row[x] = lut[img.Luma(x, y)]
		}
	}
	return g
}
