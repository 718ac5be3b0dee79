package shade

import (
	"math"
	"math/rand/v2"

	"github.com/gogpu/engrave/internal/image"
)

// Test helper functions shared across shade tests.

// rampImage builds a linear brightness ramp that is darkest at the origin and
// brightest at the opposite corner. theta tilts the ramp: 0 varies along x
// only, π/2 along y only.
func rampImage(w, h int, theta float64) *image.ImageBuf {
	c, s := math.Abs(math.Cos(theta)), math.Abs(math.Sin(theta))
	xr, yr := c/(c+s), s/(c+s)
	span := float64(w-1)*xr + float64(h-1)*yr

	buf, _ := image.NewImageBuf(w, h, image.FormatGrayAlpha8)
	for y := range h {
		for x := range w {
			ratio := (float64(x)*xr + float64(y)*yr) / span
			_ = buf.SetLumaAlpha(x, y, uint8(255*ratio), 255)
		}
	}
	return buf
}

// noiseGrid builds a reproducible grid of random shade indexes in [0, n).
func noiseGrid(w, h, n int, seed uint64) *Grid {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	g := &Grid{Width: w, Height: h, Index: make([]uint8, w*h)}
	for i := range g.Index {
		g.Index[i] = uint8(rng.IntN(n))
	}
	return g
}

// gridOf builds a grid from rows of shade indexes.
func gridOf(rows ...[]uint8) *Grid {
	g := &Grid{Height: len(rows)}
	if len(rows) > 0 {
		g.Width = len(rows[0])
	}
	for _, r := range rows {
		g.Index = append(g.Index, r...)
	}
	return g
}
