package gradient

import (
	"math/rand/v2"

	"github.com/gogpu/engrave/internal/image"
)

// lumaImage builds an opaque gray+alpha image whose brightness is given by fn.
func lumaImage(w, h int, fn func(x, y int) uint8) *image.ImageBuf {
	buf, _ := image.NewImageBuf(w, h, image.FormatGrayAlpha8)
	for y := range h {
		for x := range w {
			_ = buf.SetLumaAlpha(x, y, fn(x, y), 255)
		}
	}
	return buf
}

func flat(v uint8) func(x, y int) uint8 {
	return func(int, int) uint8 { return v }
}

// rampX is 0 at x=0 and 255 at x=w-1.
func rampX(w int) func(x, y int) uint8 {
	return func(x, _ int) uint8 { return uint8(255 * float64(x) / float64(w-1)) }
}

// rampY is 0 at y=0 and 255 at y=h-1.
func rampY(h int) func(x, y int) uint8 {
	return func(_, y int) uint8 { return uint8(255 * float64(y) / float64(h-1)) }
}

func noise(seed uint64) func(x, y int) uint8 {
	rng := rand.New(rand.NewPCG(seed, 1))
	return func(int, int) uint8 { return uint8(rng.IntN(256)) }
}
