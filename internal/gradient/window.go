package gradient

import "github.com/gogpu/engrave/internal/image"

// Radius returns the window radius used for n candidate directions.
// More directions need longer sampling lines to tell them apart.
func Radius(n int) int {
	return n/4 + 1
}

// Window is a square neighborhood of (2r+1)² brightness samples copied out of
// an image around a center pixel. Positions that fall outside the image are
// kept as missing samples.
type Window struct {
	radius int
	size   int
	luma   []uint8
	valid  []bool
}

// NewWindow allocates an empty window of the given radius.
func NewWindow(radius int) *Window {
	size := 2*radius + 1
	return &Window{
		radius: radius,
		size:   size,
		luma:   make([]uint8, size*size),
		valid:  make([]bool, size*size),
	}
}

// Fill copies the neighborhood of (cx, cy) out of img, replacing the previous
// contents.
func (w *Window) Fill(img *image.ImageBuf, cx, cy int) {
	iw, ih := img.Bounds()
	i := 0
	for dy := -w.radius; dy <= w.radius; dy++ {
		y := cy + dy
		for dx := -w.radius; dx <= w.radius; dx++ {
			x := cx + dx
			if x < 0 || y < 0 || x >= iw || y >= ih {
				w.luma[i], w.valid[i] = 0, false
			} else {
				w.luma[i], w.valid[i] = img.Luma(x, y), true
			}
			i++
		}
	}
}

// At returns the sample at offset (dx, dy) from the center and whether it was
// inside the image. Offsets beyond the radius report a missing sample.
func (w *Window) At(dx, dy int) (uint8, bool) {
	if dx < -w.radius || dx > w.radius || dy < -w.radius || dy > w.radius {
		return 0, false
	}
	i := (dy+w.radius)*w.size + dx + w.radius
	return w.luma[i], w.valid[i]
}
