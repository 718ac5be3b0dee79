package image

import (
	"image"

	"golang.org/x/image/draw"
)

// Downscale shrinks img so that neither side exceeds maxSize pixels,
// preserving the aspect ratio. Images already within the limit, and a
// non-positive maxSize, return img unchanged. Upscaling never happens.
func Downscale(img image.Image, maxSize int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}

	var dw, dh int
	if w >= h {
		dw = maxSize
		dh = max(1, h*maxSize/w)
	} else {
		dh = maxSize
		dw = max(1, w*maxSize/h)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}
