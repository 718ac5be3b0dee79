package image

import "errors"

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("image: invalid format")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")
)

// ImageBuf is a grayscale image buffer with an optional alpha channel.
//
// ImageBuf stores pixel data in a contiguous byte slice, row-major, with an
// explicit stride. Luma is always the first byte of a pixel.
//
// Thread safety: ImageBuf is safe for concurrent read access. Concurrent
// writes are safe only when they target disjoint pixels.
type ImageBuf struct {
	data   []byte
	width  int
	height int
	stride int
	format Format
}

// NewImageBuf creates a new image buffer with the given dimensions and format.
// All pixels start as zero (black, and transparent for FormatGrayAlpha8).
func NewImageBuf(width, height int, format Format) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}

	stride := format.RowBytes(width)
	return &ImageBuf{
		data:   make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// Width returns the image width in pixels.
func (b *ImageBuf) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *ImageBuf) Height() int {
	return b.height
}

// Stride returns the number of bytes per row (including padding).
func (b *ImageBuf) Stride() int {
	return b.stride
}

// Format returns the pixel format.
func (b *ImageBuf) Format() Format {
	return b.format
}

// Bounds returns the image dimensions as (width, height).
func (b *ImageBuf) Bounds() (int, int) {
	return b.width, b.height
}

// Data returns the raw pixel data slice.
func (b *ImageBuf) Data() []byte {
	return b.data
}

// RowBytes returns a slice of the pixel data for row y.
// Returns nil if y is out of bounds.
func (b *ImageBuf) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.stride
	return b.data[start : start+b.format.RowBytes(b.width)]
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (b *ImageBuf) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.stride + x*b.format.BytesPerPixel()
}

// Luma returns the brightness of pixel (x, y).
// Returns 0 if coordinates are out of bounds.
func (b *ImageBuf) Luma(x, y int) uint8 {
	offset := b.PixelOffset(x, y)
	if offset < 0 {
		return 0
	}
	return b.data[offset]
}

// Alpha returns the alpha of pixel (x, y); formats without alpha report 255.
// Returns 0 if coordinates are out of bounds.
func (b *ImageBuf) Alpha(x, y int) uint8 {
	offset := b.PixelOffset(x, y)
	if offset < 0 {
		return 0
	}
	if !b.format.HasAlpha() {
		return 255
	}
	return b.data[offset+1]
}

// SetLumaAlpha sets pixel (x, y). The alpha value is ignored for formats
// without an alpha channel.
// Returns ErrOutOfBounds if coordinates are outside image bounds.
func (b *ImageBuf) SetLumaAlpha(x, y int, luma, alpha uint8) error {
	offset := b.PixelOffset(x, y)
	if offset < 0 {
		return ErrOutOfBounds
	}
	b.data[offset] = luma
	if b.format.HasAlpha() {
		b.data[offset+1] = alpha
	}
	return nil
}

// Fill sets all pixels to the given luma and alpha.
func (b *ImageBuf) Fill(luma, alpha uint8) {
	bpp := b.format.BytesPerPixel()
	for y := range b.height {
		row := b.RowBytes(y)
		for i := 0; i < len(row); i += bpp {
			row[i] = luma
			if bpp > 1 {
				row[i+1] = alpha
			}
		}
	}
}

// IsOpaque reports whether every pixel has alpha 255.
func (b *ImageBuf) IsOpaque() bool {
	if !b.format.HasAlpha() {
		return true
	}
	for y := range b.height {
		row := b.RowBytes(y)
		for i := 1; i < len(row); i += 2 {
			if row[i] != 255 {
				return false
			}
		}
	}
	return true
}

// lumaOf reduces a straight-alpha color to brightness.
func lumaOf(r, g, bl uint8) uint8 {
	return uint8((int(r)*299 + int(g)*587 + int(bl)*114) / 1000)
}
