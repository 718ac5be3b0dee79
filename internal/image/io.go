package image

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ErrUnsupportedFormat is returned when the image format is not supported.
var ErrUnsupportedFormat = errors.New("image: unsupported format")

// Codec identifies a file encoding.
type Codec string

// Supported codecs. All of them decode; GIF and WebP are decode-only.
const (
	CodecPNG  Codec = "png"
	CodecJPEG Codec = "jpeg"
	CodecBMP  Codec = "bmp"
	CodecTIFF Codec = "tiff"
	CodecGIF  Codec = "gif"
	CodecWebP Codec = "webp"
)

// DefaultJPEGQuality is used by Save for .jpg/.jpeg outputs.
const DefaultJPEGQuality = 95

// CodecFromPath returns the codec implied by the file extension of path.
func CodecFromPath(path string) (Codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return CodecPNG, nil
	case ".jpg", ".jpeg":
		return CodecJPEG, nil
	case ".bmp":
		return CodecBMP, nil
	case ".tif", ".tiff":
		return CodecTIFF, nil
	case ".gif":
		return CodecGIF, nil
	case ".webp":
		return CodecWebP, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadStdImage decodes the file at path without converting it, auto-detecting
// the format from its content.
func LoadStdImage(path string) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return img, nil
}

// LoadImage loads an image from the given file path and converts it with
// FromStdImage.
func LoadImage(path string) (*ImageBuf, error) {
	img, err := LoadStdImage(path)
	if err != nil {
		return nil, err
	}
	return FromStdImage(img)
}

// Save encodes the image with the codec implied by the extension of path.
func (b *ImageBuf) Save(path string) error {
	codec, err := CodecFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := b.Encode(f, codec); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// Encode writes the image to w using codec.
func (b *ImageBuf) Encode(w io.Writer, codec Codec) error {
	img := b.ToStdImage()

	var err error
	switch codec {
	case CodecPNG:
		err = png.Encode(w, img)
	case CodecJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: DefaultJPEGQuality})
	case CodecBMP:
		err = bmp.Encode(w, img)
	case CodecTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: cannot encode %s", ErrUnsupportedFormat, codec)
	}
	if err != nil {
		return fmt.Errorf("image: encode %s: %w", codec, err)
	}
	return nil
}

// FromStdImage creates an ImageBuf from a standard library image.
// *image.Gray sources become FormatGray8; everything else becomes
// FormatGrayAlpha8 with color reduced to luma and alpha kept straight (not
// premultiplied).
func FromStdImage(img image.Image) (*ImageBuf, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if src, ok := img.(*image.Gray); ok {
		buf, err := NewImageBuf(width, height, FormatGray8)
		if err != nil {
			return nil, err
		}
		for y := range height {
			copy(buf.RowBytes(y), src.Pix[y*src.Stride:y*src.Stride+width])
		}
		return buf, nil
	}

	buf, err := NewImageBuf(width, height, FormatGrayAlpha8)
	if err != nil {
		return nil, err
	}

	if src, ok := img.(*image.NRGBA); ok {
		for y := range height {
			srcRow := src.Pix[y*src.Stride : y*src.Stride+width*4]
			dst := buf.RowBytes(y)
			for x := range width {
				p := srcRow[4*x : 4*x+4]
				dst[2*x] = lumaOf(p[0], p[1], p[2])
				dst[2*x+1] = p[3]
			}
		}
		return buf, nil
	}

	for y := range height {
		dst := buf.RowBytes(y)
		for x := range width {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			dst[2*x] = lumaOf(c.R, c.G, c.B)
			dst[2*x+1] = c.A
		}
	}
	return buf, nil
}

// ToStdImage converts the ImageBuf to a standard library image.
// Opaque buffers become *image.Gray; buffers with any transparency become
// *image.NRGBA with r=g=b=luma.
func (b *ImageBuf) ToStdImage() image.Image {
	rect := image.Rect(0, 0, b.width, b.height)

	if b.format == FormatGray8 {
		gray := image.NewGray(rect)
		for y := range b.height {
			copy(gray.Pix[y*gray.Stride:], b.RowBytes(y))
		}
		return gray
	}

	if b.IsOpaque() {
		gray := image.NewGray(rect)
		for y := range b.height {
			row := b.RowBytes(y)
			dst := gray.Pix[y*gray.Stride:]
			for x := range b.width {
				dst[x] = row[2*x]
			}
		}
		return gray
	}

	nrgba := image.NewNRGBA(rect)
	for y := range b.height {
		row := b.RowBytes(y)
		dst := nrgba.Pix[y*nrgba.Stride:]
		for x := range b.width {
			v, a := row[2*x], row[2*x+1]
			dst[4*x] = v
			dst[4*x+1] = v
			dst[4*x+2] = v
			dst[4*x+3] = a
		}
	}
	return nrgba
}
