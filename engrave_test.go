package engrave

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	intImage "github.com/gogpu/engrave/internal/image"
)

// rampImage is darkest in column 0 and brightest in the last column.
func rampImage(w, h int) *ImageBuf {
	buf, _ := intImage.NewImageBuf(w, h, intImage.FormatGrayAlpha8)
	for y := range h {
		for x := range w {
			_ = buf.SetLumaAlpha(x, y, uint8(255*float64(x)/float64(w-1)), 255)
		}
	}
	return buf
}

func noiseImage(w, h int, seed uint64) *ImageBuf {
	rng := rand.New(rand.NewPCG(seed, 99))
	buf, _ := intImage.NewImageBuf(w, h, intImage.FormatGrayAlpha8)
	for y := range h {
		for x := range w {
			_ = buf.SetLumaAlpha(x, y, uint8(rng.IntN(256)), 255)
		}
	}
	return buf
}

func TestRun_ColumnRamp(t *testing.T) {
	res, err := Run(rampImage(5, 5), Params{Shades: 5, Directions: 4, StrokeWidth: 4})
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}

	if len(res.Regions) != 5 {
		t.Fatalf("len(Regions) = %d, want 5", len(res.Regions))
	}
	for c, r := range res.Regions {
		want := []Coord{{c, 0}, {c, 1}, {c, 2}, {c, 3}, {c, 4}}
		if diff := cmp.Diff(want, r.Coords); diff != "" {
			t.Errorf("Regions[%d].Coords mismatch (-want +got):\n%s", c, diff)
		}
		if r.Shade != c {
			t.Errorf("Regions[%d].Shade = %d, want %d", c, r.Shade, c)
		}
		if r.Angle != 0 {
			t.Errorf("Regions[%d].Angle = %v, want 0", c, r.Angle)
		}
	}

	// Band widths per column are 0, 0, 1, 2, 3 with stripes along x; only
	// column 4 (phase 0) falls inside its band.
	want := []uint8{0, 0, 0, 0, 255}
	for y := range 5 {
		for x := range 5 {
			if got := res.Image.Luma(x, y); got != want[x] {
				t.Errorf("Luma(%d, %d) = %d, want %d", x, y, got, want[x])
			}
		}
	}
}

func TestRun_FlatImage(t *testing.T) {
	src, _ := intImage.NewImageBuf(5, 5, intImage.FormatGrayAlpha8)
	src.Fill(90, 255)

	for _, n := range []int{1, 3, 8} {
		res, err := Run(src, Params{Shades: 4, Directions: n, StrokeWidth: 2})
		if err != nil {
			t.Fatalf("Run(directions=%d) = %v", n, err)
		}
		for i, a := range res.Field.Angle {
			if a != 0 {
				t.Fatalf("directions=%d: Field.Angle[%d] = %v, want 0", n, i, a)
			}
		}
	}
}

func TestRun_Output(t *testing.T) {
	src := noiseImage(37, 29, 3)
	res, err := Run(src, Params{Shades: 6, Directions: 8, StrokeWidth: 5})
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}

	w, h := res.Image.Bounds()
	if w != 37 || h != 29 {
		t.Fatalf("output size = %dx%d, want 37x29", w, h)
	}
	for y := range h {
		for x := range w {
			if l := res.Image.Luma(x, y); l != 0 && l != 255 {
				t.Fatalf("Luma(%d, %d) = %d, want 0 or 255", x, y, l)
			}
			if a := res.Image.Alpha(x, y); a != 255 {
				t.Fatalf("Alpha(%d, %d) = %d, want 255", x, y, a)
			}
		}
	}
	for i, a := range res.Field.Angle {
		if a < 0 || a >= math.Pi {
			t.Fatalf("Field.Angle[%d] = %v outside [0, π)", i, a)
		}
	}
	total := 0
	for _, r := range res.Regions {
		total += r.Len()
	}
	if total != w*h {
		t.Errorf("regions cover %d pixels, want %d", total, w*h)
	}
}

func TestRun_Deterministic(t *testing.T) {
	src := noiseImage(48, 32, 17)
	p := Params{Shades: 4, Directions: 6, StrokeWidth: 4}

	want, err := Run(src, p, WithWorkers(1))
	if err != nil {
		t.Fatalf("Run(workers=1) = %v", err)
	}
	for _, workers := range []int{1, 2, 7, 0} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			got, err := Run(src, p, WithWorkers(workers))
			if err != nil {
				t.Fatalf("Run() = %v", err)
			}
			if !bytes.Equal(want.Image.Data(), got.Image.Data()) {
				t.Error("output image differs between runs")
			}
			if diff := cmp.Diff(want.Regions, got.Regions); diff != "" {
				t.Errorf("regions differ (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRun_PolarityInverts(t *testing.T) {
	src := noiseImage(20, 20, 8)
	p := Params{Shades: 3, Directions: 4, StrokeWidth: 3}

	paper, err := Run(src, p)
	if err != nil {
		t.Fatal(err)
	}
	ink, err := Run(src, p, WithPolarity(PolarityBandInk))
	if err != nil {
		t.Fatal(err)
	}
	for y := range 20 {
		for x := range 20 {
			if paper.Image.Luma(x, y)+ink.Image.Luma(x, y) != 255 {
				t.Fatalf("(%d, %d): paper %d and ink %d are not inverses",
					x, y, paper.Image.Luma(x, y), ink.Image.Luma(x, y))
			}
		}
	}
}

func TestRun_Errors(t *testing.T) {
	valid := Params{Shades: 4, Directions: 4, StrokeWidth: 4}
	tiny, _ := intImage.NewImageBuf(1, 1, intImage.FormatGrayAlpha8)

	tests := []struct {
		name    string
		src     *ImageBuf
		p       Params
		opts    []Option
		wantErr error
	}{
		{"nil image", nil, valid, nil, ErrNilImage},
		{"one shade", rampImage(5, 5), Params{Shades: 1, Directions: 4, StrokeWidth: 4}, nil, ErrInvalidShadeCount},
		{"too many shades", rampImage(5, 5), Params{Shades: 300, Directions: 4, StrokeWidth: 4}, nil, ErrInvalidShadeCount},
		{"zero directions", rampImage(5, 5), Params{Shades: 4, Directions: 0, StrokeWidth: 4}, nil, ErrInvalidDirectionCount},
		{"zero stroke", rampImage(5, 5), Params{Shades: 4, Directions: 4, StrokeWidth: 0}, nil, ErrInvalidStrokeWidth},
		{"bad polarity", rampImage(5, 5), valid, []Option{WithPolarity(Polarity(5))}, ErrInvalidPolarity},
		{"single pixel", tiny, valid, nil, ErrDegenerateWindow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Run(tt.src, tt.p, tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Run() error = %v, want %v", err, tt.wantErr)
			}
			if res != nil {
				t.Error("Run() returned a result alongside an error")
			}
		})
	}
}

func TestEngrave_StdImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 12, 8))
	for y := range 8 {
		for x := range 12 {
			v := uint8(x * 20)
			src.Set(x, y, color.RGBA{v, v, v, 255})
		}
	}

	out, err := Engrave(src, Params{Shades: 3, Directions: 4, StrokeWidth: 3})
	if err != nil {
		t.Fatalf("Engrave() = %v", err)
	}
	gray, ok := out.(*image.Gray)
	if !ok {
		t.Fatalf("Engrave() returned %T, want *image.Gray", out)
	}
	if gray.Bounds() != src.Bounds() {
		t.Errorf("bounds = %v, want %v", gray.Bounds(), src.Bounds())
	}

	if _, err := Engrave(nil, Params{Shades: 3, Directions: 4, StrokeWidth: 3}); !errors.Is(err, ErrNilImage) {
		t.Errorf("Engrave(nil) error = %v, want ErrNilImage", err)
	}
}

func TestLoadImage(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 40, 20))
	for i := range src.Pix {
		src.Pix[i] = uint8(i)
	}
	path := filepath.Join(t.TempDir(), "in.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	tests := []struct {
		maxSize int
		w, h    int
		format  intImage.Format
	}{
		{0, 40, 20, intImage.FormatGray8},
		{100, 40, 20, intImage.FormatGray8},
		{10, 10, 5, intImage.FormatGrayAlpha8},
	}
	for _, tt := range tests {
		buf, err := LoadImage(path, tt.maxSize)
		if err != nil {
			t.Fatalf("LoadImage(maxSize=%d) = %v", tt.maxSize, err)
		}
		if w, h := buf.Bounds(); w != tt.w || h != tt.h {
			t.Errorf("LoadImage(maxSize=%d) size = %dx%d, want %dx%d", tt.maxSize, w, h, tt.w, tt.h)
		}
		if buf.Format() != tt.format {
			t.Errorf("LoadImage(maxSize=%d) format = %v, want %v", tt.maxSize, buf.Format(), tt.format)
		}
		if tt.w != 40 {
			continue
		}
		for _, pt := range []image.Point{{0, 0}, {7, 3}, {39, 19}} {
			if got, want := buf.Luma(pt.X, pt.Y), src.GrayAt(pt.X, pt.Y).Y; got != want {
				t.Errorf("LoadImage(maxSize=%d) Luma%v = %d, want %d", tt.maxSize, pt, got, want)
			}
		}
	}

	if _, err := LoadImage(filepath.Join(t.TempDir(), "missing.png"), 0); err == nil {
		t.Error("LoadImage(missing) should fail")
	}
}

func TestParams_Validate(t *testing.T) {
	if err := (Params{Shades: 2, Directions: 1, StrokeWidth: 1}).Validate(); err != nil {
		t.Errorf("Validate(minimal) = %v, want nil", err)
	}
	if err := (Params{}).Validate(); !errors.Is(err, ErrInvalidShadeCount) {
		t.Errorf("Validate(zero) = %v, want ErrInvalidShadeCount", err)
	}
}

func TestParsePolarity(t *testing.T) {
	p, err := ParsePolarity("ink")
	if err != nil || p != PolarityBandInk {
		t.Errorf("ParsePolarity(ink) = (%v, %v)", p, err)
	}
	if _, err := ParsePolarity("grey"); !errors.Is(err, ErrInvalidPolarity) {
		t.Errorf("ParsePolarity(grey) error = %v, want ErrInvalidPolarity", err)
	}
}

func BenchmarkRun(b *testing.B) {
	src := noiseImage(256, 256, 1)
	p := Params{Shades: 5, Directions: 8, StrokeWidth: 6}
	b.ResetTimer()
	for b.Loop() {
		if _, err := Run(src, p); err != nil {
			b.Fatal(err)
		}
	}
}
