// Package gradient estimates, for every pixel, the orientation along which
// brightness changes least.
//
// A fixed set of candidate angles spanning the half circle [0, π) is sampled
// through a square window around each pixel. Each candidate is rasterized
// into a line of integer offsets once per run; per pixel the window is filled
// and the candidate whose line shows the smallest brightness gradient wins.
// Ties go to the smallest angle.
package gradient

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/engrave/internal/image"
	"github.com/gogpu/engrave/internal/parallel"
)

var (
	// ErrInvalidDirectionCount is returned when fewer than one candidate
	// direction is requested.
	ErrInvalidDirectionCount = errors.New("gradient: invalid direction count")

	// ErrDegenerateWindow is returned when no candidate line through a pixel
	// has two samples inside the image.
	ErrDegenerateWindow = errors.New("gradient: degenerate window")
)

// Field holds one angle in [0, π) per pixel, row-major.
type Field struct {
	Width  int
	Height int
	Angle  []float64
}

// At returns the angle at (x, y). Coordinates must be in bounds.
func (f *Field) At(x, y int) float64 {
	return f.Angle[y*f.Width+x]
}

// Estimator picks the minimum-gradient direction for single pixels.
// It is safe for concurrent use; each goroutine needs its own Window.
type Estimator struct {
	angles []float64
	lines  []Line
	radius int
}

// NewEstimator prepares the candidate angles and sampling lines for n
// directions.
func NewEstimator(n int) (*Estimator, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirectionCount, n)
	}
	r := Radius(n)
	return &Estimator{
		angles: Angles(n),
		lines:  Lines(n, r),
		radius: r,
	}, nil
}

// Radius returns the window radius the estimator samples.
func (e *Estimator) Radius() int {
	return e.radius
}

// Direction returns the angle with the smallest gradient magnitude in w, and
// false if every candidate line lacks data.
func (e *Estimator) Direction(w *Window) (float64, bool) {
	best, bestK := math.Inf(1), -1
	for k, line := range e.lines {
		// Strict comparison keeps the first of equal minima.
		if m := Magnitude(w, line); m < best {
			best, bestK = m, k
		}
	}
	if bestK < 0 {
		return 0, false
	}
	return e.angles[bestK], true
}

// Compute estimates the direction field of img with n candidate directions.
// Rows are distributed over pool; a nil pool computes them in order.
func Compute(img *image.ImageBuf, n int, pool *parallel.WorkerPool) (*Field, error) {
	est, err := NewEstimator(n)
	if err != nil {
		return nil, err
	}

	w, h := img.Bounds()
	f := &Field{Width: w, Height: h, Angle: make([]float64, w*h)}

	row := func(y int) error {
		win := NewWindow(est.Radius())
		out := f.Angle[y*w : (y+1)*w]
		for x := range out {
			win.Fill(img, x, y)
			theta, ok := est.Direction(win)
			if !ok {
				return fmt.Errorf("%w at (%d, %d) with radius %d", ErrDegenerateWindow, x, y, est.Radius())
			}
			out[x] = theta
		}
		return nil
	}

	if pool == nil {
		for y := range h {
			if err := row(y); err != nil {
				return nil, err
			}
		}
		return f, nil
	}
	if err := pool.ForEachErr(h, row); err != nil {
		return nil, err
	}
	return f, nil
}
