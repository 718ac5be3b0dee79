// Package hatch turns shade regions into periodic ink and paper stripes.
//
// Each region first receives a single orientation, the circular mean of the
// per-pixel directions of its members. The renderer then paints straight
// stripes along that orientation, with the width of one band per period
// proportional to the region's shade index.
package hatch

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/gogpu/engrave/internal/gradient"
	"github.com/gogpu/engrave/internal/parallel"
	"github.com/gogpu/engrave/internal/shade"
)

// MeanOrientation returns the mean of orientations given in [0, π).
//
// Orientations θ and θ+π are the same line, so the angles are doubled onto
// the full circle, averaged as unit vectors and halved back. The result is in
// [0, π); an empty or perfectly balanced input yields 0. The input slice is
// overwritten.
func MeanOrientation(angles []float64) float64 {
	for i, a := range angles {
		angles[i] = 2 * a
	}
	theta := stat.CircularMean(angles, nil) / 2
	if theta < 0 {
		theta += math.Pi
	}
	if theta >= math.Pi {
		theta -= math.Pi
	}
	return theta
}

// Aggregate sets the Angle of every region to the mean orientation of its
// pixels in f. Regions are processed over pool; a nil pool processes them in
// order.
func Aggregate(regions []shade.Region, f *gradient.Field, pool *parallel.WorkerPool) {
	one := func(i int) {
		r := &regions[i]
		angles := make([]float64, len(r.Coords))
		for j, c := range r.Coords {
			angles[j] = f.At(c.X, c.Y)
		}
		r.Angle = MeanOrientation(angles)
	}

	if pool == nil {
		for i := range regions {
			one(i)
		}
		return
	}
	pool.ForEach(len(regions), one)
}
