package gradient

import "math"

// Offset is a displacement from the window center.
type Offset struct {
	DX, DY int
}

// Line is a rasterized straight line through the window center, one sample
// per step in [-r, r], ordered by step.
type Line []Offset

// candidateAngle returns the k-th of n evenly spaced angles in [0, π).
func candidateAngle(k, n int) float64 {
	return float64(k) * math.Pi / float64(n)
}

// Angles returns the n candidate directions.
func Angles(n int) []float64 {
	out := make([]float64, n)
	for k := range out {
		out[k] = candidateAngle(k, n)
	}
	return out
}

// NewLine rasterizes the sampling line at angle theta for radius r.
//
// Angles within 45° of θ=0 step along the y axis and shift x by the rounded
// tangent; the rest step along x and shift y by the rounded cotangent, which
// keeps the shift bounded by the step.
func NewLine(theta float64, r int) Line {
	line := make(Line, 0, 2*r+1)
	if theta <= candidateAngle(1, 4) || theta > candidateAngle(3, 4) {
		t := math.Tan(theta)
		for l := -r; l <= r; l++ {
			line = append(line, Offset{DX: -int(math.Round(float64(l) * t)), DY: l})
		}
		return line
	}
	cot := math.Cos(theta) / math.Sin(theta)
	for l := -r; l <= r; l++ {
		line = append(line, Offset{DX: l, DY: -int(math.Round(float64(l) * cot))})
	}
	return line
}

// Lines rasterizes the sampling lines of all n candidate angles for radius r.
func Lines(n, r int) []Line {
	lines := make([]Line, n)
	for k := range lines {
		lines[k] = NewLine(candidateAngle(k, n), r)
	}
	return lines
}

// Magnitude estimates how strongly brightness changes along line within w.
//
// Missing samples are skipped. Each pair of consecutive remaining samples
// contributes its brightness difference divided by the distance between the
// two positions; the result is the absolute mean of those contributions. A
// line with fewer than two samples has no estimate and returns +Inf.
func Magnitude(w *Window, line Line) float64 {
	var (
		sum    float64
		pairs  int
		prev   Offset
		prevB  float64
		seeded bool
	)
	for _, o := range line {
		b, ok := w.At(o.DX, o.DY)
		if !ok {
			continue
		}
		if seeded {
			dist := math.Hypot(float64(o.DX-prev.DX), float64(o.DY-prev.DY))
			sum += math.Abs(float64(b)-prevB) / dist
			pairs++
		}
		prev, prevB, seeded = o, float64(b), true
	}
	if pairs == 0 {
		return math.Inf(1)
	}
	return math.Abs(sum / float64(pairs))
}
