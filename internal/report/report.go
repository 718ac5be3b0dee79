// Package report draws diagnostic plots of an engraving run: how the region
// orientations, the per-pixel directions and the shade levels are
// distributed.
package report

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/gogpu/engrave/internal/gradient"
	"github.com/gogpu/engrave/internal/shade"
)

// ErrNoRegions is returned when a summary has nothing to plot.
var ErrNoRegions = errors.New("report: no regions")

// Summary holds the distributions plotted by Write.
type Summary struct {
	Width, Height int
	Shades        int
	Directions    int
	Regions       int

	// ShadePixels[i] is the number of pixels quantized to shade i.
	ShadePixels []float64

	// FieldPixels[k] is the number of pixels whose direction is the k-th
	// candidate angle.
	FieldPixels []float64

	// regionAngles holds one point per region: X is the aggregated angle in
	// degrees, Y the region size in pixels.
	regionAngles plotter.XYs
}

// Summarize collects the distributions of one run.
func Summarize(regions []shade.Region, field *gradient.Field, shades, directions int) *Summary {
	s := &Summary{
		Width:        field.Width,
		Height:       field.Height,
		Shades:       shades,
		Directions:   directions,
		Regions:      len(regions),
		ShadePixels:  make([]float64, shades),
		FieldPixels:  make([]float64, directions),
		regionAngles: make(plotter.XYs, 0, len(regions)),
	}

	for _, r := range regions {
		if r.Shade >= 0 && r.Shade < shades {
			s.ShadePixels[r.Shade] += float64(r.Len())
		}
		s.regionAngles = append(s.regionAngles, plotter.XY{
			X: r.Angle * 180 / math.Pi,
			Y: float64(r.Len()),
		})
	}

	step := math.Pi / float64(directions)
	for _, a := range field.Angle {
		k := min(int(math.Round(a/step)), directions-1)
		s.FieldPixels[k]++
	}
	return s
}

// Paths returns the files Write produces for path: path itself for the
// region orientation histogram, then siblings with "_field" and "_shades"
// inserted before the extension.
func Paths(path string) []string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return []string{path, base + "_field" + ext, base + "_shades" + ext}
}

// Write renders the summary to the files listed by Paths(path). The format
// follows the extension (.png, .svg, .pdf, ...).
func (s *Summary) Write(path string) error {
	if s.Regions == 0 {
		return ErrNoRegions
	}
	files := Paths(path)

	orient, err := s.orientationPlot()
	if err != nil {
		return err
	}
	if err := orient.Save(8*vg.Inch, 4*vg.Inch, files[0]); err != nil {
		return fmt.Errorf("save orientation plot: %w", err)
	}

	field, err := s.fieldPlot()
	if err != nil {
		return err
	}
	if err := field.Save(8*vg.Inch, 4*vg.Inch, files[1]); err != nil {
		return fmt.Errorf("save field plot: %w", err)
	}

	shades, err := s.shadePlot()
	if err != nil {
		return err
	}
	if err := shades.Save(8*vg.Inch, 4*vg.Inch, files[2]); err != nil {
		return fmt.Errorf("save shade plot: %w", err)
	}
	return nil
}

func (s *Summary) orientationPlot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Region orientation (%d regions)", s.Regions)
	p.X.Label.Text = "Angle (deg)"
	p.Y.Label.Text = "Pixels"

	h, err := plotter.NewHistogram(s.regionAngles, s.Directions)
	if err != nil {
		return nil, fmt.Errorf("orientation histogram: %w", err)
	}
	p.Add(h)
	return p, nil
}

func (s *Summary) fieldPlot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Pixel direction (%dx%d)", s.Width, s.Height)
	p.X.Label.Text = "Angle (deg)"
	p.Y.Label.Text = "Pixels"

	bars, err := plotter.NewBarChart(plotter.Values(s.FieldPixels), vg.Points(12))
	if err != nil {
		return nil, fmt.Errorf("field bar chart: %w", err)
	}
	p.Add(bars)

	names := make([]string, s.Directions)
	for k, a := range gradient.Angles(s.Directions) {
		names[k] = fmt.Sprintf("%.0f", a*180/math.Pi)
	}
	p.NominalX(names...)
	return p, nil
}

func (s *Summary) shadePlot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Shade coverage"
	p.X.Label.Text = "Shade index"
	p.Y.Label.Text = "Pixels"

	bars, err := plotter.NewBarChart(plotter.Values(s.ShadePixels), vg.Points(12))
	if err != nil {
		return nil, fmt.Errorf("shade bar chart: %w", err)
	}
	p.Add(bars)

	names := make([]string, s.Shades)
	for i := range names {
		names[i] = fmt.Sprint(i)
	}
	p.NominalX(names...)
	return p, nil
}
