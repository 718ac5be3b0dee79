package shade

// Coord is a pixel coordinate.
type Coord struct {
	X, Y int
}

// Region is a maximal 4-connected set of pixels sharing one shade index.
type Region struct {
	// Coords lists the member pixels in discovery order: the seed first,
	// then breadth-first by wavefront.
	Coords []Coord

	// Shade is the common shade index of all members.
	Shade int

	// Angle is the hatching orientation in [0, π), set once by the
	// direction aggregation stage.
	Angle float64
}

// Len returns the number of pixels in the region.
func (r *Region) Len() int {
	return len(r.Coords)
}

// neighbors4 lists the 4-connected offsets in the order they are visited.
var neighbors4 = [4]Coord{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Segment partitions g into shade regions.
//
// Pixels are scanned row by row; every unclaimed pixel seeds a region that is
// grown one wavefront at a time: all unclaimed 4-neighbors of the previous
// wavefront with a matching shade are claimed and appended, until a
// wavefront adds nothing. A pixel is claimed as soon as it is discovered, so
// every pixel is appended exactly once and the regions cover g exactly.
func Segment(g *Grid) []Region {
	if g.Width <= 0 || g.Height <= 0 {
		return nil
	}

	claimed := make([]bool, g.Width*g.Height)
	var regions []Region

	for y := range g.Height {
		for x := range g.Width {
			if claimed[y*g.Width+x] {
				continue
			}
			regions = append(regions, grow(g, claimed, x, y))
		}
	}
	return regions
}

// grow builds the region seeded at (x, y).
func grow(g *Grid, claimed []bool, x, y int) Region {
	shade := g.At(x, y)
	r := Region{
		Coords: []Coord{{x, y}},
		Shade:  int(shade),
	}
	claimed[y*g.Width+x] = true

	for start := 0; start < len(r.Coords); {
		end := len(r.Coords)
		for i := start; i < end; i++ {
			c := r.Coords[i]
			for _, d := range neighbors4 {
				nx, ny := c.X+d.X, c.Y+d.Y
				if nx < 0 || ny < 0 || nx >= g.Width || ny >= g.Height {
					continue
				}
				idx := ny*g.Width + nx
				if claimed[idx] || g.Index[idx] != shade {
					continue
				}
				claimed[idx] = true
				r.Coords = append(r.Coords, Coord{nx, ny})
			}
		}
		start = end
	}
	return r
}
