package catalog

import "fmt"

// GridPoint is one (max raster width, quality) parameterization of the
// rasterize-and-repack transform.
type GridPoint struct {
	MaxWidth int
	Quality  int
}

// Label returns a deterministic name for candidate files and reporting.
func (p GridPoint) Label() string {
	return fmt.Sprintf("w%d_q%d", p.MaxWidth, p.Quality)
}

// Grid returns the fixed parameter table for exhaustive search. The table is
// not monotonic in resulting size, so callers must evaluate every entry and
// select afterward rather than stopping early.
func Grid() []GridPoint {
	return []GridPoint{
		{2000, 100},
		{2000, 95},
		{1900, 90},
		{1800, 85},
		{1700, 80},
		{1600, 95},
		{1600, 90},
		{1600, 85},
		{1600, 80},
		{1500, 95},
		{1500, 90},
		{1500, 85},
		{1500, 80},
		{1400, 95},
		{1400, 90},
		{1400, 85},
		{1400, 80},
		{1300, 85},
		{1300, 80},
		{1200, 90},
		{1200, 85},
		{1200, 80},
		{1200, 75},
		{1100, 85},
		{1100, 80},
		{1000, 90},
		{1000, 85},
		{1000, 80},
		{1000, 75},
		{900, 85},
		{900, 80},
		{800, 85},
		{800, 80},
		{700, 80},
		{600, 75},
		{500, 70},
	}
}
