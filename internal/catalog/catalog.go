// Package catalog enumerates the lossy transforms available to the
// target-size search, in a fixed deterministic order.
package catalog

import (
	"fmt"

	"github.com/JaimeStill/condense/pkg/codec"
)

// Entry binds a named transform to one parameter tuple. Run writes the
// candidate to out and reports success; a false flag or an error both mean
// the trial failed and produced no usable artifact.
type Entry struct {
	Name string
	Run  func(in, out string) (bool, error)
}

// Strategies returns the ordered strategy list, least to most aggressive.
// The controller relies on this ordering to stop as soon as a result lands
// close enough to the target from above.
func Strategies(c codec.System) []Entry {
	return []Entry{
		cleanup(c),
		recompress(c, 95),
		recompress(c, 90),
		recompress(c, 85),
		recompress(c, 80),
		raster(c, 1600, 95),
		recompress(c, 75),
		raster(c, 1400, 90),
		recompress(c, 70),
		raster(c, 1200, 85),
		recompress(c, 60),
		recompress(c, 50),
		raster(c, 1000, 80),
		recompress(c, 40),
		recompress(c, 30),
	}
}

func cleanup(c codec.System) Entry {
	return Entry{
		Name: "cleanup",
		Run: func(in, out string) (bool, error) {
			if err := c.Cleanup(in, out); err != nil {
				return false, err
			}
			return true, nil
		},
	}
}

func recompress(c codec.System, quality int) Entry {
	return Entry{
		Name: fmt.Sprintf("recompress-q%d", quality),
		Run: func(in, out string) (bool, error) {
			if err := c.Recompress(in, out, quality); err != nil {
				return false, err
			}
			return true, nil
		},
	}
}

func raster(c codec.System, maxWidth, quality int) Entry {
	return Entry{
		Name: fmt.Sprintf("raster-w%d-q%d", maxWidth, quality),
		Run: func(in, out string) (bool, error) {
			return c.RasterizeAndRepack(in, out, maxWidth, quality)
		},
	}
}
