// Package codec provides the lossy transform operations consumed by the
// target-size search: structural cleanup, whole-document recompression, and
// rasterize-and-repack. Transforms report failure as typed return values;
// they never panic into the caller.
package codec

// System defines the transform operations available to the search controller.
type System interface {
	// Cleanup rewrites the document with structural optimization only:
	// garbage collection, stream deflation, and resource deduplication.
	Cleanup(in, out string) error
	// Recompress rewrites the whole document with lossy recompression at
	// the given quality factor (1-100).
	Recompress(in, out string, quality int) error
	// RasterizeAndRepack renders every page, downscales to maxWidth while
	// preserving aspect ratio, and repacks the pages as JPEG images at the
	// given quality. Reports success as a flag per its own contract.
	RasterizeAndRepack(in, out string, maxWidth, quality int) (bool, error)
	// PageCount returns the number of pages in the document.
	PageCount(path string) (int, error)
	// Close releases the underlying render engine.
	Close() error
}
