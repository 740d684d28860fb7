package codec

import (
	"fmt"
	"image"
	"image/jpeg"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/klippa-app/go-pdfium/single_threaded"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/image/draw"
)

type engine struct {
	pool     pdfium.Pool
	instance pdfium.Pdfium
	dpi      int
	conf     *model.Configuration
	logger   *slog.Logger
}

// New creates a codec backed by pdfium for page rendering and pdfcpu for
// structural optimization and repacking. The caller must Close the codec
// when done.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	pool := single_threaded.Init(single_threaded.Config{})

	instance, err := pool.GetInstance(cfg.RenderTimeoutDuration())
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("acquire pdfium instance: %w", err)
	}

	return &engine{
		pool:     pool,
		instance: instance,
		dpi:      cfg.DPI,
		conf:     model.NewDefaultConfiguration(),
		logger:   logger.With("system", "codec"),
	}, nil
}

func (e *engine) Close() error {
	if err := e.instance.Close(); err != nil {
		return fmt.Errorf("close pdfium instance: %w", err)
	}
	return e.pool.Close()
}

func (e *engine) Cleanup(in, out string) error {
	if err := api.OptimizeFile(in, out, e.conf); err != nil {
		return fmt.Errorf("optimize %s: %w", in, err)
	}
	return nil
}

// Recompress renders at full resolution: pdfcpu exposes no public per-stream
// re-encode, so the quality knob is applied during repacking instead.
func (e *engine) Recompress(in, out string, quality int) error {
	if quality < 1 || quality > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidQuality, quality)
	}
	return e.repack(in, out, 0, quality)
}

func (e *engine) RasterizeAndRepack(in, out string, maxWidth, quality int) (bool, error) {
	if maxWidth <= 0 {
		return false, fmt.Errorf("%w: %d", ErrInvalidWidth, maxWidth)
	}
	if quality < 1 || quality > 100 {
		return false, fmt.Errorf("%w: %d", ErrInvalidQuality, quality)
	}

	if err := e.repack(in, out, maxWidth, quality); err != nil {
		return false, err
	}
	return true, nil
}

func (e *engine) PageCount(path string) (int, error) {
	count, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("page count %s: %w", path, err)
	}
	return count, nil
}

// repack renders every page to a JPEG at the engine DPI, downscaling to
// maxWidth when positive, and imports the page images into a fresh PDF.
func (e *engine) repack(in, out string, maxWidth, quality int) error {
	doc, err := e.instance.OpenDocument(&requests.OpenDocument{
		FilePath: &in,
	})
	if err != nil {
		return fmt.Errorf("open document %s: %w", in, err)
	}
	defer e.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	count, err := e.instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: doc.Document,
	})
	if err != nil {
		return fmt.Errorf("page count %s: %w", in, err)
	}
	if count.PageCount == 0 {
		return ErrNoPages
	}

	pageDir, err := os.MkdirTemp("", "condense-pages-")
	if err != nil {
		return fmt.Errorf("create page directory: %w", err)
	}
	defer os.RemoveAll(pageDir)

	pages := make([]string, 0, count.PageCount)
	for i := range count.PageCount {
		rendered, err := e.instance.RenderPageInDPI(&requests.RenderPageInDPI{
			DPI: e.dpi,
			Page: requests.Page{
				ByIndex: &requests.PageByIndex{
					Document: doc.Document,
					Index:    i,
				},
			},
		})
		if err != nil {
			return fmt.Errorf("render page %d: %w", i, err)
		}

		img := downscale(rendered.Result.Image, maxWidth)

		path := filepath.Join(pageDir, fmt.Sprintf("page_%04d.jpg", i))
		if err := writeJPEG(path, img, quality); err != nil {
			return fmt.Errorf("encode page %d: %w", i, err)
		}
		pages = append(pages, path)
	}

	if err := api.ImportImagesFile(pages, out, pdfcpu.DefaultImportConfig(), e.conf); err != nil {
		return fmt.Errorf("repack %s: %w", out, err)
	}

	e.logger.Debug(
		"document repacked",
		"pages", len(pages),
		"max_width", maxWidth,
		"quality", quality,
	)

	return nil
}

// downscale resizes img to maxWidth preserving aspect ratio. Images at or
// below maxWidth, or a non-positive maxWidth, pass through unchanged.
func downscale(img image.Image, maxWidth int) image.Image {
	bounds := img.Bounds()
	if maxWidth <= 0 || bounds.Dx() <= maxWidth {
		return img
	}

	ratio := float64(maxWidth) / float64(bounds.Dx())
	height := int(float64(bounds.Dy()) * ratio)

	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func writeJPEG(path string, img image.Image, quality int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: quality}); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
