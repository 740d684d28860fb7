// Package search implements constrained search over a space of lossy
// transforms: reduce a document to at or below a target size while giving
// up as little quality as possible.
package search

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/JaimeStill/condense/internal/catalog"
	"github.com/JaimeStill/condense/pkg/artifact"
	"github.com/JaimeStill/condense/pkg/codec"
	"github.com/JaimeStill/condense/pkg/formatting"
)

// Controller drives the iterate-measure-compare-decide loop for both search
// modes. Trials are strictly sequential: each stopping decision depends on
// the just-measured candidate size.
type Controller struct {
	codec  codec.System
	ws     *artifact.Workspace
	logger *slog.Logger
}

// New creates a Controller. The workspace scopes every candidate the
// controller creates; each search call discards its leftovers before
// returning, on success and failure alike.
func New(c codec.System, ws *artifact.Workspace, logger *slog.Logger) *Controller {
	return &Controller{
		codec:  c,
		ws:     ws,
		logger: logger.With("system", "search"),
	}
}

// best is the controller-local accumulator threaded through the strategy
// loop: the smallest candidate seen so far.
type best struct {
	path string
	size int64
}

// SearchStrategy iterates the strategy catalog in order of increasing
// aggressiveness. A candidate inside the tolerance band is accepted
// immediately; otherwise the smallest achieved candidate is promoted after
// exhaustion as a best-effort fallback. Acceptance always compares against
// best-so-far, so a catalog whose ordering assumption does not hold
// degrades to best-effort instead of promoting a worse candidate.
func (c *Controller) SearchStrategy(input string, target TargetSpec) (*Result, error) {
	inputSize, err := artifact.Size(input)
	if err != nil {
		return nil, err
	}

	if res := c.fastPath(input, inputSize, target); res != nil {
		return res, nil
	}

	defer c.ws.DiscardAll()

	b := best{}
	trials := 0
	winner := ""

	for _, entry := range catalog.Strategies(c.codec) {
		trials++

		out := c.ws.Scratch(entry.Name)
		ok, err := entry.Run(input, out)
		if err != nil || !ok {
			c.logger.Warn("trial failed", "strategy", entry.Name, "error", err)
			c.ws.Discard(out)
			continue
		}

		size, err := artifact.Size(out)
		if err != nil {
			c.logger.Warn("trial unmeasurable", "strategy", entry.Name, "error", err)
			c.ws.Discard(out)
			continue
		}

		c.logger.Info(
			"trial complete",
			"strategy", entry.Name,
			"size", formatting.FormatMegabytes(size),
			"target", formatting.FormatMegabytes(target.Bytes),
		)

		switch {
		case size <= target.Bytes && size >= target.LowerBound():
			// exact hit
			final, err := c.ws.Promote(out, c.finalName(target))
			if err != nil {
				return nil, err
			}

			c.logger.Info("target hit", "strategy", entry.Name, "size", formatting.FormatMegabytes(size))
			return &Result{
				Path:         final,
				OriginalSize: inputSize,
				FinalSize:    size,
				TargetMet:    true,
				Trials:       trials,
				Winner:       entry.Name,
			}, nil

		case b.path == "" || size < b.size:
			if b.path != "" {
				c.ws.Discard(b.path)
			}
			b = best{path: out, size: size}
			winner = entry.Name
			c.logger.Info("new best result", "strategy", entry.Name, "size", formatting.FormatMegabytes(size))

			if size <= target.EarlyStopBound() {
				c.logger.Info("close enough to target, stopping", "size", formatting.FormatMegabytes(size))
				return c.promoteBest(b, winner, inputSize, target, trials)
			}

		default:
			c.ws.Discard(out)
		}
	}

	if b.path == "" {
		return nil, fmt.Errorf("%w: all strategies failed", ErrNoViableResult)
	}

	return c.promoteBest(b, winner, inputSize, target, trials)
}

// SearchGrid evaluates every grid parameterization and keeps the largest
// candidate not exceeding the target, maximizing retained quality. Ties keep
// the first candidate in grid order. Unlike strategy mode there is no
// best-effort fallback: when nothing lands at or below the target the call
// fails and every candidate is deleted. The asymmetry mirrors the observed
// behavior of the search and is deliberate.
func (c *Controller) SearchGrid(input string, target TargetSpec) (*Result, error) {
	inputSize, err := artifact.Size(input)
	if err != nil {
		return nil, err
	}

	if res := c.fastPath(input, inputSize, target); res != nil {
		return res, nil
	}

	defer c.ws.DiscardAll()

	b := best{}
	trials := 0
	winner := ""

	for _, point := range catalog.Grid() {
		trials++

		out := c.ws.Scratch(point.Label())
		ok, err := c.codec.RasterizeAndRepack(input, out, point.MaxWidth, point.Quality)
		if err != nil || !ok {
			c.logger.Warn("trial failed", "params", point.Label(), "error", err)
			c.ws.Discard(out)
			continue
		}

		size, err := artifact.Size(out)
		if err != nil {
			c.logger.Warn("trial unmeasurable", "params", point.Label(), "error", err)
			c.ws.Discard(out)
			continue
		}

		c.logger.Info(
			"trial complete",
			"params", point.Label(),
			"size", formatting.FormatMegabytes(size),
			"target", formatting.FormatMegabytes(target.Bytes),
		)

		// strictly greater keeps the first candidate on equal sizes
		if size <= target.Bytes && size > b.size {
			b = best{path: out, size: size}
			winner = point.Label()
			c.logger.Info("new best result", "params", point.Label(), "size", formatting.FormatMegabytes(size))

			// advisory only: the grid is not monotonic, so keep going
			if size >= target.advisoryBound() {
				c.logger.Info("within advisory band of target", "params", point.Label())
			}
		}
	}

	if b.path == "" {
		return nil, fmt.Errorf("%w: no candidate at or below target", ErrNoViableResult)
	}

	final, err := c.ws.Promote(b.path, c.finalName(target))
	if err != nil {
		return nil, err
	}

	return &Result{
		Path:         final,
		OriginalSize: inputSize,
		FinalSize:    b.size,
		TargetMet:    true,
		Trials:       trials,
		Winner:       winner,
	}, nil
}

// fastPath returns the no-op result when the input is already within the
// target. It must run before any transform.
func (c *Controller) fastPath(input string, inputSize int64, target TargetSpec) *Result {
	if inputSize > target.Bytes {
		return nil
	}

	c.logger.Info(
		"input already within target",
		"size", formatting.FormatMegabytes(inputSize),
		"target", formatting.FormatMegabytes(target.Bytes),
	)

	return &Result{
		Path:         input,
		OriginalSize: inputSize,
		FinalSize:    inputSize,
		TargetMet:    true,
		NoOp:         true,
	}
}

func (c *Controller) promoteBest(b best, winner string, inputSize int64, target TargetSpec, trials int) (*Result, error) {
	final, err := c.ws.Promote(b.path, c.finalName(target))
	if err != nil {
		return nil, err
	}

	met := b.size <= target.Bytes
	if !met {
		c.logger.Warn(
			"target not met, keeping best effort",
			"size", formatting.FormatMegabytes(b.size),
			"target", formatting.FormatMegabytes(target.Bytes),
		)
	}

	return &Result{
		Path:         final,
		OriginalSize: inputSize,
		FinalSize:    b.size,
		TargetMet:    met,
		Trials:       trials,
		Winner:       winner,
	}, nil
}

func (c *Controller) finalName(target TargetSpec) string {
	mb := strconv.FormatFloat(formatting.Megabytes(target.Bytes), 'f', -1, 64)
	return fmt.Sprintf("compressed_%sMB_%s.pdf", mb, c.ws.Stamp())
}
