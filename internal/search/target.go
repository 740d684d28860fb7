package search

// Compiled-in search thresholds. These are properties of the algorithm,
// not configuration.
const (
	// tolerancePct defines the acceptance band just below the target:
	// a candidate in [target - 5%, target] is an exact hit.
	tolerancePct = 0.05
	// earlyStopPct defines how far above the target a best-so-far result
	// may land before further aggressiveness stops being worth the
	// quality loss.
	earlyStopPct = 0.10
	// gridAdvisoryPct defines the advisory closeness band in grid mode.
	// It affects logging only; the grid is never cut short.
	gridAdvisoryPct = 0.02
)

// TargetSpec carries the requested output size. The tolerance band is
// derived, never supplied.
type TargetSpec struct {
	Bytes int64
}

// NewTarget validates and wraps a target size in bytes.
func NewTarget(n int64) (TargetSpec, error) {
	if n <= 0 {
		return TargetSpec{}, ErrInvalidTarget
	}
	return TargetSpec{Bytes: n}, nil
}

// Tolerance returns the acceptance slack: 5% of the target.
func (t TargetSpec) Tolerance() int64 {
	return int64(float64(t.Bytes) * tolerancePct)
}

// LowerBound returns the bottom of the acceptance band. Sizes below it are
// still successes, but do not trigger the exact-hit shortcut.
func (t TargetSpec) LowerBound() int64 {
	return t.Bytes - t.Tolerance()
}

// EarlyStopBound returns the size above the target at which a best-so-far
// result is close enough to stop trying more aggressive transforms.
func (t TargetSpec) EarlyStopBound() int64 {
	return int64(float64(t.Bytes) * (1 + earlyStopPct))
}

// advisoryBound returns the bottom of the grid mode advisory band.
func (t TargetSpec) advisoryBound() int64 {
	return t.Bytes - int64(float64(t.Bytes)*gridAdvisoryPct)
}
