package search

// Result describes the promoted output of one search invocation.
type Result struct {
	// Path is the final output path. In the no-op fast path it is the
	// unmodified input path.
	Path string
	// OriginalSize and FinalSize are measured in bytes.
	OriginalSize int64
	FinalSize    int64
	// TargetMet reports whether FinalSize landed at or below the target.
	// A false value is not an error: the best-effort result still stands.
	TargetMet bool
	// NoOp reports that the input was already within the target and no
	// transform ran.
	NoOp bool
	// Trials is the number of transform invocations attempted.
	Trials int
	// Winner names the strategy or grid parameterization that produced
	// the final output. Empty for the no-op fast path.
	Winner string
}
