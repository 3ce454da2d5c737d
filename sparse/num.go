package sparse

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Inf is the value above which a bound is treated as infinite throughout
// the core. Solver data often carries large finite placeholders instead of
// IEEE infinities, so the predicate is a threshold, not an exact match.
const Inf = 1e200

// IsInf reports whether v represents an infinite (unbounded) value.
func IsInf(v float64) bool { return v >= Inf }

// Norm2 returns the Euclidean norm of values.
func Norm2(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	return floats.Norm(values, 2)
}

// RelativeDiff returns |v0-v1| / max(|v0|, |v1|, 1), the scale-aware
// difference used by tolerance comparisons.
func RelativeDiff(v0, v1 float64) float64 {
	den := math.Max(math.Abs(v0), math.Abs(v1))
	if den < 1 {
		den = 1
	}

	return math.Abs(v0-v1) / den
}
