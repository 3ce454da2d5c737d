package cutpool

import (
	"errors"
	"math"

	"github.com/rs/zerolog"
)

// Sentinel errors returned by the pool's public API. Tests match them with
// errors.Is; the pool never panics on user-triggered conditions.
var (
	// ErrLengthMismatch is returned when index and value slices differ in length.
	ErrLengthMismatch = errors.New("cutpool: index and value lengths differ")

	// ErrColumnRange is returned when a coefficient column index is outside
	// the pool's column range.
	ErrColumnRange = errors.New("cutpool: column index out of range")

	// ErrNonFinite is returned when a coefficient or right-hand side is NaN or ±Inf.
	ErrNonFinite = errors.New("cutpool: non-finite coefficient")

	// ErrEmptyCut is returned when a cut has no nonzero coefficient left
	// after normalization.
	ErrEmptyCut = errors.New("cutpool: cut has empty support")

	// ErrDimensionMismatch is returned by Separate when the trial solution
	// does not span the pool's column range.
	ErrDimensionMismatch = errors.New("cutpool: trial solution dimension mismatch")
)

// Defaults (single source of truth).
const (
	// DefaultAgeLimit is the inactive age beyond which a cut becomes
	// eviction-eligible.
	DefaultAgeLimit = 30

	// DefaultDuplicateThreshold is the cosine-similarity threshold above
	// which two cuts with identical support are treated as duplicates.
	DefaultDuplicateThreshold = 1 - 1e-6
)

// Propagation is the observer a domain-propagation context registers to
// stay consistent with the pool. Observers hold per-cut propagation state
// keyed by cut id; both callbacks tell them to drop it.
type Propagation interface {
	// CutRemovedFromLP fires when a cut leaves the working LP basis.
	CutRemovedFromLP(cut int)

	// CutEvicted fires just before the pool frees a cut's row slot; the
	// cut's row data is still readable during the callback.
	CutEvicted(cut int)
}

// Domain answers bound queries during separation. A tightened bound clamps
// the trial value of its column before the violation is computed. The pool
// never mutates a Domain.
type Domain interface {
	// ColBounds returns the current (possibly tightened) bounds of col.
	ColBounds(col int) (lower, upper float64)
}

// CutSet is the compact row-major result of Separate, shaped for direct
// injection into an LP relaxation: per-cut ids, concatenated sparse rows
// as (start offsets, column indices, values), and per-cut bounds.
type CutSet struct {
	Indices []int     // pool ids of the included cuts
	Start   []int     // len NumCuts()+1; row i spans Start[i]:Start[i+1]
	Index   []int     // concatenated column indices
	Value   []float64 // concatenated coefficients
	Lower   []float64 // per-cut lower bound (always -Inf: cuts are ≤ rows)
	Upper   []float64 // per-cut upper bound (the rhs)
}

// NumCuts returns the number of cuts in the set.
func (cs *CutSet) NumCuts() int { return len(cs.Indices) }

// Empty reports whether the set holds no cuts.
func (cs *CutSet) Empty() bool { return len(cs.Indices) == 0 }

// Resize shapes the bound and offset slices for the current Indices and a
// total of nnz nonzeros, filling Lower with -Inf.
func (cs *CutSet) Resize(nnz int) {
	ncuts := cs.NumCuts()
	cs.Lower = grow(cs.Lower, ncuts)
	for i := range cs.Lower {
		cs.Lower[i] = math.Inf(-1)
	}
	cs.Upper = grow(cs.Upper, ncuts)
	cs.Start = grow(cs.Start, ncuts+1)
	cs.Index = grow(cs.Index, nnz)
	cs.Value = grow(cs.Value, nnz)
}

// Clear empties the set without releasing backing storage.
func (cs *CutSet) Clear() {
	cs.Indices = cs.Indices[:0]
	cs.Start = cs.Start[:0]
	cs.Index = cs.Index[:0]
	cs.Value = cs.Value[:0]
	cs.Lower = cs.Lower[:0]
	cs.Upper = cs.Upper[:0]
}

// grow returns s resized to n, reusing capacity when possible.
func grow[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}

	return s[:n]
}

// Option configures a Pool at construction.
type Option func(*Pool)

// WithDuplicateThreshold overrides the cosine-similarity threshold for
// duplicate rejection. Panics if t is not in (0, 1] (programmer error).
func WithDuplicateThreshold(t float64) Option {
	if t <= 0 || t > 1 {
		panic("cutpool: WithDuplicateThreshold: t must be in (0, 1]")
	}

	return func(p *Pool) { p.dupThreshold = t }
}

// WithLogger installs the diagnostics logger; default zerolog.Nop().
func WithLogger(log zerolog.Logger) Option {
	return func(p *Pool) { p.log = log }
}
