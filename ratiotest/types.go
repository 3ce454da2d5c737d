package ratiotest

import "errors"

// ErrStagnation is returned by Engine.ChooseFinal when the breakpoint
// grouping can make no progress: no candidate is admitted and the ratio
// threshold stops moving. This indicates a degenerate or ill-conditioned
// pivot row; the caller must decide whether to refactorize or abandon the
// iteration — the engine never retries internally.
var ErrStagnation = errors.New("ratiotest: breakpoint grouping stagnated")

// Movement direction of a nonbasic variable.
//
//	MoveUp   — variable may increase from its bound
//	MoveDown — variable may decrease from its bound
//	MoveNone — fixed, basic, or not yet resolved (free variables)
const (
	MoveDown int8 = -1
	MoveNone int8 = 0
	MoveUp   int8 = 1
)

// Nonbasic flag values in State.Flag.
const (
	FlagBasic    int8 = 0
	FlagNonbasic int8 = 1
)

// State bundles the solver-owned arrays the engine reads during one
// iteration. All slices are borrowed: the engine never resizes or retains
// them, and mutates only Duals (in UpdateDual) and, through caller
// callbacks, the bound bookkeeping behind UpdateFlip.
//
// Every slice is indexed by column over the combined structural+logical
// range, matching the tableau the packed row was taken from.
type State struct {
	// Move holds the nonbasic movement sign per column (MoveUp/MoveDown/MoveNone).
	Move []int8

	// Duals holds the current reduced costs (dual values) per column.
	Duals []float64

	// Range holds the bound range (upper-lower) per column; the distance a
	// bound flip travels.
	Range []float64

	// Flag marks columns as nonbasic (FlagNonbasic) or basic (FlagBasic).
	Flag []int8

	// Value holds the current nonbasic primal value per column, used when
	// accumulating the dual objective change.
	Value []float64

	// Lower and Upper are the working bounds per column; the free-variable
	// tracker scans them for doubly-infinite columns.
	Lower, Upper []float64

	// DevexWeight holds the devex reference-framework weight per column.
	DevexWeight []float64

	// Permutation is the fixed column permutation used for tie-breaks;
	// nil means identity. It must not change between iterations, or pivot
	// choice loses reproducibility.
	Permutation []int

	// CostScale scales dual objective contributions back to the unscaled
	// problem. Zero is treated as 1.
	CostScale float64

	// UpdateCount is the number of basis updates since the last
	// refactorization; it drives the degeneracy-adaptive pivot tolerance.
	UpdateCount int
}

// costScale returns the effective cost scale factor.
func (s *State) costScale() float64 {
	if s.CostScale == 0 {
		return 1
	}

	return s.CostScale
}

// permOf returns the tie-break rank of column c (identity when no
// permutation was supplied).
func (s *State) permOf(c int) int {
	if s.Permutation == nil {
		return c
	}

	return s.Permutation[c]
}

// Options configures an Engine.
//
// Fields:
//   - DualFeasTol — dual feasibility tolerance Td; slack below Td counts as
//     feasible. Default 1e-7.
//   - CrossCheck  — run the independently ordered grouping alongside the
//     primary one and count divergences. Costs one extra O(n log n) pass
//     per iteration. Default true.
type Options struct {
	DualFeasTol float64
	CrossCheck  bool
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		DualFeasTol: 1e-7,
		CrossCheck:  true,
	}
}

// candidate is one (column, scaled pivot magnitude) pair; during flip-set
// assembly the value field is reused for the signed bound-range change.
type candidate struct {
	col   int
	value float64
}

// pivotTolerance returns the degeneracy-adaptive threshold Ta: the more
// basis updates have accumulated since the last refactorization, the larger
// a pivot must be to remain trustworthy.
func pivotTolerance(updateCount int) float64 {
	switch {
	case updateCount < 10:
		return 1e-9
	case updateCount < 20:
		return 3e-8
	default:
		return 1e-6
	}
}
