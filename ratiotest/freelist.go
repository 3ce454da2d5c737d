package ratiotest

import (
	"fmt"
	"math"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/lpcore/sparse"
)

// FreeTracker maintains the set of free columns: nonbasic variables
// unbounded on both sides. Free variables carry no movement sign of their
// own; each iteration projects them against the pivot row and assigns the
// sign that keeps the dual step feasible, once the projection is large
// enough to trust.
//
// A tracker is built fresh at the start of a phase (Rebuild), mutated as
// columns enter the basis (Remove), and its signs cleared when the phase
// ends (ClearMoves).
type FreeTracker struct {
	set *bitset.BitSet
}

// NewFreeTracker returns an empty tracker sized for dim columns.
func NewFreeTracker(dim int) *FreeTracker {
	return &FreeTracker{set: bitset.New(uint(dim))}
}

// Rebuild rescans all columns and tracks those that are nonbasic with both
// bounds infinite. Any previous contents are discarded.
func (f *FreeTracker) Rebuild(st *State) {
	f.set.ClearAll()
	for col := range st.Flag {
		if st.Flag[col] == FlagNonbasic &&
			sparse.IsInf(-st.Lower[col]) && sparse.IsInf(st.Upper[col]) {
			f.set.Set(uint(col))
		}
	}
}

// AssignMoves resolves the movement sign of each tracked free column
// against the current pivot row. dot must return the projection of the
// column onto the row (the solver's matrix holds the column data, so the
// product stays on its side of the boundary). Columns whose projection
// magnitude stays within the degeneracy-adaptive tolerance are left
// unresolved for a later iteration.
//
// workDelta fixes the entering direction, as in Engine.ChoosePossible.
// Panics if a tracked column is basic: that is caller bookkeeping gone
// wrong, not a runtime condition.
func (f *FreeTracker) AssignMoves(st *State, workDelta float64, dot func(col int) float64) {
	if f.set.None() {
		return
	}
	ta := pivotTolerance(st.UpdateCount)
	sourceOut := 1.0
	if workDelta < 0 {
		sourceOut = -1
	}
	for col, ok := f.set.NextSet(0); ok; col, ok = f.set.NextSet(col + 1) {
		if st.Flag[col] != FlagNonbasic {
			panic(fmt.Sprintf("ratiotest: free-tracked column %d is basic", col))
		}
		alpha := dot(int(col))
		if math.Abs(alpha) > ta {
			if alpha*sourceOut > 0 {
				st.Move[col] = MoveUp
			} else {
				st.Move[col] = MoveDown
			}
		}
	}
}

// ClearMoves resets the movement sign of every tracked column to neutral.
// Called when leaving a phase.
func (f *FreeTracker) ClearMoves(st *State) {
	for col, ok := f.set.NextSet(0); ok; col, ok = f.set.NextSet(col + 1) {
		st.Move[col] = MoveNone
	}
}

// Remove drops col from the tracked set (it became basic).
func (f *FreeTracker) Remove(col int) { f.set.Clear(uint(col)) }

// Contains reports whether col is currently tracked.
func (f *FreeTracker) Contains(col int) bool { return f.set.Test(uint(col)) }

// Len returns the number of tracked columns.
func (f *FreeTracker) Len() int { return int(f.set.Count()) }
