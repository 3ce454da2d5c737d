package ratiotest

import (
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/lpcore/sparse"
)

// Engine runs the dual ratio test. It owns only ephemeral per-iteration
// buffers, sized once in Setup and reused; all solver state is borrowed
// through State on each call.
//
// Call sequence per iteration:
//
//	e.Clear()
//	e.PackRow(row, offset)            // once per row slice, plus JoinPack
//	e.ChoosePossible(st, workDelta)
//	err := e.ChooseFinal(st)
//	... caller applies pivot ...
//	e.UpdateFlip(st, flip, collect)
//	e.UpdateDual(st, theta)
type Engine struct {
	opts Options
	log  zerolog.Logger

	workSize int

	// packed pivot row
	packCount int
	packIndex []int
	packValue []float64

	// candidate working set and group boundaries
	workCount int
	workData  []candidate
	workGroup []int

	// snapshot + buffers for the independently ordered cross-check grouping
	fullData   []candidate
	sortedData []candidate
	altGroup   []int
	altCount   int

	workDelta float64
	workTheta float64
	workPivot int
	workAlpha float64

	divergences uint64
}

// NewEngine returns an Engine with the given options and a no-op logger.
func NewEngine(opts Options) *Engine {
	return &Engine{
		opts:      opts,
		log:       zerolog.Nop(),
		workPivot: -1,
	}
}

// SetLogger installs the diagnostics logger (cross-check divergence and
// stagnation reports). The default is zerolog.Nop().
func (e *Engine) SetLogger(log zerolog.Logger) { e.log = log }

// Setup sizes the per-iteration buffers for rows of up to size entries.
// Call once before the first iteration, or again after the problem grows.
func (e *Engine) Setup(size int) {
	e.workSize = size
	if cap(e.packIndex) < size {
		e.packIndex = make([]int, size)
		e.packValue = make([]float64, size)
		e.workData = make([]candidate, size)
		e.fullData = make([]candidate, 0, size)
		e.sortedData = make([]candidate, 0, size)
	}
	e.Clear()
}

// Clear resets the packed row and candidate set for the next iteration.
func (e *Engine) Clear() {
	e.packCount = 0
	e.workCount = 0
	e.workPivot = -1
	e.workAlpha = 0
	e.workTheta = 0
	e.workDelta = 0
}

// PackRow packs row into (index, value) pairs, shifting every index by
// offset. The offset lets logical rows (row_ep slices) pack into the
// combined column range behind the structural columns.
func (e *Engine) PackRow(row *sparse.Row, offset int) {
	for i := 0; i < row.Count; i++ {
		idx := row.Index[i]
		e.packIndex[e.packCount] = idx + offset
		e.packValue[e.packCount] = row.Values[idx]
		e.packCount++
	}
}

// JoinPack merges the candidate set of other (a parallel slice of the same
// pivot row) into this engine, keeping the tighter step bound. Used when
// the surrounding solver prices the row in slices.
func (e *Engine) JoinPack(other *Engine) {
	copy(e.workData[e.workCount:], other.workData[:other.workCount])
	e.workCount += other.workCount
	if other.workTheta < e.workTheta {
		e.workTheta = other.workTheta
	}
}

// ChoosePossible filters the packed row down to ratio-test candidates and
// initializes the step bound.
//
// A column i qualifies when its signed scaled magnitude
// alpha = packValue[i] * sourceOut * move[i] exceeds the
// degeneracy-adaptive tolerance Ta (see pivotTolerance). For each
// qualifying column the running step bound workTheta is tightened by its
// relaxed dual slack over alpha.
//
// workDelta is the signed total step the caller requires; its sign fixes
// the leaving direction for the whole iteration.
func (e *Engine) ChoosePossible(st *State, workDelta float64) {
	ta := pivotTolerance(st.UpdateCount)
	td := e.opts.DualFeasTol
	sourceOut := 1.0
	if workDelta < 0 {
		sourceOut = -1
	}

	e.workDelta = workDelta
	e.workTheta = math.Inf(1)
	e.workCount = 0
	for i := 0; i < e.packCount; i++ {
		col := e.packIndex[i]
		move := float64(st.Move[col])
		alpha := e.packValue[i] * sourceOut * move
		if alpha > ta {
			e.workData[e.workCount] = candidate{col: col, value: alpha}
			e.workCount++
			relax := st.Duals[col]*move + td
			if e.workTheta*alpha > relax {
				e.workTheta = relax / alpha
			}
		}
	}
}

// ChooseFinal selects the entering variable and the flip set via BFRT:
//
//  1. Coarse expansion: admit candidates under a geometrically growing
//     ratio threshold (×10 per round) until the admitted bound-flip range
//     covers |workDelta| — this bounds the exact grouping that follows.
//  2. Exact grouping into breakpoint buckets of increasing ratio
//     (buildWorkGroups), with an independently ordered cross-check
//     (buildWorkGroupsSorted) when Options.CrossCheck is set.
//  3. Breakpoint selection: walking buckets backwards, take the first
//     bucket holding a candidate above min(0.1·maxMagnitude, 1); inside it
//     the largest magnitude wins, permutation order breaking ties.
//  4. Flip set: every candidate in buckets strictly before the chosen one
//     is listed for a bound flip, sorted by column.
//
// After a nil return, Pivot/Alpha/Theta describe the chosen pivot and
// Flips the flip set. A row with no candidate — none above tolerance, or
// every breakpoint ratio past the grouping ceiling — yields Pivot()==-1,
// zero theta and an empty flip set (valid degenerate outcome).
// ErrStagnation reports a grouping that stopped making progress.
func (e *Engine) ChooseFinal(st *State) error {
	if e.workCount == 0 {
		// Degenerate row: nothing above tolerance. Zero step, no flips.
		e.workPivot = -1
		e.workAlpha = 0
		e.workTheta = 0

		return nil
	}

	// 1. Reduce by large-step BFRT: grow the admission threshold
	// geometrically until the admitted flip range covers the required step.
	fullCount := e.workCount
	e.workCount = 0
	totalChange := 0.0
	totalDelta := math.Abs(e.workDelta)
	selectTheta := 10*e.workTheta + 1e-7
	for {
		for i := e.workCount; i < fullCount; i++ {
			col := e.workData[i].col
			alpha := e.workData[i].value
			tight := float64(st.Move[col]) * st.Duals[col]
			if alpha*selectTheta >= tight {
				e.workData[e.workCount], e.workData[i] = e.workData[i], e.workData[e.workCount]
				e.workCount++
				totalChange += st.Range[col] * alpha
			}
		}
		selectTheta *= 10
		if totalChange >= totalDelta || e.workCount == fullCount {
			break
		}
	}

	// Snapshot the admitted set before grouping reorders it; the
	// cross-check consumes the snapshot.
	e.fullData = append(e.fullData[:0], e.workData[:e.workCount]...)
	e.altCount = e.workCount

	// 2. Exact breakpoint grouping.
	if err := e.buildWorkGroups(st); err != nil {
		return err
	}
	if e.opts.CrossCheck {
		e.buildWorkGroupsSorted(st)
	}

	// 3. Select the breakpoint with the numerically safest magnitude.
	breakIndex, breakGroup := chooseLargeAlpha(e.workData[:e.workCount], e.workGroup, st)
	if breakIndex < 0 {
		// Grouping admitted nothing: every breakpoint ratio lies past the
		// grouping ceiling. Same degenerate outcome as an empty row.
		e.workPivot = -1
		e.workAlpha = 0
		e.workTheta = 0
		e.workCount = 0

		return nil
	}

	sourceOut := 1.0
	if e.workDelta < 0 {
		sourceOut = -1
	}
	e.workPivot = e.workData[breakIndex].col
	e.workAlpha = e.workData[breakIndex].value * sourceOut * float64(st.Move[e.workPivot])
	if st.Duals[e.workPivot]*float64(st.Move[e.workPivot]) > 0 {
		e.workTheta = st.Duals[e.workPivot] / e.workAlpha
	} else {
		// Already dual feasible in this direction: degenerate zero step.
		e.workTheta = 0
	}

	if e.opts.CrossCheck {
		altIndex, _ := chooseLargeAlpha(e.sortedData[:e.altCount], e.altGroup, st)
		if altIndex >= 0 && e.sortedData[altIndex].col != e.workPivot {
			altCol := e.sortedData[altIndex].col
			altMove := float64(st.Move[altCol])
			altTheta := 0.0
			if st.Duals[altCol]*altMove > 0 {
				altTheta = st.Duals[altCol] / (e.sortedData[altIndex].value * sourceOut * altMove)
			}
			e.divergences++
			e.log.Warn().
				Int("pivot", e.workPivot).
				Int("altPivot", altCol).
				Float64("stepDiff", sparse.RelativeDiff(e.workTheta, altTheta)).
				Msg("ratiotest: grouping cross-check diverged; keeping primary pivot")
			e.reportWorkGroups(st)
		}
	}

	// 4. Flip set: everything strictly before the chosen bucket flips its
	// full bound range. The value field now carries the signed range change.
	flipEnd := e.workGroup[breakGroup]
	e.workCount = 0
	for i := 0; i < flipEnd; i++ {
		col := e.workData[i].col
		e.workData[e.workCount] = candidate{col: col, value: float64(st.Move[col]) * st.Range[col]}
		e.workCount++
	}
	if e.workTheta == 0 {
		e.workCount = 0
	}
	sort.Slice(e.workData[:e.workCount], func(i, j int) bool {
		return e.workData[i].col < e.workData[j].col
	})

	return nil
}

// Pivot returns the entering column chosen by ChooseFinal, or -1 when the
// row was degenerate.
func (e *Engine) Pivot() int { return e.workPivot }

// Alpha returns the signed scaled pivot magnitude of the entering column.
func (e *Engine) Alpha() float64 { return e.workAlpha }

// Theta returns the dual step length chosen by the ratio test.
func (e *Engine) Theta() float64 { return e.workTheta }

// Flips returns a copy of the bound-flip list as (column, signed range
// change) pairs, sorted by column.
func (e *Engine) Flips() []Flip {
	flips := make([]Flip, e.workCount)
	for i := 0; i < e.workCount; i++ {
		flips[i] = Flip{Col: e.workData[i].col, Change: e.workData[i].value}
	}

	return flips
}

// Divergences returns how many times the cross-check grouping disagreed
// with the primary one since the engine was created.
func (e *Engine) Divergences() uint64 { return e.divergences }

// Flip is one entry of the bound-flip list: the column to flip and the
// signed bound-range change it travels.
type Flip struct {
	Col    int
	Change float64
}
