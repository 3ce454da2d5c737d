package ratiotest

import (
	"math"
	"sort"

	"github.com/rs/zerolog"
)

// Thresholds bounding the exact grouping loop. A select ratio past
// thetaCeiling means every remaining breakpoint is unreachable; a remain
// ratio resets to remainInit each round so stagnation is detectable.
const (
	thetaCeiling = 1e18
	remainInit   = 1e100
)

// buildWorkGroups partitions the admitted candidates into ordered buckets
// of increasing breakpoint ratio. Each round admits every candidate whose
// ratio dual/magnitude lies within the current threshold, records the
// bucket boundary, then advances the threshold to the minimal excluded
// ratio (remainTheta). The loop ends once the accumulated bound-flip range
// covers the required step, or every candidate is admitted.
//
// Stagnation — no admission and no threshold movement in a full round —
// would loop forever on an ill-conditioned row; it is detected and
// reported as ErrStagnation instead.
func (e *Engine) buildWorkGroups(st *State) error {
	td := e.opts.DualFeasTol
	fullCount := e.workCount
	e.workCount = 0
	totalChange := 1e-12
	selectTheta := e.workTheta
	totalDelta := math.Abs(e.workDelta)
	e.workGroup = append(e.workGroup[:0], 0)

	prevCount := e.workCount
	prevRemain := remainInit
	prevSelect := selectTheta
	for selectTheta < thetaCeiling {
		remainTheta := remainInit
		for i := e.workCount; i < fullCount; i++ {
			col := e.workData[i].col
			value := e.workData[i].value
			dual := float64(st.Move[col]) * st.Duals[col]
			if dual <= selectTheta*value {
				// Breakpoint reached: admit into the current bucket.
				e.workData[e.workCount], e.workData[i] = e.workData[i], e.workData[e.workCount]
				e.workCount++
				totalChange += value * st.Range[col]
			} else if dual+td < remainTheta*value {
				remainTheta = (dual + td) / value
			}
		}
		e.workGroup = append(e.workGroup, e.workCount)

		selectTheta = remainTheta
		if e.workCount == prevCount && prevSelect == selectTheta && prevRemain == remainTheta {
			e.log.Error().
				Int("candidates", fullCount).
				Int("admitted", e.workCount).
				Float64("selectTheta", selectTheta).
				Msg("ratiotest: no progress in breakpoint grouping")

			return ErrStagnation
		}
		prevCount, prevRemain, prevSelect = e.workCount, remainTheta, selectTheta

		if totalChange >= totalDelta || e.workCount == fullCount {
			break
		}
	}

	return nil
}

// buildWorkGroupsSorted rebuilds the same bucket structure from a ratio-
// sorted ordering of the admitted snapshot. It exists purely to cross-check
// buildWorkGroups: the two derive bucket boundaries by different routes and
// must agree on the chosen pivot. Divergence is surfaced, never corrected.
func (e *Engine) buildWorkGroupsSorted(st *State) {
	td := e.opts.DualFeasTol
	totalChange := 1e-12
	selectTheta := e.workTheta
	totalDelta := math.Abs(e.workDelta)

	type ratioEntry struct {
		idx   int
		ratio float64
	}
	entries := make([]ratioEntry, 0, e.altCount)
	for i := 0; i < e.altCount; i++ {
		col := e.fullData[i].col
		value := e.fullData[i].value
		ratio := float64(st.Move[col]) * st.Duals[col] / value
		if ratio < thetaCeiling {
			entries = append(entries, ratioEntry{idx: i, ratio: ratio})
		}
	}
	// Ascending ratio; ties resolve on snapshot position for determinism.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].ratio != entries[j].ratio {
			return entries[i].ratio < entries[j].ratio
		}

		return entries[i].idx < entries[j].idx
	})

	e.sortedData = e.sortedData[:0]
	e.altCount = 0
	e.altGroup = append(e.altGroup[:0], 0)
	firstInGroup := 0
	for _, en := range entries {
		col := e.fullData[en.idx].col
		value := e.fullData[en.idx].value
		dual := float64(st.Move[col]) * st.Duals[col]
		if dual > selectTheta*value {
			// Breakpoint opens the next bucket.
			e.altGroup = append(e.altGroup, e.altCount)
			firstInGroup = e.altCount
			selectTheta = (dual + td) / value
			if totalChange >= totalDelta {
				break
			}
		}
		e.sortedData = append(e.sortedData, candidate{col: col, value: value})
		totalChange += value * st.Range[col]
		e.altCount++
	}
	if e.altCount > firstInGroup {
		e.altGroup = append(e.altGroup, e.altCount)
	}
}

// chooseLargeAlpha picks the breakpoint: scanning buckets from the last
// admitted backwards, it returns the first bucket containing a candidate
// whose magnitude exceeds min(0.1·maxMagnitude, 1), and within that bucket
// the index of the candidate of maximal magnitude — ties break on the
// smaller fixed permutation rank, so the choice is independent of storage
// order. Returns (-1, -1) when no bucket qualifies.
func chooseLargeAlpha(data []candidate, group []int, st *State) (breakIndex, breakGroup int) {
	finalCompare := 0.0
	for i := range data {
		if data[i].value > finalCompare {
			finalCompare = data[i].value
		}
	}
	finalCompare = math.Min(0.1*finalCompare, 1.0)

	breakIndex, breakGroup = -1, -1
	for g := len(group) - 2; g >= 0; g-- {
		dMax := 0.0
		iMax := -1
		for i := group[g]; i < group[g+1]; i++ {
			if dMax < data[i].value {
				dMax = data[i].value
				iMax = i
			} else if dMax == data[i].value && iMax >= 0 &&
				st.permOf(data[i].col) < st.permOf(data[iMax].col) {
				iMax = i
			}
		}
		if iMax >= 0 && data[iMax].value > finalCompare {
			return iMax, g
		}
	}

	return breakIndex, breakGroup
}

// reportWorkGroups dumps both groupings at debug level after a cross-check
// divergence, mirroring the candidate table a human would want to diff.
func (e *Engine) reportWorkGroups(st *State) {
	if e.log.GetLevel() > zerolog.DebugLevel {
		return // only assemble the dump when debug is on
	}
	dump := func(name string, data []candidate, group []int) {
		totalChange := 1e-12
		arr := zerolog.Arr()
		for i := range data {
			col := data[i].col
			dual := float64(st.Move[col]) * st.Duals[col]
			totalChange += data[i].value * st.Range[col]
			arr = arr.Dict(zerolog.Dict().
				Int("col", col).
				Float64("dual", dual).
				Float64("value", data[i].value).
				Float64("ratio", dual/data[i].value).
				Float64("change", totalChange))
		}
		e.log.Debug().
			Float64("totalDelta", math.Abs(e.workDelta)).
			Ints("group", group).
			Array("workData", arr).
			Msg("ratiotest: " + name + " grouping")
	}
	dump("primary", e.workData[:e.workCount], e.workGroup)
	dump("sorted", e.sortedData[:e.altCount], e.altGroup)
}
