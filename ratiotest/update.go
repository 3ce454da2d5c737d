package ratiotest

// UpdateDual applies the realized dual step theta to the borrowed dual
// values: every packed column's dual decreases by theta·packValue. The
// return value is the exact dual-objective change, accumulated from the
// nonbasic flags and the cost scale so the caller can keep an incremental
// objective without recomputation.
//
// After updating with the theta chosen by ChooseFinal, the entering
// column's dual slack is zero up to tolerance.
func (e *Engine) UpdateDual(st *State, theta float64) float64 {
	scale := st.costScale()
	change := 0.0
	for i := 0; i < e.packCount; i++ {
		col := e.packIndex[i]
		deltaDual := theta * e.packValue[i]
		st.Duals[col] -= deltaDual
		change += float64(st.Flag[col]) * (-st.Value[col] * deltaDual) * scale
	}

	return change
}

// UpdateFlip applies the flip set assembled by ChooseFinal. For each
// listed column it calls flipBound (caller-owned bound bookkeeping) and,
// when collect is non-nil, hands the column and its signed range change to
// the caller's row-delta accumulator so the reduced basic solution can be
// updated in one pass. Returns the dual-objective change of the flips.
func (e *Engine) UpdateFlip(st *State, flipBound func(col int), collect func(col int, change float64)) float64 {
	scale := st.costScale()
	change := 0.0
	for i := 0; i < e.workCount; i++ {
		col := e.workData[i].col
		delta := e.workData[i].value
		change += delta * st.Duals[col] * scale
		flipBound(col)
		if collect != nil {
			collect(col, delta)
		}
	}

	return change
}

// ComputeDevexWeight returns the approximate steepest-edge weight of the
// packed row: the sum of squares of (devex reference weight × packed
// value) over its nonbasic columns. Basic columns are skipped — their
// packed entries are leftovers of the leaving variable, not priceable.
// Pure query; no engine state changes.
func (e *Engine) ComputeDevexWeight(st *State) float64 {
	weight := 0.0
	for i := 0; i < e.packCount; i++ {
		col := e.packIndex[i]
		if st.Flag[col] == FlagBasic {
			continue
		}
		pv := st.DevexWeight[col] * e.packValue[i]
		if pv != 0 {
			weight += pv * pv
		}
	}

	return weight
}
