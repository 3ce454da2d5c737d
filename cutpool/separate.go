package cutpool

// Separate scans every live cut for violation by the trial point and
// assembles the violated ones into out, ready for LP injection. LP-resident
// cuts are scanned like any other; a caller that must not re-inject them
// filters on Age. The violation of a cut is
//
//	row · x̃  −  rhs
//
// where x̃ is the trial solution with each coordinate clamped to the
// (possibly tightened) bounds dom reports; a cut joins the output when its
// violation exceeds feasTol.
//
// Pure query: no pool state changes, dom is never mutated, and out is
// cleared before assembly. dom may be nil (no clamping).
func (p *Pool) Separate(sol []float64, dom Domain, feasTol float64, out *CutSet) error {
	if len(sol) < p.matrix.NumCols() {
		return ErrDimensionMismatch
	}

	out.Clear()
	nnz := 0
	for id := 0; id < p.matrix.NumRows(); id++ {
		if p.matrix.Deleted(id) {
			continue
		}
		inds, vals := p.matrix.Row(id)
		activity := 0.0
		for k, col := range inds {
			x := sol[col]
			if dom != nil {
				lo, hi := dom.ColBounds(col)
				if x < lo {
					x = lo
				} else if x > hi {
					x = hi
				}
			}
			activity += vals[k] * x
		}
		if activity-p.rhs[id] > feasTol {
			out.Indices = append(out.Indices, id)
			nnz += len(inds)
		}
	}

	// Second pass packs the selected rows row-major.
	out.Resize(nnz)
	offset := 0
	for i, id := range out.Indices {
		out.Start[i] = offset
		inds, vals := p.matrix.Row(id)
		copy(out.Index[offset:], inds)
		copy(out.Value[offset:], vals)
		offset += len(inds)
		out.Upper[i] = p.rhs[id]
	}
	out.Start[out.NumCuts()] = offset

	return nil
}
