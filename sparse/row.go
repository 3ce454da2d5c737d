package sparse

// Row is a sparse vector view: Count entries, their positions listed in
// Index, and the value of position j stored densely at Values[j].
//
// The layout mirrors how revised-simplex codes hold FTRAN/BTRAN results:
// the dense array is reused across iterations while Index/Count describe
// which entries are currently nonzero. A Row is a borrowed view — the
// solver owns the backing slices and may reuse them after the call that
// received the Row returns.
type Row struct {
	// Count is the number of live entries; only Index[:Count] is meaningful.
	Count int

	// Index lists the positions of the nonzero entries, in no particular order.
	Index []int

	// Values is the dense backing array, indexed by position (not by entry
	// number): the value of entry i is Values[Index[i]].
	Values []float64
}

// NewRow allocates a zeroed Row of the given dimension.
func NewRow(dim int) *Row {
	return &Row{
		Index:  make([]int, 0, dim),
		Values: make([]float64, dim),
	}
}

// Set records value v at position i, tracking i as a nonzero entry.
// Setting the same position twice double-counts it in Index; callers build
// rows position-by-position exactly once, as the solver does.
func (r *Row) Set(i int, v float64) {
	r.Values[i] = v
	r.Index = append(r.Index, i)
	r.Count++
}

// At returns the value stored at position i.
func (r *Row) At(i int) float64 { return r.Values[i] }

// Clear resets the row to empty without releasing the backing array.
func (r *Row) Clear() {
	for _, i := range r.Index[:r.Count] {
		r.Values[i] = 0
	}
	r.Index = r.Index[:0]
	r.Count = 0
}
