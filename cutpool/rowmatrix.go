package cutpool

// RowMatrix is the append-only sparse row storage behind the pool: a CSR-
// style coefficient arena plus per-row (start, end) offsets and a free
// list of deleted row slots. Row ids are dense integers, stable for the
// life of a row and reused after deletion.
//
// Removing a row frees its id, not its arena span; the arena only grows.
// For a cut pool this is the right trade: rows are short-lived but small,
// and id stability is what observers and the signature map depend on.
type RowMatrix struct {
	numCols int

	start []int // per row: first arena offset, -1 when deleted
	end   []int // per row: one past the last arena offset

	index []int     // arena: column indices
	value []float64 // arena: coefficients

	freeSlots  []int
	numDeleted int
}

// NewRowMatrix returns an empty matrix over numCols columns.
func NewRowMatrix(numCols int) *RowMatrix {
	return &RowMatrix{numCols: numCols}
}

// NumCols returns the column dimension rows are validated against.
func (m *RowMatrix) NumCols() int { return m.numCols }

// NumRows returns the number of row slots ever created, deleted included.
func (m *RowMatrix) NumRows() int { return len(m.start) }

// NumDeleted returns the number of currently deleted row slots.
func (m *RowMatrix) NumDeleted() int { return m.numDeleted }

// Deleted reports whether row id is a freed slot.
func (m *RowMatrix) Deleted(id int) bool { return m.start[id] < 0 }

// AddRow appends a row and returns its id, reusing a freed slot when one
// exists. The entries are copied into the arena; the caller keeps
// ownership of its slices.
func (m *RowMatrix) AddRow(indices []int, values []float64) int {
	start := len(m.index)
	m.index = append(m.index, indices...)
	m.value = append(m.value, values...)
	end := len(m.index)

	var id int
	if n := len(m.freeSlots); n > 0 {
		id = m.freeSlots[n-1]
		m.freeSlots = m.freeSlots[:n-1]
		m.numDeleted--
		m.start[id] = start
		m.end[id] = end
	} else {
		id = len(m.start)
		m.start = append(m.start, start)
		m.end = append(m.end, end)
	}

	return id
}

// RemoveRow frees the slot of row id for reuse. The arena span becomes
// garbage; offsets of other rows are unaffected.
func (m *RowMatrix) RemoveRow(id int) {
	m.start[id] = -1
	m.end[id] = -1
	m.freeSlots = append(m.freeSlots, id)
	m.numDeleted++
}

// RowStart returns the arena offset of the first entry of row id.
func (m *RowMatrix) RowStart(id int) int { return m.start[id] }

// RowEnd returns one past the arena offset of the last entry of row id.
func (m *RowMatrix) RowEnd(id int) int { return m.end[id] }

// Row returns the index and value spans of row id as subslices of the
// arena. They are invalidated by the next AddRow; callers must copy
// anything they keep across mutations.
func (m *RowMatrix) Row(id int) (indices []int, values []float64) {
	s, e := m.start[id], m.end[id]

	return m.index[s:e:e], m.value[s:e:e]
}
