package cutpool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lpcore/cutpool"
)

// TestAddCut_StoresNormalizedRow verifies basic admission: zeros dropped,
// entries sorted by column, and accessor queries answering from stored state.
func TestAddCut_StoresNormalizedRow(t *testing.T) {
	p := cutpool.NewPool(10, 5)

	id, err := p.AddCut([]int{7, 2, 4}, []float64{1.0, 3.0, 0.0}, 5.0, true)
	require.NoError(t, err)
	require.Equal(t, 0, id)

	assert.Equal(t, 1, p.NumCuts())
	assert.Equal(t, 2, p.RowLength(id), "the zero coefficient is dropped")
	assert.Equal(t, 3.0, p.MaxAbsCoef(id))
	assert.Equal(t, 5.0, p.RHS(id))
	assert.True(t, p.IsIntegral(id))
	assert.Equal(t, uint32(1), p.ModificationCount(id))
	assert.Equal(t, 0, p.Age(id), "a fresh cut starts inactive")

	inds, vals := p.GetCut(id)
	assert.Equal(t, []int{2, 7}, inds, "entries are column-sorted")
	assert.Equal(t, []float64{3.0, 1.0}, vals)
}

// TestAddCut_InputValidation pins the sentinel errors.
func TestAddCut_InputValidation(t *testing.T) {
	p := cutpool.NewPool(10, 5)

	_, err := p.AddCut([]int{1, 2}, []float64{1.0}, 0, false)
	assert.ErrorIs(t, err, cutpool.ErrLengthMismatch)

	_, err = p.AddCut([]int{11}, []float64{1.0}, 0, false)
	assert.ErrorIs(t, err, cutpool.ErrColumnRange)

	_, err = p.AddCut([]int{1}, []float64{0.0}, 0, false)
	assert.ErrorIs(t, err, cutpool.ErrEmptyCut)
}

// TestAddCut_DuplicateRejection verifies that a positive scalar multiple
// of an existing cut returns the existing id and grows nothing.
func TestAddCut_DuplicateRejection(t *testing.T) {
	p := cutpool.NewPool(10, 5)

	id1, err := p.AddCut([]int{1, 4}, []float64{1.0, 2.0}, 3.0, false)
	require.NoError(t, err)

	id2, err := p.AddCut([]int{1, 4}, []float64{2.0, 4.0}, 6.0, false)
	require.NoError(t, err)

	assert.Equal(t, id1, id2, "scalar multiples are duplicates")
	assert.Equal(t, 1, p.NumCuts(), "the pool must not grow on a duplicate")
	assert.Equal(t, uint32(1), p.ModificationCount(id1),
		"a rejected duplicate is not a mutation")
}

// TestAddCut_SameSupportDifferentDirection keeps cuts that share support
// but point elsewhere: similarity below the threshold is not a duplicate.
func TestAddCut_SameSupportDifferentDirection(t *testing.T) {
	p := cutpool.NewPool(10, 5)

	id1, err := p.AddCut([]int{1, 4}, []float64{1.0, 1.0}, 3.0, false)
	require.NoError(t, err)
	id2, err := p.AddCut([]int{1, 4}, []float64{1.0, -1.0}, 3.0, false)
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2, "orthogonal rows over the same support coexist")
	assert.Equal(t, 2, p.NumCuts())
}

// TestParallelism checks self-similarity and the orthogonal case.
func TestParallelism(t *testing.T) {
	p := cutpool.NewPool(10, 5)

	id1, err := p.AddCut([]int{0, 3, 5}, []float64{1.0, -2.0, 0.5}, 1.0, false)
	require.NoError(t, err)
	id2, err := p.AddCut([]int{0, 3}, []float64{2.0, 1.0}, 1.0, false)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, p.Parallelism(id1, id1), 1e-12,
		"any nonzero row is fully parallel to itself")
	assert.InDelta(t, p.Parallelism(id1, id2), p.Parallelism(id2, id1), 1e-15,
		"parallelism is symmetric")

	// (1,-2)·(2,1) = 0 over the shared support.
	assert.InDelta(t, 0.0, p.Parallelism(id1, id2), 1e-12)
}

// TestRemoveCut_ReusesSlot verifies id reuse after eviction and that the
// evicted id no longer matches duplicates.
func TestRemoveCut_ReusesSlot(t *testing.T) {
	p := cutpool.NewPool(10, 5)

	id1, err := p.AddCut([]int{1}, []float64{1.0}, 1.0, false)
	require.NoError(t, err)
	p.RemoveCut(id1)
	assert.Equal(t, 0, p.NumCuts())

	// The same coefficients are admitted again: the old row is gone.
	id2, err := p.AddCut([]int{1}, []float64{1.0}, 1.0, false)
	require.NoError(t, err)
	assert.Equal(t, id1, id2, "freed slot is reused")
	assert.Equal(t, 1, p.NumCuts())
	assert.Equal(t, uint32(2), p.ModificationCount(id2),
		"slot reuse bumps the modification counter, so dependents see the change")
}

// recorder is a Propagation observer that records notifications.
type recorder struct {
	removedFromLP []int
	evicted       []int
}

func (r *recorder) CutRemovedFromLP(cut int) { r.removedFromLP = append(r.removedFromLP, cut) }
func (r *recorder) CutEvicted(cut int)       { r.evicted = append(r.evicted, cut) }

// TestPropagationObservers covers registration handles, both notification
// paths, and O(1) removal.
func TestPropagationObservers(t *testing.T) {
	p := cutpool.NewPool(10, 5)
	obs1, obs2 := &recorder{}, &recorder{}
	h1 := p.AddPropagation(obs1)
	h2 := p.AddPropagation(obs2)
	require.NotEqual(t, h1, h2)

	id, err := p.AddCut([]int{1}, []float64{1.0}, 1.0, false)
	require.NoError(t, err)

	p.LPCutRemoved(id)
	assert.Equal(t, []int{id}, obs1.removedFromLP)
	assert.Equal(t, []int{id}, obs2.removedFromLP)

	p.RemovePropagation(h1)
	p.RemoveCut(id)
	assert.Empty(t, obs1.evicted, "deregistered observers stay silent")
	assert.Equal(t, []int{id}, obs2.evicted)

	// Freed handles are reused.
	h3 := p.AddPropagation(&recorder{})
	assert.Equal(t, h1, h3)
}
