package cutpool

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"

	"github.com/katalvlaran/lpcore/sparse"
)

// Pool stores cuts (≤ inequalities over the column range) in a shared
// RowMatrix, keyed by dense integer ids that are reused after eviction.
// See the package documentation for the lifecycle.
type Pool struct {
	matrix *RowMatrix

	// per-cut state, indexed by cut id (parallel to matrix slots)
	rhs          []float64
	modification []uint32
	ages         []int16
	rowNorm      []float64 // Euclidean norm of the coefficient row
	maxAbs       []float64
	integral     []bool
	signature    []uint64

	// supportMap buckets cut ids by support signature for duplicate search.
	supportMap map[uint64][]int

	observers   []Propagation // nil holes are freed handles
	freeHandles []int

	ageLimit     int
	epochs       uint64
	dupThreshold float64
	log          zerolog.Logger

	// normalization scratch, reused across AddCut calls
	scratchIdx []int
	scratchVal []float64
}

// NewPool returns an empty pool over numCols columns with the given
// inactive-age limit (DefaultAgeLimit when ageLimit <= 0).
func NewPool(numCols, ageLimit int, opts ...Option) *Pool {
	if ageLimit <= 0 {
		ageLimit = DefaultAgeLimit
	}
	p := &Pool{
		matrix:       NewRowMatrix(numCols),
		supportMap:   make(map[uint64][]int),
		ageLimit:     ageLimit,
		dupThreshold: DefaultDuplicateThreshold,
		log:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Matrix exposes the pool-owned row storage read-only by convention.
func (p *Pool) Matrix() *RowMatrix { return p.matrix }

// AddCut admits the cut  sum(values[i]·x[indices[i]]) ≤ rhs  and returns
// its id. Exact zeros are dropped and entries sorted by column before
// anything is stored. A candidate whose support set matches an existing
// cut's exactly and whose cosine similarity with it reaches the duplicate
// threshold is rejected: the existing id is returned and nothing changes
// (duplicates are not an error). integral marks all-integral coefficient
// rows for downstream strengthening; the pool only stores the flag.
//
// The modification counter of the returned id is bumped only when a new
// row was actually created.
func (p *Pool) AddCut(indices []int, values []float64, rhs float64, integral bool) (int, error) {
	if len(indices) != len(values) {
		return -1, ErrLengthMismatch
	}
	if math.IsNaN(rhs) || math.IsInf(rhs, 0) {
		return -1, ErrNonFinite
	}

	// Normalize: drop exact zeros, validate, sort by column.
	p.scratchIdx = p.scratchIdx[:0]
	p.scratchVal = p.scratchVal[:0]
	for i, col := range indices {
		v := values[i]
		if v == 0 {
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return -1, ErrNonFinite
		}
		if col < 0 || col >= p.matrix.NumCols() {
			return -1, ErrColumnRange
		}
		p.scratchIdx = append(p.scratchIdx, col)
		p.scratchVal = append(p.scratchVal, v)
	}
	if len(p.scratchIdx) == 0 {
		return -1, ErrEmptyCut
	}
	sort.Sort(&rowSorter{idx: p.scratchIdx, val: p.scratchVal})

	norm := sparse.Norm2(p.scratchVal)
	maxAbs := 0.0
	for _, v := range p.scratchVal {
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
		}
	}
	sig := supportSignature(p.scratchIdx)

	// Duplicate search within the signature bucket: identical support set
	// plus near-parallel coefficients means we keep the incumbent.
	for _, id := range p.supportMap[sig] {
		if p.matrix.Deleted(id) {
			continue
		}
		inds, vals := p.matrix.Row(id)
		if !equalSupport(inds, p.scratchIdx) {
			continue
		}
		par := sparseDot(inds, vals, p.scratchIdx, p.scratchVal) / (p.rowNorm[id] * norm)
		if par >= p.dupThreshold {
			p.log.Debug().Int("cut", id).Float64("parallelism", par).
				Msg("cutpool: duplicate cut rejected")

			return id, nil
		}
	}

	id := p.matrix.AddRow(p.scratchIdx, p.scratchVal)
	if id == len(p.rhs) {
		p.rhs = append(p.rhs, 0)
		p.modification = append(p.modification, 0)
		p.ages = append(p.ages, 0)
		p.rowNorm = append(p.rowNorm, 0)
		p.maxAbs = append(p.maxAbs, 0)
		p.integral = append(p.integral, false)
		p.signature = append(p.signature, 0)
	}
	p.rhs[id] = rhs
	p.modification[id]++
	p.ages[id] = 0 // inactive, just created
	p.rowNorm[id] = norm
	p.maxAbs[id] = maxAbs
	p.integral[id] = integral
	p.signature[id] = sig
	p.supportMap[sig] = append(p.supportMap[sig], id)

	return id, nil
}

// RemoveCut evicts cut id: observers are notified while the row is still
// readable, the signature bucket entry is dropped, and the slot is freed
// for reuse. Caller-driven; the pool never evicts on its own.
func (p *Pool) RemoveCut(id int) {
	for _, obs := range p.observers {
		if obs != nil {
			obs.CutEvicted(id)
		}
	}
	sig := p.signature[id]
	bucket := p.supportMap[sig]
	for k, cand := range bucket {
		if cand == id {
			p.supportMap[sig] = append(bucket[:k], bucket[k+1:]...)

			break
		}
	}
	p.matrix.RemoveRow(id)
}

// Parallelism returns the cosine similarity of the coefficient rows of
// cuts r1 and r2: their dot product over the product of stored norms.
// Symmetric, in [-1, 1]; Parallelism(r, r) is 1 for any stored row.
func (p *Pool) Parallelism(r1, r2 int) float64 {
	i1, v1 := p.matrix.Row(r1)
	i2, v2 := p.matrix.Row(r2)

	return sparseDot(i1, v1, i2, v2) / (p.rowNorm[r1] * p.rowNorm[r2])
}

// AddPropagation registers a propagation observer and returns its handle.
func (p *Pool) AddPropagation(obs Propagation) int {
	if n := len(p.freeHandles); n > 0 {
		h := p.freeHandles[n-1]
		p.freeHandles = p.freeHandles[:n-1]
		p.observers[h] = obs

		return h
	}
	p.observers = append(p.observers, obs)

	return len(p.observers) - 1
}

// RemovePropagation deregisters the observer behind handle in O(1).
// Handles are reused; a deregistered handle must not be used again.
func (p *Pool) RemovePropagation(handle int) {
	p.observers[handle] = nil
	p.freeHandles = append(p.freeHandles, handle)
}

// NumCuts returns the number of live cuts in the pool.
func (p *Pool) NumCuts() int { return p.matrix.NumRows() - p.matrix.NumDeleted() }

// RowLength returns the number of nonzeros of cut id.
func (p *Pool) RowLength(id int) int { return p.matrix.RowEnd(id) - p.matrix.RowStart(id) }

// MaxAbsCoef returns the maximum absolute coefficient of cut id.
func (p *Pool) MaxAbsCoef(id int) float64 { return p.maxAbs[id] }

// ModificationCount returns the monotonic modification counter of cut id;
// dependents compare it to detect row changes without recomputation.
func (p *Pool) ModificationCount(id int) uint32 { return p.modification[id] }

// IsIntegral reports whether all coefficients of cut id are integral.
func (p *Pool) IsIntegral(id int) bool { return p.integral[id] }

// RHS returns the right-hand side (upper bound) of cut id.
func (p *Pool) RHS(id int) float64 { return p.rhs[id] }

// GetCut returns the sparse row of cut id as arena subslices, valid only
// until the next mutating call.
func (p *Pool) GetCut(id int) (indices []int, values []float64) {
	return p.matrix.Row(id)
}

// supportSignature hashes the sorted nonzero column indices of a row; it
// is the bucket key for duplicate search.
func supportSignature(sortedIdx []int) uint64 {
	var buf [8]byte
	d := xxhash.New()
	for _, col := range sortedIdx {
		binary.LittleEndian.PutUint64(buf[:], uint64(col))
		_, _ = d.Write(buf[:])
	}

	return d.Sum64()
}

// equalSupport reports whether two sorted index slices are identical.
func equalSupport(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// sparseDot merges two column-sorted sparse rows.
func sparseDot(ai []int, av []float64, bi []int, bv []float64) float64 {
	dot := 0.0
	i, j := 0, 0
	for i < len(ai) && j < len(bi) {
		switch {
		case ai[i] < bi[j]:
			i++
		case ai[i] > bi[j]:
			j++
		default:
			dot += av[i] * bv[j]
			i++
			j++
		}
	}

	return dot
}

// rowSorter co-sorts an index slice and its value slice by column.
type rowSorter struct {
	idx []int
	val []float64
}

func (s *rowSorter) Len() int           { return len(s.idx) }
func (s *rowSorter) Less(i, j int) bool { return s.idx[i] < s.idx[j] }
func (s *rowSorter) Swap(i, j int) {
	s.idx[i], s.idx[j] = s.idx[j], s.idx[i]
	s.val[i], s.val[j] = s.val[j], s.val[i]
}
