package ratiotest_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/lpcore/ratiotest"
	"github.com/katalvlaran/lpcore/sparse"
)

// benchmarkRatioTest runs the full per-iteration pipeline on a synthetic
// row with nnz candidates over dim columns.
func benchmarkRatioTest(b *testing.B, dim, nnz int) {
	rng := rand.New(rand.NewSource(42)) // fixed seed: reproducible rows
	st := newBenchState(dim)
	row := sparse.NewRow(dim)
	for _, col := range rng.Perm(dim)[:nnz] {
		row.Set(col, rng.Float64()+0.01)
		st.Duals[col] = rng.Float64() * 2
	}

	e := ratiotest.NewEngine(ratiotest.DefaultOptions())
	e.Setup(dim)

	b.ResetTimer() // ignore setup time
	for i := 0; i < b.N; i++ {
		e.Clear()
		e.PackRow(row, 0)
		e.ChoosePossible(st, 5.0)
		if err := e.ChooseFinal(st); err != nil {
			b.Fatalf("ChooseFinal failed: %v", err)
		}
	}
}

// newBenchState mirrors newState without the testing.T helper plumbing.
func newBenchState(dim int) *ratiotest.State {
	st := &ratiotest.State{
		Move:        make([]int8, dim),
		Duals:       make([]float64, dim),
		Range:       make([]float64, dim),
		Flag:        make([]int8, dim),
		Value:       make([]float64, dim),
		Lower:       make([]float64, dim),
		Upper:       make([]float64, dim),
		DevexWeight: make([]float64, dim),
		CostScale:   1,
	}
	for i := 0; i < dim; i++ {
		st.Move[i] = ratiotest.MoveUp
		st.Flag[i] = ratiotest.FlagNonbasic
		st.Range[i] = 1
	}

	return st
}

// BenchmarkChooseFinal_Sparse benchmarks a typical sparse pricing row.
func BenchmarkChooseFinal_Sparse(b *testing.B) {
	benchmarkRatioTest(b, 10000, 50)
}

// BenchmarkChooseFinal_Dense benchmarks a dense pricing row.
func BenchmarkChooseFinal_Dense(b *testing.B) {
	benchmarkRatioTest(b, 10000, 5000)
}

// BenchmarkChooseFinal_NoCrossCheck measures the cross-check overhead.
func BenchmarkChooseFinal_NoCrossCheck(b *testing.B) {
	opts := ratiotest.DefaultOptions()
	opts.CrossCheck = false
	st := newBenchState(10000)
	rng := rand.New(rand.NewSource(42))
	row := sparse.NewRow(10000)
	for _, col := range rng.Perm(10000)[:5000] {
		row.Set(col, rng.Float64()+0.01)
		st.Duals[col] = rng.Float64() * 2
	}
	e := ratiotest.NewEngine(opts)
	e.Setup(10000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Clear()
		e.PackRow(row, 0)
		e.ChoosePossible(st, 5.0)
		if err := e.ChooseFinal(st); err != nil {
			b.Fatalf("ChooseFinal failed: %v", err)
		}
	}
}
