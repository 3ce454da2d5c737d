package sparse_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/lpcore/sparse"
)

// TestIsInf treats IEEE infinities and large placeholders alike.
func TestIsInf(t *testing.T) {
	assert.True(t, sparse.IsInf(math.Inf(1)))
	assert.True(t, sparse.IsInf(sparse.Inf))
	assert.True(t, sparse.IsInf(1e201))
	assert.False(t, sparse.IsInf(1e19))
	assert.False(t, sparse.IsInf(-math.Inf(1)))
	assert.False(t, sparse.IsInf(0))
}

// TestNorm2 covers the empty and a 3-4-5 case.
func TestNorm2(t *testing.T) {
	assert.Zero(t, sparse.Norm2(nil))
	assert.InDelta(t, 5.0, sparse.Norm2([]float64{3, 4}), 1e-12)
}

// TestRelativeDiff scales by the larger magnitude but never below 1.
func TestRelativeDiff(t *testing.T) {
	assert.InDelta(t, 0.5, sparse.RelativeDiff(1.0, 0.5), 1e-12, "small values compare absolutely")
	assert.InDelta(t, 0.5, sparse.RelativeDiff(100, 50), 1e-12, "large values compare relatively")
	assert.Zero(t, sparse.RelativeDiff(3, 3))
}
