package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystem(t *testing.T) {
	assert.False(t, IsNan(1.))
	assert.True(t, IsNan(math.NaN()))
	assert.True(t, IsNan([]float64{0, math.Inf(1)}))
	assert.False(t, IsNan([][]float64{{0, 1}, {2}}))
	assert.True(t, IsNan([][]float64{{0, 1}, {math.NaN()}}))
	assert.Equal(t, 8., POW(2, 3))
	assert.Equal(t, 0.25, POW(2, -2))
	assert.InDelta(t, math.Pow(1.5, 11), POW(1.5, 11), 1.e-12)
	assert.Contains(t, GetMemUsage(), "MiB")
}
