package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/goburgers/model_problems/Burgers2D"
)

func TestReport(t *testing.T) {
	samples := []Burgers2D.EnergySample{
		{Step: 0, Time: 0, Energy: 4},
		{Step: 1, Time: 0.1, Energy: 2},
		{Step: 2, Time: 0.2, Energy: 1},
	}
	assert.Equal(t, []float64{0.5, 0.5}, decayRatios(samples))
	assert.Nil(t, decayRatios(samples[:1]))
	assert.Equal(t, []float64{0}, decayRatios([]Burgers2D.EnergySample{{Energy: 0}, {Energy: 1}}))

	var buf bytes.Buffer
	require.NoError(t, report(&buf, samples))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasSuffix(lines[1], "-"))
	assert.Contains(t, lines[2], "0.500000")
	assert.Equal(t, "E(0.2)/E(0) = 0.25", lines[4])

	buf.Reset()
	require.NoError(t, report(&buf, nil))
	assert.Equal(t, "no energy samples\n", buf.String())
}
