package correlation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/decibelcooper/rsnmix/particle"
)

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := New(1, 1)
	assert.Error(t, err)
	_, err = New(2, -1)
	assert.Error(t, err)

	c, err := New(-math.Pi/2, 3*math.Pi/2)
	require.NoError(t, err)
	lo, hi := c.Range()
	assert.Equal(t, -math.Pi/2, lo)
	assert.Equal(t, 3*math.Pi/2, hi)
}

func TestWrapPhi(t *testing.T) {
	t.Parallel()

	c, err := New(-math.Pi/2, 3*math.Pi/2)
	require.NoError(t, err)

	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{-math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 4, 5 * math.Pi / 4},
		{5 * math.Pi, math.Pi},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, c.WrapPhi(tt.in), 1e-12, "wrap(%g)", tt.in)
	}
}

func TestCorrelate(t *testing.T) {
	t.Parallel()

	c, err := New(-math.Pi/2, 3*math.Pi/2)
	require.NoError(t, err)

	trig := &particle.Particle{Mom: [2]r3.Vec{{X: 2}}}
	assoc := &particle.Particle{Mom: [2]r3.Vec{{X: -1, Z: 1}}}

	dPhi, dEta := c.Correlate(trig, assoc, particle.Reco)
	assert.InDelta(t, math.Pi, dPhi, 1e-12)
	assert.InDelta(t, math.Asinh(-1), dEta, 1e-12)
}
