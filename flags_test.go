package rsnmix

import (
	"flag"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decibelcooper/rsnmix/mixing"
)

func TestFloatArrayFlags(t *testing.T) {
	t.Parallel()

	edges := FloatArrayFlags{Array: []float64{-1, 1}}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&edges, "zedges", "vertex-z bin edges")

	assert.False(t, edges.IsSet())
	require.NoError(t, fs.Parse([]string{"-zedges", "10,-10", "-zedges", "0"}))
	assert.True(t, edges.IsSet())
	assert.Equal(t, []float64{10, -10, 0}, edges.Array)
	assert.Equal(t, []float64{10, -10, 0}, edges.Edges(), "mistyped edges are not reordered")
	_, err := mixing.NewAxis(edges.Edges())
	assert.Error(t, err)
	assert.Equal(t, "[10 -10 0]", edges.String())

	assert.Error(t, edges.Set("abc"))
}

func TestLineColor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, color.RGBA{A: 255}, LineColor(0))
	assert.Equal(t, color.RGBA{G: 255, A: 255}, LineColor(1))
	assert.Equal(t, LineColor(0), LineColor(17))
}
