package histo

import (
	"math"

	"go-hep.org/x/hep/hbook"
)

// SpreadGrid accumulates a value on an (x, y) grid and reports its RMS
// spread per cell. It implements plotter.GridXYZ.
type SpreadGrid struct {
	hCount, hV, hV2 *hbook.H2D
	nBinsX, nBinsY  int

	// Empty is reported for cells with fewer than MinEntries fills.
	Empty      float64
	MinEntries float64
}

func NewSpreadGrid(nBinsX int, xLow, xHigh float64, nBinsY int, yLow, yHigh float64) *SpreadGrid {
	h := func() *hbook.H2D { return hbook.NewH2D(nBinsX, xLow, xHigh, nBinsY, yLow, yHigh) }
	return &SpreadGrid{
		hCount:     h(),
		hV:         h(),
		hV2:        h(),
		nBinsX:     nBinsX,
		nBinsY:     nBinsY,
		Empty:      1,
		MinEntries: 3,
	}
}

func (g *SpreadGrid) Fill(x, y, v float64) {
	g.hCount.Fill(x, y, 1)
	g.hV.Fill(x, y, v)
	g.hV2.Fill(x, y, v*v)
}

func (g *SpreadGrid) Dims() (int, int) {
	return g.nBinsX, g.nBinsY
}

func (g *SpreadGrid) Entries(i, j int) float64 {
	return g.hCount.GridXYZ().Z(i, j)
}

func (g *SpreadGrid) Mean(i, j int) float64 {
	n := g.Entries(i, j)
	if n == 0 {
		return 0
	}
	return g.hV.GridXYZ().Z(i, j) / n
}

// Z is the RMS of the values filled into cell (i, j).
func (g *SpreadGrid) Z(i, j int) float64 {
	n := g.Entries(i, j)
	if n < g.MinEntries {
		return g.Empty
	}
	mean := g.hV.GridXYZ().Z(i, j) / n
	mean2 := g.hV2.GridXYZ().Z(i, j) / n
	return math.Sqrt(math.Max(mean2-mean*mean, 0))
}

func (g *SpreadGrid) X(i int) float64 {
	return g.hCount.GridXYZ().X(i)
}

func (g *SpreadGrid) Y(j int) float64 {
	return g.hCount.GridXYZ().Y(j)
}

// Count exposes the per-cell entries for output.
func (g *SpreadGrid) Count() *hbook.H2D { return g.hCount }
