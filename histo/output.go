package histo

import (
	"fmt"
	"image/color"
	"maps"
	"slices"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/vg"
)

// WriteROOT stores the hbook histograms of objs in a new ROOT file, in name
// order. Values of other types are rejected.
func WriteROOT(path string, objs map[string]any) error {
	f, err := groot.Create(path)
	if err != nil {
		return fmt.Errorf("could not create ROOT file: %w", err)
	}

	for _, name := range slices.Sorted(maps.Keys(objs)) {
		switch h := objs[name].(type) {
		case *hbook.H1D:
			err = f.Put(name, rhist.NewH1DFrom(h))
		case *hbook.H2D:
			err = f.Put(name, rhist.NewH2DFrom(h))
		default:
			err = fmt.Errorf("unsupported type %T", h)
		}
		if err != nil {
			f.Close()
			return fmt.Errorf("could not write %q: %w", name, err)
		}
	}

	return f.Close()
}

// Curve is one histogram of an overlay plot.
type Curve struct {
	Hist  *hbook.H1D
	Label string
	Color color.Color
}

// SavePlot overlays the curves and saves the plot to path; the format follows
// the file extension.
func SavePlot(path, title, xLabel string, curves ...Curve) error {
	p := hplot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel

	for _, c := range curves {
		h := hplot.NewH1D(c.Hist)
		h.FillColor = nil
		h.LineStyle.Color = c.Color
		h.Infos.Style = hplot.HInfoNone
		if len(curves) == 1 {
			h.Infos.Style = hplot.HInfoSummary
		}
		p.Add(h)
		if c.Label != "" {
			p.Legend.Add(c.Label, h)
		}
	}

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
