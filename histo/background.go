package histo

import (
	"go-hep.org/x/hep/hbook"
)

// Normalize returns the factor scaling mixed so that its content in the
// sideband [lo, hi) equals that of same. It is 0 when mixed is empty there.
func Normalize(same, mixed *hbook.H1D, lo, hi float64) float64 {
	s := window(same, lo, hi)
	m := window(mixed, lo, hi)
	if m == 0 {
		return 0
	}
	return s / m
}

// Subtract returns same - f*mixed bin by bin. Both histograms must share a
// binning. Uncertainties add in quadrature, so each bin's SumW2 is
// SumW2(same) + f²·SumW2(mixed).
func Subtract(same, mixed *hbook.H1D, f float64) *hbook.H1D {
	out := hbook.AddScaledH1D(same, -f, mixed)
	out.Annotation()["name"] = same.Name() + "_sub"
	return out
}

// window sums the bins whose centres lie in [lo, hi).
func window(h *hbook.H1D, lo, hi float64) float64 {
	sum := 0.0
	for _, bin := range h.Binning.Bins {
		if c := bin.XMid(); c >= lo && c < hi {
			sum += bin.SumW()
		}
	}
	return sum
}
