package histo

import (
	"math"

	"go-hep.org/x/hep/hbook"
)

// CorrSet holds Δφ×Δη maps for same-event and mixed-event trigger pairs.
type CorrSet struct {
	Same  *hbook.H2D
	Mixed *hbook.H2D
}

func NewCorrSet(phiMin, phiMax float64) *CorrSet {
	const nPhi, nEta, etaMax = 36, 40, 4.0
	newH2D := func(name string) *hbook.H2D {
		h := hbook.NewH2D(nPhi, phiMin, phiMax, nEta, -etaMax, etaMax)
		h.Annotation()["name"] = name
		return h
	}
	return &CorrSet{
		Same:  newH2D("dphi_deta_same"),
		Mixed: newH2D("dphi_deta_mixed"),
	}
}

func (c *CorrSet) Fill(mixed bool, dPhi, dEta float64) {
	if math.IsNaN(dPhi) || math.IsNaN(dEta) {
		return
	}
	h := c.Same
	if mixed {
		h = c.Mixed
	}
	h.Fill(dPhi, dEta, 1)
}

func (c *CorrSet) Objects() map[string]any {
	return map[string]any{
		c.Same.Name():  c.Same,
		c.Mixed.Name(): c.Mixed,
	}
}
