// Package correlation computes trigger-associated angular correlations.
package correlation

import (
	"fmt"
	"log"
	"math"

	"github.com/decibelcooper/rsnmix/particle"
)

type Correlator struct {
	phiMin, phiMax float64
}

// New returns a Correlator folding Δφ into [phiMin, phiMin+2π). An interval
// other than 2π is allowed but logged.
func New(phiMin, phiMax float64) (*Correlator, error) {
	if !(phiMax > phiMin) {
		return nil, fmt.Errorf("correlation: invalid Δφ interval [%g, %g]", phiMin, phiMax)
	}
	if math.Abs(phiMax-phiMin-2*math.Pi) > 1e-9 {
		log.Printf("correlation: Δφ interval [%g, %g] is not 2π wide", phiMin, phiMax)
	}
	return &Correlator{phiMin: phiMin, phiMax: phiMax}, nil
}

func (c *Correlator) Range() (float64, float64) {
	return c.phiMin, c.phiMax
}

func (c *Correlator) WrapPhi(phi float64) float64 {
	phi = math.Mod(phi-c.phiMin, 2*math.Pi)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return phi + c.phiMin
}

// Correlate returns Δφ and Δη of assoc relative to trig.
func (c *Correlator) Correlate(trig, assoc *particle.Particle, h particle.Hypothesis) (dPhi, dEta float64) {
	dPhi = c.WrapPhi(trig.Phi(h) - assoc.Phi(h))
	dEta = trig.Eta(h) - assoc.Eta(h)
	return dPhi, dEta
}
