// Package particle holds the per-event particle candidates consumed by the
// pair engine and the mixing pool.
package particle

import (
	"math"

	"go-hep.org/x/hep/fmom"
	"gonum.org/v1/gonum/spatial/r3"
)

// Hypothesis selects the momentum source a quantity is computed from.
type Hypothesis int

const (
	Reco Hypothesis = iota
	Truth

	NumHypotheses = 2
)

func (h Hypothesis) String() string {
	switch h {
	case Reco:
		return "reco"
	case Truth:
		return "truth"
	}
	return "unknown"
}

// Flag marks secondary particles.
type Flag uint8

const (
	FromMaterial Flag = 1 << iota
	FromWeakDecay
)

// NoMother is the Mother value of particles without a generator parent.
const NoMother int64 = -1

// Particle is an accepted candidate in one event. The truth momentum slot is
// zero when Matched is false.
type Particle struct {
	Index     int
	Charge    int
	PDG       int32
	Mom       [NumHypotheses]r3.Vec
	Mother    int64
	MotherPDG int32
	Flags     Flag
	Matched   bool
}

// Set4Vector returns the four-momentum of p under hypothesis h with the given
// mass assumption.
func (p *Particle) Set4Vector(h Hypothesis, mass float64) fmom.PxPyPzE {
	v := p.Mom[h]
	e := math.Sqrt(r3.Dot(v, v) + mass*mass)
	return fmom.NewPxPyPzE(v.X, v.Y, v.Z, e)
}

func (p *Particle) Pt(h Hypothesis) float64 {
	return math.Hypot(p.Mom[h].X, p.Mom[h].Y)
}

func (p *Particle) P(h Hypothesis) float64 {
	return r3.Norm(p.Mom[h])
}

// Eta is the pseudorapidity. Particles along the beam axis give ±Inf.
func (p *Particle) Eta(h Hypothesis) float64 {
	pm := p.P(h)
	return math.Atanh(p.Mom[h].Z / pm)
}

// Phi is the azimuth in (-π, π].
func (p *Particle) Phi(h Hypothesis) float64 {
	return math.Atan2(p.Mom[h].Y, p.Mom[h].X)
}

func (p *Particle) Is(f Flag) bool {
	return p.Flags&f != 0
}

func (p *Particle) IsSecondary() bool {
	return p.Flags&(FromMaterial|FromWeakDecay) != 0
}
