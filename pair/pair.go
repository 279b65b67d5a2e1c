// Package pair computes the kinematics of two-particle combinations under
// both the reconstructed and the generator-truth momentum hypotheses.
package pair

import (
	"math"

	"go-hep.org/x/hep/fmom"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/decibelcooper/rsnmix/particle"
)

// Undefined is returned by the ratio observables when their denominator is
// not positive. The value itself is arbitrary; it is kept at 1e20 so output
// histograms stay comparable with existing productions. Callers must exclude
// it from resolution plots.
const Undefined = 1e20

// Daughter selects one of the two pair members.
type Daughter int

const (
	First Daughter = iota
	Second
)

const nh = particle.NumHypotheses

// Pair holds the four-vectors of a candidate combination. The zero value is
// empty; every accessor is only meaningful after Fill.
type Pair struct {
	p1, p2 [nh]fmom.PxPyPzE
	sum    [nh]fmom.PxPyPzE
	ref    [nh]fmom.PxPyPzE

	refMass   float64
	mother    int64
	motherPDG int32
}

// Fill recomputes the pair from two candidates with mass assumptions m1 and
// m2, and re-masses the summed momentum to refMass.
func (p *Pair) Fill(a, b *particle.Particle, m1, m2, refMass float64) {
	for h := particle.Reco; h < nh; h++ {
		p.p1[h] = a.Set4Vector(h, m1)
		p.p2[h] = b.Set4Vector(h, m2)
	}

	p.mother = particle.NoMother
	p.motherPDG = 0
	if a.Mother >= 0 && a.Mother == b.Mother {
		p.mother = a.Mother
		p.motherPDG = a.MotherPDG
	}

	p.refMass = refMass
	p.resum()
}

func (p *Pair) resum() {
	for h := range p.sum {
		p.sum[h] = add(p.p1[h], p.p2[h])
		p.ref[h] = withMass(p.sum[h], p.refMass)
	}
}

// SetRefMass re-masses the reference vectors of both hypotheses. Later calls
// to InvertDaughter keep this mass.
func (p *Pair) SetRefMass(mass float64) {
	p.refMass = mass
	for h := range p.ref {
		p.ref[h] = withMass(p.sum[h], mass)
	}
}

// InvertDaughter flips the 3-momentum of one daughter in both hypotheses and
// recomputes the sums. Applying it twice restores the pair.
func (p *Pair) InvertDaughter(d Daughter) {
	for h := range p.sum {
		v := &p.p1[h]
		if d == Second {
			v = &p.p2[h]
		}
		*v = fmom.NewPxPyPzE(-v.Px(), -v.Py(), -v.Pz(), v.E())
	}
	p.resum()
}

func (p *Pair) Sum(h particle.Hypothesis) fmom.PxPyPzE { return p.sum[h] }
func (p *Pair) Ref(h particle.Hypothesis) fmom.PxPyPzE { return p.ref[h] }
func (p *Pair) RefMass() float64                       { return p.refMass }

func (p *Pair) Daughter(d Daughter, h particle.Hypothesis) fmom.PxPyPzE {
	if d == Second {
		return p.p2[h]
	}
	return p.p1[h]
}

func (p *Pair) DaughterPt(d Daughter, h particle.Hypothesis) float64 {
	v := p.Daughter(d, h)
	return v.Pt()
}

func (p *Pair) DaughterMomentum(d Daughter, h particle.Hypothesis) r3.Vec {
	v := p.Daughter(d, h)
	return vect(&v)
}

// Mother returns the generator index shared by both daughters.
func (p *Pair) Mother() (int64, bool) {
	return p.mother, p.mother >= 0
}

func (p *Pair) MotherPDG() int32 { return p.motherPDG }

// IsTrue reports whether both daughters come from the same generator
// particle of species pdg.
func (p *Pair) IsTrue(pdg int32) bool {
	return p.mother >= 0 && p.motherPDG == pdg
}

func (p *Pair) InvMass(h particle.Hypothesis) float64 {
	return p.sum[h].M()
}

func (p *Pair) Pt(h particle.Hypothesis) float64 {
	return p.sum[h].Pt()
}

func (p *Pair) Eta(h particle.Hypothesis) float64 {
	return p.sum[h].Eta()
}

// Rapidity of the reference vector, so it follows the hypothesised parent
// mass rather than the measured one.
func (p *Pair) Rapidity(h particle.Hypothesis) float64 {
	s := p.ref[h]
	return 0.5 * math.Log((s.E()+s.Pz())/(s.E()-s.Pz()))
}

// InvMassDiff is m(a) - m(b), or Undefined when m(b) <= 0.
func (p *Pair) InvMassDiff(a, b particle.Hypothesis) float64 {
	mb := p.sum[b].M()
	if mb <= 0 {
		return Undefined
	}
	return p.sum[a].M() - mb
}

// InvMassResolution is (m(a) - m(b)) / m(b), or Undefined when m(b) <= 0.
func (p *Pair) InvMassResolution(a, b particle.Hypothesis) float64 {
	mb := p.sum[b].M()
	if mb <= 0 {
		return Undefined
	}
	return (p.sum[a].M() - mb) / mb
}

// MomentumAsymmetry is |pt1 - pt2| / |pt1 + pt2|.
func (p *Pair) MomentumAsymmetry(h particle.Hypothesis) float64 {
	pt1 := p.p1[h].Pt()
	pt2 := p.p2[h].Pt()
	den := math.Abs(pt1 + pt2)
	if den <= 0 {
		return Undefined
	}
	return math.Abs(pt1-pt2) / den
}

// DipAngle is the cosine-like opening proxy in the (pT, pz) plane,
// (pt1*pt2 + pz1*pz2) / (|p1|*|p2|). It is not clamped and is NaN for
// zero-momentum daughters.
func (p *Pair) DipAngle(h particle.Hypothesis) float64 {
	a, b := p.p1[h], p.p2[h]
	return (a.Pt()*b.Pt() + a.Pz()*b.Pz()) / (a.P() * b.P())
}

// CosThetaStar boosts the first daughter into the pair rest frame and returns
// the cosine of its angle to the normal of the production plane, the
// transverse direction of the pair rotated by -90°.
func (p *Pair) CosThetaStar(h particle.Hypothesis) float64 {
	mother := p.sum[h]
	pt := mother.Pt()
	normal := r3.Vec{X: mother.Py() / pt, Y: -mother.Px() / pt}

	beta := r3.Scale(-1/mother.E(), vect(&mother))
	d := p.p1[h]
	boosted := vect(fmom.Boost(&d, beta))

	return r3.Dot(normal, boosted) / r3.Norm(boosted)
}

func add(a, b fmom.PxPyPzE) fmom.PxPyPzE {
	return fmom.NewPxPyPzE(a.Px()+b.Px(), a.Py()+b.Py(), a.Pz()+b.Pz(), a.E()+b.E())
}

func withMass(v fmom.PxPyPzE, mass float64) fmom.PxPyPzE {
	p2 := v.Px()*v.Px() + v.Py()*v.Py() + v.Pz()*v.Pz()
	return fmom.NewPxPyPzE(v.Px(), v.Py(), v.Pz(), math.Sqrt(p2+mass*mass))
}

type momentum interface {
	Px() float64
	Py() float64
	Pz() float64
}

func vect(v momentum) r3.Vec {
	return r3.Vec{X: v.Px(), Y: v.Py(), Z: v.Pz()}
}
