package pair

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/decibelcooper/rsnmix/particle"
)

const (
	kaonMass = 0.493677
	phiMass  = 1.019461
)

func newParticle(reco, truth r3.Vec, mother int64) *particle.Particle {
	return &particle.Particle{
		Mom:       [2]r3.Vec{reco, truth},
		Mother:    mother,
		MotherPDG: 333,
		Matched:   true,
	}
}

func filledPair() (*Pair, *particle.Particle, *particle.Particle) {
	a := newParticle(r3.Vec{X: 0.8, Y: 0.3, Z: -0.4}, r3.Vec{X: 0.81, Y: 0.29, Z: -0.41}, 7)
	b := newParticle(r3.Vec{X: -0.2, Y: 0.9, Z: 1.3}, r3.Vec{X: -0.21, Y: 0.88, Z: 1.31}, 7)
	var p Pair
	p.Fill(a, b, kaonMass, kaonMass, phiMass)
	return &p, a, b
}

func TestFill_Additivity(t *testing.T) {
	t.Parallel()

	p, a, b := filledPair()
	for _, h := range []particle.Hypothesis{particle.Reco, particle.Truth} {
		t.Run(h.String(), func(t *testing.T) {
			v1 := a.Set4Vector(h, kaonMass)
			v2 := b.Set4Vector(h, kaonMass)
			sum := p.Sum(h)
			assert.Equal(t, v1.Px()+v2.Px(), sum.Px())
			assert.Equal(t, v1.Py()+v2.Py(), sum.Py())
			assert.Equal(t, v1.Pz()+v2.Pz(), sum.Pz())
			assert.Equal(t, v1.E()+v2.E(), sum.E())
		})
	}
}

func TestFill_RefMass(t *testing.T) {
	t.Parallel()

	p, _, _ := filledPair()
	for _, h := range []particle.Hypothesis{particle.Reco, particle.Truth} {
		ref := p.Ref(h)
		sum := p.Sum(h)
		assert.Equal(t, sum.Px(), ref.Px())
		assert.Equal(t, sum.Pz(), ref.Pz())
		assert.InDelta(t, phiMass, ref.M(), 1e-9)
	}

	p.SetRefMass(3.0969)
	ref := p.Ref(particle.Truth)
	assert.InDelta(t, 3.0969, ref.M(), 1e-9)
	assert.Equal(t, 3.0969, p.RefMass())
}

func TestFill_Mother(t *testing.T) {
	t.Parallel()

	p, a, b := filledPair()
	m, ok := p.Mother()
	require.True(t, ok)
	assert.Equal(t, int64(7), m)
	assert.Equal(t, int32(333), p.MotherPDG())
	assert.True(t, p.IsTrue(333))
	assert.False(t, p.IsTrue(313))

	b.Mother = 8
	p.Fill(a, b, kaonMass, kaonMass, phiMass)
	_, ok = p.Mother()
	assert.False(t, ok)
	assert.Equal(t, int32(0), p.MotherPDG())

	a.Mother, b.Mother = particle.NoMother, particle.NoMother
	p.Fill(a, b, kaonMass, kaonMass, phiMass)
	_, ok = p.Mother()
	assert.False(t, ok, "missing parents are not a common parent")
}

func TestInvMassResolution(t *testing.T) {
	t.Parallel()

	p, _, _ := filledPair()
	reco := p.InvMass(particle.Reco)
	truth := p.InvMass(particle.Truth)
	require.Greater(t, truth, 0.0)
	assert.Equal(t, (reco-truth)/truth, p.InvMassResolution(particle.Reco, particle.Truth))
	assert.Equal(t, reco-truth, p.InvMassDiff(particle.Reco, particle.Truth))

	// Massless, parallel truth daughters have zero summed mass.
	a := newParticle(r3.Vec{X: 1}, r3.Vec{X: 1}, 1)
	b := newParticle(r3.Vec{Y: 1}, r3.Vec{X: 2}, 1)
	p.Fill(a, b, 0, 0, phiMass)
	assert.Equal(t, 0.0, p.InvMass(particle.Truth))
	assert.Equal(t, Undefined, p.InvMassResolution(particle.Reco, particle.Truth))
	assert.Equal(t, 1e20, p.InvMassDiff(particle.Reco, particle.Truth))
}

func TestMomentumAsymmetry(t *testing.T) {
	t.Parallel()

	a := newParticle(r3.Vec{X: 3}, r3.Vec{}, 1)
	b := newParticle(r3.Vec{Y: 1}, r3.Vec{}, 1)
	var p Pair
	p.Fill(a, b, kaonMass, kaonMass, phiMass)
	assert.InDelta(t, 0.5, p.MomentumAsymmetry(particle.Reco), 1e-12)
	assert.Equal(t, Undefined, p.MomentumAsymmetry(particle.Truth))
}

func TestDipAngle(t *testing.T) {
	t.Parallel()

	a := newParticle(r3.Vec{X: 1, Z: 1}, r3.Vec{X: 1}, 1)
	b := newParticle(r3.Vec{X: 2, Z: 2}, r3.Vec{Z: 1}, 1)
	var p Pair
	p.Fill(a, b, kaonMass, kaonMass, phiMass)
	assert.InDelta(t, 1, p.DipAngle(particle.Reco), 1e-12)
	assert.InDelta(t, 0, p.DipAngle(particle.Truth), 1e-12)
}

func TestCosThetaStar(t *testing.T) {
	t.Parallel()

	// Symmetric decay along ±y in the rest frame, parent moving along +x.
	const (
		q    = 0.127
		beta = 0.6
	)
	eStar := math.Sqrt(q*q + kaonMass*kaonMass)
	gamma := 1 / math.Sqrt(1-beta*beta)
	px := gamma * beta * eStar

	a := newParticle(r3.Vec{X: px, Y: q}, r3.Vec{X: px, Y: -q}, 1)
	b := newParticle(r3.Vec{X: px, Y: -q}, r3.Vec{X: px, Y: q}, 1)
	var p Pair
	p.Fill(a, b, kaonMass, kaonMass, phiMass)

	before := p.Daughter(First, particle.Reco)
	assert.InDelta(t, -1, p.CosThetaStar(particle.Reco), 1e-9)
	assert.InDelta(t, 1, p.CosThetaStar(particle.Truth), 1e-9)
	assert.Equal(t, before, p.Daughter(First, particle.Reco), "boost must not alter the stored daughter")
}

func TestInvertDaughter(t *testing.T) {
	t.Parallel()

	p, _, _ := filledPair()
	orig := [2]struct{ sum, p2 [4]float64 }{}
	for h := range orig {
		s := p.Sum(particle.Hypothesis(h))
		d := p.Daughter(Second, particle.Hypothesis(h))
		orig[h].sum = [4]float64{s.Px(), s.Py(), s.Pz(), s.E()}
		orig[h].p2 = [4]float64{d.Px(), d.Py(), d.Pz(), d.E()}
	}

	p.SetRefMass(0.896)
	p.InvertDaughter(Second)

	flipped := p.Daughter(Second, particle.Reco)
	assert.Equal(t, -orig[0].p2[0], flipped.Px())
	assert.Equal(t, orig[0].p2[3], flipped.E())
	ref := p.Ref(particle.Reco)
	assert.InDelta(t, 0.896, ref.M(), 1e-9, "reference mass is kept across inversion")

	p.InvertDaughter(Second)
	for h := range orig {
		s := p.Sum(particle.Hypothesis(h))
		assert.InDeltaSlice(t, orig[h].sum[:], []float64{s.Px(), s.Py(), s.Pz(), s.E()}, 1e-12)
	}
}

func TestDaughterAccessors(t *testing.T) {
	t.Parallel()

	p, a, b := filledPair()
	assert.InDelta(t, a.Pt(particle.Reco), p.DaughterPt(First, particle.Reco), 1e-12)
	assert.InDelta(t, b.Pt(particle.Truth), p.DaughterPt(Second, particle.Truth), 1e-12)
	assert.Equal(t, b.Mom[particle.Reco], p.DaughterMomentum(Second, particle.Reco))
}
