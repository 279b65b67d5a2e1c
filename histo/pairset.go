// Package histo books and fills the histograms of the pair and correlation
// analyses, and writes them out.
package histo

import (
	"math"

	"go-hep.org/x/hep/hbook"

	"github.com/decibelcooper/rsnmix/pair"
	"github.com/decibelcooper/rsnmix/particle"
)

// Kind classifies a pair by how it was built.
type Kind int

const (
	Unlike Kind = iota
	LikePP
	LikeMM
	Rotated
	Mixed
	True
	NumKinds
)

var kindNames = [NumKinds]string{"unlike", "likepp", "likemm", "rotated", "mixed", "true"}

func (k Kind) String() string {
	if k < 0 || k >= NumKinds {
		return "invalid"
	}
	return kindNames[k]
}

// KindOf classifies a same-event pair by the charges of its daughters.
func KindOf(q1, q2 int) Kind {
	switch {
	case q1*q2 < 0:
		return Unlike
	case q1 > 0:
		return LikePP
	}
	return LikeMM
}

type Binning struct {
	N        int
	Min, Max float64
}

// PairSet holds the invariant-mass spectra of every pair kind and the
// resolution and shape observables of unlike-sign pairs.
type PairSet struct {
	Mass [NumKinds]*hbook.H1D

	MassDiff     *hbook.H1D
	MassRes      *hbook.H1D
	Asymmetry    *hbook.H1D
	DipAngle     *hbook.H1D
	CosThetaStar *hbook.H1D
	Pt           *hbook.H1D
}

func NewPairSet(mass Binning) *PairSet {
	s := &PairSet{
		MassDiff:     named(hbook.NewH1D(100, -0.05, 0.05), "mass_diff"),
		MassRes:      named(hbook.NewH1D(100, -0.05, 0.05), "mass_res"),
		Asymmetry:    named(hbook.NewH1D(50, 0, 1), "pt_asym"),
		DipAngle:     named(hbook.NewH1D(100, -1, 1), "dip_angle"),
		CosThetaStar: named(hbook.NewH1D(50, -1, 1), "cos_theta_star"),
		Pt:           named(hbook.NewH1D(50, 0, 10), "pair_pt"),
	}
	for k := range s.Mass {
		s.Mass[k] = named(hbook.NewH1D(mass.N, mass.Min, mass.Max), "mass_"+Kind(k).String())
	}
	return s
}

// FillMass fills the reconstructed invariant mass of p into the spectrum of
// kind k.
func (s *PairSet) FillMass(k Kind, p *pair.Pair) {
	s.Mass[k].Fill(p.InvMass(particle.Reco), 1)
}

// FillShape fills the resolution and shape observables of p. Undefined and
// non-finite values are skipped.
func (s *PairSet) FillShape(p *pair.Pair, matched bool) {
	if matched {
		fillDefined(s.MassDiff, p.InvMassDiff(particle.Reco, particle.Truth))
		fillDefined(s.MassRes, p.InvMassResolution(particle.Reco, particle.Truth))
	}
	fillDefined(s.Asymmetry, p.MomentumAsymmetry(particle.Reco))
	fillDefined(s.DipAngle, p.DipAngle(particle.Reco))
	fillDefined(s.CosThetaStar, p.CosThetaStar(particle.Reco))
	s.Pt.Fill(p.Pt(particle.Reco), 1)
}

// Objects returns every histogram keyed by name.
func (s *PairSet) Objects() map[string]any {
	objs := map[string]any{}
	for k, h := range s.Mass {
		objs["mass_"+Kind(k).String()] = h
	}
	for _, h := range []*hbook.H1D{s.MassDiff, s.MassRes, s.Asymmetry, s.DipAngle, s.CosThetaStar, s.Pt} {
		objs[h.Name()] = h
	}
	return objs
}

func fillDefined(h *hbook.H1D, v float64) {
	if v == pair.Undefined || math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	h.Fill(v, 1)
}

func named(h *hbook.H1D, name string) *hbook.H1D {
	h.Annotation()["name"] = name
	return h
}
