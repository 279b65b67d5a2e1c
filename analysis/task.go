// Package analysis runs the per-event resonance and correlation analysis on
// top of the pair engine and the mixing pool.
package analysis

import (
	"github.com/decibelcooper/rsnmix/config"
	"github.com/decibelcooper/rsnmix/correlation"
	"github.com/decibelcooper/rsnmix/histo"
	"github.com/decibelcooper/rsnmix/mixing"
	"github.com/decibelcooper/rsnmix/pair"
	"github.com/decibelcooper/rsnmix/particle"
)

type Summary struct {
	Events      int
	OutOfRange  int
	NotMixable  int
	SamePairs   int
	MixedPairs  int
	MixedEvents int
}

// Task processes events one at a time. The pool is owned by the caller and
// lives for the whole run.
type Task struct {
	cfg   config.Config
	pool  *mixing.Manager
	corr  *correlation.Correlator
	pairs *histo.PairSet
	corrs *histo.CorrSet

	p   pair.Pair
	sum Summary
}

func NewTask(cfg config.Config, pool *mixing.Manager, corr *correlation.Correlator, pairs *histo.PairSet, corrs *histo.CorrSet) *Task {
	return &Task{
		cfg:   cfg,
		pool:  pool,
		corr:  corr,
		pairs: pairs,
		corrs: corrs,
	}
}

// Process analyses ev. Partners are drawn from the pool before ev is pushed,
// so ev is never mixed with itself. Events outside the pool axes still
// contribute same-event pairs but are neither mixed nor buffered.
func (t *Task) Process(ev mixing.Event) {
	t.sum.Events++
	t.sameEvent(ev.Particles)

	key, ok := t.pool.Classify(ev)
	if !ok {
		t.sum.OutOfRange++
		return
	}

	if t.pool.IsMixable(key) {
		for partner := range t.pool.Partners(key) {
			t.sum.MixedEvents++
			t.mixedEvent(ev.Particles, partner.Particles)
		}
	} else {
		t.sum.NotMixable++
	}

	t.pool.PushEvent(key, ev)
}

func (t *Task) Summary() Summary { return t.sum }

func (t *Task) sameEvent(parts []particle.Particle) {
	pc := t.cfg.Pair
	m1, m2 := pc.DaughterMasses[0], pc.DaughterMasses[1]
	same := pc.SameDaughters()

	for i := range parts {
		start := 0
		if same {
			start = i + 1
		}
		for j := start; j < len(parts); j++ {
			if i == j {
				continue
			}
			a, b := &parts[i], &parts[j]
			t.sum.SamePairs++
			t.p.Fill(a, b, m1, m2, pc.ReferenceMass)

			kind := histo.KindOf(a.Charge, b.Charge)
			t.pairs.FillMass(kind, &t.p)
			if kind != histo.Unlike {
				continue
			}

			t.pairs.FillShape(&t.p, a.Matched && b.Matched)
			if t.p.IsTrue(pc.MotherPDG) {
				t.pairs.FillMass(histo.True, &t.p)
			}

			t.p.InvertDaughter(pair.Second)
			t.pairs.FillMass(histo.Rotated, &t.p)
			t.p.InvertDaughter(pair.Second)
		}
	}

	t.correlate(parts, parts, false)
}

func (t *Task) mixedEvent(parts, partners []particle.Particle) {
	pc := t.cfg.Pair
	for i := range parts {
		a := &parts[i]
		for j := range partners {
			b := &partners[j]
			if a.Charge*b.Charge >= 0 {
				continue
			}
			t.sum.MixedPairs++
			t.p.Fill(a, b, pc.DaughterMasses[0], pc.DaughterMasses[1], pc.ReferenceMass)
			t.pairs.FillMass(histo.Mixed, &t.p)
		}
	}

	t.correlate(parts, partners, true)
}

func (t *Task) correlate(triggers, assocs []particle.Particle, mixed bool) {
	minPt := t.cfg.Selection.TriggerMinPt
	for i := range triggers {
		trig := &triggers[i]
		if trig.Pt(particle.Reco) < minPt {
			continue
		}
		for j := range assocs {
			if !mixed && i == j {
				continue
			}
			dPhi, dEta := t.corr.Correlate(trig, &assocs[j], particle.Reco)
			t.corrs.Fill(mixed, dPhi, dEta)
		}
	}
}
