// Package proioin turns proio EIC events into mixing events: selected
// reconstructed tracks matched to their generator particles, plus the
// vertex and centrality used for pool classification.
package proioin

import (
	"fmt"
	"math"

	"github.com/proio-org/go-proio"
	"github.com/proio-org/go-proio-pb/model/eic"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/decibelcooper/rsnmix/config"
	"github.com/decibelcooper/rsnmix/mixing"
	"github.com/decibelcooper/rsnmix/particle"
)

type Options struct {
	MinPt                 float64
	MaxAbsEta             float64
	SecondaryRadius       float64
	ReferenceMultiplicity float64
}

func OptionsFrom(sel config.Selection) Options {
	return Options{
		MinPt:                 sel.MinPt,
		MaxAbsEta:             sel.MaxAbsEta,
		SecondaryRadius:       sel.SecondaryRadius,
		ReferenceMultiplicity: sel.ReferenceMultiplicity,
	}
}

// Reader converts the events of one or more proio files. Event IDs count
// from 1 over everything the Reader has scanned, so they stay unique when a
// run spans several files.
type Reader struct {
	opts   Options
	events uint64
}

func NewReader(opts Options) *Reader {
	return &Reader{opts: opts}
}

// Events returns the number of events scanned so far.
func (r *Reader) Events() uint64 { return r.events }

// Scan calls fn for every event of the proio file, in file order.
func (r *Reader) Scan(filename string, fn func(mixing.Event)) error {
	reader, err := proio.Open(filename)
	if err != nil {
		return fmt.Errorf("could not open %s: %w", filename, err)
	}
	defer reader.Close()

	for event := range reader.ScanEvents() {
		r.events++
		fn(Convert(event, r.events, r.opts))
	}
	return nil
}

// Convert builds the mixing event of one proio event.
func Convert(event *proio.Event, id uint64, opts Options) mixing.Event {
	ev := mixing.Event{ID: id, VertexZ: math.NaN()}

	for _, entryID := range event.TaggedEntries("GenStable") {
		part, ok := event.GetEntry(entryID).(*eic.Particle)
		if ok && part.GetVertex() != nil {
			ev.VertexZ = part.GetVertex().GetZ()
			break
		}
	}

	for _, entryID := range event.TaggedEntries("Reconstructed") {
		track, ok := event.GetEntry(entryID).(*eic.Track)
		if !ok || len(track.Segment) == 0 {
			continue
		}

		seg := track.Segment[0]
		q := int(seg.GetChargesign())
		poq := seg.GetPoq()
		p := particle.Particle{
			Index:  len(ev.Particles),
			Charge: q,
			Mother: particle.NoMother,
		}
		p.Mom[particle.Reco] = r3.Vec{
			X: poq.GetX() * float64(q),
			Y: poq.GetY() * float64(q),
			Z: poq.GetZ() * float64(q),
		}
		if !opts.accept(&p) {
			continue
		}

		if partID, ok := matchTruth(event, track); ok {
			if part, ok := event.GetEntry(partID).(*eic.Particle); ok {
				setTruth(event, &p, part, opts)
			}
		}
		ev.Particles = append(ev.Particles, p)
	}

	ev.Centrality = centrality(len(ev.Particles), opts.ReferenceMultiplicity)
	return ev
}

func (o Options) accept(p *particle.Particle) bool {
	if p.Charge == 0 {
		return false
	}
	if p.Pt(particle.Reco) < o.MinPt {
		return false
	}
	return math.Abs(p.Eta(particle.Reco)) <= o.MaxAbsEta
}

// matchTruth returns the generator particle contributing the most simulated
// hits to the track's observations. Ties go to the lower entry ID.
func matchTruth(event *proio.Event, track *eic.Track) (uint64, bool) {
	partCandID := make(map[uint64]uint64)
	for _, obsID := range track.Observation {
		eDep, ok := event.GetEntry(obsID).(*eic.EnergyDep)
		if !ok {
			continue
		}

		for _, sourceID := range eDep.Source {
			simHit, ok := event.GetEntry(sourceID).(*eic.SimHit)
			if !ok {
				continue
			}

			partCandID[simHit.GetParticle()]++
		}
	}
	return majority(partCandID)
}

func majority(counts map[uint64]uint64) (uint64, bool) {
	partID := uint64(0)
	hitCount := uint64(0)
	for id, count := range counts {
		if count > hitCount || (count == hitCount && id < partID) {
			partID = id
			hitCount = count
		}
	}
	return partID, hitCount > 0
}

func setTruth(event *proio.Event, p *particle.Particle, part *eic.Particle, opts Options) {
	p.Matched = true
	p.PDG = part.GetPdg()
	p.Mom[particle.Truth] = r3.Vec{
		X: float64(part.GetP().GetX()),
		Y: float64(part.GetP().GetY()),
		Z: float64(part.GetP().GetZ()),
	}

	if parents := part.GetParent(); len(parents) > 0 {
		p.Mother = int64(parents[0])
		if mother, ok := event.GetEntry(parents[0]).(*eic.Particle); ok {
			p.MotherPDG = mother.GetPdg()
		}
	}

	switch {
	case isWeakDecay(p.MotherPDG):
		p.Flags |= particle.FromWeakDecay
	case part.GetVertex() != nil:
		v := part.GetVertex()
		if math.Hypot(v.GetX(), v.GetY()) > opts.SecondaryRadius {
			p.Flags |= particle.FromMaterial
		}
	}
}

// isWeakDecay reports whether pdg is a weakly decaying strange hadron.
func isWeakDecay(pdg int32) bool {
	if pdg < 0 {
		pdg = -pdg
	}
	switch pdg {
	case 310, 130, 321, 3122, 3222, 3112, 3312, 3322, 3334:
		return true
	}
	return false
}

// centrality maps the accepted multiplicity onto a percentile, 0 for the
// busiest events.
func centrality(n int, ref float64) float64 {
	return 100 * math.Max(0, 1-float64(n)/ref)
}
