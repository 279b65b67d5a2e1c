// Package mixing buffers previous events by (vertex-z, centrality) class and
// serves them as partners for mixed-event background.
//
// Processing is sequential. For each event the caller classifies it, draws
// partners from the pool as it was before this event, and only then pushes
// the event, so an event is never mixed with itself.
package mixing

import (
	"fmt"
	"iter"
)

const (
	DefaultCapacity     = 10
	DefaultMinOccupancy = 5
)

type Config struct {
	VertexZEdges    []float64
	CentralityEdges []float64
	// Capacity is the number of events kept per bucket.
	Capacity int
	// MinOccupancy is the number of buffered events needed before a
	// bucket can be mixed.
	MinOccupancy int
}

// Key identifies a bucket.
type Key struct {
	Z, Cent int
}

// OutOfRange is returned by Classify for events outside the axes.
var OutOfRange = Key{Z: -1, Cent: -1}

type Stats struct {
	Pushed  uint64
	Evicted uint64
	Buckets int
}

type Manager struct {
	zAxis, centAxis Axis
	capacity        int
	minOccupancy    int

	buckets []*Bucket // z-major
	stats   Stats
}

func NewManager(cfg Config) (*Manager, error) {
	zAxis, err := NewAxis(cfg.VertexZEdges)
	if err != nil {
		return nil, fmt.Errorf("vertex-z axis: %w", err)
	}
	centAxis, err := NewAxis(cfg.CentralityEdges)
	if err != nil {
		return nil, fmt.Errorf("centrality axis: %w", err)
	}

	if cfg.Capacity == 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.MinOccupancy == 0 {
		cfg.MinOccupancy = min(DefaultMinOccupancy, cfg.Capacity)
	}
	if cfg.Capacity < 1 {
		return nil, fmt.Errorf("mixing: invalid capacity %d", cfg.Capacity)
	}
	if cfg.MinOccupancy < 1 || cfg.MinOccupancy > cfg.Capacity {
		return nil, fmt.Errorf("mixing: min occupancy %d outside [1, %d]", cfg.MinOccupancy, cfg.Capacity)
	}

	return &Manager{
		zAxis:        zAxis,
		centAxis:     centAxis,
		capacity:     cfg.Capacity,
		minOccupancy: cfg.MinOccupancy,
		buckets:      make([]*Bucket, zAxis.NBins()*centAxis.NBins()),
	}, nil
}

func (m *Manager) Capacity() int     { return m.capacity }
func (m *Manager) MinOccupancy() int { return m.minOccupancy }

// Classify maps an event to its bucket. Events outside either axis give
// (OutOfRange, false) and must not be mixed or pushed.
func (m *Manager) Classify(ev Event) (Key, bool) {
	z, ok := m.zAxis.Bin(ev.VertexZ)
	if !ok {
		return OutOfRange, false
	}
	c, ok := m.centAxis.Bin(ev.Centrality)
	if !ok {
		return OutOfRange, false
	}
	return Key{Z: z, Cent: c}, true
}

func (m *Manager) index(k Key) (int, bool) {
	if k.Z < 0 || k.Z >= m.zAxis.NBins() || k.Cent < 0 || k.Cent >= m.centAxis.NBins() {
		return -1, false
	}
	return k.Z*m.centAxis.NBins() + k.Cent, true
}

func (m *Manager) bucket(k Key) *Bucket {
	i, ok := m.index(k)
	if !ok {
		return nil
	}
	return m.buckets[i]
}

// PushEvent appends ev to bucket k, evicting the oldest event when the
// bucket is full. k must come from Classify.
func (m *Manager) PushEvent(k Key, ev Event) {
	i, ok := m.index(k)
	if !ok {
		panic(fmt.Sprintf("mixing: push to invalid bucket %+v", k))
	}
	b := m.buckets[i]
	if b == nil {
		b = newBucket(m.capacity)
		m.buckets[i] = b
		m.stats.Buckets++
	}
	if b.push(ev) {
		m.stats.Evicted++
	}
	m.stats.Pushed++
}

func (m *Manager) Occupancy(k Key) int {
	b := m.bucket(k)
	if b == nil {
		return 0
	}
	return b.Len()
}

func (m *Manager) State(k Key) State {
	b := m.bucket(k)
	if b == nil {
		return Empty
	}
	return b.state(m.minOccupancy)
}

// Seq returns the number of pushes bucket k has received.
func (m *Manager) Seq(k Key) uint64 {
	b := m.bucket(k)
	if b == nil {
		return 0
	}
	return b.Seq()
}

// IsMixable reports whether bucket k holds at least the minimum number of
// events.
func (m *Manager) IsMixable(k Key) bool {
	return m.Occupancy(k) >= m.minOccupancy
}

// Partners yields the events buffered in bucket k, oldest first. The bucket
// is looked up on every iteration, so a sequence taken before the first push
// sees later pushes. Call it before pushing the current event and check
// IsMixable first.
func (m *Manager) Partners(k Key) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		if b := m.bucket(k); b != nil {
			b.all(yield)
		}
	}
}

// PartnersExcept is Partners skipping the buffered event with ID current, for
// callers that push before drawing. IDs must then be unique over the run.
func (m *Manager) PartnersExcept(k Key, current uint64) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for ev := range m.Partners(k) {
			if ev.ID == current {
				continue
			}
			if !yield(ev) {
				return
			}
		}
	}
}

func (m *Manager) Stats() Stats { return m.stats }
