package mixing

import (
	"github.com/decibelcooper/rsnmix/particle"
)

// Event is one buffered event: its accepted particles and the inputs used to
// classify it.
type Event struct {
	ID         uint64
	VertexZ    float64
	Centrality float64
	Particles  []particle.Particle
}

// State of a bucket with respect to mixing.
type State int

const (
	Empty State = iota
	Filling
	Ready
	Full
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Filling:
		return "filling"
	case Ready:
		return "ready"
	case Full:
		return "full"
	}
	return "invalid"
}

// Bucket is a FIFO ring of at most capacity events.
type Bucket struct {
	ring []Event
	head int // oldest
	n    int
	seq  uint64
}

func newBucket(capacity int) *Bucket {
	return &Bucket{ring: make([]Event, capacity)}
}

// push inserts ev and reports whether the oldest event was evicted.
func (b *Bucket) push(ev Event) bool {
	b.seq++
	c := len(b.ring)
	if b.n < c {
		b.ring[(b.head+b.n)%c] = ev
		b.n++
		return false
	}
	b.ring[b.head] = ev
	b.head = (b.head + 1) % c
	return true
}

func (b *Bucket) Len() int { return b.n }

// Seq counts the pushes the bucket has seen.
func (b *Bucket) Seq() uint64 { return b.seq }

func (b *Bucket) state(minOccupancy int) State {
	switch {
	case b.n == 0:
		return Empty
	case b.n == len(b.ring):
		return Full
	case b.n < minOccupancy:
		return Filling
	}
	return Ready
}

// all yields the buffered events oldest first, reading the live ring.
func (b *Bucket) all(yield func(Event) bool) {
	c := len(b.ring)
	for i := 0; i < b.n; i++ {
		if !yield(b.ring[(b.head+i)%c]) {
			return
		}
	}
}
