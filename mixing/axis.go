package mixing

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Axis is a variable-width binning given by its edges. Bin i covers
// [edges[i], edges[i+1]).
type Axis struct {
	edges []float64
}

func NewAxis(edges []float64) (Axis, error) {
	if len(edges) < 2 {
		return Axis{}, errors.New("mixing: axis needs at least two edges")
	}
	for i := 1; i < len(edges); i++ {
		if math.IsNaN(edges[i]) || !(edges[i] > edges[i-1]) {
			return Axis{}, fmt.Errorf("mixing: axis edges not strictly increasing at %d (%v)", i, edges)
		}
	}
	return Axis{edges: append([]float64(nil), edges...)}, nil
}

// Bin returns the bin holding v. Values below the first edge, at or above
// the last edge, or NaN are out of range and are not clamped.
func (a Axis) Bin(v float64) (int, bool) {
	n := len(a.edges)
	if n < 2 || math.IsNaN(v) || v < a.edges[0] || v >= a.edges[n-1] {
		return -1, false
	}
	i := sort.SearchFloat64s(a.edges, v)
	if i < n && a.edges[i] == v {
		return i, true
	}
	return i - 1, true
}

func (a Axis) NBins() int {
	if len(a.edges) < 2 {
		return 0
	}
	return len(a.edges) - 1
}

func (a Axis) Edges() []float64 {
	return append([]float64(nil), a.edges...)
}
