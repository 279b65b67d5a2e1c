package rsnmix

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// FloatArrayFlags is a repeatable float flag. Each value may also be a
// comma-separated list, so "-zedges -10,0,10" and "-zedges -10 -zedges 0
// -zedges 10" are equivalent. The first Set replaces any default.
type FloatArrayFlags struct {
	Array   []float64
	beenSet bool
}

func (f *FloatArrayFlags) Set(valueStr string) error {
	if !f.beenSet {
		f.beenSet = true
		f.Array = nil
	}

	for _, s := range strings.Split(valueStr, ",") {
		value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return err
		}
		f.Array = append(f.Array, value)
	}
	return nil
}

func (f *FloatArrayFlags) String() string {
	return fmt.Sprint(f.Array)
}

// IsSet reports whether the flag was given on the command line.
func (f *FloatArrayFlags) IsSet() bool {
	return f.beenSet
}

// Edges returns a copy of the values in command-line order, for use as bin
// edges. Out-of-order values are left for the axis to reject.
func (f *FloatArrayFlags) Edges() []float64 {
	return append([]float64(nil), f.Array...)
}

// LineColor is the color of the i-th overlaid curve.
func LineColor(i int) color.Color {
	switch i {
	case 1:
		return color.RGBA{G: 255, A: 255}
	case 2:
		return color.RGBA{B: 255, A: 255}
	case 3:
		return color.RGBA{R: 255, B: 127, G: 127, A: 255}
	case 4:
		return color.RGBA{R: 255, A: 255}
	}
	return color.RGBA{A: 255}
}
