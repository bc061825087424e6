package edges

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrInvalidKernelSize is returned for kernel sizes that are even or below 3.
var ErrInvalidKernelSize = errors.New("edges: kernel size must be odd and >= 3")

// MinKernelSize is the smallest kernel evaluated by the detector.
const MinKernelSize = 3

// Axis selects the direction along which a kernel differences.
type Axis int

const (
	// AxisX differences across rows: top rows negative, bottom rows positive.
	AxisX Axis = iota

	// AxisY differences across columns: left columns negative, right positive.
	AxisY
)

// String implements fmt.Stringer.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// ValidKernelSize reports whether size is odd and at least MinKernelSize.
func ValidKernelSize(size int) bool {
	return size >= MinKernelSize && size%2 == 1
}

// NewKernel builds a size x size directional step kernel for axis.
//
// With mid = size/2, AxisX sets rows [0, mid) to -1 and rows (mid, size) to
// +1; AxisY does the same for columns. Row mid and column mid are then zeroed
// for both axes.
func NewKernel(size int, axis Axis) (*mat.Dense, error) {
	if !ValidKernelSize(size) {
		return nil, fmt.Errorf("size %d: %w", size, ErrInvalidKernelSize)
	}
	if axis != AxisX && axis != AxisY {
		return nil, fmt.Errorf("unknown axis %v", axis)
	}

	mid := size / 2
	k := mat.NewDense(size, size, nil)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if r == mid || c == mid {
				continue
			}
			pos := r
			if axis == AxisY {
				pos = c
			}
			if pos < mid {
				k.Set(r, c, -1)
			} else {
				k.Set(r, c, 1)
			}
		}
	}
	return k, nil
}
