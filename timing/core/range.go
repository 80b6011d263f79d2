package core

import (
	"fmt"
	"math"
)

// Range is a closed interval [Low, High] on a physical axis (keV, s, Hz).
type Range struct {
	Low  float64
	High float64
}

// Unbounded returns the range accepting every value.
func Unbounded() Range {
	return Range{Low: math.Inf(-1), High: math.Inf(1)}
}

// NewRange returns a validated range.
func NewRange(low, high float64) (Range, error) {
	r := Range{Low: low, High: high}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}

	return r, nil
}

// Validate reports whether Low <= High and neither bound is NaN.
func (r Range) Validate() error {
	if math.IsNaN(r.Low) || math.IsNaN(r.High) {
		return fmt.Errorf("%w: range bound is NaN", ErrInvalidInput)
	}

	if r.Low > r.High {
		return fmt.Errorf("%w: range [%g, %g] is inverted", ErrInvalidInput, r.Low, r.High)
	}

	return nil
}

// Contains reports whether v lies inside the closed range.
func (r Range) Contains(v float64) bool {
	return v >= r.Low && v <= r.High
}

// Clamp limits v to the range. A NaN v stays NaN.
func (r Range) Clamp(v float64) float64 {
	return math.Min(math.Max(v, r.Low), r.High)
}

// IsUnbounded reports whether both bounds are infinite.
func (r Range) IsUnbounded() bool {
	return math.IsInf(r.Low, -1) && math.IsInf(r.High, 1)
}

// String formats the range for logs and CLI output.
func (r Range) String() string {
	if r.IsUnbounded() {
		return "all"
	}

	return fmt.Sprintf("%g-%g", r.Low, r.High)
}
