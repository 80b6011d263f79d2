package core

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// Scaled returns s multiplied by k. s is left untouched.
func Scaled(s Series, k float64) Series {
	if len(s) == 0 {
		return Series{}
	}

	out := make(Series, len(s))
	vecmath.ScaleBlock(out, s, k)

	return out
}

// Product returns the element-wise product a[i]*b[i].
func Product(a, b Series) (Series, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: product of %d and %d samples", ErrInvalidInput, len(a), len(b))
	}

	out := make(Series, len(a))
	if len(a) > 0 {
		vecmath.MulBlock(out, a, b)
	}

	return out, nil
}

// Add returns a[i] + b[i].
func Add(a, b Series) (Series, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: sum of %d and %d samples", ErrInvalidInput, len(a), len(b))
	}

	out := a.Clone()
	if len(a) > 0 {
		vecmath.AddBlockInPlace(out, b)
	}

	return out, nil
}

// Difference returns a[i] - b[i].
func Difference(a, b Series) (Series, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: difference of %d and %d samples", ErrInvalidInput, len(a), len(b))
	}

	if len(a) == 0 {
		return Series{}, nil
	}

	out := make(Series, len(a))
	vecmath.ScaleBlock(out, b, -1)
	vecmath.AddBlockInPlace(out, a)

	return out, nil
}

// Quotient returns a[i] / b[i] with IEEE semantics: division by zero yields
// ±Inf or NaN rather than an error.
func Quotient(a, b Series) (Series, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: quotient of %d and %d samples", ErrInvalidInput, len(a), len(b))
	}

	out := make(Series, len(a))
	for i := range a {
		out[i] = a[i] / b[i]
	}

	return out, nil
}
