package axis

import "math"

// DefaultMargin is the relative padding added to both ends of an axis range.
const DefaultMargin = 0.1

// zeroSpanMargin is the padding, in decades, applied when every positive
// value is identical.
const zeroSpanMargin = 0.1

// Summary holds axis statistics for a set of samples.
type Summary struct {
	Length    int
	Finite    int
	NonFinite int
	Positive  int     // strictly positive finite samples
	Min       float64 // over finite samples; NaN when Finite == 0
	Max       float64
	PosMin    float64 // over positive finite samples; NaN when Positive == 0
	PosMax    float64
}

func emptySummary() Summary {
	return Summary{
		Min:    math.NaN(),
		Max:    math.NaN(),
		PosMin: math.NaN(),
		PosMax: math.NaN(),
	}
}

// Calculate summarises values in a single pass.
func Calculate(values []float64) Summary {
	acc := NewAccumulator()
	acc.Update(values)

	return acc.Result()
}

// Accumulator merges statistics over several series.
type Accumulator struct {
	s Summary
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{s: emptySummary()}
}

// Update folds values into the running summary.
func (a *Accumulator) Update(values []float64) {
	for _, x := range values {
		a.s.Length++

		if math.IsNaN(x) || math.IsInf(x, 0) {
			a.s.NonFinite++
			continue
		}

		if a.s.Finite == 0 {
			a.s.Min, a.s.Max = x, x
		} else {
			a.s.Min = math.Min(a.s.Min, x)
			a.s.Max = math.Max(a.s.Max, x)
		}
		a.s.Finite++

		if x <= 0 {
			continue
		}

		if a.s.Positive == 0 {
			a.s.PosMin, a.s.PosMax = x, x
		} else {
			a.s.PosMin = math.Min(a.s.PosMin, x)
			a.s.PosMax = math.Max(a.s.PosMax, x)
		}
		a.s.Positive++
	}
}

// Result returns the summary so far.
func (a *Accumulator) Result() Summary { return a.s }

// Range is an axis interval in axis units (decades for log axes).
type Range [2]float64

// LogRange returns [log10(min) - m, log10(max) + m] over the strictly
// positive finite values of all series, where m is margin times the span.
// If every positive value is equal, m is a fixed 0.1 decade. ok is false
// when no positive finite value exists.
func LogRange(margin float64, series ...[]float64) (r Range, ok bool) {
	acc := NewAccumulator()
	for _, s := range series {
		acc.Update(s)
	}

	return acc.Result().LogRange(margin)
}

// LogRange is the Summary form of the package-level LogRange.
func (s Summary) LogRange(margin float64) (Range, bool) {
	if s.Positive == 0 {
		return Range{}, false
	}

	lo, hi := math.Log10(s.PosMin), math.Log10(s.PosMax)

	m := (hi - lo) * margin
	if hi == lo {
		m = zeroSpanMargin
	}

	return Range{lo - m, hi + m}, true
}

// LinearRange returns [min - m, max + m] over the finite values, with m
// margin times the span, or 10% of |min| (1 when zero) for a flat series.
func (s Summary) LinearRange(margin float64) (Range, bool) {
	if s.Finite == 0 {
		return Range{}, false
	}

	m := (s.Max - s.Min) * margin
	if s.Max == s.Min {
		m = math.Abs(s.Min) * zeroSpanMargin
		if m == 0 {
			m = 1
		}
	}

	return Range{s.Min - m, s.Max + m}, true
}
