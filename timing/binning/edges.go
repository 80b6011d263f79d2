package binning

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-nicer/timing/core"
)

// Edges is an ordered set of indices into a series. Bin i covers the
// half-open interval [Edges[i], Edges[i+1]). A valid set starts at 0, ends
// at the series length and is strictly increasing.
type Edges []int

// Bins returns the number of bins described by e.
func (e Edges) Bins() int {
	if len(e) < 2 {
		return 0
	}

	return len(e) - 1
}

// Widths returns the sample count of every bin.
func (e Edges) Widths() []int {
	if len(e) < 2 {
		return nil
	}

	out := make([]int, len(e)-1)
	for i := range out {
		out[i] = e[i+1] - e[i]
	}

	return out
}

// Validate checks e against a series of length n.
func (e Edges) Validate(n int) error {
	if len(e) < 2 {
		return fmt.Errorf("%w: binning: need at least two edges, got %d", core.ErrInvalidInput, len(e))
	}

	if e[0] != 0 {
		return fmt.Errorf("%w: binning: first edge is %d, want 0", core.ErrInvalidInput, e[0])
	}

	if last := e[len(e)-1]; last != n {
		return fmt.Errorf("%w: binning: last edge is %d, want %d", core.ErrInvalidInput, last, n)
	}

	for i := 1; i < len(e); i++ {
		if e[i] <= e[i-1] {
			return fmt.Errorf("%w: binning: edges not strictly increasing at %d (%d <= %d)",
				core.ErrInvalidInput, i, e[i], e[i-1])
		}
	}

	return nil
}

// Identity returns edges placing every sample in its own bin.
func Identity(n int) Edges {
	if n <= 0 {
		return nil
	}

	e := make(Edges, n+1)
	for i := range e {
		e[i] = i
	}

	return e
}

// ComputeEdges walks counts left to right and closes a bin as soon as its
// running sum reaches minCount. A trailing remainder that never reaches
// minCount is merged into the previous bin, so no undersized bin is left
// isolated at the end of the series. If the whole series stays below
// minCount the result is a single bin.
//
// A minCount of zero or less closes every sample.
func ComputeEdges(minCount float64, counts core.Series) (Edges, error) {
	n := len(counts)
	if n == 0 {
		return nil, fmt.Errorf("%w: binning: empty counts series", core.ErrInvalidInput)
	}

	if math.IsNaN(minCount) {
		return nil, fmt.Errorf("%w: binning: minimum count is NaN", core.ErrInvalidInput)
	}

	if minCount <= 0 {
		return Identity(n), nil
	}

	edges := make(Edges, 1, n/4+2)
	sum := 0.0

	for i, c := range counts {
		sum += c
		if sum >= minCount {
			edges = append(edges, i+1)
			sum = 0
		}
	}

	if edges[len(edges)-1] != n {
		if len(edges) > 1 {
			edges[len(edges)-1] = n
		} else {
			edges = append(edges, n)
		}
	}

	return edges, nil
}
