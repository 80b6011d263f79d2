package binning

import (
	"fmt"

	"github.com/cwbudde/algo-nicer/timing/core"
)

// EdgesFromGrouping converts an OGIP GROUPING column into edges. A flag of
// +1 starts a new bin; any other value continues the current one. The first
// sample always starts a bin.
func EdgesFromGrouping(flags []int) (Edges, error) {
	n := len(flags)
	if n == 0 {
		return nil, fmt.Errorf("%w: binning: empty grouping column", core.ErrInvalidInput)
	}

	edges := Edges{0}
	for i := 1; i < n; i++ {
		if flags[i] == 1 {
			edges = append(edges, i)
		}
	}

	return append(edges, n), nil
}

// Run groups consecutive samples starting at Start into bins of Width
// samples, up to the start of the next run.
type Run struct {
	Start int
	Width int
}

// EdgesFromRuns builds edges for a series of length n from fixed-width runs.
// Runs must be sorted by Start and begin at 0. A run whose range is not a
// multiple of its width ends with a shorter bin at the next run's start.
// Runs starting at or beyond n are ignored.
func EdgesFromRuns(n int, runs []Run) (Edges, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: binning: series length %d", core.ErrInvalidInput, n)
	}

	if len(runs) == 0 || runs[0].Start != 0 {
		return nil, fmt.Errorf("%w: binning: runs must start at 0", core.ErrInvalidInput)
	}

	edges := Edges{0}
	for i, r := range runs {
		if r.Width < 1 {
			return nil, fmt.Errorf("%w: binning: run %d has width %d", core.ErrInvalidInput, i, r.Width)
		}

		if r.Start >= n {
			break
		}

		end := n
		if i+1 < len(runs) {
			if runs[i+1].Start <= r.Start {
				return nil, fmt.Errorf("%w: binning: runs not sorted at %d", core.ErrInvalidInput, i+1)
			}
			end = min(runs[i+1].Start, n)
		}

		for pos := r.Start + r.Width; pos < end; pos += r.Width {
			edges = append(edges, pos)
		}
		edges = append(edges, end)
	}

	return edges, nil
}
