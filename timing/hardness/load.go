package hardness

import (
	"github.com/cwbudde/algo-nicer/internal/archive"
	"github.com/cwbudde/algo-nicer/timing/core"
)

// TicksPerSecond converts the time column of band light curves to seconds.
const TicksPerSecond = 8

// Text columns of band light curves: time, then the four band rates.
var columns = []int{0, 5, 6, 7, 8}

// Load reads the band light curve at path and computes its diagram points.
func Load(r *archive.Reader, path string, opts ...core.ProcessorOption) (*Result, error) {
	in, err := Read(r, path)
	if err != nil {
		return nil, err
	}

	return Compute(in, opts...)
}

// Read loads the band light curve at path.
func Read(r *archive.Reader, path string) (Input, error) {
	cols, err := r.ReadColumns(path, columns...)
	if err != nil {
		return Input{}, err
	}

	in := Input{Time: core.Scaled(cols[0], 1.0/TicksPerSecond)}
	copy(in.Bands[:], cols[1:])

	return in, nil
}
