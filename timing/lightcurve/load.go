package lightcurve

import (
	"fmt"

	"github.com/cwbudde/algo-nicer/internal/archive"
	"github.com/cwbudde/algo-nicer/timing/core"
)

// Text columns of light curve products.
const (
	columnTime      = 0
	columnCounts    = 2
	columnDetectors = 3
)

// Load reads the light curve at path and its ".bg-lc.gz" companion, then
// normalizes them.
func Load(r *archive.Reader, path string, opts ...core.ProcessorOption) (*Result, error) {
	in, err := Read(r, path)
	if err != nil {
		return nil, err
	}

	res, err := Normalize(in, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return res, nil
}

// Read loads the light curve at path and its background into an Input.
func Read(r *archive.Reader, path string) (Input, error) {
	bgPath, ok := archive.LightCurveBackgroundPath(path)
	if !ok {
		return Input{}, fmt.Errorf("%w: %s: not a %s light curve", core.ErrFileAccess, path, archive.LightCurveSuffix)
	}

	cols, err := r.ReadColumns(path, columnTime, columnCounts, columnDetectors)
	if err != nil {
		return Input{}, err
	}

	bg, err := r.ReadColumns(bgPath, columnCounts)
	if err != nil {
		return Input{}, err
	}

	return Input{
		Time:       cols[0],
		Counts:     cols[1],
		Detectors:  cols[2],
		Background: bg[0],
	}, nil
}
