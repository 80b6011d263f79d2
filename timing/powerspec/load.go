package powerspec

import (
	"fmt"

	"github.com/cwbudde/algo-nicer/internal/archive"
	"github.com/cwbudde/algo-nicer/timing/core"
)

// Load reads the binned PDS at path and its "-fak.rsp" response, then
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

// Read loads the PDS at path and the frequency bounds of its response.
func Read(r *archive.Reader, path string) (Input, error) {
	rspPath, ok := archive.ResponsePath(path)
	if !ok {
		return Input{}, fmt.Errorf("%w: %s: not a %s power spectrum", core.ErrFileAccess, path, archive.PowerSpectrumSuffix)
	}

	pds, err := r.ReadFITS(path)
	if err != nil {
		return Input{}, err
	}

	rsp, err := r.ReadFITS(rspPath)
	if err != nil {
		return Input{}, err
	}

	pt, err := pds.HDU(1)
	if err != nil {
		return Input{}, err
	}

	rt, err := rsp.WithColumns("EBOUNDS", "E_MIN", "E_MAX")
	if err != nil {
		return Input{}, err
	}

	var in Input
	for _, c := range []struct {
		dst  *core.Series
		tbl  *archive.HDUTable
		name string
	}{
		{dst: &in.Rate, tbl: pt, name: "RATE"},
		{dst: &in.Error, tbl: pt, name: "STAT_ERR"},
		{dst: &in.FreqMin, tbl: rt, name: "E_MIN"},
		{dst: &in.FreqMax, tbl: rt, name: "E_MAX"},
	} {
		s, err := c.tbl.Data.Column(c.name)
		if err != nil {
			return Input{}, fmt.Errorf("%w: %s: %w", core.ErrMetadata, c.tbl.Name, err)
		}
		*c.dst = s
	}

	if len(in.Rate) != len(in.FreqMin) {
		return Input{}, fmt.Errorf("%w: %s has %d bins, %s has %d",
			core.ErrInvalidInput, path, len(in.Rate), rspPath, len(in.FreqMin))
	}

	return in, nil
}
