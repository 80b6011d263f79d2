package powerspec

import (
	"fmt"

	"github.com/cwbudde/algo-nicer/timing/core"
	"go.uber.org/zap"
)

// Policy is the non-finite handling of power-density spectra.
const Policy = core.RejectNonFinite

// Input is a power-density spectrum with its frequency bounds.
type Input struct {
	FreqMin core.Series
	FreqMax core.Series
	Rate    core.Series
	Error   core.Series
}

// Result is a normalized power-density spectrum.
type Result struct {
	// Frequency is the bin centre in Hz.
	Frequency   core.Series
	HalfWidth   core.Series
	Power       core.Series
	Uncertainty core.Series
}

// DefaultConfig returns the processor defaults for power spectra.
func DefaultConfig() core.ProcessorConfig {
	return core.DefaultProcessorConfig()
}

// Normalize converts in to f x PDS power. The minimum count option does not
// apply; the frequency cut does.
func Normalize(in Input, opts ...core.ProcessorOption) (*Result, error) {
	cfg := core.ApplyProcessorOptions(DefaultConfig(), opts...)

	n := len(in.Rate)
	if n == 0 {
		return nil, fmt.Errorf("%w: powerspec: no bins", core.ErrInvalidInput)
	}

	if len(in.Error) != n || len(in.FreqMin) != n || len(in.FreqMax) != n {
		return nil, fmt.Errorf("%w: powerspec: %d rates, %d errors, %d/%d frequency bounds",
			core.ErrInvalidInput, n, len(in.Error), len(in.FreqMin), len(in.FreqMax))
	}

	if cfg.MinCount > 0 {
		cfg.Logger.Debug("minimum count ignored for power spectra", zap.Float64("min_count", cfg.MinCount))
	}

	width, err := core.Difference(in.FreqMax, in.FreqMin)
	if err != nil {
		return nil, err
	}

	center := make(core.Series, n)
	for i := range center {
		center[i] = 0.5 * (in.FreqMin[i] + in.FreqMax[i])
	}

	scale, err := core.Quotient(center, width)
	if err != nil {
		return nil, err
	}

	power, err := core.Product(in.Rate, scale)
	if err != nil {
		return nil, err
	}

	perr, err := core.Product(in.Error, scale)
	if err != nil {
		return nil, err
	}

	kept := core.NewTable().
		MustAdd("FREQUENCY", center).
		MustAdd("HALFWIDTH", core.Scaled(width, 0.5)).
		MustAdd("POWER", power).
		MustAdd("ERROR", perr).
		Filter(func(row int) bool { return cfg.Cut.Contains(center[row]) })

	out := &Result{}
	out.Frequency, _ = kept.Column("FREQUENCY")
	out.HalfWidth, _ = kept.Column("HALFWIDTH")
	out.Power, _ = kept.Column("POWER")
	out.Uncertainty, _ = kept.Column("ERROR")

	for _, c := range []struct {
		name string
		s    core.Series
	}{
		{name: "power", s: out.Power},
		{name: "error", s: out.Uncertainty},
	} {
		if i := core.FirstNonFinite(c.s); i >= 0 {
			return nil, fmt.Errorf("%w: powerspec: %s is %v at %g Hz",
				core.ErrNumericDegeneracy, c.name, c.s[i], out.Frequency[i])
		}
	}

	cfg.Logger.Debug("normalized power spectrum",
		zap.Int("bins", n),
		zap.Int("kept", out.Frequency.Len()),
		zap.Stringer("cut", cfg.Cut))

	return out, nil
}
