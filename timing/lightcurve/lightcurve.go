package lightcurve

import (
	"fmt"

	"github.com/cwbudde/algo-nicer/timing/binning"
	"github.com/cwbudde/algo-nicer/timing/core"
	"github.com/cwbudde/algo-nicer/timing/interp"
	"go.uber.org/zap"
)

// Policy is the non-finite handling of light curves.
const Policy = core.PropagateNaN

// Input is a light curve and its background, one sample per tick.
type Input struct {
	Time      core.Series
	Counts    core.Series
	Detectors core.Series
	// Background counts per tick; nil means no background.
	Background core.Series
}

// Result is a binned, normalized light curve.
type Result struct {
	// Time is the mean tick time per bin.
	Time core.Series
	// Ticks is the number of merged ticks per bin.
	Ticks       core.Series
	Value       core.Series
	Uncertainty core.Series
	// Background is the normalized background on BackgroundTime, nil
	// without one. With a cut window it carries an interpolated point at
	// each cut boundary inside the binned time span.
	Background     core.Series
	BackgroundTime core.Series
	// Tick is the median tick spacing used for rate normalization.
	Tick  float64
	Edges binning.Edges
}

// DefaultConfig returns the processor defaults for light curves.
func DefaultConfig() core.ProcessorConfig {
	return core.DefaultProcessorConfig()
}

// Normalize bins and normalizes in. Every bin gets
//
//	value = (sum(counts) - sum(background)) / (mean(detectors) * ticks)
//
// with the uncertainty sqrt(max(sum(counts), 1)) scaled the same way. With
// rate normalization both are further divided by the tick spacing.
func Normalize(in Input, opts ...core.ProcessorOption) (*Result, error) {
	cfg := core.ApplyProcessorOptions(DefaultConfig(), opts...)

	n := len(in.Time)
	if n == 0 {
		return nil, fmt.Errorf("%w: lightcurve: no samples", core.ErrInvalidInput)
	}

	if len(in.Counts) != n || len(in.Detectors) != n {
		return nil, fmt.Errorf("%w: lightcurve: %d times, %d counts, %d detector values",
			core.ErrInvalidInput, n, len(in.Counts), len(in.Detectors))
	}

	bg := in.Background
	if bg != nil && len(bg) != n {
		return nil, fmt.Errorf("%w: lightcurve: background has %d ticks, want %d",
			core.ErrInvalidInput, len(bg), n)
	}

	if bg == nil {
		bg = make(core.Series, n)
	}

	edges, err := binning.ComputeEdges(cfg.MinCount, in.Counts)
	if err != nil {
		return nil, err
	}

	tbl := core.NewTable().
		MustAdd("TIME", in.Time).
		MustAdd("COUNTS", in.Counts).
		MustAdd("BACKGROUND", bg).
		MustAdd("DETECTORS", in.Detectors)

	res, err := binning.Bin(edges, tbl, binning.WithMean("TIME", "DETECTORS"))
	if err != nil {
		return nil, err
	}

	t, _ := res.Column("TIME")
	counts, _ := res.Column("COUNTS")
	bgSum, _ := res.Column("BACKGROUND")
	det, _ := res.Column("DETECTORS")
	countUnc, _ := res.UncertaintyOf("COUNTS")

	tick := 1.0
	if cfg.Rate {
		tick = tickSpacing(in.Time)
	}

	// Per bin: divide by detectors and by ticks (the uncertainty from the
	// binner is already per tick).
	norm, err := core.Product(det, res.Widths)
	if err != nil {
		return nil, err
	}
	norm = core.Scaled(norm, tick)

	net, err := core.Difference(counts, bgSum)
	if err != nil {
		return nil, err
	}

	value, err := core.Quotient(net, norm)
	if err != nil {
		return nil, err
	}

	unc, err := core.Quotient(core.Scaled(countUnc, 1/tick), det)
	if err != nil {
		return nil, err
	}

	binned := core.NewTable().
		MustAdd("TIME", t).
		MustAdd("TICKS", res.Widths).
		MustAdd("VALUE", core.MaskNonFinite(value)).
		MustAdd("ERROR", core.MaskNonFinite(unc))

	kept := binned
	if !cfg.Cut.IsUnbounded() {
		kept = binned.Filter(func(row int) bool { return cfg.Cut.Contains(t[row]) })
	}

	out := &Result{Tick: tick, Edges: edges}
	out.Time, _ = kept.Column("TIME")
	out.Ticks, _ = kept.Column("TICKS")
	out.Value, _ = kept.Column("VALUE")
	out.Uncertainty, _ = kept.Column("ERROR")

	if in.Background != nil {
		b, err := core.Quotient(bgSum, norm)
		if err != nil {
			return nil, err
		}
		out.BackgroundTime, out.Background = interp.PadWindow(t, core.MaskNonFinite(b), cfg.Cut)
	}

	cfg.Logger.Debug("normalized light curve",
		zap.Int("ticks", n),
		zap.Int("bins", edges.Bins()),
		zap.Int("kept", out.Time.Len()),
		zap.Bool("rate", cfg.Rate),
		zap.Float64("tick", tick))

	return out, nil
}

// tickSpacing returns the median spacing of t, or 1 when it is undefined.
func tickSpacing(t core.Series) float64 {
	if len(t) < 2 {
		return 1
	}

	d := make(core.Series, len(t)-1)
	for i := range d {
		d[i] = t[i+1] - t[i]
	}

	m := core.Median(d)
	if !core.IsFinite(m) || m <= 0 {
		return 1
	}

	return m
}
