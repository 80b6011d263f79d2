package hardness

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-nicer/timing/binning"
	"github.com/cwbudde/algo-nicer/timing/core"
	"go.uber.org/zap"
)

// Policy is the non-finite handling of hardness-intensity data.
const Policy = core.PropagateNaN

// Bands is the number of energy bands in a hardness light curve.
const Bands = 4

// BandNames returns the energy band labels in file order.
func BandNames() [Bands]string {
	return [Bands]string{"0.3-2 keV", "2-4 keV", "4-6 keV", "6-12 keV"}
}

// Input is a four-band light curve.
type Input struct {
	// Time in seconds.
	Time  core.Series
	Bands [Bands]core.Series
}

// Result holds the plottable points of a hardness-intensity diagram.
type Result struct {
	Time      core.Series
	Hardness  core.Series
	Intensity core.Series
	// Dropped counts the points removed by the positivity and finiteness
	// mask.
	Dropped int
}

// DefaultConfig returns the processor defaults for hardness diagrams.
func DefaultConfig() core.ProcessorConfig {
	return core.DefaultProcessorConfig()
}

// Compute derives hardness and intensity per tick, or per bin when a
// minimum count is set. Bins are built on intensity and average each band
// before the ratio is taken.
func Compute(in Input, opts ...core.ProcessorOption) (*Result, error) {
	cfg := core.ApplyProcessorOptions(DefaultConfig(), opts...)

	n := len(in.Time)
	if n == 0 {
		return nil, fmt.Errorf("%w: hardness: no samples", core.ErrInvalidInput)
	}

	names := BandNames()

	tbl := core.NewTable()
	if err := tbl.Add("TIME", in.Time); err != nil {
		return nil, err
	}

	for i, b := range in.Bands {
		if err := tbl.Add(names[i], b); err != nil {
			return nil, fmt.Errorf("hardness: band %s: %w", names[i], err)
		}
	}

	intensity := sumBands(tbl)

	if cfg.MinCount > 0 {
		edges, err := binning.ComputeEdges(cfg.MinCount, intensity)
		if err != nil {
			return nil, err
		}

		res, err := binning.Bin(edges, tbl, binning.WithMean(tbl.Names()...))
		if err != nil {
			return nil, err
		}

		tbl = res.Table
		intensity = sumBands(tbl)

		cfg.Logger.Debug("binned hardness bands",
			zap.Int("ticks", n),
			zap.Int("bins", edges.Bins()))
	}

	soft, _ := tbl.Column(names[1])
	b3, _ := tbl.Column(names[2])
	b4, _ := tbl.Column(names[3])

	hard, err := core.Add(b3, b4)
	if err != nil {
		return nil, err
	}

	ratio, err := core.Quotient(hard, soft)
	if err != nil {
		return nil, err
	}
	ratio = core.MaskNonFinite(ratio)

	t, _ := tbl.Column("TIME")

	kept := core.NewTable().
		MustAdd("TIME", t).
		MustAdd("HARDNESS", ratio).
		MustAdd("INTENSITY", intensity).
		Filter(func(row int) bool { return Plottable(ratio[row], intensity[row]) })

	out := &Result{}
	out.Time, _ = kept.Column("TIME")
	out.Hardness, _ = kept.Column("HARDNESS")
	out.Intensity, _ = kept.Column("INTENSITY")
	out.Dropped = len(ratio) - kept.Len()

	cfg.Logger.Debug("hardness-intensity points",
		zap.Int("kept", out.Time.Len()),
		zap.Int("dropped", out.Dropped))

	return out, nil
}

// Plottable reports whether a point can be drawn on log-log axes.
func Plottable(hardness, intensity float64) bool {
	return core.IsFinite(hardness) && core.IsFinite(intensity) && hardness > 0 && intensity > 0
}

// NormalizedTime maps the times of several results onto [0, 1] using the
// global minimum and maximum, so colours are comparable across GTIs. A
// zero time span maps every point to 0.
func NormalizedTime(times []core.Series) []core.Series {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, t := range times {
		for _, v := range t {
			if !core.IsFinite(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}

	span := hi - lo

	out := make([]core.Series, len(times))
	for i, t := range times {
		out[i] = make(core.Series, len(t))
		if span <= 0 || !core.IsFinite(span) {
			continue
		}

		for j, v := range t {
			out[i][j] = (v - lo) / span
		}
	}

	return out
}

func sumBands(tbl *core.Table) core.Series {
	out := make(core.Series, tbl.Len())
	for _, name := range BandNames() {
		b, _ := tbl.Column(name)
		for i, v := range b {
			out[i] += v
		}
	}

	return out
}
