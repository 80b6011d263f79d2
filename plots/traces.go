package plots

import (
	"github.com/cwbudde/algo-nicer/plot"
	"github.com/cwbudde/algo-nicer/timing/core"
	"github.com/samber/lo"
)

// series is the plottable output of one normalized file.
type series struct {
	x, y       core.Series
	xErr, yErr core.Series
	bg, bgX    core.Series
	color      core.Series
}

// traces collects per-tag series as the parallel lists plot.Render takes.
type traces struct {
	tags   []plot.Tag
	xs, ys []core.Series
	xErrs  []core.Series
	yErrs  []core.Series
	bgs    []core.Series
	bgXs   []core.Series
	colors []core.Series
}

func (t *traces) add(tag plot.Tag, s series) {
	t.tags = append(t.tags, tag)
	t.xs = append(t.xs, s.x)
	t.ys = append(t.ys, s.y)
	t.xErrs = append(t.xErrs, s.xErr)
	t.yErrs = append(t.yErrs, s.yErr)
	t.bgs = append(t.bgs, s.bg)
	t.bgXs = append(t.bgXs, s.bgX)
	t.colors = append(t.colors, s.color)
}

func (t *traces) len() int { return len(t.tags) }

// options returns the render options for every list with at least one
// entry.
func (t *traces) options() []plot.Option {
	var opts []plot.Option
	for _, o := range []struct {
		list []core.Series
		opt  func([]core.Series) plot.Option
	}{
		{list: t.xErrs, opt: plot.WithXErrors},
		{list: t.yErrs, opt: plot.WithYErrors},
		{list: t.bgs, opt: plot.WithBackground},
		{list: t.bgXs, opt: plot.WithBackgroundX},
		{list: t.colors, opt: plot.WithColors},
	} {
		if lo.SomeBy(o.list, func(s core.Series) bool { return s != nil }) {
			opts = append(opts, o.opt(o.list))
		}
	}

	return opts
}

func concat(list []core.Series) core.Series {
	n := 0
	for _, s := range list {
		n += len(s)
	}

	out := make(core.Series, 0, n)
	for _, s := range list {
		out = append(out, s...)
	}

	return out
}
