package plot

import (
	"fmt"

	"github.com/cwbudde/algo-nicer/stats/axis"
	"github.com/cwbudde/algo-nicer/timing/core"
	"github.com/google/uuid"
)

// Render builds a figure with one primary trace per tag. xs and ys, and every
// list passed through options, must hold exactly one entry per tag.
// Mismatched lengths fail with core.ErrInvalidInput and no figure.
//
// If every primary series is empty, or a log axis has no strictly positive
// finite value, the NoData sentinel is returned with a nil error.
func Render(tags []Tag, xs, ys []core.Series, style Style, opts ...Option) (*Figure, error) {
	var cfg renderConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := validate(tags, xs, ys, &cfg); err != nil {
		return nil, err
	}

	if empty(ys) {
		return NoData(), nil
	}

	layout := Layout{
		XAxis:      Axis{Type: axisType(style.XType)},
		YAxis:      Axis{Type: axisType(style.YType)},
		ShowLegend: style.ShowLegend,
		Width:      style.Width,
		Height:     style.Height,
	}

	if style.Title != "" {
		layout.Title = &Title{Text: style.Title}
	}

	if style.XTitle != "" {
		layout.XAxis.Title = &Title{Text: style.XTitle}
	}

	if style.YTitle != "" {
		layout.YAxis.Title = &Title{Text: style.YTitle}
	}

	if style.GroupToggle {
		layout.Legend = &Legend{GroupClick: "togglegroup"}
	}

	for _, a := range []struct {
		ax     *Axis
		series []core.Series
	}{
		{ax: &layout.XAxis, series: xs},
		{ax: &layout.YAxis, series: ys},
	} {
		if a.ax.Type != Log {
			continue
		}

		r, ok := summarize(a.series).LogRange(axis.DefaultMargin)
		if !ok {
			return NoData(), nil
		}
		a.ax.Range = []float64{r[0], r[1]}
	}

	// A linear y axis spans the finite samples and backgrounds.
	if layout.YAxis.Type == Linear {
		if r, ok := summarize(ys, cfg.background).LinearRange(axis.DefaultMargin); ok {
			layout.YAxis.Range = []float64{r[0], r[1]}
		}
	}

	mode := style.Mode
	if mode == "" {
		mode = Markers
	}

	opacity := style.Opacity
	if opacity == 0 {
		opacity = defaultOpacity
	}

	fig := &Figure{
		ID:     cfg.id,
		Data:   make([]Trace, 0, len(tags)),
		Layout: layout,
	}

	if fig.ID == "" {
		fig.ID = uuid.NewString()
	}

	for i, tag := range tags {
		color := Color(i)

		primary := Trace{
			Type:        "scatter",
			Name:        tag.Label,
			X:           Values(xs[i]),
			Y:           Values(ys[i]),
			Mode:        mode,
			Opacity:     opacity,
			Line:        &Line{Color: color},
			LegendGroup: tag.Group,
		}

		if c := at(cfg.colors, i); c != nil {
			primary.Line = nil
			primary.Marker = &Marker{
				Color:      Values(c),
				ColorScale: style.ColorScale,
				ShowScale:  true,
			}
			if style.ColorTitle != "" {
				primary.Marker.ColorBar = &ColorBar{Title: &Title{Text: style.ColorTitle}}
			}
		}

		if e := at(cfg.xErrors, i); e != nil {
			primary.ErrorX = newErrorBar(e)
		}

		if e := at(cfg.yErrors, i); e != nil {
			primary.ErrorY = newErrorBar(e)
		}

		fig.Data = append(fig.Data, primary)

		bg := at(cfg.background, i)
		if bg == nil {
			continue
		}

		bgx := at(cfg.backgroundX, i)
		if bgx == nil {
			bgx = xs[i]
		}

		fig.Data = append(fig.Data, Trace{
			Type:        "scatter",
			Name:        tag.Label + " BG",
			X:           Values(bgx),
			Y:           Values(bg),
			Mode:        Lines,
			Opacity:     opacity,
			Line:        &Line{Color: color},
			LegendGroup: tag.Group,
			Background:  true,
		})
	}

	return fig, nil
}

func axisType(t AxisType) AxisType {
	if t == "" {
		return Linear
	}

	return t
}

func summarize(lists ...[]core.Series) axis.Summary {
	acc := axis.NewAccumulator()
	for _, list := range lists {
		for _, s := range list {
			acc.Update(s)
		}
	}

	return acc.Result()
}

func empty(series []core.Series) bool {
	for _, s := range series {
		if len(s) > 0 {
			return false
		}
	}

	return true
}

func at(list []core.Series, i int) core.Series {
	if list == nil {
		return nil
	}

	return list[i]
}

func validate(tags []Tag, xs, ys []core.Series, cfg *renderConfig) error {
	n := len(tags)

	lists := []struct {
		name string
		list []core.Series
		opt  bool
	}{
		{name: "x series", list: xs},
		{name: "y series", list: ys},
		{name: "x errors", list: cfg.xErrors, opt: true},
		{name: "y errors", list: cfg.yErrors, opt: true},
		{name: "background", list: cfg.background, opt: true},
		{name: "background x", list: cfg.backgroundX, opt: true},
		{name: "colors", list: cfg.colors, opt: true},
	}

	for _, l := range lists {
		if l.opt && l.list == nil {
			continue
		}

		if len(l.list) != n {
			return fmt.Errorf("%w: plot: %d %s for %d tags", core.ErrInvalidInput, len(l.list), l.name, n)
		}
	}

	for i := 0; i < n; i++ {
		points := len(xs[i])
		if len(ys[i]) != points {
			return fmt.Errorf("%w: plot: tag %q has %d x and %d y values",
				core.ErrInvalidInput, tags[i].Label, points, len(ys[i]))
		}

		for _, l := range []struct {
			name string
			s    core.Series
		}{
			{name: "x errors", s: at(cfg.xErrors, i)},
			{name: "y errors", s: at(cfg.yErrors, i)},
			{name: "colors", s: at(cfg.colors, i)},
		} {
			if l.s != nil && len(l.s) != points {
				return fmt.Errorf("%w: plot: tag %q has %d %s for %d points",
					core.ErrInvalidInput, tags[i].Label, len(l.s), l.name, points)
			}
		}

		bg := at(cfg.background, i)
		if bg == nil {
			continue
		}

		bgx := at(cfg.backgroundX, i)
		if bgx == nil {
			bgx = xs[i]
		}

		if len(bg) != len(bgx) {
			return fmt.Errorf("%w: plot: tag %q background has %d values for %d x values",
				core.ErrInvalidInput, tags[i].Label, len(bg), len(bgx))
		}
	}

	return nil
}
