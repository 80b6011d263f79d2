// Package echarts renders plot figures as a standalone interactive HTML page
// with go-echarts, for viewing outside the plotly-enabled web host.
//
// Error bars have no echarts counterpart and are not drawn.
package echarts

import (
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-nicer/plot"
	"github.com/cwbudde/algo-nicer/timing/core"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Chart converts fig into an echarts scatter chart with background traces
// overlaid as lines.
func Chart(fig *plot.Figure) (*charts.Scatter, error) {
	if fig.IsNoData() {
		return nil, core.ErrNoData
	}

	title := ""
	if fig.Layout.Title != nil {
		title = fig.Layout.Title.Text
	}

	initOpts := opts.Initialization{PageTitle: title}
	if fig.Layout.Width > 0 {
		initOpts.Width = fmt.Sprintf("%dpx", fig.Layout.Width)
	}
	if fig.Layout.Height > 0 {
		initOpts.Height = fmt.Sprintf("%dpx", fig.Layout.Height)
	}

	xAxis, yAxis := xAxisOpts(fig.Layout.XAxis), yAxisOpts(fig.Layout.YAxis)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(xAxis),
		charts.WithYAxisOpts(yAxis),
		charts.WithLegendOpts(opts.Legend{Show: fig.Layout.ShowLegend, Top: "bottom"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "item"}),
	)

	var lines *charts.Line
	for i := range fig.Data {
		tr := &fig.Data[i]

		color := tr.Color()
		if color == "" {
			color = plot.Color(i)
		}

		if tr.Background || tr.Mode == plot.Lines {
			if lines == nil {
				lines = charts.NewLine()
				lines.SetGlobalOptions(charts.WithXAxisOpts(xAxis), charts.WithYAxisOpts(yAxis))
			}

			lines.AddSeries(tr.Name, lineData(tr, fig.Layout),
				charts.WithItemStyleOpts(opts.ItemStyle{Color: color, Opacity: float32(tr.Opacity)}),
				charts.WithLineStyleOpts(opts.LineStyle{Color: color, Type: "dashed"}),
			)
			continue
		}

		scatter.AddSeries(tr.Name, scatterData(tr, fig.Layout),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color, Opacity: float32(tr.Opacity)}),
		)
	}

	if lines != nil {
		scatter.Overlap(lines)
	}

	return scatter, nil
}

// Write renders fig as a complete HTML page.
func Write(w io.Writer, fig *plot.Figure) error {
	c, err := Chart(fig)
	if err != nil {
		return err
	}

	if err := c.Render(w); err != nil {
		return fmt.Errorf("echarts: render: %w", err)
	}

	return nil
}

func axisType(ax plot.Axis) string {
	if ax.Type == plot.Log {
		return "log"
	}

	return "value"
}

// bounds converts a layout range to data units.
func bounds(ax plot.Axis) (interface{}, interface{}) {
	if len(ax.Range) != 2 {
		return nil, nil
	}

	lo, hi := ax.Range[0], ax.Range[1]
	if ax.Type == plot.Log {
		lo, hi = math.Pow(10, lo), math.Pow(10, hi)
	}

	return lo, hi
}

func axisName(ax plot.Axis) string {
	if ax.Title == nil {
		return ""
	}

	return ax.Title.Text
}

func xAxisOpts(ax plot.Axis) opts.XAxis {
	lo, hi := bounds(ax)
	return opts.XAxis{Name: axisName(ax), Type: axisType(ax), Min: lo, Max: hi}
}

func yAxisOpts(ax plot.Axis) opts.YAxis {
	lo, hi := bounds(ax)
	return opts.YAxis{Name: axisName(ax), Type: axisType(ax), Min: lo, Max: hi}
}

// placeable reports whether (x, y) can be drawn on the layout's axes.
func placeable(x, y float64, layout plot.Layout) bool {
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		return false
	}

	if layout.XAxis.Type == plot.Log && x <= 0 {
		return false
	}

	return layout.YAxis.Type != plot.Log || y > 0
}

func scatterData(tr *plot.Trace, layout plot.Layout) []opts.ScatterData {
	out := make([]opts.ScatterData, 0, len(tr.X))
	for i := range tr.X {
		if placeable(tr.X[i], tr.Y[i], layout) {
			out = append(out, opts.ScatterData{Value: []interface{}{tr.X[i], tr.Y[i]}, SymbolSize: 6})
		}
	}

	return out
}

func lineData(tr *plot.Trace, layout plot.Layout) []opts.LineData {
	out := make([]opts.LineData, 0, len(tr.X))
	for i := range tr.X {
		if placeable(tr.X[i], tr.Y[i], layout) {
			out = append(out, opts.LineData{Value: []interface{}{tr.X[i], tr.Y[i]}})
		}
	}

	return out
}
