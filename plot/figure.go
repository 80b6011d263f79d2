package plot

import (
	"math"
	"strconv"

	"github.com/cwbudde/algo-nicer/timing/core"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Mode selects how a trace is drawn.
type Mode string

const (
	Markers      Mode = "markers"
	Lines        Mode = "lines"
	LinesMarkers Mode = "lines+markers"
)

// AxisType selects the axis scale.
type AxisType string

const (
	Linear AxisType = "linear"
	Log    AxisType = "log"
)

// Values is a numeric array whose non-finite elements encode as JSON null,
// which plotly draws as a gap.
type Values []float64

// MarshalJSON implements json.Marshaler.
func (v Values) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("[]"), nil
	}

	buf := make([]byte, 0, 2+len(v)*8)
	buf = append(buf, '[')
	for i, x := range v {
		if i > 0 {
			buf = append(buf, ',')
		}

		if math.IsNaN(x) || math.IsInf(x, 0) {
			buf = append(buf, "null"...)
			continue
		}
		buf = strconv.AppendFloat(buf, x, 'g', -1, 64)
	}

	return append(buf, ']'), nil
}

// Title is a plotly title object.
type Title struct {
	Text string `json:"text"`
}

// ErrorBar is a data-array error bar.
type ErrorBar struct {
	Type    string `json:"type"`
	Array   Values `json:"array"`
	Visible bool   `json:"visible"`
}

func newErrorBar(s core.Series) *ErrorBar {
	return &ErrorBar{Type: "data", Array: Values(s), Visible: true}
}

// Line styles the line of a trace.
type Line struct {
	Color string `json:"color,omitempty"`
}

// ColorBar labels a continuous marker colour scale.
type ColorBar struct {
	Title *Title `json:"title,omitempty"`
}

// Marker styles the markers of a trace. Color is either a single colour
// string or Values mapped through ColorScale.
type Marker struct {
	Color      interface{} `json:"color,omitempty"`
	ColorScale string      `json:"colorscale,omitempty"`
	ShowScale  bool        `json:"showscale,omitempty"`
	ColorBar   *ColorBar   `json:"colorbar,omitempty"`
}

// Trace is one scatter series.
type Trace struct {
	Type        string    `json:"type"`
	Name        string    `json:"name,omitempty"`
	X           Values    `json:"x"`
	Y           Values    `json:"y"`
	Mode        Mode      `json:"mode"`
	Opacity     float64   `json:"opacity,omitempty"`
	Line        *Line     `json:"line,omitempty"`
	Marker      *Marker   `json:"marker,omitempty"`
	LegendGroup string    `json:"legendgroup,omitempty"`
	ErrorX      *ErrorBar `json:"error_x,omitempty"`
	ErrorY      *ErrorBar `json:"error_y,omitempty"`

	// Background marks the overlay trace of a primary trace.
	Background bool `json:"-"`
}

// Color returns the trace colour, preferring the line colour.
func (t *Trace) Color() string {
	if t.Line != nil && t.Line.Color != "" {
		return t.Line.Color
	}

	if t.Marker != nil {
		if c, ok := t.Marker.Color.(string); ok {
			return c
		}
	}

	return ""
}

// Axis configures one layout axis. Range is in axis units, so decades for
// log axes.
type Axis struct {
	Title *Title    `json:"title,omitempty"`
	Type  AxisType  `json:"type,omitempty"`
	Range []float64 `json:"range,omitempty"`
}

// Legend configures the legend.
type Legend struct {
	GroupClick string `json:"groupclick,omitempty"`
}

// Layout is the plotly layout subset used by the renderer.
type Layout struct {
	Title      *Title  `json:"title,omitempty"`
	XAxis      Axis    `json:"xaxis"`
	YAxis      Axis    `json:"yaxis"`
	ShowLegend bool    `json:"showlegend"`
	Legend     *Legend `json:"legend,omitempty"`
	Width      int     `json:"width,omitempty"`
	Height     int     `json:"height,omitempty"`
}

// Figure is a renderable plot artifact.
type Figure struct {
	// ID is the DOM id used by HTML.
	ID     string  `json:"-"`
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
	// Message is set only on the "no data" sentinel.
	Message string `json:"message,omitempty"`
}

// NoData returns the sentinel figure for requests that left nothing to plot.
func NoData() *Figure {
	return &Figure{Data: []Trace{}, Message: core.NoDataMessage}
}

// IsNoData reports whether f is the "no data" sentinel.
func (f *Figure) IsNoData() bool {
	return f == nil || f.Message != ""
}

// JSON encodes the figure in the plotly schema.
func (f *Figure) JSON() ([]byte, error) {
	return json.Marshal(f)
}
