package plot

import (
	"bytes"
	"fmt"
	"html/template"
)

var fragment = template.Must(template.New("fragment").Parse(
	`<div id="{{.ID}}" class="plotly-graph-div" style="height:{{.Height}}; width:100%;"></div>
<script type="text/javascript">
window.PLOTLYENV = window.PLOTLYENV || {};
if (document.getElementById({{.ID}})) {
	Plotly.newPlot({{.ID}}, {{.Data}}, {{.Layout}}, {"displaylogo": false, "responsive": true});
}
</script>
`))

type fragmentData struct {
	ID     string
	Height string
	Data   template.JS
	Layout template.JS
}

// HTML returns an embeddable <div> and script that draws the figure with
// plotly.js, which the host page must load. The "no data" sentinel renders
// as its plain message.
func (f *Figure) HTML() (string, error) {
	if f.IsNoData() {
		if f == nil {
			return NoData().Message, nil
		}
		return f.Message, nil
	}

	data, err := json.Marshal(f.Data)
	if err != nil {
		return "", fmt.Errorf("plot: encode traces: %w", err)
	}

	layout, err := json.Marshal(f.Layout)
	if err != nil {
		return "", fmt.Errorf("plot: encode layout: %w", err)
	}

	height := "100%"
	if f.Layout.Height > 0 {
		height = fmt.Sprintf("%dpx", f.Layout.Height)
	}

	var buf bytes.Buffer
	err = fragment.Execute(&buf, fragmentData{
		ID:     f.ID,
		Height: height,
		Data:   template.JS(data),   //nolint:gosec // encoder escapes <, > and &
		Layout: template.JS(layout), //nolint:gosec // encoder escapes <, > and &
	})
	if err != nil {
		return "", fmt.Errorf("plot: execute template: %w", err)
	}

	return buf.String(), nil
}
