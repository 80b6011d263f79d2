package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cwbudde/algo-nicer/internal/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, fs afero.Fs, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cmd := newRootCommand(fs)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()

	return out.String(), errOut.String(), err
}

func lightCurveFS(t *testing.T) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	ticks := testutil.Ramp(0, 1, 4)
	testutil.WriteText(t, fs, "/obs/ni_GTI0.lc.gz", testutil.Columns(
		ticks, testutil.Const(0, 4), []float64{10, 20, 30, 40}, testutil.Const(2, 4),
	))
	testutil.WriteText(t, fs, "/obs/ni_GTI0.bg-lc.gz", testutil.Columns(
		ticks, testutil.Const(0, 4), []float64{2, 4, 6, 8},
	))

	return fs
}

func TestDomains(t *testing.T) {
	out, _, err := run(t, afero.NewMemMapFs(), "domains")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[2], "spectrum")
	assert.Contains(t, lines[2], "0.3-10")
	assert.Contains(t, lines[2], "log/log")
	assert.Contains(t, lines[2], "reject")
	assert.Contains(t, lines[3], "linear/linear")
	assert.Contains(t, lines[3], "propagate-nan")
	assert.Contains(t, lines[3], "all")
}

func TestDomainsUsesConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/nicer.yaml", []byte("powerspec:\n  cut: [0.5, 50]\n"), 0o644))

	out, _, err := run(t, fs, "--config", "/etc/nicer.yaml", "domains")
	require.NoError(t, err)
	assert.Contains(t, out, "0.5-50")
}

func TestRenderHTMLToStdout(t *testing.T) {
	out, _, err := run(t, lightCurveFS(t), "render", "lc", "/obs/ni_GTI0.lc.gz", "--id", "lc")
	require.NoError(t, err)

	assert.Contains(t, out, `id="lc"`)
	assert.Contains(t, out, "Plotly.newPlot")
}

func TestRenderJSONToFile(t *testing.T) {
	fs := lightCurveFS(t)

	_, stderr, err := run(t, fs, "render", "lightcurve", "/obs/ni_GTI0.lc.gz",
		"--gti", "0,1", "--min-count", "30", "-f", "json", "-o", "/out/lc.json")
	require.NoError(t, err)
	assert.Contains(t, stderr, "wrote /out/lc.json")
	assert.Contains(t, stderr, "2 traces")

	data, err := afero.ReadFile(fs, "/out/lc.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name":"GTI0"`)
	assert.Contains(t, string(data), `"y":[6,12,16]`)
	assert.Contains(t, string(data), `"name":"GTI0 BG"`)
}

func TestRenderResolvesRelativePathsAgainstDataDir(t *testing.T) {
	fs := lightCurveFS(t)
	require.NoError(t, afero.WriteFile(fs, "/etc/nicer.yaml", []byte("data_dir: /obs\n"), 0o644))

	out, _, err := run(t, fs, "--config", "/etc/nicer.yaml", "render", "lc", "ni_GTI0.lc.gz", "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name":"GTI0"`)

	// The default data directory holds no such file.
	out, _, err = run(t, fs, "render", "lc", "ni_GTI0.lc.gz", "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "No valid data to plot")
}

func TestRenderStaticAndEcharts(t *testing.T) {
	fs := lightCurveFS(t)

	out, _, err := run(t, fs, "render", "lc", "/obs/ni_GTI0.lc.gz", "-f", "svg")
	require.NoError(t, err)
	assert.Contains(t, out, "<svg")

	out, _, err = run(t, fs, "render", "lc", "/obs/ni_GTI0.lc.gz", "-f", "echarts")
	require.NoError(t, err)
	assert.Contains(t, out, "echarts")
}

func TestRenderNoData(t *testing.T) {
	fs := afero.NewMemMapFs()

	out, _, err := run(t, fs, "render", "pds", "/obs/ni_GTI0-bin.pds")
	require.NoError(t, err)
	assert.Equal(t, "No valid data to plot", out)

	_, _, err = run(t, fs, "render", "pds", "/obs/ni_GTI0-bin.pds", "-f", "png")
	require.Error(t, err)
	assert.Equal(t, "No valid data to plot", err.Error())
}

func TestRenderErrors(t *testing.T) {
	fs := lightCurveFS(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown domain", args: []string{"render", "histogram", "/obs/ni_GTI0.lc.gz"}, want: "Invalid request"},
		{name: "unknown format", args: []string{"render", "lc", "/obs/ni_GTI0.lc.gz", "-f", "gif"}, want: "unknown format"},
		{name: "bad cut", args: []string{"render", "lc", "/obs/ni_GTI0.lc.gz", "--cut", "1,2,3"}, want: "Invalid request"},
		{name: "inverted cut", args: []string{"render", "lc", "/obs/ni_GTI0.lc.gz", "--cut", "3,1"}, want: "Invalid request"},
		{name: "missing args", args: []string{"render", "lc"}, want: "accepts 2 arg(s)"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := run(t, fs, tc.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestBadConfigFails(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/c.yaml", []byte("log:\n  level: loud\n"), 0o644))

	_, _, err := run(t, fs, "--config", "/c.yaml", "domains")
	assert.Error(t, err)
}
