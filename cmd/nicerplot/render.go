package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/cwbudde/algo-nicer/internal/config"
	"github.com/cwbudde/algo-nicer/plot"
	"github.com/cwbudde/algo-nicer/plot/echarts"
	"github.com/cwbudde/algo-nicer/plot/static"
	"github.com/cwbudde/algo-nicer/plots"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var formats = []string{"html", "json", "svg", "png", "echarts"}

type renderOptions struct {
	gtis     []int
	minCount float64
	cut      []float64
	format   string
	output   string
	id       string
}

func (o *renderOptions) register(f *pflag.FlagSet) {
	f.IntSliceVar(&o.gtis, "gti", nil, "GTI numbers to load; the path must contain a GTI<n> token")
	f.Float64Var(&o.minCount, "min-count", 0, "minimum counts per bin, 0 keeps the file grouping (default from config)")
	f.Float64SliceVar(&o.cut, "cut", nil, "window kept after binning as low,high (default from config)")
	f.StringVarP(&o.format, "format", "f", "html", "output format: html, json, svg, png or echarts")
	f.StringVarP(&o.output, "output", "o", "", "output file (default stdout)")
	f.StringVar(&o.id, "id", "", "DOM id of the html fragment")
}

func newRenderCommand(a *app) *cobra.Command {
	o := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <domain> <path>",
		Short: "Render one plot",
		Long:  "Render one plot. A relative path is resolved against data_dir from the configuration.",
		Example: `  nicerplot render spectrum obs/spectra/ni1050_GTI0.jsgrp --min-count 20
  nicerplot render lc obs/ni1050_GTI0.lc.gz --gti 0,1 -f json -o lc.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd, o, args[0], args[1])
		},
	}

	o.register(cmd.Flags())

	return cmd
}

func (a *app) render(cmd *cobra.Command, o *renderOptions, domain, path string) error {
	if !lo.Contains(formats, o.format) {
		return fmt.Errorf("unknown format %q, want one of %v", o.format, formats)
	}

	d, err := plots.ParseDomain(domain)
	if err != nil {
		return errors.New(plots.Message(err))
	}

	if !filepath.IsAbs(path) && a.config.DataDir != "" {
		path = filepath.Join(a.config.DataDir, path)
	}

	req := plots.Request{Path: path, GTIs: o.gtis, ID: o.id}

	if cmd.Flags().Changed("min-count") {
		req.MinCount = lo.ToPtr(o.minCount)
	}

	if cmd.Flags().Changed("cut") {
		r, err := config.CutRange(o.cut)
		if err != nil {
			return errors.New(plots.Message(err))
		}
		req.Cut = &r
	}

	p := plots.New(a.fs, plots.WithConfig(a.config), plots.WithLogger(a.logger))

	fig, err := p.PlotFigure(d, req)
	if err != nil {
		return errors.New(plots.Message(err))
	}

	var buf bytes.Buffer
	if err := encode(&buf, fig, o.format); err != nil {
		return errors.New(plots.Message(err))
	}

	if o.output == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	if err := afero.WriteFile(a.fs, o.output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", o.output, err)
	}

	a.logger.Debug("wrote plot",
		zap.String("path", o.output),
		zap.String("format", o.format),
		zap.Int("bytes", buf.Len()))

	_, err = fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%s, %s)\n",
		o.output, humanize.Bytes(uint64(buf.Len())), traceSummary(fig))

	return err
}

func encode(w io.Writer, fig *plot.Figure, format string) error {
	switch format {
	case "html":
		html, err := fig.HTML()
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, html)
		return err
	case "json":
		data, err := fig.JSON()
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "echarts":
		if fig.IsNoData() {
			_, err := io.WriteString(w, fig.Message)
			return err
		}
		return echarts.Write(w, fig)
	default:
		return static.Write(w, fig, static.Format(format))
	}
}

func traceSummary(fig *plot.Figure) string {
	if fig.IsNoData() {
		return "no data"
	}

	return humanize.Comma(int64(len(fig.Data))) + " traces"
}
