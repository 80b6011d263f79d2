// Package config loads the YAML configuration of the plot engine and the
// nicerplot command.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/cwbudde/algo-nicer/timing/core"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the full configuration tree.
type Config struct {
	// DataDir is the archive root that relative render paths resolve against.
	DataDir    string           `yaml:"data_dir"`
	Log        LogConfig        `yaml:"log"`
	Spectrum   SpectrumConfig   `yaml:"spectrum"`
	LightCurve LightCurveConfig `yaml:"lightcurve"`
	PowerSpec  PowerSpecConfig  `yaml:"powerspec"`
	Hardness   HardnessConfig   `yaml:"hardness"`
	Plot       PlotConfig       `yaml:"plot"`
}

// LogConfig selects the logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// SpectrumConfig holds spectrum defaults. Cut is [low, high] in keV.
type SpectrumConfig struct {
	MinCount float64   `yaml:"min_count"`
	Cut      []float64 `yaml:"cut"`
}

// LightCurveConfig holds light-curve defaults. Cut is [start, stop] in s.
type LightCurveConfig struct {
	MinCount float64   `yaml:"min_count"`
	Rate     bool      `yaml:"rate"`
	Cut      []float64 `yaml:"cut"`
}

// PowerSpecConfig holds power-density defaults. Cut is [low, high] in Hz.
type PowerSpecConfig struct {
	Cut []float64 `yaml:"cut"`
}

// HardnessConfig holds hardness-intensity defaults.
type HardnessConfig struct {
	MinCount float64 `yaml:"min_count"`
}

// PlotConfig holds figure presentation defaults in pixels.
type PlotConfig struct {
	Width       int  `yaml:"width"`
	Height      int  `yaml:"height"`
	GroupToggle bool `yaml:"group_toggle"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataDir: "/data/nicer",
		Log:     LogConfig{Level: "info"},
		Spectrum: SpectrumConfig{
			Cut: []float64{0.3, 10},
		},
		Plot: PlotConfig{Width: 900, Height: 600},
	}
}

// Load reads path from fsys over the defaults. A missing file yields the
// defaults unchanged.
func Load(fsys afero.Fs, path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	for _, mc := range []struct {
		name string
		v    float64
	}{
		{name: "spectrum.min_count", v: c.Spectrum.MinCount},
		{name: "lightcurve.min_count", v: c.LightCurve.MinCount},
		{name: "hardness.min_count", v: c.Hardness.MinCount},
	} {
		if mc.v < 0 {
			return fmt.Errorf("%w: %s is negative", core.ErrInvalidInput, mc.name)
		}
	}

	for _, cut := range []struct {
		name string
		v    []float64
	}{
		{name: "spectrum.cut", v: c.Spectrum.Cut},
		{name: "lightcurve.cut", v: c.LightCurve.Cut},
		{name: "powerspec.cut", v: c.PowerSpec.Cut},
	} {
		if _, err := CutRange(cut.v); err != nil {
			return fmt.Errorf("%s: %w", cut.name, err)
		}
	}

	if c.Plot.Width < 0 || c.Plot.Height < 0 {
		return fmt.Errorf("%w: negative plot size", core.ErrInvalidInput)
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", core.ErrInvalidInput, err)
	}

	return nil
}

// CutRange converts a [low, high] pair into a range. An empty list is
// unbounded.
func CutRange(cut []float64) (core.Range, error) {
	switch len(cut) {
	case 0:
		return core.Unbounded(), nil
	case 2:
		return core.NewRange(cut[0], cut[1])
	default:
		return core.Range{}, fmt.Errorf("%w: cut needs 2 values, got %d", core.ErrInvalidInput, len(cut))
	}
}

// Logger builds the zap logger described by c.Log.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("config: log level: %w", err)
	}

	zc := zap.NewProductionConfig()
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}
