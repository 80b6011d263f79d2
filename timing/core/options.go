package core

import "go.uber.org/zap"

// ProcessorConfig defines settings shared by the domain normalizers.
type ProcessorConfig struct {
	// MinCount is the minimum accumulated count per bin. Zero selects the
	// file-native grouping instead of adaptive merging.
	MinCount float64
	// Cut is the window applied after binning.
	Cut Range
	// Rate divides time-binned products by the bin duration.
	Rate bool
	// Logger receives debug output; never nil after ApplyProcessorOptions.
	Logger *zap.Logger
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns a config with no binning, no cut and a
// no-op logger.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		MinCount: 0,
		Cut:      Unbounded(),
		Logger:   zap.NewNop(),
	}
}

// WithMinCount sets the minimum count per bin.
func WithMinCount(n float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if n >= 0 {
			cfg.MinCount = n
		}
	}
}

// WithCut sets the post-binning window. Inverted or NaN bounds are ignored.
func WithCut(low, high float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if r, err := NewRange(low, high); err == nil {
			cfg.Cut = r
		}
	}
}

// WithRate enables per-second normalization of time-binned products.
func WithRate(on bool) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		cfg.Rate = on
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// ApplyProcessorOptions applies zero or more options to base.
func ApplyProcessorOptions(base ProcessorConfig, opts ...ProcessorOption) ProcessorConfig {
	cfg := base
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
