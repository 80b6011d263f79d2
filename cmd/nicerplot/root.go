package main

import (
	"github.com/cwbudde/algo-nicer/internal/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by all subcommands.
type app struct {
	fs      afero.Fs
	cfgPath string
	config  config.Config
	logger  *zap.Logger
}

func newRootCommand(fs afero.Fs) *cobra.Command {
	a := &app{fs: fs, config: config.Default(), logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:          "nicerplot",
		Short:        "Plot NICER spectra, light curves, power spectra and hardness diagrams",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	cmd.PersistentFlags().StringVar(&a.cfgPath, "config", "", "YAML configuration file")

	cmd.AddCommand(
		newDomainsCommand(a),
		newRenderCommand(a),
	)

	return cmd
}

func (a *app) setup() error {
	cfg, err := config.Load(a.fs, a.cfgPath)
	if err != nil {
		return err
	}

	logger, err := cfg.Logger()
	if err != nil {
		return err
	}

	a.config = cfg
	a.logger = logger

	return nil
}
