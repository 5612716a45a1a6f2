package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/studiofront/internal/config"
	"github.com/ziadkadry99/studiofront/internal/logging"
)

var (
	cfgFile string
	verbose bool
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "studio",
	Short: "Architecture studio website with live project carousels",
	Long: `Studio serves the public landing page of an architecture studio: project
carousels that stay in sync across every open tab, a photo gallery built
from the project cards, and an admin API for editing the cards.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "info"
		if cfg, err := config.Load(cfgFile); err == nil {
			level = cfg.LogLevel
		}
		l, err := logging.New(level, verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".studio.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
