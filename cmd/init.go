package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/studiofront/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a studio configuration with an interactive wizard",
	Long:  `Runs an interactive wizard that picks the card source and carousel mode and writes the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
