package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/st4ngkudut/ST4Wrt-bot/internal/logger"
)

// debug toggles debug logging, set via the global --debug flag.
var debug bool

// profilePath points at an optional YAML provisioning profile. When
// empty, the built-in defaults for a stock ST4Wrt-bot install apply.
var profilePath string

var rootCmd = &cobra.Command{
	Use:           "st4wrt-setup",
	Short:         "Provision the ST4Wrt Telegram bot on an OpenWrt router",
	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug)
	},
}

// Execute registers global flags and runs the selected subcommand.
// Any fatal error from a run is reported and turns into a non-zero
// exit; already completed steps stay in place and the remedy is to
// fix the environment and run again.
func Execute() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&profilePath, "config", "c", "", "Path to a YAML provisioning profile")

	if err := rootCmd.Execute(); err != nil {
		logger.Error("[ERROR] %v\n", err)
		os.Exit(1)
	}
}
