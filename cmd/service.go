package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/st4ngkudut/ST4Wrt-bot/internal/config"
	"github.com/st4ngkudut/ST4Wrt-bot/internal/service"
)

// serviceCmd passes a lifecycle action straight through to the bot's
// init script, saving a trip to /etc/init.d by hand.
var serviceCmd = &cobra.Command{
	Use:       "service <action>",
	Short:     "Control the bot service (start, stop, restart, enable, disable, status)",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"start", "stop", "restart", "enable", "disable", "status"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(profilePath)
		if err != nil {
			return err
		}
		output, err := service.NewRegistrar(cfg).Control(args[0])
		if len(output) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s", output)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(serviceCmd)
}
