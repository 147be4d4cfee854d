package cmd

import (
	"github.com/spf13/cobra"

	"github.com/st4ngkudut/ST4Wrt-bot/internal/config"
	"github.com/st4ngkudut/ST4Wrt-bot/internal/prompt"
	"github.com/st4ngkudut/ST4Wrt-bot/internal/provision"
)

// installCmd runs the full interactive provisioning sequence. It is
// safe to run repeatedly: dependency installs, the workspace clone,
// config rewrites, and service registration all converge to the same
// end state no matter what a previous run left behind.
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install dependencies, configure the bot, and register its service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(profilePath)
		if err != nil {
			return err
		}
		return provision.New(cfg, prompt.NewTerminal()).Run()
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
