package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/st4ngkudut/ST4Wrt-bot/internal/config"
	"github.com/st4ngkudut/ST4Wrt-bot/internal/logger"
	"github.com/st4ngkudut/ST4Wrt-bot/internal/service"
	"github.com/st4ngkudut/ST4Wrt-bot/internal/state"
)

// statusCmd summarizes what the last provisioning run recorded and
// asks the init script for the live service state.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show provisioning record and live service status",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(profilePath)
		if err != nil {
			return err
		}

		st := state.Load(cfg.StateFile)
		out := cmd.OutOrStdout()
		if st.ProvisionedAt.IsZero() {
			logger.Warn("[WARN] No completed provisioning run recorded at %s.\n", cfg.StateFile)
		} else {
			fmt.Fprintf(out, "Provisioned:  %s\n", st.ProvisionedAt.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "Workspace:    %s\n", st.Workspace)
			fmt.Fprintf(out, "Init script:  %s\n", st.InitScript)
			for name, outcome := range st.Packages {
				fmt.Fprintf(out, "Package:      %s (%s)\n", name, outcome)
			}
		}

		reg := service.NewRegistrar(cfg)
		output, err := reg.Control("status")
		if err != nil {
			logger.Warn("[WARN] Could not query service status: %v\n", err)
			return nil
		}
		fmt.Fprintf(out, "Service:      %s", output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
