package service

import (
	"fmt"

	"github.com/st4ngkudut/ST4Wrt-bot/internal/logger"
)

// Register marks the service to start at boot and brings it to a
// running state. Enable is idempotent under rc.common. Restart is
// preferred over start so that configuration written moments ago takes
// effect even when a previous run left the bot running; on a stopped
// service procd's restart simply starts it. Both steps are fatal on
// failure and nothing done earlier is rolled back.
func (r *Registrar) Register() error {
	logger.Info("[INFO] Enabling %s at boot...\n", r.Name)
	if output, err := r.Run(r.ScriptPath(), "enable"); err != nil {
		return fmt.Errorf("failed to enable service %s: %w\noutput: %s", r.Name, err, output)
	}

	logger.Info("[INFO] Restarting %s...\n", r.Name)
	if output, err := r.Run(r.ScriptPath(), "restart"); err != nil {
		return fmt.Errorf("failed to restart service %s: %w\noutput: %s", r.Name, err, output)
	}
	return nil
}

// Control passes an action (start, stop, restart, enable, disable,
// status) straight through to the init script and returns its output.
func (r *Registrar) Control(action string) ([]byte, error) {
	output, err := r.Run(r.ScriptPath(), action)
	if err != nil {
		return output, fmt.Errorf("%s %s failed: %w", r.Name, action, err)
	}
	return output, nil
}
