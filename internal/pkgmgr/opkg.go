// Package pkgmgr drives the host package tooling: opkg for system
// packages and pip3 for Python libraries. Failures are classified per
// package: critical packages abort the run, optional ones only log a
// warning and provisioning continues.
package pkgmgr

import (
	"fmt"

	"github.com/st4ngkudut/ST4Wrt-bot/internal/logger"
	"github.com/st4ngkudut/ST4Wrt-bot/internal/runner"
)

// Opkg installs system packages through the opkg client on PATH.
type Opkg struct {
	Run runner.Func
}

func NewOpkg() *Opkg {
	return &Opkg{Run: runner.Run}
}

// Update refreshes the opkg package lists. Routers behind flaky
// uplinks fail this routinely while the cached lists are still good
// enough to install from, so a failure is only a warning.
func (o *Opkg) Update() {
	logger.Info("[INFO] Updating package lists...\n")
	if output, err := o.Run("opkg", "update"); err != nil {
		logger.Warn("[WARN] opkg update failed: %v\nOutput: %s\n", err, output)
	}
}

// Package install outcomes recorded in the run state.
const (
	OutcomeInstalled = "installed"
	OutcomeFailed    = "failed"
)

// Install installs every critical package, then every optional one,
// returning the per-package outcome. The first critical failure aborts
// with an error (the partial outcome map is still returned); optional
// failures are logged and tolerated. No retries: the remedy for a
// transient failure is re-running the whole provisioner, which is safe.
func (o *Opkg) Install(critical, optional []string) (map[string]string, error) {
	outcomes := make(map[string]string, len(critical)+len(optional))
	for _, name := range critical {
		logger.Info("[INFO] Installing package %s...\n", name)
		output, err := o.Run("opkg", "install", name)
		if err != nil {
			outcomes[name] = OutcomeFailed
			return outcomes, fmt.Errorf("failed to install required package %s: %w\noutput: %s", name, err, output)
		}
		outcomes[name] = OutcomeInstalled
	}
	for _, name := range optional {
		logger.Info("[INFO] Installing optional package %s...\n", name)
		output, err := o.Run("opkg", "install", name)
		if err != nil {
			outcomes[name] = OutcomeFailed
			logger.Warn("[WARN] Optional package %s failed to install, continuing: %v\nOutput: %s\n", name, err, output)
			continue
		}
		outcomes[name] = OutcomeInstalled
	}
	return outcomes, nil
}
