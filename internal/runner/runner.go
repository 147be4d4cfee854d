// Package runner is the single seam between this tool and external
// processes (opkg, pip3, git, the init script). Everything shells out
// through a Func so tests can substitute a fake without touching the
// host system.
package runner

import (
	"os/exec"
	"strings"

	"github.com/st4ngkudut/ST4Wrt-bot/internal/logger"
)

// Func runs an external command and returns its combined output.
type Func func(name string, args ...string) ([]byte, error)

// Run is the real implementation: exec.Command with combined output,
// logging the full command line at debug level.
func Run(name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	logger.Debug("[DEBUG] Running command: %s\n", strings.Join(cmd.Args, " "))
	return cmd.CombinedOutput()
}
