package pkgmgr

import (
	"fmt"

	"github.com/st4ngkudut/ST4Wrt-bot/internal/logger"
	"github.com/st4ngkudut/ST4Wrt-bot/internal/runner"
)

// Pip installs Python libraries through pip3 on PATH.
type Pip struct {
	Run runner.Func
}

func NewPip() *Pip {
	return &Pip{Run: runner.Run}
}

// Install installs all libraries in a single pip3 invocation. The bot
// cannot run without them, so any failure is fatal. breakSystem passes
// --break-system-packages, needed on OpenWrt's externally managed
// Python to install outside a virtualenv.
func (p *Pip) Install(libraries []string, breakSystem bool) error {
	if len(libraries) == 0 {
		return nil
	}
	args := []string{"install"}
	if breakSystem {
		args = append(args, "--break-system-packages")
	}
	args = append(args, libraries...)

	logger.Info("[INFO] Installing Python libraries: %v\n", libraries)
	output, err := p.Run("pip3", args...)
	if err != nil {
		return fmt.Errorf("failed to install Python libraries: %w\noutput: %s", err, output)
	}
	return nil
}
