package state

import (
	"encoding/json"
	"os"
	"time"

	"github.com/st4ngkudut/ST4Wrt-bot/internal/logger"
)

// State records what the last provisioning run accomplished. It is
// purely informational, consumed by `st4wrt-setup status`: the
// convergence steps never consult it, since every one of them is safe
// to repeat against any prior on-disk state.
type State struct {
	Packages        map[string]string `json:"packages"`         // package name -> install outcome
	PythonLibraries []string          `json:"python_libraries"` // libraries handed to pip
	Workspace       string            `json:"workspace"`        // resolved checkout path
	InitScript      string            `json:"init_script"`      // installed descriptor path
	ProvisionedAt   time.Time         `json:"provisioned_at"`   // completion time of the last successful run
}

// Load reads the state file at path. A missing or unreadable file just
// yields an empty state; the maps are always non-nil.
func Load(path string) *State {
	file, err := os.ReadFile(path)
	if err != nil {
		return &State{Packages: make(map[string]string)}
	}

	var st State
	_ = json.Unmarshal(file, &st)
	if st.Packages == nil {
		st.Packages = make(map[string]string)
	}
	return &st
}

// Save writes the state to path as indented JSON. Failures are logged
// but not propagated: a stale status file must not fail a run whose
// actual provisioning work already succeeded.
func Save(path string, st *State) {
	file, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		logger.Error("[ERROR] Failed to marshal state: %v\n", err)
		return
	}
	logger.Debug("[DEBUG] Writing state to %s\n", path)
	if err := os.WriteFile(path, file, 0644); err != nil {
		logger.Error("[ERROR] Failed to write state file %s: %v\n", path, err)
	}
}
