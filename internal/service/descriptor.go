// Package service renders the procd init script for the bot and
// drives it through the supervisor lifecycle: enable at boot, then
// start or restart.
package service

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/st4ngkudut/ST4Wrt-bot/internal/config"
	"github.com/st4ngkudut/ST4Wrt-bot/internal/logger"
	"github.com/st4ngkudut/ST4Wrt-bot/internal/runner"
)

// initScriptTemplate is the full procd service descriptor. Only the
// workspace path and the profile's service parameters vary; everything
// else is fixed: late start (START=99) so the network is up, early
// stop, respawn on exit, and both output streams forwarded to the
// system log so `logread` shows the bot.
const initScriptTemplate = `#!/bin/sh /etc/rc.common
# {{.Name}} - managed by st4wrt-setup, rewritten on every install run.

START=99
STOP=10

USE_PROCD=1

start_service() {
	procd_open_instance {{.Name}}
	procd_set_param command /bin/sh -c "cd {{.Workspace}} && exec {{.Interpreter}} {{.Entry}}"
	procd_set_param respawn
	procd_set_param stdout 1
	procd_set_param stderr 1
	procd_close_instance
}
`

// Registrar installs and controls the bot's init script.
type Registrar struct {
	Name        string
	Interpreter string
	Entry       string

	// InitDir is /etc/init.d on a real router; tests point it at a
	// temporary directory.
	InitDir string

	Run runner.Func
}

func NewRegistrar(p config.Profile) *Registrar {
	return &Registrar{
		Name:        p.Service.Name,
		Interpreter: p.Service.Interpreter,
		Entry:       p.Service.Entry,
		InitDir:     "/etc/init.d",
		Run:         runner.Run,
	}
}

// ScriptPath returns where the init script lives.
func (r *Registrar) ScriptPath() string {
	return filepath.Join(r.InitDir, r.Name)
}

// Render produces the init script content for the given workspace.
func (r *Registrar) Render(workspace string) ([]byte, error) {
	tmpl, err := template.New("init").Parse(initScriptTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse init script template: %w", err)
	}
	var buf bytes.Buffer
	err = tmpl.Execute(&buf, struct {
		Name, Workspace, Interpreter, Entry string
	}{r.Name, workspace, r.Interpreter, r.Entry})
	if err != nil {
		return nil, fmt.Errorf("failed to render init script: %w", err)
	}
	return buf.Bytes(), nil
}

// Install writes the rendered script to its well-known location,
// unconditionally replacing any previous version, and marks it
// executable. The script has no operator-tunable fields beyond the
// workspace path, so a full overwrite is always correct.
func (r *Registrar) Install(workspace string) (string, error) {
	content, err := r.Render(workspace)
	if err != nil {
		return "", err
	}
	path := r.ScriptPath()
	if err := os.WriteFile(path, content, 0755); err != nil {
		return "", fmt.Errorf("failed to write init script %s: %w", path, err)
	}
	if err := os.Chmod(path, 0755); err != nil {
		return "", fmt.Errorf("failed to mark %s executable: %w", path, err)
	}
	logger.Info("[INFO] Installed init script at %s\n", path)
	return path, nil
}
