// Package provision sequences a full run: validate operator input,
// install dependencies, resolve the workspace, converge the bot's
// configuration, and register the service. The first fatal error stops
// the run; nothing already done is rolled back, because every step is
// safe to repeat on the next invocation.
package provision

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/st4ngkudut/ST4Wrt-bot/internal/config"
	"github.com/st4ngkudut/ST4Wrt-bot/internal/convergence"
	"github.com/st4ngkudut/ST4Wrt-bot/internal/logger"
	"github.com/st4ngkudut/ST4Wrt-bot/internal/pkgmgr"
	"github.com/st4ngkudut/ST4Wrt-bot/internal/prompt"
	"github.com/st4ngkudut/ST4Wrt-bot/internal/service"
	"github.com/st4ngkudut/ST4Wrt-bot/internal/state"
	"github.com/st4ngkudut/ST4Wrt-bot/internal/workspace"
)

// Provisioner wires the provisioning steps together. Collected input
// travels through it as an explicit Secrets value; no step communicates
// with another through process environment or other shared state.
type Provisioner struct {
	Profile   config.Profile
	Prompter  *prompt.Prompter
	Opkg      *pkgmgr.Opkg
	Pip       *pkgmgr.Pip
	Resolver  *workspace.Resolver
	Registrar *service.Registrar
	Out       io.Writer
}

// New builds a Provisioner with real collaborators for the profile.
func New(p config.Profile, pr *prompt.Prompter) *Provisioner {
	return &Provisioner{
		Profile:   p,
		Prompter:  pr,
		Opkg:      pkgmgr.NewOpkg(),
		Pip:       pkgmgr.NewPip(),
		Resolver:  workspace.NewResolver(p),
		Registrar: service.NewRegistrar(p),
		Out:       os.Stdout,
	}
}

// Run executes the provisioning sequence and reports the first fatal
// error with its stage. Safe to invoke any number of times.
func (pv *Provisioner) Run() error {
	secrets, err := pv.collectInput()
	if err != nil {
		return fmt.Errorf("input validation: %w", err)
	}

	st := &state.State{Packages: make(map[string]string)}

	pv.Opkg.Update()
	outcomes, err := pv.Opkg.Install(pv.Profile.Packages.Critical, pv.Profile.Packages.Optional)
	for name, outcome := range outcomes {
		st.Packages[name] = outcome
	}
	if err != nil {
		return fmt.Errorf("dependency installation: %w", err)
	}
	if err := pv.Pip.Install(pv.Profile.Python.Libraries, pv.Profile.Python.BreakSystemPackages); err != nil {
		return fmt.Errorf("dependency installation: %w", err)
	}
	st.PythonLibraries = pv.Profile.Python.Libraries

	ws, err := pv.Resolver.Resolve()
	if err != nil {
		return fmt.Errorf("workspace resolution: %w", err)
	}
	st.Workspace = ws

	if err := pv.convergeConfig(ws, secrets); err != nil {
		return fmt.Errorf("configuration convergence: %w", err)
	}

	scriptPath, err := pv.Registrar.Install(ws)
	if err != nil {
		return fmt.Errorf("service registration: %w", err)
	}
	if err := pv.Registrar.Register(); err != nil {
		return fmt.Errorf("service registration: %w", err)
	}
	st.InitScript = scriptPath
	st.ProvisionedAt = time.Now()
	state.Save(pv.Profile.StateFile, st)

	logger.Info("[INFO] Provisioning complete. %s is enabled and running.\n", pv.Registrar.Name)
	fmt.Fprintf(pv.Out, "\nCheck status: %s status\n", scriptPath)
	fmt.Fprintf(pv.Out, "View logs:    logread -e %s\n", pv.Registrar.Name)
	return nil
}

// collectInput acquires the three operator-supplied values. The token
// and admin ID re-prompt until valid; the guest interface is optional
// and an empty answer leaves the feature unconfigured.
func (pv *Provisioner) collectInput() (convergence.Secrets, error) {
	token, err := pv.Prompter.Token("Enter the Telegram bot token")
	if err != nil {
		return convergence.Secrets{}, err
	}
	adminID, err := pv.Prompter.Digits("Enter the Telegram admin user ID")
	if err != nil {
		return convergence.Secrets{}, err
	}
	iface, err := pv.Prompter.Optional("Guest WiFi interface (leave empty to skip)")
	if err != nil {
		return convergence.Secrets{}, err
	}
	return convergence.Secrets{BotToken: token, AdminID: adminID, GuestInterface: iface}, nil
}

// convergeConfig brings the workspace configuration to the desired
// state: secrets rewritten from scratch, ignore list grown as needed,
// alias store initialized if the bot has never written it.
func (pv *Provisioner) convergeConfig(ws string, secrets convergence.Secrets) error {
	if err := convergence.WriteSecrets(ws, secrets); err != nil {
		return err
	}
	ignored := []string{
		convergence.SecretsFileName,
		convergence.AliasStoreName,
		convergence.KnownDevicesName,
	}
	if err := convergence.EnsureIgnored(ws, ignored); err != nil {
		return err
	}
	return convergence.EnsureAliasStore(ws)
}
