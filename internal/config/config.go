package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile describes one provisioning run: which packages to install,
// where the bot checkout lives, and how the service is registered.
// Every field has a built-in default matching the upstream ST4Wrt-bot
// installation, so running without a profile file is the common case.
type Profile struct {
	Packages Packages `yaml:"packages"`
	Python   Python   `yaml:"python"`
	Source   Source   `yaml:"source"`
	Service  Service  `yaml:"service"`

	// Workspace is the directory the bot is cloned into and run from.
	Workspace string `yaml:"workspace"`

	// StateFile records what the last run accomplished, for `status`.
	StateFile string `yaml:"state_file"`
}

// Packages lists the opkg packages to install. A failure on a critical
// package aborts the run; optional packages only degrade bot features
// (speedtest, Wake-on-LAN) and a failure is logged and tolerated.
type Packages struct {
	Critical []string `yaml:"critical"`
	Optional []string `yaml:"optional"`
}

// Python describes the pip install step. BreakSystemPackages passes
// --break-system-packages, required on OpenWrt's externally managed
// Python since 23.05.
type Python struct {
	Libraries           []string `yaml:"libraries"`
	BreakSystemPackages bool     `yaml:"break_system_packages"`
}

// Source describes where the bot checkout comes from when the
// workspace does not exist yet. Kind is "git" (default) or "archive"
// for routers without a git client.
type Source struct {
	Kind       string `yaml:"kind"`
	RepoURL    string `yaml:"repo_url"`
	ArchiveURL string `yaml:"archive_url"`
}

// Service holds the procd registration parameters.
type Service struct {
	Name        string `yaml:"name"`
	Interpreter string `yaml:"interpreter"`
	Entry       string `yaml:"entry"`
}

// Default returns the built-in profile for a stock ST4Wrt-bot install.
func Default() Profile {
	return Profile{
		Packages: Packages{
			Critical: []string{"python3", "python3-pip", "git", "git-http"},
			Optional: []string{"speedtest-go", "etherwake"},
		},
		Python: Python{
			Libraries:           []string{"python-telegram-bot[job-queue]", "python-dotenv"},
			BreakSystemPackages: true,
		},
		Source: Source{
			Kind:       "git",
			RepoURL:    "https://github.com/st4ngkudut/ST4Wrt-bot.git",
			ArchiveURL: "https://github.com/st4ngkudut/ST4Wrt-bot/archive/refs/heads/main.tar.gz",
		},
		Service: Service{
			Name:        "st4wrt-bot",
			Interpreter: "/usr/bin/python3",
			Entry:       "bot.py",
		},
		Workspace: "/root/ST4Wrt-bot",
		StateFile: "/etc/st4wrt-setup.state.json",
	}
}

// Load reads a YAML profile from path and merges it over the defaults.
// An empty path returns the defaults unchanged. Fields left out of the
// file keep their default value, so a profile only needs to name what
// it changes.
func Load(path string) (Profile, error) {
	p := Default()
	if path == "" {
		return p, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Profile{}, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return p, nil
}
