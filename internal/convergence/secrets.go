// Package convergence (re)writes the bot's configuration artifacts to
// their desired state regardless of what a previous run left behind.
// Two strategies are used deliberately: the secrets file has a single
// writer (this package) and is fully rewritten every run, while the
// ignore list is shared with the operator and git itself and therefore
// only ever grows by append-if-absent.
package convergence

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Artifact names inside the workspace. The bot reads these by name.
const (
	SecretsFileName  = ".env"
	AliasStoreName   = "device_aliases.json"
	KnownDevicesName = "known_devices.json"
)

// Secrets holds the validated operator input destined for the secrets
// file. GuestInterface may be empty, meaning the guest-WiFi feature is
// not configured; an empty value produces no line at all.
type Secrets struct {
	BotToken       string
	AdminID        string
	GuestInterface string
}

// WriteSecrets truncates and rewrites <dir>/.env with exactly one line
// per configured key. Rewriting from scratch instead of patching means
// repeated runs can never duplicate keys or leave stale ones behind.
// The file holds a live credential, so it is restricted to owner-only
// permissions immediately after the write; failing to do so is an
// error, not a warning.
func WriteSecrets(dir string, s Secrets) error {
	var b strings.Builder
	fmt.Fprintf(&b, "BOT_TOKEN=\"%s\"\n", s.BotToken)
	fmt.Fprintf(&b, "ADMIN_ID=\"%s\"\n", s.AdminID)
	if s.GuestInterface != "" {
		fmt.Fprintf(&b, "GUEST_INTERFACE=\"%s\"\n", s.GuestInterface)
	}

	path := filepath.Join(dir, SecretsFileName)
	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("failed to write secrets file %s: %w", path, err)
	}
	// WriteFile keeps the existing mode when the file already exists,
	// so enforce owner-only permissions explicitly.
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to restrict permissions on %s: %w", path, err)
	}
	return nil
}
