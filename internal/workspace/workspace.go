// Package workspace ensures the bot checkout exists exactly once. An
// existing directory is authoritative and is never touched again; a
// missing one is created by cloning the repository or, on routers with
// no git client, by downloading and extracting a release archive.
package workspace

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/st4ngkudut/ST4Wrt-bot/internal/config"
	"github.com/st4ngkudut/ST4Wrt-bot/internal/logger"
	"github.com/st4ngkudut/ST4Wrt-bot/internal/runner"
)

// Resolver materializes the workspace described by the profile.
type Resolver struct {
	Path   string
	Source config.Source

	Run      runner.Func
	Download func(url, dest string) error
}

func NewResolver(p config.Profile) *Resolver {
	return &Resolver{
		Path:     p.Workspace,
		Source:   p.Source,
		Run:      runner.Run,
		Download: downloadFile,
	}
}

// Resolve returns the workspace path, creating it first if needed.
// Re-running against an existing checkout is a no-op: local changes,
// branches, and application data files are left exactly as they are.
func (r *Resolver) Resolve() (string, error) {
	if info, err := os.Stat(r.Path); err == nil {
		if !info.IsDir() {
			return "", fmt.Errorf("workspace path %s exists but is not a directory", r.Path)
		}
		logger.Info("[INFO] Workspace %s already exists. Skipping download.\n", r.Path)
		return r.Path, nil
	}

	switch r.Source.Kind {
	case "", "git":
		return r.Path, r.clone()
	case "archive":
		return r.Path, r.fetchArchive()
	default:
		return "", fmt.Errorf("unknown source kind %q (want git or archive)", r.Source.Kind)
	}
}

func (r *Resolver) clone() error {
	logger.Info("[INFO] Cloning %s into %s...\n", r.Source.RepoURL, r.Path)
	output, err := r.Run("git", "clone", r.Source.RepoURL, r.Path)
	if err != nil {
		return fmt.Errorf("failed to clone %s: %w\noutput: %s", r.Source.RepoURL, err, output)
	}
	return nil
}

// fetchArchive downloads the release archive into a scratch directory,
// extracts it there, and moves the extracted tree into place. The
// workspace only appears once the whole extraction has succeeded.
//
// The scratch directory lives next to the destination, not under the
// system temp dir: on OpenWrt /tmp is tmpfs while the workspace sits
// on the overlay filesystem, and a rename across that mount boundary
// fails with EXDEV.
func (r *Resolver) fetchArchive() error {
	if err := os.MkdirAll(filepath.Dir(r.Path), 0755); err != nil {
		return fmt.Errorf("failed to create parent of %s: %w", r.Path, err)
	}
	scratch, err := os.MkdirTemp(filepath.Dir(r.Path), ".st4wrt-archive-")
	if err != nil {
		return fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	archivePath := filepath.Join(scratch, path.Base(r.Source.ArchiveURL))
	logger.Info("[INFO] Downloading %s...\n", r.Source.ArchiveURL)
	if err := r.Download(r.Source.ArchiveURL, archivePath); err != nil {
		return fmt.Errorf("failed to download archive: %w", err)
	}

	extracted, err := ExtractArchive(archivePath, scratch)
	if err != nil {
		return fmt.Errorf("failed to extract archive: %w", err)
	}

	if err := os.Rename(extracted, r.Path); err != nil {
		return fmt.Errorf("failed to move extracted tree into %s: %w", r.Path, err)
	}
	return nil
}

// downloadFile fetches url into destPath.
func downloadFile(url, destPath string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to GET %s: %w", url, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close response body: %v\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: HTTP status %d", url, resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", destPath, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close %s: %v\n", destPath, cerr)
		}
	}()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to write %s: %w", destPath, err)
	}
	logger.Debug("[DEBUG] Downloaded archive to %s\n", destPath)
	return nil
}
