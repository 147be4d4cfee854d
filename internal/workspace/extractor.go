package workspace

import (
	"archive/tar"
	"archive/zip"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/xi2/xz"

	"github.com/st4ngkudut/ST4Wrt-bot/internal/logger"
)

// ExtractArchive unpacks src into dest and returns the path of the
// top-level directory the archive produced. The format is chosen from
// the filename suffix. Every member must sit under one shared
// top-level directory — the layout GitHub release archives use — and
// member names may not resolve outside dest; either violation aborts
// the extraction.
func ExtractArchive(src, dest string) (string, error) {
	switch {
	case strings.HasSuffix(src, ".zip"):
		logger.Debug("[DEBUG] Extracting zip archive %s\n", src)
		return extractZip(src, dest)
	case strings.HasSuffix(src, ".7z"):
		logger.Debug("[DEBUG] Extracting 7z archive %s\n", src)
		return extract7z(src, dest)
	case strings.HasSuffix(src, ".tar"), strings.HasSuffix(src, ".tar.gz"), strings.HasSuffix(src, ".tgz"),
		strings.HasSuffix(src, ".tar.bz2"), strings.HasSuffix(src, ".tar.xz"):
		logger.Debug("[DEBUG] Extracting tar archive %s\n", src)
		return extractTar(src, dest)
	default:
		return "", fmt.Errorf("unsupported archive format: %s", src)
	}
}

func extractTar(src, dest string) (string, error) {
	f, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var reader io.Reader = f
	switch {
	case strings.HasSuffix(src, ".tar.gz"), strings.HasSuffix(src, ".tgz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			return "", err
		}
		defer gr.Close()
		reader = gr
	case strings.HasSuffix(src, ".tar.bz2"):
		reader = bzip2.NewReader(f)
	case strings.HasSuffix(src, ".tar.xz"):
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			return "", err
		}
		reader = xzr
	}

	tr := tar.NewReader(reader)
	var top topTracker
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		if err := top.add(hdr.Name, hdr.Typeflag == tar.TypeDir); err != nil {
			return "", err
		}
		target, err := securePath(dest, hdr.Name)
		if err != nil {
			return "", err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return "", err
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr, os.FileMode(hdr.Mode)); err != nil {
				return "", err
			}
		}
	}
	return top.path(dest, src)
}

func extractZip(src, dest string) (string, error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		return "", err
	}
	defer r.Close()

	var top topTracker
	for _, f := range r.File {
		if err := top.add(f.Name, f.FileInfo().IsDir()); err != nil {
			return "", err
		}
		target, err := securePath(dest, f.Name)
		if err != nil {
			return "", err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return "", err
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		err = writeEntry(target, rc, f.Mode())
		rc.Close()
		if err != nil {
			return "", err
		}
	}
	return top.path(dest, src)
}

func extract7z(src, dest string) (string, error) {
	r, err := sevenzip.OpenReader(src)
	if err != nil {
		return "", fmt.Errorf("failed to open 7z archive: %w", err)
	}
	defer r.Close()

	var top topTracker
	for _, f := range r.File {
		if err := top.add(f.Name, f.FileInfo().IsDir()); err != nil {
			return "", err
		}
		target, err := securePath(dest, f.Name)
		if err != nil {
			return "", err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return "", err
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		err = writeEntry(target, rc, f.Mode())
		rc.Close()
		if err != nil {
			return "", err
		}
	}
	return top.path(dest, src)
}

// writeEntry writes one archive member to target, creating parent
// directories as needed and preserving the member's mode.
func writeEntry(target string, src io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	if mode.Perm() == 0 {
		mode = 0644
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// securePath joins an archive member name onto dest, rejecting names
// that would resolve outside it (absolute paths, ".." traversal).
func securePath(dest, name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes the extraction directory", name)
	}
	return filepath.Join(dest, clean), nil
}

// topTracker enforces that the whole archive shares one top-level
// directory, so the extracted tree can be moved into the workspace as
// a unit. Bare root-level files and a second top-level directory are
// both errors rather than silent sources of a broken workspace.
type topTracker struct {
	dir string
}

func (t *topTracker) add(name string, isDir bool) error {
	name = strings.TrimPrefix(name, "./")
	i := strings.IndexAny(name, `/\`)
	if i < 0 {
		if !isDir {
			return fmt.Errorf("archive entry %q is not inside a top-level directory", name)
		}
		i = len(name)
	}
	component := name[:i]
	switch {
	case t.dir == "":
		t.dir = component
	case t.dir != component:
		return fmt.Errorf("archive has multiple top-level entries (%q and %q)", t.dir, component)
	}
	return nil
}

func (t *topTracker) path(dest, src string) (string, error) {
	if t.dir == "" {
		return "", fmt.Errorf("archive %s contains no entries", src)
	}
	return filepath.Join(dest, t.dir), nil
}
