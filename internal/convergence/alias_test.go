package convergence

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureAliasStoreCreatesEmptyObject(t *testing.T) {
	dir := t.TempDir()
	if err := EnsureAliasStore(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, AliasStoreName))
	if err != nil {
		t.Fatalf("alias store not created: %v", err)
	}
	if string(raw) != "{}" {
		t.Fatalf("got %q, want {}", raw)
	}
}

func TestEnsureAliasStoreInitializesZeroLengthFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, AliasStoreName)
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("seed write: %v", err)
	}

	if err := EnsureAliasStore(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, _ := os.ReadFile(path)
	if string(raw) != "{}" {
		t.Fatalf("got %q, want {}", raw)
	}
}

func TestEnsureAliasStoreNeverTouchesExistingContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, AliasStoreName)
	seed := []byte(`{"aa:bb:cc:dd:ee:ff": "Living Room TV"}`)
	if err := os.WriteFile(path, seed, 0644); err != nil {
		t.Fatalf("seed write: %v", err)
	}

	if err := EnsureAliasStore(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, _ := os.ReadFile(path)
	if !bytes.Equal(raw, seed) {
		t.Fatalf("existing aliases altered: %q", raw)
	}
}

func TestEnsureAliasStoreLeavesInvalidContentAlone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, AliasStoreName)
	seed := []byte("not json at all")
	if err := os.WriteFile(path, seed, 0644); err != nil {
		t.Fatalf("seed write: %v", err)
	}

	// Invalid content is the bot's problem to report; this tool only
	// warns and must not destroy the file.
	if err := EnsureAliasStore(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, _ := os.ReadFile(path)
	if !bytes.Equal(raw, seed) {
		t.Fatalf("invalid alias store was rewritten: %q", raw)
	}
}
