package convergence

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func readSecrets(t *testing.T, dir string) []byte {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(dir, SecretsFileName))
	if err != nil {
		t.Fatalf("failed to read secrets file: %v", err)
	}
	return raw
}

func TestWriteSecretsIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	s := Secrets{BotToken: "123:ABC-def", AdminID: "42", GuestInterface: "phy1-ap1"}

	if err := WriteSecrets(dir, s); err != nil {
		t.Fatalf("first write: %v", err)
	}
	first := readSecrets(t, dir)
	if err := WriteSecrets(dir, s); err != nil {
		t.Fatalf("second write: %v", err)
	}
	second := readSecrets(t, dir)

	if !bytes.Equal(first, second) {
		t.Fatalf("repeated writes differ:\n%s\nvs\n%s", first, second)
	}
	for _, key := range []string{"BOT_TOKEN=", "ADMIN_ID=", "GUEST_INTERFACE="} {
		if n := strings.Count(string(second), key); n != 1 {
			t.Fatalf("key %s appears %d times, want 1", key, n)
		}
	}
}

func TestWriteSecretsOmitsUnsetInterface(t *testing.T) {
	dir := t.TempDir()
	if err := WriteSecrets(dir, Secrets{BotToken: "abc:123", AdminID: "1234"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(readSecrets(t, dir)), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected exactly 2 lines, got %d: %q", len(lines), lines)
	}
	if lines[0] != `BOT_TOKEN="abc:123"` {
		t.Fatalf("unexpected token line %q", lines[0])
	}
	if lines[1] != `ADMIN_ID="1234"` {
		t.Fatalf("unexpected admin line %q", lines[1])
	}
}

func TestWriteSecretsDropsStaleInterfaceLine(t *testing.T) {
	dir := t.TempDir()
	if err := WriteSecrets(dir, Secrets{BotToken: "t", AdminID: "1", GuestInterface: "phy1-ap1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := WriteSecrets(dir, Secrets{BotToken: "t", AdminID: "1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(readSecrets(t, dir)), "GUEST_INTERFACE") {
		t.Fatalf("stale interface line survived the rewrite")
	}
}

func TestWriteSecretsRestrictsPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, SecretsFileName)

	// A pre-existing world-readable file must end up owner-only.
	if err := os.WriteFile(path, []byte("BOT_TOKEN=\"old\"\n"), 0644); err != nil {
		t.Fatalf("seed write: %v", err)
	}
	if err := WriteSecrets(dir, Secrets{BotToken: "t", AdminID: "1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Fatalf("secrets file mode = %o, want 0600", perm)
	}
}
