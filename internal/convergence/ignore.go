package convergence

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/st4ngkudut/ST4Wrt-bot/internal/logger"
)

// EnsureIgnored makes sure each entry appears as an exact line in
// <dir>/.gitignore, appending the missing ones. The file is never
// truncated or reordered: operators and earlier runs may have added
// unrelated entries, and those must survive.
func EnsureIgnored(dir string, entries []string) error {
	path := filepath.Join(dir, ".gitignore")

	existing := make(map[string]bool)
	needsNewline := false
	if raw, err := os.ReadFile(path); err == nil {
		scanner := bufio.NewScanner(strings.NewReader(string(raw)))
		for scanner.Scan() {
			existing[strings.TrimSpace(scanner.Text())] = true
		}
		needsNewline = len(raw) > 0 && raw[len(raw)-1] != '\n'
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s for appending: %w", path, err)
	}
	defer file.Close()

	for _, entry := range entries {
		if existing[entry] {
			logger.Debug("[DEBUG] Ignore entry already present: %s\n", entry)
			continue
		}
		line := entry + "\n"
		if needsNewline {
			// The file ends mid-line; complete it so the new entry
			// stands on its own line and matches exactly next run.
			line = "\n" + line
			needsNewline = false
		}
		if _, err := file.WriteString(line); err != nil {
			return fmt.Errorf("failed to append %q to %s: %w", entry, path, err)
		}
		logger.Info("[INFO] Added ignore entry: %s\n", entry)
		existing[entry] = true
	}
	return nil
}
