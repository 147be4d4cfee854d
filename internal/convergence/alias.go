package convergence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/st4ngkudut/ST4Wrt-bot/internal/logger"
)

// EnsureAliasStore guarantees <dir>/device_aliases.json exists so the
// bot can read it on first start. The file belongs to the bot, not to
// this tool: it is initialized to an empty JSON object only when
// missing or zero-length, and existing content is never rewritten —
// doing so would wipe aliases the admin has assigned through the bot.
func EnsureAliasStore(dir string) error {
	path := filepath.Join(dir, AliasStoreName)

	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
			return fmt.Errorf("failed to initialize alias store %s: %w", path, err)
		}
		logger.Info("[INFO] Initialized empty alias store at %s\n", path)
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read alias store %s: %w", path, err)
	}
	var aliases map[string]any
	if err := json.Unmarshal(raw, &aliases); err != nil {
		// Leave the file alone either way; the bot reports parse
		// errors itself and falls back to an empty alias map.
		logger.Warn("[WARN] Alias store %s does not parse as a JSON object: %v\n", path, err)
	}
	return nil
}
