package repl

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Prefs are per-user preferences read from ~/.nlterm.toml. Command line
// flags override them.
type Prefs struct {
	Colors      *bool  `toml:"colors"`
	SandboxRoot string `toml:"sandbox_root"`
	RulesFile   string `toml:"rules_file"`
}

// DefaultPrefsPath returns ~/.nlterm.toml, or an empty string when the
// home directory cannot be determined.
func DefaultPrefsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".nlterm.toml")
}

// LoadPrefs reads preferences from path. A missing file or an empty path
// yields zero preferences without error.
func LoadPrefs(path string) (Prefs, error) {
	var p Prefs
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, err
	}

	if err := toml.Unmarshal(data, &p); err != nil {
		return Prefs{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return p, nil
}
