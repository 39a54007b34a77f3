package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// Defaults are the operator-side paths bugg uses when nothing else is given.
type Defaults struct {
	ConfigPath string
	BaseDir    string
	LogDir     string
}

// GetDefaults resolves the default paths, checking environment variables first.
// Environment variables:
//   - BUGG_CONFIG_PATH: settings file (default: ~/.config/bugg.toml)
//   - BUGG_HOME: data directory holding the log folder (default: ~/.local/share/bugg)
func GetDefaults() (*Defaults, error) {
	configPath, err := envOrHome("BUGG_CONFIG_PATH", ".config", "bugg.toml")
	if err != nil {
		return nil, err
	}

	baseDir, err := envOrHome("BUGG_HOME", ".local", "share", "bugg")
	if err != nil {
		return nil, err
	}

	return &Defaults{
		ConfigPath: configPath,
		BaseDir:    baseDir,
		LogDir:     filepath.Join(baseDir, "log"),
	}, nil
}

// envOrHome returns the value of env if set, otherwise the path under the
// user's home directory.
func envOrHome(env string, elem ...string) (string, error) {
	if path := os.Getenv(env); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(append([]string{homeDir}, elem...)...), nil
}
