// Package config loads concierge settings from viper and resolves paths.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Default locations, before expansion.
const (
	DefaultConfigDir    = "$HOME/.config/concierge"
	DefaultDatabasePath = "$HOME/.local/share/concierge/concierge.db"
)

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
