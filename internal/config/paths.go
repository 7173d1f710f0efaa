package config

import (
	"os"
	"path/filepath"
)

// GetHomePath returns the application home directory. RAMOS_HOME overrides
// the default ~/.ramos, mainly for tests and shared-server setups.
func GetHomePath() string {
	if custom := os.Getenv("RAMOS_HOME"); custom != "" {
		return ExpandPath(custom)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".ramos"
	}
	return filepath.Join(homeDir, ".ramos")
}

// GetDBPath returns the path of the SQLite database backing the key-value
// store (configuration and branch cache).
func GetDBPath() string {
	return filepath.Join(GetHomePath(), "ramos.db")
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if len(path) == 1 {
			return homeDir
		}
		return filepath.Join(homeDir, path[1:])
	}
	return path
}
