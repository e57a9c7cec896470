package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

func appSupportDir() (string, error) {
	if override := strings.TrimSpace(os.Getenv("ARBORIST_HOME")); override != "" {
		return override, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", errors.Join(err, herr)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "arborist"), nil
}

// DefaultPath is where the config file lives when -config is not given.
func DefaultPath() (string, error) {
	dir, err := appSupportDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "arborist.toml"), nil
}

func defaultDatabasePath() string {
	dir, err := appSupportDir()
	if err != nil {
		return "arborist.db"
	}
	return filepath.Join(dir, "arborist.db")
}
