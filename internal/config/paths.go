package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName names the per-user config and cache directories.
const AppName = "waybar-finance"

// FileName is the base name of the local config file.
const FileName = "config.json"

// SystemDir is the machine-wide directory searched for the shared config.
const SystemDir = "/etc/xdg/" + AppName

// Dir returns the per-user config directory, e.g. ~/.config/waybar-finance.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config dir: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// DefaultPath returns the local config file path.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// DefaultLogPath returns the dashboard log file path under the user cache dir.
func DefaultLogPath() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locating user cache dir: %w", err)
	}
	return filepath.Join(base, AppName, AppName+".log"), nil
}

// SharedDirs lists the directories searched for the shared config in search
// order. The first directory holding a shared file wins.
func SharedDirs(localDir string) []string {
	return []string{localDir, SystemDir}
}
