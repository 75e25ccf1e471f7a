// Package storage persists perft results between runs.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "weak"

// baseDataDir is the per-user application data root of the platform.
func baseDataDir() (string, error) {
	home, err := os.UserHomeDir()

	switch runtime.GOOS {
	case "darwin":
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "AppData", "Roaming"), nil
	}

	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir, nil
	}
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share"), nil
}

func ensureDir(elem ...string) (string, error) {
	dir := filepath.Join(elem...)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// GetDataDir returns the application data directory, creating it if needed:
// ~/Library/Application Support/weak on macOS, %APPDATA%\weak on Windows and
// $XDG_DATA_HOME/weak (default ~/.local/share/weak) elsewhere.
func GetDataDir() (string, error) {
	base, err := baseDataDir()
	if err != nil {
		return "", err
	}
	return ensureDir(base, appName)
}

// GetDatabaseDir returns the directory holding the perft cache.
func GetDatabaseDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return ensureDir(dataDir, "perft")
}
