package util

import (
	"os"
	"path/filepath"
	"runtime"
)

// UserDataDir returns the platform's standard per-user application
// data directory: %APPDATA% on Windows, ~/Library/Application Support
// on macOS, $XDG_DATA_HOME (or ~/.local/share) elsewhere. Falls back
// to the current directory when nothing can be determined; callers
// get a usable path, never an error.
func UserDataDir() string {
	switch runtime.GOOS {
	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir
		}
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	default:
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return dir
		}
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".local", "share")
		}
	}
	return "."
}
