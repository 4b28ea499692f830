package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "copybench"

// GetConfigDir returns the per-user directory holding settings and logs.
func GetConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		return filepath.Join(appData, appName)
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", appName)
	default:
		configHome := os.Getenv("XDG_CONFIG_HOME")
		if configHome == "" {
			home, _ := os.UserHomeDir()
			configHome = filepath.Join(home, ".config")
		}
		return filepath.Join(configHome, appName)
	}
}

// Returns directory for debug logs
func GetLogsDir() string {
	return filepath.Join(GetConfigDir(), "logs")
}

// GetSettingsPath returns the default settings file location.
func GetSettingsPath() string {
	return filepath.Join(GetConfigDir(), "settings.toml")
}

// EnsureDirs creates all required directories
func EnsureDirs() error {
	dirs := []string{GetConfigDir(), GetLogsDir()}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}
