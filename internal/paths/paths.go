// Package paths resolves where worktracker keeps its configuration and its
// data. Every resolver follows the same precedence: explicit flag first,
// then environment, then a platform default.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultDataDirName is the CWD-relative data directory used when nothing
// else selects one, keeping a project's data next to the project.
const DefaultDataDirName = ".worktracker-db"

// Environment variable overrides.
const (
	EnvConfigDir = "WORKTRACKER_CONFIG_DIR"
	EnvDataDir   = "WORKTRACKER_DATA_DIR"
)

const appDirName = "worktracker"

// DefaultConfigDir returns the per-user configuration directory:
// $XDG_CONFIG_HOME/worktracker (or ~/.config/worktracker) on Linux,
// os.UserConfigDir/worktracker elsewhere.
func DefaultConfigDir() (string, error) {
	return platformDefault("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the per-user data directory:
// $XDG_DATA_HOME/worktracker (or ~/.local/share/worktracker) on Linux,
// os.UserConfigDir/worktracker elsewhere.
func DefaultDataDir() (string, error) {
	return platformDefault("XDG_DATA_HOME", ".local", "share")
}

// platformDefault applies the XDG convention on Linux and defers to
// os.UserConfigDir everywhere else (Application Support on macOS, %APPDATA%
// on Windows).
func platformDefault(xdgVar string, homeFallback ...string) (string, error) {
	if runtime.GOOS != "linux" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}

	if xdg := os.Getenv(xdgVar); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	parts := append([]string{home}, homeFallback...)
	return filepath.Join(append(parts, appDirName)...), nil
}

// ResolveConfigDir picks the configuration directory: flag, then the
// WORKTRACKER_CONFIG_DIR environment variable, then DefaultConfigDir.
// Relative inputs are made absolute.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir picks the data directory: flag, then the data_dir value
// from config.yaml, then the WORKTRACKER_DATA_DIR environment variable,
// then $(CWD)/.worktracker-db. Relative inputs are made absolute.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
