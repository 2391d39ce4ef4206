// Config loading for the worktracker CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/michelsoler74/work-tracker-pro/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyDataDir        = "data_dir"
	cfgKeyLanguage       = "language"
	cfgKeyTheme          = "theme"
	cfgKeyNotifications  = "notifications"
	cfgKeyAutoBackup     = "auto_backup"
	cfgKeyBackupInterval = "backup.interval_hours"
	cfgKeyBackupCap      = "backup.max_auto_backups"
)

// appConfig is the loaded configuration, set by PersistentPreRunE.
var appConfig *viper.Viper

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Worktracker CLI configuration

# UI preferences, carried into backups as settings.
language: es
theme: light
notifications: true

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Automatic backups
auto_backup: true
backup:
  interval_hours: 24
  max_auto_backups: 5
`

// loadConfig reads config.yaml from the resolved config directory using
// Viper. It creates the config directory and a default config.yaml on first
// run. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyLanguage, "es")
	v.SetDefault(cfgKeyTheme, "light")
	v.SetDefault(cfgKeyNotifications, true)
	v.SetDefault(cfgKeyAutoBackup, true)
	v.SetDefault(cfgKeyBackupInterval, types.DefaultBackupIntervalHours)
	v.SetDefault(cfgKeyBackupCap, types.DefaultMaxAutoBackups)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Missing config.yaml is not an error.
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// backupConfig builds the typed config the backup manager consumes.
func backupConfig() types.Config {
	return types.Config{
		DataDir:             configDataDir,
		BackupIntervalHours: appConfig.GetInt(cfgKeyBackupInterval),
		MaxAutoBackups:      appConfig.GetInt(cfgKeyBackupCap),
	}
}

// appSettings collects the UI preferences that ride along in snapshots.
func appSettings() map[string]string {
	return map[string]string{
		cfgKeyLanguage:      appConfig.GetString(cfgKeyLanguage),
		cfgKeyTheme:         appConfig.GetString(cfgKeyTheme),
		cfgKeyNotifications: appConfig.GetString(cfgKeyNotifications),
		cfgKeyAutoBackup:    appConfig.GetString(cfgKeyAutoBackup),
	}
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
