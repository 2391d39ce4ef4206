package types

import "errors"

// Config holds storage and backup parameters for the application core.
type Config struct {
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// BackupIntervalHours is the automatic-backup period. Zero selects the
	// default of 24 hours.
	BackupIntervalHours int `json:"backup_interval_hours" yaml:"backup_interval_hours"`

	// MaxAutoBackups caps the rolling backup history. Zero selects the
	// default of 5; oldest entries are evicted first.
	MaxAutoBackups int `json:"max_auto_backups" yaml:"max_auto_backups"`
}

// Defaults applied by Config accessors.
const (
	DefaultBackupIntervalHours = 24
	DefaultMaxAutoBackups      = 5
)

// Config validation errors.
var (
	ErrBackupIntervalInvalid = errors.New("backup interval must not be negative")
	ErrBackupCapInvalid      = errors.New("max auto backups must not be negative")
)

// Validate checks that the Config is well-formed, returning a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.BackupIntervalHours < 0 {
		return ErrBackupIntervalInvalid
	}
	if c.MaxAutoBackups < 0 {
		return ErrBackupCapInvalid
	}
	return nil
}

// GetBackupIntervalHours returns the configured interval or the default.
func (c Config) GetBackupIntervalHours() int {
	if c.BackupIntervalHours <= 0 {
		return DefaultBackupIntervalHours
	}
	return c.BackupIntervalHours
}

// GetMaxAutoBackups returns the configured history cap or the default.
func (c Config) GetMaxAutoBackups() int {
	if c.MaxAutoBackups <= 0 {
		return DefaultMaxAutoBackups
	}
	return c.MaxAutoBackups
}
