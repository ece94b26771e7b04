// settings.go resolves the tool-level settings used by the lifecycle
// commands. Settings come from an optional mailgram.jsonc file in the
// project directory; absent fields fall back to defaults matching the
// stock deployment layout (docker-compose.yml, service "bot", ./logs,
// ./backups).
//
// JSONC (JSON with comments and trailing commas) is used instead of
// strict JSON so the settings file can be annotated in place.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/mmr-tortoise/mailgram/internal/model"
)

// SettingsFileName is the optional per-project settings file probed by
// LoadSettings in the project directory.
const SettingsFileName = "mailgram.jsonc"

// Default values applied for settings absent from the settings file.
const (
	DefaultComposeFile = "docker-compose.yml"
	DefaultEnvFile     = ".env"
	DefaultService     = "bot"
	DefaultTailLines   = 100
	DefaultLogsDir     = "logs"
	DefaultBackupDir   = "backups"
)

// Settings is the explicit configuration object for the lifecycle
// commands. It is constructed once at the program entry point and
// passed to each command handler.
type Settings struct {
	// ProjectDir is the directory containing the compose file, env file
	// and settings file. All relative paths below resolve against it.
	ProjectDir string `json:"-"`

	// ComposeFile is the compose file path, relative to ProjectDir.
	ComposeFile string `json:"composeFile"`

	// EnvFile is the env file path checked before state-changing
	// commands, relative to ProjectDir.
	EnvFile string `json:"envFile"`

	// Service is the default compose service for logs and shell.
	Service string `json:"service"`

	// TailLines is the default number of log lines for the logs command.
	TailLines int `json:"tailLines"`

	// LogsDir is the directory snapshotted by the backup command,
	// relative to ProjectDir.
	LogsDir string `json:"logsDir"`

	// BackupDir is the directory receiving timestamped backup
	// snapshots, relative to ProjectDir.
	BackupDir string `json:"backupDir"`
}

// DefaultSettings returns Settings with all defaults applied for the
// given project directory.
func DefaultSettings(projectDir string) Settings {
	return Settings{
		ProjectDir:  projectDir,
		ComposeFile: DefaultComposeFile,
		EnvFile:     DefaultEnvFile,
		Service:     DefaultService,
		TailLines:   DefaultTailLines,
		LogsDir:     DefaultLogsDir,
		BackupDir:   DefaultBackupDir,
	}
}

// LoadSettings builds the Settings for a project directory. When a
// mailgram.jsonc file exists it overrides the defaults field by field;
// a missing file is not an error.
func LoadSettings(projectDir string) (Settings, error) {
	settings := DefaultSettings(projectDir)

	path := filepath.Join(projectDir, SettingsFileName)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return Settings{}, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to read settings file %q", path), err)
	}

	// Strip comments and trailing commas, then parse as regular JSON.
	cleanJSON := jsonc.ToJSON(raw)
	if err := json.Unmarshal(cleanJSON, &settings); err != nil {
		return Settings{}, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("invalid settings file %q", path), err)
	}

	// Unmarshal may have blanked fields the file set to empty values;
	// re-apply defaults so downstream code never sees zero values.
	settings.ProjectDir = projectDir
	settings.applyDefaults()

	if err := settings.Validate(); err != nil {
		return Settings{}, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("invalid settings file %q", path), err)
	}

	return settings, nil
}

// applyDefaults fills zero-valued fields with their defaults.
func (s *Settings) applyDefaults() {
	if s.ComposeFile == "" {
		s.ComposeFile = DefaultComposeFile
	}
	if s.EnvFile == "" {
		s.EnvFile = DefaultEnvFile
	}
	if s.Service == "" {
		s.Service = DefaultService
	}
	if s.TailLines <= 0 {
		s.TailLines = DefaultTailLines
	}
	if s.LogsDir == "" {
		s.LogsDir = DefaultLogsDir
	}
	if s.BackupDir == "" {
		s.BackupDir = DefaultBackupDir
	}
}

// Validate checks field values that defaults cannot repair.
func (s *Settings) Validate() error {
	if err := model.ValidateServiceName(s.Service); err != nil {
		return fmt.Errorf("service: %w", err)
	}
	if s.TailLines < 1 {
		return fmt.Errorf("tailLines must be positive, got %d", s.TailLines)
	}
	return nil
}

// ComposePath returns the absolute path of the compose file.
func (s Settings) ComposePath() string {
	return filepath.Join(s.ProjectDir, s.ComposeFile)
}

// EnvPath returns the absolute path of the env file.
func (s Settings) EnvPath() string {
	return filepath.Join(s.ProjectDir, s.EnvFile)
}

// LogsPath returns the absolute path of the logs directory.
func (s Settings) LogsPath() string {
	return filepath.Join(s.ProjectDir, s.LogsDir)
}

// BackupPath returns the absolute path of the backup directory.
func (s Settings) BackupPath() string {
	return filepath.Join(s.ProjectDir, s.BackupDir)
}
