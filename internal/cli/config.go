package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvTimesheet overrides the timesheet database location.
const EnvTimesheet = "LOGH_TIMESHEET"

// defaultTimesheetName is the database filename under the home directory.
const defaultTimesheetName = "timesheet.db"

// Config holds the optional file-based configuration.
// All fields are optional; flags and the environment take precedence.
type Config struct {
	// Timesheet is the path to the timesheet database.
	Timesheet string `yaml:"timesheet"`

	// ExportFormat is the default export format (csv or json).
	ExportFormat string `yaml:"export_format"`
}

// ConfigPath returns the location of the config file:
// $XDG_CONFIG_HOME/logh/config.yaml, falling back to ~/.config/logh/config.yaml.
func ConfigPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "logh", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "logh", "config.yaml"), nil
}

// LoadConfig reads the config file at path.
// A missing file is not an error; it yields a zero Config.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ResolveTimesheetPath picks the timesheet database location.
// Precedence: --db flag, LOGH_TIMESHEET env var, config file, then
// timesheet.db in the user home directory.
func ResolveTimesheetPath(flagValue string, cfg Config) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(EnvTimesheet); env != "" {
		return env, nil
	}
	if cfg.Timesheet != "" {
		return cfg.Timesheet, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, defaultTimesheetName), nil
}
