package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings are the tool's own options, read from settings.yaml
type Settings struct {
	LogLevel  string `yaml:"log_level"`
	PricingDB string `yaml:"pricing_db"` // empty means pricing.db next to the state file
	Backups   int    `yaml:"backups"`    // backups kept per state file
}

// Defaults returns the settings used when no file exists
func Defaults() Settings {
	return Settings{
		LogLevel: "warn",
		Backups:  3,
	}
}

// Dir returns the tool's configuration directory, honoring XDG_CONFIG_HOME
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "aiswarm"), nil
}

// LoadSettings reads the settings file and applies environment overrides.
// A missing file yields the defaults.
func LoadSettings(path string) (Settings, error) {
	s := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applySettingsEnv(&s)
			return s, nil
		}
		return s, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse settings: %w", err)
	}

	applySettingsDefaults(&s)
	applySettingsEnv(&s)
	return s, nil
}

func applySettingsDefaults(s *Settings) {
	d := Defaults()
	if s.LogLevel == "" {
		s.LogLevel = d.LogLevel
	}
	if s.Backups <= 0 {
		s.Backups = d.Backups
	}
}

// applySettingsEnv reads AISWARM_* environment variables
func applySettingsEnv(s *Settings) {
	if v := os.Getenv("AISWARM_LOG_LEVEL"); v != "" {
		s.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("AISWARM_PRICING_DB"); v != "" {
		s.PricingDB = v
	}
}

// PricingDBPath resolves the pricing database location inside dir
func (s Settings) PricingDBPath(dir string) string {
	if s.PricingDB != "" {
		return s.PricingDB
	}
	return filepath.Join(dir, "pricing.db")
}
