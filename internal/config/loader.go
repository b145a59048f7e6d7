package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const (
	// ConfigDir is the default config directory name.
	ConfigDir = ".linka"
	// ConfigFile is the default config file name.
	ConfigFile = "config.json"
	// StateFile is the default local state database file name.
	StateFile = "state.db"
)

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	if explicit := strings.TrimSpace(os.Getenv("LINKA_CONFIG")); explicit != "" {
		if strings.HasPrefix(explicit, "~") {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			return filepath.Join(home, explicit[1:]), nil
		}
		return explicit, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ConfigDir, ConfigFile), nil
}

// StatePath returns the path to the persisted client state database.
func StatePath() (string, error) {
	if explicit := strings.TrimSpace(os.Getenv("LINKA_STATE")); explicit != "" {
		return explicit, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ConfigDir, StateFile), nil
}

// Load loads the configuration from file and environment variables.
// Priority: environment > file > defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil // Use defaults if we can't find config path
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	// If file doesn't exist, continue with defaults

	// Override with environment variables for each group
	envconfig.Process("LINKA_BACKEND", &cfg.Backend)
	envconfig.Process("LINKA_CHAT", &cfg.Chat)
	envconfig.Process("LINKA_INTAKE", &cfg.Intake)

	// Legacy env var compatibility with the browser client's names.
	if cfg.Backend.BaseURL == DefaultConfig().Backend.BaseURL {
		if v := strings.TrimSpace(os.Getenv("LINKA_API_BASE_URL")); v != "" {
			cfg.Backend.BaseURL = v
		}
	}
	if cfg.Backend.AIBaseURL == DefaultConfig().Backend.AIBaseURL {
		if v := strings.TrimSpace(os.Getenv("LINKA_API_AI_BASE_URL")); v != "" {
			cfg.Backend.AIBaseURL = v
		}
	}

	if cfg.Chat.PollInterval <= 0 {
		cfg.Chat.PollInterval = DefaultConfig().Chat.PollInterval
	}
	if cfg.Chat.MatchLimit <= 0 {
		cfg.Chat.MatchLimit = DefaultConfig().Chat.MatchLimit
	}
	if cfg.Intake.MinStatementLength <= 0 {
		cfg.Intake.MinStatementLength = DefaultConfig().Intake.MinStatementLength
	}

	return cfg, nil
}

// Save writes the configuration to the config file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
