// Package config provides configuration types and loading for linka.
package config

import "time"

// Config is the root configuration struct.
// Top-level groups: Backend, Chat, Intake.
type Config struct {
	Backend BackendConfig `json:"backend"`
	Chat    ChatConfig    `json:"chat"`
	Intake  IntakeConfig  `json:"intake"`
}

// ---------------------------------------------------------------------------
// Backend – REST endpoints
// ---------------------------------------------------------------------------

// BackendConfig holds the base URLs of the two backend families.
// The general backend serves auth, users, groups and the lawyer directory;
// the AI backend serves case matching and consultation endpoints.
type BackendConfig struct {
	BaseURL   string        `json:"baseUrl" envconfig:"BASE_URL"`
	AIBaseURL string        `json:"aiBaseUrl" envconfig:"AI_BASE_URL"`
	Timeout   time.Duration `json:"timeout" envconfig:"TIMEOUT"`
}

// ---------------------------------------------------------------------------
// Chat – messaging sessions
// ---------------------------------------------------------------------------

// ChatConfig contains group chat and match retrieval settings.
type ChatConfig struct {
	PollInterval time.Duration `json:"pollInterval" envconfig:"POLL_INTERVAL"`
	MatchLimit   int           `json:"matchLimit" envconfig:"MATCH_LIMIT"`
}

// ---------------------------------------------------------------------------
// Intake – case intake wizard
// ---------------------------------------------------------------------------

// IntakeConfig contains case intake wizard settings.
//
// MinStatementLength is a named knob because deployed clients disagree on the
// enforced minimum (15 vs 20 characters). FixedFields selects the variant of
// the scammer-info step that collects three fixed named fields instead of a
// free-form list.
type IntakeConfig struct {
	MinStatementLength int  `json:"minStatementLength" envconfig:"MIN_STATEMENT_LENGTH"`
	FixedFields        bool `json:"fixedFields" envconfig:"FIXED_FIELDS"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:   "http://localhost:8000",
			AIBaseURL: "http://localhost:8001",
			Timeout:   30 * time.Second,
		},
		Chat: ChatConfig{
			PollInterval: 5 * time.Second,
			MatchLimit:   5,
		},
		Intake: IntakeConfig{
			MinStatementLength: 20,
		},
	}
}
