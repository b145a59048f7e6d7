package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	t.Setenv("LINKA_CONFIG", filepath.Join(t.TempDir(), "config.json"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defaults := DefaultConfig()
	if cfg.Backend.BaseURL != defaults.Backend.BaseURL {
		t.Errorf("BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Chat.PollInterval != defaults.Chat.PollInterval {
		t.Errorf("PollInterval = %v", cfg.Chat.PollInterval)
	}
	if cfg.Intake.MinStatementLength != defaults.Intake.MinStatementLength {
		t.Errorf("MinStatementLength = %d", cfg.Intake.MinStatementLength)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"backend": {"baseUrl": "https://api.example.com", "aiBaseUrl": "https://ai.example.com"},
		"chat": {"pollInterval": 2000000000, "matchLimit": 3},
		"intake": {"minStatementLength": 15, "fixedFields": true}
	}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("LINKA_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend.BaseURL != "https://api.example.com" {
		t.Errorf("BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Chat.PollInterval != 2*time.Second {
		t.Errorf("PollInterval = %v", cfg.Chat.PollInterval)
	}
	if cfg.Chat.MatchLimit != 3 {
		t.Errorf("MatchLimit = %d", cfg.Chat.MatchLimit)
	}
	if cfg.Intake.MinStatementLength != 15 || !cfg.Intake.FixedFields {
		t.Errorf("Intake = %+v", cfg.Intake)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"backend": {"baseUrl": "https://file.example.com"}}`), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("LINKA_CONFIG", path)
	t.Setenv("LINKA_BACKEND_BASE_URL", "https://env.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend.BaseURL != "https://env.example.com" {
		t.Errorf("BaseURL = %q, want env override", cfg.Backend.BaseURL)
	}
}

func TestLegacyEnvNames(t *testing.T) {
	t.Setenv("LINKA_CONFIG", filepath.Join(t.TempDir(), "config.json"))
	t.Setenv("LINKA_API_BASE_URL", "https://legacy.example.com")
	t.Setenv("LINKA_API_AI_BASE_URL", "https://legacy-ai.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend.BaseURL != "https://legacy.example.com" {
		t.Errorf("BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.AIBaseURL != "https://legacy-ai.example.com" {
		t.Errorf("AIBaseURL = %q", cfg.Backend.AIBaseURL)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	t.Setenv("LINKA_CONFIG", path)

	cfg := DefaultConfig()
	cfg.Backend.BaseURL = "https://saved.example.com"
	cfg.Chat.MatchLimit = 7
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Backend.BaseURL != "https://saved.example.com" {
		t.Errorf("BaseURL = %q", loaded.Backend.BaseURL)
	}
	if loaded.Chat.MatchLimit != 7 {
		t.Errorf("MatchLimit = %d", loaded.Chat.MatchLimit)
	}
}
