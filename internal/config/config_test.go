package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("PORT")
	os.Unsetenv("ENV")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if !cfg.IsDev() {
		t.Errorf("expected default environment to be development, got %s", cfg.Env)
	}
	if cfg.SessionFile != ".swasthtrack_session.json" {
		t.Errorf("expected default session file, got %s", cfg.SessionFile)
	}
	if !cfg.SeedDemoData {
		t.Error("expected demo data seeding enabled by default")
	}
	if cfg.SessionDuration() != 720*time.Minute {
		t.Errorf("expected 720 minute sessions, got %v", cfg.SessionDuration())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	os.Setenv("PORT", "9100")
	os.Setenv("MEET_BASE_URL", "https://meet.example.com")
	defer os.Unsetenv("PORT")
	defer os.Unsetenv("MEET_BASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9100" {
		t.Errorf("expected port 9100, got %s", cfg.Port)
	}
	if cfg.MeetBaseURL != "https://meet.example.com" {
		t.Errorf("expected meet base url override, got %s", cfg.MeetBaseURL)
	}
}

func TestValidate_RequiresSecretOutsideDev(t *testing.T) {
	cfg := &Config{Env: "production", SessionTTL: 60}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when SESSION_SECRET is missing in production")
	}

	cfg.SessionSecret = "s3cr3t"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_RejectsNonPositiveTTL(t *testing.T) {
	cfg := &Config{Env: "development", SessionTTL: 0}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero session TTL")
	}
}
