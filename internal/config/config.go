package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port          string   `mapstructure:"PORT"`
	Env           string   `mapstructure:"ENV"`
	SessionSecret string   `mapstructure:"SESSION_SECRET"`
	SessionFile   string   `mapstructure:"SESSION_FILE"`
	SessionTTL    int      `mapstructure:"SESSION_TTL_MINUTES"`
	CORSOrigins   []string `mapstructure:"CORS_ORIGINS"`
	MeetBaseURL   string   `mapstructure:"MEET_BASE_URL"`
	SeedDemoData  bool     `mapstructure:"SEED_DEMO_DATA"`
	ReportDir     string   `mapstructure:"REPORT_DIR"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("SESSION_FILE", ".swasthtrack_session.json")
	v.SetDefault("SESSION_TTL_MINUTES", 720)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("MEET_BASE_URL", "https://meet.swasthtrack.com")
	v.SetDefault("SEED_DEMO_DATA", true)
	v.SetDefault("REPORT_DIR", ".")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("SESSION_SECRET")
	v.BindEnv("SESSION_FILE")
	v.BindEnv("SESSION_TTL_MINUTES")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("MEET_BASE_URL")
	v.BindEnv("SEED_DEMO_DATA")
	v.BindEnv("REPORT_DIR")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.IsDev() {
		log.Println("WARNING: ============================================================")
		log.Println("WARNING: Server is running in DEVELOPMENT mode (ENV=development).")
		log.Println("WARNING: The built-in demo credential list is active.")
		log.Println("WARNING: Do NOT use this configuration in production.")
		log.Println("WARNING: ============================================================")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// SessionDuration returns the configured session token lifetime.
func (c *Config) SessionDuration() time.Duration {
	return time.Duration(c.SessionTTL) * time.Minute
}

// Validate checks that the configuration is safe to run. Outside development
// a SESSION_SECRET must be set so session tokens are not signed with the
// built-in development key.
func (c *Config) Validate() error {
	if !c.IsDev() && c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required when ENV=%q", c.Env)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive, got %d", c.SessionTTL)
	}
	return nil
}
