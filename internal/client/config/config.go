package config

import (
	"fmt"
	"time"
)

const (
	BackendREST   = "rest"
	BackendDirect = "direct"
)

// Config holds runtime settings for the notes client.
type Config struct {
	Backend string

	// hosted backend
	BackendURL string
	AnonKey    string

	// self-hosted backend
	DatabaseDSN    string
	JWTSecret      string
	SessionTTL     time.Duration
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
	PublicBaseURL  string

	NotesTable    string
	MediaBucket   string
	SessionDBPath string
	HTTPTimeout   time.Duration
	LogLevel      string
}

func (c *Config) LoadDefaults() {
	c.Backend = BackendREST
	c.SessionTTL = time.Hour
	c.S3Region = "us-east-1"
	c.NotesTable = "notes"
	c.MediaBucket = "notes-media"
	c.SessionDBPath = "session.db"
	c.HTTPTimeout = 30 * time.Second
	c.LogLevel = "info"
}

// Validate checks that the settings required by the selected backend are set.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendREST:
		if c.BackendURL == "" || c.AnonKey == "" {
			return fmt.Errorf("rest backend needs a base URL and an anon key")
		}
	case BackendDirect:
		if c.DatabaseDSN == "" || c.JWTSecret == "" {
			return fmt.Errorf("direct backend needs a database DSN and a JWT secret")
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.NotesTable == "" || c.MediaBucket == "" {
		return fmt.Errorf("notes table and media bucket must be named")
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
