package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/flagx"
	"github.com/joho/godotenv"
)

// envBindings maps variable names to the string fields they set.
func envBindings(cfg *Config) map[string]*string {
	return map[string]*string{
		"NOTES_BACKEND":         &cfg.Backend,
		"NOTES_BACKEND_URL":     &cfg.BackendURL,
		"NOTES_ANON_KEY":        &cfg.AnonKey,
		"NOTES_DATABASE_DSN":    &cfg.DatabaseDSN,
		"NOTES_JWT_SECRET":      &cfg.JWTSecret,
		"NOTES_S3_REGION":       &cfg.S3Region,
		"NOTES_S3_ENDPOINT":     &cfg.S3BaseEndpoint,
		"NOTES_S3_ACCESS_KEY":   &cfg.S3AccessKey,
		"NOTES_S3_SECRET_KEY":   &cfg.S3SecretKey,
		"NOTES_PUBLIC_BASE_URL": &cfg.PublicBaseURL,
		"NOTES_TABLE":           &cfg.NotesTable,
		"NOTES_MEDIA_BUCKET":    &cfg.MediaBucket,
		"NOTES_SESSION_DB":      &cfg.SessionDBPath,
		"NOTES_LOG_LEVEL":       &cfg.LogLevel,
	}
}

// parseEnv overlays Config with NOTES_* variables. When -env names a dotenv
// file its values are used for variables missing from the process
// environment. Panics on unreadable files or bad durations.
func parseEnv(cfg *Config) {
	fileVals := map[string]string{}
	if path := flagx.EnvFile(); path != "" {
		vals, err := godotenv.Read(path)
		if err != nil {
			panic(err)
		}
		fileVals = vals
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVals[key]
		return v, ok
	}

	for key, field := range envBindings(cfg) {
		if v, ok := lookup(key); ok {
			*field = v
		}
	}

	durations := map[string]*time.Duration{
		"NOTES_SESSION_TTL":  &cfg.SessionTTL,
		"NOTES_HTTP_TIMEOUT": &cfg.HTTPTimeout,
	}
	for key, field := range durations {
		if v, ok := lookup(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				panic(err)
			}
			*field = d
		}
	}
}
