package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/flagx"
)

// Duration accepts "30s"-style strings or integer nanoseconds in JSON.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
	return nil
}

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields let absent keys keep earlier values.
type JsonConfig struct {
	Backend        *string   `json:"backend"`
	BackendURL     *string   `json:"backend_url"`
	AnonKey        *string   `json:"anon_key"`
	DatabaseDSN    *string   `json:"database_dsn"`
	JWTSecret      *string   `json:"jwt_secret"`
	SessionTTL     *Duration `json:"session_ttl"`
	S3Region       *string   `json:"s3_region"`
	S3BaseEndpoint *string   `json:"s3_base_endpoint"`
	S3AccessKey    *string   `json:"s3_access_key"`
	S3SecretKey    *string   `json:"s3_secret_key"`
	PublicBaseURL  *string   `json:"public_base_url"`
	NotesTable     *string   `json:"notes_table"`
	MediaBucket    *string   `json:"media_bucket"`
	SessionDBPath  *string   `json:"session_db_path"`
	HTTPTimeout    *Duration `json:"http_timeout"`
	LogLevel       *string   `json:"log_level"`
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setDuration(dst *time.Duration, src *Duration) {
	if src != nil {
		*dst = src.Duration
	}
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFile()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.Backend, jc.Backend)
	setString(&cfg.BackendURL, jc.BackendURL)
	setString(&cfg.AnonKey, jc.AnonKey)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.JWTSecret, jc.JWTSecret)
	setDuration(&cfg.SessionTTL, jc.SessionTTL)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.PublicBaseURL, jc.PublicBaseURL)
	setString(&cfg.NotesTable, jc.NotesTable)
	setString(&cfg.MediaBucket, jc.MediaBucket)
	setString(&cfg.SessionDBPath, jc.SessionDBPath)
	setDuration(&cfg.HTTPTimeout, jc.HTTPTimeout)
	setString(&cfg.LogLevel, jc.LogLevel)
}
