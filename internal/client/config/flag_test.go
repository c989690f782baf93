package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "direct backend",
			args: []string{"cmd", "-c", "ignored.json", "-b", "direct", "-d", "postgres://x", "-s", "secret", "-t", "10", "-p", ""},
			expected: &Config{
				Backend: "direct", DatabaseDSN: "postgres://x", JWTSecret: "secret", SessionTTL: 10 * time.Minute,
			},
		},
		{
			name:     "rest backend",
			args:     []string{"cmd", "-u", "https://x.example", "-k", "anon", "-l", "warn"},
			expected: &Config{BackendURL: "https://x.example", AnonKey: "anon", LogLevel: "warn"},
		},
		{name: "bad ttl", args: []string{"cmd", "-t", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
