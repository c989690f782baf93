package app

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/gophnotes/internal/client/backend"
	"github.com/dmitrijs2005/gophnotes/internal/client/backend/direct"
	"github.com/dmitrijs2005/gophnotes/internal/client/config"
	"github.com/dmitrijs2005/gophnotes/internal/client/session"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restConfig(url string) *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.BackendURL = url
	cfg.AnonKey = "anon"
	cfg.SessionDBPath = ""
	return cfg
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()

	_, err := New(context.Background(), cfg, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config:")
}

func TestRun_RestBackendStartsSignedOut(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	var out, logs bytes.Buffer
	a, err := New(context.Background(), restConfig(srv.URL), strings.NewReader("help\nexit\n"), &out, &logs)
	require.NoError(t, err)

	a.Run(context.Background())

	assert.Contains(t, out.String(), "Welcome to GophNotes")
	assert.Contains(t, out.String(), "Sign in with 'signin'")
	assert.Contains(t, logs.String(), "backend selected")
	// no stored session, so nothing was asked of the backend
	assert.Zero(t, hits.Load())
}

func TestNew_SQLiteSessionStore(t *testing.T) {
	cfg := restConfig("http://127.0.0.1:1")
	cfg.SessionDBPath = filepath.Join(t.TempDir(), "session.db")

	a, err := New(context.Background(), cfg, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Len(t, a.closers, 2)
	require.NoError(t, a.Close())

	_, err = os.Stat(cfg.SessionDBPath)
	require.NoError(t, err)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestNew_DirectBackendConfig(t *testing.T) {
	orig := openDirect
	t.Cleanup(func() { openDirect = orig })

	closed := false
	var got direct.Config
	openDirect = func(_ context.Context, c direct.Config, _ session.Store, _ logging.Logger) (*backend.Client, error) {
		got = c
		return backend.NewClient(nil, nil, nil, closerFunc(func() error { closed = true; return nil })), nil
	}

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.Backend = config.BackendDirect
	cfg.DatabaseDSN = "postgres://localhost/notes"
	cfg.JWTSecret = "s3cret"
	cfg.S3BaseEndpoint = "http://minio:9000"
	cfg.SessionDBPath = ""

	a, err := New(context.Background(), cfg, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, []byte("s3cret"), got.JWTSecret)
	assert.Equal(t, "notes-media", got.Bucket)
	assert.Equal(t, "http://minio:9000", got.S3BaseEndpoint)
	assert.Equal(t, cfg.SessionTTL, got.SessionTTL)

	require.NoError(t, a.Close())
	assert.True(t, closed)
}

func TestNew_DirectBackendFailure(t *testing.T) {
	orig := openDirect
	t.Cleanup(func() { openDirect = orig })
	openDirect = func(context.Context, direct.Config, session.Store, logging.Logger) (*backend.Client, error) {
		return nil, errors.New("dial tcp: connection refused")
	}

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.Backend = config.BackendDirect
	cfg.DatabaseDSN = "postgres://localhost/notes"
	cfg.JWTSecret = "s3cret"
	cfg.SessionDBPath = filepath.Join(t.TempDir(), "session.db")

	_, err := New(context.Background(), cfg, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	require.ErrorContains(t, err, "connection refused")
}

func TestTerminalWidth(t *testing.T) {
	orig := terminalSize
	t.Cleanup(func() { terminalSize = orig })

	terminalSize = func(int) (int, int, error) { return 120, 40, nil }
	assert.Equal(t, 120, terminalWidth())

	terminalSize = func(int) (int, int, error) { return 0, 0, errors.New("not a terminal") }
	assert.Equal(t, defaultWidth, terminalWidth())
}
