// Package app wires the notes client together: it picks the backend
// implementation named by the configuration, opens the session store and
// hands the services to the terminal front end.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/gophnotes/internal/client/backend"
	"github.com/dmitrijs2005/gophnotes/internal/client/backend/direct"
	"github.com/dmitrijs2005/gophnotes/internal/client/backend/rest"
	"github.com/dmitrijs2005/gophnotes/internal/client/cli"
	"github.com/dmitrijs2005/gophnotes/internal/client/config"
	"github.com/dmitrijs2005/gophnotes/internal/client/media"
	"github.com/dmitrijs2005/gophnotes/internal/client/screens"
	"github.com/dmitrijs2005/gophnotes/internal/client/services"
	"github.com/dmitrijs2005/gophnotes/internal/client/session"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"golang.org/x/term"
)

const defaultWidth = 80

// seams for tests
var (
	openDirect   = direct.Open
	terminalSize = term.GetSize
)

type App struct {
	ui      *cli.App
	logger  logging.Logger
	closers []io.Closer
}

// New validates cfg and builds the client. Logs go to logw, the terminal
// conversation to in and out.
func New(ctx context.Context, cfg *config.Config, in io.Reader, out, logw io.Writer) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger := logging.New(cfg.LogLevel, logw)
	a := &App{logger: logger}

	store, err := a.openStore(ctx, cfg.SessionDBPath)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	client, err := openBackend(ctx, cfg, store, httpClient, logger)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.closers = append(a.closers, client)
	logger.Info(ctx, "backend selected", "kind", cfg.Backend)

	ingester := media.NewIngester(client.Media, httpClient, logger)
	ui, err := cli.NewApp(cli.Deps{
		Auth:   services.NewAuthService(client.Auth, logger),
		Notes:  services.NewNoteService(client.Notes, client.Auth, ingester, logger),
		Picker: media.NewPicker(),
		Images: screens.HTTPImageProber{Client: httpClient},
		HTTP:   httpClient,
		Logger: logger,
		In:     in,
		Out:    out,
		Width:  terminalWidth(),
	})
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.ui = ui
	return a, nil
}

// openStore keeps the session in SQLite, or in memory when no path is set.
func (a *App) openStore(ctx context.Context, path string) (session.Store, error) {
	if path == "" {
		a.logger.Info(ctx, "session kept in memory only")
		return session.NewMemoryStore(), nil
	}
	store, db, err := session.OpenSQLite(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("session store: %w", err)
	}
	a.closers = append(a.closers, db)
	return store, nil
}

func openBackend(ctx context.Context, cfg *config.Config, store session.Store, httpClient *http.Client, logger logging.Logger) (*backend.Client, error) {
	switch cfg.Backend {
	case config.BackendDirect:
		return openDirect(ctx, direct.Config{
			DatabaseDSN:    cfg.DatabaseDSN,
			JWTSecret:      []byte(cfg.JWTSecret),
			SessionTTL:     cfg.SessionTTL,
			Bucket:         cfg.MediaBucket,
			S3Region:       cfg.S3Region,
			S3BaseEndpoint: cfg.S3BaseEndpoint,
			S3AccessKey:    cfg.S3AccessKey,
			S3SecretKey:    cfg.S3SecretKey,
			PublicBaseURL:  cfg.PublicBaseURL,
		}, store, logger)
	default:
		return rest.New(rest.Config{
			BaseURL:    cfg.BackendURL,
			AnonKey:    cfg.AnonKey,
			Table:      cfg.NotesTable,
			Bucket:     cfg.MediaBucket,
			HTTPClient: httpClient,
		}, store, logger), nil
	}
}

func terminalWidth() int {
	w, _, err := terminalSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// Run serves the terminal session and releases everything on return.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.Close(); err != nil {
			a.logger.Warn(ctx, "shutdown", "error", err)
		}
	}()
	a.ui.Run(ctx)
}

// Close releases the backend and the session store, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
