// Package direct implements the backend contract on a self-hosted stack:
// PostgreSQL for users and notes, an S3-compatible bucket for media and
// HS256 access tokens signed with a local secret.
//
// Rows are scoped to the user named in the current access token; the
// contract's callers never pass a user filter.
package direct

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/backend"
	"github.com/dmitrijs2005/gophnotes/internal/client/backend/direct/migrations"
	"github.com/dmitrijs2005/gophnotes/internal/client/session"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
	"github.com/dmitrijs2005/gophnotes/internal/logging"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type Config struct {
	DatabaseDSN string
	JWTSecret   []byte
	SessionTTL  time.Duration

	Bucket         string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
	PublicBaseURL  string
}

// seams for tests
var (
	openDB  = sql.Open
	migrate = dbx.Migrate
)

// Open connects to the database, applies migrations and builds the S3
// client. Closing the returned client closes the database.
func Open(ctx context.Context, cfg Config, store session.Store, logger logging.Logger) (*backend.Client, error) {
	if len(cfg.JWTSecret) == 0 {
		return nil, fmt.Errorf("direct backend: jwt secret is required")
	}
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.With("backend", "direct")

	db, err := openDB("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	if err := migrate(ctx, db, migrations.Migrations, "pgx"); err != nil {
		_ = db.Close()
		return nil, err
	}

	bucket, err := NewBucket(ctx, cfg)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("s3 init error: %w", err)
	}

	auth := NewAuth(NewUserRepository(db), store, cfg.JWTSecret, cfg.SessionTTL, logger)
	notes := NewNoteRepository(db, auth)

	logger.Info(ctx, "connected", "bucket", cfg.Bucket)
	return backend.NewClient(auth, notes, bucket, db), nil
}
