package direct

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrEmailTaken is returned by Create for an already registered e-mail.
var ErrEmailTaken = errors.New("email already registered")

const uniqueViolation = "23505"

type user struct {
	ID       string
	Email    string
	Salt     []byte
	Verifier []byte
}

type UserRepository struct {
	db dbx.DBTX
}

func NewUserRepository(db dbx.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, email string, salt, verifier []byte) (string, error) {
	id := uuid.NewString()

	query :=
		`INSERT INTO users (id, email, salt, verifier)
		 VALUES ($1, $2, $3, $4)`

	if _, err := r.db.ExecContext(ctx, query, id, email, salt, verifier); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user, error) {
	query :=
		`SELECT id, email, salt, verifier FROM users
		 WHERE email = $1`

	u := &user{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Email, &u.Salt, &u.Verifier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}
