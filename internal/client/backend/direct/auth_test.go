package direct

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophnotes/internal/client/backend"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/session"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/cryptox"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("jwt-secret")

func newTestAuth(t *testing.T) (*Auth, sqlmock.Sqlmock, *session.MemoryStore) {
	t.Helper()
	db, mock := newMockDB(t)
	store := session.NewMemoryStore()
	return NewAuth(NewUserRepository(db), store, testSecret, time.Hour, nil), mock, store
}

func expectUser(mock sqlmock.Sqlmock, email string, password []byte) {
	salt, ver := cryptox.NewVerifier(password)
	mock.ExpectQuery(qUserByMail).WithArgs(email).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "salt", "verifier"}).
			AddRow("u1", email, salt, ver))
}

func TestAuth_SignIn(t *testing.T) {
	a, mock, store := newTestAuth(t)
	expectUser(mock, "a@b.c", []byte("secret"))

	s, err := a.SignIn(context.Background(), "  A@b.c ", []byte("secret"))
	require.NoError(t, err)
	require.Equal(t, models.User{ID: "u1", Email: "a@b.c"}, s.User)

	saved, _ := store.Load(context.Background())
	require.Equal(t, s.AccessToken, saved.AccessToken)

	u, err := a.CurrentUser(context.Background())
	require.NoError(t, err)
	require.Equal(t, "u1", u.ID)

	id, err := a.userID(context.Background())
	require.NoError(t, err)
	require.Equal(t, "u1", id)
}

func TestAuth_SignIn_WrongPassword(t *testing.T) {
	a, mock, store := newTestAuth(t)
	expectUser(mock, "a@b.c", []byte("secret"))

	_, err := a.SignIn(context.Background(), "a@b.c", []byte("nope"))
	var be *backend.Error
	require.ErrorAs(t, err, &be)
	require.Equal(t, "Invalid login credentials", be.Message)

	s, _ := store.Load(context.Background())
	require.Nil(t, s)
}

func TestAuth_SignIn_UnknownUser(t *testing.T) {
	a, mock, _ := newTestAuth(t)
	mock.ExpectQuery(qUserByMail).WithArgs("x@b.c").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "salt", "verifier"}))

	_, err := a.SignIn(context.Background(), "x@b.c", []byte("secret"))
	require.Equal(t, "Invalid login credentials", err.Error())
}

func TestAuth_SignUp(t *testing.T) {
	t.Run("creates and signs in", func(t *testing.T) {
		a, mock, store := newTestAuth(t)
		mock.ExpectExec(qInsertUser).
			WithArgs(sqlmock.AnyArg(), "new@b.c", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		s, err := a.SignUp(context.Background(), "new@b.c", []byte("secret"))
		require.NoError(t, err)
		require.NotNil(t, s)
		require.Equal(t, "new@b.c", s.User.Email)
		saved, _ := store.Load(context.Background())
		require.NotNil(t, saved)
	})

	t.Run("duplicate", func(t *testing.T) {
		a, mock, _ := newTestAuth(t)
		mock.ExpectExec(qInsertUser).WillReturnError(&pgconn.PgError{Code: "23505"})

		_, err := a.SignUp(context.Background(), "a@b.c", []byte("secret"))
		require.Equal(t, "User already registered", err.Error())
	})

	t.Run("short password never hits the db", func(t *testing.T) {
		a, mock, _ := newTestAuth(t)
		_, err := a.SignUp(context.Background(), "a@b.c", []byte("123"))
		require.ErrorContains(t, err, "at least 6")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty email", func(t *testing.T) {
		a, _, _ := newTestAuth(t)
		_, err := a.SignUp(context.Background(), "  ", []byte("secret"))
		require.Equal(t, "Email is required", err.Error())
	})
}

func TestAuth_CurrentSession(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		a, _, _ := newTestAuth(t)
		s, err := a.CurrentSession(context.Background())
		require.NoError(t, err)
		require.Nil(t, s)
	})

	t.Run("valid", func(t *testing.T) {
		a, _, _ := newTestAuth(t)
		_, err := a.issue(context.Background(), "u1", "a@b.c")
		require.NoError(t, err)
		s, err := a.CurrentSession(context.Background())
		require.NoError(t, err)
		require.Equal(t, "u1", s.User.ID)
	})

	t.Run("expired is dropped", func(t *testing.T) {
		a, _, store := newTestAuth(t)
		_, err := a.issue(context.Background(), "u1", "a@b.c")
		require.NoError(t, err)

		a.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		s, err := a.CurrentSession(context.Background())
		require.NoError(t, err)
		require.Nil(t, s)
		saved, _ := store.Load(context.Background())
		require.Nil(t, saved)

		_, err = a.CurrentUser(context.Background())
		require.ErrorIs(t, err, common.ErrNoSession)
	})

	t.Run("signed with another secret", func(t *testing.T) {
		a, _, store := newTestAuth(t)
		tok, exp, err := GenerateToken("u1", "a@b.c", []byte("other"), time.Now(), time.Hour)
		require.NoError(t, err)
		require.NoError(t, store.Save(context.Background(), &models.Session{AccessToken: tok, ExpiresAt: exp}))

		_, err = a.CurrentUser(context.Background())
		require.ErrorIs(t, err, common.ErrUnauthorized)
	})
}

func TestAuth_SignOut(t *testing.T) {
	a, _, store := newTestAuth(t)
	_, err := a.issue(context.Background(), "u1", "a@b.c")
	require.NoError(t, err)

	require.NoError(t, a.SignOut(context.Background()))
	s, _ := store.Load(context.Background())
	require.Nil(t, s)
}
