package direct

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/backend"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/session"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/cryptox"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

const (
	defaultSessionTTL = time.Hour
	minPasswordLen    = 6
)

var (
	errInvalidCredentials = &backend.Error{Status: http.StatusBadRequest, Message: "Invalid login credentials"}
	errAlreadyRegistered  = &backend.Error{Status: http.StatusUnprocessableEntity, Message: "User already registered"}
	errWeakPassword       = &backend.Error{Status: http.StatusUnprocessableEntity, Message: fmt.Sprintf("Password should be at least %d characters", minPasswordLen)}
	errMissingEmail       = &backend.Error{Status: http.StatusBadRequest, Message: "Email is required"}
)

type Auth struct {
	users  *UserRepository
	store  session.Store
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	logger logging.Logger
}

func NewAuth(users *UserRepository, store session.Store, secret []byte, ttl time.Duration, logger logging.Logger) *Auth {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Auth{users: users, store: store, secret: secret, ttl: ttl, now: time.Now, logger: logger}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *Auth) issue(ctx context.Context, userID, email string) (*models.Session, error) {
	token, exp, err := GenerateToken(userID, email, a.secret, a.now(), a.ttl)
	if err != nil {
		return nil, fmt.Errorf("token error: %w", err)
	}
	s := &models.Session{AccessToken: token, ExpiresAt: exp, User: models.User{ID: userID, Email: email}}
	if err := a.store.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (a *Auth) SignIn(ctx context.Context, email string, password []byte) (*models.Session, error) {
	email = normalizeEmail(email)

	u, err := a.users.GetByEmail(ctx, email)
	if errors.Is(err, common.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !cryptox.CheckPassword(password, u.Salt, u.Verifier) {
		return nil, errInvalidCredentials
	}

	s, err := a.issue(ctx, u.ID, u.Email)
	if err != nil {
		return nil, err
	}
	a.logger.Info(ctx, "signed in", "user", u.ID)
	return s, nil
}

// SignUp creates the account and signs it in; there is no confirmation step.
func (a *Auth) SignUp(ctx context.Context, email string, password []byte) (*models.Session, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, errMissingEmail
	}
	if len(password) < minPasswordLen {
		return nil, errWeakPassword
	}

	salt, verifier := cryptox.NewVerifier(password)
	id, err := a.users.Create(ctx, email, salt, verifier)
	if errors.Is(err, ErrEmailTaken) {
		return nil, errAlreadyRegistered
	}
	if err != nil {
		return nil, err
	}

	a.logger.Info(ctx, "user registered", "user", id)
	return a.issue(ctx, id, email)
}

// CurrentSession drops a stored session whose token no longer verifies.
func (a *Auth) CurrentSession(ctx context.Context) (*models.Session, error) {
	s, err := a.store.Load(ctx)
	if err != nil || s == nil {
		return nil, err
	}
	if _, err := ParseToken(s.AccessToken, a.secret, a.now()); err != nil {
		a.logger.Info(ctx, "stored session rejected", "error", err)
		if cerr := a.store.Clear(ctx); cerr != nil {
			return nil, cerr
		}
		return nil, nil
	}
	return s, nil
}

func (a *Auth) claims(ctx context.Context) (*Claims, error) {
	s, err := a.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, common.ErrNoSession
	}
	c, err := ParseToken(s.AccessToken, a.secret, a.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrUnauthorized, err)
	}
	return c, nil
}

func (a *Auth) CurrentUser(ctx context.Context) (*models.User, error) {
	c, err := a.claims(ctx)
	if err != nil {
		return nil, err
	}
	return &models.User{ID: c.UserID, Email: c.Email}, nil
}

// userID is the row-scoping identity for the notes table.
func (a *Auth) userID(ctx context.Context) (string, error) {
	c, err := a.claims(ctx)
	if err != nil {
		return "", err
	}
	return c.UserID, nil
}

// SignOut forgets the local session. Tokens are stateless so there is
// nothing to revoke remotely.
func (a *Auth) SignOut(ctx context.Context) error {
	return a.store.Clear(ctx)
}
