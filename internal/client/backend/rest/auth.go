package rest

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

type AuthAPI struct {
	c *conn
}

type tokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
	ExpiresAt    int64        `json:"expires_at"`
	User         *models.User `json:"user"`
}

// accessClaims are the parts of the hosted access token the client reads.
// The token is not verified here; that is the backend's job.
type accessClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

func (c *conn) toSession(tr tokenResponse) *models.Session {
	s := &models.Session{AccessToken: tr.AccessToken, RefreshToken: tr.RefreshToken}

	var claims accessClaims
	_, _, perr := jwt.NewParser().ParseUnverified(tr.AccessToken, &claims)

	switch {
	case tr.ExpiresAt > 0:
		s.ExpiresAt = time.Unix(tr.ExpiresAt, 0).UTC()
	case tr.ExpiresIn > 0:
		s.ExpiresAt = c.now().Add(time.Duration(tr.ExpiresIn) * time.Second).UTC()
	case perr == nil && claims.ExpiresAt != nil:
		s.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}

	if tr.User != nil {
		s.User = *tr.User
	} else if perr == nil {
		s.User = models.User{ID: claims.Subject, Email: claims.Email}
	}
	return s
}

func (a *AuthAPI) passwordGrant(ctx context.Context, path string, query url.Values, email string, password []byte) (*tokenResponse, error) {
	r, err := jsonRequest(http.MethodPost, path, map[string]string{"email": email, "password": string(password)})
	if err != nil {
		return nil, err
	}
	r.query = query

	var tr tokenResponse
	if err := a.c.do(ctx, r, &tr); err != nil {
		return nil, err
	}
	return &tr, nil
}

func (a *AuthAPI) SignIn(ctx context.Context, email string, password []byte) (*models.Session, error) {
	tr, err := a.passwordGrant(ctx, "/auth/v1/token", url.Values{"grant_type": {"password"}}, email, password)
	if err != nil {
		return nil, err
	}
	s := a.c.toSession(*tr)
	if err := a.c.store.Save(ctx, s); err != nil {
		return nil, err
	}
	a.c.logger.Info(ctx, "signed in", "user", s.User.ID)
	return s, nil
}

// SignUp registers a new account. When the backend requires e-mail
// confirmation no session is returned and (nil, nil) comes back.
func (a *AuthAPI) SignUp(ctx context.Context, email string, password []byte) (*models.Session, error) {
	tr, err := a.passwordGrant(ctx, "/auth/v1/signup", nil, email, password)
	if err != nil {
		return nil, err
	}
	if tr.AccessToken == "" {
		a.c.logger.Info(ctx, "sign-up pending confirmation", "email", email)
		return nil, nil
	}
	s := a.c.toSession(*tr)
	if err := a.c.store.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// CurrentSession returns the stored session, refreshing it when expired.
// A session whose refresh is rejected is dropped and reported as absent.
func (a *AuthAPI) CurrentSession(ctx context.Context) (*models.Session, error) {
	s, err := a.c.activeSession(ctx)
	switch {
	case errors.Is(err, common.ErrNoSession), errors.Is(err, common.ErrUnauthorized):
		return nil, nil
	case err != nil:
		return nil, err
	}
	return s, nil
}

func (a *AuthAPI) CurrentUser(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := a.c.do(ctx, request{method: http.MethodGet, path: "/auth/v1/user", authed: true}, &u); err != nil {
		return nil, err
	}
	if u.ID == "" {
		return nil, common.ErrNoSession
	}
	return &u, nil
}

// SignOut revokes the session remotely and forgets it locally. A session the
// backend already considers invalid is forgotten as well.
func (a *AuthAPI) SignOut(ctx context.Context) error {
	err := a.c.do(ctx, request{method: http.MethodPost, path: "/auth/v1/logout", authed: true}, nil)
	if err != nil && !errors.Is(err, common.ErrUnauthorized) && !errors.Is(err, common.ErrNoSession) {
		return err
	}
	return a.c.store.Clear(ctx)
}
