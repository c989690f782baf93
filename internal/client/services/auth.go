// Package services holds the client's application services: the note
// repository flow on top of the backend's notes table and media bucket, and
// the authentication flow. Screens talk to these, never to the backend.
package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/backend"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

// AuthService defines authentication operations for the screens.
//
// Contract:
//   - SignIn / SignUp: establish a session held by the backend client.
//     SignUp reports false when the account still awaits confirmation.
//   - SignOut: tear the session down.
//   - HasSession: the launch-time presence check.
type AuthService interface {
	SignIn(ctx context.Context, email string, password []byte) error
	SignUp(ctx context.Context, email string, password []byte) (bool, error)
	SignOut(ctx context.Context) error
	HasSession(ctx context.Context) (bool, error)
}

type credentials struct {
	Email    string `validate:"required,email"`
	Password []byte `validate:"required"`
}

type authService struct {
	auth   backend.Auth
	logger logging.Logger
}

func NewAuthService(auth backend.Auth, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &authService{auth: auth, logger: logger}
}

func checkCredentials(email string, password []byte) (string, error) {
	email = strings.TrimSpace(email)
	return email, common.Validate(credentials{Email: email, Password: password})
}

func (s *authService) SignIn(ctx context.Context, email string, password []byte) error {
	email, err := checkCredentials(email, password)
	if err != nil {
		return err
	}
	_, err = s.auth.SignIn(ctx, email, password)
	return err
}

func (s *authService) SignUp(ctx context.Context, email string, password []byte) (bool, error) {
	email, err := checkCredentials(email, password)
	if err != nil {
		return false, err
	}
	sess, err := s.auth.SignUp(ctx, email, password)
	if err != nil {
		return false, err
	}
	return sess != nil, nil
}

func (s *authService) SignOut(ctx context.Context) error {
	return s.auth.SignOut(ctx)
}

func (s *authService) HasSession(ctx context.Context) (bool, error) {
	sess, err := s.auth.CurrentSession(ctx)
	if err != nil {
		return false, err
	}
	return sess != nil, nil
}
