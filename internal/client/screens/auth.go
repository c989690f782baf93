package screens

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/gophnotes/internal/client/services"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

const MessageConfirmEmail = "Check your email to confirm your account, then sign in"

type AuthScreen struct {
	lt      *Lifetime
	auth    services.AuthService
	session SessionSwitch
	alerts  Alerter
	logger  logging.Logger

	mu    sync.Mutex
	state State[struct{}]
}

func NewAuthScreen(lt *Lifetime, auth services.AuthService, session SessionSwitch, alerts Alerter, logger logging.Logger) *AuthScreen {
	if logger == nil {
		logger = logging.Discard()
	}
	return &AuthScreen{lt: lt, auth: auth, session: session, alerts: alerts, logger: logger}
}

func (s *AuthScreen) State() State[struct{}] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *AuthScreen) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Busy() {
		return false
	}
	s.state = s.state.Begin(false)
	return true
}

func (s *AuthScreen) fail(err error) {
	s.logger.Warn(s.lt.Context(), "authentication failed", "error", err)

	s.mu.Lock()
	s.state = s.state.Fail(err)
	s.mu.Unlock()

	msg := err.Error()
	if errors.Is(err, common.ErrValidation) {
		msg = common.MessageFillLogin
	}
	s.alerts.Alert(common.TitleAuthError, msg)

	s.mu.Lock()
	s.state = s.state.Acknowledge()
	s.mu.Unlock()
}

func (s *AuthScreen) succeed() {
	s.mu.Lock()
	s.state = s.state.Succeed(struct{}{})
	s.mu.Unlock()
}

func (s *AuthScreen) SignIn(email string, password []byte) *Task {
	if !s.begin() {
		return doneTask()
	}
	return Launch(s.lt, "sign-in",
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.auth.SignIn(ctx, email, password)
		},
		func(_ struct{}, err error) {
			if err != nil {
				s.fail(err)
				return
			}
			s.succeed()
			s.session.SignedIn()
		})
}

// SignUp registers an account. When the backend wants the address confirmed
// first the user is told so and stays on the auth screen.
func (s *AuthScreen) SignUp(email string, password []byte) *Task {
	if !s.begin() {
		return doneTask()
	}
	return Launch(s.lt, "sign-up",
		func(ctx context.Context) (bool, error) {
			return s.auth.SignUp(ctx, email, password)
		},
		func(confirmed bool, err error) {
			if err != nil {
				s.fail(err)
				return
			}
			s.succeed()
			if !confirmed {
				s.alerts.Alert(common.TitleSuccess, MessageConfirmEmail)
				return
			}
			s.session.SignedIn()
		})
}
