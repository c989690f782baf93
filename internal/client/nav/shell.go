// Package nav holds the navigation shell, which picks the unauthenticated or
// the authenticated screen group, and the typed route stack of the
// authenticated group.
package nav

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

type Group int

const (
	GroupLoading Group = iota
	GroupAuth
	GroupMain
)

func (g Group) String() string {
	switch g {
	case GroupAuth:
		return "auth"
	case GroupMain:
		return "main"
	default:
		return "loading"
	}
}

// SessionChecker reports whether the backend client holds a session.
type SessionChecker interface {
	HasSession(ctx context.Context) (bool, error)
}

// Shell owns the authenticated flag. Only Start, SignedIn and SignedOut
// write it.
type Shell struct {
	sessions SessionChecker
	logger   logging.Logger

	mu            sync.RWMutex
	started       bool
	authenticated bool
}

func NewShell(sessions SessionChecker, logger logging.Logger) *Shell {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Shell{sessions: sessions, logger: logger}
}

// Start checks session presence once. A failing check is treated as no
// session. Later calls return the current group without checking again.
func (s *Shell) Start(ctx context.Context) Group {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return s.Group()
	}
	s.mu.Unlock()

	ok, err := s.sessions.HasSession(ctx)
	if err != nil {
		s.logger.Warn(ctx, "session check failed", "error", err)
		ok = false
	}

	s.mu.Lock()
	if !s.started {
		s.started = true
		s.authenticated = ok
		s.logger.Info(ctx, "session checked", "authenticated", ok)
	}
	s.mu.Unlock()
	return s.Group()
}

func (s *Shell) Group() Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch {
	case !s.started:
		return GroupLoading
	case s.authenticated:
		return GroupMain
	default:
		return GroupAuth
	}
}

func (s *Shell) SignedIn() {
	s.set(true)
}

func (s *Shell) SignedOut() {
	s.set(false)
}

func (s *Shell) set(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = true
	s.authenticated = v
}
