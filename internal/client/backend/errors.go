package backend

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/gophnotes/internal/common"
)

// Error is a failure reported by the backend. Message is the backend's own
// human-readable text and is what the user sees.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return e.Message
}

// Unwrap maps the status onto the shared sentinels so callers can use errors.Is.
func (e *Error) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		return common.ErrUnauthorized
	case e.Status == http.StatusNotFound:
		return common.ErrNotFound
	case e.Status >= 500:
		return common.ErrUnavailable
	default:
		return nil
	}
}
