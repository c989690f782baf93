package screens

import (
	"context"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/nav"
)

type Alerter interface {
	Alert(title, message string)
}

// Confirmer asks a yes/no question; true means the destructive action was
// confirmed.
type Confirmer interface {
	Confirm(title, message, confirmLabel string) bool
}

type Navigator interface {
	Push(route nav.Route, params any) error
	Pop() (nav.Entry, bool)
}

// SessionSwitch flips the shell between the screen groups.
type SessionSwitch interface {
	SignedIn()
	SignedOut()
}

type MediaPicker interface {
	Pick(paths ...string) ([]models.PendingMediaFile, error)
}

type ImageProber interface {
	Probe(ctx context.Context, url string) (Size, error)
}
