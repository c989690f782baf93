package screens

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/nav"
	"github.com/dmitrijs2005/gophnotes/internal/client/services"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

const (
	EmptyListText        = "No notes yet. Tap + to add one."
	TitleDeleteNote      = "Delete Note"
	MessageConfirmDelete = "Are you sure?"
	LabelDelete          = "Delete"
)

type NoteListScreen struct {
	lt      *Lifetime
	notes   services.NoteService
	auth    services.AuthService
	nav     Navigator
	session SessionSwitch
	alerts  Alerter
	confirm Confirmer
	logger  logging.Logger

	mu    sync.Mutex
	state State[[]models.Note]
}

type NoteListDeps struct {
	Notes   services.NoteService
	Auth    services.AuthService
	Nav     Navigator
	Session SessionSwitch
	Alerts  Alerter
	Confirm Confirmer
	Logger  logging.Logger
}

func NewNoteListScreen(lt *Lifetime, d NoteListDeps) *NoteListScreen {
	if d.Logger == nil {
		d.Logger = logging.Discard()
	}
	return &NoteListScreen{
		lt: lt, notes: d.Notes, auth: d.Auth, nav: d.Nav, session: d.Session,
		alerts: d.Alerts, confirm: d.Confirm, logger: d.Logger,
	}
}

func (s *NoteListScreen) State() State[[]models.Note] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *NoteListScreen) Notes() []models.Note {
	return s.State().Data()
}

func (s *NoteListScreen) alert(err error) {
	s.logger.Warn(s.lt.Context(), "note list action failed", "error", err)
	title, msg := common.Describe(err)
	s.alerts.Alert(title, msg)
}

func (s *NoteListScreen) fetch(refresh bool, name string, work func(ctx context.Context) ([]models.Note, error)) *Task {
	s.mu.Lock()
	if s.state.Busy() {
		s.mu.Unlock()
		return doneTask()
	}
	s.state = s.state.Begin(refresh)
	s.mu.Unlock()

	return Launch(s.lt, name, work, func(notes []models.Note, err error) {
		if err != nil {
			s.mu.Lock()
			s.state = s.state.Fail(err)
			s.mu.Unlock()

			s.alert(err)

			s.mu.Lock()
			s.state = s.state.Acknowledge()
			s.mu.Unlock()
			return
		}
		s.mu.Lock()
		s.state = s.state.Succeed(notes)
		s.mu.Unlock()
	})
}

// Load fetches the notes when the screen is mounted.
func (s *NoteListScreen) Load() *Task {
	return s.fetch(false, "list-notes", s.notes.List)
}

// Refresh is the pull-to-refresh reload.
func (s *NoteListScreen) Refresh() *Task {
	return s.fetch(true, "refresh-notes", s.notes.List)
}

// Delete asks for confirmation, deletes the note and reloads the list.
// Declining sends nothing. While a fetch is in flight nothing is asked.
func (s *NoteListScreen) Delete(id models.NoteID) *Task {
	if s.State().Busy() {
		return doneTask()
	}
	if !s.confirm.Confirm(TitleDeleteNote, MessageConfirmDelete, LabelDelete) {
		return doneTask()
	}
	return s.fetch(false, "delete-note", func(ctx context.Context) ([]models.Note, error) {
		if err := s.notes.Delete(ctx, id); err != nil {
			return nil, err
		}
		return s.notes.List(ctx)
	})
}

func (s *NoteListScreen) SignOut() *Task {
	return Launch(s.lt, "sign-out",
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.auth.SignOut(ctx)
		},
		func(_ struct{}, err error) {
			if err != nil {
				s.alert(err)
				return
			}
			s.session.SignedOut()
		})
}

func (s *NoteListScreen) Open(note models.Note) error {
	return s.nav.Push(nav.RouteNoteDetail, nav.NoteDetailParams{Note: note})
}

func (s *NoteListScreen) Compose() error {
	return s.nav.Push(nav.RouteAddNote, nav.AddNoteParams{})
}
