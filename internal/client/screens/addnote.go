package screens

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/services"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

const MessageNoteSaved = "Note saved"

type AddNoteScreen struct {
	lt     *Lifetime
	notes  services.NoteService
	picker MediaPicker
	nav    Navigator
	alerts Alerter
	logger logging.Logger

	mu      sync.Mutex
	title   string
	content string
	pending []models.PendingMediaFile
	state   State[struct{}]
}

func NewAddNoteScreen(lt *Lifetime, notes services.NoteService, picker MediaPicker, nav Navigator, alerts Alerter, logger logging.Logger) *AddNoteScreen {
	if logger == nil {
		logger = logging.Discard()
	}
	return &AddNoteScreen{lt: lt, notes: notes, picker: picker, nav: nav, alerts: alerts, logger: logger}
}

func (s *AddNoteScreen) SetTitle(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = v
}

func (s *AddNoteScreen) SetContent(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content = v
}

func (s *AddNoteScreen) Draft() services.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return services.Draft{
		Title:   s.title,
		Content: s.content,
		Media:   append([]models.PendingMediaFile(nil), s.pending...),
	}
}

func (s *AddNoteScreen) State() State[struct{}] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *AddNoteScreen) alert(err error) {
	s.logger.Warn(s.lt.Context(), "compose action failed", "error", err)
	title, msg := common.Describe(err)
	s.alerts.Alert(title, msg)
}

// AddMedia picks files from the given paths and appends them to the pending
// list. Nothing is added when any path is rejected.
func (s *AddNoteScreen) AddMedia(paths ...string) error {
	picked, err := s.picker.Pick(paths...)
	if err != nil {
		s.alert(err)
		return err
	}
	s.mu.Lock()
	s.pending = append(s.pending, picked...)
	s.mu.Unlock()
	return nil
}

func (s *AddNoteScreen) RemoveMedia(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.pending) {
		return fmt.Errorf("no attachment #%d", index+1)
	}
	s.pending = append(s.pending[:index], s.pending[index+1:]...)
	return nil
}

// Save uploads the pending media, inserts the note and goes back on success.
func (s *AddNoteScreen) Save() *Task {
	s.mu.Lock()
	if s.state.Busy() {
		s.mu.Unlock()
		return doneTask()
	}
	s.state = s.state.Begin(false)
	s.mu.Unlock()

	draft := s.Draft()
	return Launch(s.lt, "save-note",
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.notes.Create(ctx, draft)
		},
		func(_ struct{}, err error) {
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
			s.state = s.state.Succeed(struct{}{})
			s.pending = nil
			s.mu.Unlock()

			s.alerts.Alert(common.TitleSuccess, MessageNoteSaved)
			s.nav.Pop()
		})
}
