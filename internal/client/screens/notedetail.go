package screens

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/nav"
	"github.com/dmitrijs2005/gophnotes/internal/client/services"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

type NoteDetailScreen struct {
	lt      *Lifetime
	note    models.Note
	notes   services.NoteService
	images  ImageProber
	nav     Navigator
	alerts  Alerter
	confirm Confirmer
	logger  logging.Logger

	containerWidth int

	mu      sync.Mutex
	sizes   map[string]Size
	preview string
	state   State[struct{}]
}

type NoteDetailDeps struct {
	Notes          services.NoteService
	Images         ImageProber
	Nav            Navigator
	Alerts         Alerter
	Confirm        Confirmer
	Logger         logging.Logger
	ContainerWidth int
}

func NewNoteDetailScreen(lt *Lifetime, p nav.NoteDetailParams, d NoteDetailDeps) *NoteDetailScreen {
	if d.Logger == nil {
		d.Logger = logging.Discard()
	}
	return &NoteDetailScreen{
		lt: lt, note: p.Note, notes: d.Notes, images: d.Images, nav: d.Nav,
		alerts: d.Alerts, confirm: d.Confirm, logger: d.Logger,
		containerWidth: d.ContainerWidth,
		sizes:          map[string]Size{},
	}
}

func (s *NoteDetailScreen) Note() models.Note {
	return s.note
}

func (s *NoteDetailScreen) imageURLs() []string {
	var urls []string
	for _, m := range s.note.Media {
		if m.Type == models.MediaImage {
			urls = append(urls, m.URL)
		}
	}
	return urls
}

// Measure probes the natural size of every attached image. Images that
// cannot be probed keep the default height.
func (s *NoteDetailScreen) Measure() *Task {
	urls := s.imageURLs()
	if len(urls) == 0 || s.images == nil {
		return doneTask()
	}
	return Launch(s.lt, "measure-images",
		func(ctx context.Context) (map[string]Size, error) {
			found := make(map[string]Size, len(urls))
			for _, u := range urls {
				size, err := s.images.Probe(ctx, u)
				if err != nil {
					if ctx.Err() != nil {
						return found, ctx.Err()
					}
					s.logger.Debug(ctx, "image probe failed", "url", u, "error", err)
					continue
				}
				found[u] = size
			}
			return found, nil
		},
		func(found map[string]Size, _ error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			for u, size := range found {
				s.sizes[u] = size
			}
		})
}

// DisplayHeight is the rendered height of the image at url for the
// screen's container width.
func (s *NoteDetailScreen) DisplayHeight(url string) int {
	s.mu.Lock()
	size, ok := s.sizes[url]
	s.mu.Unlock()
	if !ok {
		return DefaultImageHeight
	}
	return DisplayHeight(size, s.containerWidth)
}

// OpenPreview shows one of the note's images full-screen.
func (s *NoteDetailScreen) OpenPreview(url string) error {
	for _, u := range s.imageURLs() {
		if u == url {
			s.mu.Lock()
			s.preview = url
			s.mu.Unlock()
			return nil
		}
	}
	return fmt.Errorf("%s is not an image of this note: %w", url, common.ErrNotFound)
}

func (s *NoteDetailScreen) ClosePreview() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preview = ""
}

// Preview returns the URL shown in the overlay, or "" when it is closed.
func (s *NoteDetailScreen) Preview() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview
}

func (s *NoteDetailScreen) State() State[struct{}] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Delete asks for confirmation, deletes the note and goes back to the list.
// A delete already in flight is not asked about again.
func (s *NoteDetailScreen) Delete() *Task {
	if s.State().Busy() {
		return doneTask()
	}
	if !s.confirm.Confirm(TitleDeleteNote, MessageConfirmDelete, LabelDelete) {
		return doneTask()
	}

	s.mu.Lock()
	if s.state.Busy() {
		s.mu.Unlock()
		return doneTask()
	}
	s.state = s.state.Begin(false)
	s.mu.Unlock()

	return Launch(s.lt, "delete-note",
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.notes.Delete(ctx, s.note.ID)
		},
		func(_ struct{}, err error) {
			if err != nil {
				s.mu.Lock()
				s.state = s.state.Fail(err)
				s.mu.Unlock()

				s.logger.Warn(s.lt.Context(), "delete failed", "id", s.note.ID.String(), "error", err)
				title, msg := common.Describe(err)
				s.alerts.Alert(title, msg)

				s.mu.Lock()
				s.state = s.state.Acknowledge()
				s.mu.Unlock()
				return
			}
			s.mu.Lock()
			s.state = s.state.Succeed(struct{}{})
			s.mu.Unlock()
			s.nav.Pop()
		})
}

// Edit opens the compose screen. It is not pre-filled and saving there
// creates a new note.
func (s *NoteDetailScreen) Edit() error {
	return s.nav.Push(nav.RouteAddNote, nav.AddNoteParams{EditOf: s.note.ID})
}
