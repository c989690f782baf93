package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/backend"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

// Draft is what the compose screen hands over on save.
type Draft struct {
	Title   string `validate:"required"`
	Content string `validate:"required"`
	Media   []models.PendingMediaFile
}

// Uploader is the media ingestion step of Create.
type Uploader interface {
	Upload(ctx context.Context, files []models.PendingMediaFile) ([]models.MediaRef, error)
}

type NoteService interface {
	List(ctx context.Context) ([]models.Note, error)
	// Create checks the draft before any request is made: an empty title or
	// content fails with common.ErrValidation and nothing is sent.
	Create(ctx context.Context, d Draft) error
	Delete(ctx context.Context, id models.NoteID) error
	// Edit has no update path yet and always returns common.ErrNotImplemented.
	Edit(ctx context.Context, id models.NoteID, d Draft) error
}

type noteService struct {
	notes  backend.NoteTable
	auth   backend.Auth
	media  Uploader
	logger logging.Logger
}

func NewNoteService(notes backend.NoteTable, auth backend.Auth, media Uploader, logger logging.Logger) NoteService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &noteService{notes: notes, auth: auth, media: media, logger: logger}
}

func (s *noteService) List(ctx context.Context) ([]models.Note, error) {
	return s.notes.SelectAll(ctx)
}

func (s *noteService) Create(ctx context.Context, d Draft) error {
	// Whitespace only counts as empty; the note is stored as typed.
	check := Draft{Title: strings.TrimSpace(d.Title), Content: strings.TrimSpace(d.Content)}
	if err := common.Validate(check); err != nil {
		return err
	}

	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if user == nil || user.ID == "" {
		return common.ErrNoSession
	}

	var refs []models.MediaRef
	if len(d.Media) > 0 {
		s.logger.Info(ctx, "uploading media", "files", len(d.Media))
		if refs, err = s.media.Upload(ctx, d.Media); err != nil {
			return err
		}
	}

	note := models.NewNote{Title: d.Title, Content: d.Content, UserID: user.ID}
	if len(refs) > 0 {
		note.Media = refs
	}
	if err := common.Validate(note); err != nil {
		// Not a user input problem, so keep it apart from ErrValidation.
		return fmt.Errorf("invalid note payload: %s", err.Error())
	}

	if err := s.notes.Insert(ctx, note); err != nil {
		return err
	}
	s.logger.Info(ctx, "note created", "media", len(refs))
	return nil
}

func (s *noteService) Delete(ctx context.Context, id models.NoteID) error {
	if err := s.notes.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "note deleted", "id", id.String())
	return nil
}

func (s *noteService) Edit(ctx context.Context, id models.NoteID, d Draft) error {
	return fmt.Errorf("edit note %s: %w", id, common.ErrNotImplemented)
}
