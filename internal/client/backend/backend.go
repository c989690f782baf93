// Package backend is the contract the notes client consumes from its
// backend-as-a-service: session/auth, the notes table and the media bucket.
//
// Two implementations exist:
//   - backend/rest:   a hosted service over HTTP (auth, rows and storage APIs).
//   - backend/direct: a self-hosted stack (PostgreSQL, S3-compatible storage,
//     locally signed JWT sessions).
//
// Row scoping to the signed-in user is the backend's job; callers never pass
// a user filter to SelectAll or DeleteByID.
package backend

import (
	"context"
	"io"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

type Auth interface {
	SignIn(ctx context.Context, email string, password []byte) (*models.Session, error)
	SignUp(ctx context.Context, email string, password []byte) (*models.Session, error)
	// CurrentSession returns (nil, nil) when no session is held.
	CurrentSession(ctx context.Context) (*models.Session, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	SignOut(ctx context.Context) error
}

type NoteTable interface {
	// SelectAll returns the caller's notes, newest created_at first.
	SelectAll(ctx context.Context) ([]models.Note, error)
	Insert(ctx context.Context, note models.NewNote) error
	// DeleteByID returns common.ErrNotFound when no row matched id.
	DeleteByID(ctx context.Context, id models.NoteID) error
}

type Bucket interface {
	// Upload stores data under key and returns the object path.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	PublicURL(path string) string
}

// Client groups the three capability groups, mirroring how the hosted SDK
// exposes auth, from("notes") and storage.from("notes-media").
type Client struct {
	Auth  Auth
	Notes NoteTable
	Media Bucket

	closer io.Closer
}

func NewClient(auth Auth, notes NoteTable, media Bucket, closer io.Closer) *Client {
	return &Client{Auth: auth, Notes: notes, Media: media, closer: closer}
}

func (c *Client) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}
