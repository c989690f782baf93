package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
)

/*************
 * Fake backend
 *************/

type fakeAuth struct {
	session *models.Session
	user    *models.User

	signInErr, signUpErr, signOutErr, sessionErr, userErr error
	signUpPending                                          bool

	calls []string
}

func (f *fakeAuth) SignIn(ctx context.Context, email string, password []byte) (*models.Session, error) {
	f.calls = append(f.calls, "SignIn:"+email)
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	f.session = &models.Session{AccessToken: "t", User: models.User{ID: "u1", Email: email}}
	return f.session, nil
}

func (f *fakeAuth) SignUp(ctx context.Context, email string, password []byte) (*models.Session, error) {
	f.calls = append(f.calls, "SignUp:"+email)
	if f.signUpErr != nil || f.signUpPending {
		return nil, f.signUpErr
	}
	f.session = &models.Session{AccessToken: "t", User: models.User{ID: "u1", Email: email}}
	return f.session, nil
}

func (f *fakeAuth) CurrentSession(ctx context.Context) (*models.Session, error) {
	f.calls = append(f.calls, "CurrentSession")
	return f.session, f.sessionErr
}

func (f *fakeAuth) CurrentUser(ctx context.Context) (*models.User, error) {
	f.calls = append(f.calls, "CurrentUser")
	return f.user, f.userErr
}

func (f *fakeAuth) SignOut(ctx context.Context) error {
	f.calls = append(f.calls, "SignOut")
	if f.signOutErr != nil {
		return f.signOutErr
	}
	f.session = nil
	return nil
}

// fakeTable behaves like the hosted notes table: ids and created_at are
// assigned on insert and SelectAll sorts newest first.
type fakeTable struct {
	rows      []models.Note
	clock     time.Time
	nextID    int
	insertErr error
	calls     int
}

func (f *fakeTable) SelectAll(ctx context.Context) ([]models.Note, error) {
	f.calls++
	out := append([]models.Note(nil), f.rows...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeTable) Insert(ctx context.Context, n models.NewNote) error {
	f.calls++
	if f.insertErr != nil {
		return f.insertErr
	}
	f.nextID++
	f.clock = f.clock.Add(time.Second)
	f.rows = append(f.rows, models.Note{
		ID: models.NoteID(fmt.Sprint(f.nextID)), Title: n.Title, Content: n.Content,
		Media: n.Media, UserID: n.UserID, CreatedAt: f.clock,
	})
	return nil
}

func (f *fakeTable) DeleteByID(ctx context.Context, id models.NoteID) error {
	f.calls++
	for i, r := range f.rows {
		if r.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("note %s: %w", id, common.ErrNotFound)
}

type fakeUploader struct {
	failAt  int // 1-based index of the file that fails, 0 = never
	baseURL string
	seen    []string
}

func (f *fakeUploader) Upload(ctx context.Context, files []models.PendingMediaFile) ([]models.MediaRef, error) {
	refs := make([]models.MediaRef, 0, len(files))
	for i, file := range files {
		f.seen = append(f.seen, file.Filename)
		if f.failAt == i+1 {
			return nil, errors.New("upload failed")
		}
		base := f.baseURL
		if base == "" {
			base = "https://cdn.example/"
		}
		refs = append(refs, models.MediaRef{Type: file.Type, URL: base + file.Filename})
	}
	return refs, nil
}
