package screens

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/services"
)

type alert struct{ Title, Message string }

type recordingAlerter struct {
	mu     sync.Mutex
	alerts []alert
}

func (r *recordingAlerter) Alert(title, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, alert{title, message})
}

func (r *recordingAlerter) all() []alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]alert(nil), r.alerts...)
}

type fixedConfirmer struct {
	answer   bool
	asked    []string
	messages []string
}

func (c *fixedConfirmer) Confirm(title, message, label string) bool {
	c.asked = append(c.asked, title)
	c.messages = append(c.messages, message)
	return c.answer
}

type fakeSwitch struct {
	mu        sync.Mutex
	signedIn  int
	signedOut int
}

func (f *fakeSwitch) SignedIn()  { f.mu.Lock(); f.signedIn++; f.mu.Unlock() }
func (f *fakeSwitch) SignedOut() { f.mu.Lock(); f.signedOut++; f.mu.Unlock() }

type fakeNoteService struct {
	mu sync.Mutex

	notes     []models.Note
	listErr   error
	createErr error
	deleteErr error

	// when set, List blocks until the channel is closed or ctx is done
	block       chan struct{}
	// same for Delete
	deleteBlock chan struct{}

	listCalls int
	created   []services.Draft
	deleted   []models.NoteID
}

func (f *fakeNoteService) List(ctx context.Context) ([]models.Note, error) {
	f.mu.Lock()
	f.listCalls++
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Note(nil), f.notes...), f.listErr
}

func (f *fakeNoteService) Create(ctx context.Context, d services.Draft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, d)
	return f.createErr
}

func (f *fakeNoteService) Delete(ctx context.Context, id models.NoteID) error {
	f.mu.Lock()
	block := f.deleteBlock
	f.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, n := range f.notes {
		if n.ID == id {
			f.notes = append(f.notes[:i], f.notes[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeNoteService) Edit(ctx context.Context, id models.NoteID, d services.Draft) error {
	return nil
}

type fakeAuthService struct {
	signInErr  error
	signUpErr  error
	signOutErr error
	pending    bool
	signedOut  int
}

func (f *fakeAuthService) SignIn(ctx context.Context, email string, password []byte) error {
	return f.signInErr
}

func (f *fakeAuthService) SignUp(ctx context.Context, email string, password []byte) (bool, error) {
	return !f.pending, f.signUpErr
}

func (f *fakeAuthService) SignOut(ctx context.Context) error {
	f.signedOut++
	return f.signOutErr
}

func (f *fakeAuthService) HasSession(ctx context.Context) (bool, error) {
	return false, nil
}

type fakePicker struct {
	files []models.PendingMediaFile
	err   error
}

func (p *fakePicker) Pick(paths ...string) ([]models.PendingMediaFile, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.files, nil
}

type fakeProber struct {
	sizes map[string]Size
}

func (p *fakeProber) Probe(ctx context.Context, url string) (Size, error) {
	if s, ok := p.sizes[url]; ok {
		return s, nil
	}
	return Size{}, context.DeadlineExceeded
}
