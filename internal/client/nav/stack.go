package nav

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
)

type Route string

const (
	RouteAuth       Route = "Auth"
	RouteNoteList   Route = "NoteList"
	RouteAddNote    Route = "AddNote"
	RouteNoteDetail Route = "NoteDetail"
)

var ErrUnknownRoute = errors.New("unknown route")

// Route parameters. Push only accepts the params type registered for a
// route, passed by value.
type (
	AuthParams     struct{}
	NoteListParams struct{}

	// AddNoteParams opens the compose screen. EditOf names the note the
	// user asked to edit; the screen does not pre-fill from it.
	AddNoteParams struct {
		EditOf models.NoteID
	}

	NoteDetailParams struct {
		Note models.Note `validate:"required"`
	}
)

type Entry struct {
	Route  Route
	Params any
}

func checkParams(route Route, params any) error {
	var ok bool
	switch route {
	case RouteAuth:
		_, ok = params.(AuthParams)
	case RouteNoteList:
		_, ok = params.(NoteListParams)
	case RouteAddNote:
		_, ok = params.(AddNoteParams)
	case RouteNoteDetail:
		_, ok = params.(NoteDetailParams)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRoute, route)
	}
	if !ok {
		return fmt.Errorf("%w: route %s does not take %T", common.ErrValidation, route, params)
	}
	if err := common.Validate(params); err != nil {
		return fmt.Errorf("route %s: %w", route, err)
	}
	return nil
}

// Stack is the route stack of one screen group. The bottom entry is never
// popped.
type Stack struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewStack(root Route, params any) (*Stack, error) {
	s := &Stack{}
	if err := s.Reset(root, params); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Stack) Push(route Route, params any) error {
	if err := checkParams(route, params); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, Entry{Route: route, Params: params})
	return nil
}

// Pop removes the top entry and reports false when only the root is left.
func (s *Stack) Pop() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) <= 1 {
		return Entry{}, false
	}
	top := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return top, true
}

func (s *Stack) Top() (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// Reset replaces the whole stack with a single root entry.
func (s *Stack) Reset(route Route, params any) error {
	if err := checkParams(route, params); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = []Entry{{Route: route, Params: params}}
	return nil
}

func (s *Stack) Depth() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
