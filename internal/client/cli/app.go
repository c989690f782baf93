package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/gophnotes/internal/client/nav"
	"github.com/dmitrijs2005/gophnotes/internal/client/screens"
	"github.com/dmitrijs2005/gophnotes/internal/client/services"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

// Deps is what the terminal front end needs from the rest of the client.
type Deps struct {
	Auth   services.AuthService
	Notes  services.NoteService
	Picker screens.MediaPicker
	Images screens.ImageProber
	// HTTP downloads previewed images.
	HTTP   *http.Client
	Logger logging.Logger

	In  io.Reader
	Out io.Writer
	// Width is the container width used to lay out images, in terminal cells.
	Width int
}

type App struct {
	deps    Deps
	logger  logging.Logger
	reader  *bufio.Reader
	out     io.Writer
	alerts  *terminalAlerter
	confirm *terminalConfirmer

	shell *nav.Shell
	stack *nav.Stack

	group   nav.Group
	mounted []*mountedScreen
}

func NewApp(d Deps) (*App, error) {
	if d.Logger == nil {
		d.Logger = logging.Discard()
	}
	if d.HTTP == nil {
		d.HTTP = http.DefaultClient
	}

	stack, err := nav.NewStack(nav.RouteNoteList, nav.NoteListParams{})
	if err != nil {
		return nil, err
	}

	reader := bufio.NewReader(d.In)
	return &App{
		deps:    d,
		logger:  d.Logger,
		reader:  reader,
		out:     d.Out,
		alerts:  &terminalAlerter{w: d.Out},
		confirm: &terminalConfirmer{reader: reader, w: d.Out},
		shell:   nav.NewShell(d.Auth, d.Logger),
		stack:   stack,
	}, nil
}

// Run checks for a stored session, mounts the matching screen group and
// serves commands until the user exits. All screens are torn down on return.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to GophNotes (type 'help' for commands)")
	defer a.unmountAll()

	fmt.Fprintln(a.out, "Loading...")
	a.shell.Start(ctx)
	if err := a.sync(ctx); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) status() string {
	s := a.screen()
	if s == screenNotes {
		if m := a.top(); m != nil {
			s = fmt.Sprintf("%s (%d)", s, len(m.list.Notes()))
		}
	}
	return s
}

// screen names the mounted top screen.
func (a *App) screen() string {
	m := a.top()
	if m == nil {
		return screenLoading
	}
	switch m.route {
	case nav.RouteAuth:
		return screenAuth
	case nav.RouteNoteList:
		return screenNotes
	case nav.RouteAddNote:
		return screenCompose
	case nav.RouteNoteDetail:
		return screenNote
	default:
		return screenLoading
	}
}
