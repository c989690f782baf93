package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/client/nav"
	"github.com/dmitrijs2005/gophnotes/internal/client/screens"
)

// mountedScreen is one screen instance with the lifetime of its async work.
// Exactly one of the controller fields is set, matching route.
type mountedScreen struct {
	route nav.Route
	lt    *screens.Lifetime

	auth    *screens.AuthScreen
	list    *screens.NoteListScreen
	compose *screens.AddNoteScreen
	detail  *screens.NoteDetailScreen
}

func (a *App) top() *mountedScreen {
	if len(a.mounted) == 0 {
		return nil
	}
	return a.mounted[len(a.mounted)-1]
}

// sync brings the mounted screens in line with the shell group and the route
// stack. It runs between commands, never inside a task callback, because
// unmounting waits for the screen's outstanding work.
func (a *App) sync(ctx context.Context) error {
	g := a.shell.Group()
	if g != a.group {
		a.unmountAll()
		a.group = g
		a.logger.Info(ctx, "screen group switched", "group", g.String())

		switch g {
		case nav.GroupAuth:
			a.mount(ctx, nav.Entry{Route: nav.RouteAuth, Params: nav.AuthParams{}})
			return nil
		case nav.GroupMain:
			if err := a.stack.Reset(nav.RouteNoteList, nav.NoteListParams{}); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	if g != nav.GroupMain {
		return nil
	}

	popped := false
	for len(a.mounted) > a.stack.Depth() {
		a.unmountTop()
		popped = true
	}
	if len(a.mounted) < a.stack.Depth() {
		e, _ := a.stack.Top()
		a.mount(ctx, e)
		return nil
	}

	// Coming back to the list picks up notes added or deleted meanwhile.
	if m := a.top(); popped && m != nil && m.list != nil {
		m.list.Refresh().Wait()
		a.renderList(m.list)
	}
	return nil
}

func (a *App) mount(ctx context.Context, e nav.Entry) {
	lt := screens.NewLifetime(ctx, a.logger)
	m := &mountedScreen{route: e.Route, lt: lt}
	a.mounted = append(a.mounted, m)
	a.logger.Debug(ctx, "screen mounted", "route", string(e.Route), "depth", len(a.mounted))

	switch e.Route {
	case nav.RouteAuth:
		m.auth = screens.NewAuthScreen(lt, a.deps.Auth, a.shell, a.alerts, a.logger)
		fmt.Fprintln(a.out, "Sign in with 'signin' or create an account with 'signup'.")

	case nav.RouteNoteList:
		m.list = screens.NewNoteListScreen(lt, screens.NoteListDeps{
			Notes:   a.deps.Notes,
			Auth:    a.deps.Auth,
			Nav:     a.stack,
			Session: a.shell,
			Alerts:  a.alerts,
			Confirm: a.confirm,
			Logger:  a.logger,
		})
		m.list.Load().Wait()
		a.renderList(m.list)

	case nav.RouteAddNote:
		m.compose = screens.NewAddNoteScreen(lt, a.deps.Notes, a.deps.Picker, a.stack, a.alerts, a.logger)
		if p, ok := e.Params.(nav.AddNoteParams); ok && p.EditOf != "" {
			fmt.Fprintln(a.out, "Editing is not supported yet; saving creates a new note.")
		}
		fmt.Fprintln(a.out, "New note: set 'title' and 'content', 'attach' media, then 'save'.")

	case nav.RouteNoteDetail:
		p, _ := e.Params.(nav.NoteDetailParams)
		m.detail = screens.NewNoteDetailScreen(lt, p, screens.NoteDetailDeps{
			Notes:          a.deps.Notes,
			Images:         a.deps.Images,
			Nav:            a.stack,
			Alerts:         a.alerts,
			Confirm:        a.confirm,
			Logger:         a.logger,
			ContainerWidth: a.deps.Width,
		})
		m.detail.Measure().Wait()
		a.renderDetail(m.detail)
	}
}

func (a *App) unmountTop() {
	m := a.top()
	if m == nil {
		return
	}
	m.lt.Close()
	a.mounted = a.mounted[:len(a.mounted)-1]
	a.logger.Debug(context.Background(), "screen unmounted", "route", string(m.route))
}

func (a *App) unmountAll() {
	for len(a.mounted) > 0 {
		a.unmountTop()
	}
}
