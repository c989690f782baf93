package cli

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/filex"
	"github.com/dmitrijs2005/gophnotes/internal/netx"
)

const downloadDir = "download"

// parseIndex turns a 1-based item number typed by the user into a slice index.
func parseIndex(arg string, n int) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil || i < 1 || i > n {
		return 0, fmt.Errorf("no item #%s: %w", arg, common.ErrNotFound)
	}
	return i - 1, nil
}

func (a *App) readCredentials() (string, []byte, error) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

func (a *App) SignIn(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	a.top().auth.SignIn(email, password).Wait()
	return a.sync(ctx)
}

func (a *App) SignUp(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	a.top().auth.SignUp(email, password).Wait()
	return a.sync(ctx)
}

func (a *App) List(ctx context.Context) error {
	a.renderList(a.top().list)
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	list := a.top().list
	list.Refresh().Wait()
	a.renderList(list)
	return nil
}

func (a *App) noteAt(arg string) (models.Note, error) {
	notes := a.top().list.Notes()
	i, err := parseIndex(arg, len(notes))
	if err != nil {
		return models.Note{}, err
	}
	return notes[i], nil
}

func (a *App) Open(ctx context.Context, arg string) error {
	note, err := a.noteAt(arg)
	if err != nil {
		return err
	}
	if err := a.top().list.Open(note); err != nil {
		return err
	}
	return a.sync(ctx)
}

func (a *App) Add(ctx context.Context) error {
	if err := a.top().list.Compose(); err != nil {
		return err
	}
	return a.sync(ctx)
}

// Delete removes the n-th listed note, or the open note on the detail screen.
func (a *App) Delete(ctx context.Context, arg string) error {
	m := a.top()
	if m.detail != nil {
		m.detail.Delete().Wait()
		return a.sync(ctx)
	}

	note, err := a.noteAt(arg)
	if err != nil {
		return err
	}
	m.list.Delete(note.ID).Wait()
	a.renderList(m.list)
	return nil
}

func (a *App) SignOut(ctx context.Context) error {
	a.top().list.SignOut().Wait()
	return a.sync(ctx)
}

func (a *App) Title(ctx context.Context) error {
	v, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	a.top().compose.SetTitle(v)
	return nil
}

func (a *App) Content(ctx context.Context) error {
	v, err := GetMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}
	a.top().compose.SetContent(v)
	return nil
}

// Attach picks media files. With no paths on the command line it asks for
// them.
func (a *App) Attach(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		line, err := GetSimpleText(a.reader, "File paths (space separated)", a.out)
		if err != nil {
			return err
		}
		paths = strings.Fields(line)
	}
	if len(paths) == 0 {
		return nil
	}
	compose := a.top().compose
	// A rejected pick has already been shown as an alert.
	if err := compose.AddMedia(paths...); err == nil {
		a.renderAttachments(compose.Draft().Media)
	}
	return nil
}

func (a *App) Detach(ctx context.Context, arg string) error {
	compose := a.top().compose
	i, err := parseIndex(arg, len(compose.Draft().Media))
	if err != nil {
		return err
	}
	if err := compose.RemoveMedia(i); err != nil {
		return err
	}
	a.renderAttachments(compose.Draft().Media)
	return nil
}

func (a *App) Draft(ctx context.Context) error {
	d := a.top().compose.Draft()
	fmt.Fprintf(a.out, "Title: %s\n", d.Title)
	fmt.Fprintf(a.out, "Content:\n%s\n", d.Content)
	a.renderAttachments(d.Media)
	return nil
}

func (a *App) Save(ctx context.Context) error {
	a.top().compose.Save().Wait()
	return a.sync(ctx)
}

func (a *App) Back(ctx context.Context) error {
	a.stack.Pop()
	return a.sync(ctx)
}

func (a *App) Show(ctx context.Context) error {
	a.renderDetail(a.top().detail)
	return nil
}

// Preview opens the n-th image of the note full-screen, which on a terminal
// means saving it under ./download and printing the path.
func (a *App) Preview(ctx context.Context, arg string) error {
	detail := a.top().detail

	var images []string
	for _, m := range detail.Note().Media {
		if m.Type == models.MediaImage {
			images = append(images, m.URL)
		}
	}
	i, err := parseIndex(arg, len(images))
	if err != nil {
		return err
	}
	if err := detail.OpenPreview(images[i]); err != nil {
		return err
	}

	saved, err := a.download(ctx, images[i])
	if err != nil {
		detail.ClosePreview()
		a.logger.Warn(ctx, "preview download failed", "url", images[i], "error", err)
		title, msg := common.Describe(err)
		a.alerts.Alert(title, msg)
		return nil
	}
	fmt.Fprintf(a.out, "Preview saved to %s ('close' to dismiss)\n", saved)
	return nil
}

func (a *App) download(ctx context.Context, rawURL string) (string, error) {
	data, err := netx.Fetch(ctx, a.deps.HTTP, rawURL)
	if err != nil {
		return "", err
	}
	dir, err := filex.EnsureSubdDir(downloadDir)
	if err != nil {
		return "", err
	}
	name := path.Base(rawURL)
	if u, err := url.Parse(rawURL); err == nil {
		name = path.Base(u.Path)
	}
	return filex.SaveFile(dir, name, data)
}

func (a *App) ClosePreview(ctx context.Context) error {
	detail := a.top().detail
	if detail.Preview() == "" {
		fmt.Fprintln(a.out, "No preview open")
		return nil
	}
	detail.ClosePreview()
	return nil
}

func (a *App) Edit(ctx context.Context) error {
	if err := a.top().detail.Edit(); err != nil {
		return err
	}
	return a.sync(ctx)
}
