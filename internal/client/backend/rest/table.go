package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
)

// Table is the notes table exposed by the rows API.
type Table struct {
	c    *conn
	name string
}

func (t *Table) path() string {
	return "/rest/v1/" + url.PathEscape(t.name)
}

func (t *Table) SelectAll(ctx context.Context) ([]models.Note, error) {
	r := request{
		method: http.MethodGet,
		path:   t.path(),
		query:  url.Values{"select": {"*"}, "order": {"created_at.desc,id.desc"}},
		authed: true,
	}
	notes := make([]models.Note, 0)
	if err := t.c.do(ctx, r, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (t *Table) Insert(ctx context.Context, note models.NewNote) error {
	r, err := jsonRequest(http.MethodPost, t.path(), note)
	if err != nil {
		return err
	}
	r.authed = true
	r.headers = map[string]string{"Prefer": "return=minimal"}
	return t.c.do(ctx, r, nil)
}

// DeleteByID asks for the deleted rows back so that a missing id can be told
// apart from a successful delete.
func (t *Table) DeleteByID(ctx context.Context, id models.NoteID) error {
	r := request{
		method:  http.MethodDelete,
		path:    t.path(),
		query:   url.Values{"id": {"eq." + id.String()}},
		headers: map[string]string{"Prefer": "return=representation"},
		authed:  true,
	}
	var deleted []json.RawMessage
	if err := t.c.do(ctx, r, &deleted); err != nil {
		return err
	}
	if len(deleted) == 0 {
		return fmt.Errorf("note %s: %w", id, common.ErrNotFound)
	}
	return nil
}
