package direct

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
	"github.com/google/uuid"
)

type identity interface {
	userID(ctx context.Context) (string, error)
}

type NoteRepository struct {
	db dbx.DBTX
	id identity
}

func NewNoteRepository(db dbx.DBTX, id identity) *NoteRepository {
	return &NoteRepository{db: db, id: id}
}

func (r *NoteRepository) SelectAll(ctx context.Context) ([]models.Note, error) {
	uid, err := r.id.userID(ctx)
	if err != nil {
		return nil, err
	}

	query :=
		`SELECT id, title, content, media, user_id, created_at FROM notes
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, uid)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		var (
			n     models.Note
			id    string
			media []byte
		)
		if err := rows.Scan(&id, &n.Title, &n.Content, &media, &n.UserID, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		n.ID = models.NoteID(id)
		if len(media) > 0 {
			if err := json.Unmarshal(media, &n.Media); err != nil {
				return nil, fmt.Errorf("note %s: bad media column: %w", id, err)
			}
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return notes, nil
}

// Insert stores the note under the signed-in user; note.UserID must match.
func (r *NoteRepository) Insert(ctx context.Context, note models.NewNote) error {
	uid, err := r.id.userID(ctx)
	if err != nil {
		return err
	}
	if note.UserID != uid {
		return fmt.Errorf("insert for another user: %w", common.ErrUnauthorized)
	}

	// an empty attachment list is stored as NULL
	var media any
	if len(note.Media) > 0 {
		b, err := json.Marshal(note.Media)
		if err != nil {
			return fmt.Errorf("encode media: %w", err)
		}
		media = b
	}

	query :=
		`INSERT INTO notes (id, user_id, title, content, media)
		 VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.db.ExecContext(ctx, query, uuid.NewString(), uid, note.Title, note.Content, media); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *NoteRepository) DeleteByID(ctx context.Context, id models.NoteID) error {
	uid, err := r.id.userID(ctx)
	if err != nil {
		return err
	}
	if _, err := uuid.Parse(id.String()); err != nil {
		return fmt.Errorf("note %s: %w", id, common.ErrNotFound)
	}

	query :=
		`DELETE FROM notes
		 WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id.String(), uid)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("note %s: %w", id, common.ErrNotFound)
	}
	return nil
}
