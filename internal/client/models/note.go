package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// NoteID is the backend-assigned identifier of a note. Hosted backends may
// hand out numeric ids, so both JSON numbers and strings are accepted.
type NoteID string

func (id *NoteID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = NoteID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = NoteID(n.String())
	return nil
}

func (id NoteID) String() string { return string(id) }

// Note is one row of the notes table. Media is nil when nothing was attached.
type Note struct {
	ID        NoteID     `json:"id" validate:"required"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Media     []MediaRef `json:"media" validate:"omitempty,dive"`
	UserID    string     `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewNote is the insert payload for the notes table.
type NewNote struct {
	Title   string     `json:"title" validate:"required"`
	Content string     `json:"content" validate:"required"`
	Media   []MediaRef `json:"media" validate:"omitempty,dive"`
	UserID  string     `json:"user_id" validate:"required"`
}

// Preview returns at most n leading lines of the note content.
func (n Note) Preview(lines int) string {
	parts := strings.SplitN(n.Content, "\n", lines+1)
	if len(parts) > lines {
		parts = parts[:lines]
	}
	return strings.Join(parts, "\n")
}
