package media

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/stretchr/testify/require"
)

// minimal file signatures recognised by content sniffing
var (
	pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
	mp4Header = []byte{0, 0, 0, 0x18, 'f', 't', 'y', 'p', 'm', 'p', '4', '2', 0, 0, 0, 0, 'm', 'p', '4', '2', 'i', 's', 'o', 'm'}
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, data, 0o600))
	return p
}

func TestPick_Classifies(t *testing.T) {
	dir := t.TempDir()
	img := writeFile(t, dir, "cat.png", pngHeader)
	vid := writeFile(t, dir, "clip.mp4", mp4Header)

	got, err := NewPicker().Pick(img, vid)
	require.NoError(t, err)
	require.Equal(t, []models.PendingMediaFile{
		{Type: models.MediaImage, URI: img, Filename: "cat.png"},
		{Type: models.MediaVideo, URI: vid, Filename: "clip.mp4"},
	}, got)
}

func TestPick_RejectsOtherContent(t *testing.T) {
	txt := writeFile(t, t.TempDir(), "notes.txt", []byte("just text"))

	_, err := NewPicker().Pick(txt)
	require.ErrorIs(t, err, common.ErrUnsupportedMedia)
}

func TestPick_PermissionDenied(t *testing.T) {
	p := &Picker{open: func(name string) (*os.File, error) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}}

	_, err := p.Pick("/private/photo.jpg")
	require.ErrorIs(t, err, common.ErrPermissionDenied)
}

func TestPick_Missing(t *testing.T) {
	_, err := NewPicker().Pick(filepath.Join(t.TempDir(), "nope.jpg"))
	require.ErrorIs(t, err, fs.ErrNotExist)
	require.NotErrorIs(t, err, common.ErrPermissionDenied)
	require.Contains(t, fmt.Sprint(err), "nope.jpg")
}
