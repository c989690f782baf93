package media

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upload struct {
	key         string
	data        []byte
	contentType string
}

type fakeBucket struct {
	uploads []upload
	failOn  int // 1-based upload index that fails, 0 = never
}

func (b *fakeBucket) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	b.uploads = append(b.uploads, upload{key: key, data: data, contentType: contentType})
	if b.failOn == len(b.uploads) {
		return "", errors.New("The object exceeded the maximum allowed size")
	}
	return "media/" + key, nil
}

func (b *fakeBucket) PublicURL(path string) string {
	return "https://cdn.example/" + path
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestStorageKey(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	assert.Equal(t, "1700000000123-img1.jpg", StorageKey(now, "img1.jpg"))
	assert.Equal(t, "1700000000123-passwd", StorageKey(now, "../../etc/passwd"))
	assert.Equal(t, "1700000000123-file", StorageKey(now, ""))
}

func TestUpload_PreservesOrderAndTypes(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "img1.jpg")
	require.NoError(t, os.WriteFile(local, []byte("local-bytes"), 0o600))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("remote-bytes"))
	}))
	defer srv.Close()

	b := &fakeBucket{}
	in := NewIngester(b, srv.Client(), nil)
	in.now = fixedClock(time.UnixMilli(1000))

	files := []models.PendingMediaFile{
		{Type: models.MediaImage, URI: local, Filename: "img1.jpg"},
		{Type: models.MediaVideo, URI: srv.URL + "/clip.mp4", Filename: "clip.mp4"},
		{Type: models.MediaImage, URI: "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("data-bytes")), Filename: "img1.jpg"},
		{Type: models.MediaImage, URI: "file://" + local, Filename: "again.jpg"},
	}

	refs, err := in.Upload(context.Background(), files)
	require.NoError(t, err)
	require.Equal(t, []models.MediaRef{
		{Type: models.MediaImage, URL: "https://cdn.example/media/1000-img1.jpg"},
		{Type: models.MediaVideo, URL: "https://cdn.example/media/1001-clip.mp4"},
		{Type: models.MediaImage, URL: "https://cdn.example/media/1002-img1.jpg"},
		{Type: models.MediaImage, URL: "https://cdn.example/media/1003-again.jpg"},
	}, refs)

	require.Len(t, b.uploads, 4)
	assert.Equal(t, []byte("local-bytes"), b.uploads[0].data)
	assert.Equal(t, "image/jpeg", b.uploads[0].contentType)
	assert.Equal(t, []byte("remote-bytes"), b.uploads[1].data)
	assert.Equal(t, "video/mp4", b.uploads[1].contentType)
	assert.Equal(t, []byte("data-bytes"), b.uploads[2].data)
	assert.Equal(t, []byte("local-bytes"), b.uploads[3].data)
}

func TestUpload_FailFast(t *testing.T) {
	dir := t.TempDir()
	var files []models.PendingMediaFile
	for _, name := range []string{"f1.jpg", "f2.jpg", "f3.jpg"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(name), 0o600))
		files = append(files, models.PendingMediaFile{Type: models.MediaImage, URI: p, Filename: name})
	}

	b := &fakeBucket{failOn: 2}
	refs, err := NewIngester(b, nil, nil).Upload(context.Background(), files)

	require.EqualError(t, err, "The object exceeded the maximum allowed size")
	require.Nil(t, refs)
	require.Len(t, b.uploads, 2, "f3 must not be attempted")
}

func TestUpload_ReadErrors(t *testing.T) {
	b := &fakeBucket{}
	in := NewIngester(b, nil, nil)

	_, err := in.Upload(context.Background(), []models.PendingMediaFile{
		{Type: models.MediaImage, URI: filepath.Join(t.TempDir(), "gone.jpg"), Filename: "gone.jpg"},
	})
	require.ErrorIs(t, err, os.ErrNotExist)
	require.ErrorContains(t, err, "read gone.jpg")

	_, err = in.Upload(context.Background(), []models.PendingMediaFile{
		{Type: models.MediaImage, URI: "data:image/png;base64,!!!", Filename: "x.png"},
	})
	require.Error(t, err)
	require.Empty(t, b.uploads)
}

func TestUpload_Empty(t *testing.T) {
	refs, err := NewIngester(&fakeBucket{}, nil, nil).Upload(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, refs)
}

func TestDecodeDataURI(t *testing.T) {
	b, err := decodeDataURI("data:text/plain,hello%20world")
	require.NoError(t, err)
	require.Equal(t, "hello world", string(b))

	_, err = decodeDataURI("data:nocomma")
	require.Error(t, err)
}
