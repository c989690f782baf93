// Package media turns locally picked files into uploaded media references.
//
// Upload reads each pending file, stores its bytes in the media bucket under
// a timestamp-prefixed key and resolves the object's public URL. Files are
// processed one after another; the first failure aborts the batch.
package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/backend"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/netx"
)

// StorageKey is the object key for filename uploaded at now.
func StorageKey(now time.Time, filename string) string {
	name := filepath.Base(filepath.Clean("/" + filename))
	if name == "/" || name == "." {
		name = "file"
	}
	return fmt.Sprintf("%d-%s", now.UnixMilli(), name)
}

type Ingester struct {
	bucket backend.Bucket
	http   *http.Client
	logger logging.Logger
	now    func() time.Time

	mu       sync.Mutex
	lastTick int64
}

func NewIngester(bucket backend.Bucket, client *http.Client, logger logging.Logger) *Ingester {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Ingester{bucket: bucket, http: client, logger: logger, now: time.Now}
}

// tick returns a strictly increasing upload time so that two files with the
// same name picked in the same millisecond still get distinct keys.
func (in *Ingester) tick() time.Time {
	in.mu.Lock()
	defer in.mu.Unlock()

	t := in.now()
	if ms := t.UnixMilli(); ms <= in.lastTick {
		t = time.UnixMilli(in.lastTick + 1)
	}
	in.lastTick = t.UnixMilli()
	return t
}

// Upload returns one MediaRef per file, in input order.
func (in *Ingester) Upload(ctx context.Context, files []models.PendingMediaFile) ([]models.MediaRef, error) {
	refs := make([]models.MediaRef, 0, len(files))
	for i, f := range files {
		data, err := in.read(ctx, f.URI)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Filename, err)
		}

		key := StorageKey(in.tick(), f.Filename)
		in.logger.Debug(ctx, "uploading media", "index", i, "key", key, "bytes", len(data))

		path, err := in.bucket.Upload(ctx, key, data, f.Type.ContentType())
		if err != nil {
			return nil, err
		}
		refs = append(refs, models.MediaRef{Type: f.Type, URL: in.bucket.PublicURL(path)})
	}
	return refs, nil
}

func (in *Ingester) read(ctx context.Context, uri string) ([]byte, error) {
	switch {
	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		return netx.Fetch(ctx, in.http, uri)
	case strings.HasPrefix(uri, "data:"):
		return decodeDataURI(uri)
	case strings.HasPrefix(uri, "file://"):
		u, err := url.Parse(uri)
		if err != nil {
			return nil, err
		}
		return os.ReadFile(u.Path)
	default:
		return os.ReadFile(uri)
	}
}

// decodeDataURI handles data:[<mediatype>][;base64],<data>.
func decodeDataURI(uri string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("malformed data uri")
	}
	if strings.HasSuffix(meta, ";base64") {
		return base64.StdEncoding.DecodeString(payload)
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}
