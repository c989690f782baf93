package rest

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Storage is one bucket of the storage API.
type Storage struct {
	c      *conn
	bucket string
}

type uploadResponse struct {
	Key string `json:"Key"`
}

func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, s := range parts {
		parts[i] = url.PathEscape(s)
	}
	return strings.Join(parts, "/")
}

// Upload stores data under key without overwriting an existing object and
// returns the object path inside the bucket.
func (s *Storage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	r := request{
		method:      http.MethodPost,
		path:        "/storage/v1/object/" + url.PathEscape(s.bucket) + "/" + escapePath(key),
		body:        data,
		contentType: contentType,
		headers:     map[string]string{"x-upsert": "false"},
		authed:      true,
	}
	var resp uploadResponse
	if err := s.c.do(ctx, r, &resp); err != nil {
		return "", err
	}
	if p, ok := strings.CutPrefix(resp.Key, s.bucket+"/"); ok {
		return p, nil
	}
	return key, nil
}

// PublicURL is computed locally; the bucket must be public for it to resolve.
func (s *Storage) PublicURL(path string) string {
	return s.c.baseURL + "/storage/v1/object/public/" + url.PathEscape(s.bucket) + "/" + escapePath(path)
}
