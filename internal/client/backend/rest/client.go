// Package rest implements the backend contract against a hosted
// backend-as-a-service speaking the common auth (/auth/v1), rows (/rest/v1)
// and storage (/storage/v1) HTTP APIs.
//
// Every request carries the project's anon key in the apikey header and a
// bearer token: the signed-in user's access token for authed calls, the anon
// key otherwise. An authed call that comes back 401 refreshes the access
// token once with the stored refresh token and is retried once; nothing else
// is retried.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/backend"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/session"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

type Config struct {
	BaseURL    string
	AnonKey    string
	Table      string
	Bucket     string
	HTTPClient *http.Client
}

type conn struct {
	baseURL string
	anonKey string
	http    *http.Client
	store   session.Store
	logger  logging.Logger
	now     func() time.Time

	refreshMu sync.Mutex
}

// New returns a backend.Client talking to cfg.BaseURL. The session is kept
// in store.
func New(cfg Config, store session.Store, logger logging.Logger) *backend.Client {
	c := newConn(cfg, store, logger)
	return backend.NewClient(
		&AuthAPI{c: c},
		&Table{c: c, name: cfg.Table},
		&Storage{c: c, bucket: cfg.Bucket},
		nil,
	)
}

func newConn(cfg Config, store session.Store, logger logging.Logger) *conn {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &conn{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		anonKey: cfg.AnonKey,
		http:    hc,
		store:   store,
		logger:  logger.With("backend", "rest"),
		now:     time.Now,
	}
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
	headers     map[string]string
	authed      bool
}

func jsonRequest(method, path string, payload any) (request, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return request{}, fmt.Errorf("encode request: %w", err)
	}
	return request{method: method, path: path, body: b, contentType: "application/json"}, nil
}

// do sends r and decodes a 2xx JSON body into out (when out is non-nil).
func (c *conn) do(ctx context.Context, r request, out any) error {
	var token string
	if r.authed {
		s, err := c.activeSession(ctx)
		if err != nil {
			return err
		}
		token = s.AccessToken
	}

	status, body, err := c.send(ctx, r, token)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && r.authed {
		s, rerr := c.refresh(ctx)
		if rerr != nil {
			return rerr
		}
		c.logger.Info(ctx, "access token refreshed", "path", r.path)
		status, body, err = c.send(ctx, r, s.AccessToken)
		if err != nil {
			return err
		}
	}

	if status < 200 || status > 299 {
		return decodeError(status, body)
	}
	if out != nil && len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *conn) send(ctx context.Context, r request, token string) (int, []byte, error) {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, u, body)
	if err != nil {
		return 0, nil, err
	}

	if token == "" {
		token = c.anonKey
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+token)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, ctx.Err()
		}
		return 0, nil, fmt.Errorf("%w: %w", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, b, nil
}

// errorBody covers the error shapes of the auth, rows and storage APIs.
type errorBody struct {
	Message          string `json:"message"`
	Msg              string `json:"msg"`
	ErrorDescription string `json:"error_description"`
	Error            string `json:"error"`
}

func decodeError(status int, body []byte) error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	msg := eb.Message
	for _, alt := range []string{eb.Msg, eb.ErrorDescription, eb.Error} {
		if msg == "" {
			msg = alt
		}
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	return &backend.Error{Status: status, Message: msg}
}

// activeSession loads the stored session and refreshes it first when the
// access token has already expired.
func (c *conn) activeSession(ctx context.Context) (*models.Session, error) {
	s, err := c.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, common.ErrNoSession
	}
	if s.Expired(c.now()) && s.RefreshToken != "" {
		return c.refresh(ctx)
	}
	return s, nil
}

func (c *conn) refresh(ctx context.Context) (*models.Session, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	s, err := c.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil || s.RefreshToken == "" {
		return nil, common.ErrNoSession
	}

	r, err := jsonRequest(http.MethodPost, "/auth/v1/token", map[string]string{"refresh_token": s.RefreshToken})
	if err != nil {
		return nil, err
	}
	r.query = url.Values{"grant_type": {"refresh_token"}}

	var tr tokenResponse
	if err := c.do(ctx, r, &tr); err != nil {
		var be *backend.Error
		if errors.As(err, &be) && be.Status < 500 {
			_ = c.store.Clear(ctx)
			return nil, fmt.Errorf("session expired: %w", common.ErrUnauthorized)
		}
		return nil, err
	}

	fresh := c.toSession(tr)
	if err := c.store.Save(ctx, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}
