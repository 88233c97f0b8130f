package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/bookswap/internal/client/models"
	"github.com/dmitrijs2005/bookswap/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/bookswap/internal/common"
	"github.com/dmitrijs2005/bookswap/internal/logging"
	"github.com/google/uuid"
)

// DefaultRequestTimeout bounds every call. Exceeding it surfaces as a
// network (no-response) error, never a hang.
const DefaultRequestTimeout = 10 * time.Second

// HTTPClient is the concrete Client over the bookswap REST API. All outbound
// traffic passes through it; the authTransport below guarantees that an armed
// credential reaches every request without call sites touching it.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	creds   credentials.Repository
	log     logging.Logger

	mu    sync.RWMutex
	token string
}

// authTransport stamps each request with the bearer credential (when armed)
// and a fresh request id, then delegates to the underlying transport.
type authTransport struct {
	next    http.RoundTripper
	tokenFn func() string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if token := t.tokenFn(); token != "" {
		req.Header.Set(common.AuthHeaderName, common.BearerPrefix+token)
	}
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	return t.next.RoundTrip(req)
}

// NewHTTPClient builds a client for the API at baseURL. A zero timeout means
// DefaultRequestTimeout. The credentials repository receives tokens returned
// by successful auth operations; if it already holds one, the client arms
// itself so the first CheckAuth does not race the first data request.
func NewHTTPClient(baseURL string, timeout time.Duration, creds credentials.Repository, log logging.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		log:     log,
	}
	c.http = &http.Client{
		Timeout:   timeout,
		Transport: &authTransport{next: http.DefaultTransport, tokenFn: c.Token},
	}
	return c
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *HTTPClient) ClearToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

func (c *HTTPClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// do issues one request and normalizes the outcome. Every error returned is
// a *Error of exactly one of the three classes.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, requestError(err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, requestError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// The request left the client but no response arrived: timeouts,
		// refused connections, partitions.
		return nil, networkError()
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		return nil, serverError(resp.StatusCode, eb.Error, eb.Code)
	}

	return &Response{Data: unwrapEnvelope(raw), Status: resp.StatusCode, Header: resp.Header}, nil
}

// decode unmarshals a normalized payload into out. A payload the server
// promised but did not deliver in the expected shape is reported as a
// request-level failure.
func decode(resp *Response, out any) error {
	if out == nil || len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return requestError(fmt.Errorf("unexpected response body: %w", err))
	}
	return nil
}

// storeToken persists a freshly issued credential and arms the client. The
// store and the armed header are the gateway's responsibility, not the
// caller's. A persistence failure is logged but does not fail the login:
// the session stays usable, it just will not survive a restart.
func (c *HTTPClient) storeToken(ctx context.Context, token string) {
	c.SetToken(token)
	if c.creds == nil {
		return
	}
	if err := c.creds.Set(ctx, token); err != nil && c.log != nil {
		c.log.Warn(ctx, "failed to persist credential", "error", err)
	}
}

// dropToken clears both the armed header and the persisted slot.
func (c *HTTPClient) dropToken(ctx context.Context) {
	c.ClearToken()
	if c.creds == nil {
		return
	}
	if err := c.creds.Clear(ctx); err != nil && c.log != nil {
		c.log.Warn(ctx, "failed to clear credential", "error", err)
	}
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	resp, err := c.do(ctx, http.MethodPost, "/api/users", body)
	if err != nil {
		return nil, err
	}
	var auth models.AuthResponse
	if err := decode(resp, &auth); err != nil {
		return nil, err
	}
	if auth.Token != "" {
		c.storeToken(ctx, auth.Token)
	}
	return &auth, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	resp, err := c.do(ctx, http.MethodPost, "/api/users/login", body)
	if err != nil {
		return nil, err
	}
	var auth models.AuthResponse
	if err := decode(resp, &auth); err != nil {
		return nil, err
	}
	if auth.Token != "" {
		c.storeToken(ctx, auth.Token)
	}
	return &auth, nil
}

func (c *HTTPClient) Profile(ctx context.Context) (*models.User, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/users/me", nil)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := decode(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, updates models.ProfileUpdate) (*models.User, error) {
	resp, err := c.do(ctx, http.MethodPut, "/api/users/me", updates)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := decode(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) DeleteAccount(ctx context.Context) error {
	if _, err := c.do(ctx, http.MethodDelete, "/api/users/me", nil); err != nil {
		return err
	}
	c.dropToken(ctx)
	return nil
}

func (c *HTTPClient) UserByID(ctx context.Context, id string) (*models.User, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := decode(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) CreateBook(ctx context.Context, draft models.BookDraft) (*models.Book, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/books/create", draft)
	if err != nil {
		return nil, err
	}
	var book models.Book
	if err := decode(resp, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (c *HTTPClient) Books(ctx context.Context) ([]models.Book, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/books", nil)
	if err != nil {
		return nil, err
	}
	var books []models.Book
	if err := decode(resp, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (c *HTTPClient) MyBooks(ctx context.Context) ([]models.Book, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/books/my-books", nil)
	if err != nil {
		return nil, err
	}
	var books []models.Book
	if err := decode(resp, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (c *HTTPClient) UpdateBook(ctx context.Context, id string, draft models.BookDraft) (*models.Book, error) {
	resp, err := c.do(ctx, http.MethodPut, "/api/books/my-books/"+url.PathEscape(id), draft)
	if err != nil {
		return nil, err
	}
	var book models.Book
	if err := decode(resp, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (c *HTTPClient) DeleteBook(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/books/my-books/"+url.PathEscape(id), nil)
	return err
}

func (c *HTTPClient) LikeBook(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodPut, "/api/books/like/"+url.PathEscape(id), nil)
	return err
}
