package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pawpals/pawpals/internal/client/models"
	"github.com/pawpals/pawpals/internal/common"
	"github.com/pawpals/pawpals/internal/logging"
)

// HTTPClient is the REST implementation of Client.
type HTTPClient struct {
	base   *url.URL
	http   *http.Client
	tokens TokenSource
	log    logging.Logger

	mu             sync.Mutex
	onUnauthorized func()
}

// NewHTTPClient builds a client for the given base URL. timeout bounds each
// individual request; tokens may be nil for a client that never authenticates.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) (*HTTPClient, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url must be absolute: %q", baseURL)
	}
	return &HTTPClient{
		base:   base,
		http:   &http.Client{Timeout: timeout},
		tokens: tokens,
		log:    log,
	}, nil
}

// SetUnauthorizedHandler registers fn to run when an authenticated,
// non-auth-endpoint request comes back 401 (server-side session expiry).
// The session manager installs its logout here.
func (c *HTTPClient) SetUnauthorizedHandler(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var res AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", nil, body, &res, false); err != nil {
		return nil, err
	}
	if res.Token == "" || res.User.ID == "" {
		return nil, &ServerError{Status: http.StatusOK, Reason: "login response missing token or user"}
	}
	return &res, nil
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	var res AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", nil, req, &res, false); err != nil {
		return nil, err
	}
	if res.Token == "" || res.User.ID == "" {
		return nil, &ServerError{Status: http.StatusOK, Reason: "register response missing token or user"}
	}
	return &res, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, nil, &user, false); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, &ServerError{Status: http.StatusOK, Reason: "identity response missing user id"}
	}
	return &user, nil
}

func (c *HTTPClient) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/api/logout", nil, nil, nil, false, token)
}

func (c *HTTPClient) SearchSuppliers(ctx context.Context, q SupplierQuery) (*models.SupplierPage, error) {
	query := url.Values{}
	if q.Query != "" {
		query.Set("q", q.Query)
	}
	if q.Suburb != "" {
		query.Set("suburb", q.Suburb)
	}
	if q.Service != "" {
		query.Set("service", q.Service)
	}
	query.Set("limit", strconv.Itoa(q.Limit))
	query.Set("offset", strconv.Itoa(q.Offset))

	var page models.SupplierPage
	if err := c.doJSON(ctx, http.MethodGet, "/api/suppliers", query, nil, &page, true); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *HTTPClient) SuggestSuburbs(ctx context.Context, prefix string) ([]string, error) {
	query := url.Values{}
	query.Set("q", prefix)

	var res struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/suburbs", query, nil, &res, false); err != nil {
		return nil, err
	}
	return res.Suggestions, nil
}

// errorBody is the error payload shape the backend uses on non-2xx statuses.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (b errorBody) reason() string {
	if b.Error != "" {
		return b.Error
	}
	return b.Message
}

// doJSON performs one request/response cycle: builds the URL against the
// base, attaches the bearer credential and a correlation id, sends the JSON
// body, and either decodes the 2xx payload into out or maps the failure onto
// the error taxonomy. When hook401 is set, a 401 additionally fires the
// unauthorized handler (session expiry recovery).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, query url.Values, body, out any, hook401 bool) error {
	var token string
	if c.tokens != nil {
		t, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}
		token = t
	}
	return c.do(ctx, method, path, query, body, out, hook401, token)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any, hook401 bool, token string) error {
	u := c.base.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	if token != "" {
		req.Header.Set(common.AuthHeaderName, "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &ServerError{Status: resp.StatusCode, Reason: "malformed response payload"}
		}
		return nil
	}

	var eb errorBody
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&eb)

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		if hook401 {
			c.fireUnauthorized(ctx, method, path)
		}
		return &AuthenticationError{Reason: eb.reason()}
	case http.StatusConflict:
		return &ConflictError{Reason: eb.reason()}
	default:
		return &ServerError{Status: resp.StatusCode, Reason: eb.reason()}
	}
}

func (c *HTTPClient) fireUnauthorized(ctx context.Context, method, path string) {
	c.mu.Lock()
	fn := c.onUnauthorized
	c.mu.Unlock()
	if fn == nil {
		return
	}
	if c.log != nil {
		c.log.Warn(ctx, "request rejected as unauthorized, invalidating session", "method", method, "path", path)
	}
	fn()
}
