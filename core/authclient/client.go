package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shelterops/authkit/core/authtransport"
	"github.com/shelterops/authkit/core/logger"
	"github.com/shelterops/authkit/core/session"
)

// maxErrorBody caps how much of an error response body is read.
const maxErrorBody = 1 << 20

// Client drives the session lifecycle against the shelter API: credential
// exchange, token refresh, and logout. It is also the authtransport.Refresher,
// so the refresh coordinator calls back into it for the actual refresh request.
//
// All calls go through one *http.Client whose transport performs bearer
// decoration and single-flight refresh. The credential endpoints themselves
// are on the transport's allow-list, so login, register, and refresh pass
// through undecorated.
type Client struct {
	baseURL string
	http    *http.Client
	store   *session.Store
	logger  *slog.Logger

	transportOpts []authtransport.Option
}

// Option configures a Client.
type Option func(*Client)

// WithLogger configures structured logging. Logging is disabled by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient replaces the internally constructed HTTP client entirely.
// The caller then owns transport wiring, including refresh coordination.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithTransportOptions forwards options to the internally constructed
// authtransport.Transport, e.g. authtransport.WithForcedLogout(state.ForceLogout).
// Ignored when WithHTTPClient is used.
func WithTransportOptions(opts ...authtransport.Option) Option {
	return func(c *Client) {
		c.transportOpts = append(c.transportOpts, opts...)
	}
}

// New creates a client for the API at baseURL, owning the full authenticated
// pipeline over the given session store.
func New(baseURL string, store *session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		transportOpts := append([]authtransport.Option{
			authtransport.WithLogger(c.logger),
		}, c.transportOpts...)
		c.http = &http.Client{Transport: authtransport.New(store, c, transportOpts...)}
	}

	return c
}

// Login exchanges credentials for a token pair, persists the session, and
// returns the authenticated user. This is the only path that introduces a
// brand-new refresh token; refresh merely rotates it.
func (c *Client) Login(ctx context.Context, creds Credentials) (*session.User, error) {
	resp, err := c.postJSON(ctx, "/api/auth/login", creds)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, errors.Join(ErrInvalidCredentials, c.decodeError(resp))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp)
	}

	var tokens tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, fmt.Errorf("authclient: decode login response: %w", err)
	}

	if err := c.store.Save(ctx, tokens.session()); err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "logged in", logger.Username(tokens.User.Username))

	user := tokens.User
	return &user, nil
}

// Register creates a pending account. It has no session side effects; the
// account must be approved and then logged into explicitly.
func (c *Client) Register(ctx context.Context, params RegisterParams) error {
	resp, err := c.postJSON(ctx, "/api/auth/register", params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return c.statusError(resp)
	}
	return nil
}

// Refresh exchanges a refresh token for a new token pair. It implements
// authtransport.Refresher; persisting the result is the coordinator's job,
// which keeps exactly one writer for refresh outcomes.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (session.Session, error) {
	resp, err := c.postJSON(ctx, "/api/auth/refresh", refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return session.Session{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return session.Session{}, c.statusError(resp)
	}

	var tokens tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return session.Session{}, fmt.Errorf("authclient: decode refresh response: %w", err)
	}

	return tokens.session(), nil
}

// Logout notifies the server best-effort and then clears the local session
// unconditionally. A failed notify is logged, never surfaced: the local
// session must not survive a logout attempt because of a network problem.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.postJSON(ctx, "/api/auth/logout", nil)
	if err != nil {
		c.logger.WarnContext(ctx, "logout notify failed", logger.Error(err))
	} else {
		drainBody(resp)
		if resp.StatusCode != http.StatusOK {
			c.logger.WarnContext(ctx, "logout notify rejected", logger.StatusCode(resp.StatusCode))
		}
	}

	return c.store.Clear(ctx)
}

// Me fetches the live user record through the authenticated pipeline.
func (c *Client) Me(ctx context.Context) (*session.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/users/me", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp)
	}

	var user session.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("authclient: decode user response: %w", err)
	}
	return &user, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.http.Do(req)
}

// statusError maps a non-success response to the error taxonomy: 401 to
// ErrUnauthorized, 403 to ErrForbidden, everything else to the bare APIError.
func (c *Client) statusError(resp *http.Response) error {
	apiErr := c.decodeError(resp)
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return errors.Join(ErrUnauthorized, apiErr)
	case http.StatusForbidden:
		return errors.Join(ErrForbidden, apiErr)
	}
	return apiErr
}

func (c *Client) decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apiErr
	}

	var envelope errorResponse
	if err := json.Unmarshal(data, &envelope); err == nil {
		apiErr.Message = envelope.Error
	}
	return apiErr
}

func drainBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
