// ABOUTME: HTTP client for the pet-care API
// ABOUTME: Wraps API calls with proper error handling for CLI and TUI usage

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds every request unless overridden.
const DefaultTimeout = 30 * time.Second

// Client is the API client for the pet-care backend
type Client struct {
	baseURL string
	anon    *http.Client
	authed  *http.Client
}

// Option customizes a Client.
type Option func(*options)

type options struct {
	timeout   time.Duration
	tokens    TokenFunc
	transport http.RoundTripper
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithTokens sets where bearer tokens come from.
func WithTokens(f TokenFunc) Option {
	return func(o *options) { o.tokens = f }
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// New creates a new API client with the given base URL
func New(baseURL string, opts ...Option) *Client {
	o := options{
		timeout: DefaultTimeout,
		tokens:  func() string { return "" },
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Client{
		baseURL: baseURL,
		anon: &http.Client{
			Timeout:   o.timeout,
			Transport: newRequestIDTransport(o.transport),
		},
		authed: &http.Client{
			Timeout:   o.timeout,
			Transport: newBearerTransport(o.tokens, o.transport),
		},
	}
}

// BaseURL returns the API root this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login calls POST /auth/login
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var resp LoginResponse
	if err := c.do(ctx, c.anon, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("invalid response from backend: no token issued")
	}
	if resp.UserName == "" {
		resp.UserName = req.UserName
	}
	return &resp, nil
}

// Register calls POST /auth/register
func (c *Client) Register(ctx context.Context, reg Registration) (*RegistrationResponse, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	var resp RegistrationResponse
	if err := c.do(ctx, c.anon, http.MethodPost, "/auth/register", reg, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListPets calls GET /pets
func (c *Client) ListPets(ctx context.Context) ([]Pet, error) {
	var pets []Pet
	if err := c.do(ctx, c.authed, http.MethodGet, "/pets", nil, &pets); err != nil {
		return nil, err
	}
	return pets, nil
}

// GetPet calls GET /pets/{id}
func (c *Client) GetPet(ctx context.Context, id int64) (*Pet, error) {
	var pet Pet
	if err := c.do(ctx, c.authed, http.MethodGet, petPath(id), nil, &pet); err != nil {
		return nil, err
	}
	return &pet, nil
}

// CreatePet calls POST /pets
func (c *Client) CreatePet(ctx context.Context, in PetInput) (*Pet, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var pet Pet
	if err := c.do(ctx, c.authed, http.MethodPost, "/pets", in, &pet); err != nil {
		return nil, err
	}
	return &pet, nil
}

// UpdatePet calls PUT /pets/{id}
func (c *Client) UpdatePet(ctx context.Context, id int64, in PetInput) (*Pet, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var pet Pet
	if err := c.do(ctx, c.authed, http.MethodPut, petPath(id), in, &pet); err != nil {
		return nil, err
	}
	return &pet, nil
}

// DeletePet calls DELETE /pets/{id}
func (c *Client) DeletePet(ctx context.Context, id int64) error {
	return c.do(ctx, c.authed, http.MethodDelete, petPath(id), nil, nil)
}

// Perform calls POST /pets/{id}/{action}
func (c *Client) Perform(ctx context.Context, id int64, action Action) error {
	switch action {
	case ActionFeed, ActionPlay, ActionSleep:
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidInput, action)
	}
	return c.do(ctx, c.authed, http.MethodPost, fmt.Sprintf("%s/%s", petPath(id), action), nil, nil)
}

// Feed calls POST /pets/{id}/feed
func (c *Client) Feed(ctx context.Context, id int64) error {
	return c.Perform(ctx, id, ActionFeed)
}

// Play calls POST /pets/{id}/play
func (c *Client) Play(ctx context.Context, id int64) error {
	return c.Perform(ctx, id, ActionPlay)
}

// Sleep calls POST /pets/{id}/sleep
func (c *Client) Sleep(ctx context.Context, id int64) error {
	return c.Perform(ctx, id, ActionSleep)
}

// AdminListPets calls GET /admin/pets
func (c *Client) AdminListPets(ctx context.Context) ([]Pet, error) {
	var pets []Pet
	if err := c.do(ctx, c.authed, http.MethodGet, "/admin/pets", nil, &pets); err != nil {
		return nil, err
	}
	return pets, nil
}

// AdminUpdatePet calls PUT /admin/pets/{id}
func (c *Client) AdminUpdatePet(ctx context.Context, id int64, in PetInput) (*Pet, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var pet Pet
	if err := c.do(ctx, c.authed, http.MethodPut, adminPetPath(id), in, &pet); err != nil {
		return nil, err
	}
	return &pet, nil
}

// AdminDeletePet calls DELETE /admin/pets/{id}
func (c *Client) AdminDeletePet(ctx context.Context, id int64) error {
	return c.do(ctx, c.authed, http.MethodDelete, adminPetPath(id), nil, nil)
}

func petPath(id int64) string {
	return fmt.Sprintf("/pets/%d", id)
}

func adminPetPath(id int64) string {
	return fmt.Sprintf("/admin/pets/%d", id)
}

// do sends in as JSON (when non-nil) and decodes a 2xx body into out
// (when non-nil).
func (c *Client) do(ctx context.Context, hc *http.Client, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal input: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if errors.Is(err, ErrNotAuthenticated) {
		return ErrNotAuthenticated
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("request canceled")
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
		apiErr.Message = errResp.Message
		if apiErr.Message == "" {
			apiErr.Message = errResp.Error
		}
	}
	return apiErr
}
