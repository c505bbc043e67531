package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"resume-builder/internal/editor"
	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/validation"
	"resume-builder/internal/users"
)

const defaultTimeout = 30 * time.Second

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
)

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details []validation.FieldIssue
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// Is maps the status onto the package sentinels so callers can use errors.Is.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrConflict:
		return e.Status == http.StatusConflict
	case ErrValidation:
		return e.Status == http.StatusBadRequest
	}
	return false
}

// Client talks to the resume builder JSON API with a bearer token.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

var _ editor.Backend = (*Client)(nil)

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Token returns the bearer token stored by the last successful Login.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Register(ctx context.Context, name, email, password string) (int64, error) {
	in := users.RegisterInput{Name: name, Email: email, Password: password}
	var out struct {
		UserID int64 `json:"userId"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", in, &out); err != nil {
		return 0, err
	}
	return out.UserID, nil
}

// Login authenticates and keeps the returned token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (users.Profile, error) {
	in := users.LoginInput{Email: email, Password: password}
	var out struct {
		Token string        `json:"token"`
		User  users.Profile `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", in, &out); err != nil {
		return users.Profile{}, err
	}
	c.SetToken(out.Token)
	return out.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

func (c *Client) Me(ctx context.Context) (users.Profile, error) {
	var out users.Profile
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return users.Profile{}, err
	}
	return out, nil
}

func (c *Client) List(ctx context.Context) ([]resumes.Resume, error) {
	var out []resumes.ResumeResponse
	if err := c.do(ctx, http.MethodGet, "/api/resumes", nil, &out); err != nil {
		return nil, err
	}
	list := make([]resumes.Resume, 0, len(out))
	for _, r := range out {
		list = append(list, resumes.FromResponse(r))
	}
	return list, nil
}

func (c *Client) Create(ctx context.Context, doc resumes.Document) (resumes.Resume, error) {
	var out resumes.ResumeResponse
	if err := c.do(ctx, http.MethodPost, "/api/resumes", resumes.ResumeRequest{Document: doc}, &out); err != nil {
		return resumes.Resume{}, err
	}
	return resumes.FromResponse(out), nil
}

func (c *Client) Get(ctx context.Context, resumeID int64) (resumes.Resume, error) {
	var out resumes.ResumeResponse
	if err := c.do(ctx, http.MethodGet, resumePath(resumeID), nil, &out); err != nil {
		return resumes.Resume{}, err
	}
	return resumes.FromResponse(out), nil
}

// Update replaces the resume. A non-zero version makes the write conditional.
func (c *Client) Update(ctx context.Context, resumeID int64, doc resumes.Document, version int) (resumes.Resume, error) {
	var out resumes.ResumeResponse
	body := resumes.ResumeRequest{Document: doc, Version: version}
	if err := c.do(ctx, http.MethodPut, resumePath(resumeID), body, &out); err != nil {
		return resumes.Resume{}, err
	}
	return resumes.FromResponse(out), nil
}

func (c *Client) Delete(ctx context.Context, resumeID int64) error {
	return c.do(ctx, http.MethodDelete, resumePath(resumeID), nil, nil)
}

// DeleteAccount removes the signed-in user and all of their resumes.
func (c *Client) DeleteAccount(ctx context.Context) (int, error) {
	var out struct {
		DeletedResumes int `json:"deletedResumes"`
	}
	if err := c.do(ctx, http.MethodDelete, "/api/account", nil, &out); err != nil {
		return 0, err
	}
	c.SetToken("")
	return out.DeletedResumes, nil
}

func resumePath(id int64) string {
	return "/api/resumes/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(status int, raw []byte) error {
	apiErr := &APIError{Status: status}
	var envelope struct {
		Error struct {
			Code    string          `json:"code"`
			Message string          `json:"message"`
			Details json.RawMessage `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
		if len(envelope.Error.Details) > 0 {
			_ = json.Unmarshal(envelope.Error.Details, &apiErr.Details)
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
