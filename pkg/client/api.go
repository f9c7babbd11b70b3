package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/VanGog06-SoftUni/ToDAI/internal/model"
	"github.com/VanGog06-SoftUni/ToDAI/internal/validation"
)

// APIError is the normalized form of any non-2xx response.
type APIError struct {
	Status      int
	Message     string
	FieldErrors validation.FieldErrors
	Body        []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error status=%d: %s", e.Status, e.Message)
}

// Client is the HTTP gateway to the task API.
type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New builds a client for the given base URL (e.g. "http://localhost:3000").
// The default transport carries otel instrumentation so calls join the
// active trace.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListTasks(ctx context.Context) ([]*model.Task, error) {
	var list []*model.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) CreateTask(ctx context.Context, in *model.CreateTaskInput) (*model.Task, error) {
	var t model.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) UpdateTask(ctx context.Context, id int64, in *model.UpdateTaskInput) (*model.Task, error) {
	var t model.Task
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/tasks/%d", id), in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", id), nil, nil)
}

// readRetries bounds the extra attempts for GET requests that fail on
// transport errors or 5xx responses. Mutations are never retried.
const readRetries = 2

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var payload []byte
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		payload = buf
	}

	attempts := 1
	if method == http.MethodGet {
		attempts += readRetries
	}

	var resp *http.Response
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 100 * time.Millisecond):
			}
		}

		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
		if err != nil {
			return err
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")

		resp, err = c.http.Do(req)
		if err != nil {
			if attempt < attempts-1 {
				continue
			}
			return err
		}
		if resp.StatusCode >= 500 && attempt < attempts-1 {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			continue
		}
		break
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return normalizeError(resp)
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// normalizeError turns any non-2xx response into an APIError. A body that
// is not the documented error shape degrades to a generic message.
func normalizeError(resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	apiErr := &APIError{
		Status:  resp.StatusCode,
		Message: "Request failed",
		Body:    raw,
	}
	var payload struct {
		Error       string                 `json:"error"`
		FieldErrors validation.FieldErrors `json:"fieldErrors"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		apiErr.Message = "Unknown error"
		return apiErr
	}
	if payload.Error != "" {
		apiErr.Message = payload.Error
	}
	if len(payload.FieldErrors) > 0 {
		apiErr.FieldErrors = payload.FieldErrors
	}
	return apiErr
}
