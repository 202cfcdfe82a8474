package suno

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
	"time"

	"github.com/rs/zerolog"

	"sunogen/internal/infra"
)

// ErrMissingAPIKey indicates that the client was configured without credentials.
var ErrMissingAPIKey = errors.New("suno: api key is required")

// ErrNoTaskID indicates a successful submission envelope without a task id,
// which violates the service contract.
var ErrNoTaskID = errors.New("suno: response missing task id")

// APIError is a service-level rejection: the HTTP exchange succeeded but the
// envelope carried a non-success code. Unlike a transport failure it will not
// heal on retry, so callers treat it as terminal.
type APIError struct {
	Code int
	Msg  string
}

func (e *APIError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = "unknown error"
	}
	return fmt.Sprintf("suno: api error %d: %s", e.Code, msg)
}

// Options configures the Suno API client.
type Options struct {
	APIKey         string
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls against the Suno generation API. All metadata
// calls (submit, record-info) share one request timeout; binary downloads are
// handled elsewhere with a larger budget.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) (*Client, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.sunoapi.org/api/v1"
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// Submit posts a generation request and returns the task id assigned by the
// service. Transport failures, timeouts, non-success envelope codes and a
// missing task id are all submission errors.
func (c *Client) Submit(ctx context.Context, payload map[string]any) (string, error) {
	if !c.HasCredentials() {
		return "", ErrMissingAPIKey
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("suno: encode request: %w", err)
	}
	endpoint := c.baseURL + "/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("suno: build request: %w", err)
	}
	c.setHeaders(req)

	env, err := c.do(req)
	if err != nil {
		return "", err
	}

	var data submitData
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return "", fmt.Errorf("suno: decode submit data: %w", err)
		}
	}
	if strings.TrimSpace(data.TaskID) == "" {
		return "", ErrNoTaskID
	}
	c.logger.Info().Str("task_id", data.TaskID).Msg("suno: task submitted")
	return data.TaskID, nil
}

// RecordInfo queries the status of a previously submitted task.
func (c *Client) RecordInfo(ctx context.Context, taskID string) (*RecordInfo, error) {
	if !c.HasCredentials() {
		return nil, ErrMissingAPIKey
	}
	endpoint := c.baseURL + "/generate/record-info?" + url.Values{"taskId": {taskID}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("suno: build request: %w", err)
	}
	c.setHeaders(req)

	env, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var info RecordInfo
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &info); err != nil {
			return nil, fmt.Errorf("suno: decode record info: %w", err)
		}
	}
	return &info, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}

func (c *Client) do(req *http.Request) (*envelope, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("suno: http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("suno: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("suno: http status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("suno: decode response: %w", err)
	}
	if env.Code != 200 {
		return nil, &APIError{Code: env.Code, Msg: env.Msg}
	}
	return &env, nil
}
