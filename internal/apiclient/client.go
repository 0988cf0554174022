// Package apiclient implements the authenticated HTTP client (C2): a
// single instance bound to a base URL, pinned API version, and optional
// credential, built the way the teacher's llmclient.GroqClient wraps an
// external REST API — one *http.Client, one bearer credential, one JSON
// decode helper per verb, classified errors instead of raw status codes.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"kbclient/internal/apierr"
)

// Client is bound at construction to a base URL, API version, and
// optional timeout; the credential may be set later via SetAPIKey.
type Client struct {
	http   *http.Client
	cfg    Config
	mu     sync.RWMutex
	apiKey string
}

// New builds a Client. The zero Config is valid; missing fields take the
// documented defaults (§6.5).
func New(cfg Config) *Client {
	cfg = cfg.withDefaults()
	return &Client{
		http: &http.Client{Timeout: cfg.Timeout},
		cfg:  cfg,
	}
}

// SetAPIKey installs the credential obtained from the challenge/create-
// key flow. Concurrent reads are permitted; a set after a successful use
// happens-before any subsequent request (§5).
func (c *Client) SetAPIKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = key
}

// APIKey returns the currently configured credential, if any.
func (c *Client) APIKey() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey, c.apiKey != ""
}

func (c *Client) getAPIKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey
}

// Get issues an authenticated GET.
func (c *Client) Get(ctx context.Context, operation, path string, out any) error {
	return c.do(ctx, operation, http.MethodGet, path, nil, out, true)
}

// Post issues an authenticated POST with a JSON body.
func (c *Client) Post(ctx context.Context, operation, path string, body, out any) error {
	return c.do(ctx, operation, http.MethodPost, path, body, out, true)
}

// PostUnauthenticated issues a POST without a bearer credential, for the
// two auth endpoints that precede having one.
func (c *Client) PostUnauthenticated(ctx context.Context, operation, path string, body, out any) error {
	return c.do(ctx, operation, http.MethodPost, path, body, out, false)
}

// Patch issues an authenticated PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, operation, path string, body, out any) error {
	return c.do(ctx, operation, http.MethodPatch, path, body, out, true)
}

// Delete issues an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, operation, path string, out any) error {
	return c.do(ctx, operation, http.MethodDelete, path, nil, out, true)
}

func (c *Client) do(ctx context.Context, operation, method, path string, body, out any, needsAuth bool) error {
	var bodyBytes []byte
	var err error
	if body != nil {
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return &apierr.Decode{Operation: operation, Err: err}
		}
	}

	var apiKey string
	if needsAuth {
		apiKey = c.getAPIKey()
		if apiKey == "" {
			return &apierr.Auth{Operation: operation, Message: "API key not set; call create_challenge/create_api_key then SetAPIKey"}
		}
	}

	url := c.cfg.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return &apierr.Network{Operation: operation, Err: err}
	}
	req.Header.Set(APIVersionHeader, APIVersion)
	if bodyBytes != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if needsAuth {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	requestID := uuid.NewString()
	obs := c.cfg.Observer
	obs.ObserveRequest(RequestEvent{
		RequestID:   requestID,
		Method:      method,
		Path:        path,
		Headers:     redactHeaders(req.Header),
		HeaderCount: len(req.Header),
		BodySize:    len(bodyBytes),
		HasAuth:     needsAuth,
		Body:        RedactBody(bodyBytes),
	})

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		obs.ObserveResponse(ResponseEvent{RequestID: requestID, Method: method, Path: path, Duration: duration, Err: err})
		return &apierr.Network{Operation: operation, Err: err}
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		obs.ObserveResponse(ResponseEvent{RequestID: requestID, Method: method, Path: path, Status: resp.StatusCode, Duration: duration, Err: err})
		return &apierr.Network{Operation: operation, Err: err}
	}

	obs.ObserveResponse(ResponseEvent{
		RequestID: requestID,
		Method:    method,
		Path:      path,
		Status:    resp.StatusCode,
		Duration:  duration,
		Headers:   redactHeaders(resp.Header),
		BodySize:  len(respBytes),
		Body:      RedactBody(respBytes),
	})

	return classifyAndDecode(operation, resp.StatusCode, respBytes, out)
}

func classifyAndDecode(operation string, status int, body []byte, out any) error {
	switch {
	case status >= 200 && status < 300:
		if out == nil || len(body) == 0 {
			return nil
		}
		if err := json.Unmarshal(body, out); err != nil {
			return &apierr.Decode{Operation: operation, Err: err}
		}
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &apierr.Auth{Operation: operation, Message: errorMessage(body)}
	case status == http.StatusNotFound:
		return &apierr.NotFound{Entity: operation, NameOrID: "", Operation: operation, SearchedIn: errorMessage(body)}
	case status == http.StatusBadRequest:
		return &apierr.BadRequest{Operation: operation, Details: errorMessage(body)}
	case status >= 500:
		return &apierr.Server{Operation: operation, StatusCode: status, Message: errorMessage(body)}
	default:
		return &apierr.Server{Operation: operation, StatusCode: status, Message: errorMessage(body)}
	}
}

type apiErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Object  string `json:"object"`
	Status  int    `json:"status"`
}

func errorMessage(body []byte) string {
	var e apiErrorBody
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	if len(body) == 0 {
		return ""
	}
	return fmt.Sprintf("%s", string(body))
}
