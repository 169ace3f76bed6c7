// Package postgrest implements the relational backend on top of a hosted
// PostgREST-compatible HTTP API such as Supabase.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/todolist/internal/store"
)

// Prefer header values understood by PostgREST.
const (
	preferRepresentation = "return=representation"
	preferMinimal        = "return=minimal"
)

// Client is a thin HTTP client for a PostgREST endpoint. It handles the
// apikey and Bearer headers, JSON marshaling and error decoding.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new PostgREST HTTP client. The baseURL is the root URL
// of the project (e.g., https://xyz.supabase.co); tables are served under
// /rest/v1. The apiKey is sent both as apikey and as a Bearer token.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// APIError is the error body PostgREST returns on non-2xx responses.
type APIError struct {
	Status    int    `json:"-"`
	RequestID string `json:"-"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   string `json:"details"`
	Hint      string `json:"hint"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Code != "" {
		return fmt.Sprintf("postgrest error %d (%s): %s", e.Status, e.Code, msg)
	}
	return fmt.Sprintf("postgrest error %d: %s", e.Status, msg)
}

// Unwrap maps unique violations onto store.ErrConflict so callers can use
// errors.Is regardless of backend.
func (e *APIError) Unwrap() error {
	if e.Code == "23505" || e.Status == http.StatusConflict {
		return store.ErrConflict
	}
	return nil
}

// do builds the request for q, sends body as JSON when non-nil and decodes
// the JSON response into result when non-nil.
func (c *Client) do(
	ctx context.Context,
	method string,
	q *Query,
	prefer string,
	body interface{},
	result interface{},
) error {
	reqURL := c.baseURL + q.Path()
	if enc := q.Values().Encode(); enc != "" {
		reqURL += "?" + enc
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("postgrest: %s %s failed (request %s): %v", method, q.table, requestID, err)
		return fmt.Errorf("executing request %s %s: %w", method, q.Path(), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, RequestID: requestID}
		if json.Unmarshal(respBody, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(respBody))
		}
		log.Printf("postgrest: %s %s returned %d (request %s): %s",
			method, q.table, resp.StatusCode, requestID, apiErr.Message)
		return apiErr
	}

	// No content to parse (e.g. 204).
	if result == nil || resp.StatusCode == http.StatusNoContent || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("unmarshaling response from %s %s: %w", method, q.Path(), err)
	}
	return nil
}
