// Package client implements the marketplace client core: the HTTP API
// client, the local catalog mirror, the projection engine that derives the
// displayed sequence, and the reconciliation poller that keeps the mirror
// fresh.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"trznica/internal/model"
)

// TransportError is a network or server failure during an API call.
// Submission flows surface it with a retry invitation; background polls
// swallow it.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Client talks to the listing API. Each client carries a session ID so
// server logs can tell concurrently polling clients apart.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessionID  string
}

// New creates a client for the server at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		sessionID:  uuid.NewString(),
	}
}

// SessionID returns the client's session identifier.
func (c *Client) SessionID() string { return c.sessionID }

// List fetches the full catalog, newest first.
func (c *Client) List(ctx context.Context) ([]model.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/items", nil)
	if err != nil {
		return nil, &TransportError{Op: "list items", Err: err}
	}
	req.Header.Set("X-Client-ID", c.sessionID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "list items", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Op: "list items", Status: resp.StatusCode}
	}

	var items []model.Item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, &TransportError{Op: "list items", Err: fmt.Errorf("decoding response: %w", err)}
	}
	return items, nil
}

// Create submits a new listing. A 400 response is returned as a
// *model.ValidationError carrying the server's message verbatim; other
// failures are transport errors.
func (c *Client) Create(ctx context.Context, sub model.Submission) (model.Item, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return model.Item{}, &TransportError{Op: "create item", Err: fmt.Errorf("encoding request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/items", bytes.NewReader(body))
	if err != nil {
		return model.Item{}, &TransportError{Op: "create item", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-ID", c.sessionID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Item{}, &TransportError{Op: "create item", Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		var item model.Item
		if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
			return model.Item{}, &TransportError{Op: "create item", Err: fmt.Errorf("decoding response: %w", err)}
		}
		return item, nil

	case http.StatusBadRequest:
		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
			return model.Item{}, &model.ValidationError{Message: "missing required fields"}
		}
		return model.Item{}, &model.ValidationError{Message: errResp.Error}

	default:
		return model.Item{}, &TransportError{Op: "create item", Status: resp.StatusCode}
	}
}

// IsValidation reports whether err is a client-correctable validation
// rejection rather than a transport failure.
func IsValidation(err error) bool {
	var verr *model.ValidationError
	return errors.As(err, &verr)
}
