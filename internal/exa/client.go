// Package exa is a small client for the Exa Websets API.
package exa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// DefaultBaseURL is the public Exa API endpoint.
const DefaultBaseURL = "https://api.exa.ai"

// ExpandItems asks the upstream to inline the webset's items.
const ExpandItems = "items"

// maxErrorBody caps how much of a failed response is kept in APIError.
const maxErrorBody = 4 << 10

// APIError is returned when the upstream answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("exa: status %d", e.StatusCode)
	}
	return fmt.Sprintf("exa: status %d: %s", e.StatusCode, e.Message)
}

// Client talks to the Exa Websets API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient returns a Client for baseURL. A zero timeout leaves requests
// bounded only by their context.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// GetWebset fetches the current state of a webset. expand lists the
// collections to inline, e.g. ExpandItems.
func (c *Client) GetWebset(ctx context.Context, id string, expand ...string) (*Webset, error) {
	u := c.baseURL + "/websets/v0/websets/" + url.PathEscape(id)
	if len(expand) > 0 {
		q := url.Values{}
		for _, e := range expand {
			q.Add("expand", e)
		}
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "get webset %s", id)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	var ws Webset
	if err := json.NewDecoder(resp.Body).Decode(&ws); err != nil {
		return nil, errors.Wrapf(err, "decode webset %s", id)
	}
	return &ws, nil
}

// errorMessage extracts the upstream error text, preferring the JSON
// "error" or "message" member over the raw body.
func errorMessage(r io.Reader) string {
	body, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(string(body))
}
