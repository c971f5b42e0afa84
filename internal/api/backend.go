package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"
)

const backendRequestTimeout = 30 * time.Second

// Backend is the client for the general VoiceAI backend: auth, usage
// limits, generation history, voice cloning and payment. The session is
// carried in a credentialed cookie, so all calls share one cookie jar.
type Backend struct {
	baseURL    string
	httpClient *http.Client
}

// creates a backend client rooted at baseURL (including the /api prefix)
func NewBackend(baseURL string) *Backend {
	jar, err := cookiejar.New(nil)
	if err != nil {
		// cookiejar.New with nil options never fails
		panic(err)
	}

	return &Backend{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: backendRequestTimeout,
			Jar:     jar,
		},
	}
}

// sends a JSON request and decodes the JSON response into out. A nil
// payload sends an empty body; a nil out discards the response.
func (c *Backend) doJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// sends a prepared request, mapping transport failures and error
// statuses onto the client error taxonomy
func (c *Backend) send(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UnreachableError{Service: ServiceBackend, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return rejectionFromBody(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
