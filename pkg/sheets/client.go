// Package sheets forwards contact submissions to a Google Apps Script
// webhook that appends them to a spreadsheet. Uses raw HTTP calls (no SDK)
// to minimize external dependencies.
package sheets

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

// Row is the payload appended to the spreadsheet.
type Row struct {
	Timestamp string `json:"timestamp"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	Source    string `json:"source"`
}

// Client forwards rows to the spreadsheet webhook.
type Client interface {
	// Append posts the row to the webhook. Returns ErrNotConfigured when no
	// webhook URL is set.
	Append(ctx context.Context, row Row) error
}

// ErrNotConfigured is returned when no webhook URL is configured.
var ErrNotConfigured = errors.New("sheets: not configured")

// RealClient posts rows to a Google Apps Script web app URL.
type RealClient struct {
	scriptURL  string
	httpClient *http.Client
}

// NewClient creates a RealClient for the given Apps Script URL.
// An empty URL yields a client whose Append returns ErrNotConfigured.
func NewClient(scriptURL string) *RealClient {
	return &RealClient{
		scriptURL: scriptURL,
		// A hung webhook must not hold the request open indefinitely;
		// expiry counts as a sink failure.
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

var _ Client = (*RealClient)(nil)

// Append posts the row as JSON to the Apps Script webhook.
// Apps Script answers 302 to a result page on success, so any status
// under 400 after redirects is treated as accepted.
func (c *RealClient) Append(ctx context.Context, row Row) error {
	if c.scriptURL == "" {
		return ErrNotConfigured
	}

	jsonBody, err := json.Marshal(row)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.scriptURL,
		bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		// Truncated body for diagnostics; Apps Script error pages are HTML.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sheets append: status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}
	return nil
}
