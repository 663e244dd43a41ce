package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Upstream is the shared HTTP client for the remote commerce API. The
// anonymous cart upstream is keyed by a session_id cookie, so every request
// carries the caller's session id.
type Upstream struct {
	baseURL    string
	httpClient *http.Client
}

func NewUpstream(baseURL string, timeout time.Duration) *Upstream {
	return &Upstream{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// StockError reports a rejected cart mutation: the requested quantity
// exceeds what the server has. Available is -1 when the server did not state
// a number.
type StockError struct {
	Available int
	Requested int
}

func (e *StockError) Error() string {
	if e.Available >= 0 {
		return fmt.Sprintf("insufficient stock: only %d pieces available", e.Available)
	}
	return "insufficient stock"
}

// UpstreamError is any non-stock failure response from the remote API.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Message)
}

type apiError struct {
	Detail    string `json:"detail"`
	Message   string `json:"message"`
	Available int    `json:"available"`
}

func (u *Upstream) doJSON(ctx context.Context, method, path, sessionID string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: "session_id", Value: sessionID})
	}

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call upstream: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return classifyError(resp.StatusCode, raw)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}

func classifyError(status int, raw []byte) error {
	var ae apiError
	_ = json.Unmarshal(raw, &ae)
	msg := ae.Detail
	if msg == "" {
		msg = ae.Message
	}
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}

	if status == http.StatusBadRequest && isStockMessage(msg, ae.Available) {
		avail := ae.Available
		if avail == 0 {
			avail = parseAvailable(msg)
		}
		return &StockError{Available: avail}
	}
	return &UpstreamError{StatusCode: status, Message: msg}
}

// isStockMessage decides whether a 400 is a stock shortfall. Mentioning
// availability alone is not enough ("color not available" is plain
// validation); the message must talk about stock or state a count, like
// "Only 8 pieces available".
func isStockMessage(msg string, available int) bool {
	if available > 0 {
		return true
	}
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "stock") {
		return true
	}
	return strings.Contains(lower, "available") && parseAvailable(msg) >= 0
}

// parseAvailable pulls the quantity out of messages like
// "Only 8 pieces available". Returns -1 when no number is present.
func parseAvailable(msg string) int {
	for _, field := range strings.Fields(msg) {
		if n, err := strconv.Atoi(field); err == nil && n >= 0 {
			return n
		}
	}
	return -1
}
