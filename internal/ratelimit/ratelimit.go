// Package ratelimit captures the x-ratelimit-* response headers so the CLI
// can show current quota standing without an extra API call. Recording is
// best-effort; failures never affect the request path.
package ratelimit

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/skel-ai/go-responder/internal/credstore"
)

const snapshotFilename = "rate_limits.json"

// Window is the standing of one quota dimension (requests or tokens).
type Window struct {
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	Reset     string `json:"reset,omitempty"` // duration string as sent by the server
}

// Snapshot holds the most recently observed quota windows.
type Snapshot struct {
	CapturedAt time.Time `json:"captured_at"`
	Requests   *Window   `json:"requests,omitempty"`
	Tokens     *Window   `json:"tokens,omitempty"`
}

// snapshotPath is a function variable so tests can override the location.
var snapshotPath = func() string {
	return filepath.Join(credstore.HomeDir(), snapshotFilename)
}

// ParseHeaders extracts the rate limit windows from response headers.
// Returns nil when no rate limit headers are present.
func ParseHeaders(headers http.Header) *Snapshot {
	requests := parseWindow(headers,
		"x-ratelimit-limit-requests",
		"x-ratelimit-remaining-requests",
		"x-ratelimit-reset-requests",
	)
	tokens := parseWindow(headers,
		"x-ratelimit-limit-tokens",
		"x-ratelimit-remaining-tokens",
		"x-ratelimit-reset-tokens",
	)
	if requests == nil && tokens == nil {
		return nil
	}
	return &Snapshot{CapturedAt: time.Now().UTC(), Requests: requests, Tokens: tokens}
}

func parseWindow(headers http.Header, limitKey, remainingKey, resetKey string) *Window {
	remainingStr := headers.Get(remainingKey)
	if remainingStr == "" {
		return nil
	}
	remaining, err := strconv.Atoi(remainingStr)
	if err != nil {
		return nil
	}
	w := &Window{Remaining: remaining, Reset: headers.Get(resetKey)}
	if v := headers.Get(limitKey); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			w.Limit = limit
		}
	}
	return w
}

// RecordFromResponse persists the snapshot found in the headers, if any.
func RecordFromResponse(headers http.Header) {
	snapshot := ParseHeaders(headers)
	if snapshot == nil {
		return
	}
	dir := filepath.Dir(snapshotPath())
	_ = os.MkdirAll(dir, 0o700)
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(snapshotPath(), data, 0o600)
}

// LoadSnapshot reads the stored snapshot, or nil when none exists.
func LoadSnapshot() *Snapshot {
	data, err := os.ReadFile(snapshotPath())
	if err != nil {
		return nil
	}
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil
	}
	return &snapshot
}
