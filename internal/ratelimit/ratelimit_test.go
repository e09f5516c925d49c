package ratelimit

import (
	"net/http"
	"path/filepath"
	"testing"
)

func makeHeaders(pairs ...string) http.Header {
	h := make(http.Header)
	for i := 0; i+1 < len(pairs); i += 2 {
		h.Set(pairs[i], pairs[i+1])
	}
	return h
}

func TestParseHeadersBothWindows(t *testing.T) {
	h := makeHeaders(
		"x-ratelimit-limit-requests", "500",
		"x-ratelimit-remaining-requests", "499",
		"x-ratelimit-reset-requests", "120ms",
		"x-ratelimit-limit-tokens", "30000",
		"x-ratelimit-remaining-tokens", "29500",
		"x-ratelimit-reset-tokens", "1s",
	)

	snap := ParseHeaders(h)
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Requests == nil || snap.Tokens == nil {
		t.Fatalf("expected both windows, got %+v", snap)
	}
	if snap.Requests.Limit != 500 || snap.Requests.Remaining != 499 || snap.Requests.Reset != "120ms" {
		t.Errorf("requests window: got %+v", snap.Requests)
	}
	if snap.Tokens.Remaining != 29500 {
		t.Errorf("tokens window: got %+v", snap.Tokens)
	}
	if snap.CapturedAt.IsZero() {
		t.Error("expected a capture timestamp")
	}
}

func TestParseHeadersMissingTokens(t *testing.T) {
	h := makeHeaders("x-ratelimit-remaining-requests", "10")

	snap := ParseHeaders(h)
	if snap == nil {
		t.Fatal("expected non-nil snapshot (requests present)")
	}
	if snap.Requests == nil {
		t.Error("expected non-nil requests window")
	}
	if snap.Tokens != nil {
		t.Errorf("expected nil tokens window, got %+v", snap.Tokens)
	}
}

func TestParseHeadersNonePresent(t *testing.T) {
	h := makeHeaders("Content-Type", "application/json")
	if snap := ParseHeaders(h); snap != nil {
		t.Errorf("expected nil snapshot, got %+v", snap)
	}
}

func TestParseHeadersUnparseableRemaining(t *testing.T) {
	h := makeHeaders("x-ratelimit-remaining-requests", "lots")
	if snap := ParseHeaders(h); snap != nil {
		t.Errorf("expected nil snapshot for unparseable value, got %+v", snap)
	}
}

func TestRecordAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rate_limits.json")
	origPath := snapshotPath
	snapshotPath = func() string { return path }
	defer func() { snapshotPath = origPath }()

	RecordFromResponse(makeHeaders(
		"x-ratelimit-limit-requests", "100",
		"x-ratelimit-remaining-requests", "42",
		"x-ratelimit-reset-requests", "6m30s",
	))

	snap := LoadSnapshot()
	if snap == nil {
		t.Fatal("expected a stored snapshot")
	}
	if snap.Requests == nil || snap.Requests.Remaining != 42 || snap.Requests.Reset != "6m30s" {
		t.Errorf("requests window: got %+v", snap.Requests)
	}
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	origPath := snapshotPath
	snapshotPath = func() string { return filepath.Join(t.TempDir(), "missing.json") }
	defer func() { snapshotPath = origPath }()

	if snap := LoadSnapshot(); snap != nil {
		t.Errorf("expected nil snapshot, got %+v", snap)
	}
}

func TestRecordNoHeadersWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rate_limits.json")
	origPath := snapshotPath
	snapshotPath = func() string { return path }
	defer func() { snapshotPath = origPath }()

	RecordFromResponse(makeHeaders("Content-Type", "text/plain"))
	if snap := LoadSnapshot(); snap != nil {
		t.Errorf("expected no snapshot file, got %+v", snap)
	}
}
