// Package sse decodes the newline-delimited event stream of the Responses
// API into typed events. Individual malformed frames are skipped, never
// fatal; the [DONE] sentinel ends the stream regardless of what follows.
package sse

import (
	"bufio"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
)

const (
	dataPrefix   = "data: "
	doneSentinel = "[DONE]"
)

// Reader pulls decoded events off an incoming line stream. It is
// forward-only and not restartable: re-issuing the request starts a fresh
// decode. Not safe for concurrent use.
type Reader struct {
	scanner *bufio.Scanner
	done    bool
	skipped int
}

// NewReader creates a Reader over the raw byte stream.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 256*1024), 1024*1024)
	return &Reader{scanner: scanner}
}

// Next returns the next decoded event. It returns io.EOF once the [DONE]
// sentinel or the natural end of the stream is reached; after that it never
// yields again, regardless of buffered input. Lines without the data prefix
// are ignored; frames that fail to decode are logged and skipped.
func (r *Reader) Next() (*Event, error) {
	if r.done {
		return nil, io.EOF
	}
	for r.scanner.Scan() {
		line := r.scanner.Text()
		if !strings.HasPrefix(line, dataPrefix) {
			continue
		}
		data := strings.TrimSpace(line[len(dataPrefix):])
		if data == "" {
			continue
		}
		if data == doneSentinel {
			r.done = true
			return nil, io.EOF
		}
		var parsed map[string]any
		if err := json.Unmarshal([]byte(data), &parsed); err != nil {
			r.skipped++
			slog.Debug("skipping undecodable stream frame", "error", err, "skipped_total", r.skipped)
			continue
		}
		eventType, _ := parsed["type"].(string)
		return &Event{
			Type:           eventType,
			SequenceNumber: sequenceNumber(parsed),
			Raw:            json.RawMessage(data),
			Data:           parsed,
		}, nil
	}
	r.done = true
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// Skipped reports how many frames failed to decode and were dropped.
func (r *Reader) Skipped() int {
	return r.skipped
}

func sequenceNumber(parsed map[string]any) int64 {
	switch n := parsed["sequence_number"].(type) {
	case float64:
		return int64(n)
	case json.Number:
		v, _ := n.Int64()
		return v
	}
	return 0
}
