package sse

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestReaderDecodesEventsInOrder(t *testing.T) {
	body := strings.Join([]string{
		`data: {"type":"response.created","sequence_number":0}`,
		``,
		`data: {"type":"response.output_text.delta","sequence_number":1,"delta":"hi"}`,
		``,
		`data: [DONE]`,
		``,
	}, "\n")

	r := NewReader(strings.NewReader(body))

	first, err := r.Next()
	if err != nil {
		t.Fatalf("first Next: %v", err)
	}
	if first.Type != "response.created" || first.SequenceNumber != 0 {
		t.Errorf("first event: got %+v", first)
	}

	second, err := r.Next()
	if err != nil {
		t.Fatalf("second Next: %v", err)
	}
	if second.Type != "response.output_text.delta" || second.SequenceNumber != 1 {
		t.Errorf("second event: got %+v", second)
	}
	if delta, _ := second.Data["delta"].(string); delta != "hi" {
		t.Errorf("delta: got %q", delta)
	}

	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("after sentinel: got %v, want io.EOF", err)
	}
}

func TestReaderSkipsMalformedFrames(t *testing.T) {
	body := strings.Join([]string{
		`data: {"type":"response.created","sequence_number":0}`,
		`data: {not json at all`,
		`data: {"type":"response.completed","sequence_number":2}`,
	}, "\n")

	r := NewReader(strings.NewReader(body))

	first, err := r.Next()
	if err != nil {
		t.Fatalf("first Next: %v", err)
	}
	if first.Type != "response.created" {
		t.Errorf("first event: got %q", first.Type)
	}

	second, err := r.Next()
	if err != nil {
		t.Fatalf("second Next: %v", err)
	}
	if second.Type != "response.completed" {
		t.Errorf("second event: got %q, want the malformed frame skipped", second.Type)
	}
	if r.Skipped() != 1 {
		t.Errorf("skipped: got %d, want 1", r.Skipped())
	}
}

func TestReaderSkipAndSentinelTogether(t *testing.T) {
	body := strings.Join([]string{
		`data: {"type":"a","sequence_number":1}`,
		`data: not-json`,
		`data: {"type":"b","sequence_number":2}`,
		`data: [DONE]`,
		`data: {"type":"c","sequence_number":3}`,
	}, "\n")

	r := NewReader(strings.NewReader(body))
	var seen []string
	for {
		evt, err := r.Next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				t.Fatalf("Next: %v", err)
			}
			break
		}
		seen = append(seen, evt.Type)
	}
	if len(seen) != 2 || seen[0] != "a" || seen[1] != "b" {
		t.Errorf("events: got %v, want [a b]", seen)
	}
}

func TestReaderNothingAfterDone(t *testing.T) {
	body := strings.Join([]string{
		`data: [DONE]`,
		`data: {"type":"response.created","sequence_number":0}`,
	}, "\n")

	r := NewReader(strings.NewReader(body))
	for i := 0; i < 3; i++ {
		if _, err := r.Next(); !errors.Is(err, io.EOF) {
			t.Fatalf("call %d: got %v, want io.EOF", i, err)
		}
	}
}

func TestReaderIgnoresNonDataLines(t *testing.T) {
	body := strings.Join([]string{
		`event: message`,
		`: keepalive comment`,
		`data: {"type":"response.created","sequence_number":0}`,
	}, "\n")

	r := NewReader(strings.NewReader(body))
	evt, err := r.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if evt.Type != "response.created" {
		t.Errorf("event: got %q", evt.Type)
	}
	if r.Skipped() != 0 {
		t.Errorf("skipped: got %d, non-data lines are not malformed frames", r.Skipped())
	}
}

func TestReaderNaturalEnd(t *testing.T) {
	r := NewReader(strings.NewReader(`data: {"type":"response.created"}` + "\n"))
	if _, err := r.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("end of input: got %v, want io.EOF", err)
	}
}

func TestEventIsMilestone(t *testing.T) {
	tests := []struct {
		typ  string
		want bool
	}{
		{"response.created", true},
		{"response.completed", true},
		{"response.failed", true},
		{"response.output_text.delta", false},
		{"", false},
	}
	for _, tt := range tests {
		e := &Event{Type: tt.typ}
		if got := e.IsMilestone(); got != tt.want {
			t.Errorf("IsMilestone(%q) = %v, want %v", tt.typ, got, tt.want)
		}
	}
}
