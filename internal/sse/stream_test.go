package sse

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestStreamDrainsAllEvents(t *testing.T) {
	body := strings.Join([]string{
		`data: {"type":"response.created","sequence_number":0}`,
		`data: {"type":"response.output_text.delta","sequence_number":1,"delta":"a"}`,
		`data: {"type":"response.completed","sequence_number":2}`,
		`data: [DONE]`,
	}, "\n")

	var milestones atomic.Int64
	s := NewStream(context.Background(), io.NopCloser(strings.NewReader(body)), func(*Event) {
		milestones.Add(1)
	})

	var seen []string
	for evt := range s.Events() {
		seen = append(seen, evt.Type)
	}
	if err := s.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}
	want := []string{"response.created", "response.output_text.delta", "response.completed"}
	if len(seen) != len(want) {
		t.Fatalf("events: got %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("event %d: got %q, want %q", i, seen[i], want[i])
		}
	}
	if got := milestones.Load(); got != 2 {
		t.Errorf("milestone callbacks: got %d, want 2", got)
	}
}

func TestStreamContextCancelUnblocksRead(t *testing.T) {
	// A pipe with no writer activity models a stalled network read.
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	s := NewStream(ctx, pr, nil)

	cancel()

	select {
	case _, ok := <-s.Events():
		if ok {
			t.Fatal("expected no events after cancellation")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not terminate after context cancellation")
	}
	if !errors.Is(s.Err(), context.Canceled) {
		t.Errorf("Err: got %v, want context.Canceled", s.Err())
	}
}

func TestStreamCloseStopsProduction(t *testing.T) {
	pr, pw := io.Pipe()

	s := NewStream(context.Background(), pr, nil)
	go func() {
		pw.Write([]byte(`data: {"type":"response.created","sequence_number":0}` + "\n"))
	}()

	evt, ok := <-s.Events()
	if !ok || evt.Type != "response.created" {
		t.Fatalf("first event: got %v ok=%v", evt, ok)
	}

	s.Close()
	pw.Close()

	select {
	case _, ok := <-s.Events():
		if ok {
			t.Fatal("expected the channel to close after Close")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not terminate after Close")
	}
}

func TestStreamCleanEndLeavesNilErr(t *testing.T) {
	s := NewStream(context.Background(), io.NopCloser(strings.NewReader("data: [DONE]\n")), nil)
	for range s.Events() {
	}
	if err := s.Err(); err != nil {
		t.Errorf("Err: got %v, want nil on clean end", err)
	}
}
