package sse

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
)

// Stream is a cancellable event sequence over a live response body. A single
// producer goroutine decodes frames and pushes them to the consumer, which
// pulls at its own pace; production suspends naturally at the network-read
// boundary. Closing the stream (or cancelling the context) closes the
// underlying connection and halts further decode attempts.
type Stream struct {
	events      chan *Event
	body        io.ReadCloser
	onMilestone func(*Event)

	mu        sync.Mutex
	err       error
	closeOnce sync.Once
}

// NewStream starts decoding the body and returns the stream. The caller
// must drain Events or call Close. onMilestone, when non-nil, is invoked
// for milestone events in addition to the diagnostic log line; it must not
// block.
func NewStream(ctx context.Context, body io.ReadCloser, onMilestone func(*Event)) *Stream {
	s := &Stream{
		events:      make(chan *Event),
		body:        body,
		onMilestone: onMilestone,
	}
	go s.run(ctx)
	return s
}

// Events is the channel of decoded events. It is closed when the stream
// ends, fails, or is cancelled; check Err afterwards.
func (s *Stream) Events() <-chan *Event {
	return s.events
}

// Err reports the terminal error, if any, once Events is closed. A normal
// end of stream (sentinel or connection close) leaves it nil.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close abandons the stream: the underlying connection is closed and any
// partially buffered bytes are discarded. Safe to call more than once.
func (s *Stream) Close() {
	s.closeOnce.Do(func() {
		s.body.Close()
	})
}

func (s *Stream) run(ctx context.Context) {
	defer close(s.events)
	defer s.Close()

	// Closing the body unblocks the scanner when the context is cancelled
	// mid network read.
	stop := context.AfterFunc(ctx, s.Close)
	defer stop()

	reader := NewReader(s.body)
	for {
		evt, err := reader.Next()
		if err != nil {
			switch {
			case ctx.Err() != nil:
				s.setErr(ctx.Err())
			case !errors.Is(err, io.EOF):
				s.setErr(err)
			}
			return
		}
		if evt.IsMilestone() {
			slog.Info("stream event", "type", evt.Type, "sequence", evt.SequenceNumber)
			if s.onMilestone != nil {
				s.onMilestone(evt)
			}
		}
		select {
		case s.events <- evt:
		case <-ctx.Done():
			s.setErr(ctx.Err())
			return
		}
	}
}

func (s *Stream) setErr(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
}
