// Package analytics is the fire-and-forget sink for structured request,
// response, and stream records. Recording never blocks or fails the main
// flow: the buffer drops on overflow and write errors are only logged.
package analytics

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"gopkg.in/natefinch/lumberjack.v2"
)

const bufferSize = 256

// Record is one analytics event, written as a single JSON line.
type Record struct {
	ID      string          `json:"id"`
	Time    string          `json:"time"`
	Kind    string          `json:"kind"`
	Fields  map[string]any  `json:"fields,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Sink writes records to a size-rotated JSONL file through a single worker.
// A nil *Sink is valid and discards everything.
type Sink struct {
	ch     chan Record
	out    *lumberjack.Logger
	done   chan struct{}
	closer sync.Once
}

// NewSink opens a sink writing to path. An empty path returns nil, which
// every method tolerates.
func NewSink(path string) *Sink {
	if path == "" {
		return nil
	}
	s := &Sink{
		ch: make(chan Record, bufferSize),
		out: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
			Compress:   true,
		},
		done: make(chan struct{}),
	}
	go s.run()
	return s
}

// Record enqueues an event with loose fields. Never blocks: when the buffer
// is full the record is dropped.
func (s *Sink) Record(kind string, fields map[string]any) {
	if s == nil {
		return
	}
	s.enqueue(Record{
		ID:     uuid.New().String(),
		Time:   time.Now().UTC().Format(time.RFC3339Nano),
		Kind:   kind,
		Fields: fields,
	})
}

// RecordPayload enqueues an event carrying a JSON payload, with inline file
// data redacted so raw document bytes never land in the analytics log.
func (s *Sink) RecordPayload(kind string, payload []byte, fields map[string]any) {
	if s == nil {
		return
	}
	s.enqueue(Record{
		ID:      uuid.New().String(),
		Time:    time.Now().UTC().Format(time.RFC3339Nano),
		Kind:    kind,
		Fields:  fields,
		Payload: json.RawMessage(redactFileData(payload)),
	})
}

// Close stops the worker after draining buffered records.
func (s *Sink) Close() {
	if s == nil {
		return
	}
	s.closer.Do(func() {
		close(s.ch)
		<-s.done
		s.out.Close()
	})
}

func (s *Sink) enqueue(rec Record) {
	select {
	case s.ch <- rec:
	default:
		// Buffer full; dropping is preferable to stalling a request.
	}
}

func (s *Sink) run() {
	defer close(s.done)
	for rec := range s.ch {
		line, err := json.Marshal(rec)
		if err != nil {
			continue
		}
		if _, err := fmt.Fprintf(s.out, "%s\n", line); err != nil {
			slog.Warn("analytics write failed", "error", err)
		}
	}
}

// redactFileData replaces inline base64 file payloads inside a request
// payload with a placeholder.
func redactFileData(payload []byte) []byte {
	out := payload
	gjson.GetBytes(payload, "input").ForEach(func(i, item gjson.Result) bool {
		item.Get("content").ForEach(func(j, part gjson.Result) bool {
			if part.Get("file_data").Exists() {
				path := fmt.Sprintf("input.%d.content.%d.file_data", i.Int(), j.Int())
				if replaced, err := sjson.SetBytes(out, path, "[redacted]"); err == nil {
					out = replaced
				}
			}
			return true
		})
		return true
	})
	return out
}
