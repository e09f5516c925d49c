package sse

import "encoding/json"

// Event is a single decoded stream event.
type Event struct {
	Type           string
	SequenceNumber int64
	Raw            json.RawMessage
	Data           map[string]any
}

// milestoneEvents are the event types eligible for structured diagnostic
// logging. Every successfully decoded event is yielded regardless of type;
// this set only decides which ones get a log line.
var milestoneEvents = map[string]bool{
	"response.created":                           true,
	"response.completed":                         true,
	"response.failed":                            true,
	"response.incomplete":                        true,
	"response.image_generation_call.completed":   true,
	"response.web_search_call.completed":         true,
	"response.file_search_call.completed":        true,
	"response.code_interpreter_call.completed":   true,
	"response.computer_call.completed":           true,
	"response.mcp_call.completed":                true,
}

// IsMilestone reports whether the event type marks a creation, completion,
// or failure boundary worth a diagnostic log line.
func (e *Event) IsMilestone() bool {
	return milestoneEvents[e.Type]
}
