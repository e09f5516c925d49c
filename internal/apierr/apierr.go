// Package apierr defines the error taxonomy shared by the transport layer
// and the credential store. Callers branch on these types to decide between
// credential setup, retry countdown, and generic failure surfaces.
package apierr

import (
	"errors"
	"fmt"
)

// ErrMissingCredential signals that no bearer token is available.
// It is returned before any network I/O happens.
var ErrMissingCredential = errors.New("no credentials available; run 'responder login' first")

// ErrInvalidResponseBody signals a success-status body that could not be decoded.
var ErrInvalidResponseBody = errors.New("invalid response body")

// RequestFailedError is any non-2xx, non-429 HTTP outcome.
type RequestFailedError struct {
	StatusCode int
	Message    string
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("request failed with HTTP %d: %s", e.StatusCode, e.Message)
}

// RateLimitedError is a 429 outcome carrying the server-indicated retry delay.
// The client never retries on its own; callers schedule their own retry no
// earlier than RetryAfter seconds from now.
type RateLimitedError struct {
	RetryAfter int // seconds
	Message    string
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry after %ds: %s", e.RetryAfter, e.Message)
}

// InvalidRequestArgumentError is a malformed caller-supplied value that would
// produce a nonsensical request, such as a response identifier used in a URL.
type InvalidRequestArgumentError struct {
	Message string
}

func (e *InvalidRequestArgumentError) Error() string {
	return "invalid request argument: " + e.Message
}
