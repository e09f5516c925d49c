package transport

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/skel-ai/go-responder/internal/apierr"
	"github.com/tidwall/gjson"
)

// defaultRetryAfter is the assumed delay, in seconds, when a rate-limit
// response carries no usable retry-after header.
const defaultRetryAfter = 60

// statusError maps a non-success HTTP outcome onto the error taxonomy.
// 429 is special-cased to carry the server-indicated retry delay; every
// other status surfaces as a generic request failure.
func (c *Client) statusError(status int, headers http.Header, body []byte) error {
	message := extractErrorMessage(body, status)
	if status == http.StatusTooManyRequests {
		return &apierr.RateLimitedError{
			RetryAfter: parseRetryAfter(headers.Get("retry-after")),
			Message:    message,
		}
	}
	return &apierr.RequestFailedError{StatusCode: status, Message: message}
}

// parseRetryAfter reads the header as integer seconds, defaulting when the
// header is absent or unparseable.
func parseRetryAfter(value string) int {
	v := strings.TrimSpace(value)
	if v == "" {
		return defaultRetryAfter
	}
	seconds, err := strconv.Atoi(v)
	if err != nil || seconds <= 0 {
		return defaultRetryAfter
	}
	return seconds
}

// extractErrorMessage pulls the structured {error:{message}} out of an
// error body, trying the common fallback spellings before giving up and
// using the status text.
func extractErrorMessage(body []byte, status int) string {
	for _, path := range []string{"error.message", "message", "detail", "error"} {
		if v := gjson.GetBytes(body, path); v.Type == gjson.String && strings.TrimSpace(v.String()) != "" {
			return strings.TrimSpace(v.String())
		}
	}
	if preview := compactBodyPreview(body, 280); preview != "" {
		return preview
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "unknown error"
}

func compactBodyPreview(body []byte, maxLen int) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}
	clean := strings.Join(strings.Fields(trimmed), " ")
	if len(clean) <= maxLen {
		return clean
	}
	return clean[:maxLen] + "..."
}

// responseIDPattern is the accepted shape for response identifiers used to
// build URLs.
var responseIDPattern = regexp.MustCompile(`^resp_[A-Za-z0-9_-]+$`)

// validateResponseID rejects identifiers that would produce a nonsensical
// or unsafe URL path.
func validateResponseID(id string) error {
	if !responseIDPattern.MatchString(id) {
		return &apierr.InvalidRequestArgumentError{Message: "malformed response id: " + strconv.Quote(id)}
	}
	return nil
}
