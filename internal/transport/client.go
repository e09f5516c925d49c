// Package transport issues Responses API calls: it applies the status-code
// policy, decodes whole bodies for non-streaming calls, and hands byte
// streams to the SSE decoder for streaming ones. It never retries; rate
// limits are surfaced with their delay for the caller to schedule.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/skel-ai/go-responder/internal/analytics"
	"github.com/skel-ai/go-responder/internal/apierr"
	"github.com/skel-ai/go-responder/internal/credstore"
	"github.com/skel-ai/go-responder/internal/ratelimit"
	"github.com/skel-ai/go-responder/internal/sse"
	"github.com/skel-ai/go-responder/internal/types"
)

const (
	// requestTimeout is generous to tolerate long model generations on
	// both streaming and non-streaming calls.
	requestTimeout = 2 * time.Minute
	// metadataTimeout covers get/delete/cancel calls that return no
	// generated content.
	metadataTimeout = 30 * time.Second
)

// Client makes requests against a Responses-style endpoint.
type Client struct {
	baseURL string
	creds   credstore.Store
	sink    *analytics.Sink
	verbose bool

	httpClient *http.Client
	metaClient *http.Client
}

// NewClient creates a transport client with its collaborators injected.
func NewClient(baseURL string, creds credstore.Store, sink *analytics.Sink, verbose bool) *Client {
	return &Client{
		baseURL:    baseURL,
		creds:      creds,
		sink:       sink,
		verbose:    verbose,
		httpClient: &http.Client{Timeout: requestTimeout},
		metaClient: &http.Client{Timeout: metadataTimeout},
	}
}

// Create sends a non-streaming request and decodes the full body once.
func (c *Client) Create(ctx context.Context, payload *types.RequestPayload) (*types.Response, error) {
	resp, err := c.post(ctx, payload, "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.statusError(resp.StatusCode, resp.Header, body)
	}

	var decoded types.Response
	if err := json.Unmarshal(body, &decoded); err != nil || decoded.ID == "" {
		return nil, fmt.Errorf("%w: %v", apierr.ErrInvalidResponseBody, err)
	}

	c.sink.Record("response", map[string]any{
		"response_id": decoded.ID,
		"status":      decoded.Status,
		"model":       decoded.Model,
	})
	return &decoded, nil
}

// CreateStream sends a streaming request and returns the decoded event
// stream. Closing the stream closes the underlying connection.
func (c *Client) CreateStream(ctx context.Context, payload *types.RequestPayload) (*sse.Stream, error) {
	resp, err := c.post(ctx, payload, "text/event-stream")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, c.statusError(resp.StatusCode, resp.Header, body)
	}

	return sse.NewStream(ctx, resp.Body, func(evt *sse.Event) {
		c.sink.Record("stream_event", map[string]any{
			"type":     evt.Type,
			"sequence": evt.SequenceNumber,
		})
	}), nil
}

// GetResponse fetches a stored response by identifier. Metadata timeout.
func (c *Client) GetResponse(ctx context.Context, id string) (*types.Response, error) {
	if err := validateResponseID(id); err != nil {
		return nil, err
	}
	body, err := c.metadataCall(ctx, http.MethodGet, "/responses/"+id)
	if err != nil {
		return nil, err
	}
	var decoded types.Response
	if err := json.Unmarshal(body, &decoded); err != nil || decoded.ID == "" {
		return nil, fmt.Errorf("%w: %v", apierr.ErrInvalidResponseBody, err)
	}
	return &decoded, nil
}

// DeleteResponse removes a stored response by identifier.
func (c *Client) DeleteResponse(ctx context.Context, id string) error {
	if err := validateResponseID(id); err != nil {
		return err
	}
	_, err := c.metadataCall(ctx, http.MethodDelete, "/responses/"+id)
	return err
}

// CancelResponse cancels an in-flight background response.
func (c *Client) CancelResponse(ctx context.Context, id string) (*types.Response, error) {
	if err := validateResponseID(id); err != nil {
		return nil, err
	}
	body, err := c.metadataCall(ctx, http.MethodPost, "/responses/"+id+"/cancel")
	if err != nil {
		return nil, err
	}
	var decoded types.Response
	if err := json.Unmarshal(body, &decoded); err != nil || decoded.ID == "" {
		return nil, fmt.Errorf("%w: %v", apierr.ErrInvalidResponseBody, err)
	}
	return &decoded, nil
}

// post issues the compose-produced payload. Credential absence fails fast,
// before any network I/O.
func (c *Client) post(ctx context.Context, payload *types.RequestPayload, accept string) (*http.Response, error) {
	token, err := c.creds.BearerToken()
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	if c.verbose {
		slog.Info("request",
			"model", payload.Model,
			"input_items", len(payload.Input),
			"tools", len(payload.Tools),
			"include_count", len(payload.Include),
			"stream", payload.Stream != nil && *payload.Stream,
			"previous_response_id", payload.PreviousResponseID,
		)
	}
	c.sink.RecordPayload("request", body, map[string]any{"model": payload.Model})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", accept)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	ratelimit.RecordFromResponse(resp.Header)
	if c.verbose {
		slog.Info("response", "status", resp.StatusCode)
	}
	return resp, nil
}

func (c *Client) metadataCall(ctx context.Context, method, path string) ([]byte, error) {
	token, err := c.creds.BearerToken()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.metaClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.statusError(resp.StatusCode, resp.Header, body)
	}
	return body, nil
}
