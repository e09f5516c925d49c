package types

// Response is the decoded body of a non-streaming Responses call
// (and of the response object embedded in completion events).
type Response struct {
	ID                 string         `json:"id"`
	Object             string         `json:"object,omitempty"`
	CreatedAt          int64          `json:"created_at,omitempty"`
	Status             string         `json:"status,omitempty"`
	Model              string         `json:"model,omitempty"`
	Output             []OutputItem   `json:"output,omitempty"`
	Usage              *Usage         `json:"usage,omitempty"`
	PreviousResponseID string         `json:"previous_response_id,omitempty"`
	Error              *ResponseError `json:"error,omitempty"`
}

// OutputItem is one item of the response output array.
type OutputItem struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Role    string          `json:"role,omitempty"`
	Status  string          `json:"status,omitempty"`
	Content []OutputContent `json:"content,omitempty"`

	// function_call
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`
	CallID    string `json:"call_id,omitempty"`
}

// OutputContent is one content part of an output message.
type OutputContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// OutputText concatenates every output_text part across output messages.
func (r *Response) OutputText() string {
	var out string
	for _, item := range r.Output {
		if item.Type != "message" {
			continue
		}
		for _, c := range item.Content {
			if c.Type == "output_text" {
				out += c.Text
			}
		}
	}
	return out
}

// Usage reports token accounting for a completed response.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// ResponseError is the error object embedded in a failed response.
type ResponseError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the standard error envelope returned on non-2xx statuses.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the upstream error fields.
type ErrorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
	Code    string `json:"code,omitempty"`
}
