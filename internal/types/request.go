package types

// RequestPayload is the full request body for the Responses endpoint.
// Optional fields are pointers or omitempty values so that "absent" and
// "explicitly null/zero" can never be confused on the wire: a field appears
// only when the composer decided it is supported and enabled.
type RequestPayload struct {
	Model        string `json:"model"`
	Store        *bool  `json:"store,omitempty"`
	Instructions string `json:"instructions,omitempty"`

	Stream        *bool          `json:"stream,omitempty"`
	StreamOptions *StreamOptions `json:"stream_options,omitempty"`

	Input []InputItem `json:"input,omitempty"`
	Tools []Tool      `json:"tools,omitempty"`

	Include []string `json:"include,omitempty"`

	Temperature       *float64          `json:"temperature,omitempty"`
	TopP              *float64          `json:"top_p,omitempty"`
	MaxOutputTokens   *int              `json:"max_output_tokens,omitempty"`
	TopLogprobs       *int              `json:"top_logprobs,omitempty"`
	ParallelToolCalls *bool             `json:"parallel_tool_calls,omitempty"`
	Truncation        string            `json:"truncation,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`

	Reasoning *ReasoningParam `json:"reasoning,omitempty"`

	PreviousResponseID string `json:"previous_response_id,omitempty"`
	Background         *bool  `json:"background,omitempty"`

	// ToolChoice is either a mode string ("auto", "none", "required")
	// or a structured tool selector object.
	ToolChoice any `json:"tool_choice,omitempty"`

	Text   *TextConfig `json:"text,omitempty"`
	Prompt *PromptRef  `json:"prompt,omitempty"`

	PromptCacheKey string `json:"prompt_cache_key,omitempty"`
}

// StreamOptions carries per-stream behavior switches.
type StreamOptions struct {
	IncludeObfuscation bool `json:"include_obfuscation"`
}

// ReasoningParam configures reasoning behavior for reasoning-capable models.
type ReasoningParam struct {
	Effort  string `json:"effort,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// TextConfig wraps the structured-output format specification.
type TextConfig struct {
	Format *TextFormat `json:"format,omitempty"`
}

// TextFormat names a JSON schema the model output must conform to.
type TextFormat struct {
	Type   string `json:"type"`
	Name   string `json:"name,omitempty"`
	Schema any    `json:"schema,omitempty"`
	Strict *bool  `json:"strict,omitempty"`
}

// PromptRef references a published prompt template by identifier.
type PromptRef struct {
	ID        string         `json:"id"`
	Version   string         `json:"version,omitempty"`
	Variables map[string]any `json:"variables,omitempty"`
}
