package types

// InputItem represents a single item in the Responses API input array.
// Flat discriminated union: Type determines which fields are relevant.
type InputItem struct {
	Type    string        `json:"type"`
	Role    string        `json:"role,omitempty"`
	Content []ContentPart `json:"content,omitempty"`
}

// ContentPart is one typed part of a message's content list.
type ContentPart struct {
	Type string `json:"type"`

	// input_text
	Text string `json:"text,omitempty"`

	// input_image: exactly one of ImageURL or FileID
	ImageURL string `json:"image_url,omitempty"`
	Detail   string `json:"detail,omitempty"`

	// input_file: FileID references an uploaded file; Filename+FileData
	// carry an inline base64 payload instead.
	FileID   string `json:"file_id,omitempty"`
	Filename string `json:"filename,omitempty"`
	FileData string `json:"file_data,omitempty"`
}

// TextPart builds an input_text content part.
func TextPart(text string) ContentPart {
	return ContentPart{Type: "input_text", Text: text}
}

// UserMessage builds a user message input item from content parts.
func UserMessage(parts ...ContentPart) InputItem {
	return InputItem{Type: "message", Role: "user", Content: parts}
}

// DeveloperMessage builds a developer message carrying a single text part.
func DeveloperMessage(text string) InputItem {
	return InputItem{Type: "message", Role: "developer", Content: []ContentPart{TextPart(text)}}
}
