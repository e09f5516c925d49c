package types

// Tool type tags as they appear on the wire.
const (
	ToolWebSearch          = "web_search"
	ToolWebSearchPreview   = "web_search_preview"
	ToolCodeInterpreter    = "code_interpreter"
	ToolImageGeneration    = "image_generation"
	ToolFileSearch         = "file_search"
	ToolComputerUsePreview = "computer_use_preview"
	ToolFunction           = "function"
	ToolMCP                = "mcp"
)

// Tool is a single tool descriptor advertised to the model.
// Flat discriminated union: Type determines which fields are relevant,
// everything else stays zero and is elided by omitempty.
type Tool struct {
	Type string `json:"type"`

	// function
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Parameters  any    `json:"parameters,omitempty"`
	Strict      *bool  `json:"strict,omitempty"`

	// code_interpreter
	Container *CodeInterpreterContainer `json:"container,omitempty"`

	// image_generation
	Model        string `json:"model,omitempty"`
	Size         string `json:"size,omitempty"`
	Quality      string `json:"quality,omitempty"`
	OutputFormat string `json:"output_format,omitempty"`

	// file_search
	VectorStoreIDs []string           `json:"vector_store_ids,omitempty"`
	MaxNumResults  *int               `json:"max_num_results,omitempty"`
	RankingOptions *RankingOptions    `json:"ranking_options,omitempty"`
	Filters        map[string]any     `json:"filters,omitempty"`

	// computer_use_preview
	Environment   string `json:"environment,omitempty"`
	DisplayWidth  int    `json:"display_width,omitempty"`
	DisplayHeight int    `json:"display_height,omitempty"`

	// mcp
	ServerLabel     string            `json:"server_label,omitempty"`
	ServerURL       string            `json:"server_url,omitempty"`
	Headers         map[string]string `json:"headers,omitempty"`
	RequireApproval string            `json:"require_approval,omitempty"`
	AllowedTools    []string          `json:"allowed_tools,omitempty"`
}

// CodeInterpreterContainer selects the sandbox the code interpreter runs in.
type CodeInterpreterContainer struct {
	Type    string   `json:"type"`
	FileIDs []string `json:"file_ids,omitempty"`
}

// RankingOptions tunes file search result ranking.
type RankingOptions struct {
	Ranker         string   `json:"ranker,omitempty"`
	ScoreThreshold *float64 `json:"score_threshold,omitempty"`
}
