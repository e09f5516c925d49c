// Package config holds the per-request configuration snapshot and its
// loading from file, environment, and flags. A Config is read-only during
// a request build; the CLI owns it and hands it to the composer.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// DefaultBaseURL is the Responses API endpoint prefix.
const DefaultBaseURL = "https://api.openai.com/v1"

// Config is the full snapshot of user-controlled settings for one request.
type Config struct {
	Model        string `mapstructure:"model"`
	Instructions string `mapstructure:"instructions"`
	// DeveloperInstructions becomes a developer-role message preceding the
	// user message, as opposed to the top-level instructions field.
	DeveloperInstructions string `mapstructure:"developer_instructions"`

	Store      bool   `mapstructure:"store"`
	Background bool   `mapstructure:"background"`
	ToolChoice string `mapstructure:"tool_choice"`
	// MetadataJSON is a caller-supplied JSON object of string pairs.
	// Malformed input drops the metadata field, never the request.
	MetadataJSON string `mapstructure:"metadata"`

	Sampling  Sampling  `mapstructure:"sampling"`
	Reasoning Reasoning `mapstructure:"reasoning"`

	Capabilities Capabilities `mapstructure:"capabilities"`
	Tools        ToolOptions  `mapstructure:"tools"`
	Include      Include      `mapstructure:"include"`

	Output StructuredOutput `mapstructure:"output"`
	Prompt PromptTemplate   `mapstructure:"prompt"`

	BaseURL      string `mapstructure:"base_url"`
	AnalyticsLog string `mapstructure:"analytics_log"`
	Verbose      bool   `mapstructure:"verbose"`
}

// Sampling holds the runtime sampling parameters. Pointer fields distinguish
// "not set" from an explicit zero value.
type Sampling struct {
	Temperature       *float64 `mapstructure:"temperature"`
	TopP              *float64 `mapstructure:"top_p"`
	MaxOutputTokens   int      `mapstructure:"max_output_tokens"`
	TopLogprobs       int      `mapstructure:"top_logprobs"`
	ParallelToolCalls *bool    `mapstructure:"parallel_tool_calls"`
	Truncation        string   `mapstructure:"truncation"`
}

// Reasoning holds reasoning configuration for reasoning-capable models.
type Reasoning struct {
	Effort  string `mapstructure:"effort"`
	Summary string `mapstructure:"summary"`
}

// Capabilities are the enabled-capability flags. Each one only takes effect
// when the capability oracle confirms the target model supports it.
type Capabilities struct {
	WebSearch       bool `mapstructure:"web_search"`
	CodeInterpreter bool `mapstructure:"code_interpreter"`
	ImageGeneration bool `mapstructure:"image_generation"`
	FileSearch      bool `mapstructure:"file_search"`
	ComputerUse     bool `mapstructure:"computer_use"`
	Function        bool `mapstructure:"function"`
	MCP             bool `mapstructure:"mcp"`
}

// ToolOptions carries the per-tool settings used to populate descriptors.
type ToolOptions struct {
	Image           ImageGeneration `mapstructure:"image"`
	CodeInterpreter CodeInterpreter `mapstructure:"code_interpreter"`
	FileSearch      FileSearch      `mapstructure:"file_search"`
	Function        Function        `mapstructure:"function"`
	MCP             MCP             `mapstructure:"mcp"`
	ComputerUse     ComputerUse     `mapstructure:"computer_use"`
}

// ImageGeneration configures the image generation tool.
type ImageGeneration struct {
	Model        string `mapstructure:"model"`
	Size         string `mapstructure:"size"`
	Quality      string `mapstructure:"quality"`
	OutputFormat string `mapstructure:"output_format"`
}

// CodeInterpreter configures the code interpreter sandbox.
type CodeInterpreter struct {
	ContainerType string   `mapstructure:"container_type"`
	FileIDs       []string `mapstructure:"file_ids"`
}

// FileSearch configures the file search tool.
type FileSearch struct {
	VectorStoreIDs []string `mapstructure:"vector_store_ids"`
	MaxResults     int      `mapstructure:"max_results"`
	Ranker         string   `mapstructure:"ranker"`
	ScoreThreshold *float64 `mapstructure:"score_threshold"`
	// FiltersJSON is a raw filter object; malformed input drops the filters.
	FiltersJSON string `mapstructure:"filters"`
}

// Function configures a single custom function tool.
type Function struct {
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	// SchemaJSON must be a valid JSON Schema; the tool is omitted otherwise.
	SchemaJSON string `mapstructure:"schema"`
}

// MCP configures a remote MCP server tool.
type MCP struct {
	ServerLabel  string            `mapstructure:"server_label"`
	ServerURL    string            `mapstructure:"server_url"`
	Headers      map[string]string `mapstructure:"headers"`
	Approval     string            `mapstructure:"approval"`
	AllowedTools []string          `mapstructure:"allowed_tools"`
}

// ComputerUse holds the default environment and screen geometry for the
// computer-use tool. These are injected configuration, never derived from
// the build target.
type ComputerUse struct {
	Environment   string `mapstructure:"environment"`
	DisplayWidth  int    `mapstructure:"display_width"`
	DisplayHeight int    `mapstructure:"display_height"`
}

// Include toggles the optional output-annotation markers. Each marker is
// additionally gated by a capability check at compose time.
type Include struct {
	Logprobs           bool `mapstructure:"logprobs"`
	EncryptedReasoning bool `mapstructure:"encrypted_reasoning"`
	SearchSources      bool `mapstructure:"search_sources"`
	CodeOutputs        bool `mapstructure:"code_outputs"`
	FileSearchResults  bool `mapstructure:"file_search_results"`
}

// StructuredOutput configures schema-constrained JSON output.
type StructuredOutput struct {
	Enabled    bool   `mapstructure:"enabled"`
	Name       string `mapstructure:"name"`
	SchemaJSON string `mapstructure:"schema"`
	Strict     bool   `mapstructure:"strict"`
}

// PromptTemplate references a published prompt by identifier.
type PromptTemplate struct {
	Enabled       bool   `mapstructure:"enabled"`
	ID            string `mapstructure:"id"`
	Version       string `mapstructure:"version"`
	VariablesJSON string `mapstructure:"variables"`
}

// SetDefaults installs the configuration defaults on the given viper.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("model", "gpt-5")
	v.SetDefault("store", true)
	v.SetDefault("tool_choice", "auto")
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("reasoning.effort", "medium")
	v.SetDefault("tools.computer_use.environment", "browser")
	v.SetDefault("tools.computer_use.display_width", 1280)
	v.SetDefault("tools.computer_use.display_height", 800)
	v.SetDefault("tools.code_interpreter.container_type", "auto")
	v.SetDefault("tools.image.output_format", "png")
}

// Load unmarshals the viper state into a Config, binding environment
// variables with the RESPONDER_ prefix.
func Load(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix("RESPONDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
