// Package compose builds the wire-format request payload for one
// conversation turn. Fields are added only when the corresponding
// configuration flag is set and the capability oracle confirms the target
// model supports them.
package compose

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/skel-ai/go-responder/internal/assemble"
	"github.com/skel-ai/go-responder/internal/capability"
	"github.com/skel-ai/go-responder/internal/config"
	"github.com/skel-ai/go-responder/internal/schema"
	"github.com/skel-ai/go-responder/internal/session"
	"github.com/skel-ai/go-responder/internal/types"
)

// defaultInstructions is the generic system prompt used when the caller has
// not set one. The computer-use model never receives it: those requests
// carry caller-supplied instructions or none at all.
const defaultInstructions = "You are a helpful assistant."

// Composer assembles request payloads from configuration and turn content.
type Composer struct {
	oracle    capability.Oracle
	assembler *assemble.Assembler
}

// New creates a Composer with its collaborators injected.
func New(oracle capability.Oracle, assembler *assemble.Assembler) *Composer {
	return &Composer{oracle: oracle, assembler: assembler}
}

// Input is the per-turn content handed to Compose.
type Input struct {
	UserText           string
	AttachmentFileIDs  []string
	FileBlobs          [][]byte
	FileNames          []string
	Images             []ImageInput
	PreviousResponseID string
	Stream             bool
	// CacheKey overrides the derived prompt-cache key when set.
	CacheKey string
}

// ImageInput references one input image by URL or by uploaded file ID.
// Exactly one of the two must be set; entries with neither are dropped.
type ImageInput struct {
	URL    string
	FileID string
	Detail string
}

// Compose builds the complete request payload. It never fails: malformed
// optional fragments (metadata, schemas, variables) are dropped with a
// warning and the request is built without them.
func (c *Composer) Compose(cfg *config.Config, in Input) *types.RequestPayload {
	model := cfg.Model
	computerUse := capability.IsComputerUse(model)
	desc, _ := c.oracle.Lookup(model)
	reasoningModel := desc != nil && desc.Reasoning

	p := &types.RequestPayload{
		Model: model,
		Store: types.BoolPtr(cfg.Store),
	}

	// Computer-use requests never get the generic default instructions.
	if computerUse {
		p.Instructions = cfg.Instructions
	} else if cfg.Instructions != "" {
		p.Instructions = cfg.Instructions
	} else {
		p.Instructions = defaultInstructions
	}

	if in.Stream {
		p.Stream = types.BoolPtr(true)
		p.StreamOptions = &types.StreamOptions{IncludeObfuscation: false}
	}

	p.Input = buildInput(cfg, in)

	tools, forceChoice := c.assembler.Assemble(cfg, in.UserText, in.Stream)
	if len(tools) > 0 {
		p.Tools = tools
	}

	p.Include = c.buildInclude(cfg, model, reasoningModel, tools)

	c.applySampling(p, cfg, model, computerUse)

	switch {
	case computerUse:
		r := &types.ReasoningParam{Summary: "concise"}
		if cfg.Reasoning.Summary != "" {
			r.Summary = cfg.Reasoning.Summary
		}
		p.Reasoning = r
	case reasoningModel:
		effort := cfg.Reasoning.Effort
		if effort == "" {
			effort = "medium"
		}
		p.Reasoning = &types.ReasoningParam{
			Effort:  effort,
			Summary: cfg.Reasoning.Summary,
		}
	}

	if in.PreviousResponseID != "" {
		p.PreviousResponseID = in.PreviousResponseID
	}
	if cfg.Background {
		p.Background = types.BoolPtr(true)
	}

	// An explicit non-auto tool choice wins outright over the assembler's
	// forced-choice signal.
	if choice := strings.TrimSpace(cfg.ToolChoice); choice != "" && !strings.EqualFold(choice, "auto") {
		p.ToolChoice = choice
	} else if forceChoice {
		p.ToolChoice = "required"
	}

	if cfg.Output.Enabled && cfg.Output.Name != "" {
		if doc, err := schema.Parse(cfg.Output.SchemaJSON); err != nil {
			slog.Warn("malformed structured output schema, omitting text format", "error", err)
		} else {
			p.Text = &types.TextConfig{Format: &types.TextFormat{
				Type:   "json_schema",
				Name:   cfg.Output.Name,
				Schema: doc,
				Strict: types.BoolPtr(cfg.Output.Strict),
			}}
		}
	}

	if cfg.Prompt.Enabled && cfg.Prompt.ID != "" {
		ref := &types.PromptRef{ID: cfg.Prompt.ID, Version: cfg.Prompt.Version}
		if cfg.Prompt.VariablesJSON != "" {
			var vars map[string]any
			if err := json.Unmarshal([]byte(cfg.Prompt.VariablesJSON), &vars); err != nil {
				slog.Warn("malformed prompt variables, omitting variables", "error", err)
			} else {
				ref.Variables = vars
			}
		}
		p.Prompt = ref
	}

	p.PromptCacheKey = session.PromptCacheKey(p.Instructions, p.Input, in.CacheKey)

	return p
}

// buildInclude assembles the optional output-annotation markers. Each is
// gated by a configuration flag and a capability check. Log-probability and
// encrypted-reasoning markers are suppressed for reasoning-capable models
// even when requested, because the upstream rejects them there.
func (c *Composer) buildInclude(cfg *config.Config, model string, reasoningModel bool, tools []types.Tool) []string {
	var include []string
	if cfg.Include.Logprobs && !reasoningModel &&
		c.oracle.IsParameterSupported(capability.ParamTopLogprobs, model) {
		include = append(include, "message.output_text.logprobs")
	}
	if cfg.Include.EncryptedReasoning && !reasoningModel {
		include = append(include, "reasoning.encrypted_content")
	}
	if cfg.Include.SearchSources && (hasTool(tools, types.ToolWebSearch) || hasTool(tools, types.ToolWebSearchPreview)) {
		include = append(include, "web_search_call.action.sources")
	}
	if cfg.Include.CodeOutputs && hasTool(tools, types.ToolCodeInterpreter) {
		include = append(include, "code_interpreter_call.outputs")
	}
	if cfg.Include.FileSearchResults && hasTool(tools, types.ToolFileSearch) {
		include = append(include, "file_search_call.results")
	}
	return include
}

// applySampling merges the runtime parameters in, each individually gated
// by the oracle. Computer-use requests force truncation to "auto".
func (c *Composer) applySampling(p *types.RequestPayload, cfg *config.Config, model string, computerUse bool) {
	s := cfg.Sampling
	if s.Temperature != nil && c.oracle.IsParameterSupported(capability.ParamTemperature, model) {
		p.Temperature = s.Temperature
	}
	if s.TopP != nil && c.oracle.IsParameterSupported(capability.ParamTopP, model) {
		p.TopP = s.TopP
	}
	if s.MaxOutputTokens > 0 && c.oracle.IsParameterSupported(capability.ParamMaxOutputTokens, model) {
		p.MaxOutputTokens = types.IntPtr(s.MaxOutputTokens)
	}
	if s.TopLogprobs > 0 && c.oracle.IsParameterSupported(capability.ParamTopLogprobs, model) {
		p.TopLogprobs = types.IntPtr(s.TopLogprobs)
	}
	if s.ParallelToolCalls != nil && c.oracle.IsParameterSupported(capability.ParamParallelToolCalls, model) {
		p.ParallelToolCalls = s.ParallelToolCalls
	}

	if computerUse {
		p.Truncation = "auto"
	} else if s.Truncation != "" && c.oracle.IsParameterSupported(capability.ParamTruncation, model) {
		p.Truncation = s.Truncation
	}

	if cfg.MetadataJSON != "" && c.oracle.IsParameterSupported(capability.ParamMetadata, model) {
		var meta map[string]string
		if err := json.Unmarshal([]byte(cfg.MetadataJSON), &meta); err != nil {
			slog.Warn("malformed request metadata, omitting metadata", "error", err)
		} else if len(meta) > 0 {
			p.Metadata = meta
		}
	}
}

func hasTool(tools []types.Tool, typ string) bool {
	for _, t := range tools {
		if t.Type == typ {
			return true
		}
	}
	return false
}
