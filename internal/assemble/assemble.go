// Package assemble turns configuration flags and the current user message
// into the ordered tool list for one request.
package assemble

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/skel-ai/go-responder/internal/capability"
	"github.com/skel-ai/go-responder/internal/config"
	"github.com/skel-ai/go-responder/internal/schema"
	"github.com/skel-ai/go-responder/internal/types"
)

// Assembler builds tool descriptor lists gated by the capability oracle.
type Assembler struct {
	oracle capability.Oracle
}

// New creates an Assembler backed by the given oracle.
func New(oracle capability.Oracle) *Assembler {
	return &Assembler{oracle: oracle}
}

// Assemble produces the ordered tool list for the request and reports
// whether tool choice must be forced. It never fails: unsupported or
// malformed tool configurations are omitted.
func (a *Assembler) Assemble(cfg *config.Config, userText string, streaming bool) ([]types.Tool, bool) {
	model := cfg.Model
	var tools []types.Tool

	if cfg.Capabilities.WebSearch {
		if t, ok := a.webSearchTool(model, streaming); ok {
			tools = append(tools, t)
		}
	}
	if cfg.Capabilities.FileSearch && a.oracle.IsToolSupported(types.ToolFileSearch, model, streaming) {
		if t, ok := fileSearchTool(cfg.Tools.FileSearch); ok {
			tools = append(tools, t)
		}
	}
	if cfg.Capabilities.CodeInterpreter && a.oracle.IsToolSupported(types.ToolCodeInterpreter, model, streaming) {
		tools = append(tools, codeInterpreterTool(cfg.Tools.CodeInterpreter))
	}
	if cfg.Capabilities.ImageGeneration && a.oracle.IsToolSupported(types.ToolImageGeneration, model, streaming) {
		tools = append(tools, imageGenerationTool(cfg.Tools.Image))
	}
	if cfg.Capabilities.Function && a.oracle.IsToolSupported(types.ToolFunction, model, streaming) {
		if t, ok := functionTool(cfg.Tools.Function); ok {
			tools = append(tools, t)
		}
	}
	if cfg.Capabilities.MCP && a.oracle.IsToolSupported(types.ToolMCP, model, streaming) {
		if t, ok := mcpTool(cfg.Tools.MCP); ok {
			tools = append(tools, t)
		}
	}
	if cfg.Capabilities.ComputerUse && a.oracle.IsToolSupported(types.ToolComputerUsePreview, model, streaming) {
		tools = append(tools, computerUseTool(cfg.Tools.ComputerUse))
	}

	if capability.IsComputerUse(model) {
		if !hasTool(tools, types.ToolComputerUsePreview) {
			tools = append(tools, computerUseTool(cfg.Tools.ComputerUse))
		}
		// The computer-use model rejects co-present tools: the request must
		// carry the computer-use descriptor and nothing else.
		tools = keepOnly(tools, types.ToolComputerUsePreview)
		return tools, false
	}

	forceChoice := false
	if cfg.Capabilities.ImageGeneration && hasTool(tools, types.ToolImageGeneration) &&
		wantsImageGeneration(userText) {
		tools = keepOnly(tools, types.ToolImageGeneration)
		forceChoice = true
	}

	if capability.IsDeepResearch(model) &&
		!hasTool(tools, types.ToolWebSearchPreview) && !hasTool(tools, types.ToolFileSearch) {
		// Deep-research models require at least one search-capable tool.
		tools = append(tools, types.Tool{Type: types.ToolWebSearchPreview})
	}

	return tools, forceChoice
}

// webSearchTool picks the web search variant for the model. Deep-research
// models always use the preview variant, bypassing the oracle's normal
// web-search gate.
func (a *Assembler) webSearchTool(model string, streaming bool) (types.Tool, bool) {
	if capability.IsDeepResearch(model) {
		return types.Tool{Type: types.ToolWebSearchPreview}, true
	}
	if a.oracle.IsToolSupported(types.ToolWebSearch, model, streaming) {
		return types.Tool{Type: types.ToolWebSearch}, true
	}
	if a.oracle.IsToolSupported(types.ToolWebSearchPreview, model, streaming) {
		return types.Tool{Type: types.ToolWebSearchPreview}, true
	}
	return types.Tool{}, false
}

func fileSearchTool(opts config.FileSearch) (types.Tool, bool) {
	if len(opts.VectorStoreIDs) == 0 {
		slog.Warn("file search enabled without vector store ids, omitting tool")
		return types.Tool{}, false
	}
	t := types.Tool{
		Type:           types.ToolFileSearch,
		VectorStoreIDs: opts.VectorStoreIDs,
	}
	if opts.MaxResults > 0 {
		t.MaxNumResults = types.IntPtr(opts.MaxResults)
	}
	if opts.Ranker != "" || opts.ScoreThreshold != nil {
		t.RankingOptions = &types.RankingOptions{
			Ranker:         opts.Ranker,
			ScoreThreshold: opts.ScoreThreshold,
		}
	}
	if opts.FiltersJSON != "" {
		var filters map[string]any
		if err := json.Unmarshal([]byte(opts.FiltersJSON), &filters); err != nil {
			slog.Warn("malformed file search filters, omitting filters", "error", err)
		} else {
			t.Filters = filters
		}
	}
	return t, true
}

func codeInterpreterTool(opts config.CodeInterpreter) types.Tool {
	containerType := opts.ContainerType
	if containerType == "" {
		containerType = "auto"
	}
	return types.Tool{
		Type: types.ToolCodeInterpreter,
		Container: &types.CodeInterpreterContainer{
			Type:    containerType,
			FileIDs: opts.FileIDs,
		},
	}
}

func imageGenerationTool(opts config.ImageGeneration) types.Tool {
	return types.Tool{
		Type:         types.ToolImageGeneration,
		Model:        opts.Model,
		Size:         opts.Size,
		Quality:      opts.Quality,
		OutputFormat: opts.OutputFormat,
	}
}

func functionTool(opts config.Function) (types.Tool, bool) {
	if opts.Name == "" {
		slog.Warn("custom function enabled without a name, omitting tool")
		return types.Tool{}, false
	}
	params := schema.EmptyObject()
	if opts.SchemaJSON != "" {
		parsed, err := schema.Parse(opts.SchemaJSON)
		if err != nil {
			slog.Warn("malformed function schema, omitting tool", "function", opts.Name, "error", err)
			return types.Tool{}, false
		}
		params = parsed
	}
	return types.Tool{
		Type:        types.ToolFunction,
		Name:        opts.Name,
		Description: opts.Description,
		Parameters:  params,
		Strict:      types.BoolPtr(false),
	}, true
}

func mcpTool(opts config.MCP) (types.Tool, bool) {
	if opts.ServerLabel == "" || opts.ServerURL == "" {
		slog.Warn("mcp enabled without server label or url, omitting tool")
		return types.Tool{}, false
	}
	return types.Tool{
		Type:            types.ToolMCP,
		ServerLabel:     opts.ServerLabel,
		ServerURL:       opts.ServerURL,
		Headers:         opts.Headers,
		RequireApproval: NormalizeApproval(opts.Approval),
		AllowedTools:    opts.AllowedTools,
	}, true
}

func computerUseTool(defaults config.ComputerUse) types.Tool {
	return types.Tool{
		Type:          types.ToolComputerUsePreview,
		Environment:   defaults.Environment,
		DisplayWidth:  defaults.DisplayWidth,
		DisplayHeight: defaults.DisplayHeight,
	}
}

// NormalizeApproval maps the near-synonymous approval spellings onto the two
// wire values. Inputs that mean "no approval needed" map to "never";
// everything else, including unrecognized input, maps to "always" so that
// an unknown policy errs on the side of asking.
func NormalizeApproval(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "never", "allow", "auto":
		return "never"
	default:
		return "always"
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

func keepOnly(tools []types.Tool, typ string) []types.Tool {
	var out []types.Tool
	for _, t := range tools {
		if t.Type == typ {
			out = append(out, t)
		}
	}
	return out
}
