package capability

import (
	"sort"
	"strings"

	"github.com/skel-ai/go-responder/internal/types"
)

// Static is the built-in capability table, keyed by model-id prefix.
// The longest matching prefix wins, so "o4-mini-deep-research" resolves to
// its own entry rather than to "o4-mini".
type Static struct {
	prefixes []string
	families map[string]*Descriptor
}

// NewStatic builds the static capability oracle from the built-in catalog.
func NewStatic() *Static {
	families := map[string]*Descriptor{
		"gpt-5": {
			Family:    "gpt-5",
			Reasoning: true,
			Parameters: paramSet(
				ParamMaxOutputTokens, ParamTopLogprobs,
				ParamParallelToolCalls, ParamTruncation, ParamMetadata,
			),
			Tools: toolSet(
				types.ToolWebSearch, types.ToolFileSearch, types.ToolCodeInterpreter,
				types.ToolImageGeneration, types.ToolFunction, types.ToolMCP,
			),
		},
		"o3": {
			Family:    "o3",
			Reasoning: true,
			Parameters: paramSet(
				ParamMaxOutputTokens,
				ParamParallelToolCalls, ParamTruncation, ParamMetadata,
			),
			Tools: toolSet(
				types.ToolWebSearch, types.ToolFileSearch, types.ToolCodeInterpreter,
				types.ToolImageGeneration, types.ToolFunction, types.ToolMCP,
			),
			NonStreamingTools: toolSet(types.ToolImageGeneration),
		},
		"o4-mini": {
			Family:    "o4-mini",
			Reasoning: true,
			Parameters: paramSet(
				ParamMaxOutputTokens,
				ParamParallelToolCalls, ParamTruncation, ParamMetadata,
			),
			Tools: toolSet(
				types.ToolWebSearch, types.ToolFileSearch, types.ToolCodeInterpreter,
				types.ToolImageGeneration, types.ToolFunction, types.ToolMCP,
			),
			NonStreamingTools: toolSet(types.ToolImageGeneration),
		},
		"o3-deep-research": {
			Family:    "o3-deep-research",
			Reasoning: true,
			Parameters: paramSet(
				ParamMaxOutputTokens, ParamMetadata,
			),
			Tools: toolSet(
				types.ToolWebSearchPreview, types.ToolFileSearch,
				types.ToolCodeInterpreter, types.ToolMCP,
			),
			NonStreamingTools: toolSet(types.ToolCodeInterpreter),
		},
		"o4-mini-deep-research": {
			Family:    "o4-mini-deep-research",
			Reasoning: true,
			Parameters: paramSet(
				ParamMaxOutputTokens, ParamMetadata,
			),
			Tools: toolSet(
				types.ToolWebSearchPreview, types.ToolFileSearch,
				types.ToolCodeInterpreter, types.ToolMCP,
			),
			NonStreamingTools: toolSet(types.ToolCodeInterpreter),
		},
		"gpt-4.1": {
			Family: "gpt-4.1",
			Parameters: paramSet(
				ParamTemperature, ParamTopP, ParamMaxOutputTokens, ParamTopLogprobs,
				ParamParallelToolCalls, ParamTruncation, ParamMetadata,
			),
			Tools: toolSet(
				types.ToolWebSearchPreview, types.ToolFileSearch, types.ToolCodeInterpreter,
				types.ToolImageGeneration, types.ToolFunction, types.ToolMCP,
			),
		},
		"gpt-4o": {
			Family: "gpt-4o",
			Parameters: paramSet(
				ParamTemperature, ParamTopP, ParamMaxOutputTokens, ParamTopLogprobs,
				ParamParallelToolCalls, ParamTruncation, ParamMetadata,
			),
			Tools: toolSet(
				types.ToolWebSearchPreview, types.ToolFileSearch, types.ToolCodeInterpreter,
				types.ToolImageGeneration, types.ToolFunction, types.ToolMCP,
			),
		},
		ComputerUseModel: {
			Family: ComputerUseModel,
			Parameters: paramSet(
				ParamMaxOutputTokens, ParamTruncation,
			),
			Tools: toolSet(types.ToolComputerUsePreview),
		},
	}

	prefixes := make([]string, 0, len(families))
	for p := range families {
		prefixes = append(prefixes, p)
	}
	// Longest prefix first so specific families shadow their base family.
	sort.Slice(prefixes, func(i, j int) bool {
		if len(prefixes[i]) != len(prefixes[j]) {
			return len(prefixes[i]) > len(prefixes[j])
		}
		return prefixes[i] < prefixes[j]
	})

	return &Static{prefixes: prefixes, families: families}
}

// Lookup resolves the model to its family descriptor by longest prefix match.
func (s *Static) Lookup(model string) (*Descriptor, bool) {
	m := strings.TrimSpace(strings.ToLower(model))
	if m == "" {
		return nil, false
	}
	for _, p := range s.prefixes {
		if strings.HasPrefix(m, p) {
			return s.families[p], true
		}
	}
	return nil, false
}

// IsToolSupported reports whether the model accepts the tool under the
// given streaming mode. Unknown models support nothing.
func (s *Static) IsToolSupported(tool, model string, streaming bool) bool {
	d, ok := s.Lookup(model)
	if !ok {
		return false
	}
	if !d.Tools[tool] {
		return false
	}
	if streaming && d.NonStreamingTools[tool] {
		return false
	}
	return true
}

// IsParameterSupported reports whether the model accepts the parameter.
func (s *Static) IsParameterSupported(param, model string) bool {
	d, ok := s.Lookup(model)
	if !ok {
		return false
	}
	return d.Parameters[param]
}

// Models returns the catalog's family prefixes in stable order, for display.
func (s *Static) Models() []string {
	out := make([]string, 0, len(s.families))
	for p := range s.families {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func paramSet(params ...string) map[string]bool {
	m := make(map[string]bool, len(params))
	for _, p := range params {
		m[p] = true
	}
	return m
}

func toolSet(tools ...string) map[string]bool {
	m := make(map[string]bool, len(tools))
	for _, t := range tools {
		m[t] = true
	}
	return m
}
