// Package capability answers which tools and request parameters a given
// model identifier accepts, and under which streaming mode. It is a
// read-only lookup: request building consults it, nothing mutates it.
package capability

import "strings"

// Request parameter names as used in oracle queries.
const (
	ParamTemperature       = "temperature"
	ParamTopP              = "top_p"
	ParamMaxOutputTokens   = "max_output_tokens"
	ParamTopLogprobs       = "top_logprobs"
	ParamParallelToolCalls = "parallel_tool_calls"
	ParamTruncation        = "truncation"
	ParamMetadata          = "metadata"
)

// ComputerUseModel is the dedicated computer-use model. Requests against it
// must carry exactly one tool, the computer-use descriptor.
const ComputerUseModel = "computer-use-preview"

// deepResearchMarker identifies the deep-research model family by substring.
const deepResearchMarker = "deep-research"

// Oracle reports model capabilities. Implementations must be safe for
// concurrent use; the same oracle is shared across in-flight requests.
type Oracle interface {
	// IsToolSupported reports whether the model accepts the given tool
	// type under the given streaming mode.
	IsToolSupported(tool, model string, streaming bool) bool
	// IsParameterSupported reports whether the model accepts the given
	// top-level request parameter.
	IsParameterSupported(param, model string) bool
	// Lookup returns the capability descriptor for the model, or false
	// when the model is unknown.
	Lookup(model string) (*Descriptor, bool)
}

// Descriptor describes one model family's capabilities.
type Descriptor struct {
	Family            string
	Reasoning         bool
	Parameters        map[string]bool
	Tools             map[string]bool
	NonStreamingTools map[string]bool // tools rejected when stream=true
}

// IsDeepResearch reports whether the model belongs to the deep-research
// family, which requires at least one search-capable tool per request.
func IsDeepResearch(model string) bool {
	return strings.Contains(strings.ToLower(model), deepResearchMarker)
}

// IsComputerUse reports whether the model is the dedicated computer-use model.
func IsComputerUse(model string) bool {
	return strings.TrimSpace(strings.ToLower(model)) == ComputerUseModel
}
