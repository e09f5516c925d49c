package capability

import (
	"testing"

	"github.com/skel-ai/go-responder/internal/types"
)

func TestLookupLongestPrefixWins(t *testing.T) {
	oracle := NewStatic()

	tests := []struct {
		model  string
		family string
	}{
		{"gpt-5", "gpt-5"},
		{"gpt-5-mini", "gpt-5"},
		{"o3", "o3"},
		{"o3-2025-04-16", "o3"},
		{"o3-deep-research", "o3-deep-research"},
		{"o4-mini", "o4-mini"},
		{"o4-mini-deep-research-2025-06-26", "o4-mini-deep-research"},
		{"GPT-4o", "gpt-4o"},
		{"computer-use-preview", "computer-use-preview"},
	}
	for _, tt := range tests {
		d, ok := oracle.Lookup(tt.model)
		if !ok {
			t.Errorf("Lookup(%q): not found", tt.model)
			continue
		}
		if d.Family != tt.family {
			t.Errorf("Lookup(%q): got family %q, want %q", tt.model, d.Family, tt.family)
		}
	}
}

func TestLookupUnknownModel(t *testing.T) {
	oracle := NewStatic()

	for _, model := range []string{"", "claude-3", "llama-70b"} {
		if _, ok := oracle.Lookup(model); ok {
			t.Errorf("Lookup(%q): expected unknown", model)
		}
		if oracle.IsToolSupported(types.ToolWebSearch, model, false) {
			t.Errorf("IsToolSupported(web_search, %q): unknown model must support nothing", model)
		}
		if oracle.IsParameterSupported(ParamTemperature, model) {
			t.Errorf("IsParameterSupported(temperature, %q): unknown model must support nothing", model)
		}
	}
}

func TestStreamingGateOnImageGeneration(t *testing.T) {
	oracle := NewStatic()

	if !oracle.IsToolSupported(types.ToolImageGeneration, "o3", false) {
		t.Error("o3 non-streaming: expected image_generation supported")
	}
	if oracle.IsToolSupported(types.ToolImageGeneration, "o3", true) {
		t.Error("o3 streaming: expected image_generation rejected")
	}
	// gpt-5 has no streaming restriction on its tools.
	if !oracle.IsToolSupported(types.ToolImageGeneration, "gpt-5", true) {
		t.Error("gpt-5 streaming: expected image_generation supported")
	}
}

func TestReasoningFamilyParameters(t *testing.T) {
	oracle := NewStatic()

	if oracle.IsParameterSupported(ParamTemperature, "gpt-5") {
		t.Error("gpt-5: temperature must not be supported")
	}
	if !oracle.IsParameterSupported(ParamTemperature, "gpt-4o") {
		t.Error("gpt-4o: temperature must be supported")
	}
	if !oracle.IsParameterSupported(ParamMaxOutputTokens, "o3") {
		t.Error("o3: max_output_tokens must be supported")
	}
	if oracle.IsParameterSupported(ParamParallelToolCalls, "o3-deep-research") {
		t.Error("o3-deep-research: parallel_tool_calls must not be supported")
	}
}

func TestIsDeepResearch(t *testing.T) {
	tests := []struct {
		model string
		want  bool
	}{
		{"o3-deep-research", true},
		{"O4-Mini-Deep-Research-2025", true},
		{"gpt-5", false},
		{"o4-mini", false},
	}
	for _, tt := range tests {
		if got := IsDeepResearch(tt.model); got != tt.want {
			t.Errorf("IsDeepResearch(%q) = %v, want %v", tt.model, got, tt.want)
		}
	}
}

func TestIsComputerUse(t *testing.T) {
	if !IsComputerUse(" Computer-Use-Preview ") {
		t.Error("expected case and whitespace insensitive match")
	}
	if IsComputerUse("computer-use-preview-2") {
		t.Error("suffixed model must not match the dedicated computer-use model")
	}
}

func TestComputerUseDescriptor(t *testing.T) {
	oracle := NewStatic()
	d, ok := oracle.Lookup(ComputerUseModel)
	if !ok {
		t.Fatal("computer-use-preview: not found")
	}
	if len(d.Tools) != 1 || !d.Tools[types.ToolComputerUsePreview] {
		t.Fatalf("computer-use-preview tools: got %v, want only computer_use_preview", d.Tools)
	}
}
