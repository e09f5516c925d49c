package assemble

import (
	"testing"

	"github.com/skel-ai/go-responder/internal/capability"
	"github.com/skel-ai/go-responder/internal/config"
	"github.com/skel-ai/go-responder/internal/types"
)

func allCapabilities() config.Capabilities {
	return config.Capabilities{
		WebSearch:       true,
		CodeInterpreter: true,
		ImageGeneration: true,
		FileSearch:      true,
		Function:        true,
		MCP:             true,
	}
}

func toolTypes(tools []types.Tool) []string {
	out := make([]string, 0, len(tools))
	for _, t := range tools {
		out = append(out, t.Type)
	}
	return out
}

func TestAssembleComputerUseExactlyOneTool(t *testing.T) {
	a := New(capability.NewStatic())
	cfg := &config.Config{
		Model:        capability.ComputerUseModel,
		Capabilities: allCapabilities(),
		Tools: config.ToolOptions{
			ComputerUse: config.ComputerUse{Environment: "browser", DisplayWidth: 1280, DisplayHeight: 800},
		},
	}
	// Capabilities request many tools; the model permits exactly one.
	cfg.Capabilities.ComputerUse = true

	tools, force := a.Assemble(cfg, "open the dashboard and click refresh", true)
	if force {
		t.Error("computer-use requests must not force tool choice")
	}
	if len(tools) != 1 {
		t.Fatalf("got tools %v, want exactly one", toolTypes(tools))
	}
	got := tools[0]
	if got.Type != types.ToolComputerUsePreview {
		t.Fatalf("got tool %q, want computer_use_preview", got.Type)
	}
	if got.Environment != "browser" || got.DisplayWidth != 1280 || got.DisplayHeight != 800 {
		t.Errorf("computer-use defaults not injected: %+v", got)
	}
}

func TestAssembleComputerUseInjectedWithoutFlag(t *testing.T) {
	a := New(capability.NewStatic())
	cfg := &config.Config{
		Model: capability.ComputerUseModel,
		Tools: config.ToolOptions{
			ComputerUse: config.ComputerUse{Environment: "windows", DisplayWidth: 1920, DisplayHeight: 1080},
		},
	}

	tools, _ := a.Assemble(cfg, "hello", false)
	if len(tools) != 1 || tools[0].Type != types.ToolComputerUsePreview {
		t.Fatalf("got tools %v, want injected computer_use_preview", toolTypes(tools))
	}
	if tools[0].Environment != "windows" {
		t.Errorf("environment: got %q, want configured default", tools[0].Environment)
	}
}

func TestAssembleDeepResearchBypassesWebSearchGate(t *testing.T) {
	a := New(capability.NewStatic())
	cfg := &config.Config{
		Model:        "o3-deep-research",
		Capabilities: config.Capabilities{WebSearch: true},
	}

	tools, force := a.Assemble(cfg, "summarize recent fusion research", true)
	if force {
		t.Error("unexpected forced tool choice")
	}
	if len(tools) != 1 || tools[0].Type != types.ToolWebSearchPreview {
		t.Fatalf("got tools %v, want [web_search_preview]", toolTypes(tools))
	}
}

func TestAssembleDeepResearchFallbackAppendsPreview(t *testing.T) {
	a := New(capability.NewStatic())
	// No search capability enabled at all; the fallback must still land.
	cfg := &config.Config{Model: "o4-mini-deep-research"}

	tools, _ := a.Assemble(cfg, "what changed in the eurozone this quarter", false)
	if len(tools) != 1 || tools[0].Type != types.ToolWebSearchPreview {
		t.Fatalf("got tools %v, want appended web_search_preview", toolTypes(tools))
	}
}

func TestAssembleDeepResearchNoFallbackWhenFileSearchPresent(t *testing.T) {
	a := New(capability.NewStatic())
	cfg := &config.Config{
		Model:        "o3-deep-research",
		Capabilities: config.Capabilities{FileSearch: true},
		Tools: config.ToolOptions{
			FileSearch: config.FileSearch{VectorStoreIDs: []string{"vs_1"}},
		},
	}

	tools, _ := a.Assemble(cfg, "search my corpus", false)
	if len(tools) != 1 || tools[0].Type != types.ToolFileSearch {
		t.Fatalf("got tools %v, want [file_search] with no preview fallback", toolTypes(tools))
	}
}

func TestAssembleImageForcing(t *testing.T) {
	a := New(capability.NewStatic())

	tests := []struct {
		name      string
		userText  string
		wantForce bool
	}{
		{"positive hint", "draw me a cat logo", true},
		{"positive phrase", "please generate an image of a sunset", true},
		{"negative overrides positive", "analyze this image and describe the logo", false},
		{"no hints", "what is the capital of France", false},
		{"case insensitive", "DRAW A picture of a dog", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				Model:        "gpt-5",
				Capabilities: config.Capabilities{WebSearch: true, ImageGeneration: true},
			}
			tools, force := a.Assemble(cfg, tt.userText, false)
			if force != tt.wantForce {
				t.Fatalf("force = %v, want %v (tools %v)", force, tt.wantForce, toolTypes(tools))
			}
			if tt.wantForce {
				if len(tools) != 1 || tools[0].Type != types.ToolImageGeneration {
					t.Fatalf("got tools %v, want only image_generation", toolTypes(tools))
				}
			} else {
				if !hasTool(tools, types.ToolWebSearch) {
					t.Errorf("got tools %v, want web_search retained", toolTypes(tools))
				}
			}
		})
	}
}

func TestAssembleImageForcingRequiresSupportedTool(t *testing.T) {
	a := New(capability.NewStatic())
	// o3 rejects image generation under streaming, so the hint cannot force.
	cfg := &config.Config{
		Model:        "o3",
		Capabilities: config.Capabilities{WebSearch: true, ImageGeneration: true},
	}

	tools, force := a.Assemble(cfg, "draw me a diagram", true)
	if force {
		t.Error("force must not trigger when the image tool was gated out")
	}
	if hasTool(tools, types.ToolImageGeneration) {
		t.Errorf("got tools %v, image_generation must be absent when streaming", toolTypes(tools))
	}
}

func TestFileSearchToolRequiresVectorStores(t *testing.T) {
	if _, ok := fileSearchTool(config.FileSearch{}); ok {
		t.Error("expected omission without vector store ids")
	}

	tool, ok := fileSearchTool(config.FileSearch{
		VectorStoreIDs: []string{"vs_1", "vs_2"},
		MaxResults:     5,
		FiltersJSON:    `{"type":"eq","key":"lang","value":"en"}`,
	})
	if !ok {
		t.Fatal("expected tool")
	}
	if len(tool.VectorStoreIDs) != 2 {
		t.Errorf("vector store ids: got %v", tool.VectorStoreIDs)
	}
	if tool.MaxNumResults == nil || *tool.MaxNumResults != 5 {
		t.Errorf("max results: got %v", tool.MaxNumResults)
	}
	if tool.Filters == nil {
		t.Error("expected parsed filters")
	}
}

func TestFileSearchToolDropsMalformedFilters(t *testing.T) {
	tool, ok := fileSearchTool(config.FileSearch{
		VectorStoreIDs: []string{"vs_1"},
		FiltersJSON:    "{not json",
	})
	if !ok {
		t.Fatal("malformed filters must not drop the whole tool")
	}
	if tool.Filters != nil {
		t.Errorf("filters: got %v, want nil", tool.Filters)
	}
}

func TestFunctionTool(t *testing.T) {
	if _, ok := functionTool(config.Function{}); ok {
		t.Error("expected omission without a name")
	}
	if _, ok := functionTool(config.Function{Name: "lookup", SchemaJSON: "{bad"}); ok {
		t.Error("expected omission with a malformed schema")
	}

	tool, ok := functionTool(config.Function{Name: "lookup", Description: "find things"})
	if !ok {
		t.Fatal("expected tool")
	}
	if tool.Name != "lookup" {
		t.Errorf("name: got %q", tool.Name)
	}
	if tool.Parameters == nil {
		t.Error("expected fallback empty-object schema")
	}
	if tool.Strict == nil || *tool.Strict {
		t.Errorf("strict: got %v, want false", tool.Strict)
	}
}

func TestMCPToolRequiresLabelAndURL(t *testing.T) {
	if _, ok := mcpTool(config.MCP{ServerLabel: "docs"}); ok {
		t.Error("expected omission without a server url")
	}
	tool, ok := mcpTool(config.MCP{ServerLabel: "docs", ServerURL: "https://mcp.example.com", Approval: "auto"})
	if !ok {
		t.Fatal("expected tool")
	}
	if tool.RequireApproval != "never" {
		t.Errorf("approval: got %q, want never", tool.RequireApproval)
	}
}

func TestNormalizeApproval(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "never"},
		{"never", "never"},
		{"Allow", "never"},
		{" AUTO ", "never"},
		{"always", "always"},
		{"prompt", "always"},
		{"whatever", "always"},
	}
	for _, tt := range tests {
		if got := NormalizeApproval(tt.in); got != tt.want {
			t.Errorf("NormalizeApproval(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWantsImageGeneration(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"generate an image of a mountain", true},
		{"can you sketch something for me", true},
		{"describe this image in detail", false},
		{"what's in this image? a logo?", false},
		{"plain question", false},
	}
	for _, tt := range tests {
		if got := wantsImageGeneration(tt.text); got != tt.want {
			t.Errorf("wantsImageGeneration(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
