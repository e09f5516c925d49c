// Package sdkcompat converts composed request payloads into the official
// openai-go SDK parameter types, for callers that drive the request through
// the SDK client instead of the built-in transport.
package sdkcompat

import (
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"

	"github.com/skel-ai/go-responder/internal/types"
)

// ToResponseNewParams maps a composed payload onto the SDK's request params.
// Tool variants the SDK constructors do not cover (computer use, MCP, image
// generation) are skipped; callers needing those use the built-in transport,
// which serializes the full descriptor set.
func ToResponseNewParams(p *types.RequestPayload) responses.ResponseNewParams {
	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(p.Model),
		Input: inputToSDK(p.Input),
	}

	if p.Instructions != "" {
		params.Instructions = openai.String(p.Instructions)
	}
	if p.Store != nil {
		params.Store = openai.Bool(*p.Store)
	}
	if p.Temperature != nil {
		params.Temperature = openai.Float(*p.Temperature)
	}
	if p.TopP != nil {
		params.TopP = openai.Float(*p.TopP)
	}
	if p.MaxOutputTokens != nil {
		params.MaxOutputTokens = openai.Int(int64(*p.MaxOutputTokens))
	}
	if p.PreviousResponseID != "" {
		params.PreviousResponseID = openai.String(p.PreviousResponseID)
	}
	if p.Background != nil {
		params.Background = openai.Bool(*p.Background)
	}
	if p.PromptCacheKey != "" {
		params.PromptCacheKey = openai.String(p.PromptCacheKey)
	}
	if p.Reasoning != nil {
		params.Reasoning = reasoningToSDK(p.Reasoning)
	}
	if len(p.Include) > 0 {
		params.Include = includesToSDK(p.Include)
	}
	if len(p.Tools) > 0 {
		params.Tools = toolsToSDK(p.Tools)
	}
	params.ToolChoice = toolChoiceToSDK(p.ToolChoice)

	return params
}

func inputToSDK(items []types.InputItem) responses.ResponseNewParamsInputUnion {
	if len(items) == 0 {
		return responses.ResponseNewParamsInputUnion{}
	}
	sdkItems := make(responses.ResponseInputParam, 0, len(items))
	for _, item := range items {
		if item.Type != "message" {
			continue
		}
		content := contentToSDK(item.Content)
		if len(content) == 0 {
			continue
		}
		sdkItems = append(sdkItems,
			responses.ResponseInputItemParamOfMessage(content, responses.EasyInputMessageRole(item.Role)))
	}
	return responses.ResponseNewParamsInputUnion{OfInputItemList: sdkItems}
}

func contentToSDK(content []types.ContentPart) responses.ResponseInputMessageContentListParam {
	out := make(responses.ResponseInputMessageContentListParam, 0, len(content))
	for _, c := range content {
		switch c.Type {
		case "input_text":
			if c.Text != "" {
				out = append(out, responses.ResponseInputContentParamOfInputText(c.Text))
			}
		case "input_image":
			if c.ImageURL != "" {
				out = append(out, responses.ResponseInputContentUnionParam{
					OfInputImage: &responses.ResponseInputImageParam{
						ImageURL: openai.String(c.ImageURL),
					},
				})
			}
		}
	}
	return out
}

func toolsToSDK(tools []types.Tool) []responses.ToolUnionParam {
	out := make([]responses.ToolUnionParam, 0, len(tools))
	for _, t := range tools {
		switch t.Type {
		case types.ToolFunction:
			params, _ := t.Parameters.(map[string]any)
			if params == nil {
				params = map[string]any{"type": "object", "properties": map[string]any{}}
			}
			strict := false
			if t.Strict != nil {
				strict = *t.Strict
			}
			ft := responses.FunctionToolParam{
				Name:       t.Name,
				Parameters: params,
				Strict:     openai.Bool(strict),
			}
			if t.Description != "" {
				ft.Description = openai.String(t.Description)
			}
			out = append(out, responses.ToolUnionParam{OfFunction: &ft})

		case types.ToolWebSearch:
			out = append(out, responses.ToolParamOfWebSearch(responses.WebSearchToolTypeWebSearch))

		case types.ToolWebSearchPreview:
			out = append(out, responses.ToolParamOfWebSearchPreview(responses.WebSearchPreviewToolTypeWebSearchPreview))
		}
	}
	return out
}

func reasoningToSDK(r *types.ReasoningParam) shared.ReasoningParam {
	sp := shared.ReasoningParam{}
	if r.Effort != "" {
		sp.Effort = shared.ReasoningEffort(r.Effort)
	}
	if r.Summary != "" {
		sp.Summary = shared.ReasoningSummary(r.Summary)
	}
	return sp
}

func toolChoiceToSDK(choice any) responses.ResponseNewParamsToolChoiceUnion {
	mode, _ := choice.(string)
	switch mode {
	case "none":
		return responses.ResponseNewParamsToolChoiceUnion{
			OfToolChoiceMode: openai.Opt(responses.ToolChoiceOptionsNone),
		}
	case "required":
		return responses.ResponseNewParamsToolChoiceUnion{
			OfToolChoiceMode: openai.Opt(responses.ToolChoiceOptionsRequired),
		}
	default:
		return responses.ResponseNewParamsToolChoiceUnion{
			OfToolChoiceMode: openai.Opt(responses.ToolChoiceOptionsAuto),
		}
	}
}

func includesToSDK(includes []string) []responses.ResponseIncludable {
	out := make([]responses.ResponseIncludable, len(includes))
	for i, inc := range includes {
		out[i] = responses.ResponseIncludable(inc)
	}
	return out
}
