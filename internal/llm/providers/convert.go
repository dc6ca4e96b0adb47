package providers

import (
	"github.com/tmc/langchaingo/llms"

	"github.com/NoelNavall/secure-code-review-automation/internal/llm"
)

// toMessages converts a completion request to langchaingo message content.
func toMessages(req llm.CompletionRequest) []llms.MessageContent {
	messages := make([]llms.MessageContent, 0, 2)

	if req.System != "" {
		messages = append(messages, llms.MessageContent{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(req.System)},
		})
	}

	messages = append(messages, llms.MessageContent{
		Role:  llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{llms.TextPart(req.Prompt)},
	})

	return messages
}

// callOptions builds langchaingo call options from a completion request.
func callOptions(req llm.CompletionRequest) []llms.CallOption {
	return []llms.CallOption{
		llms.WithTemperature(req.Temperature),
		llms.WithMaxTokens(req.MaxTokens),
	}
}

// fromContentResponse extracts the first choice's text from a langchaingo
// response.
func fromContentResponse(resp *llms.ContentResponse) *llm.CompletionResponse {
	if resp == nil || len(resp.Choices) == 0 {
		return &llm.CompletionResponse{}
	}
	return &llm.CompletionResponse{Content: resp.Choices[0].Content}
}
