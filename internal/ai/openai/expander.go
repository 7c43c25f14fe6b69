package openai

import (
	"context"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go/v3"
)

// expander implements ai.QueryExpander with a single chat completion.
// One attempt only: the search path falls back to the raw query on failure,
// so retrying here would just add latency to a degraded request.
type expander struct {
	client openaisdk.Client
	model  string
}

func (x *expander) ExpandQuery(ctx context.Context, query string) (string, error) {
	resp, err := x.client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(x.model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.SystemMessage(expandQuerySystemPrompt),
			openaisdk.UserMessage(query),
		},
		Temperature:         openaisdk.Float(0.3),
		MaxCompletionTokens: openaisdk.Int(120),
	})
	if err != nil {
		return "", classifyErr(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	expanded := strings.TrimSpace(resp.Choices[0].Message.Content)
	if expanded == "" {
		return "", fmt.Errorf("empty completion content")
	}
	return expanded, nil
}
