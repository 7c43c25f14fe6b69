package openai

import (
	"context"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go/v3"
)

// useCaseGenerator implements ai.UseCaseGenerator with a single chat
// completion over the prompt's name and content.
type useCaseGenerator struct {
	client openaisdk.Client
	model  string
}

func (g *useCaseGenerator) GenerateUseCases(ctx context.Context, name, content string) (string, error) {
	input := fmt.Sprintf("Name: %s\n\nPrompt:\n%s", name, content)

	resp, err := g.client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(g.model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.SystemMessage(useCasesSystemPrompt),
			openaisdk.UserMessage(input),
		},
		Temperature:         openaisdk.Float(0.4),
		MaxCompletionTokens: openaisdk.Int(150),
	})
	if err != nil {
		return "", classifyErr(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	useCases := strings.TrimSpace(resp.Choices[0].Message.Content)
	if useCases == "" {
		return "", fmt.Errorf("empty completion content")
	}
	return useCases, nil
}
