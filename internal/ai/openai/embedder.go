package openai

import (
	"context"
	"fmt"
	"strings"

	"promptdeck/internal/ai"
	"promptdeck/internal/domain"

	openaisdk "github.com/openai/openai-go/v3"
)

// embedder implements ai.Embedder against the OpenAI embeddings endpoint.
type embedder struct {
	client openaisdk.Client
	model  string
}

func (e *embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (e *embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	cleaned := make([]string, 0, len(texts))
	for _, text := range texts {
		candidate := strings.TrimSpace(text)
		if candidate == "" {
			return nil, fmt.Errorf("embedding input cannot be empty")
		}
		cleaned = append(cleaned, candidate)
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("embedding input cannot be empty")
	}

	resp, err := e.client.Embeddings.New(ctx, openaisdk.EmbeddingNewParams{
		Model: openaisdk.EmbeddingModel(e.model),
		Input: openaisdk.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: cleaned,
		},
	})
	if err != nil {
		return nil, classifyErr(err)
	}

	if len(resp.Data) != len(cleaned) {
		return nil, &domain.UpstreamError{
			Service: serviceName,
			Kind:    domain.UpstreamGeneric,
			Err:     fmt.Errorf("embedding response count mismatch: got %d, want %d", len(resp.Data), len(cleaned)),
		}
	}

	out := make([][]float32, len(cleaned))
	for _, item := range resp.Data {
		if item.Index < 0 || int(item.Index) >= len(cleaned) {
			return nil, &domain.UpstreamError{
				Service: serviceName,
				Kind:    domain.UpstreamGeneric,
				Err:     fmt.Errorf("embedding response index %d out of range", item.Index),
			}
		}
		if len(item.Embedding) != ai.EmbeddingDimensions {
			return nil, &domain.UpstreamError{
				Service: serviceName,
				Kind:    domain.UpstreamGeneric,
				Err:     fmt.Errorf("unexpected embedding size: got %d, want %d", len(item.Embedding), ai.EmbeddingDimensions),
			}
		}
		vector := make([]float32, len(item.Embedding))
		for i, v := range item.Embedding {
			vector[i] = float32(v)
		}
		out[item.Index] = vector
	}
	return out, nil
}
