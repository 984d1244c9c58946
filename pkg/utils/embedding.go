package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgvector/pgvector-go"
)

// EmbeddingClientInterface turns free text into fixed-length vectors.
type EmbeddingClientInterface interface {
	GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error)
	GetEmbeddings(ctx context.Context, texts []string) ([]pgvector.Vector, error)
}

// GenerationClientInterface is the opaque text-generation model used for
// query classification and city-name correction.
type GenerationClientInterface interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// NewEmbeddingClient creates either an OpenAI or Gemini embedding client.
func NewEmbeddingClient(provider, apiKey, model string) (EmbeddingClientInterface, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAIClient(apiKey, model), nil
	case "gemini":
		return NewGeminiClient(apiKey, model, "")
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s. Use 'openai' or 'gemini'", provider)
	}
}
