package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgvector/pgvector-go"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient implements embeddings (and optionally chat generation) via the
// OpenAI API.
type OpenAIClient struct {
	client    *openai.Client
	model     string
	chatModel string
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}
	return &OpenAIClient{
		client:    openai.NewClient(apiKey),
		model:     model,
		chatModel: openai.GPT4oMini,
	}
}

func (c *OpenAIClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	vectors, err := c.GetEmbeddings(ctx, []string{text})
	if err != nil {
		return pgvector.Vector{}, err
	}
	return vectors[0], nil
}

func (c *OpenAIClient) GetEmbeddings(ctx context.Context, texts []string) ([]pgvector.Vector, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no input texts provided")
	}

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(c.model),
	})
	if err != nil {
		return nil, fmt.Errorf("openai embedding: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("openai embedding: got %d vectors for %d texts", len(resp.Data), len(texts))
	}

	vectors := make([]pgvector.Vector, len(resp.Data))
	for i, d := range resp.Data {
		vectors[i] = pgvector.NewVector(d.Embedding)
	}
	return vectors, nil
}

func (c *OpenAIClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
		MaxTokens:   300,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai chat: no content generated")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
