package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/pgvector/pgvector-go"
	"google.golang.org/api/option"
)

// GeminiClient implements both the embedding and the text-generation
// interfaces on top of Google's Generative AI API.
type GeminiClient struct {
	client     *genai.Client
	embedModel string
	genModel   string
}

func NewGeminiClient(apiKey, embedModel, genModel string) (*GeminiClient, error) {
	if embedModel == "" {
		embedModel = "text-embedding-004"
	}
	if genModel == "" {
		genModel = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:     client,
		embedModel: embedModel,
		genModel:   genModel,
	}, nil
}

func (c *GeminiClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	em := c.client.EmbeddingModel(c.embedModel)
	res, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("gemini embedding: %w", err)
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return pgvector.Vector{}, fmt.Errorf("gemini embedding: empty result")
	}
	return pgvector.NewVector(res.Embedding.Values), nil
}

func (c *GeminiClient) GetEmbeddings(ctx context.Context, texts []string) ([]pgvector.Vector, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no input texts provided")
	}

	em := c.client.EmbeddingModel(c.embedModel)
	batch := em.NewBatch()
	for _, text := range texts {
		batch.AddContent(genai.Text(text))
	}

	res, err := em.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("gemini batch embedding: %w", err)
	}
	if len(res.Embeddings) != len(texts) {
		return nil, fmt.Errorf("gemini batch embedding: got %d vectors for %d texts", len(res.Embeddings), len(texts))
	}

	vectors := make([]pgvector.Vector, len(res.Embeddings))
	for i, e := range res.Embeddings {
		vectors[i] = pgvector.NewVector(e.Values)
	}
	return vectors, nil
}

func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	m := c.client.GenerativeModel(c.genModel)
	m.SetTemperature(0.3)
	m.SetTopP(0.5)
	m.SetTopK(20)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no content generated")
	}

	content := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	return strings.TrimSpace(content), nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}
