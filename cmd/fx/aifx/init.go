package aifx

import (
	"log"
	"os"
	"strings"

	"go.uber.org/fx"
	"tralli/pkg/utils"
)

var Module = fx.Provide(
	ProvideEmbeddingClient,
	ProvideGenerationClient)

// EmbeddingConfig holds configuration for embedding clients
type EmbeddingConfig struct {
	Provider string
	APIKey   string
	Model    string
}

// ProvideEmbeddingClient creates an embedding client based on environment
// variables. A missing API key degrades retrieval to empty results instead of
// preventing startup, so the rest of the service keeps working.
func ProvideEmbeddingClient() utils.EmbeddingClientInterface {
	config := getEmbeddingConfig()
	if config.APIKey == "" {
		log.Printf("No API key for embedding provider %s; retrieval will return empty results", config.Provider)
		return nil
	}

	log.Printf("Initializing %s embedding client with model: %s", config.Provider, config.Model)

	client, err := utils.NewEmbeddingClient(config.Provider, config.APIKey, config.Model)
	if err != nil {
		log.Printf("Failed to create embedding client: %v; retrieval will return empty results", err)
		return nil
	}
	return client
}

// ProvideGenerationClient creates the Gemini text-generation client used for
// query classification and city-name correction. Without a key both fall back
// to their local defaults.
func ProvideGenerationClient() utils.GenerationClientInterface {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Printf("GEMINI_API_KEY not set; classification falls back to the default category")
		return nil
	}

	model := getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash")
	client, err := utils.NewGeminiClient(apiKey, "", model)
	if err != nil {
		log.Printf("Failed to create Gemini client: %v; classification falls back to the default category", err)
		return nil
	}
	return client
}

// getEmbeddingConfig reads configuration from environment variables
func getEmbeddingConfig() EmbeddingConfig {
	provider := getEnvWithDefault("EMBEDDING_PROVIDER", "gemini")

	var apiKey, model string

	switch strings.ToLower(provider) {
	case "openai":
		apiKey = os.Getenv("OPENAI_API_KEY")
		model = getEnvWithDefault("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small")
	case "gemini":
		apiKey = os.Getenv("GEMINI_API_KEY")
		model = getEnvWithDefault("GOOGLE_EMBEDDING_MODEL", "text-embedding-004")
	}

	return EmbeddingConfig{
		Provider: provider,
		APIKey:   apiKey,
		Model:    model,
	}
}

// getEnvWithDefault returns environment variable or default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
