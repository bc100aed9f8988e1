package embedding

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jonathan/match-engine/internal/types"
)

// Client is an abstraction over embedding providers.
type Client interface {
	// Embed converts one text into a fixed-dimension vector.
	Embed(ctx context.Context, text string) ([]float32, error)
	// EmbedBatch converts texts into vectors in a single provider call,
	// preserving input order. Chunking to the provider batch limit is the
	// Service's job, not the client's.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	// Dimension returns the vector length every call produces.
	Dimension() int
	// Close releases any resources held by the client.
	Close() error
}

// Config holds embedding provider settings.
type Config struct {
	Model     string
	Dimension int
}

// DefaultConfig returns the provider settings the engine is calibrated for.
func DefaultConfig() *Config {
	return &Config{
		Model:     "gemini-embedding-001",
		Dimension: types.EmbeddingDimension,
	}
}

// GeminiClient implements Client for Google Gemini embedding models.
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a Gemini-backed embedding client.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, config: config}, nil
}

// Embed converts one text into a vector.
func (c *GeminiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	model := c.client.EmbeddingModel(c.config.Model)
	resp, err := model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, wrapProviderError("embed content", err)
	}
	if resp.Embedding == nil {
		return nil, &ProviderError{Kind: KindResponse, Message: "no embedding in response"}
	}
	return c.checkDimension(resp.Embedding.Values)
}

// EmbedBatch converts texts into vectors with one provider round trip.
func (c *GeminiClient) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	model := c.client.EmbeddingModel(c.config.Model)
	batch := model.NewBatch()
	for _, text := range texts {
		batch = batch.AddContent(genai.Text(text))
	}

	resp, err := model.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, wrapProviderError("batch embed contents", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, &ProviderError{
			Kind:    KindResponse,
			Message: fmt.Sprintf("expected %d embeddings, got %d", len(texts), len(resp.Embeddings)),
		}
	}

	vectors := make([][]float32, len(texts))
	for i, emb := range resp.Embeddings {
		if emb == nil {
			return nil, &ProviderError{Kind: KindResponse, Message: fmt.Sprintf("missing embedding at index %d", i)}
		}
		vec, err := c.checkDimension(emb.Values)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// Dimension returns the configured vector length.
func (c *GeminiClient) Dimension() int {
	return c.config.Dimension
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// checkDimension rejects vectors whose length does not match the configured
// dimension. Index rows all share one dimension; a mismatched vector would
// poison searches rather than fail cleanly.
func (c *GeminiClient) checkDimension(values []float32) ([]float32, error) {
	if len(values) != c.config.Dimension {
		return nil, &ProviderError{
			Kind:    KindResponse,
			Message: fmt.Sprintf("unexpected embedding dimension %d (model %s configured for %d)", len(values), c.config.Model, c.config.Dimension),
		}
	}
	return values, nil
}
