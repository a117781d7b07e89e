// Package openai provides an embedding service over any OpenAI-compatible
// embeddings API, which is what local inference servers expose as well.
package openai

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/domain"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/ports/driven"
)

// Ensure Service implements the interface.
var _ driven.EmbeddingService = (*Service)(nil)

// DefaultModel is used when no model is configured.
const DefaultModel = "text-embedding-3-small"

// Config holds configuration for the embedding service.
type Config struct {
	// APIKey authenticates against the backend.
	APIKey string

	// BaseURL overrides the API base URL for self-hosted backends.
	BaseURL string

	// Model is the embedding model. The model fixes the vector dimension,
	// so it must not change between index build and query.
	Model string
}

// Service generates embeddings through the OpenAI API shape.
type Service struct {
	client *openai.Client
	model  string
}

// NewService creates an embedding service.
func NewService(cfg Config) *Service {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Service{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}
}

// Embed generates a vector embedding for the given text.
func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch generates embeddings for multiple texts in one request,
// preserving input order.
func (s *Service) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	rsp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(s.model),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: embeddings request: %v", domain.ErrIndexUnavailable, err)
	}
	if len(rsp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d inputs", domain.ErrIndexUnavailable, len(rsp.Data), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for _, d := range rsp.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, fmt.Errorf("%w: embedding index %d out of range", domain.ErrIndexUnavailable, d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}
