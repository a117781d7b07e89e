package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/ports/driven"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/ports/driving"
)

// Ensure RetrievalService implements the interface.
var _ driving.Retriever = (*RetrievalService)(nil)

// IndexSearcher is the slice of IndexManager retrieval needs.
type IndexSearcher interface {
	Search(ctx context.Context, vector []float32, k int) ([]driven.VectorHit, error)
}

// RetrievalService answers a question with a context string: the top-k
// nearest chunks joined with blank lines, nearest first.
type RetrievalService struct {
	embedder driven.EmbeddingService
	index    IndexSearcher
	topK     int
}

// NewRetrievalService wires retrieval over the given index. topK values
// below one fall back to the index default.
func NewRetrievalService(embedder driven.EmbeddingService, index IndexSearcher, topK int) *RetrievalService {
	return &RetrievalService{embedder: embedder, index: index, topK: topK}
}

// Retrieve embeds the question and assembles the context string.
func (s *RetrievalService) Retrieve(ctx context.Context, question string) (string, error) {
	vector, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return "", fmt.Errorf("embed question: %w", err)
	}

	hits, err := s.index.Search(ctx, vector, s.topK)
	if err != nil {
		return "", fmt.Errorf("search index: %w", err)
	}

	parts := make([]string, len(hits))
	for i, hit := range hits {
		parts[i] = hit.Chunk.Content
	}
	return strings.Join(parts, "\n\n"), nil
}
