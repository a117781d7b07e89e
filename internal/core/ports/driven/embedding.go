package driven

import "context"

// EmbeddingService generates vector embeddings from text. For a fixed model
// the embedding is a pure function of the input text.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in one request.
	// The result preserves input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
