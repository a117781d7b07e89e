package driven

import (
	"context"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/domain"
)

// VectorHit is one nearest-neighbour result.
type VectorHit struct {
	// Chunk is the matched chunk.
	Chunk domain.Chunk

	// Distance is the cosine distance to the query (lower is closer).
	Distance float64
}

// IndexBlobs is the serialized form of a vector index: one blob for the
// vectors, one for the chunk payloads. The pair is what gets cached in
// object storage.
type IndexBlobs struct {
	Vectors []byte
	Chunks  []byte
}

// VectorIndex supports k-nearest-neighbour queries over (vector, chunk)
// pairs. An index is built exactly once and is immutable afterwards;
// replacing the corpus means building a new index.
type VectorIndex interface {
	// Build populates the index from parallel chunk and vector slices.
	// It may be called only once per index value.
	Build(chunks []domain.Chunk, vectors [][]float32) error

	// Search returns the k nearest chunks by ascending distance. Ties are
	// broken by chunk insertion order.
	Search(ctx context.Context, vector []float32, k int) ([]VectorHit, error)

	// Len returns the number of indexed chunks.
	Len() int

	// Snapshot serializes the built index.
	Snapshot() (IndexBlobs, error)

	// Restore populates the index from a snapshot. Like Build, it may be
	// called only once per index value.
	Restore(blobs IndexBlobs) error
}
