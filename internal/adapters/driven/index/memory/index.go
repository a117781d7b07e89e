// Package memory provides a brute-force in-memory vector index.
//
// The corpus this system serves is small enough that exact cosine search
// beats an ANN structure: no build parameters, deterministic results, and a
// trivial serialized form for the object-storage cache.
package memory

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/domain"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// DefaultK is the number of neighbours returned when the caller does not
// specify k.
const DefaultK = 3

// Index holds (vector, chunk) pairs and answers k-nearest-neighbour
// queries by cosine distance. It is write-once: Build or Restore populates
// it exactly once, after which it is read-only and safe for concurrent
// queries without locking.
type Index struct {
	mu      sync.RWMutex
	built   bool
	dim     int
	vectors [][]float32
	norms   []float64
	chunks  []domain.Chunk
}

// New creates an empty index.
func New() *Index {
	return &Index{}
}

// Build populates the index from parallel chunk and vector slices.
func (idx *Index) Build(chunks []domain.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("%w: %d chunks but %d vectors", domain.ErrInvalidInput, len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return fmt.Errorf("%w: refusing to build an empty index", domain.ErrInvalidInput)
	}

	dim := len(vectors[0])
	norms := make([]float64, len(vectors))
	for i, v := range vectors {
		if len(v) != dim {
			return fmt.Errorf("%w: vector %d has dimension %d, want %d", domain.ErrInvalidInput, i, len(v), dim)
		}
		norms[i] = norm(v)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.built {
		return errors.New("memory: index already built")
	}
	idx.built = true
	idx.dim = dim
	idx.vectors = vectors
	idx.norms = norms
	idx.chunks = chunks
	return nil
}

// Search returns the k nearest chunks by ascending cosine distance.
// Ties are broken by chunk insertion order.
func (idx *Index) Search(_ context.Context, vector []float32, k int) ([]driven.VectorHit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if !idx.built {
		return nil, fmt.Errorf("%w: index not built", domain.ErrIndexUnavailable)
	}
	if len(vector) != idx.dim {
		return nil, fmt.Errorf("%w: query dimension %d, index dimension %d", domain.ErrInvalidInput, len(vector), idx.dim)
	}
	if k <= 0 {
		k = DefaultK
	}
	if k > len(idx.chunks) {
		k = len(idx.chunks)
	}

	qn := norm(vector)
	order := make([]int, len(idx.vectors))
	dists := make([]float64, len(idx.vectors))
	for i := range idx.vectors {
		order[i] = i
		dists[i] = cosineDistance(vector, qn, idx.vectors[i], idx.norms[i])
	}

	// SliceStable keeps insertion order among equal distances.
	sort.SliceStable(order, func(a, b int) bool {
		return dists[order[a]] < dists[order[b]]
	})

	hits := make([]driven.VectorHit, 0, k)
	for _, i := range order[:k] {
		hits = append(hits, driven.VectorHit{Chunk: idx.chunks[i], Distance: dists[i]})
	}
	return hits, nil
}

// Len returns the number of indexed chunks.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.chunks)
}

// snapshotVectors is the gob payload of the vectors blob.
type snapshotVectors struct {
	Dim     int
	Vectors [][]float32
}

// Snapshot serializes the built index into the cacheable blob pair.
func (idx *Index) Snapshot() (driven.IndexBlobs, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if !idx.built {
		return driven.IndexBlobs{}, fmt.Errorf("%w: nothing to snapshot", domain.ErrIndexUnavailable)
	}

	var vecBuf bytes.Buffer
	if err := gob.NewEncoder(&vecBuf).Encode(snapshotVectors{Dim: idx.dim, Vectors: idx.vectors}); err != nil {
		return driven.IndexBlobs{}, fmt.Errorf("encode vectors: %w", err)
	}

	var chunkBuf bytes.Buffer
	if err := gob.NewEncoder(&chunkBuf).Encode(idx.chunks); err != nil {
		return driven.IndexBlobs{}, fmt.Errorf("encode chunks: %w", err)
	}

	return driven.IndexBlobs{Vectors: vecBuf.Bytes(), Chunks: chunkBuf.Bytes()}, nil
}

// Restore populates the index from a snapshot previously produced by
// Snapshot.
func (idx *Index) Restore(blobs driven.IndexBlobs) error {
	var vecs snapshotVectors
	if err := gob.NewDecoder(bytes.NewReader(blobs.Vectors)).Decode(&vecs); err != nil {
		return fmt.Errorf("decode vectors: %w", err)
	}

	var chunks []domain.Chunk
	if err := gob.NewDecoder(bytes.NewReader(blobs.Chunks)).Decode(&chunks); err != nil {
		return fmt.Errorf("decode chunks: %w", err)
	}

	return idx.Build(chunks, vecs.Vectors)
}

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// cosineDistance is 1 - cosine similarity. Zero vectors are maximally
// distant from everything.
func cosineDistance(a []float32, an float64, b []float32, bn float64) float64 {
	if an == 0 || bn == 0 {
		return 1
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return 1 - dot/(an*bn)
}
