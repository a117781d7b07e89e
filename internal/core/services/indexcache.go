package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/domain"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/ports/driven"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/ports/driving"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/logger"
)

// Ensure IndexManager implements the interface.
var _ driving.Indexer = (*IndexManager)(nil)

// Cached index pair filenames. The pair lives under the prefix returned
// by CachePrefix and both blobs must be present for a cache hit.
const (
	vectorsBlobName = "vectors.gob"
	chunksBlobName  = "chunks.gob"
)

// CachePrefix returns the object-storage prefix the cached index pair is
// stored under for a corpus prefix.
func CachePrefix(corpusPrefix string) string {
	return strings.TrimSuffix(corpusPrefix, "/") + "_index/"
}

// CorpusBuilder produces the embedded corpus an index is built from.
type CorpusBuilder interface {
	BuildCorpus(ctx context.Context) ([]domain.Chunk, [][]float32, error)
}

// IndexManager owns the process-wide vector index. It is ready after the
// first Ensure: either restored from the object-storage cache pair or
// built from the corpus and then uploaded. Concurrent first uses collapse
// into one load-or-build; afterwards reads are lock-free on the immutable
// index.
type IndexManager struct {
	store    driven.ObjectStore
	builder  CorpusBuilder
	newIndex func() driven.VectorIndex

	vectorsKey string
	chunksKey  string

	mu    sync.Mutex
	index driven.VectorIndex
}

// NewIndexManager wires the index lifecycle for one corpus prefix.
// newIndex creates an empty index value; a fresh one is needed per build
// because indexes are write-once.
func NewIndexManager(store driven.ObjectStore, builder CorpusBuilder, newIndex func() driven.VectorIndex, corpusPrefix string) *IndexManager {
	cache := CachePrefix(corpusPrefix)
	return &IndexManager{
		store:      store,
		builder:    builder,
		newIndex:   newIndex,
		vectorsKey: cache + vectorsBlobName,
		chunksKey:  cache + chunksBlobName,
	}
}

// Ensure makes the index ready. It blocks while another caller is already
// loading or building, then returns with the shared result.
func (m *IndexManager) Ensure(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.index != nil {
		return nil
	}

	if idx, ok := m.loadCached(ctx); ok {
		m.index = idx
		return nil
	}

	idx, err := m.build(ctx)
	if err != nil {
		return err
	}
	m.index = idx
	return nil
}

// Rebuild discards the current index, rebuilds from the corpus and
// re-uploads the cache pair.
func (m *IndexManager) Rebuild(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, err := m.build(ctx)
	if err != nil {
		return err
	}
	m.index = idx
	return nil
}

// Search answers a nearest-neighbour query, lazily ensuring the index on
// first use.
func (m *IndexManager) Search(ctx context.Context, vector []float32, k int) ([]driven.VectorHit, error) {
	if err := m.Ensure(ctx); err != nil {
		return nil, err
	}
	return m.index.Search(ctx, vector, k)
}

// Len returns the number of indexed chunks, or zero before the first
// Ensure.
func (m *IndexManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.index == nil {
		return 0
	}
	return m.index.Len()
}

// loadCached probes storage for the blob pair and restores it. Any
// failure falls back to a rebuild.
func (m *IndexManager) loadCached(ctx context.Context) (driven.VectorIndex, bool) {
	for _, key := range []string{m.vectorsKey, m.chunksKey} {
		ok, err := m.store.Exists(ctx, key)
		if err != nil {
			logger.Warn("index cache probe failed for %s: %v", key, err)
			return nil, false
		}
		if !ok {
			logger.Info("no cached index at %s, building from corpus", key)
			return nil, false
		}
	}

	vectors, err := m.store.Fetch(ctx, m.vectorsKey)
	if err != nil {
		logger.Warn("index cache fetch failed: %v", err)
		return nil, false
	}
	chunks, err := m.store.Fetch(ctx, m.chunksKey)
	if err != nil {
		logger.Warn("index cache fetch failed: %v", err)
		return nil, false
	}

	idx := m.newIndex()
	if err := idx.Restore(driven.IndexBlobs{Vectors: vectors, Chunks: chunks}); err != nil {
		logger.Warn("cached index is unusable, rebuilding: %v", err)
		return nil, false
	}

	logger.Info("restored index with %d chunks from cache", idx.Len())
	return idx, true
}

// build runs full ingestion and uploads the fresh snapshot. Upload
// failures are logged and tolerated: the in-memory index stays usable.
func (m *IndexManager) build(ctx context.Context) (driven.VectorIndex, error) {
	chunks, vectors, err := m.builder.BuildCorpus(ctx)
	if err != nil {
		return nil, err
	}

	idx := m.newIndex()
	if err := idx.Build(chunks, vectors); err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	m.upload(ctx, idx)
	return idx, nil
}

func (m *IndexManager) upload(ctx context.Context, idx driven.VectorIndex) {
	blobs, err := idx.Snapshot()
	if err != nil {
		logger.Warn("index snapshot failed, cache not updated: %v", err)
		return
	}
	if err := m.store.Put(ctx, m.vectorsKey, blobs.Vectors); err != nil {
		logger.Warn("index cache upload failed: %v", err)
		return
	}
	if err := m.store.Put(ctx, m.chunksKey, blobs.Chunks); err != nil {
		logger.Warn("index cache upload failed: %v", err)
		return
	}
	logger.Info("uploaded index cache (%d chunks)", idx.Len())
}
