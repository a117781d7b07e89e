// Package services contains the application core: corpus ingestion, the
// index cache lifecycle, retrieval, moderation and the ask pipeline. Each
// service is wired from ports at startup and holds no per-request state.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/domain"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/ports/driven"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/logger"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/normalisers"
)

// ChunkProcessor splits one normalised document into retrieval chunks.
type ChunkProcessor interface {
	Process(doc domain.Document) []domain.Chunk
}

// IngestService turns the raw bucket contents into an embedded corpus:
// list, fetch, normalise, chunk, embed. Individual bad documents are
// logged and skipped; only storage-level and embedding-level failures
// abort the run.
type IngestService struct {
	store    driven.ObjectStore
	registry driven.NormaliserRegistry
	chunker  ChunkProcessor
	embedder driven.EmbeddingService

	prefix string
	// excludePrefix hides the cached index pair from ingestion when it
	// lives under the corpus prefix.
	excludePrefix string
}

// NewIngestService wires an ingestion run over the given prefix. Keys
// under excludePrefix are never treated as corpus documents.
func NewIngestService(
	store driven.ObjectStore,
	registry driven.NormaliserRegistry,
	chunker ChunkProcessor,
	embedder driven.EmbeddingService,
	prefix, excludePrefix string,
) *IngestService {
	return &IngestService{
		store:         store,
		registry:      registry,
		chunker:       chunker,
		embedder:      embedder,
		prefix:        prefix,
		excludePrefix: excludePrefix,
	}
}

// BuildCorpus produces the parallel chunk and vector slices an index is
// built from. An empty corpus yields one placeholder chunk so the caller
// never builds an empty index.
func (s *IngestService) BuildCorpus(ctx context.Context) ([]domain.Chunk, [][]float32, error) {
	objects, err := s.store.List(ctx, s.prefix)
	if err != nil {
		return nil, nil, fmt.Errorf("list corpus: %w", err)
	}

	var chunks []domain.Chunk
	for _, obj := range objects {
		if s.skip(obj) {
			continue
		}
		doc, ok := s.loadDocument(ctx, obj.Key)
		if !ok {
			continue
		}
		chunks = append(chunks, s.chunker.Process(doc)...)
	}

	if len(chunks) == 0 {
		logger.Warn("corpus is empty, indexing placeholder")
		chunks = []domain.Chunk{{
			ID:      uuid.NewString(),
			Content: domain.PlaceholderContent,
		}}
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, nil, fmt.Errorf("embed corpus: %w", err)
	}

	logger.Info("ingested %d chunks from %d objects", len(chunks), len(objects))
	return chunks, vectors, nil
}

// skip filters out non-documents: directory markers, empty objects and
// the cached index pair.
func (s *IngestService) skip(obj driven.ObjectInfo) bool {
	if strings.HasSuffix(obj.Key, "/") || obj.Size == 0 {
		return true
	}
	return s.excludePrefix != "" && strings.HasPrefix(obj.Key, s.excludePrefix)
}

// loadDocument fetches and normalises one object. Per-document failures
// are logged and reported as not-ok.
func (s *IngestService) loadDocument(ctx context.Context, key string) (domain.Document, bool) {
	data, err := s.store.Fetch(ctx, key)
	if err != nil {
		logger.Warn("skipping %s: %v", key, err)
		return domain.Document{}, false
	}

	origin := normalisers.OriginForKey(key)
	n, err := s.registry.ForOrigin(origin)
	if err != nil {
		logger.Warn("skipping %s: no normaliser for %s", key, origin)
		return domain.Document{}, false
	}

	content, err := n.Normalise(ctx, key, data)
	if err != nil {
		logger.Warn("skipping %s: %v", key, err)
		return domain.Document{}, false
	}
	if content == "" {
		logger.Warn("skipping %s: no text content", key)
		return domain.Document{}, false
	}

	return domain.Document{Key: key, Content: content, Origin: origin}, true
}
