package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/domain"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/normalisers"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/normalisers/plaintext"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/postprocessors/chunker"
)

func newTestIngest(store *fakeStore, embedder *fakeEmbedder, prefix, exclude string) *IngestService {
	registry := normalisers.NewRegistry(plaintext.New())
	return NewIngestService(store, registry, chunker.New(), embedder, prefix, exclude)
}

func TestBuildCorpus(t *testing.T) {
	store := newFakeStore()
	store.objects["docs/"] = nil // directory marker
	store.objects["docs/faq.txt"] = []byte("Refunds are accepted within 30 days of purchase.")
	store.objects["docs/terms.txt"] = []byte("Support is available on weekdays.")
	store.objects["docs/broken.txt"] = []byte{0xff, 0xfe, 0x00}
	store.objects["docs/empty.txt"] = []byte("   \n  ")
	store.objects["other/readme.txt"] = []byte("outside the prefix")

	embedder := &fakeEmbedder{}
	svc := newTestIngest(store, embedder, "docs/", "")

	chunks, vectors, err := svc.BuildCorpus(context.Background())
	require.NoError(t, err)

	require.Len(t, chunks, 2)
	require.Len(t, vectors, 2)
	assert.Equal(t, "docs/faq.txt", chunks[0].DocumentKey)
	assert.Equal(t, "Refunds are accepted within 30 days of purchase.", chunks[0].Content)
	assert.Equal(t, "docs/terms.txt", chunks[1].DocumentKey)

	assert.EqualValues(t, 2, embedder.embedded.Load())
	for _, c := range chunks {
		assert.NotEmpty(t, c.ID)
	}
}

func TestBuildCorpus_EmptyCorpusYieldsPlaceholder(t *testing.T) {
	store := newFakeStore()
	store.objects["docs/"] = nil

	embedder := &fakeEmbedder{}
	svc := newTestIngest(store, embedder, "docs/", "")

	chunks, vectors, err := svc.BuildCorpus(context.Background())
	require.NoError(t, err)

	require.Len(t, chunks, 1)
	require.Len(t, vectors, 1)
	assert.Equal(t, domain.PlaceholderContent, chunks[0].Content)
}

func TestBuildCorpus_ExcludesCachedIndexPair(t *testing.T) {
	store := newFakeStore()
	store.objects["guide.txt"] = []byte("How to configure the bot.")
	store.objects["_index/vectors.gob"] = []byte("binary")
	store.objects["_index/chunks.gob"] = []byte("binary")

	embedder := &fakeEmbedder{}
	svc := newTestIngest(store, embedder, "", CachePrefix(""))

	chunks, _, err := svc.BuildCorpus(context.Background())
	require.NoError(t, err)

	require.Len(t, chunks, 1)
	assert.Equal(t, "guide.txt", chunks[0].DocumentKey)
}

func TestBuildCorpus_ListFailureAborts(t *testing.T) {
	store := newFakeStore()
	store.listErr = domain.ErrStorageUnavailable

	svc := newTestIngest(store, &fakeEmbedder{}, "docs/", "")

	_, _, err := svc.BuildCorpus(context.Background())
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestBuildCorpus_EmbedFailureAborts(t *testing.T) {
	store := newFakeStore()
	store.objects["docs/faq.txt"] = []byte("text")

	embedder := &fakeEmbedder{err: domain.ErrIndexUnavailable}
	svc := newTestIngest(store, embedder, "docs/", "")

	_, _, err := svc.BuildCorpus(context.Background())
	assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
}
