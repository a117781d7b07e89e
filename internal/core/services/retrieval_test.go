package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/domain"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/ports/driven"
)

func TestRetrieve(t *testing.T) {
	searcher := &fakeSearcher{hits: []driven.VectorHit{
		{Chunk: domain.Chunk{Content: "Refunds within 30 days."}, Distance: 0.1},
		{Chunk: domain.Chunk{Content: "Contact support by email."}, Distance: 0.2},
	}}
	svc := NewRetrievalService(&fakeEmbedder{}, searcher, 3)

	got, err := svc.Retrieve(context.Background(), "refund policy?")
	require.NoError(t, err)

	assert.Equal(t, "Refunds within 30 days.\n\nContact support by email.", got)
	assert.Equal(t, 3, searcher.lastK)
}

func TestRetrieve_NoHits(t *testing.T) {
	svc := NewRetrievalService(&fakeEmbedder{}, &fakeSearcher{}, 3)

	got, err := svc.Retrieve(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRetrieve_EmbedFailure(t *testing.T) {
	embedder := &fakeEmbedder{err: domain.ErrIndexUnavailable}
	svc := NewRetrievalService(embedder, &fakeSearcher{}, 3)

	_, err := svc.Retrieve(context.Background(), "q")
	assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
}

func TestRetrieve_SearchFailure(t *testing.T) {
	searcher := &fakeSearcher{err: domain.ErrIndexUnavailable}
	svc := NewRetrievalService(&fakeEmbedder{}, searcher, 3)

	_, err := svc.Retrieve(context.Background(), "q")
	assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
}
