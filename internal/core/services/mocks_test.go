package services

import (
	"context"
	"hash/fnv"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/domain"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/ports/driven"
)

// fakeStore is an in-memory object store with per-method error injection.
type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    []string

	listErr   error
	fetchErr  error
	putErr    error
	existsErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (s *fakeStore) List(_ context.Context, prefix string) ([]driven.ObjectInfo, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var infos []driven.ObjectInfo
	for key, data := range s.objects {
		if strings.HasPrefix(key, prefix) {
			infos = append(infos, driven.ObjectInfo{Key: key, Size: int64(len(data))})
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

func (s *fakeStore) Fetch(_ context.Context, key string) ([]byte, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, domain.ErrStorageUnavailable
	}
	return data, nil
}

func (s *fakeStore) Put(_ context.Context, key string, data []byte) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	s.puts = append(s.puts, key)
	return nil
}

func (s *fakeStore) Exists(_ context.Context, key string) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok, nil
}

// fakeEmbedder derives a deterministic vector from the text and counts
// every embedded text.
type fakeEmbedder struct {
	embedded atomic.Int64
	err      error
}

func embeddingFor(text string) []float32 {
	h := fnv.New64a()
	h.Write([]byte(text))
	sum := h.Sum64()
	v := make([]float32, 4)
	for i := range v {
		v[i] = float32(byte(sum>>(8*i)))/255 + 0.01
	}
	return v
}

func (e *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.embedded.Add(1)
	return embeddingFor(text), nil
}

func (e *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.embedded.Add(int64(len(texts)))
	vectors := make([][]float32, len(texts))
	for i, t := range texts {
		vectors[i] = embeddingFor(t)
	}
	return vectors, nil
}

// fakeBuilder hands out a canned corpus and counts builds.
type fakeBuilder struct {
	chunks  []domain.Chunk
	vectors [][]float32
	err     error
	builds  atomic.Int64
}

func (b *fakeBuilder) BuildCorpus(context.Context) ([]domain.Chunk, [][]float32, error) {
	b.builds.Add(1)
	if b.err != nil {
		return nil, nil, b.err
	}
	return b.chunks, b.vectors, nil
}

// fakeModeration is a canned moderation collaborator.
type fakeModeration struct {
	safe  bool
	err   error
	calls atomic.Int64
}

func (m *fakeModeration) Check(context.Context, string) (bool, error) {
	m.calls.Add(1)
	return m.safe, m.err
}

// fakeRetrieval is a canned retrieval collaborator.
type fakeRetrieval struct {
	context string
	err     error
	calls   atomic.Int64
}

func (r *fakeRetrieval) Context(context.Context, string) (string, error) {
	r.calls.Add(1)
	return r.context, r.err
}

// fakeGeneration records the prompts it was given.
type fakeGeneration struct {
	answer string
	err    error
	calls  atomic.Int64

	mu         sync.Mutex
	lastSystem string
	lastUser   string
}

func (g *fakeGeneration) Generate(_ context.Context, system, user string) (string, error) {
	g.calls.Add(1)
	g.mu.Lock()
	g.lastSystem, g.lastUser = system, user
	g.mu.Unlock()
	if g.err != nil {
		return "", g.err
	}
	return g.answer, nil
}

// fakeSearcher returns fixed hits.
type fakeSearcher struct {
	hits  []driven.VectorHit
	err   error
	lastK int
}

func (s *fakeSearcher) Search(_ context.Context, _ []float32, k int) ([]driven.VectorHit, error) {
	s.lastK = k
	if s.err != nil {
		return nil, s.err
	}
	return s.hits, nil
}
