package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/domain"
)

func TestNew_Defaults(t *testing.T) {
	p := New()
	assert.Equal(t, DefaultChunkSize, p.ChunkSize())
	assert.Equal(t, DefaultChunkOverlap, p.Overlap())
}

func TestNew_OverlapCappedBelowChunkSize(t *testing.T) {
	p := New(WithChunkSize(100), WithOverlap(100))
	assert.Equal(t, 25, p.Overlap())
}

func TestSplit_EmptyText(t *testing.T) {
	p := New()
	assert.Empty(t, p.Split(""))
	assert.Empty(t, p.Split("   \n\n  "))
}

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	p := New(WithChunkSize(100), WithOverlap(20))
	chunks := p.Split("a short paragraph")
	require.Len(t, chunks, 1)
	assert.Equal(t, "a short paragraph", chunks[0])
}

func TestSplit_Deterministic(t *testing.T) {
	p := New(WithChunkSize(40), WithOverlap(10))
	text := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 20)

	first := p.Split(text)
	second := p.Split(text)

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestSplit_ChunkSizeBound(t *testing.T) {
	p := New(WithChunkSize(50), WithOverlap(10))
	text := "First paragraph with several words in it.\n\n" +
		"Second paragraph that is noticeably longer and keeps going with more words.\n" +
		"A third line follows here with yet more content to split."

	for _, c := range p.Split(text) {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 50, "chunk %q exceeds window", c)
	}
}

func TestSplit_PrefersParagraphBoundaries(t *testing.T) {
	p := New(WithChunkSize(15), WithOverlap(0))
	chunks := p.Split("short one\n\nshort two")

	require.Len(t, chunks, 2)
	assert.Equal(t, "short one", chunks[0])
	assert.Equal(t, "short two", chunks[1])
}

func TestSplit_DoesNotBreakWordsWhenAvoidable(t *testing.T) {
	p := New(WithChunkSize(20), WithOverlap(0))
	chunks := p.Split("alpha beta gamma delta epsilon zeta")

	for _, c := range chunks {
		for _, w := range strings.Fields(c) {
			assert.Contains(t, []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta"}, w)
		}
	}
}

func TestSplit_OverlapSharedBetweenChunks(t *testing.T) {
	p := New(WithChunkSize(30), WithOverlap(12))
	chunks := p.Split("one two three four five six seven eight nine ten")
	require.Greater(t, len(chunks), 1)

	for i := 1; i < len(chunks); i++ {
		prevWords := strings.Fields(chunks[i-1])
		carried := strings.Fields(chunks[i])[0]
		assert.Contains(t, prevWords, carried,
			"chunk %d should start with a word carried over from chunk %d", i, i-1)
	}
}

func TestSplit_IndivisibleTokenMayExceedWindow(t *testing.T) {
	p := New(WithChunkSize(10), WithOverlap(2))
	long := strings.Repeat("x", 25)
	chunks := p.Split("short " + long + " tail")

	require.NotEmpty(t, chunks)
	var kept bool
	for _, c := range chunks {
		if strings.Contains(c, "x") {
			kept = true
		}
		// Character-level fallback still respects the bound.
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 10)
	}
	assert.True(t, kept, "long token content must not be lost")
}

func TestSplit_CyrillicCountedInRunes(t *testing.T) {
	p := New(WithChunkSize(20), WithOverlap(5))
	text := strings.Repeat("возврат товара ", 10)

	for _, c := range p.Split(text) {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 20)
	}
}

func TestProcess_AssignsPositionsAndKeys(t *testing.T) {
	p := New(WithChunkSize(20), WithOverlap(4))
	doc := domain.Document{
		Key:     "docs/policy.txt",
		Content: "one two three four five six seven eight",
		Origin:  domain.OriginPlain,
	}

	chunks := p.Process(doc)
	require.NotEmpty(t, chunks)

	for i, c := range chunks {
		assert.Equal(t, i, c.Position)
		assert.Equal(t, "docs/policy.txt", c.DocumentKey)
		assert.NotEmpty(t, c.ID)
		assert.NotEmpty(t, c.Content)
	}
}

func TestProcess_SameContentSameSequence(t *testing.T) {
	p := New(WithChunkSize(25), WithOverlap(5))
	doc := domain.Document{Key: "k", Content: strings.Repeat("alpha beta gamma ", 8)}

	a := p.Process(doc)
	b := p.Process(doc)
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Content, b[i].Content)
		assert.Equal(t, a[i].Position, b[i].Position)
	}
}
