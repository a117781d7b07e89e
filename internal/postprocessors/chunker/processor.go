// Package chunker splits normalised text into overlapping windows using a
// layered separator strategy: paragraph breaks first, then lines, then
// words, then single characters, so that words are kept intact whenever the
// window allows it.
package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/domain"
)

// DefaultChunkSize is the default window size in characters.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters
// between consecutive chunks.
const DefaultChunkOverlap = 200

// separators is the layered split order. The empty separator splits into
// single characters and always succeeds.
var separators = []string{"\n\n", "\n", " ", ""}

// Processor splits document content into overlapping chunks.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the window size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Overlap must leave room for new content in every window.
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// ChunkSize returns the configured window size.
func (p *Processor) ChunkSize() int { return p.chunkSize }

// Overlap returns the configured overlap.
func (p *Processor) Overlap() int { return p.overlap }

// Process splits one document into ordered chunks. The chunk text sequence
// is a pure function of (content, chunkSize, overlap); only the IDs are
// fresh per call.
func (p *Processor) Process(doc domain.Document) []domain.Chunk {
	pieces := p.Split(doc.Content)

	chunks := make([]domain.Chunk, 0, len(pieces))
	for i, text := range pieces {
		chunks = append(chunks, domain.Chunk{
			ID:          uuid.New().String(),
			DocumentKey: doc.Key,
			Content:     text,
			Position:    i,
		})
	}
	return chunks
}

// Split turns text into overlapping windows of at most chunkSize
// characters. A single token that no separator can break may exceed the
// window.
func (p *Processor) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return p.splitText(text, separators)
}

// splitText splits on the first separator present in the text, recursing
// with the remaining separators for any piece still wider than the window.
func (p *Processor) splitText(text string, seps []string) []string {
	sep := seps[len(seps)-1]
	var rest []string
	for i, s := range seps {
		if s == "" || strings.Contains(text, s) {
			sep = s
			rest = seps[i+1:]
			break
		}
	}

	splits := splitAndFilter(text, sep)

	var final []string
	var good []string
	for _, s := range splits {
		if runeLen(s) < p.chunkSize {
			good = append(good, s)
			continue
		}
		if len(good) > 0 {
			final = append(final, p.mergeSplits(good, sep)...)
			good = nil
		}
		if len(rest) == 0 {
			// Indivisible token wider than the window.
			final = append(final, s)
		} else {
			final = append(final, p.splitText(s, rest)...)
		}
	}
	if len(good) > 0 {
		final = append(final, p.mergeSplits(good, sep)...)
	}
	return final
}

// mergeSplits greedily packs pieces into windows of at most chunkSize
// characters, carrying the trailing pieces that fit within the overlap into
// the next window.
func (p *Processor) mergeSplits(splits []string, sep string) []string {
	sepLen := runeLen(sep)

	var docs []string
	var current []string
	total := 0

	joinLen := func(extra int) int {
		if len(current) > 0 {
			return extra + sepLen
		}
		return extra
	}

	for _, s := range splits {
		l := runeLen(s)
		if total+joinLen(l) > p.chunkSize && len(current) > 0 {
			if doc := joinPieces(current, sep); doc != "" {
				docs = append(docs, doc)
			}
			// Drop leading pieces until the carried tail fits inside the
			// overlap and leaves room for the incoming piece.
			for total > p.overlap || (total+joinLen(l) > p.chunkSize && total > 0) {
				total -= runeLen(current[0])
				if len(current) > 1 {
					total -= sepLen
				}
				current = current[1:]
			}
		}
		total += joinLen(l)
		current = append(current, s)
	}

	if doc := joinPieces(current, sep); doc != "" {
		docs = append(docs, doc)
	}
	return docs
}

// splitAndFilter splits text on sep, dropping empty pieces. The empty
// separator splits into single characters.
func splitAndFilter(text, sep string) []string {
	parts := strings.Split(text, sep)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func joinPieces(pieces []string, sep string) string {
	return strings.TrimSpace(strings.Join(pieces, sep))
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
