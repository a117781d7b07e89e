// Package plaintext normalises UTF-8 text payloads.
package plaintext

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/domain"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Origin returns the raw format this normaliser handles.
func (n *Normaliser) Origin() domain.Origin {
	return domain.OriginPlain
}

// Normalise decodes the payload as UTF-8 and trims surrounding whitespace.
// Invalid UTF-8 makes the whole document unreadable; it is dropped from the
// corpus by the caller.
func (n *Normaliser) Normalise(_ context.Context, key string, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8", domain.ErrUnreadableDocument, key)
	}
	return strings.TrimSpace(string(data)), nil
}
