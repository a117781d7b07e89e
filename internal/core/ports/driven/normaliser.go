package driven

import (
	"context"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/domain"
)

// Normaliser transforms a raw payload into plain text.
// Each normaliser handles exactly one document origin.
type Normaliser interface {
	// Origin returns the raw format this normaliser handles.
	Origin() domain.Origin

	// Normalise extracts the text content of the payload. The result is
	// trimmed; an empty result means the document carries no usable text
	// and the caller drops it. A payload that cannot be decoded at all is
	// reported as domain.ErrUnreadableDocument.
	Normalise(ctx context.Context, key string, data []byte) (string, error)
}

// NormaliserRegistry selects a normaliser for a document origin.
type NormaliserRegistry interface {
	// ForOrigin returns the normaliser registered for the origin, or
	// domain.ErrInvalidInput if none is registered.
	ForOrigin(origin domain.Origin) (Normaliser, error)
}
