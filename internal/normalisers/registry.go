// Package normalisers converts raw corpus payloads into plain text.
package normalisers

import (
	"path"
	"strings"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/domain"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry selects a normaliser by document origin.
type Registry struct {
	byOrigin map[domain.Origin]driven.Normaliser
}

// NewRegistry creates a registry over the given normalisers. A later
// normaliser for the same origin replaces an earlier one.
func NewRegistry(ns ...driven.Normaliser) *Registry {
	r := &Registry{byOrigin: make(map[domain.Origin]driven.Normaliser, len(ns))}
	for _, n := range ns {
		r.byOrigin[n.Origin()] = n
	}
	return r
}

// ForOrigin returns the normaliser registered for the origin.
func (r *Registry) ForOrigin(origin domain.Origin) (driven.Normaliser, error) {
	n, ok := r.byOrigin[origin]
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	return n, nil
}

// OriginForKey derives the document origin from a storage key's extension.
// Everything that is not a PDF is treated as plain text.
func OriginForKey(key string) domain.Origin {
	if strings.EqualFold(path.Ext(key), ".pdf") {
		return domain.OriginPDF
	}
	return domain.OriginPlain
}
