// Package pdf normalises PDF payloads by extracting text page by page.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/domain"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/ports/driven"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles PDF documents.
type Normaliser struct{}

// New creates a new PDF normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Origin returns the raw format this normaliser handles.
func (n *Normaliser) Origin() domain.Origin {
	return domain.OriginPDF
}

// Normalise extracts text from every page. A page that fails extraction
// contributes nothing; a single bad page never aborts the document. Only a
// payload that is not a PDF at all is unreadable.
func (n *Normaliser) Normalise(_ context.Context, key string, data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrUnreadableDocument, key, err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		text, err := extractPage(reader, i)
		if err != nil {
			logger.Warn("skipping page %d of %s: %v", i, key, err)
			continue
		}
		if text == "" {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return strings.TrimSpace(sb.String()), nil
}

// extractPage pulls the plain text of one page. The underlying parser
// panics on some malformed content streams, so the panic is converted into
// a per-page error here.
func extractPage(reader *pdf.Reader, num int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("content stream: %v", rec)
		}
	}()

	page := reader.Page(num)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}
