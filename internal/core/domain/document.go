package domain

// Origin identifies the raw format a document was ingested from.
type Origin int

const (
	// OriginPlain is UTF-8 plain text.
	OriginPlain Origin = iota

	// OriginPDF is a PDF payload whose text must be extracted.
	OriginPDF
)

// String returns the origin name.
func (o Origin) String() string {
	switch o {
	case OriginPDF:
		return "pdf"
	default:
		return "plain"
	}
}

// Document is the canonical representation of one corpus object after
// normalisation. Documents are transient: once chunked, only the derived
// chunks survive in the index.
type Document struct {
	// Key is the object-storage key the document came from.
	Key string

	// Content is the full normalised text.
	Content string

	// Origin is the raw format the content was extracted from.
	Origin Origin
}

// Chunk is the unit of retrieval: a bounded-length slice of one document's
// text. Consecutive chunks of a document overlap by design.
type Chunk struct {
	// ID is a unique identifier assigned at ingestion.
	ID string

	// DocumentKey links back to the source document's storage key.
	DocumentKey string

	// Content is the chunk text.
	Content string

	// Position is the ordinal position within the source document.
	Position int
}

// PlaceholderContent is indexed when the corpus has no valid documents so
// that the index is never empty.
const PlaceholderContent = "No documents are available."
