package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorageUnavailable indicates object storage cannot be reached or
	// refused the request. The ingest path falls back to the placeholder
	// corpus rather than failing outright.
	ErrStorageUnavailable = errors.New("object storage unavailable")

	// ErrUnreadableDocument indicates a single document could not be
	// decoded. Per-document only: the document is dropped from the corpus
	// and ingestion continues.
	ErrUnreadableDocument = errors.New("unreadable document")

	// ErrIndexUnavailable indicates the vector index could not be built or
	// queried, typically because the embedding backend is unreachable.
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// ErrCredentialUnavailable indicates the identity endpoint refused or
	// failed the token exchange. Generation must fail rather than proceed
	// unauthenticated.
	ErrCredentialUnavailable = errors.New("credential unavailable")

	// ErrCollaboratorUnreachable indicates a moderation, retrieval,
	// generation or logging collaborator could not be reached or answered
	// with a non-200 status.
	ErrCollaboratorUnreachable = errors.New("collaborator unreachable")

	// ErrMalformedResponse indicates a collaborator answered 200 but the
	// payload could not be decoded or is missing required fields.
	ErrMalformedResponse = errors.New("malformed response")
)
