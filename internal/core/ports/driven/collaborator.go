package driven

import "context"

// The orchestrator talks to its collaborators over single-endpoint JSON
// protocols. Each client wraps transport failures and non-200 statuses in
// domain.ErrCollaboratorUnreachable and undecodable payloads in
// domain.ErrMalformedResponse.

// ModerationClient asks the moderation collaborator for a safety verdict.
type ModerationClient interface {
	Check(ctx context.Context, question string) (bool, error)
}

// RetrievalClient asks the retrieval collaborator for a context string.
type RetrievalClient interface {
	Context(ctx context.Context, question string) (string, error)
}

// GenerationClient asks the generation collaborator for an answer.
// An empty system string omits the system field from the request.
type GenerationClient interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// LogClient forwards a log record to the logging collaborator.
// Forwarding is best-effort; callers ignore the returned error beyond
// local logging.
type LogClient interface {
	Log(ctx context.Context, name, level, message string) error
}
