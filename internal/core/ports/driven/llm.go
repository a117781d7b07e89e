package driven

import "context"

// LLMService produces a text completion from an optional system instruction
// and a user message. An empty system string means no system message is
// sent.
type LLMService interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
