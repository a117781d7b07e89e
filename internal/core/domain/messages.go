package domain

// Fixed user-facing answers. The pipeline never surfaces raw errors to the
// caller; every failure maps to one of these.
const (
	// MsgInjectionRejected is returned when the heuristic filter matches a
	// prompt-injection pattern, before any collaborator is called.
	MsgInjectionRejected = "Don't try to hack me."

	// MsgModerationRejected is returned when the moderation collaborator
	// flags the question as unsafe (or cannot be reached - fail closed).
	MsgModerationRejected = "Your question did not pass moderation. Please try rephrasing it."

	// MsgUnavailable is returned when retrieval or generation fails.
	MsgUnavailable = "The service is temporarily unavailable. Please try again later."
)

// AskRequest is the orchestrator's inbound payload.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse is the orchestrator's outbound payload. The wire field is
// gpt_answer, which is what the chat front-end reads.
type AskResponse struct {
	Answer string `json:"gpt_answer"`
}
