package services

import (
	"context"
	"fmt"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/domain"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/ports/driven"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/ports/driving"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/injection"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/logger"
)

// Ensure AskService implements the interface.
var _ driving.AskPipeline = (*AskService)(nil)

// askPromptFormat is the system instruction wrapped around the retrieved
// context before generation.
const askPromptFormat = `Context: %s
Use the context to answer the question.
If the context does not match the question, do not use it and answer as if there were no context.
If the context is not sufficient for a complete answer, supplement the answer with your own knowledge.`

// AskService runs the staged question pipeline: heuristic injection
// filter, moderation, retrieval, generation. Every stage failure maps to
// a fixed user-facing message; callers never see a raw error.
type AskService struct {
	moderation driven.ModerationClient
	retrieval  driven.RetrievalClient
	generation driven.GenerationClient
}

// NewAskService wires the pipeline over its three collaborators.
func NewAskService(moderation driven.ModerationClient, retrieval driven.RetrievalClient, generation driven.GenerationClient) *AskService {
	return &AskService{moderation: moderation, retrieval: retrieval, generation: generation}
}

// Ask answers one question. The result is always presentable to the end
// user.
func (s *AskService) Ask(ctx context.Context, question string) string {
	if injection.Suspicious(question) {
		logger.Warn("injection attempt rejected before moderation")
		return domain.MsgInjectionRejected
	}

	safe, err := s.moderation.Check(ctx, question)
	if err != nil {
		// Fail closed: an unreachable moderator never lets a question
		// through.
		logger.Error("moderation unavailable, rejecting: %v", err)
		safe = false
	}
	if !safe {
		logger.Info("question rejected by moderation")
		return domain.MsgModerationRejected
	}

	contextText, err := s.retrieval.Context(ctx, question)
	if err != nil {
		logger.Error("retrieval failed: %v", err)
		return domain.MsgUnavailable
	}

	answer, err := s.generation.Generate(ctx, fmt.Sprintf(askPromptFormat, contextText), question)
	if err != nil {
		logger.Error("generation failed: %v", err)
		return domain.MsgUnavailable
	}

	return answer
}
