package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/domain"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/ports/driven"
)

// Ensure the clients implement the collaborator ports.
var (
	_ driven.ModerationClient = (*ModerationClient)(nil)
	_ driven.RetrievalClient  = (*RetrievalClient)(nil)
	_ driven.GenerationClient = (*GenerationClient)(nil)
	_ driven.LogClient        = (*LogClient)(nil)
)

// ModerationClient asks the moderator service for a safety verdict.
type ModerationClient struct {
	url    string
	client *http.Client
}

// NewModerationClient points at the moderator's base URL.
func NewModerationClient(url string, client *http.Client) *ModerationClient {
	return &ModerationClient{url: url, client: newClient(client, callTimeout)}
}

type moderationRequest struct {
	Question string `json:"question"`
}

type moderationResponse struct {
	IsSafe *bool `json:"is_safe"`
}

// Check returns true when the moderator deems the question safe.
func (c *ModerationClient) Check(ctx context.Context, question string) (bool, error) {
	var rsp moderationResponse
	if err := postJSON(ctx, c.client, c.url, moderationRequest{Question: question}, &rsp); err != nil {
		return false, wrapCallError(err)
	}
	if rsp.IsSafe == nil {
		return false, fmt.Errorf("%w: moderator reply has no verdict", domain.ErrMalformedResponse)
	}
	return *rsp.IsSafe, nil
}

// wrapCallError maps transport-level failures onto the domain sentinels.
func wrapCallError(err error) error {
	var decode *decodeError
	if errors.As(err, &decode) {
		return fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrCollaboratorUnreachable, err)
}
