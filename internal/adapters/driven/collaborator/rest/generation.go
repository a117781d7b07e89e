package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/domain"
)

// GenerationClient requests completions from the gateway service.
type GenerationClient struct {
	url    string
	client *http.Client
}

// NewGenerationClient points at the gateway's base URL. The client's
// timeout is generous: the gateway itself is waiting on a slow model.
func NewGenerationClient(url string, client *http.Client) *GenerationClient {
	return &GenerationClient{url: url, client: newClient(client, generationTimeout)}
}

type generationRequest struct {
	User   string `json:"user"`
	System string `json:"system,omitempty"`
}

type generationResponse struct {
	Answer *string `json:"gpt_answer"`
}

// Generate returns the model's answer for the prompt pair.
func (c *GenerationClient) Generate(ctx context.Context, system, user string) (string, error) {
	var rsp generationResponse
	if err := postJSON(ctx, c.client, c.url, generationRequest{User: user, System: system}, &rsp); err != nil {
		return "", wrapCallError(err)
	}
	if rsp.Answer == nil {
		return "", fmt.Errorf("%w: gateway reply has no answer", domain.ErrMalformedResponse)
	}
	return *rsp.Answer, nil
}
