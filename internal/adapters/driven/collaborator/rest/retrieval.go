package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/domain"
)

// RetrievalClient fetches grounding context from the retrieval service.
type RetrievalClient struct {
	url    string
	client *http.Client
}

// NewRetrievalClient points at the retrieval service's base URL.
func NewRetrievalClient(url string, client *http.Client) *RetrievalClient {
	return &RetrievalClient{url: url, client: newClient(client, callTimeout)}
}

type retrievalRequest struct {
	Question string `json:"question"`
}

type retrievalResponse struct {
	Context *string `json:"context"`
}

// Context returns the concatenated passages relevant to the question.
func (c *RetrievalClient) Context(ctx context.Context, question string) (string, error) {
	var rsp retrievalResponse
	if err := postJSON(ctx, c.client, c.url, retrievalRequest{Question: question}, &rsp); err != nil {
		return "", wrapCallError(err)
	}
	if rsp.Context == nil {
		return "", fmt.Errorf("%w: retrieval reply has no context", domain.ErrMalformedResponse)
	}
	return *rsp.Context, nil
}
