// Package yandex implements the completion port against the Yandex
// foundation-model REST endpoint.
package yandex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/domain"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/ports/driven"
)

// Ensure Service implements the interface.
var _ driven.LLMService = (*Service)(nil)

const (
	// completionTimeout bounds one completion round trip. Generation on
	// long contexts is slow, so this is far above the collaborator
	// timeouts.
	completionTimeout = 120 * time.Second

	// DefaultModel is used when the configuration names none.
	DefaultModel = "yandexgpt-lite"
)

// Config describes one completion backend.
type Config struct {
	// Endpoint is the completion URL.
	Endpoint string

	// FolderID scopes the model URI and the x-folder-id header.
	FolderID string

	// Model is the short model name, e.g. "yandexgpt-lite".
	Model string

	// Temperature and MaxTokens are passed through as completion options.
	Temperature float64
	MaxTokens   int

	// RequestsPerSecond throttles outgoing completions. Zero disables
	// throttling.
	RequestsPerSecond float64

	// HTTPClient overrides the transport. Used in tests.
	HTTPClient *http.Client
}

// Service calls the completion endpoint with a bearer token taken from
// the token source on every request.
type Service struct {
	cfg     Config
	tokens  oauth2.TokenSource
	client  *http.Client
	limiter *rate.Limiter
}

// New returns a Service. The token source must already be cached; the
// service does not manage credential lifetimes itself.
func New(cfg Config, tokens oauth2.TokenSource) (*Service, error) {
	if cfg.Endpoint == "" || cfg.FolderID == "" {
		return nil, fmt.Errorf("%w: completion endpoint and folder are required", domain.ErrInvalidInput)
	}
	if tokens == nil {
		return nil, fmt.Errorf("%w: token source is required", domain.ErrInvalidInput)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: completionTimeout}
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Service{cfg: cfg, tokens: tokens, client: client, limiter: limiter}, nil
}

type completionMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type completionRequest struct {
	ModelURI          string `json:"modelUri"`
	CompletionOptions struct {
		Stream      bool    `json:"stream"`
		Temperature float64 `json:"temperature"`
		MaxTokens   int     `json:"maxTokens"`
	} `json:"completionOptions"`
	Messages []completionMessage `json:"messages"`
}

type completionResponse struct {
	Result struct {
		Alternatives []struct {
			Message completionMessage `json:"message"`
		} `json:"alternatives"`
	} `json:"result"`
}

// Complete sends a system+user prompt pair and returns the first
// alternative's text.
func (s *Service) Complete(ctx context.Context, system, user string) (string, error) {
	if user == "" {
		return "", fmt.Errorf("%w: empty user prompt", domain.ErrInvalidInput)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCollaboratorUnreachable, err)
	}

	token, err := s.tokens.Token()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCredentialUnavailable, err)
	}

	req := completionRequest{
		ModelURI: fmt.Sprintf("gpt://%s/%s", s.cfg.FolderID, s.cfg.Model),
	}
	req.CompletionOptions.Stream = false
	req.CompletionOptions.Temperature = s.cfg.Temperature
	req.CompletionOptions.MaxTokens = s.cfg.MaxTokens
	if system != "" {
		req.Messages = append(req.Messages, completionMessage{Role: "system", Text: system})
	}
	req.Messages = append(req.Messages, completionMessage{Role: "user", Text: user})

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCollaboratorUnreachable, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCollaboratorUnreachable, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token.AccessToken)
	httpReq.Header.Set("x-folder-id", s.cfg.FolderID)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: completion: %v", domain.ErrCollaboratorUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: completion returned status %d: %s", domain.ErrCollaboratorUnreachable, resp.StatusCode, bytes.TrimSpace(detail))
	}

	var decoded completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: decode completion: %v", domain.ErrMalformedResponse, err)
	}
	if len(decoded.Result.Alternatives) == 0 {
		return "", fmt.Errorf("%w: completion has no alternatives", domain.ErrMalformedResponse)
	}

	return decoded.Result.Alternatives[0].Message.Text, nil
}
