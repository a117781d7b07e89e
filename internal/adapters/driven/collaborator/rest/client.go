// Package rest implements the collaborator ports over plain HTTP/JSON.
//
// Every collaborator speaks the same shape of protocol: POST a small
// JSON object to the service root, read a small JSON object back. The
// clients here differ only in their payloads.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// callTimeout bounds one collaborator round trip. Generation is excluded
// from this bound; see GenerationClient.
const callTimeout = 15 * time.Second

// generationTimeout is the looser bound for the generation collaborator,
// which sits in front of a slow completion backend.
const generationTimeout = 120 * time.Second

// postJSON sends the request, enforces a 2xx status, and decodes the
// response into out. Callers wrap the returned error into a domain
// sentinel.
func postJSON(ctx context.Context, client *http.Client, url string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &statusError{url: url, status: resp.StatusCode, detail: string(bytes.TrimSpace(detail))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &decodeError{url: url, cause: err}
	}
	return nil
}

// statusError is a non-2xx collaborator reply.
type statusError struct {
	url    string
	status int
	detail string
}

func (e *statusError) Error() string {
	if e.detail == "" {
		return fmt.Sprintf("%s returned status %d", e.url, e.status)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.url, e.status, e.detail)
}

// decodeError is a 2xx reply whose body did not parse.
type decodeError struct {
	url   string
	cause error
}

func (e *decodeError) Error() string {
	return fmt.Sprintf("decode response from %s: %v", e.url, e.cause)
}

func newClient(client *http.Client, timeout time.Duration) *http.Client {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: timeout}
}
