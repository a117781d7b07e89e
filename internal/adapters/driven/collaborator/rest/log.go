package rest

import (
	"context"
	"net/http"
)

// LogClient forwards log records to the log sink service.
type LogClient struct {
	url    string
	client *http.Client
}

// NewLogClient points at the log sink's base URL.
func NewLogClient(url string, client *http.Client) *LogClient {
	return &LogClient{url: url, client: newClient(client, callTimeout)}
}

type logRequest struct {
	Name    string `json:"name"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Log ships one record. The sink's reply body is ignored; only delivery
// matters.
func (c *LogClient) Log(ctx context.Context, name, level, message string) error {
	if err := postJSON(ctx, c.client, c.url, logRequest{Name: name, Level: level, Message: message}, nil); err != nil {
		return wrapCallError(err)
	}
	return nil
}
