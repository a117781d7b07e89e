// Package httpapi exposes the five JSON services over HTTP. Each service
// is a gorilla/mux router built around one core port; all of them answer
// GET /health with a fixed identity payload for readiness probes.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/domain"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/logger"
)

const shutdownGrace = 10 * time.Second

// newRouter creates a router with the health probe installed.
func newRouter(service string) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": service,
		})
	}).Methods(http.MethodGet)
	return r
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// decodeJSON reads the request body into dst. A body that does not parse
// is the caller's fault, reported as ErrMalformedResponse semantics.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return nil
}

// statusFor maps domain sentinels onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrMalformedResponse):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrCredentialUnavailable),
		errors.Is(err, domain.ErrCollaboratorUnreachable),
		errors.Is(err, domain.ErrStorageUnavailable),
		errors.Is(err, domain.ErrIndexUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ListenAndServe runs a handler on the port until the context is
// cancelled, then drains connections within the shutdown grace period.
func ListenAndServe(ctx context.Context, port int, handler http.Handler) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
