package httpapi

import (
	"net/http"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/domain"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/ports/driven"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/ports/driving"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/logger"
)

// NewOrchestratorHandler serves the ask pipeline and the log passthrough.
// logs may be nil, in which case /log records locally only.
func NewOrchestratorHandler(pipeline driving.AskPipeline, logs driven.LogClient) http.Handler {
	r := newRouter("orchestrator")

	r.HandleFunc("/ask", func(w http.ResponseWriter, req *http.Request) {
		var in domain.AskRequest
		if err := decodeJSON(req, &in); err != nil {
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}
		if in.Question == "" {
			writeError(w, http.StatusBadRequest, "question is required")
			return
		}

		answer := pipeline.Ask(req.Context(), in.Question)
		writeJSON(w, http.StatusOK, domain.AskResponse{Answer: answer})
	}).Methods(http.MethodPost)

	r.HandleFunc("/log", func(w http.ResponseWriter, req *http.Request) {
		var in struct {
			Name    string `json:"name"`
			Level   string `json:"level"`
			Message string `json:"message"`
		}
		if err := decodeJSON(req, &in); err != nil {
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		level, _ := logger.ParseLevel(in.Level)
		logger.At(level, "[%s] %s", in.Name, in.Message)
		if logs != nil {
			if err := logs.Log(req.Context(), in.Name, in.Level, in.Message); err != nil {
				logger.Warn("log forwarding failed: %v", err)
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
	}).Methods(http.MethodPost)

	return r
}
