package httpapi

import (
	"net/http"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/ports/driven"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/logger"
)

// NewGatewayHandler fronts the completion backend. It is the only service
// holding the IAM credential; collaborators send it plain prompt pairs.
func NewGatewayHandler(llm driven.LLMService) http.Handler {
	r := newRouter("gateway")

	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		var in struct {
			User   string `json:"user"`
			System string `json:"system"`
		}
		if err := decodeJSON(req, &in); err != nil {
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}
		if in.User == "" {
			writeError(w, http.StatusBadRequest, "user is required")
			return
		}

		answer, err := llm.Complete(req.Context(), in.System, in.User)
		if err != nil {
			logger.Error("completion failed: %v", err)
			writeError(w, statusFor(err), "completion failed")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"gpt_answer": answer})
	}).Methods(http.MethodPost)

	return r
}
