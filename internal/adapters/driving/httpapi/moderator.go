package httpapi

import (
	"net/http"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/ports/driving"
)

// NewModeratorHandler serves safety verdicts. The moderator itself fails
// closed, so the endpoint always answers 200 with a boolean.
func NewModeratorHandler(moderator driving.Moderator) http.Handler {
	r := newRouter("moderator")

	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		var in struct {
			Question string `json:"question"`
		}
		if err := decodeJSON(req, &in); err != nil {
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}
		if in.Question == "" {
			writeError(w, http.StatusBadRequest, "question is required")
			return
		}

		safe := moderator.Check(req.Context(), in.Question)
		writeJSON(w, http.StatusOK, map[string]bool{"is_safe": safe})
	}).Methods(http.MethodPost)

	return r
}
