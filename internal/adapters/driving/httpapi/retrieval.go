package httpapi

import (
	"net/http"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/core/ports/driving"
	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/logger"
)

// NewRetrievalHandler serves top-k context queries. The first query after
// a cold start may block while the index is loaded or built.
func NewRetrievalHandler(retriever driving.Retriever) http.Handler {
	r := newRouter("retrieval")

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

		contextText, err := retriever.Retrieve(req.Context(), in.Question)
		if err != nil {
			logger.Error("retrieval failed: %v", err)
			writeError(w, statusFor(err), "retrieval failed")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"context": contextText})
	}).Methods(http.MethodPost)

	return r
}
