package httpapi

import (
	"net/http"

	"github.com/Zea-Zee/yandex-LLM-safety-camp/internal/logger"
)

// NewLogsinkHandler serves the logging collaborator: it records every
// posted message through the process logger. Unknown levels are coerced
// to error rather than rejected.
func NewLogsinkHandler() http.Handler {
	r := newRouter("logsink")

	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		var in struct {
			Name    string `json:"name"`
			Level   string `json:"level"`
			Message string `json:"message"`
		}
		if err := decodeJSON(req, &in); err != nil {
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		level, known := logger.ParseLevel(in.Level)
		if !known {
			logger.Warn("unknown log level %q coerced to %s", in.Level, level)
		}
		if in.Name != "" {
			logger.At(level, "[%s] %s", in.Name, in.Message)
		} else {
			logger.At(level, "%s", in.Message)
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"status":       "success",
			"logged_level": level.String(),
			"message":      "Message logged successfully",
		})
	}).Methods(http.MethodPost)

	return r
}
