package rest

import (
	"io"
	"net/http"
)

// handlePing - liveness probe, answers pong while the process serves games.
func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	if _, err := io.WriteString(w, "pong"); err != nil {
		that.logger.Error("failed to write ping response", "error", err)
	}
}
