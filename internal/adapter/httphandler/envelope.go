package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

const msgInternalError = "Internal server error"

// An envelope wraps every response body.
type envelope struct {
	Success       bool      `json:"success"`
	Data          any       `json:"data,omitempty"`
	Error         string    `json:"error,omitempty"`
	Message       string    `json:"message,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	ExecutionTime int64     `json:"executionTime,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	const op = "httphandler.writeJSON"

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}

func writeData(w http.ResponseWriter, data any, started time.Time) {
	writeJSON(w, http.StatusOK, envelope{
		Success:       true,
		Data:          data,
		Timestamp:     time.Now(),
		ExecutionTime: time.Since(started).Milliseconds(),
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{
		Success:   false,
		Error:     msg,
		Timestamp: time.Now(),
	})
}

func writeInternalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, msgInternalError)
}

func setNoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
}
