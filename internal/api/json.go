package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

// writeView writes a week or year view and exposes its snapshot as the ETag,
// so clients can echo it back in If-Match when reordering.
func writeView(w http.ResponseWriter, v any, snapshot string) {
	if snapshot != "" {
		w.Header().Set("ETag", `"`+snapshot+`"`)
	}
	writeJSON(w, http.StatusOK, v)
}

type errResponse struct {
	Error string `json:"error" validate:"required"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}
