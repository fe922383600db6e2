package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rythmn1111/final-cam/lib"
)

const ErrStreamingUnsupported = lib.Error("streaming unsupported")

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, map[string]any{"ok": false, "error": err.Error()})
}

func parseMillis(s string, fallback int64) int64 {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fallback
	}
	return ms
}
