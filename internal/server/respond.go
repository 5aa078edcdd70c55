package server

import (
	"encoding/json"
	"log"
	"net/http"
)

// envelope is the API response wrapper the storefront client expects.
type envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}
