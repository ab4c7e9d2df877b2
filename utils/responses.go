package utils

import (
	"encoding/json"
	"net/http"
)

// Every endpoint answers a JSON envelope discriminated by "status". Business
// failures ship with HTTP 200 and status "error"; only the auth boundary
// and malformed requests use 4xx codes.

// WriteSuccess merges the payload into a success envelope.
func WriteSuccess(w http.ResponseWriter, payload map[string]interface{}) {
	body := map[string]interface{}{"status": "success"}
	for k, v := range payload {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

// WriteError writes an error envelope with the given HTTP status.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]interface{}{
		"status":  "error",
		"message": message,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}
