// Package jsonutil writes JSON responses with a consistent Content-Type.
package jsonutil

import (
	"encoding/json"
	"net/http"
)

// JSON writes data as JSON with the given status code. A nil data writes
// headers only.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Status writes {"status": status} with the given code.
func Status(w http.ResponseWriter, code int, status string) {
	JSON(w, code, map[string]string{"status": status})
}

// Error writes {"error": message}. Keep internal details out of message and
// log them separately.
func Error(w http.ResponseWriter, code int, message string) {
	JSON(w, code, map[string]string{"error": message})
}
