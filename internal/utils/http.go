package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// internalErrorBody is sent instead of a value that could not be encoded.
const internalErrorBody = `{"error":{"kind":"internal","message":"Internal Server Error"}}` + "\n"

// WriteJSON encodes data and writes it with statusCode. The value is encoded
// before any header is sent, so an encoding failure still produces a clean
// 500 response.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	if err := enc.Encode(data); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(internalErrorBody))
		return 0, fmt.Errorf("error encoding JSON response: %w", err)
	}

	w.WriteHeader(statusCode)
	return w.Write(buf.Bytes())
}
