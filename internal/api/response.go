package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
)

// maxBodyBytes caps request bodies. A 5 MiB image grows by ~4/3 when
// base64-encoded, so allow some headroom over the image cap.
const maxBodyBytes = 10 << 20

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON buffers the full request body before parsing it, so a
// malformed body is rejected without any handler-visible side effects.
func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	defer r.Body.Close()
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, target)
}
