package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
)

// ErrorBody is the JSON error envelope shared by every JSON endpoint.
type ErrorBody struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
}

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteJSONError writes an ErrorBody.
func WriteJSONError(w http.ResponseWriter, code int, errCode, description string) {
	WriteJSON(w, code, ErrorBody{Error: errCode, Description: description})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// WantsJSON reports whether the client asked for JSON, either explicitly via
// Accept or implicitly by calling under /api/.
func WantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// WriteError answers with JSON or plain text depending on WantsJSON.
func WriteError(w http.ResponseWriter, r *http.Request, code int, errCode, description string) {
	if WantsJSON(r) {
		WriteJSONError(w, code, errCode, description)
		return
	}
	NoCache(w)
	http.Error(w, description, code)
}
