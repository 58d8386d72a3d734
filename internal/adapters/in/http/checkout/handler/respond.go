// internal/adapters/in/http/checkout/handler/respond.go
package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// maxBodyBytes caps request bodies. Asset payloads arrive as base64
// data URIs, so the cap is generous.
const maxBodyBytes = 64 << 20

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": msg,
	})
}

func readJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	return dec.Decode(dst)
}

func toRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// lastPathSegment returns the trailing non-empty segment of the path.
func lastPathSegment(path string) string {
	p := strings.TrimRight(strings.TrimSpace(path), "/")
	if p == "" {
		return ""
	}
	idx := strings.LastIndex(p, "/")
	if idx < 0 {
		return p
	}
	return strings.TrimSpace(p[idx+1:])
}
