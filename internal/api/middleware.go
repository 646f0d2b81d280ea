package api

import "net/http"

// auth validates the X-Api-Key header against the configured key.
// An empty configured key disables the check.
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.Key == "" {
			next(w, r)
			return
		}
		if r.Header.Get("X-Api-Key") != s.cfg.Key {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid API key")
			return
		}
		next(w, r)
	}
}

// requireJellyfin wraps a handler and returns 503 if no media server is configured.
func (s *Server) requireJellyfin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.jellyfin == nil {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Jellyfin not configured")
			return
		}
		next(w, r)
	}
}
