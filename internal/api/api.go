// Package api implements the webhook endpoint and the settings REST API.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/vmunix/relayarr/internal/jellyfin"
	"github.com/vmunix/relayarr/internal/relay"
	"github.com/vmunix/relayarr/internal/settings"
)

// Config holds API server configuration.
type Config struct {
	// Key guards the settings API (X-Api-Key header). Empty disables auth.
	// The webhook route is always guarded by the stored webhook key.
	Key     string
	Version string
}

// Server is the HTTP API server.
type Server struct {
	store      *settings.Store
	relay      *relay.Relay
	dispatcher relay.Dispatcher
	jellyfin   *jellyfin.Client
	cfg        Config
	logger     *slog.Logger
}

// New creates a new API server. jf may be nil when no media server is
// configured; the sync route then answers 503.
func New(store *settings.Store, rly *relay.Relay, dispatcher relay.Dispatcher, jf *jellyfin.Client, cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:      store,
		relay:      rly,
		dispatcher: dispatcher,
		jellyfin:   jf,
		cfg:        cfg,
		logger:     logger,
	}
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Webhook (guarded by the stored webhook key, not the API key)
	mux.HandleFunc("POST /webhook/{apiKey}", s.handleWebhook)
	mux.HandleFunc("POST /webhook", s.handleWebhookNoKey)
	mux.HandleFunc("POST /webhook/", s.handleWebhookNoKey)

	// Templates
	mux.HandleFunc("GET /api/v1/templates/{kind}", s.auth(s.getTemplate))
	mux.HandleFunc("PUT /api/v1/templates/{kind}", s.auth(s.putTemplate))

	// Libraries
	mux.HandleFunc("GET /api/v1/libraries", s.auth(s.listLibraries))
	mux.HandleFunc("PUT /api/v1/libraries/{name}", s.auth(s.putLibrary))
	mux.HandleFunc("POST /api/v1/libraries/sync", s.auth(s.requireJellyfin(s.syncLibraries)))

	// Pushover credentials
	mux.HandleFunc("GET /api/v1/pushover", s.auth(s.getPushover))
	mux.HandleFunc("PUT /api/v1/pushover", s.auth(s.putPushover))

	// Rendering
	mux.HandleFunc("POST /api/v1/preview", s.auth(s.preview))
	mux.HandleFunc("POST /api/v1/test", s.auth(s.testNotification))

	// Webhook key
	mux.HandleFunc("GET /api/v1/key", s.auth(s.getKey))
	mux.HandleFunc("POST /api/v1/key/regenerate", s.auth(s.regenerateKey))

	// System
	mux.HandleFunc("GET /api/v1/status", s.auth(s.getStatus))
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}
