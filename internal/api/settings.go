package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/vmunix/relayarr/internal/event"
	"github.com/vmunix/relayarr/internal/notify"
	"github.com/vmunix/relayarr/internal/settings"
)

// pathKind extracts and validates the media kind from the URL path.
func pathKind(r *http.Request) (event.Kind, bool) {
	kind := event.Kind(r.PathValue("kind"))
	return kind, kind.Valid()
}

// Templates

func (s *Server) getTemplate(w http.ResponseWriter, r *http.Request) {
	kind, ok := pathKind(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_KIND", "kind must be 'episode' or 'movie'")
		return
	}

	cfg, err := s.store.TemplateConfig(kind)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) putTemplate(w http.ResponseWriter, r *http.Request) {
	kind, ok := pathKind(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_KIND", "kind must be 'episode' or 'movie'")
		return
	}

	var cfg notify.TemplateConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if strings.TrimSpace(cfg.TitleTemplate) == "" {
		writeError(w, http.StatusBadRequest, "INVALID_TEMPLATE", "title template must not be empty")
		return
	}

	if err := s.store.SetTemplateConfig(kind, cfg); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}

// Libraries

func (s *Server) listLibraries(w http.ResponseWriter, r *http.Request) {
	libs, err := s.store.ListLibraries()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, libs)
}

func (s *Server) putLibrary(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	var req updateLibraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if req.NotifyEnabled && !req.ScanEnabled {
		writeError(w, http.StatusBadRequest, "INVALID_TOGGLES", "notify requires scan to be enabled")
		return
	}

	lc, err := s.store.Library(name)
	if err != nil {
		if errors.Is(err, settings.ErrNotFound) {
			s.writeLibraryNotFound(w, name)
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	lc.ScanEnabled = req.ScanEnabled
	lc.NotifyEnabled = req.NotifyEnabled
	if req.DisplayName != nil {
		lc.DisplayName = *req.DisplayName
	}

	if err := s.store.UpsertLibrary(*lc); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, lc)
}

// writeLibraryNotFound answers 404 with a close-match suggestion when the
// requested name looks like a typo of a known library.
func (s *Server) writeLibraryNotFound(w http.ResponseWriter, name string) {
	resp := libraryNotFoundResponse{
		Error: "Library not found",
		Code:  "NOT_FOUND",
	}
	if libs, err := s.store.ListLibraries(); err == nil {
		if suggestion, ok := settings.Suggest(name, libs); ok {
			resp.Suggestion = suggestion
		}
	}
	writeJSON(w, http.StatusNotFound, resp)
}

func (s *Server) syncLibraries(w http.ResponseWriter, r *http.Request) {
	libs, err := s.jellyfin.Libraries(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "JELLYFIN_ERROR", err.Error())
		return
	}

	var entries []settings.SyncEntry
	for _, lib := range libs {
		for _, folder := range lib.Folders() {
			entries = append(entries, settings.SyncEntry{Name: folder, DisplayName: lib.Name})
		}
	}

	if err := s.store.SyncLibraries(entries); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	s.logger.Info("libraries synced", "count", len(entries))
	writeJSON(w, http.StatusOK, syncResponse{Synced: len(entries)})
}

// Pushover credentials

func (s *Server) getPushover(w http.ResponseWriter, r *http.Request) {
	creds, err := s.store.Credentials()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, pushoverResponse{
		Token:      maskSecret(creds.PushoverToken),
		UserKey:    maskSecret(creds.PushoverUserKey),
		Configured: creds.PushoverToken != "" && creds.PushoverUserKey != "",
	})
}

func (s *Server) putPushover(w http.ResponseWriter, r *http.Request) {
	var req updatePushoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if req.Token == "" || req.UserKey == "" {
		writeError(w, http.StatusBadRequest, "INVALID_CREDENTIALS", "token and user_key are required")
		return
	}

	if err := s.store.SetPushover(req.Token, req.UserKey); err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, pushoverResponse{
		Token:      maskSecret(req.Token),
		UserKey:    maskSecret(req.UserKey),
		Configured: true,
	})
}

// maskSecret hides all but the last four characters.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

// Rendering

func (s *Server) preview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	kind := event.Kind(req.Kind)
	if !kind.Valid() {
		writeError(w, http.StatusBadRequest, "INVALID_KIND", "kind must be 'episode' or 'movie'")
		return
	}

	msg := notify.Render(notify.SampleEvent(kind), req.Config)
	writeJSON(w, http.StatusOK, msg)
}

func (s *Server) testNotification(w http.ResponseWriter, r *http.Request) {
	var req testRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	kind := event.Kind(req.Kind)
	if !kind.Valid() {
		writeError(w, http.StatusBadRequest, "INVALID_KIND", "kind must be 'episode' or 'movie'")
		return
	}

	cfg, err := s.store.TemplateConfig(kind)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	creds, err := s.store.Credentials()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	msg := notify.Render(notify.SampleEvent(kind), cfg)
	if err := s.dispatcher.Send(r.Context(), creds, msg); err != nil {
		writeError(w, http.StatusBadGateway, "DISPATCH_FAILED", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, msg)
}

// Webhook key

func (s *Server) getKey(w http.ResponseWriter, r *http.Request) {
	creds, err := s.store.Credentials()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, keyResponse{WebhookKey: creds.WebhookKey})
}

func (s *Server) regenerateKey(w http.ResponseWriter, r *http.Request) {
	key, err := s.store.RegenerateWebhookKey()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	s.logger.Info("webhook key regenerated")
	writeJSON(w, http.StatusOK, keyResponse{WebhookKey: key})
}

// System

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	creds, err := s.store.Credentials()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	libs, err := s.store.ListLibraries()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Version:            s.cfg.Version,
		JellyfinConfigured: s.jellyfin != nil,
		PushoverConfigured: creds.PushoverToken != "" && creds.PushoverUserKey != "",
		Libraries:          len(libs),
	})
}
