package api

import (
	"crypto/subtle"
	"errors"
	"io"
	"net/http"

	"github.com/vmunix/relayarr/internal/event"
)

// maxWebhookBody caps webhook payload reads. Arr payloads are a few KB;
// a megabyte is generous.
const maxWebhookBody = 1 << 20

func (s *Server) handleWebhookNoKey(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Webhook key required")
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	// The caller is unauthenticated until the key compare below passes,
	// so a store failure must not leak its detail in the response.
	creds, err := s.store.Credentials()
	if err != nil {
		s.logger.Error("credentials lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	// Constant-time compare before touching the payload.
	key := r.PathValue("apiKey")
	if subtle.ConstantTimeCompare([]byte(key), []byte(creds.WebhookKey)) != 1 {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid webhook key")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PAYLOAD", "Failed to read payload")
		return
	}

	events, err := event.Normalize(body)
	if err != nil {
		if errors.Is(err, event.ErrMalformedPayload) {
			writeError(w, http.StatusBadRequest, "INVALID_PAYLOAD", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}

	result := s.relay.Process(r.Context(), events)
	if result.Failed > 0 {
		s.logger.Warn("webhook dispatch failed",
			"notified", result.Notified,
			"skipped", result.Skipped,
			"failed", result.Failed,
		)
		writeJSON(w, http.StatusBadGateway, result)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
