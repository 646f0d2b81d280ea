// internal/api/types.go
package api

import "github.com/vmunix/relayarr/internal/notify"

// updateLibraryRequest is the body for PUT /libraries/{name}.
type updateLibraryRequest struct {
	DisplayName   *string `json:"display_name,omitempty"`
	ScanEnabled   bool    `json:"scan_enabled"`
	NotifyEnabled bool    `json:"notify_enabled"`
}

// libraryNotFoundResponse carries a close-match hint for misspelled names.
type libraryNotFoundResponse struct {
	Error      string `json:"error"`
	Code       string `json:"code"`
	Suggestion string `json:"suggestion,omitempty"`
}

// pushoverResponse is the masked view of stored credentials.
type pushoverResponse struct {
	Token      string `json:"token"`
	UserKey    string `json:"user_key"`
	Configured bool   `json:"configured"`
}

type updatePushoverRequest struct {
	Token   string `json:"token"`
	UserKey string `json:"user_key"`
}

// previewRequest renders a sample event against an unsaved template config.
type previewRequest struct {
	Kind   string                `json:"kind"`
	Config notify.TemplateConfig `json:"config"`
}

// testRequest sends a real notification rendered from stored settings.
type testRequest struct {
	Kind string `json:"kind"`
}

type keyResponse struct {
	WebhookKey string `json:"webhook_key"`
}

type statusResponse struct {
	Version            string `json:"version"`
	JellyfinConfigured bool   `json:"jellyfin_configured"`
	PushoverConfigured bool   `json:"pushover_configured"`
	Libraries          int    `json:"libraries"`
}

type syncResponse struct {
	Synced int `json:"synced"`
}
