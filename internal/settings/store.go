// Package settings persists relay configuration: push credentials, per-kind
// notification templates, per-library toggles, and the webhook key.
//
// The webhook path only ever reads from the store; writes happen through
// the settings API.
package settings

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vmunix/relayarr/internal/event"
	"github.com/vmunix/relayarr/internal/notify"
)

// Sentinel errors for the settings package.
var (
	// ErrNotFound is returned when a library or template is not configured.
	ErrNotFound = errors.New("not found")

	// ErrInvalidKind is returned for media kinds outside episode/movie.
	ErrInvalidKind = errors.New("invalid media kind")
)

// Credentials holds the outbound push credentials and the inbound webhook key.
type Credentials struct {
	PushoverToken   string
	PushoverUserKey string
	WebhookKey      string
}

// LibraryConfig holds the per-library routing toggles. NotifyEnabled is only
// meaningful while ScanEnabled is true; the store keeps the pair consistent.
type LibraryConfig struct {
	Name          string `json:"name"`
	DisplayName   string `json:"display_name"`
	ScanEnabled   bool   `json:"scan_enabled"`
	NotifyEnabled bool   `json:"notify_enabled"`
}

// Store provides access to relay settings.
type Store struct {
	db *sql.DB
}

// NewStore creates a settings store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// mapSQLiteError converts SQLite errors to custom error types.
func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Seed inserts the default settings on first run: one credentials row with a
// freshly generated webhook key and the default templates for both kinds.
// Existing rows are left untouched.
func (s *Store) Seed() error {
	key, err := newWebhookKey()
	if err != nil {
		return err
	}
	now := time.Now()

	if _, err := s.db.Exec(`
		INSERT INTO credentials (id, webhook_key, updated_at) VALUES (1, ?, ?)
		ON CONFLICT (id) DO NOTHING`, key, now,
	); err != nil {
		return fmt.Errorf("seed credentials: %w", err)
	}

	defaults := map[event.Kind]notify.TemplateConfig{
		event.KindEpisode: {
			TitleTemplate:   "{prefix} New Episode: {series_name} S{season_num}E{episode_num} - {episode_name}",
			IncludeOverview: true,
			EmojiEnabled:    true,
		},
		event.KindMovie: {
			TitleTemplate:   "{prefix} New Movie: {movie_name} ({movie_year})",
			IncludeOverview: true,
			EmojiEnabled:    true,
		},
	}
	for kind, cfg := range defaults {
		if _, err := s.db.Exec(`
			INSERT INTO templates (kind, title_template, body_template, include_overview, include_codec, include_size, include_path, emoji_enabled, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (kind) DO NOTHING`,
			string(kind), cfg.TitleTemplate, cfg.BodyTemplate,
			cfg.IncludeOverview, cfg.IncludeCodec, cfg.IncludeSize, cfg.IncludePath,
			cfg.EmojiEnabled, now,
		); err != nil {
			return fmt.Errorf("seed template %s: %w", kind, err)
		}
	}
	return nil
}

// Credentials returns the stored credentials.
func (s *Store) Credentials() (Credentials, error) {
	var c Credentials
	err := s.db.QueryRow(`
		SELECT pushover_token, pushover_user_key, webhook_key
		FROM credentials WHERE id = 1`,
	).Scan(&c.PushoverToken, &c.PushoverUserKey, &c.WebhookKey)
	if err != nil {
		return Credentials{}, fmt.Errorf("get credentials: %w", mapSQLiteError(err))
	}
	return c, nil
}

// SetPushover updates the Pushover application token and user key.
func (s *Store) SetPushover(token, userKey string) error {
	_, err := s.db.Exec(`
		UPDATE credentials SET pushover_token = ?, pushover_user_key = ?, updated_at = ?
		WHERE id = 1`, token, userKey, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("set pushover credentials: %w", err)
	}
	return nil
}

// RegenerateWebhookKey replaces the active webhook key and returns the new
// one. The previous key stops working immediately; there is never more than
// one active key.
func (s *Store) RegenerateWebhookKey() (string, error) {
	key, err := newWebhookKey()
	if err != nil {
		return "", err
	}
	if _, err := s.db.Exec(`
		UPDATE credentials SET webhook_key = ?, updated_at = ? WHERE id = 1`,
		key, time.Now(),
	); err != nil {
		return "", fmt.Errorf("regenerate webhook key: %w", err)
	}
	return key, nil
}

// TemplateConfig returns the template configuration for a media kind.
func (s *Store) TemplateConfig(kind event.Kind) (notify.TemplateConfig, error) {
	if !kind.Valid() {
		return notify.TemplateConfig{}, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	var cfg notify.TemplateConfig
	err := s.db.QueryRow(`
		SELECT title_template, body_template, include_overview, include_codec, include_size, include_path, emoji_enabled
		FROM templates WHERE kind = ?`, string(kind),
	).Scan(&cfg.TitleTemplate, &cfg.BodyTemplate, &cfg.IncludeOverview,
		&cfg.IncludeCodec, &cfg.IncludeSize, &cfg.IncludePath, &cfg.EmojiEnabled)
	if err != nil {
		return notify.TemplateConfig{}, fmt.Errorf("get template %s: %w", kind, mapSQLiteError(err))
	}
	return cfg, nil
}

// SetTemplateConfig replaces the template configuration for a media kind.
func (s *Store) SetTemplateConfig(kind event.Kind, cfg notify.TemplateConfig) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	_, err := s.db.Exec(`
		INSERT INTO templates (kind, title_template, body_template, include_overview, include_codec, include_size, include_path, emoji_enabled, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (kind) DO UPDATE SET
			title_template = excluded.title_template,
			body_template = excluded.body_template,
			include_overview = excluded.include_overview,
			include_codec = excluded.include_codec,
			include_size = excluded.include_size,
			include_path = excluded.include_path,
			emoji_enabled = excluded.emoji_enabled,
			updated_at = excluded.updated_at`,
		string(kind), cfg.TitleTemplate, cfg.BodyTemplate,
		cfg.IncludeOverview, cfg.IncludeCodec, cfg.IncludeSize, cfg.IncludePath,
		cfg.EmojiEnabled, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("set template %s: %w", kind, err)
	}
	return nil
}

// Library returns the configuration for one library by exact name.
// Returns ErrNotFound when the library is not configured.
func (s *Store) Library(name string) (*LibraryConfig, error) {
	lc := &LibraryConfig{}
	err := s.db.QueryRow(`
		SELECT name, display_name, scan_enabled, notify_enabled
		FROM libraries WHERE name = ?`, name,
	).Scan(&lc.Name, &lc.DisplayName, &lc.ScanEnabled, &lc.NotifyEnabled)
	if err != nil {
		return nil, fmt.Errorf("get library %q: %w", name, mapSQLiteError(err))
	}
	return lc, nil
}

// ListLibraries returns all configured libraries ordered by name.
func (s *Store) ListLibraries() ([]*LibraryConfig, error) {
	rows, err := s.db.Query(`
		SELECT name, display_name, scan_enabled, notify_enabled
		FROM libraries ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list libraries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var libraries []*LibraryConfig
	for rows.Next() {
		lc := &LibraryConfig{}
		if err := rows.Scan(&lc.Name, &lc.DisplayName, &lc.ScanEnabled, &lc.NotifyEnabled); err != nil {
			return nil, fmt.Errorf("scan library: %w", err)
		}
		libraries = append(libraries, lc)
	}
	return libraries, rows.Err()
}

// UpsertLibrary creates or updates a library configuration. The
// notify-requires-scan invariant is enforced here: notify is forced off
// whenever scan is off, regardless of what the caller sends.
func (s *Store) UpsertLibrary(lc LibraryConfig) error {
	if strings.TrimSpace(lc.Name) == "" {
		return errors.New("library name required")
	}
	if !lc.ScanEnabled {
		lc.NotifyEnabled = false
	}
	_, err := s.db.Exec(`
		INSERT INTO libraries (name, display_name, scan_enabled, notify_enabled, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			display_name = excluded.display_name,
			scan_enabled = excluded.scan_enabled,
			notify_enabled = excluded.notify_enabled,
			updated_at = excluded.updated_at`,
		lc.Name, lc.DisplayName, lc.ScanEnabled, lc.NotifyEnabled, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("upsert library %q: %w", lc.Name, err)
	}
	return nil
}

// SyncEntry is one library discovered on the media server.
type SyncEntry struct {
	Name        string
	DisplayName string
}

// SyncLibraries merges discovered libraries into the store. New libraries
// default to scan and notify enabled; toggles on existing libraries are
// preserved. Libraries that disappeared from the server are kept, since
// their toggles may still be wanted after a server hiccup.
func (s *Store) SyncLibraries(entries []SyncEntry) error {
	now := time.Now()
	for _, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			continue
		}
		if _, err := s.db.Exec(`
			INSERT INTO libraries (name, display_name, scan_enabled, notify_enabled, updated_at)
			VALUES (?, ?, 1, 1, ?)
			ON CONFLICT (name) DO UPDATE SET
				display_name = excluded.display_name,
				updated_at = excluded.updated_at`,
			e.Name, e.DisplayName, now,
		); err != nil {
			return fmt.Errorf("sync library %q: %w", e.Name, err)
		}
	}
	return nil
}

// newWebhookKey generates a 32-hex-char key.
func newWebhookKey() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate webhook key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
