package api

import (
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/vmunix/relayarr/internal/jellyfin"
	"github.com/vmunix/relayarr/internal/migrations"
	"github.com/vmunix/relayarr/internal/relay"
	"github.com/vmunix/relayarr/internal/settings"
)

func setupTestStore(t *testing.T) *settings.Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err, "open db")
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(migrations.InitialSQL)
	require.NoError(t, err, "apply schema")

	store := settings.NewStore(db)
	require.NoError(t, store.Seed(), "seed defaults")
	return store
}

// newTestServer wires a server on a fresh seeded store. dispatcher is used
// by both the webhook relay and the test-notification route; jf may be nil.
func newTestServer(t *testing.T, store *settings.Store, dispatcher relay.Dispatcher, jf *jellyfin.Client, cfg Config) *http.ServeMux {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rly := relay.New(store, dispatcher, nil, logger)
	srv := New(store, rly, dispatcher, jf, cfg, logger)

	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)
	return mux
}
