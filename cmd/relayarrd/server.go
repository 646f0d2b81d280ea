package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vmunix/relayarr/internal/api"
	"github.com/vmunix/relayarr/internal/config"
	"github.com/vmunix/relayarr/internal/jellyfin"
	"github.com/vmunix/relayarr/internal/migrations"
	"github.com/vmunix/relayarr/internal/relay"
	"github.com/vmunix/relayarr/internal/settings"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 200 { // Only capture first WriteHeader call
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func writeDefaultConfig(path string) error {
	if path == "" {
		path = config.DefaultPath()
	}
	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func runServer(configPath string) error {
	// Load config
	if configPath == "" {
		discovered, err := config.Discover()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		configPath = discovered
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Create logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	// Ensure database directory exists
	dbDir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	// Open database
	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Run migrations and seed defaults
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	store := settings.NewStore(db)
	if err := store.Seed(); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}

	// === Clients (optional - nil if not configured) ===
	var jfClient *jellyfin.Client
	if cfg.Jellyfin != nil {
		jfClient = jellyfin.NewClient(cfg.Jellyfin.URL, cfg.Jellyfin.APIKey, logger.With("component", "jellyfin"))
	}

	dispatcher := &relay.PushoverDispatcher{APIURL: cfg.Pushover.APIURL}

	// === Pipeline ===
	// The Scanner interface is satisfied by *jellyfin.Client; a nil client
	// must stay a nil interface so the relay skips scans entirely.
	var scanner relay.Scanner
	if jfClient != nil {
		scanner = jfClient
	}
	rly := relay.New(store, dispatcher, scanner, logger.With("component", "relay"))

	// === HTTP Setup ===
	mux := http.NewServeMux()
	apiServer := api.New(store, rly, dispatcher, jfClient, api.Config{
		Key:     cfg.API.Key,
		Version: version,
	}, logger.With("component", "api"))
	apiServer.RegisterRoutes(mux)

	// The webhook key is a secret and stays out of the logs; fetch it
	// through the authenticated API ('relayarr key').
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting",
		"addr", addr,
		"database", cfg.Database.Path,
		"jellyfin", jfClient != nil,
		"api_auth", cfg.API.Key != "",
		"log_level", cfg.Server.LogLevel,
	)

	// === HTTP Server ===
	srv := &http.Server{Addr: addr, Handler: logRequests(mux, logger)}

	// Start server in goroutine
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received signal, shutting down", "signal", sig.String())

	// Graceful HTTP shutdown with 30s timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
