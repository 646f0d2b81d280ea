// Package relay runs the webhook pipeline: route each normalized media
// event by its library, trigger a media-server scan, render the
// notification, and dispatch it.
package relay

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/relayarr/internal/event"
	"github.com/vmunix/relayarr/internal/notify"
	"github.com/vmunix/relayarr/pkg/pushover"
)

// Relay processes normalized media events.
type Relay struct {
	store      SettingsReader
	dispatcher Dispatcher
	scanner    Scanner // nil when no media server is configured
	dedupe     *deduper
	logger     *slog.Logger
}

// New creates a relay. scanner may be nil.
func New(store SettingsReader, dispatcher Dispatcher, scanner Scanner, logger *slog.Logger) *Relay {
	if logger == nil {
		logger = slog.Default()
	}
	return &Relay{
		store:      store,
		dispatcher: dispatcher,
		scanner:    scanner,
		dedupe:     newDeduper(dedupeWindow),
		logger:     logger.With("component", "relay"),
	}
}

// Result aggregates the outcome of one webhook's events.
type Result struct {
	Notified int `json:"notified"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// Process runs the pipeline for every event of one webhook delivery.
// Events are independent and dispatched concurrently; the result counts
// outcomes so the caller can pick a response status. A skip (unconfigured
// library, scan disabled, notify disabled) is not a failure.
func (r *Relay) Process(ctx context.Context, events []event.MediaEvent) Result {
	var (
		mu     sync.Mutex
		result Result
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, ev := range events {
		g.Go(func() error {
			outcome := r.processOne(ctx, ev)
			mu.Lock()
			switch outcome {
			case outcomeNotified:
				result.Notified++
			case outcomeSkipped:
				result.Skipped++
			case outcomeFailed:
				result.Failed++
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // goroutines report through result, never an error

	return result
}

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeNotified
	outcomeFailed
)

func (r *Relay) processOne(ctx context.Context, ev event.MediaEvent) outcome {
	log := r.logger.With("kind", ev.Kind, "title", ev.Title, "library", ev.LibraryName)

	decision, err := route(r.store, ev.LibraryName)
	if err != nil {
		log.Error("library lookup failed", "error", err)
		return outcomeFailed
	}

	if !decision.Scan {
		log.Info("library not configured or scanning disabled, skipping")
		return outcomeSkipped
	}

	// The scan is a best-effort side effect: a media-server hiccup must
	// not turn a delivered webhook into a failure.
	if r.scanner != nil {
		if err := r.scanner.ScanFolder(ctx, ev.LibraryName); err != nil {
			log.Warn("library scan failed", "error", err)
		}
	}

	if !decision.Notify {
		log.Info("notifications disabled for library, scan only")
		return outcomeSkipped
	}

	if ev.FilePath != "" && r.dedupe.seenRecently(ev.FilePath) {
		log.Info("duplicate delivery for file, suppressing notification", "path", ev.FilePath)
		return outcomeSkipped
	}

	cfg, err := r.store.TemplateConfig(ev.Kind)
	if err != nil {
		log.Error("template lookup failed", "error", err)
		return outcomeFailed
	}
	creds, err := r.store.Credentials()
	if err != nil {
		log.Error("credentials lookup failed", "error", err)
		return outcomeFailed
	}

	msg := notify.Render(ev, cfg)

	if err := r.dispatcher.Send(ctx, creds, msg); err != nil {
		var rejected *pushover.RejectedError
		switch {
		case errors.As(err, &rejected), errors.Is(err, pushover.ErrNotConfigured):
			// Broken credentials: the user has to fix their settings,
			// retrying cannot help.
			log.Error("notification rejected, check push credentials", "error", err)
		default:
			log.Error("notification transport failed", "error", err)
		}
		return outcomeFailed
	}

	log.Info("notification sent", "notification_title", msg.Title)
	return outcomeNotified
}
