package relay

import (
	"sync"
	"time"
)

// dedupeWindow is how long a file path suppresses repeat notifications.
// Sonarr and Radarr both fire on import and the apps occasionally redeliver
// a webhook after a timeout; one file should never push twice.
const dedupeWindow = 5 * time.Minute

type deduper struct {
	mu     sync.Mutex
	window time.Duration
	seen   map[string]time.Time
	now    func() time.Time
}

func newDeduper(window time.Duration) *deduper {
	return &deduper{
		window: window,
		seen:   make(map[string]time.Time),
		now:    time.Now,
	}
}

// seenRecently records path and reports whether it was already recorded
// inside the window. Stale entries are pruned on the way through.
func (d *deduper) seenRecently(path string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	for p, at := range d.seen {
		if now.Sub(at) > d.window {
			delete(d.seen, p)
		}
	}

	if at, ok := d.seen[path]; ok && now.Sub(at) <= d.window {
		return true
	}
	d.seen[path] = now
	return false
}
