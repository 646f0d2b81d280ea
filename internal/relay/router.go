package relay

import (
	"errors"

	"github.com/vmunix/relayarr/internal/settings"
)

// Decision is the routing outcome for one event's library.
type Decision struct {
	Scan   bool
	Notify bool
}

// route looks up the event's library by exact name and decides what to do
// with it. An unconfigured library is a deliberate skip, not an error.
// Scan off short-circuits notify as well, even if a stale row claims
// otherwise.
func route(store SettingsReader, libraryName string) (Decision, error) {
	lc, err := store.Library(libraryName)
	if errors.Is(err, settings.ErrNotFound) {
		return Decision{}, nil
	}
	if err != nil {
		return Decision{}, err
	}

	if !lc.ScanEnabled {
		return Decision{}, nil
	}
	return Decision{Scan: true, Notify: lc.NotifyEnabled}, nil
}
