package relay

import (
	"context"

	"github.com/vmunix/relayarr/internal/event"
	"github.com/vmunix/relayarr/internal/notify"
	"github.com/vmunix/relayarr/internal/settings"
)

//go:generate mockgen -source=deps.go -destination=mocks/mock_deps.go -package=mocks

// SettingsReader is the read-only slice of the settings store the webhook
// pipeline consumes.
type SettingsReader interface {
	TemplateConfig(kind event.Kind) (notify.TemplateConfig, error)
	Library(name string) (*settings.LibraryConfig, error)
	Credentials() (settings.Credentials, error)
}

// Dispatcher sends a rendered message to the push service.
type Dispatcher interface {
	Send(ctx context.Context, creds settings.Credentials, msg notify.Message) error
}

// Scanner triggers media-server library scans.
type Scanner interface {
	ScanFolder(ctx context.Context, folder string) error
}
