package relay

import (
	"context"

	"github.com/vmunix/relayarr/internal/notify"
	"github.com/vmunix/relayarr/internal/settings"
	"github.com/vmunix/relayarr/pkg/pushover"
)

// PushoverDispatcher sends messages through the Pushover API using whatever
// credentials are stored at dispatch time, so credential changes take
// effect without a restart.
type PushoverDispatcher struct {
	// APIURL overrides the Pushover endpoint. Empty means the real API.
	APIURL string
}

var _ Dispatcher = (*PushoverDispatcher)(nil)

// Send delivers one message.
func (d *PushoverDispatcher) Send(ctx context.Context, creds settings.Credentials, msg notify.Message) error {
	var client *pushover.Client
	if d.APIURL != "" {
		client = pushover.NewClientWithURL(d.APIURL, creds.PushoverToken, creds.PushoverUserKey)
	} else {
		client = pushover.NewClient(creds.PushoverToken, creds.PushoverUserKey)
	}
	return client.Send(ctx, msg.Title, msg.Body)
}
