package relay_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/relayarr/internal/event"
	"github.com/vmunix/relayarr/internal/notify"
	"github.com/vmunix/relayarr/internal/relay"
	"github.com/vmunix/relayarr/internal/relay/mocks"
	"github.com/vmunix/relayarr/internal/settings"
	"github.com/vmunix/relayarr/pkg/pushover"
)

// testLogger returns a discard logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func movieEvent() event.MediaEvent {
	return event.MediaEvent{
		Kind:          event.KindMovie,
		Title:         "Dune",
		Year:          2021,
		FilePath:      "/media/movies/Dune (2021)/Dune.mkv",
		FileSizeBytes: 1500000000,
		LibraryName:   "movies",
	}
}

func testCreds() settings.Credentials {
	return settings.Credentials{PushoverToken: "tok", PushoverUserKey: "usr", WebhookKey: "key"}
}

func TestProcess_Notifies(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockSettingsReader(ctrl)
	store.EXPECT().Library("movies").Return(&settings.LibraryConfig{
		Name: "movies", ScanEnabled: true, NotifyEnabled: true,
	}, nil)
	store.EXPECT().TemplateConfig(event.KindMovie).Return(notify.TemplateConfig{
		TitleTemplate: "{movie_name}",
		IncludeSize:   true,
	}, nil)
	store.EXPECT().Credentials().Return(testCreds(), nil)

	dispatcher := mocks.NewMockDispatcher(ctrl)
	dispatcher.EXPECT().
		Send(gomock.Any(), testCreds(), notify.Message{Title: "Dune", Body: "Size: 1.4 GB"}).
		Return(nil)

	scanner := mocks.NewMockScanner(ctrl)
	scanner.EXPECT().ScanFolder(gomock.Any(), "movies").Return(nil)

	r := relay.New(store, dispatcher, scanner, testLogger())
	result := r.Process(context.Background(), []event.MediaEvent{movieEvent()})

	assert.Equal(t, relay.Result{Notified: 1}, result)
}

func TestProcess_UnconfiguredLibrarySkips(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockSettingsReader(ctrl)
	store.EXPECT().Library("movies").Return(nil, settings.ErrNotFound)

	// Neither the scanner nor the dispatcher may be touched.
	dispatcher := mocks.NewMockDispatcher(ctrl)
	scanner := mocks.NewMockScanner(ctrl)

	r := relay.New(store, dispatcher, scanner, testLogger())
	result := r.Process(context.Background(), []event.MediaEvent{movieEvent()})

	assert.Equal(t, relay.Result{Skipped: 1}, result)
}

func TestProcess_ScanDisabledShortCircuits(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockSettingsReader(ctrl)
	// A stale row with notify on while scan is off must still be silent.
	store.EXPECT().Library("movies").Return(&settings.LibraryConfig{
		Name: "movies", ScanEnabled: false, NotifyEnabled: true,
	}, nil)

	dispatcher := mocks.NewMockDispatcher(ctrl)
	scanner := mocks.NewMockScanner(ctrl)

	r := relay.New(store, dispatcher, scanner, testLogger())
	result := r.Process(context.Background(), []event.MediaEvent{movieEvent()})

	assert.Equal(t, relay.Result{Skipped: 1}, result)
}

func TestProcess_ScanOnlyMode(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockSettingsReader(ctrl)
	store.EXPECT().Library("movies").Return(&settings.LibraryConfig{
		Name: "movies", ScanEnabled: true, NotifyEnabled: false,
	}, nil)

	scanner := mocks.NewMockScanner(ctrl)
	scanner.EXPECT().ScanFolder(gomock.Any(), "movies").Return(nil)

	dispatcher := mocks.NewMockDispatcher(ctrl)

	r := relay.New(store, dispatcher, scanner, testLogger())
	result := r.Process(context.Background(), []event.MediaEvent{movieEvent()})

	assert.Equal(t, relay.Result{Skipped: 1}, result)
}

func TestProcess_ScanFailureDoesNotFailWebhook(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockSettingsReader(ctrl)
	store.EXPECT().Library("movies").Return(&settings.LibraryConfig{
		Name: "movies", ScanEnabled: true, NotifyEnabled: true,
	}, nil)
	store.EXPECT().TemplateConfig(event.KindMovie).Return(notify.TemplateConfig{TitleTemplate: "{movie_name}"}, nil)
	store.EXPECT().Credentials().Return(testCreds(), nil)

	scanner := mocks.NewMockScanner(ctrl)
	scanner.EXPECT().ScanFolder(gomock.Any(), "movies").Return(errors.New("jellyfin down"))

	dispatcher := mocks.NewMockDispatcher(ctrl)
	dispatcher.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	r := relay.New(store, dispatcher, scanner, testLogger())
	result := r.Process(context.Background(), []event.MediaEvent{movieEvent()})

	assert.Equal(t, relay.Result{Notified: 1}, result)
}

func TestProcess_NilScanner(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockSettingsReader(ctrl)
	store.EXPECT().Library("movies").Return(&settings.LibraryConfig{
		Name: "movies", ScanEnabled: true, NotifyEnabled: true,
	}, nil)
	store.EXPECT().TemplateConfig(event.KindMovie).Return(notify.TemplateConfig{TitleTemplate: "{movie_name}"}, nil)
	store.EXPECT().Credentials().Return(testCreds(), nil)

	dispatcher := mocks.NewMockDispatcher(ctrl)
	dispatcher.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	r := relay.New(store, dispatcher, nil, testLogger())
	result := r.Process(context.Background(), []event.MediaEvent{movieEvent()})

	assert.Equal(t, relay.Result{Notified: 1}, result)
}

func TestProcess_DispatchFailureCountsFailed(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"rejected", &pushover.RejectedError{Status: 400, Reasons: []string{"application token is invalid"}}},
		{"not configured", pushover.ErrNotConfigured},
		{"transport", errors.New("dial tcp: connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			store := mocks.NewMockSettingsReader(ctrl)
			store.EXPECT().Library("movies").Return(&settings.LibraryConfig{
				Name: "movies", ScanEnabled: true, NotifyEnabled: true,
			}, nil)
			store.EXPECT().TemplateConfig(event.KindMovie).Return(notify.TemplateConfig{TitleTemplate: "{movie_name}"}, nil)
			store.EXPECT().Credentials().Return(testCreds(), nil)

			dispatcher := mocks.NewMockDispatcher(ctrl)
			dispatcher.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.err)

			r := relay.New(store, dispatcher, nil, testLogger())
			result := r.Process(context.Background(), []event.MediaEvent{movieEvent()})

			assert.Equal(t, relay.Result{Failed: 1}, result)
		})
	}
}

func TestProcess_MultipleEvents(t *testing.T) {
	ctrl := gomock.NewController(t)

	episode := func(n int) event.MediaEvent {
		return event.MediaEvent{
			Kind:          event.KindEpisode,
			SeriesTitle:   "Severance",
			Title:         "Episode",
			SeasonNumber:  1,
			EpisodeNumber: n,
			FilePath:      fmt.Sprintf("/media/tv/Severance/ep%d.mkv", n),
			LibraryName:   "tv",
		}
	}

	store := mocks.NewMockSettingsReader(ctrl)
	store.EXPECT().Library("tv").Return(&settings.LibraryConfig{
		Name: "tv", ScanEnabled: true, NotifyEnabled: true,
	}, nil).Times(2)
	store.EXPECT().TemplateConfig(event.KindEpisode).Return(notify.TemplateConfig{
		TitleTemplate: "{series_name} E{episode_num}",
	}, nil).Times(2)
	store.EXPECT().Credentials().Return(testCreds(), nil).Times(2)

	dispatcher := mocks.NewMockDispatcher(ctrl)
	dispatcher.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	r := relay.New(store, dispatcher, nil, testLogger())
	result := r.Process(context.Background(), []event.MediaEvent{episode(1), episode(2)})

	assert.Equal(t, relay.Result{Notified: 2}, result)
}

func TestProcess_RedeliverySuppressed(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockSettingsReader(ctrl)
	store.EXPECT().Library("movies").Return(&settings.LibraryConfig{
		Name: "movies", ScanEnabled: true, NotifyEnabled: true,
	}, nil).Times(2)
	store.EXPECT().TemplateConfig(event.KindMovie).Return(notify.TemplateConfig{TitleTemplate: "{movie_name}"}, nil)
	store.EXPECT().Credentials().Return(testCreds(), nil)

	dispatcher := mocks.NewMockDispatcher(ctrl)
	dispatcher.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	r := relay.New(store, dispatcher, nil, testLogger())

	result := r.Process(context.Background(), []event.MediaEvent{movieEvent()})
	assert.Equal(t, relay.Result{Notified: 1}, result)

	// Same file delivered again, e.g. an app-side webhook retry.
	result = r.Process(context.Background(), []event.MediaEvent{movieEvent()})
	assert.Equal(t, relay.Result{Skipped: 1}, result)
}
