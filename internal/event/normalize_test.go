package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sonarrImportPayload = `{
	"eventType": "Download",
	"isUpgrade": false,
	"series": {
		"id": 12,
		"title": "Breaking Bad",
		"path": "/media/tv/Breaking Bad",
		"tvdbId": 81189
	},
	"episodes": [
		{
			"id": 101,
			"title": "Pilot",
			"seasonNumber": 1,
			"episodeNumber": 1,
			"overview": "A high school chemistry teacher learns he has cancer."
		}
	],
	"episodeFile": {
		"id": 845,
		"relativePath": "Season 01/Breaking Bad - S01E01.mkv",
		"path": "/media/tv/Breaking Bad/Season 01/Breaking Bad - S01E01.mkv",
		"size": 2147483648,
		"mediaInfo": {
			"videoCodec": "x264",
			"audioCodec": "AAC"
		}
	}
}`

const radarrImportPayload = `{
	"eventType": "Download",
	"isUpgrade": true,
	"movie": {
		"id": 3,
		"title": "Dune",
		"year": 2021,
		"overview": "Paul Atreides leads nomadic tribes in a revolt.",
		"folderPath": "/media/movies/Dune (2021)"
	},
	"movieFile": {
		"id": 9,
		"relativePath": "Dune (2021) Bluray-1080p.mkv",
		"path": "/media/movies/Dune (2021)/Dune (2021) Bluray-1080p.mkv",
		"size": 1500000000,
		"mediaInfo": {
			"videoCodec": "x265",
			"audioCodec": "DTS"
		}
	}
}`

func TestNormalize_Sonarr(t *testing.T) {
	events, err := Normalize([]byte(sonarrImportPayload))
	require.NoError(t, err)
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, KindEpisode, ev.Kind)
	assert.Equal(t, "Breaking Bad", ev.SeriesTitle)
	assert.Equal(t, "Pilot", ev.Title)
	assert.Equal(t, 1, ev.SeasonNumber)
	assert.Equal(t, 1, ev.EpisodeNumber)
	assert.Equal(t, "/media/tv/Breaking Bad/Season 01/Breaking Bad - S01E01.mkv", ev.FilePath)
	assert.Equal(t, int64(2147483648), ev.FileSizeBytes)
	assert.Equal(t, "x264", ev.VideoCodec)
	assert.Equal(t, "AAC", ev.AudioCodec)
	assert.Equal(t, "tv", ev.LibraryName)
	assert.False(t, ev.Upgrade)
}

func TestNormalize_Radarr(t *testing.T) {
	events, err := Normalize([]byte(radarrImportPayload))
	require.NoError(t, err)
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, KindMovie, ev.Kind)
	assert.Equal(t, "Dune", ev.Title)
	assert.Equal(t, 2021, ev.Year)
	assert.Equal(t, "/media/movies/Dune (2021)/Dune (2021) Bluray-1080p.mkv", ev.FilePath)
	assert.Equal(t, int64(1500000000), ev.FileSizeBytes)
	assert.Equal(t, "x265", ev.VideoCodec)
	assert.Equal(t, "movies", ev.LibraryName)
	assert.True(t, ev.Upgrade)
}

func TestNormalize_SonarrSeasonPack(t *testing.T) {
	payload := `{
		"eventType": "Download",
		"series": {"title": "Severance", "path": "/media/tv/Severance"},
		"episodes": [
			{"title": "Good News About Hell", "seasonNumber": 1, "episodeNumber": 1},
			{"title": "Half Loop", "seasonNumber": 1, "episodeNumber": 2}
		],
		"episodeFiles": [
			{"relativePath": "Season 01/Severance - S01E01.mkv", "size": 100},
			{"relativePath": "Season 01/Severance - S01E02.mkv", "size": 200}
		]
	}`

	events, err := Normalize([]byte(payload))
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "Good News About Hell", events[0].Title)
	assert.Equal(t, "/media/tv/Severance/Season 01/Severance - S01E01.mkv", events[0].FilePath)
	assert.Equal(t, 2, events[1].EpisodeNumber)
	assert.Equal(t, int64(200), events[1].FileSizeBytes)
}

func TestNormalize_OptionalFieldsMissing(t *testing.T) {
	// Some import events carry no mediaInfo, size, or overview. They must
	// normalize with those fields unset, not fail.
	payload := `{
		"eventType": "Download",
		"movie": {"title": "Eraserhead", "folderPath": "/media/movies/Eraserhead (1977)"},
		"movieFile": {"relativePath": "Eraserhead.mkv"}
	}`

	events, err := Normalize([]byte(payload))
	require.NoError(t, err)
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, "Eraserhead", ev.Title)
	assert.Zero(t, ev.Year)
	assert.Empty(t, ev.Overview)
	assert.Empty(t, ev.VideoCodec)
	assert.Zero(t, ev.FileSizeBytes)
	assert.Equal(t, "/media/movies/Eraserhead (1977)/Eraserhead.mkv", ev.FilePath)
}

func TestNormalize_TestEvent(t *testing.T) {
	// Sonarr and Radarr both POST {"eventType": "Test"} when a webhook is
	// saved in their UI. That is a no-op, not an error.
	events, err := Normalize([]byte(`{"eventType": "Test"}`))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestNormalize_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `{{{`},
		{"empty object", `{}`},
		{"movie without title", `{"movie": {"folderPath": "/m/x"}, "movieFile": {"path": "/m/x/a.mkv"}}`},
		{"movie without folder path", `{"movie": {"title": "X"}, "movieFile": {"path": "/m/x/a.mkv"}}`},
		{"movie without file", `{"movie": {"title": "X", "folderPath": "/m/x"}}`},
		{"series without path", `{"series": {"title": "Y"}, "episodeFile": {"path": "/t/y/a.mkv"}}`},
		{"series without files", `{"series": {"title": "Y", "path": "/media/tv/Y"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize([]byte(tt.payload))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedPayload)
		})
	}
}

func TestLibraryFolder(t *testing.T) {
	assert.Equal(t, "tv", libraryFolder("/media/tv/Breaking Bad"))
	assert.Equal(t, "movies", libraryFolder("/media/movies/Dune (2021)/"))
	assert.Equal(t, "anime", libraryFolder("/anime/Frieren"))
}
