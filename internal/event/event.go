// Package event defines the canonical media event and the normalizer that
// produces it from raw Sonarr/Radarr webhook payloads.
package event

// Kind identifies the media type of an event.
type Kind string

const (
	KindEpisode Kind = "episode"
	KindMovie   Kind = "movie"
)

// Valid reports whether k is a known media kind.
func (k Kind) Valid() bool {
	return k == KindEpisode || k == KindMovie
}

// MediaEvent is the canonical representation of one imported media file.
// It is built once by the normalizer and never mutated afterwards.
type MediaEvent struct {
	Kind Kind

	// Title is the episode title for episodes, the movie title for movies.
	Title string

	// SeriesTitle is set for episodes only.
	SeriesTitle   string
	SeasonNumber  int
	EpisodeNumber int

	// Year is set for movies only (0 when unknown).
	Year int

	// Overview may be empty when the source did not include one.
	Overview string

	FilePath string

	// FileSizeBytes is 0 when the source did not report a size.
	FileSizeBytes int64

	VideoCodec string
	AudioCodec string

	// LibraryName is the on-disk library folder the file landed in,
	// e.g. "tv" for /media/tv/Show Name/Season 01/episode.mkv.
	LibraryName string

	// Upgrade is true when the import replaced an existing file.
	Upgrade bool
}
