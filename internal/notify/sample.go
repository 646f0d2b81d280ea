package notify

import "github.com/vmunix/relayarr/internal/event"

// SampleEvent returns the fixed mock event used by preview and test
// notifications. Every optional field carries a representative value so
// users can see the effect of each include toggle.
func SampleEvent(kind event.Kind) event.MediaEvent {
	if kind == event.KindMovie {
		return event.MediaEvent{
			Kind:          event.KindMovie,
			Title:         "The Matrix",
			Year:          1999,
			Overview:      "A computer hacker learns from mysterious rebels about the true nature of his reality and his role in the war against its controllers.",
			FilePath:      "/media/movies/The Matrix (1999)/The Matrix (1999) Bluray-1080p.mkv",
			FileSizeBytes: 8160437862,
			VideoCodec:    "x264",
			AudioCodec:    "DTS",
			LibraryName:   "movies",
		}
	}
	return event.MediaEvent{
		Kind:          event.KindEpisode,
		Title:         "Good News About Hell",
		SeriesTitle:   "Severance",
		SeasonNumber:  1,
		EpisodeNumber: 1,
		Overview:      "Mark is promoted to lead a team who have had their memories surgically divided between their work and personal lives.",
		FilePath:      "/media/tv/Severance/Season 01/Severance - S01E01.mkv",
		FileSizeBytes: 3221225472,
		VideoCodec:    "x265",
		AudioCodec:    "EAC3",
		LibraryName:   "tv",
	}
}
