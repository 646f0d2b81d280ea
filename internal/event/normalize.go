package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
)

// ErrMalformedPayload is returned when a payload is missing fields the
// relay cannot work without (title, file path, root path).
var ErrMalformedPayload = errors.New("malformed webhook payload")

// sonarrPayload is the Sonarr "On Import"/"On Upgrade" webhook shape.
type sonarrPayload struct {
	EventType string `json:"eventType"`
	Series    *struct {
		Title string `json:"title"`
		Path  string `json:"path"`
	} `json:"series"`
	Episodes []struct {
		Title         string `json:"title"`
		SeasonNumber  int    `json:"seasonNumber"`
		EpisodeNumber int    `json:"episodeNumber"`
		Overview      string `json:"overview"`
	} `json:"episodes"`
	EpisodeFile  *sonarrFile  `json:"episodeFile"`
	EpisodeFiles []sonarrFile `json:"episodeFiles"`
	IsUpgrade    bool         `json:"isUpgrade"`
}

type sonarrFile struct {
	Path         string `json:"path"`
	RelativePath string `json:"relativePath"`
	Size         int64  `json:"size"`
	MediaInfo    *struct {
		VideoCodec string `json:"videoCodec"`
		AudioCodec string `json:"audioCodec"`
	} `json:"mediaInfo"`
}

// radarrPayload is the Radarr "On Import"/"On Upgrade" webhook shape.
type radarrPayload struct {
	EventType string `json:"eventType"`
	Movie     *struct {
		Title      string `json:"title"`
		Year       int    `json:"year"`
		Overview   string `json:"overview"`
		FolderPath string `json:"folderPath"`
	} `json:"movie"`
	MovieFile *struct {
		Path         string `json:"path"`
		RelativePath string `json:"relativePath"`
		Size         int64  `json:"size"`
		MediaInfo    *struct {
			VideoCodec string `json:"videoCodec"`
			AudioCodec string `json:"audioCodec"`
		} `json:"mediaInfo"`
	} `json:"movieFile"`
	IsUpgrade bool `json:"isUpgrade"`
}

// shapeProbe is decoded first to tell the two source shapes apart.
type shapeProbe struct {
	EventType string          `json:"eventType"`
	Movie     json.RawMessage `json:"movie"`
	Series    json.RawMessage `json:"series"`
}

// Normalize decodes a raw webhook payload into canonical media events.
// Radarr payloads yield exactly one event; Sonarr payloads yield one event
// per imported episode file. A recognized no-op payload (the "Test" event
// both apps send when a webhook is saved) yields an empty slice and no
// error.
func Normalize(payload []byte) ([]MediaEvent, error) {
	var probe shapeProbe
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrMalformedPayload, err)
	}

	if probe.EventType == "Test" {
		return nil, nil
	}

	switch {
	case probe.Movie != nil:
		return normalizeRadarr(payload)
	case probe.Series != nil:
		return normalizeSonarr(payload)
	default:
		return nil, fmt.Errorf("%w: neither movie nor series present", ErrMalformedPayload)
	}
}

func normalizeRadarr(payload []byte) ([]MediaEvent, error) {
	var p radarrPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("%w: decode radarr: %v", ErrMalformedPayload, err)
	}

	if p.Movie == nil || p.Movie.Title == "" {
		return nil, fmt.Errorf("%w: movie title missing", ErrMalformedPayload)
	}
	if p.Movie.FolderPath == "" {
		return nil, fmt.Errorf("%w: movie folder path missing", ErrMalformedPayload)
	}
	if p.MovieFile == nil || (p.MovieFile.Path == "" && p.MovieFile.RelativePath == "") {
		return nil, fmt.Errorf("%w: movie file path missing", ErrMalformedPayload)
	}

	path := p.MovieFile.Path
	if path == "" {
		path = filepath.Join(p.Movie.FolderPath, p.MovieFile.RelativePath)
	}

	ev := MediaEvent{
		Kind:          KindMovie,
		Title:         p.Movie.Title,
		Year:          p.Movie.Year,
		Overview:      p.Movie.Overview,
		FilePath:      path,
		FileSizeBytes: p.MovieFile.Size,
		LibraryName:   libraryFolder(p.Movie.FolderPath),
		Upgrade:       p.IsUpgrade,
	}
	if mi := p.MovieFile.MediaInfo; mi != nil {
		ev.VideoCodec = mi.VideoCodec
		ev.AudioCodec = mi.AudioCodec
	}
	return []MediaEvent{ev}, nil
}

func normalizeSonarr(payload []byte) ([]MediaEvent, error) {
	var p sonarrPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("%w: decode sonarr: %v", ErrMalformedPayload, err)
	}

	if p.Series == nil || p.Series.Title == "" {
		return nil, fmt.Errorf("%w: series title missing", ErrMalformedPayload)
	}
	if p.Series.Path == "" {
		return nil, fmt.Errorf("%w: series path missing", ErrMalformedPayload)
	}

	files := p.EpisodeFiles
	if len(files) == 0 && p.EpisodeFile != nil {
		files = []sonarrFile{*p.EpisodeFile}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: episode file path missing", ErrMalformedPayload)
	}

	library := libraryFolder(p.Series.Path)

	events := make([]MediaEvent, 0, len(files))
	for i, f := range files {
		if f.Path == "" && f.RelativePath == "" {
			return nil, fmt.Errorf("%w: episode file path missing", ErrMalformedPayload)
		}
		path := f.Path
		if path == "" {
			path = filepath.Join(p.Series.Path, f.RelativePath)
		}

		ev := MediaEvent{
			Kind:          KindEpisode,
			SeriesTitle:   p.Series.Title,
			FilePath:      path,
			FileSizeBytes: f.Size,
			LibraryName:   library,
			Upgrade:       p.IsUpgrade,
		}
		// Episode metadata lines up with files by position on multi-file
		// imports; single-file payloads carry exactly one episode.
		if i < len(p.Episodes) {
			e := p.Episodes[i]
			ev.Title = e.Title
			ev.SeasonNumber = e.SeasonNumber
			ev.EpisodeNumber = e.EpisodeNumber
			ev.Overview = e.Overview
		}
		if mi := f.MediaInfo; mi != nil {
			ev.VideoCodec = mi.VideoCodec
			ev.AudioCodec = mi.AudioCodec
		}
		events = append(events, ev)
	}
	return events, nil
}

// libraryFolder extracts the library folder name from a series/movie root
// path: /media/tv/Show Name -> "tv".
func libraryFolder(rootPath string) string {
	return filepath.Base(filepath.Dir(filepath.Clean(rootPath)))
}
