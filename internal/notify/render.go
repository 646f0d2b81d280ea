// Package notify renders media events into notification messages.
//
// Rendering is a pure function of (event, template config): no clock, no
// I/O, no mutation. The settings UI re-renders a live preview on every
// keystroke and relies on identical inputs producing identical output.
package notify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vmunix/relayarr/internal/event"
)

// TemplateConfig controls how one media kind is rendered.
type TemplateConfig struct {
	TitleTemplate   string `json:"title_template"`
	BodyTemplate    string `json:"body_template"`
	IncludeOverview bool   `json:"include_overview"`
	IncludeCodec    bool   `json:"include_codec"`
	IncludeSize     bool   `json:"include_size"`
	IncludePath     bool   `json:"include_path"`
	EmojiEnabled    bool   `json:"emoji_enabled"`
}

// Message is a rendered notification.
type Message struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Fixed glyphs for the body segments when emoji is enabled.
const (
	emojiOverview = "📝"
	emojiCodec    = "🎞️"
	emojiSize     = "💾"
	emojiPath     = "📁"

	prefixImport  = "✨"
	prefixUpgrade = "⏫"
)

// overviewLimit is the rune count an overview is truncated to.
const overviewLimit = 250

var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

// Render produces the notification title and body for an event.
func Render(ev event.MediaEvent, cfg TemplateConfig) Message {
	fields := fieldMap(ev)

	return Message{
		Title: substitute(cfg.TitleTemplate, fields),
		Body:  renderBody(ev, cfg, fields),
	}
}

// fieldMap builds the placeholder values for an event. Fields that do not
// apply to the event's kind are simply absent and render as empty strings.
func fieldMap(ev event.MediaEvent) map[string]string {
	prefix := prefixImport
	if ev.Upgrade {
		prefix = prefixUpgrade
	}

	fields := map[string]string{
		"prefix":   prefix,
		"overview": ev.Overview,
		"path":     ev.FilePath,
	}

	switch ev.Kind {
	case event.KindEpisode:
		fields["series_name"] = ev.SeriesTitle
		fields["season_num"] = fmt.Sprintf("%02d", ev.SeasonNumber)
		fields["episode_num"] = fmt.Sprintf("%02d", ev.EpisodeNumber)
		fields["episode_name"] = ev.Title
	case event.KindMovie:
		fields["movie_name"] = ev.Title
		if ev.Year > 0 {
			fields["movie_year"] = fmt.Sprintf("%d", ev.Year)
		}
	}
	return fields
}

// substitute replaces {placeholder} tokens with field values. Unresolved
// placeholders become empty strings, never literal placeholder text.
func substitute(template string, fields map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := match[1 : len(match)-1]
		return fields[name]
	})
}

// renderBody assembles the body: the rendered body template first, then the
// conditional segments. A segment is omitted entirely when its flag is off
// or its source field is absent from the event.
func renderBody(ev event.MediaEvent, cfg TemplateConfig, fields map[string]string) string {
	var blocks []string

	if lead := strings.TrimSpace(substitute(cfg.BodyTemplate, fields)); lead != "" {
		blocks = append(blocks, lead)
	}

	overviewAdded := false
	if cfg.IncludeOverview && ev.Overview != "" {
		blocks = append(blocks, segment(cfg, emojiOverview, truncateOverview(ev.Overview)))
		overviewAdded = true
	}

	detailAdded := false
	detail := func(emoji, text string) {
		// Blank line between the overview and the first detail row.
		if overviewAdded && !detailAdded {
			blocks = append(blocks, "")
		}
		blocks = append(blocks, segment(cfg, emoji, text))
		detailAdded = true
	}

	if cfg.IncludeCodec && ev.VideoCodec != "" {
		detail(emojiCodec, "Codec: "+strings.ToUpper(ev.VideoCodec))
	}
	if cfg.IncludeSize && ev.FileSizeBytes > 0 {
		detail(emojiSize, "Size: "+FormatSize(ev.FileSizeBytes))
	}
	if cfg.IncludePath && ev.FilePath != "" {
		detail(emojiPath, "Path: "+ev.FilePath)
	}

	return strings.Join(blocks, "\n")
}

func segment(cfg TemplateConfig, emoji, text string) string {
	if cfg.EmojiEnabled {
		return emoji + " " + text
	}
	return text
}

// truncateOverview cuts an overview to overviewLimit runes on a word
// boundary and marks the cut with an ellipsis.
func truncateOverview(s string) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= overviewLimit {
		return s
	}
	cut := string(runes[:overviewLimit])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
