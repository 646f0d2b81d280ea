package settings

import (
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// suggestThreshold is the minimum Jaro-Winkler similarity for a suggestion.
const suggestThreshold = 0.8

// normalizeName lowercases a library name and strips accents, so "Animé"
// and "anime" compare equal. Used only for suggestions; webhook routing
// stays an exact match.
func normalizeName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return result
}

// Suggest returns the configured library whose name is closest to the given
// one, when it is close enough to be a plausible typo. Used by the settings
// API to answer "library not found" with a hint.
func Suggest(name string, candidates []*LibraryConfig) (string, bool) {
	target := normalizeName(name)
	if target == "" {
		return "", false
	}

	best := ""
	bestScore := float64(0)
	for _, c := range candidates {
		score := float64(edlib.JaroWinklerSimilarity(target, normalizeName(c.Name)))
		if score > bestScore {
			best = c.Name
			bestScore = score
		}
	}

	if bestScore < suggestThreshold {
		return "", false
	}
	return best, true
}
