package ranker

import (
	"regexp"
	"strings"
)

var (
	parentheticalRe = regexp.MustCompile(`\s*\([^)]*\)`)
	qualifierRe     = regexp.MustCompile(`(?i)\s*-\s*(live|acoustic|demo|remix).*$`)
	featuredRe      = regexp.MustCompile(`(?i)\s+(?:feat\.|ft\.|featuring)\s+`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
)

// CleanTitle strips parenthetical suffixes and trailing live/acoustic/demo/
// remix qualifiers from a song title.
func CleanTitle(title string) string {
	cleaned := parentheticalRe.ReplaceAllString(title, " ")
	cleaned = qualifierRe.ReplaceAllString(cleaned, "")
	return collapse(cleaned)
}

// CleanArtist truncates a featured-artist credit from an artist name.
func CleanArtist(artist string) string {
	cleaned := featuredRe.Split(artist, 2)[0]
	return collapse(cleaned)
}

func collapse(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
