package durations

import (
	"strconv"
	"strings"
)

// ParseDuration parses a track length given as "M:SS", "H:MM:SS" or a bare
// number of seconds. Unparseable values report ok=false.
func ParseDuration(text string) (int, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}

	parts := strings.Split(text, ":")
	if len(parts) > 3 {
		return 0, false
	}

	seconds := 0
	for _, part := range parts {
		value, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || value < 0 {
			return 0, false
		}
		seconds = seconds*60 + value
	}
	return seconds, true
}
