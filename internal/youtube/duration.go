package youtube

import (
	"strconv"
	"strings"
)

// parseISODuration converts an ISO-8601 duration as returned by the API
// (PT2M17S, PT1H4M, PT59S) into whole seconds. Date components are not
// expected for videos and are rejected.
func parseISODuration(text string) (int, bool) {
	rest, ok := strings.CutPrefix(text, "PT")
	if !ok || rest == "" {
		return 0, false
	}

	seconds := 0
	number := ""
	for _, r := range rest {
		if r >= '0' && r <= '9' {
			number += string(r)
			continue
		}

		value, err := strconv.Atoi(number)
		if err != nil {
			return 0, false
		}
		number = ""

		switch r {
		case 'H':
			seconds += value * 3600
		case 'M':
			seconds += value * 60
		case 'S':
			seconds += value
		default:
			return 0, false
		}
	}

	if number != "" {
		return 0, false
	}
	return seconds, true
}
