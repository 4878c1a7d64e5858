package ranker

import "strings"

const (
	bothTermsScore = 30
	oneTermScore   = 15
	officialScore  = 20

	// A candidate scoring above this ends the query tier walk early.
	earlyExitScore = 50

	// Duration agreement is a stronger signal than text matching.
	durationWeight = 2
)

// Channel names carrying these markers are treated as official uploads.
// The cleaned artist name is an implicit fourth marker.
var officialMarkers = []string{"official", "records", "music"}

func textScore(cleanArtist, cleanTitle string, candidate Candidate) int {
	title := strings.ToLower(CleanTitle(candidate.Title))
	channel := strings.ToLower(candidate.Channel)
	artist := strings.ToLower(cleanArtist)
	song := strings.ToLower(cleanTitle)

	songHit := song != "" && strings.Contains(title, song)
	artistHit := artist != "" && (strings.Contains(title, artist) || strings.Contains(channel, artist))

	score := 0
	switch {
	case songHit && artistHit:
		score = bothTermsScore
	case songHit || artistHit:
		score = oneTermScore
	}

	for _, marker := range officialMarkers {
		if strings.Contains(channel, marker) {
			return score + officialScore
		}
	}
	if artist != "" && strings.Contains(channel, artist) {
		score += officialScore
	}
	return score
}

// durationScore rates how close a candidate runs to the authoritative track
// length. It depends only on the absolute difference.
func durationScore(targetSeconds, candidateSeconds int) int {
	if targetSeconds <= 0 || candidateSeconds <= 0 {
		return 0
	}

	d := targetSeconds - candidateSeconds
	if d < 0 {
		d = -d
	}

	switch {
	case d == 0:
		return 100
	case d <= 10:
		return 90 - d
	case d <= 30:
		return 70 - (d - 10)
	case d <= 60:
		return 40 - (d - 30)
	default:
		score := 20 - (d-60)/10
		if score < 0 {
			return 0
		}
		return score
	}
}

func combinedScore(cleanArtist, cleanTitle string, targetSeconds int, candidate Candidate) int {
	return textScore(cleanArtist, cleanTitle, candidate) +
		durationWeight*durationScore(targetSeconds, candidate.Duration)
}
