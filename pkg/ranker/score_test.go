package ranker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDurationScoreExactMatch(t *testing.T) {
	require.Equal(t, 100, durationScore(137, 137))
}

func TestDurationScoreSymmetric(t *testing.T) {
	for _, d := range []int{1, 5, 10, 25, 45, 70, 200} {
		require.Equal(t, durationScore(137, 137+d), durationScore(137, 137-d), "d=%d", d)
	}
}

func TestDurationScoreTiers(t *testing.T) {
	cases := []struct {
		d     int
		score int
	}{
		{0, 100},
		{1, 89},
		{10, 80},
		{11, 69},
		{30, 50},
		{31, 39},
		{60, 10},
		{70, 19},
		{160, 10},
		{260, 0},
		{1000, 0},
	}
	target := 300
	for _, c := range cases {
		require.Equal(t, c.score, durationScore(target, target+c.d), "d=%d", c.d)
	}
}

func TestDurationScoreMonotonicWithinTiers(t *testing.T) {
	target := 300
	previous := durationScore(target, target)
	for d := 1; d <= 60; d++ {
		score := durationScore(target, target+d)
		require.LessOrEqual(t, score, previous, "d=%d", d)
		previous = score
	}

	previous = durationScore(target, target+61)
	for d := 62; d <= 400; d++ {
		score := durationScore(target, target+d)
		require.LessOrEqual(t, score, previous, "d=%d", d)
		previous = score
	}
}

func TestDurationScoreUnknown(t *testing.T) {
	require.Equal(t, 0, durationScore(0, 137))
	require.Equal(t, 0, durationScore(137, 0))
	require.Equal(t, 0, durationScore(0, 0))
}

func TestTextScore(t *testing.T) {
	artist := "Weird Al Yankovic"
	title := "Gump"

	// Song and artist both found.
	require.Equal(t, 30, textScore(artist, title, Candidate{
		Title:   "Weird Al Yankovic - Gump",
		Channel: "someuploads",
	}))

	// Only the song found.
	require.Equal(t, 15, textScore(artist, title, Candidate{
		Title:   "Gump lyrics",
		Channel: "someuploads",
	}))

	// Artist found via the channel name, which also makes it official.
	require.Equal(t, 35, textScore(artist, title, Candidate{
		Title:   "some video",
		Channel: "weird al yankovic",
	}))

	// Official channel marker alone.
	require.Equal(t, 20, textScore(artist, title, Candidate{
		Title:   "unrelated",
		Channel: "Atlantic Records",
	}))

	// Full house: both terms plus an official channel.
	require.Equal(t, 50, textScore(artist, title, Candidate{
		Title:   "Weird Al Yankovic - Gump (Official HD Video)",
		Channel: "alyankovicmusic",
	}))

	// No match at all.
	require.Equal(t, 0, textScore(artist, title, Candidate{
		Title:   "unrelated",
		Channel: "unrelated",
	}))
}
