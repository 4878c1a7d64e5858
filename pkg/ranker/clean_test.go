package ranker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanTitle(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"Gump", "Gump"},
		{"Smells Like Teen Spirit (Remastered)", "Smells Like Teen Spirit"},
		{"Everlong (Acoustic) (Bonus Track)", "Everlong"},
		{"Creep - Live at the BBC", "Creep"},
		{"One - Remix 2004", "One"},
		{"My Song - Demo Version", "My Song"},
		{"  spaced   out  ", "spaced out"},
		{"", ""},
	}
	for _, c := range cases {
		require.Equal(t, c.out, CleanTitle(c.in), c.in)
	}
}

func TestCleanArtist(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"Weird Al Yankovic", "Weird Al Yankovic"},
		{"Run-DMC feat. Aerosmith", "Run-DMC"},
		{"Somebody ft. Someone Else", "Somebody"},
		{"A Band featuring A Guest", "A Band"},
		{"  The  Who ", "The Who"},
	}
	for _, c := range cases {
		require.Equal(t, c.out, CleanArtist(c.in), c.in)
	}
}

func TestSearchQueries(t *testing.T) {
	queries := searchQueries("Weird Al Yankovic", "Gump")
	require.Equal(t, []string{
		"Weird Al Yankovic Gump official music video",
		"Weird Al Yankovic Gump music video",
		"Weird Al Yankovic Gump official",
		"Weird Al Yankovic Gump",
	}, queries)

	// Legacy shortname path may leave the artist empty.
	queries = searchQueries("", "Gump")
	require.Equal(t, "Gump official music video", queries[0])
	require.Equal(t, "Gump", queries[3])
}
