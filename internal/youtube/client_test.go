package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"rb3vid/internal/testcommon"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-key", testcommon.SetupLogger(t), WithBaseURL(server.URL))
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient("", nil)
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestSearch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		query := r.URL.Query()
		require.Equal(t, "test-key", query.Get("key"))
		require.Equal(t, "snippet", query.Get("part"))
		require.Equal(t, "video", query.Get("type"))
		require.Equal(t, "10", query.Get("videoCategoryId"))
		require.Equal(t, "5", query.Get("maxResults"))
		require.Equal(t, "Weird Al Yankovic Gump official music video", query.Get("q"))

		_, _ = w.Write([]byte(`{
			"items": [
				{"id": {"videoId": "abc"}, "snippet": {"title": "Gump", "channelTitle": "alyankovic"}},
				{"id": {}, "snippet": {"title": "a channel, not a video"}},
				{"id": {"videoId": "def"}, "snippet": {"title": "Gump (Live)", "channelTitle": "somebody"}}
			]
		}`))
	})

	candidates, err := client.Search(context.Background(), "Weird Al Yankovic Gump official music video", 5)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	require.Equal(t, "abc", candidates[0].ID)
	require.Equal(t, "Gump", candidates[0].Title)
	require.Equal(t, "alyankovic", candidates[0].Channel)
	require.Equal(t, "def", candidates[1].ID)
}

func TestSearchErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.Search(context.Background(), "anything", 5)
	require.Error(t, err)
	require.Contains(t, err.Error(), "403")
}

func TestDurations(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/videos", r.URL.Path)
		query := r.URL.Query()
		require.Equal(t, "contentDetails", query.Get("part"))
		require.Equal(t, "abc,def,ghi", query.Get("id"))

		_, _ = w.Write([]byte(`{
			"items": [
				{"id": "abc", "contentDetails": {"duration": "PT2M17S"}},
				{"id": "def", "contentDetails": {"duration": "PT1H4M"}},
				{"id": "ghi", "contentDetails": {"duration": "bogus"}}
			]
		}`))
	})

	durations, err := client.Durations(context.Background(), []string{"abc", "def", "ghi"})
	require.NoError(t, err)
	require.Equal(t, map[string]int{"abc": 137, "def": 3840}, durations)
}

func TestDurationsEmptyInput(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	durations, err := client.Durations(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, durations)
}

func TestParseISODuration(t *testing.T) {
	testCases := []struct {
		input   string
		seconds int
		ok      bool
	}{
		{"PT2M17S", 137, true},
		{"PT59S", 59, true},
		{"PT1H4M", 3840, true},
		{"PT1H2M3S", 3723, true},
		{"PT0S", 0, true},
		{"P1DT2H", 0, false},
		{"PT", 0, false},
		{"PT5", 0, false},
		{"", 0, false},
		{"2:17", 0, false},
	}

	for _, tc := range testCases {
		seconds, ok := parseISODuration(tc.input)
		require.Equal(t, tc.ok, ok, tc.input)
		require.Equal(t, tc.seconds, seconds, tc.input)
	}
}
