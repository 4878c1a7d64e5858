package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"rb3vid/pkg/ranker"
)

const (
	defaultBaseURL = "https://www.googleapis.com/youtube/v3"

	// Category 10 is "Music" in the YouTube Data API.
	musicCategoryID = "10"
)

var ErrMissingAPIKey = errors.New("youtube api key is required")

// Client talks to the YouTube Data API v3. It implements ranker.SearchService.
type Client struct {
	logger     *zap.Logger
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type ClientOption func(*Client)

func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(apiKey string, logger *zap.Logger, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client := &Client{
		logger:     logger.Named("youtube"),
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
		} `json:"snippet"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		ID             string `json:"id"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// Search runs a video search restricted to the music category and returns
// candidates in API order.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]ranker.Candidate, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("videoCategoryId", musicCategoryID)
	params.Set("maxResults", fmt.Sprintf("%d", limit))
	params.Set("q", query)

	var response searchResponse
	err := c.get(ctx, "/search", params, &response)
	if err != nil {
		return nil, errors.Wrap(err, "search request failed")
	}

	candidates := make([]ranker.Candidate, 0, len(response.Items))
	for _, item := range response.Items {
		if item.ID.VideoID == "" {
			continue
		}
		candidates = append(candidates, ranker.Candidate{
			ID:      item.ID.VideoID,
			Title:   item.Snippet.Title,
			Channel: item.Snippet.ChannelTitle,
		})
	}

	c.logger.Debug("search finished", zap.String("query", query), zap.Int("candidates", len(candidates)))
	return candidates, nil
}

// Durations fetches the length of each given video. Videos with missing or
// unparseable durations are left out of the result.
func (c *Client) Durations(ctx context.Context, ids []string) (map[string]int, error) {
	if len(ids) == 0 {
		return map[string]int{}, nil
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("part", "contentDetails")
	params.Set("id", strings.Join(ids, ","))

	var response videosResponse
	err := c.get(ctx, "/videos", params, &response)
	if err != nil {
		return nil, errors.Wrap(err, "videos request failed")
	}

	durations := make(map[string]int, len(response.Items))
	for _, item := range response.Items {
		seconds, ok := parseISODuration(item.ContentDetails.Duration)
		if !ok {
			c.logger.Debug("skipping unparseable duration",
				zap.String("videoID", item.ID),
				zap.String("duration", item.ContentDetails.Duration),
			)
			continue
		}
		durations[item.ID] = seconds
	}

	return durations, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	requestURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to execute request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %d", resp.StatusCode)
	}

	return errors.Wrap(json.NewDecoder(resp.Body).Decode(out), "failed to decode response")
}

var _ ranker.SearchService = (*Client)(nil)
