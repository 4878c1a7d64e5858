package ranker

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrNoCandidates = errors.New("no candidates found")

const defaultSearchLimit = 5

// Match is the chosen candidate for a song.
type Match struct {
	VideoID string
	Title   string
	Channel string
	Score   int
}

type cacheKey struct {
	artist string
	title  string
}

// Ranker picks the best video for a song using text heuristics and, when an
// authoritative track length is known, duration agreement. Identical cleaned
// (artist, title) pairs are served from cache without touching the backend.
type Ranker struct {
	logger *zap.Logger
	search SearchService
	limit  int

	mutex sync.Mutex
	cache map[cacheKey]Match
}

func NewRanker(search SearchService, logger *zap.Logger) *Ranker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranker{
		logger: logger.Named("ranker"),
		search: search,
		limit:  defaultSearchLimit,
		cache:  make(map[cacheKey]Match),
	}
}

// FindBest walks progressively looser search queries and scores every
// candidate. The walk stops early once a candidate beats the early-exit
// threshold; otherwise the best candidate seen across all tiers wins. When
// nothing scores above zero the very first result of the first non-empty
// tier is used as a last resort.
func (r *Ranker) FindBest(ctx context.Context, artist, title string, targetSeconds int) (*Match, error) {
	cleanArtist := CleanArtist(artist)
	cleanTitle := CleanTitle(title)

	key := cacheKey{
		artist: strings.ToLower(cleanArtist),
		title:  strings.ToLower(cleanTitle),
	}
	if match, ok := r.cached(key); ok {
		r.logger.Debug("using cached result",
			zap.String("artist", cleanArtist),
			zap.String("title", cleanTitle),
			zap.String("videoId", match.VideoID),
		)
		return &match, nil
	}

	logger := r.logger.With(
		zap.String("artist", cleanArtist),
		zap.String("title", cleanTitle),
		zap.Int("targetSeconds", targetSeconds),
	)

	var best *Match
	var fallback *Match

tiers:
	for _, query := range searchQueries(cleanArtist, cleanTitle) {
		logger.Debug("searching", zap.String("query", query))

		candidates, err := r.search.Search(ctx, query, r.limit)
		if err != nil {
			// A failed tier is treated as an empty one.
			logger.Warn("search tier failed", zap.String("query", query), zap.Error(err))
			continue
		}
		if len(candidates) == 0 {
			continue
		}

		if targetSeconds > 0 {
			r.fillDurations(ctx, candidates)
		}

		if fallback == nil {
			fallback = &Match{
				VideoID: candidates[0].ID,
				Title:   candidates[0].Title,
				Channel: candidates[0].Channel,
			}
		}

		for _, candidate := range candidates {
			score := combinedScore(cleanArtist, cleanTitle, targetSeconds, candidate)
			if best == nil || score > best.Score {
				best = &Match{
					VideoID: candidate.ID,
					Title:   candidate.Title,
					Channel: candidate.Channel,
					Score:   score,
				}
			}
			if best.Score > earlyExitScore {
				break tiers
			}
		}
	}

	if best == nil || best.Score <= 0 {
		best = fallback
	}
	if best == nil {
		return nil, ErrNoCandidates
	}

	logger.Info("selected candidate",
		zap.String("videoId", best.VideoID),
		zap.String("candidateTitle", best.Title),
		zap.String("channel", best.Channel),
		zap.Int("score", best.Score),
	)

	r.store(key, *best)
	return best, nil
}

// fillDurations asks the backend for the lengths of candidates that came
// without one. Failure here only weakens scoring, it never fails the search.
func (r *Ranker) fillDurations(ctx context.Context, candidates []Candidate) {
	ids := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.Duration <= 0 {
			ids = append(ids, candidate.ID)
		}
	}
	if len(ids) == 0 {
		return
	}

	durations, err := r.search.Durations(ctx, ids)
	if err != nil {
		r.logger.Warn("failed to fetch candidate durations", zap.Error(err))
		return
	}
	for index := range candidates {
		if candidates[index].Duration <= 0 {
			candidates[index].Duration = durations[candidates[index].ID]
		}
	}
}

func searchQueries(cleanArtist, cleanTitle string) []string {
	base := strings.TrimSpace(cleanArtist + " " + cleanTitle)
	return []string{
		base + " official music video",
		base + " music video",
		base + " official",
		base,
	}
}

func (r *Ranker) cached(key cacheKey) (Match, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	match, ok := r.cache[key]
	return match, ok
}

func (r *Ranker) store(key cacheKey, match Match) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.cache[key] = match
}
