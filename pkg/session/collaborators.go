package session

import (
	"context"

	"rb3vid/internal/player"
	"rb3vid/pkg/ranker"
)

//go:generate mockgen -source=collaborators.go -destination=mock/collaborators.go -package=mock

// Finder picks the best matching video for a song.
type Finder interface {
	FindBest(ctx context.Context, artist, title string, targetSeconds int) (*ranker.Match, error)
}

// Resolver turns a video id into a playable stream URL.
type Resolver interface {
	Resolve(ctx context.Context, videoID string) (string, error)
}

// Player is the external playback collaborator.
type Player = player.Service

// DurationSource answers authoritative track lengths.
type DurationSource interface {
	Lookup(shortname, artist, title string) (int, bool)
}
