package player

import "github.com/pkg/errors"

//go:generate mockgen -source=player.go -destination=mock/player.go -package=mock

// ErrAlreadyPlayed is returned when a video was played recently and the
// duplicate guard suppresses it.
var ErrAlreadyPlayed = errors.New("video already played")

// Metadata describes the song a stream belongs to.
type Metadata struct {
	VideoID   string
	Artist    string
	Title     string
	Shortname string
}

// Options control how the external player is launched.
type Options struct {
	Fullscreen       bool
	Muted            bool
	ForceBestQuality bool
}

// Service is the external video player collaborator.
type Service interface {
	Play(streamURL string, meta Metadata, opts Options) error
	Stop()
}
