package session

import (
	"time"

	"rb3vid/internal/player"
)

type configuration struct {
	// StartDelay is waited out between the song starting in-game and the
	// video being handed to the player. A non-positive delay starts
	// playback immediately.
	StartDelay time.Duration

	// SyncToSongStart holds staged videos until the game reports a song
	// is actually playing. When disabled a video starts as soon as it is
	// staged.
	SyncToSongStart bool

	// StopOnMenu stops the player when the game returns to the menus.
	StopOnMenu bool

	Player player.Options
}

var defaultConfig = configuration{
	StartDelay:      0,
	SyncToSongStart: true,
	StopOnMenu:      true,
	Player: player.Options{
		Fullscreen:       false,
		Muted:            true,
		ForceBestQuality: false,
	},
}
