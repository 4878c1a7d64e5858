package protocol

import (
	"fmt"
	"time"
)

// Wire constants defined by RB3Enhanced.
const (
	Magic   uint32 = 0x52423345 // "RB3E"
	Version byte   = 0
	Port           = 21070

	HeaderSize = 8
)

type EventKind uint8

const (
	EventAlive         EventKind = 0
	EventGameState     EventKind = 1
	EventSongTitle     EventKind = 2
	EventSongArtist    EventKind = 3
	EventSongShortname EventKind = 4
	EventScore         EventKind = 5
	EventRumble        EventKind = 6
	EventBandInfo      EventKind = 7
	EventVenueName     EventKind = 8
	EventScreenName    EventKind = 9
	EventExtensionData EventKind = 10
)

var kindNames = map[EventKind]string{
	EventAlive:         "alive",
	EventGameState:     "game_state",
	EventSongTitle:     "song_title",
	EventSongArtist:    "song_artist",
	EventSongShortname: "song_shortname",
	EventScore:         "score",
	EventRumble:        "rumble",
	EventBandInfo:      "band_info",
	EventVenueName:     "venue_name",
	EventScreenName:    "screen_name",
	EventExtensionData: "extension_data",
}

// Known reports whether the kind is part of the fixed enumeration.
// Unknown kinds still decode successfully and are kept for diagnostics.
func (k EventKind) Known() bool {
	_, ok := kindNames[k]
	return ok
}

func (k EventKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint8(k))
}

// Event is a single decoded status update. Immutable once constructed.
type Event struct {
	Kind       EventKind
	Payload    string
	ReceivedAt time.Time
	Source     string
}
