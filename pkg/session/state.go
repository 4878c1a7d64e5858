package session

// State is the playback lifecycle phase of the session.
type State int

const (
	StateIdle State = iota
	StateSearchPending
	StateVideoStaged
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSearchPending:
		return "search-pending"
	case StateVideoStaged:
		return "video-staged"
	case StatePlaying:
		return "playing"
	}
	return "unknown"
}
