package session

// SongIdentity accumulates song fragments delivered by separate events.
// The game announces title, artist and shortname independently and in no
// guaranteed order.
type SongIdentity struct {
	Title     string
	Artist    string
	Shortname string
}

// Complete reports whether enough fragments arrived to search for a video.
// A shortname together with at least one display field is enough; older
// game builds never send a shortname, so both display fields also qualify.
func (s SongIdentity) Complete() bool {
	if s.Shortname != "" && (s.Title != "" || s.Artist != "") {
		return true
	}
	return s.Title != "" && s.Artist != ""
}

func (s SongIdentity) Empty() bool {
	return s == SongIdentity{}
}

// PendingVideo is a resolved video staged for playback. At most one exists
// at a time; a newer search supersedes it.
type PendingVideo struct {
	StreamURL string
	VideoID   string
	Artist    string
	Title     string
	Shortname string
}

// GameInfo identifies the game instance broadcasting events.
type GameInfo struct {
	Source string
	Build  string
}
