package protocol

import "strconv"

type GameState int

const (
	GameStateMenus  GameState = 0
	GameStateInGame GameState = 1
)

func (s GameState) String() string {
	switch s {
	case GameStateMenus:
		return "menus"
	case GameStateInGame:
		return "in-game"
	}
	return "unknown"
}

// ParseGameState interprets a game-state event payload. The game sends the
// state either as ASCII digits or as a single raw byte; a value of 1 means
// a song is being played, everything else is a menu.
func ParseGameState(payload string) GameState {
	value, err := strconv.Atoi(payload)
	if err != nil {
		if payload == "" {
			return GameStateMenus
		}
		value = int(payload[0])
	}
	if value == 1 {
		return GameStateInGame
	}
	return GameStateMenus
}
