package entity

// Session is a player's multi-game container.
type Session struct {
	ID     ID        `json:"id"`
	Status string    `json:"status,omitempty"`
	Score  *int      `json:"score,omitempty"`
	Games  []GameRef `json:"games,omitempty"`
}

// GameRef is a game as listed inside a session.
type GameRef struct {
	ID     ID     `json:"id"`
	Status string `json:"status"`
}

func (that GameRef) IsFinished() bool {
	return that.Status == SessionGameFinished
}

// FirstUnfinished returns the first listed game that is not finished.
func (that *Session) FirstUnfinished() (GameRef, bool) {
	for _, game := range that.Games {
		if !game.IsFinished() {
			return game, true
		}
	}

	return GameRef{}, false
}

// SessionConflict is the 400 body of GET /session when the player already has a session.
type SessionConflict struct {
	Error         string   `json:"error"`
	SessionDetail *Session `json:"session_detail"`
}
