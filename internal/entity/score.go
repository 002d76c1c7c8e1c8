package entity

// ScoreEntry is one row of the high score list, in backend order.
type ScoreEntry struct {
	User       string `json:"user"`
	Score      *int   `json:"score"`
	Date       Text   `json:"date"`
	TimePlayed Text   `json:"time_played"`
}

// DisplayScore substitutes 0 for a missing score.
func (that ScoreEntry) DisplayScore() int {
	if that.Score == nil {
		return 0
	}
	return *that.Score
}
