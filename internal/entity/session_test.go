package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionConflict_FirstUnfinished(t *testing.T) {
	t.Run("Finds the first game that is not finished", func(t *testing.T) {
		// Given: a conflict body with numeric ids
		raw := []byte(`{"error": "active session", "session_detail": {"id": 11, "games": [{"id": 1, "status": "finished"}, {"id": 2, "status": "active"}]}}`)

		var conflict SessionConflict
		require.NoError(t, json.Unmarshal(raw, &conflict))

		// When: scanning the listed games
		game, ok := conflict.SessionDetail.FirstUnfinished()

		// Then: game 2 is returned and ids keep their textual form
		require.True(t, ok)
		assert.Equal(t, ID("2"), game.ID)
		assert.Equal(t, ID("11"), conflict.SessionDetail.ID)
	})

	t.Run("All finished means nothing to resume", func(t *testing.T) {
		session := &Session{Games: []GameRef{{ID: "1", Status: SessionGameFinished}}}

		_, ok := session.FirstUnfinished()

		assert.False(t, ok)
	})
}

func TestScoreEntry_DisplayScore(t *testing.T) {
	// Given: entries with a null and a numeric score, time played as a number
	raw := []byte(`[{"user": "A", "score": null, "date": "d1", "time_played": 12}, {"user": "B", "score": 5, "date": "d2", "time_played": "t2"}]`)

	var entries []ScoreEntry
	require.NoError(t, json.Unmarshal(raw, &entries))

	// Then: null scores display as zero
	assert.Equal(t, 0, entries[0].DisplayScore())
	assert.Equal(t, 5, entries[1].DisplayScore())
	assert.Equal(t, Text("12"), entries[0].TimePlayed)
	assert.Equal(t, Text("t2"), entries[1].TimePlayed)
}

func TestGameConflict_Decode(t *testing.T) {
	var conflict GameConflict
	require.NoError(t, json.Unmarshal([]byte(`{"session_id": 7, "game_id": 3}`), &conflict))

	assert.Equal(t, ID("7"), conflict.SessionID)
	assert.Equal(t, ID("3"), conflict.GameID)
}
