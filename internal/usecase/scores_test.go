package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-client/internal/view"
	"github.com/rocketscienceinc/tictactoe-client/testing/backend"
	"github.com/rocketscienceinc/tictactoe-client/testing/suite"
)

func TestScoreBoard_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Renders one numbered row per entry with null scores as zero", func(t *testing.T) {
		// Given: two entries, the first without a score
		f := newFixture(t, "/")
		f.server.Respond(backend.HighScores, http.StatusOK, []map[string]any{
			{"user": "A", "score": nil, "date": "d1", "time_played": "t1"},
			{"user": "B", "score": 5, "date": "d2", "time_played": "t2"},
		})
		board := NewScoreBoard(suite.Logger(), f.client, f.page)

		// When: the score board is updated
		err := board.Update(ctx)

		// Then: rows are numbered by position
		require.NoError(t, err)
		assert.Equal(t, []view.ScoreRow{
			{Rank: 1, Date: "d1", User: "A", Score: 0, TimePlayed: "t1"},
			{Rank: 2, Date: "d2", User: "B", Score: 5, TimePlayed: "t2"},
		}, f.page.Scores())
	})

	t.Run("Replaces previous content on every call", func(t *testing.T) {
		f := newFixture(t, "/")
		f.page.SetScores([]view.ScoreRow{{Rank: 1, User: "old"}, {Rank: 2, User: "older"}})
		f.server.Respond(backend.HighScores, http.StatusOK, []map[string]any{{"user": "new", "score": 1}})
		board := NewScoreBoard(suite.Logger(), f.client, f.page)

		require.NoError(t, board.Update(ctx))
		require.NoError(t, board.Update(ctx))

		rows := f.page.Scores()
		require.Len(t, rows, 1)
		assert.Equal(t, "new", rows[0].User)
	})

	t.Run("Failure keeps the previous rows", func(t *testing.T) {
		f := newFixture(t, "/")
		f.page.SetScores([]view.ScoreRow{{Rank: 1, User: "kept"}})
		f.server.Respond(backend.HighScores, http.StatusInternalServerError, map[string]string{"message": "boom"})
		board := NewScoreBoard(suite.Logger(), f.client, f.page)

		err := board.Update(ctx)

		require.Error(t, err)
		assert.Equal(t, "kept", f.page.Scores()[0].User)
	})
}
