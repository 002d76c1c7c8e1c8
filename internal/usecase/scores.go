package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-client/internal/view"
)

// ScoreBoard keeps the page's score region in sync with the backend's high score list.
type ScoreBoard struct {
	logger *slog.Logger
	api    scoreAPI
	page   scorePage
}

func NewScoreBoard(logger *slog.Logger, api scoreAPI, page scorePage) *ScoreBoard {
	return &ScoreBoard{
		logger: logger.With("component", "score-board"),
		api:    api,
		page:   page,
	}
}

// Update replaces the score region with the current list. Rank is the position in the
// backend's answer.
func (that *ScoreBoard) Update(ctx context.Context) error {
	log := that.logger.With("method", "Update")

	scores, err := that.api.HighScores(ctx)
	if err != nil {
		log.Error("failed to fetch high scores", "error", err)
		return fmt.Errorf("failed to update score board: %w", err)
	}

	rows := make([]view.ScoreRow, 0, len(scores))
	for index, score := range scores {
		rows = append(rows, view.ScoreRow{
			Rank:       index + 1,
			Date:       string(score.Date),
			User:       score.User,
			Score:      score.DisplayScore(),
			TimePlayed: string(score.TimePlayed),
		})
	}

	that.page.SetScores(rows)
	log.Debug("score board updated", "rows", len(rows))

	return nil
}
