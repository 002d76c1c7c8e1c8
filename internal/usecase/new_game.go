package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/route"
)

// NewGameFlow asks the backend for a game in a session and navigates to it.
type NewGameFlow struct {
	logger    *slog.Logger
	api       newGameAPI
	navigator route.Navigator
}

func NewNewGameFlow(logger *slog.Logger, api newGameAPI, navigator route.Navigator) *NewGameFlow {
	return &NewGameFlow{
		logger:    logger.With("component", "new-game"),
		api:       api,
		navigator: navigator,
	}
}

// Start returns the path it navigated to. An unfinished game in the session is resumed
// instead of creating a new one.
func (that *NewGameFlow) Start(ctx context.Context, token string, sessionID entity.ID) (string, error) {
	log := that.logger.With("method", "Start", "sessionID", sessionID)

	details, err := that.api.NewGame(ctx, token, sessionID)
	if err == nil {
		if details.GameDetails == nil {
			log.Warn("game created without details")
			return "", nil
		}

		path := route.GameView(details.GameDetails.SessionID, details.GameDetails.ID)
		log.Info("game started", "gameID", details.GameDetails.ID)
		that.navigator.Navigate(path)

		return path, nil
	}

	respErr, ok := apperror.AsResponseError(err)
	if !ok || !respErr.IsConflict() {
		log.Error("failed to start a new game", "error", err)
		return "", fmt.Errorf("failed to start a new game: %w", err)
	}

	var conflict entity.GameConflict
	if decodeErr := json.Unmarshal(respErr.Body, &conflict); decodeErr != nil {
		log.Error("failed to decode conflict", "error", decodeErr)
		return "", fmt.Errorf("failed to decode conflict: %w", decodeErr)
	}

	if conflict.GameID.IsEmpty() {
		log.Info("no unfinished games found", "error", respErr.Message)
		return "", apperror.ErrNoActiveGames
	}

	path := route.GameView(conflict.SessionID, conflict.GameID)
	log.Info("resuming unfinished game", "gameID", conflict.GameID)
	that.navigator.Navigate(path)

	return path, nil
}
