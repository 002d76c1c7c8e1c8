package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/route"
	"github.com/rocketscienceinc/tictactoe-client/pkg/cookie"
)

type BootstrapOutcome int

const (
	// BootstrapStarted - the backend opened a session; navigation is left to the caller.
	BootstrapStarted BootstrapOutcome = iota
	// BootstrapResumed - an unfinished game was found and navigated to.
	BootstrapResumed
	// BootstrapNoUnfinished - the player has a session but every game in it is finished.
	BootstrapNoUnfinished
)

type BootstrapResult struct {
	Outcome   BootstrapOutcome
	SessionID entity.ID
	GameID    entity.ID
}

// SessionBootstrapper runs the landing page's "start session" action.
type SessionBootstrapper struct {
	logger    *slog.Logger
	api       sessionAPI
	jar       cookieJar
	navigator route.Navigator
}

func NewSessionBootstrapper(logger *slog.Logger, api sessionAPI, jar cookieJar, navigator route.Navigator) *SessionBootstrapper {
	return &SessionBootstrapper{
		logger:    logger.With("component", "session-bootstrap"),
		api:       api,
		jar:       jar,
		navigator: navigator,
	}
}

func (that *SessionBootstrapper) Start(ctx context.Context) (BootstrapResult, error) {
	log := that.logger.With("method", "Start")

	jarCookies, err := readCookies(ctx, that.jar)
	if err != nil {
		return BootstrapResult{}, err
	}

	if jarCookies.token == "" {
		return BootstrapResult{}, apperror.ErrNotAuthorized
	}

	session, err := that.api.StartSession(ctx, jarCookies.token, jarCookies.token)
	if err == nil {
		that.remember(ctx, cookie.SessionID, session.ID)
		log.Info("session started", "sessionID", session.ID)

		return BootstrapResult{Outcome: BootstrapStarted, SessionID: session.ID}, nil
	}

	respErr, ok := apperror.AsResponseError(err)
	if !ok || !respErr.IsConflict() {
		log.Error("failed to start session", "error", err)
		return BootstrapResult{}, fmt.Errorf("failed to start session: %w", err)
	}

	var conflict entity.SessionConflict
	if decodeErr := json.Unmarshal(respErr.Body, &conflict); decodeErr != nil {
		log.Error("failed to decode session conflict", "error", decodeErr)
		return BootstrapResult{}, fmt.Errorf("failed to decode session conflict: %w", decodeErr)
	}

	log.Info("session already active", "error", conflict.Error)

	if conflict.SessionDetail == nil {
		log.Warn("conflict carries no session detail")
		return BootstrapResult{Outcome: BootstrapNoUnfinished}, nil
	}

	sessionID := conflict.SessionDetail.ID

	game, found := conflict.SessionDetail.FirstUnfinished()
	if !found {
		log.Info("no unfinished games found", "sessionID", sessionID)
		return BootstrapResult{Outcome: BootstrapNoUnfinished, SessionID: sessionID}, nil
	}

	that.remember(ctx, cookie.SessionID, sessionID)
	that.remember(ctx, cookie.UnfinishedGameID, game.ID)

	log.Info("resuming unfinished game", "sessionID", sessionID, "gameID", game.ID)
	that.navigator.Navigate(route.GameView(sessionID, game.ID))

	return BootstrapResult{Outcome: BootstrapResumed, SessionID: sessionID, GameID: game.ID}, nil
}

// remember stores a hint cookie; failing to do so does not fail the flow.
func (that *SessionBootstrapper) remember(ctx context.Context, name string, id entity.ID) {
	if err := that.jar.Set(ctx, name, id.String()); err != nil {
		that.logger.Warn("failed to store cookie", "cookie", name, "error", err)
	}
}
