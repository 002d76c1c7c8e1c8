package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/route"
	"github.com/rocketscienceinc/tictactoe-client/internal/view"
)

type MoveOutcome int

const (
	// MoveIgnored - the cell was filled, disabled or out of range; nothing was sent.
	MoveIgnored MoveOutcome = iota
	// MoveBusy - another move is still waiting for the backend; nothing was sent.
	MoveBusy
	// MoveApplied - the backend accepted the move and the page shows its answer.
	MoveApplied
	// MoveRejected - the backend answered with an error and the local echo was reverted,
	// or it accepted the move with an answer that could not be read and the echo stays.
	MoveRejected
	// MoveNetworkError - no usable answer arrived; the local echo was reverted.
	MoveNetworkError
)

func (that MoveOutcome) String() string {
	switch that {
	case MoveBusy:
		return "busy"
	case MoveApplied:
		return "applied"
	case MoveRejected:
		return "rejected"
	case MoveNetworkError:
		return "network_error"
	default:
		return "ignored"
	}
}

type MoveResult struct {
	Outcome MoveOutcome
	Game    *entity.Game
	Err     error
}

// ViewContext identifies the game a view shows and the credential it acts with.
type ViewContext struct {
	SessionID entity.ID
	GameID    entity.ID
	Token     string
}

// GameView renders one game and mediates move submission for it.
type GameView struct {
	logger    *slog.Logger
	api       gameAPI
	page      boardPage
	scores    scoreUpdater
	newGame   gameStarter
	jar       cookieJar
	navigator route.Navigator

	mu       sync.Mutex
	viewCtx  ViewContext
	turn     entity.Mark
	ready    bool
	inFlight bool
	finished bool
}

func NewGameView(
	logger *slog.Logger,
	api gameAPI,
	page boardPage,
	scores scoreUpdater,
	newGame gameStarter,
	jar cookieJar,
	navigator route.Navigator,
) *GameView {
	return &GameView{
		logger:    logger.With("component", "game-view"),
		api:       api,
		page:      page,
		scores:    scores,
		newGame:   newGame,
		jar:       jar,
		navigator: navigator,
	}
}

// Init loads the game named by the current location and renders it.
func (that *GameView) Init(ctx context.Context) error {
	log := that.logger.With("method", "Init")

	sessionID, gameID, err := route.ParseGameView(that.navigator.Location())
	if err != nil {
		return err
	}

	jarCookies, err := readCookies(ctx, that.jar)
	if err != nil {
		return err
	}

	viewCtx := ViewContext{SessionID: sessionID, GameID: gameID, Token: jarCookies.token}
	log = log.With("sessionID", sessionID, "gameID", gameID)

	that.mu.Lock()
	that.viewCtx = viewCtx
	that.mu.Unlock()

	game, err := that.api.GetGame(ctx, viewCtx.Token, sessionID, gameID)
	if err != nil {
		if apperror.IsSessionFinished(err) {
			log.Info("session is finished, board disabled")
			that.page.SetCellsDisabled(true)

			that.mu.Lock()
			that.finished = true
			that.mu.Unlock()

			return nil
		}

		log.Error("failed to load game", "error", err)
		return fmt.Errorf("failed to load game: %w", err)
	}

	if err = that.RenderBoard(game.Board); err != nil {
		return err
	}

	that.ApplyStatus(game.Status, game.Credits)

	if err = that.scores.Update(ctx); err != nil {
		log.Warn("score board not refreshed", "error", err)
	}

	turn := game.PlayerSign
	if !turn.IsValid() {
		log.Warn("unexpected player sign, playing X", "sign", game.PlayerSign)
		turn = entity.PlayerX
	}

	that.page.SetSign(turn.String())

	that.mu.Lock()
	that.turn = turn
	that.ready = true
	that.mu.Unlock()

	log.Info("game loaded", "status", game.Status, "rawStatus", game.RawStatus)

	return nil
}

// Context returns the identifiers the view was initialised with.
func (that *GameView) Context() ViewContext {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.viewCtx
}

// SessionFinished reports whether Init found the session closed.
func (that *GameView) SessionFinished() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.finished
}

// RenderBoard writes board into the page cells, row-major. The page is left untouched
// when the board does not fit it.
func (that *GameView) RenderBoard(board entity.Board) error {
	cells := that.page.CellCount()
	if err := board.Validate(cells); err != nil {
		that.logger.Error("cannot render board", "method", "RenderBoard", "error", err)
		return fmt.Errorf("failed to render board: %w", err)
	}

	texts := make([]string, cells)
	for index := range texts {
		texts[index] = board.Cell(index)
	}

	that.page.SetCellTexts(texts)

	return nil
}

// ApplyStatus shows the end-of-game state for terminal statuses and updates credits. A
// terminal status without a banner of its own still disables the board.
func (that *GameView) ApplyStatus(status entity.GameStatus, credits int) {
	if status.IsTerminal() {
		that.page.HideStatus()

		switch status {
		case entity.StatusWon:
			that.page.ShowBanner(view.BannerWon)
		case entity.StatusLost:
			that.page.ShowBanner(view.BannerLost)
		case entity.StatusDraw:
			that.page.ShowBanner(view.BannerNoWinner)
		}

		that.page.SetNewGameVisible(true)
		that.page.SetCellsDisabled(true)
	}

	that.page.SetCredits(credits)
}

// ClickCell puts the player's mark into an empty cell and submits the move. A failed
// submission restores the cell and the turn mark.
func (that *GameView) ClickCell(ctx context.Context, index int) MoveResult {
	log := that.logger.With("method", "ClickCell", "cell", index)

	that.mu.Lock()

	cell, ok := that.page.Cell(index)
	if !ok || !that.ready || cell.Disabled || cell.Text != "" {
		that.mu.Unlock()
		return MoveResult{Outcome: MoveIgnored}
	}

	if that.inFlight {
		that.mu.Unlock()
		log.Debug("move ignored, another one is in flight")
		return MoveResult{Outcome: MoveBusy, Err: apperror.ErrMoveInFlight}
	}

	mark := that.turn
	that.inFlight = true
	that.page.SetCellText(index, mark.String())
	that.turn = mark.Toggle()
	viewCtx := that.viewCtx

	that.mu.Unlock()

	move := entity.Move{Row: cell.Row, Col: cell.Col}
	game, err := that.api.MakeMove(ctx, viewCtx.Token, viewCtx.SessionID, viewCtx.GameID, move)

	// the backend took the move but its answer is unreadable; keep the echo
	accepted := errors.Is(err, apperror.ErrMalformedResponse)

	that.mu.Lock()
	that.inFlight = false
	if err != nil && !accepted {
		that.page.SetCellText(index, "")
		that.turn = mark
	}
	that.mu.Unlock()

	if err != nil {
		outcome := MoveNetworkError
		if _, isResp := apperror.AsResponseError(err); isResp || accepted {
			outcome = MoveRejected
		}

		log.Error("move failed", "outcome", outcome, "error", err)

		return MoveResult{Outcome: outcome, Err: err}
	}

	if game.Status.IsTerminal() {
		log.Info("game over", "status", game.Status, "rawStatus", game.RawStatus)
	}

	result := MoveResult{Outcome: MoveApplied, Game: game}

	that.ApplyStatus(game.Status, game.Credits)
	if renderErr := that.RenderBoard(game.Board); renderErr != nil {
		result.Err = renderErr
	}

	if scoreErr := that.scores.Update(ctx); scoreErr != nil {
		log.Warn("score board not refreshed", "error", scoreErr)
	}

	return result
}

// StartNewGame resets the page and asks for a new game in the view's session.
func (that *GameView) StartNewGame(ctx context.Context) (string, error) {
	that.page.ClearCells()
	that.page.HideStatus()
	that.page.SetCellsDisabled(false)

	viewCtx := that.Context()

	path, err := that.newGame.Start(ctx, viewCtx.Token, viewCtx.SessionID)
	if err != nil {
		that.logger.Error("new game not started", "method", "StartNewGame", "error", err)
		return "", err
	}

	return path, nil
}
