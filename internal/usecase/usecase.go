package usecase

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/view"
	"github.com/rocketscienceinc/tictactoe-client/pkg/cookie"
)

type gameAPI interface {
	GetGame(ctx context.Context, token string, sessionID, gameID entity.ID) (*entity.Game, error)
	MakeMove(ctx context.Context, token string, sessionID, gameID entity.ID, move entity.Move) (*entity.Game, error)
}

type sessionAPI interface {
	StartSession(ctx context.Context, token, resumeToken string) (*entity.Session, error)
}

type newGameAPI interface {
	NewGame(ctx context.Context, token string, sessionID entity.ID) (*entity.NewGameDetails, error)
}

type scoreAPI interface {
	HighScores(ctx context.Context) ([]entity.ScoreEntry, error)
}

type loginAPI interface {
	Login(ctx context.Context, credentials entity.LoginRequest) (*entity.LoginResponse, error)
}

type cookieJar interface {
	Set(ctx context.Context, name, value string) error
	Header(ctx context.Context) (string, error)
}

type tokenInspector interface {
	Subject(token string) (string, error)
}

type boardPage interface {
	CellCount() int
	Cell(index int) (view.Cell, bool)
	SetCellText(index int, text string)
	SetCellTexts(texts []string)
	ClearCells()
	SetCellsDisabled(disabled bool)
	ShowBanner(banner view.Banner)
	HideStatus()
	SetNewGameVisible(visible bool)
	SetCredits(credits int)
	SetSign(sign string)
}

type scorePage interface {
	SetScores(rows []view.ScoreRow)
}

type scoreUpdater interface {
	Update(ctx context.Context) error
}

type gameStarter interface {
	Start(ctx context.Context, token string, sessionID entity.ID) (string, error)
}

// cookies is the part of the jar every flow reads.
type cookies struct {
	token string
}

func readCookies(ctx context.Context, jar cookieJar) (cookies, error) {
	header, err := jar.Header(ctx)
	if err != nil {
		return cookies{}, fmt.Errorf("failed to read cookies: %w", err)
	}

	return cookies{
		token: cookie.Get(header, cookie.AccessToken),
	}, nil
}
