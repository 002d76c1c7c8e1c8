package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-client/internal/route"
	"github.com/rocketscienceinc/tictactoe-client/internal/transport/rest"
	"github.com/rocketscienceinc/tictactoe-client/internal/view"
	"github.com/rocketscienceinc/tictactoe-client/testing/backend"
	"github.com/rocketscienceinc/tictactoe-client/testing/suite"
)

type mockCookieJar struct {
	mock.Mock
}

func (that *mockCookieJar) Set(ctx context.Context, name, value string) error {
	args := that.Called(ctx, name, value)
	return args.Error(0)
}

func (that *mockCookieJar) Header(ctx context.Context) (string, error) {
	args := that.Called(ctx)
	return args.String(0), args.Error(1)
}

type mockTokenInspector struct {
	mock.Mock
}

func (that *mockTokenInspector) Subject(token string) (string, error) {
	args := that.Called(token)
	return args.String(0), args.Error(1)
}

// fixture wires a game view against the scripted backend.
type fixture struct {
	server   *backend.Backend
	client   *rest.Client
	page     *view.Page
	location *route.Location
	jar      *mockCookieJar
	view     *GameView
}

func newFixture(t *testing.T, path string) *fixture {
	t.Helper()

	server := backend.New(t)
	client := rest.New(suite.Logger(), server.URL, 5*time.Second)
	page := view.NewPage(3, 3)
	location := route.NewLocation(path)

	jar := &mockCookieJar{}
	jar.On("Header", mock.Anything).Return("access_token=tok; sessionID=7", nil).Maybe()

	logger := suite.Logger()
	scores := NewScoreBoard(logger, client, page)
	newGame := NewNewGameFlow(logger, client, location)

	server.Respond(backend.HighScores, 200, []any{})

	return &fixture{
		server:   server,
		client:   client,
		page:     page,
		location: location,
		jar:      jar,
		view:     NewGameView(logger, client, page, scores, newGame, jar, location),
	}
}

func gameBody(board [][]any, status any, credits int, sign string) map[string]any {
	return map[string]any{
		"actual_board": board,
		"status":       status,
		"credits":      credits,
		"player_sign":  sign,
	}
}

func emptyBoard() [][]any {
	return [][]any{{nil, nil, nil}, {nil, nil, nil}, {nil, nil, nil}}
}

func cellTexts(page *view.Page) []string {
	texts := make([]string, page.CellCount())
	for index := range texts {
		cell, _ := page.Cell(index)
		texts[index] = cell.Text
	}
	return texts
}

func allDisabled(page *view.Page) bool {
	for index := 0; index < page.CellCount(); index++ {
		if cell, _ := page.Cell(index); !cell.Disabled {
			return false
		}
	}
	return true
}
