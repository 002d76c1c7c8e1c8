package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-client/internal/route"
	"github.com/rocketscienceinc/tictactoe-client/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-client/internal/view"
)

var errBadCommand = errors.New(`type "row col", "new", "scores" or "quit"`)

// table is one game view with the page it draws on.
type table struct {
	page   *view.Page
	game   *usecase.GameView
	scores *usecase.ScoreBoard
}

// play reads commands until input ends or the user quits. Every navigation opens the
// game view of the new location.
func (that *app) play(ctx context.Context, location *route.Location, rows, cols int) error {
	log := that.logger.With("component", "play")

	select {
	case <-location.Changed():
	default:
	}

	lines := that.readLines()

	for {
		current, err := that.openTable(ctx, location, rows, cols)
		if err != nil {
			return err
		}

		log.Debug("game view opened", "location", location.Location())

		quit, err := that.drive(ctx, current, location, lines)
		if err != nil || quit {
			return err
		}
	}
}

func (that *app) openTable(ctx context.Context, location *route.Location, rows, cols int) (*table, error) {
	page := view.NewPage(rows, cols)
	scores := usecase.NewScoreBoard(that.logger, that.client, page)
	newGame := usecase.NewNewGameFlow(that.logger, that.client, location)
	game := usecase.NewGameView(that.logger, that.client, page, scores, newGame, that.jar, location)

	if err := game.Init(ctx); err != nil {
		return nil, err
	}

	if game.SessionFinished() {
		fmt.Fprintln(that.out, "This session is finished.")
	}

	current := &table{page: page, game: game, scores: scores}
	that.render(current)

	return current, nil
}

// drive feeds input lines to the table until the location changes. It reports true when
// the loop should stop.
func (that *app) drive(ctx context.Context, current *table, location *route.Location, lines <-chan string) (bool, error) {
	for {
		select {
		case <-ctx.Done():
			return true, nil
		case <-location.Changed():
			return false, nil
		case line, ok := <-lines:
			if !ok {
				return true, nil
			}

			if quit := that.handle(ctx, current, line); quit {
				return true, nil
			}
		}
	}
}

func (that *app) handle(ctx context.Context, current *table, line string) bool {
	switch command := strings.ToLower(strings.TrimSpace(line)); command {
	case "":
		return false
	case "quit", "exit", "q":
		return true
	case "new":
		if _, err := current.game.StartNewGame(ctx); err != nil {
			fmt.Fprintf(that.out, "Could not start a new game: %v\n", err)
			that.render(current)
		}
	case "scores":
		if err := current.scores.Update(ctx); err != nil {
			fmt.Fprintf(that.out, "Could not load scores: %v\n", err)
			return false
		}
		_ = current.page.RenderScores(that.out)
	default:
		that.click(ctx, current, command)
	}

	return false
}

func (that *app) click(ctx context.Context, current *table, command string) {
	row, col, err := parseCell(command)
	if err != nil {
		fmt.Fprintln(that.out, err)
		return
	}

	index, ok := current.page.CellAt(row, col)
	if !ok {
		fmt.Fprintf(that.out, "There is no cell %d %d.\n", row, col)
		return
	}

	result := current.game.ClickCell(ctx, index)

	switch result.Outcome {
	case usecase.MoveIgnored:
		fmt.Fprintln(that.out, "That cell is not available.")
	case usecase.MoveBusy:
		fmt.Fprintln(that.out, "Waiting for the previous move.")
	case usecase.MoveRejected, usecase.MoveNetworkError:
		fmt.Fprintf(that.out, "Move failed: %v\n", result.Err)
	case usecase.MoveApplied:
		if result.Err != nil {
			fmt.Fprintf(that.out, "Board could not be drawn: %v\n", result.Err)
		}
	}

	that.render(current)
}

func (that *app) render(current *table) {
	if err := current.page.Render(that.out); err != nil {
		that.logger.Error("failed to render page", "component", "play", "error", err)
	}
}

// readLines forwards input lines until the input ends.
func (that *app) readLines() <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		for that.input.Scan() {
			lines <- that.input.Text()
		}
	}()

	return lines
}

func parseCell(command string) (int, int, error) {
	fields := strings.Fields(command)
	if len(fields) != 2 {
		return 0, 0, errBadCommand
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, errBadCommand
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, errBadCommand
	}

	return row, col, nil
}
