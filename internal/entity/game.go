package entity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// GameStatus is the closed set of states a fetched game can be in.
type GameStatus int

const (
	StatusInProgress GameStatus = iota
	StatusWon
	StatusLost
	StatusDraw
	// StatusEnded is a terminal status the client has no banner for.
	StatusEnded
)

// SessionGameFinished is the status of a finished game inside a session listing.
const SessionGameFinished = "finished"

const boardKey = "actual_board"

var (
	ErrBoardMismatch = errors.New("board does not match page cells")
	ErrEmptyBoard    = errors.New("board has no cells")
)

// backend prose and plain tokens for every terminal status.
var statusAliases = map[string]GameStatus{
	"":                   StatusInProgress,
	"in_progress":        StatusInProgress,
	"you won":            StatusWon,
	"won":                StatusWon,
	"you lost":           StatusLost,
	"lost":               StatusLost,
	"there is no winner": StatusDraw,
	"draw":               StatusDraw,
}

// ParseGameStatus maps the nullable status field of a game body onto GameStatus. Any
// other non-null text ends the game without a banner.
func ParseGameStatus(raw *string) GameStatus {
	if raw == nil {
		return StatusInProgress
	}

	status, ok := statusAliases[strings.ToLower(strings.TrimSpace(*raw))]
	if !ok {
		return StatusEnded
	}

	return status
}

func (that GameStatus) IsTerminal() bool {
	return that != StatusInProgress
}

func (that GameStatus) String() string {
	switch that {
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	case StatusDraw:
		return "draw"
	case StatusEnded:
		return "ended"
	default:
		return "in_progress"
	}
}

// Board is a rectangular grid of cell marks, row-major.
type Board [][]string

func (that *Board) UnmarshalJSON(data []byte) error {
	var cells [][]*string
	if err := json.Unmarshal(data, &cells); err != nil {
		return fmt.Errorf("failed to decode board: %w", err)
	}

	board := make(Board, len(cells))
	for row, line := range cells {
		board[row] = make([]string, len(line))
		for col, cell := range line {
			if cell != nil {
				board[row][col] = *cell
			}
		}
	}

	*that = board

	return nil
}

func (that Board) Rows() int {
	return len(that)
}

// Cols is taken from the first row.
func (that Board) Cols() int {
	if len(that) == 0 {
		return 0
	}
	return len(that[0])
}

// Cell returns the mark at the row-major index.
func (that Board) Cell(index int) string {
	cols := that.Cols()
	return that[index/cols][index%cols]
}

// Validate checks that the board is rectangular and fills exactly cells page cells.
func (that Board) Validate(cells int) error {
	cols := that.Cols()
	if cols == 0 {
		return ErrEmptyBoard
	}

	for row, line := range that {
		if len(line) != cols {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrBoardMismatch, row, len(line), cols)
		}
	}

	if that.Rows()*cols != cells {
		return fmt.Errorf("%w: %dx%d board for %d cells", ErrBoardMismatch, that.Rows(), cols, cells)
	}

	return nil
}

// DecodeBoard accepts a bare grid or an object carrying it under actual_board.
func DecodeBoard(data []byte) (Board, error) {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '{' {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, fmt.Errorf("failed to decode board envelope: %w", err)
		}

		inner, ok := envelope[boardKey]
		if !ok {
			return nil, fmt.Errorf("%w: no %s field", ErrEmptyBoard, boardKey)
		}
		data = inner
	}

	var board Board
	if err := json.Unmarshal(data, &board); err != nil {
		return nil, err
	}

	return board, nil
}

// Game is the client's projection of one game, rebuilt on every fetch.
type Game struct {
	Board      Board
	Status     GameStatus
	RawStatus  string
	Credits    int
	PlayerSign Mark
}

type gameBody struct {
	ActualBoard json.RawMessage `json:"actual_board"`
	Status      *string         `json:"status"`
	Credits     int             `json:"credits"`
	PlayerSign  string          `json:"player_sign"`
}

func (that *Game) UnmarshalJSON(data []byte) error {
	var body gameBody
	if err := json.Unmarshal(data, &body); err != nil {
		return fmt.Errorf("failed to decode game: %w", err)
	}

	game := Game{
		Status:     ParseGameStatus(body.Status),
		Credits:    body.Credits,
		PlayerSign: Mark(body.PlayerSign),
	}

	if body.Status != nil {
		game.RawStatus = *body.Status
	}

	if len(body.ActualBoard) > 0 {
		var err error
		if game.Board, err = DecodeBoard(body.ActualBoard); err != nil {
			return err
		}
	}

	*that = game

	return nil
}

// Move is a cell submitted by the client.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NewGameDetails is the body of a freshly created game.
type NewGameDetails struct {
	GameDetails *GameDetails `json:"game_details"`
}

type GameDetails struct {
	ID        ID `json:"id"`
	SessionID ID `json:"session_id"`
}

// GameConflict is the 400 body of a new-game request while another game is unfinished.
type GameConflict struct {
	SessionID ID `json:"session_id"`
	GameID    ID `json:"game_id"`
}
