package view

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"
)

// Banner is one of the end-of-game banners.
type Banner int

const (
	BannerWon Banner = iota
	BannerLost
	BannerNoWinner

	bannerCount
)

var bannerText = [bannerCount]string{
	BannerWon:      "You won",
	BannerLost:     "You lost",
	BannerNoWinner: "There is no winner",
}

func (that Banner) String() string {
	if that < 0 || that >= bannerCount {
		return fmt.Sprintf("Banner(%d)", int(that))
	}
	return bannerText[that]
}

// Cell is one board element. Row and Col are its position attributes.
type Cell struct {
	Row      int
	Col      int
	Text     string
	Disabled bool
}

// ScoreRow is one rendered line of the score region.
type ScoreRow struct {
	Rank       int
	Date       string
	User       string
	Score      int
	TimePlayed string
}

// Page is the client's display state: board cells, banners, new-game affordance,
// credits, the player's sign and the score region.
type Page struct {
	mu sync.RWMutex

	cols           int
	cells          []Cell
	banners        [bannerCount]bool
	newGameVisible bool
	credits        string
	sign           string
	scores         []ScoreRow
}

// NewPage lays out rows*cols empty cells in row-major order.
func NewPage(rows, cols int) *Page {
	cells := make([]Cell, 0, rows*cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cells = append(cells, Cell{Row: row, Col: col})
		}
	}

	return &Page{cols: cols, cells: cells}
}

func (that *Page) CellCount() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.cells)
}

func (that *Page) Cell(index int) (Cell, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if index < 0 || index >= len(that.cells) {
		return Cell{}, false
	}

	return that.cells[index], true
}

// CellAt finds the cell with the given position attributes.
func (that *Page) CellAt(row, col int) (int, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	for index, cell := range that.cells {
		if cell.Row == row && cell.Col == col {
			return index, true
		}
	}

	return 0, false
}

func (that *Page) SetCellText(index int, text string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if index >= 0 && index < len(that.cells) {
		that.cells[index].Text = text
	}
}

// SetCellTexts replaces every cell text at once; texts must match the cell count.
func (that *Page) SetCellTexts(texts []string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for index := range that.cells {
		if index < len(texts) {
			that.cells[index].Text = texts[index]
		}
	}
}

func (that *Page) ClearCells() {
	that.SetCellTexts(make([]string, that.CellCount()))
}

func (that *Page) SetCellsDisabled(disabled bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for index := range that.cells {
		that.cells[index].Disabled = disabled
	}
}

func (that *Page) ShowBanner(banner Banner) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if banner >= 0 && banner < bannerCount {
		that.banners[banner] = true
	}
}

// VisibleBanners lists the banners currently shown.
func (that *Page) VisibleBanners() []Banner {
	that.mu.RLock()
	defer that.mu.RUnlock()

	var visible []Banner
	for banner, shown := range that.banners {
		if shown {
			visible = append(visible, Banner(banner))
		}
	}

	return visible
}

// HideStatus hides all banners and the new-game affordance.
func (that *Page) HideStatus() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.banners = [bannerCount]bool{}
	that.newGameVisible = false
}

func (that *Page) SetNewGameVisible(visible bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.newGameVisible = visible
}

func (that *Page) NewGameVisible() bool {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.newGameVisible
}

func (that *Page) SetCredits(credits int) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.credits = fmt.Sprintf("Credits: %d", credits)
}

func (that *Page) Credits() string {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.credits
}

func (that *Page) SetSign(sign string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.sign = sign
}

func (that *Page) Sign() string {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.sign
}

// SetScores replaces the whole score region.
func (that *Page) SetScores(rows []ScoreRow) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.scores = append([]ScoreRow(nil), rows...)
}

func (that *Page) Scores() []ScoreRow {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return append([]ScoreRow(nil), that.scores...)
}

// Render writes the board and its status lines.
func (that *Page) Render(w io.Writer) error {
	that.mu.RLock()
	defer that.mu.RUnlock()

	var out strings.Builder

	if that.sign != "" {
		fmt.Fprintf(&out, "You play: %s\n", that.sign)
	}

	if that.cols > 0 {
		for start := 0; start < len(that.cells); start += that.cols {
			end := min(start+that.cols, len(that.cells))

			marks := make([]string, 0, that.cols)
			for _, cell := range that.cells[start:end] {
				marks = append(marks, renderCell(cell))
			}

			if start > 0 {
				out.WriteString(strings.Repeat("---+", that.cols-1) + "---\n")
			}
			out.WriteString(" " + strings.Join(marks, " | ") + "\n")
		}
	}

	for banner, shown := range that.banners {
		if shown {
			fmt.Fprintf(&out, "[%s]\n", Banner(banner))
		}
	}

	if that.newGameVisible {
		out.WriteString("Type \"new\" to start a new game\n")
	}

	if that.credits != "" {
		out.WriteString(that.credits + "\n")
	}

	_, err := io.WriteString(w, out.String())

	return err
}

func renderCell(cell Cell) string {
	if cell.Text == "" {
		return " "
	}
	return cell.Text
}

// RenderScores writes the score region as an aligned table.
func (that *Page) RenderScores(w io.Writer) error {
	rows := that.Scores()

	table := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprintf(table, "%d: %s\t%s\t%d\t%s\n", row.Rank, row.Date, row.User, row.Score, row.TimePlayed)
	}

	return table.Flush()
}
