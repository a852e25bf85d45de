package ccj

import "strings"

// unsetLetter marks a light whose answer has not been read yet.
const unsetLetter = '+'

// Cell is a single light (playable square) in the grid.
type Cell struct {
	Row, Col int
	Letter   byte
}

// ClueNumber records where a clue number was assigned and which entry
// directions start there.
type ClueNumber struct {
	Row, Col int
	Across   bool
	Down     bool
}

// Grid is a rectangular crossword grid. Blocked squares hold no cell.
type Grid struct {
	Width, Height int

	cells   [][]*Cell
	numbers map[int]ClueNumber
}

// NewGrid creates a grid of the given dimensions with every square
// blocked.
func NewGrid(width, height int) *Grid {
	cells := make([][]*Cell, height)
	for row := range cells {
		cells[row] = make([]*Cell, width)
	}
	return &Grid{Width: width, Height: height, cells: cells}
}

// SetLight marks the square at (row, col) as a light with no letter yet.
func (g *Grid) SetLight(row, col int) {
	g.cells[row][col] = &Cell{Row: row, Col: col, Letter: unsetLetter}
}

// Cell returns the cell at (row, col), or nil for blocked or out-of-range
// squares.
func (g *Grid) Cell(row, col int) *Cell {
	if row < 0 || row >= g.Height || col < 0 || col >= g.Width {
		return nil
	}
	return g.cells[row][col]
}

// AssignNumbers computes the clue numbering from the light/block layout.
//
// Cells are scanned in row-major order and a cell receives the next
// number when it starts an across entry (no light to its left, a light to
// its right) or a down entry (no light above, a light below). A cell
// starting both directions gets a single shared number.
func (g *Grid) AssignNumbers() {
	g.numbers = make(map[int]ClueNumber)
	next := 1
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			if g.cells[row][col] == nil {
				continue
			}
			across := g.Cell(row, col-1) == nil && g.Cell(row, col+1) != nil
			down := g.Cell(row-1, col) == nil && g.Cell(row+1, col) != nil
			if across || down {
				g.numbers[next] = ClueNumber{Row: row, Col: col, Across: across, Down: down}
				next++
			}
		}
	}
}

// NumberAt returns the numbering entry for a clue number, if assigned.
func (g *Grid) NumberAt(n int) (ClueNumber, bool) {
	cn, ok := g.numbers[n]
	return cn, ok
}

// Directions reports which entry directions start at the given clue
// number. Both false means the number was never assigned.
func (g *Grid) Directions(n int) (across, down bool) {
	cn := g.numbers[n]
	return cn.Across, cn.Down
}

// String renders the grid as ASCII art: the cell letter for lights, a
// space for blocked squares.
func (g *Grid) String() string {
	var sb strings.Builder
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			if c := g.cells[row][col]; c != nil {
				sb.WriteByte(c.Letter)
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
