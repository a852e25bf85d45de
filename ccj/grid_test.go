package ccj

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// gridFromRows builds a grid from ASCII art: a space is a blocked square,
// anything else is a light carrying that letter.
func gridFromRows(t *testing.T, rows ...string) *Grid {
	t.Helper()
	g := NewGrid(len(rows[0]), len(rows))
	for row, line := range rows {
		for col := 0; col < len(line); col++ {
			if line[col] == ' ' {
				continue
			}
			g.SetLight(row, col)
			g.Cell(row, col).Letter = line[col]
		}
	}
	g.AssignNumbers()
	return g
}

func TestAssignNumbersRing(t *testing.T) {
	g := gridFromRows(t,
		"ABC",
		"D F",
		"GHI",
	)

	n, ok := g.NumberAt(1)
	require.True(t, ok)
	require.Equal(t, ClueNumber{Row: 0, Col: 0, Across: true, Down: true}, n)

	n, ok = g.NumberAt(2)
	require.True(t, ok)
	require.Equal(t, ClueNumber{Row: 0, Col: 2, Across: false, Down: true}, n)

	n, ok = g.NumberAt(3)
	require.True(t, ok)
	require.Equal(t, ClueNumber{Row: 2, Col: 0, Across: true, Down: false}, n)

	_, ok = g.NumberAt(4)
	require.False(t, ok)
}

func TestAssignNumbersOpenGrid(t *testing.T) {
	g := gridFromRows(t,
		"ABC",
		"DEF",
		"GHI",
	)

	want := map[int]ClueNumber{
		1: {Row: 0, Col: 0, Across: true, Down: true},
		2: {Row: 0, Col: 1, Across: false, Down: true},
		3: {Row: 0, Col: 2, Across: false, Down: true},
		4: {Row: 1, Col: 0, Across: true, Down: false},
		5: {Row: 2, Col: 0, Across: true, Down: false},
	}
	for number, cn := range want {
		got, ok := g.NumberAt(number)
		require.True(t, ok, "number %d missing", number)
		require.Equal(t, cn, got, "number %d", number)
	}
	_, ok := g.NumberAt(6)
	require.False(t, ok)
}

func TestAssignNumbersSingleRow(t *testing.T) {
	g := gridFromRows(t, "NO")

	n, ok := g.NumberAt(1)
	require.True(t, ok)
	require.Equal(t, ClueNumber{Row: 0, Col: 0, Across: true, Down: false}, n)
	_, ok = g.NumberAt(2)
	require.False(t, ok)
}

func TestAssignNumbersSingleColumn(t *testing.T) {
	g := gridFromRows(t, "A", "B", "C")

	n, ok := g.NumberAt(1)
	require.True(t, ok)
	require.Equal(t, ClueNumber{Row: 0, Col: 0, Across: false, Down: true}, n)
	_, ok = g.NumberAt(2)
	require.False(t, ok)
}

func TestDirections(t *testing.T) {
	g := gridFromRows(t,
		"ABC",
		"D F",
		"GHI",
	)

	across, down := g.Directions(1)
	require.True(t, across)
	require.True(t, down)

	across, down = g.Directions(2)
	require.False(t, across)
	require.True(t, down)

	// An unassigned number reports neither direction.
	across, down = g.Directions(99)
	require.False(t, across)
	require.False(t, down)
}

func TestCellBounds(t *testing.T) {
	g := gridFromRows(t,
		"AB",
		" C",
	)

	require.NotNil(t, g.Cell(0, 0))
	require.Equal(t, byte('B'), g.Cell(0, 1).Letter)
	require.Nil(t, g.Cell(1, 0), "blocked square")
	require.Nil(t, g.Cell(-1, 0))
	require.Nil(t, g.Cell(0, -1))
	require.Nil(t, g.Cell(2, 0))
	require.Nil(t, g.Cell(0, 2))
}

func TestGridString(t *testing.T) {
	g := gridFromRows(t,
		"ABC",
		"D F",
		"GHI",
	)
	require.Equal(t, "ABC\nD F\nGHI\n", g.String())
}
