package ccj

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"
)

// headerPadding is the zero-filled span leading the PUZ-like output.
const headerPadding = 0x2C

// EncodePUZ serializes the puzzle to the simplified PUZ-like format.
//
// The output carries no checksums, so strict loaders will reject it.
// Encoding is deterministic and never modifies the Puzzle: the clue maps
// are reconciled on private copies, so repeated calls return byte-
// identical output.
func (p *Puzzle) EncodePUZ() ([]byte, error) {
	logger := p.log()
	across, down, err := p.reconcile(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile clue references: %w", err)
	}

	var buf bytes.Buffer

	// ====================================================================
	// Header
	// ====================================================================
	buf.Write(make([]byte, headerPadding))
	buf.WriteByte(byte(p.Width))
	buf.WriteByte(byte(p.Height))
	count := int16(len(across.Clues) + len(down.Clues))
	if err := binary.Write(&buf, binary.LittleEndian, count); err != nil {
		return nil, fmt.Errorf("failed to write clue count: %w", err)
	}
	buf.Write(make([]byte, 4))

	// ====================================================================
	// Solution and player layers
	// ====================================================================
	for row := 0; row < p.Height; row++ {
		for col := 0; col < p.Width; col++ {
			if c := p.Grid.Cell(row, col); c != nil {
				buf.WriteByte(c.Letter)
			} else {
				buf.WriteByte('.')
			}
		}
	}
	for row := 0; row < p.Height; row++ {
		for col := 0; col < p.Width; col++ {
			if p.Grid.Cell(row, col) != nil {
				buf.WriteByte('-')
			} else {
				buf.WriteByte('.')
			}
		}
	}

	// ====================================================================
	// Metadata strings
	// ====================================================================
	writeNulTerminated(&buf, p.Title)
	writeNulTerminated(&buf, p.Author)
	writeNulTerminated(&buf, p.Copyright)

	// ====================================================================
	// Clue lines
	// ====================================================================
	// The number label leads each line: without it there would be no way
	// to tell when an answer covers several entries in the grid.
	for _, c := range orderedClues(across, down) {
		writeNulTerminated(&buf, "["+c.DisplayLabel()+"] "+c.DisplayText())
	}
	buf.WriteByte(0)

	return buf.Bytes(), nil
}

// orderedClues merges both sections sorted by first entry number, across
// before down on ties.
func orderedClues(across, down *ClueSet) []*Clue {
	clues := make([]*Clue, 0, len(across.Clues)+len(down.Clues))
	for _, c := range across.Clues {
		clues = append(clues, c)
	}
	for _, c := range down.Clues {
		clues = append(clues, c)
	}
	sort.Slice(clues, func(i, j int) bool {
		if clues[i].Refs[0].Number != clues[j].Refs[0].Number {
			return clues[i].Refs[0].Number < clues[j].Refs[0].Number
		}
		return clues[i].Across && !clues[j].Across
	})
	return clues
}

func writeNulTerminated(buf *bytes.Buffer, s string) {
	buf.WriteString(s)
	buf.WriteByte(0)
}
