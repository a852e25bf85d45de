package ccj

import (
	"fmt"
	"log/slog"
	"strings"
)

// Grid layer markers.
const (
	lightMarker    = 0x3F // '?'
	lightAltMarker = 0x4D // 'M', seen occasionally
	blockMarker    = 0x23 // '#'
)

// decoder drives a single forward pass over a CCJ buffer through the
// fixed section order of the format.
type decoder struct {
	cur    *cursor
	logger *slog.Logger
	diag   *Diagnostics

	width, height int
	grid          *Grid
}

// Decode parses a complete CCJ buffer into a Puzzle.
//
// opts may be nil. Decoding is a single forward pass with no backtracking;
// any structural deviation aborts with an error and no partial Puzzle is
// returned. The returned Puzzle is ready for EncodePUZ.
func Decode(data []byte, opts *DecodeOptions) (*Puzzle, error) {
	if opts == nil {
		opts = &DecodeOptions{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger
	}

	dec := &decoder{
		// The first two bytes are a fixed prefix, never examined.
		cur:    newCursor(data, 2),
		logger: logger,
		diag:   &Diagnostics{},
	}

	puzzle, err := dec.run()
	if err != nil {
		return nil, err
	}
	puzzle.applyMetadata(opts)
	puzzle.logger = logger
	return puzzle, nil
}

// run walks the section order: header strings, dimensions, grid layer,
// secondary numeric layer, answer layer, filler, the 16-byte block, then
// the across and down clue sections.
func (dec *decoder) run() (*Puzzle, error) {
	if err := dec.readButtonLabels(); err != nil {
		return nil, err
	}
	if err := dec.readCongratulations(); err != nil {
		return nil, err
	}
	if err := dec.readDimensions(); err != nil {
		return nil, err
	}
	if err := dec.seekGridStart(); err != nil {
		return nil, err
	}
	if err := dec.readGridLayer(); err != nil {
		return nil, err
	}
	dec.grid.AssignNumbers()
	if err := dec.readDigitLayer(); err != nil {
		return nil, err
	}
	if err := dec.readAnswerLayer(); err != nil {
		return nil, err
	}
	dec.skipFiller()
	if err := dec.skipPostFillerBlock(); err != nil {
		return nil, err
	}

	across, err := dec.readClueSection()
	if err != nil {
		return nil, err
	}
	dec.logger.Debug("now the down clues")
	down, err := dec.readClueSection()
	if err != nil {
		return nil, err
	}

	return &Puzzle{
		Width:       dec.width,
		Height:      dec.height,
		Grid:        dec.grid,
		AcrossClues: across,
		DownClues:   down,
		Diagnostics: dec.diag,
	}, nil
}

// ====================================================================
// Header strings and dimensions
// ====================================================================

// readButtonLabels reads the length-prefixed UI button strings that lead
// the file, up to the NUL standing in place of a length byte.
func (dec *decoder) readButtonLabels() error {
	for {
		b, err := dec.cur.byteAt()
		if err != nil {
			return fmt.Errorf("failed to read button labels: %w", err)
		}
		if b == 0 {
			_, _ = dec.cur.readByte()
			return nil
		}
		span, err := dec.cur.readSpan()
		if err != nil {
			return fmt.Errorf("failed to read button label: %w", err)
		}
		label, err := decodeText(span)
		if err != nil {
			return fmt.Errorf("failed to decode button label: %w", err)
		}
		dec.diag.ButtonLabels = append(dec.diag.ButtonLabels, label)
		dec.logger.Debug("got button string", "label", label)
	}
}

// readCongratulations reads the congratulations message and the one
// unvalidated byte that follows it.
func (dec *decoder) readCongratulations() error {
	span, err := dec.cur.readSpan()
	if err != nil {
		return fmt.Errorf("failed to read congratulations message: %w", err)
	}
	msg, err := decodeText(span)
	if err != nil {
		return fmt.Errorf("failed to decode congratulations message: %w", err)
	}
	dec.diag.Congratulations = msg
	dec.logger.Debug("got congratulations message", "message", msg)

	// One more byte follows; 0x02 in some publications, 0x00 in others.
	b, err := dec.cur.readByte()
	if err != nil {
		return fmt.Errorf("failed to read post-congratulations byte: %w", err)
	}
	dec.diag.PostCongratulations = b
	return nil
}

func (dec *decoder) readDimensions() error {
	w, err := dec.cur.readByte()
	if err != nil {
		return fmt.Errorf("failed to read grid width: %w", err)
	}
	h, err := dec.cur.readByte()
	if err != nil {
		return fmt.Errorf("failed to read grid height: %w", err)
	}
	dec.width, dec.height = int(w), int(h)
	dec.grid = NewGrid(dec.width, dec.height)
	return nil
}

// ====================================================================
// Grid layers
// ====================================================================

// seekGridStart discards bytes until the first grid marker. What the
// skipped bytes mean is unknown; they are kept for inspection.
func (dec *decoder) seekGridStart() error {
	for {
		b, err := dec.cur.byteAt()
		if err != nil {
			return fmt.Errorf("failed to find grid start: %w", err)
		}
		if b == lightMarker || b == blockMarker {
			return nil
		}
		dec.diag.HeaderGap = append(dec.diag.HeaderGap, b)
		_, _ = dec.cur.readByte()
	}
}

// readGridLayer reads the light/block layer cell by cell.
func (dec *decoder) readGridLayer() error {
	for row := 0; row < dec.height; row++ {
		for col := 0; col < dec.width; col++ {
			off := dec.cur.offset()
			b, err := dec.cur.readByte()
			if err != nil {
				return fmt.Errorf("failed to read grid layer: %w", err)
			}
			switch b {
			case lightMarker, lightAltMarker:
				dec.grid.SetLight(row, col)
			case blockMarker:
				// Blocked square; the cell stays absent.
			default:
				return &MalformedError{
					Offset:   off,
					Expected: fmt.Sprintf("grid marker for cell (%d, %d)", col, row),
					Got:      b,
				}
			}
		}
	}
	dec.logger.Debug("grid scanned", "grid", "\n"+dec.grid.String())
	return nil
}

// readDigitLayer reads the second width x height layer in lock-step with
// the grid. Its purpose is not understood; it is decoded into the
// diagnostics and never reaches the output format.
func (dec *decoder) readDigitLayer() error {
	rows := make([]string, 0, dec.height)
	var row strings.Builder
	for y := 0; y < dec.height; y++ {
		row.Reset()
		for x := 0; x < dec.width; x++ {
			b, err := dec.cur.readByte()
			if err != nil {
				return fmt.Errorf("failed to read digit layer: %w", err)
			}
			switch {
			case b == 0:
				row.WriteByte(' ')
			case b < 10:
				row.WriteByte('0' + b)
			default:
				dec.logger.Warn("truncating digit layer value",
					"value", b, "truncated", b%10, "x", x, "y", y)
				row.WriteByte('0' + b%10)
			}
		}
		rows = append(rows, row.String())
	}
	dec.diag.DigitLayer = rows
	dec.logger.Debug("digit layer read", "layer", "\n"+strings.Join(rows, "\n"))
	return nil
}

// readAnswerLayer reads one letter per present cell, row-major, after the
// mandatory 0x01 separator.
func (dec *decoder) readAnswerLayer() error {
	if err := dec.cur.expect(0x01, "separator before the answers"); err != nil {
		return err
	}
	for row := 0; row < dec.height; row++ {
		for col := 0; col < dec.width; col++ {
			cell := dec.grid.Cell(row, col)
			if cell == nil {
				continue
			}
			b, err := dec.cur.readByte()
			if err != nil {
				return fmt.Errorf("failed to read answer layer: %w", err)
			}
			cell.Letter = b
		}
	}
	dec.logger.Debug("grid with answers", "grid", "\n"+dec.grid.String())
	return nil
}

// ====================================================================
// Filler and the 16-byte block
// ====================================================================

// skipFiller consumes the run of 4-byte padding blocks that sometimes
// follows the answer layer.
func (dec *decoder) skipFiller() {
	blocks := 0
	for dec.cur.fillerAhead() {
		_, _ = dec.cur.take(4)
		blocks++
	}
	dec.diag.FillerBlocks = blocks
	if blocks > 0 {
		dec.logger.Info("skipped ignorable blocks", "blocks", blocks)
	}
}

// skipPostFillerBlock validates and consumes the fixed 16-byte block
// whose first byte is always 0x02. The other 15 bytes are unexplained.
func (dec *decoder) skipPostFillerBlock() error {
	off := dec.cur.offset()
	b, err := dec.cur.byteAt()
	if err != nil {
		return fmt.Errorf("failed to read the 16-byte block: %w", err)
	}
	if b != 0x02 {
		return &MalformedError{Offset: off, Expected: "0x02 leading the 16-byte block", Got: b}
	}
	block, err := dec.cur.take(16)
	if err != nil {
		return fmt.Errorf("failed to skip the 16-byte block: %w", err)
	}
	dec.diag.PostFiller = append([]byte(nil), block...)
	return nil
}

// ====================================================================
// Clue sections
// ====================================================================

// readClueSection decodes one clue-list section: its label, a 3-byte
// preamble, the declared clue count, then that many clue records.
func (dec *decoder) readClueSection() (*ClueSet, error) {
	span, err := dec.cur.readSpan()
	if err != nil {
		return nil, fmt.Errorf("failed to read clue section label: %w", err)
	}
	label, err := decodeText(span)
	if err != nil {
		return nil, fmt.Errorf("failed to decode clue section label: %w", err)
	}
	dec.logger.Debug("clue set label", "label", label)

	lower := strings.ToLower(label)
	var across bool
	switch {
	case strings.Contains(lower, "across"):
		across = true
	case strings.Contains(lower, "down"):
		across = false
	default:
		return nil, &SectionLabelError{Label: label}
	}

	set := newClueSet(across)
	set.Label = label

	preamble, err := dec.cur.take(3)
	if err != nil {
		return nil, fmt.Errorf("failed to read clue section preamble: %w", err)
	}
	dec.diag.SectionPreambles = append(dec.diag.SectionPreambles, append([]byte(nil), preamble...))

	count, err := dec.cur.readByte()
	if err != nil {
		return nil, fmt.Errorf("failed to read clue count: %w", err)
	}
	dec.logger.Debug("number of clues", "count", count)

	for k := 0; k < int(count); k++ {
		clue, err := dec.readClue(across)
		if err != nil {
			return nil, err
		}
		set.add(clue)
	}
	return set, nil
}

// readClue decodes a single clue record: start coordinates, number label,
// a NUL, then the clue text.
func (dec *decoder) readClue(sectionAcross bool) (*Clue, error) {
	starts, err := dec.readClueStarts()
	if err != nil {
		return nil, err
	}

	span, err := dec.cur.readSpan()
	if err != nil {
		return nil, fmt.Errorf("failed to read clue number label: %w", err)
	}
	label, err := decodeText(span)
	if err != nil {
		return nil, fmt.Errorf("failed to decode clue number label: %w", err)
	}

	refs, err := resolveClueLabel(label, sectionAcross, dec.grid, dec.logger)
	if err != nil {
		return nil, err
	}

	if err := dec.cur.expect(0x00, "NUL after the clue number"); err != nil {
		return nil, err
	}

	span, err = dec.cur.readSpan()
	if err != nil {
		return nil, fmt.Errorf("failed to read clue text: %w", err)
	}
	text, err := decodeText(span)
	if err != nil {
		return nil, fmt.Errorf("failed to decode clue text: %w", err)
	}

	clue := &Clue{
		Across: sectionAcross,
		Refs:   refs,
		Starts: starts,
		Label:  label,
		Text:   text,
	}
	dec.logger.Debug("clue read", "label", label, "refs", refString(refs), "text", text)
	return clue, nil
}

// readClueStarts reads the start coordinates for one clue. A first byte
// with the high bit set introduces a NUL-terminated list of (x, y)
// pairs; otherwise exactly one pair follows.
func (dec *decoder) readClueStarts() ([]Coord, error) {
	first, err := dec.cur.byteAt()
	if err != nil {
		return nil, fmt.Errorf("failed to read clue start coordinates: %w", err)
	}

	if first < 0x80 {
		pair, err := dec.readCoordPair()
		if err != nil {
			return nil, err
		}
		return []Coord{pair}, nil
	}

	var starts []Coord
	for {
		b, err := dec.cur.byteAt()
		if err != nil {
			return nil, fmt.Errorf("failed to read clue start coordinates: %w", err)
		}
		if b == 0 {
			_, _ = dec.cur.readByte()
			return starts, nil
		}
		pair, err := dec.readCoordPair()
		if err != nil {
			return nil, err
		}
		starts = append(starts, pair)
	}
}

func (dec *decoder) readCoordPair() (Coord, error) {
	x, err := dec.cur.readByte()
	if err != nil {
		return Coord{}, fmt.Errorf("failed to read clue start coordinate: %w", err)
	}
	y, err := dec.cur.readByte()
	if err != nil {
		return Coord{}, fmt.Errorf("failed to read clue start coordinate: %w", err)
	}
	return Coord{X: reduceCoordinate(x), Y: reduceCoordinate(y)}, nil
}

// reduceCoordinate strips the 0x80 tag coordinate bytes sometimes carry.
func reduceCoordinate(b byte) int {
	if b >= 0x80 {
		return int(b) - 0x80
	}
	return int(b)
}
