package ccj

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
)

// Fixed defaults used when neither the file nor the caller supplies a
// value.
const (
	defaultTitle     = "Crossword"
	defaultAuthor    = "Unknown Setter"
	defaultCopyright = "© Unknown"
)

// setterPattern extracts "<setter>-<number>" metadata from the across
// section label, e.g. "Quixote-9000".
var setterPattern = regexp.MustCompile(`^(.*)-([0-9]+)`)

// discardLogger silences diagnostics when no sink is configured.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// DecodeOptions carries caller-supplied overrides and the diagnostics
// sink. Overrides take precedence over values extracted from the file,
// which in turn take precedence over the fixed defaults.
type DecodeOptions struct {
	Title        string
	Author       string // author, also used as the setter when none is extracted
	PuzzleNumber string
	Copyright    string
	Date         string // opaque display string, appended to the title
	Logger       *slog.Logger
}

// Diagnostics captures the bytes and strings the decoder reads but does
// not interpret, so the format guesses stay inspectable.
type Diagnostics struct {
	ButtonLabels        []string // UI button strings leading the file
	Congratulations     string
	PostCongratulations byte     // varies by publication, not validated
	HeaderGap           []byte   // unexplained bytes before the first grid marker
	DigitLayer          []string // secondary numeric layer, one row per string
	FillerBlocks        int      // count of 4-byte filler blocks consumed
	PostFiller          []byte   // the 16-byte block, first byte always 0x02
	SectionPreambles    [][]byte // 3 unknown bytes per clue section, decode order
}

// Puzzle is a fully decoded crossword.
type Puzzle struct {
	Width, Height int
	Grid          *Grid
	AcrossClues   *ClueSet
	DownClues     *ClueSet

	Title        string
	Author       string
	Copyright    string
	Setter       string // extracted from the across label when present
	PuzzleNumber string
	Date         string

	Diagnostics *Diagnostics

	logger *slog.Logger
}

func (p *Puzzle) log() *slog.Logger {
	if p.logger == nil {
		return discardLogger
	}
	return p.logger
}

// applyMetadata derives title, author, copyright, setter and puzzle
// number from the across-section label and the caller's overrides.
func (p *Puzzle) applyMetadata(opts *DecodeOptions) {
	var setter, number string
	if m := setterPattern.FindStringSubmatch(p.AcrossClues.Label); m != nil {
		setter, number = m[1], m[2]
	}

	if setter == "" && opts.Author != "" {
		setter = opts.Author
	}
	if opts.PuzzleNumber != "" {
		number = opts.PuzzleNumber
	}

	p.Setter = setter
	p.PuzzleNumber = number
	p.Date = opts.Date

	p.Title = defaultTitle
	if opts.Title != "" {
		p.Title = opts.Title
	}
	switch {
	case setter != "" && number != "":
		p.Title += " " + number + " / " + setter
	case setter != "":
		p.Title += " / " + setter
	case number != "":
		p.Title += " " + number
	}
	if p.Date != "" {
		p.Title += " (" + p.Date + ")"
	}

	p.Author = defaultAuthor
	if opts.Author != "" {
		p.Author = opts.Author
	}
	p.Copyright = defaultCopyright
	if opts.Copyright != "" {
		p.Copyright = opts.Copyright
	}
}

// reconcile returns copies of both clue sets in which every (number,
// direction) reference has an entry of its own, synthesizing "See N"
// placeholders for entries whose clue lives under another number.
//
// Working on copies keeps the decoded Puzzle untouched, so repeated
// encode calls are idempotent and never accumulate duplicates.
func (p *Puzzle) reconcile(logger *slog.Logger) (across, down *ClueSet, err error) {
	across = p.AcrossClues.clone()
	down = p.DownClues.clone()
	sets := map[bool]*ClueSet{true: across, false: down}

	for _, sectionAcross := range []bool{true, false} {
		set := sets[sectionAcross]

		// Snapshot the keys so placeholders added to this section are not
		// themselves walked, and so synthesis order is deterministic.
		keys := make([]int, 0, len(set.Clues))
		for n := range set.Clues {
			keys = append(keys, n)
		}
		sort.Ints(keys)

		for _, key := range keys {
			clue := set.Clues[key]
			primary := clue.Refs[0]
			for _, ref := range clue.Refs {
				target := sets[ref.Across]
				if _, ok := target.Clues[ref.Number]; ok {
					continue
				}
				text := "See " + strconv.Itoa(primary.Number)
				if primary.Across != sectionAcross {
					// Following the reference crosses into the other
					// section, so name the primary's direction.
					if primary.Across {
						text += " across"
					} else {
						text += " down"
					}
				}
				fake, err := newPlaceholder(ref, text, p.Grid, logger)
				if err != nil {
					return nil, nil, fmt.Errorf("failed to reconcile clue %d: %w", key, err)
				}
				target.Clues[ref.Number] = fake
				logger.Info("added missing clue", "number", ref.Number, "text", fake.DisplayText())
			}
		}
	}
	return across, down, nil
}

// newPlaceholder builds a synthesized "see other" clue for a referenced
// entry that has no clue line of its own.
func newPlaceholder(ref ClueRef, text string, grid *Grid, logger *slog.Logger) (*Clue, error) {
	label := strconv.Itoa(ref.Number)
	refs, err := resolveClueLabel(label, ref.Across, grid, logger)
	if err != nil {
		return nil, err
	}
	return &Clue{Across: ref.Across, Refs: refs, Label: label, Text: text}, nil
}
