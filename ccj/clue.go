package ccj

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// clueTokenPattern matches one clue-number token: digits with an optional
// direction letter. Matching is a search, so "3 Down" resolves as 3 with
// an explicit D.
var clueTokenPattern = regexp.MustCompile(`(?i)(\d+) *([AD])?`)

// labelSeparators split a clue-number label into its tokens.
var labelSeparators = regexp.MustCompile(`[,/]`)

var (
	// residualControls matches control bytes left in decoded clue text.
	residualControls = regexp.MustCompile(`[\x00-\x1f]`)
	// enumerationGap matches the spacing before an enumeration like "(9)".
	enumerationGap = regexp.MustCompile(` *\(`)
)

// Coord is an (x, y) grid coordinate as stored in the clue records.
type Coord struct {
	X, Y int
}

// ClueRef is a single resolved (entry number, direction) reference from a
// clue label.
type ClueRef struct {
	Number int
	Across bool
}

// Clue is one clue as decoded from a clue-list section.
//
// A clue whose answer spans several grid entries carries one reference
// per entry, e.g. "4/12" or, with an explicit direction override,
// "9/14D". The first reference is the clue's primary key.
type Clue struct {
	Across bool      // direction of the section the clue was read under
	Refs   []ClueRef // resolved references, in label order
	Starts []Coord   // start coordinates
	Label  string    // raw number label, e.g. "5", "4/12", "9/14D"
	Text   string    // decoded clue text including the enumeration
}

// DisplayText returns the clue text ready for output: residual control
// bytes dropped and the gap before an enumeration parenthesis normalized
// to a single space.
func (c *Clue) DisplayText() string {
	t := residualControls.ReplaceAllString(c.Text, "")
	return enumerationGap.ReplaceAllString(t, " (")
}

// DisplayLabel returns the number label for output: '/' separators become
// ',' and the label is lower-cased.
func (c *Clue) DisplayLabel() string {
	return strings.ToLower(strings.ReplaceAll(c.Label, "/", ","))
}

// ClueSet groups the clues of one section (across or down).
type ClueSet struct {
	Label  string // raw section label, e.g. "Quixote-9000 Across"
	Across bool

	// Clues is keyed by each clue's first resolved entry number. A
	// duplicate key overwrites the earlier clue; repeated labels occur in
	// real puzzles and are not treated as errors.
	Clues map[int]*Clue
}

func newClueSet(across bool) *ClueSet {
	return &ClueSet{Across: across, Clues: make(map[int]*Clue)}
}

// add inserts a clue under its first resolved entry number.
func (cs *ClueSet) add(c *Clue) {
	cs.Clues[c.Refs[0].Number] = c
}

// clone copies the set so placeholder synthesis never touches the decoded
// maps. Clue values are shared; reconciliation only ever adds entries.
func (cs *ClueSet) clone() *ClueSet {
	out := &ClueSet{Label: cs.Label, Across: cs.Across, Clues: make(map[int]*Clue, len(cs.Clues))}
	for n, c := range cs.Clues {
		out.Clues[n] = c
	}
	return out
}

// resolveClueToken resolves one label token to a (number, direction)
// pair.
//
// An explicit trailing A or D is authoritative. Otherwise the grid
// numbering decides: a number starting exactly one direction is
// unambiguous; a number starting both falls back to the enclosing
// section's direction with a warning; a number starting neither is fatal.
func resolveClueToken(token string, sectionAcross bool, grid *Grid, logger *slog.Logger) (ClueRef, error) {
	m := clueTokenPattern.FindStringSubmatch(token)
	if m == nil {
		return ClueRef{}, &ClueTokenError{Token: token}
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return ClueRef{}, &ClueTokenError{Token: token}
	}

	if m[2] != "" {
		return ClueRef{Number: n, Across: strings.EqualFold(m[2], "A")}, nil
	}

	across, down := grid.Directions(n)
	switch {
	case !across && !down:
		return ClueRef{}, &UnknownClueNumberError{Number: n}
	case across != down:
		// Unambiguously determined by the grid.
		return ClueRef{Number: n, Across: across}, nil
	default:
		logger.Warn("couldn't determine clue direction, falling back on its section",
			"number", n, "across", sectionAcross)
		return ClueRef{Number: n, Across: sectionAcross}, nil
	}
}

// resolveClueLabel resolves every comma- or slash-separated token in a
// clue-number label, in label order.
func resolveClueLabel(label string, sectionAcross bool, grid *Grid, logger *slog.Logger) ([]ClueRef, error) {
	tokens := labelSeparators.Split(label, -1)
	refs := make([]ClueRef, 0, len(tokens))
	for _, token := range tokens {
		ref, err := resolveClueToken(token, sectionAcross, grid, logger)
		if err != nil {
			return nil, fmt.Errorf("clue label %q: %w", label, err)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// refString formats resolved references like "4A, 12D" for diagnostics.
func refString(refs []ClueRef) string {
	parts := make([]string, len(refs))
	for i, r := range refs {
		suffix := "D"
		if r.Across {
			suffix = "A"
		}
		parts[i] = strconv.Itoa(r.Number) + suffix
	}
	return strings.Join(parts, ", ")
}
