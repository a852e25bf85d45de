package ccj

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a read runs past the end of the buffer.
var ErrOutOfRange = errors.New("ccj: read past end of buffer")

// ErrUndecidableEncoding is returned when no candidate character encoding
// decodes a text span without leaving control characters behind.
var ErrUndecidableEncoding = errors.New("ccj: couldn't guess the character set")

// MalformedError reports a byte that does not hold the fixed value the
// format requires at its position.
type MalformedError struct {
	Offset   int    // buffer offset of the offending byte
	Expected string // what the format requires there
	Got      byte
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("ccj: offset %d: expected %s, got 0x%02X", e.Offset, e.Expected, e.Got)
}

// SectionLabelError reports a clue-section label that contains neither
// "across" nor "down".
type SectionLabelError struct {
	Label string
}

func (e *SectionLabelError) Error() string {
	return fmt.Sprintf("ccj: couldn't find either 'across' or 'down' in label %q", e.Label)
}

// UnknownClueNumberError reports a clue-number token referencing a number
// the grid numbering never assigned.
type UnknownClueNumberError struct {
	Number int
}

func (e *UnknownClueNumberError) Error() string {
	return fmt.Sprintf("ccj: no clue directions found for clue number %d", e.Number)
}

// ClueTokenError reports a clue-number token that does not match the
// digits-plus-optional-direction-letter pattern.
type ClueTokenError struct {
	Token string
}

func (e *ClueTokenError) Error() string {
	return fmt.Sprintf("ccj: couldn't parse clue number string %q", e.Token)
}
