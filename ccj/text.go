package ccj

import (
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// whitespaceRun matches runs of whitespace, including embedded newlines.
var whitespaceRun = regexp.MustCompile(`\s+`)

// charmapCandidates are the 8-bit code pages probed after UTF-8 fails.
var charmapCandidates = []*charmap.Charmap{
	charmap.ISO8859_1,
	charmap.Windows1252,
}

// decodeText turns an opaque CCJ byte span into a display string.
//
// CCJ carries no encoding tag, and strings embed inline style toggles:
// 0x03 seems to turn italic on, 0x01 off, and 0x02 may be bold. None of
// them are ever content, so they are dropped first. The remaining bytes
// are probed as UTF-8, then Latin-1, then Windows-1252; after each decode
// whitespace runs collapse to single spaces, and the first candidate left
// with no control characters wins.
func decodeText(span []byte) (string, error) {
	stripped := make([]byte, 0, len(span))
	for _, b := range span {
		switch b {
		case 0x01, 0x02, 0x03:
			continue
		default:
			stripped = append(stripped, b)
		}
	}

	if utf8.Valid(stripped) {
		if s, ok := tidyCandidate(string(stripped)); ok {
			return s, nil
		}
	}
	for _, cm := range charmapCandidates {
		decoded, err := cm.NewDecoder().Bytes(stripped)
		if err != nil {
			continue
		}
		if s, ok := tidyCandidate(string(decoded)); ok {
			return s, nil
		}
	}
	return "", fmt.Errorf("decoding %q: %w", span, ErrUndecidableEncoding)
}

// tidyCandidate collapses whitespace runs and rejects candidates still
// carrying control characters or replacement runes (the charmap decoders
// substitute U+FFFD for bytes undefined in the code page).
func tidyCandidate(s string) (string, bool) {
	s = whitespaceRun.ReplaceAllString(s, " ")
	for _, r := range s {
		if unicode.IsControl(r) || r == utf8.RuneError {
			return "", false
		}
	}
	return s, true
}
