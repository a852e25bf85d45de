package ccj

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeTextPlain(t *testing.T) {
	got, err := decodeText([]byte("Capital of France (5)"))
	require.NoError(t, err)
	require.Equal(t, "Capital of France (5)", got)
}

func TestDecodeTextEmpty(t *testing.T) {
	got, err := decodeText(nil)
	require.NoError(t, err)
	require.Equal(t, "", got)
}

func TestDecodeTextStripsStyleToggles(t *testing.T) {
	got, err := decodeText([]byte("Unwis\x02e\x01?\x01\x01 (9)"))
	require.NoError(t, err)
	require.Equal(t, "Unwise? (9)", got)
}

func TestDecodeTextCollapsesWhitespace(t *testing.T) {
	// Newlines and tabs are control characters, so the collapse has to
	// happen before the candidate is screened.
	got, err := decodeText([]byte("two\nlines\tand  spaces"))
	require.NoError(t, err)
	require.Equal(t, "two lines and spaces", got)

	got, err = decodeText([]byte("\t padded \n"))
	require.NoError(t, err)
	require.Equal(t, " padded ", got)
}

func TestDecodeTextPrefersUTF8(t *testing.T) {
	// Valid UTF-8 must not be re-read as Latin-1 mojibake.
	got, err := decodeText([]byte("caf\xc3\xa9 (4)"))
	require.NoError(t, err)
	require.Equal(t, "café (4)", got)
}

func TestDecodeTextLatin1Fallback(t *testing.T) {
	got, err := decodeText([]byte("caf\xe9 (4)"))
	require.NoError(t, err)
	require.Equal(t, "café (4)", got)
}

func TestDecodeTextWindows1252Fallback(t *testing.T) {
	// 0x93/0x94 are C1 controls in Latin-1 but smart quotes in
	// Windows-1252, so only the last candidate survives screening.
	got, err := decodeText([]byte("\x93Sound\x94 (5)"))
	require.NoError(t, err)
	require.Equal(t, "“Sound” (5)", got)
}

func TestDecodeTextUndecidable(t *testing.T) {
	// 0x81 has no Windows-1252 assignment and is a C1 control in
	// Latin-1, so every candidate is rejected.
	_, err := decodeText([]byte{'a', 0x81, 'b'})
	require.ErrorIs(t, err, ErrUndecidableEncoding)

	// A bare control byte survives every charset but never the screen.
	_, err = decodeText([]byte{'a', 0x07, 'b'})
	require.ErrorIs(t, err, ErrUndecidableEncoding)
}
