package ccj

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursorReadByte(t *testing.T) {
	cur := newCursor([]byte{0xAB, 0xCD, 0xEF}, 0)

	b, err := cur.readByte()
	require.NoError(t, err)
	require.Equal(t, byte(0xAB), b)
	require.Equal(t, 1, cur.offset())

	b, err = cur.readByte()
	require.NoError(t, err)
	require.Equal(t, byte(0xCD), b)

	b, err = cur.readByte()
	require.NoError(t, err)
	require.Equal(t, byte(0xEF), b)

	// Past the end now.
	_, err = cur.readByte()
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestCursorStartOffset(t *testing.T) {
	cur := newCursor([]byte{0x00, 0x00, 0x42}, 2)

	b, err := cur.readByte()
	require.NoError(t, err)
	require.Equal(t, byte(0x42), b)
	require.Equal(t, 0, cur.remaining())
}

func TestCursorByteAtDoesNotAdvance(t *testing.T) {
	cur := newCursor([]byte{0x11, 0x22}, 0)

	b1, err := cur.byteAt()
	require.NoError(t, err)
	b2, err := cur.byteAt()
	require.NoError(t, err)
	require.Equal(t, b1, b2)
	require.Equal(t, 0, cur.offset())
}

func TestCursorTake(t *testing.T) {
	cur := newCursor([]byte{1, 2, 3, 4, 5}, 0)

	span, err := cur.take(3)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, span)
	require.Equal(t, 3, cur.offset())

	_, err = cur.take(3)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestCursorReadSpan(t *testing.T) {
	cur := newCursor([]byte{5, 'H', 'e', 'l', 'l', 'o', 0, 0xFF}, 0)

	span, err := cur.readSpan()
	require.NoError(t, err)
	require.Equal(t, []byte("Hello"), span)
	require.Equal(t, 6, cur.offset())

	// A zero length is a legal empty span.
	span, err = cur.readSpan()
	require.NoError(t, err)
	require.Empty(t, span)
	require.Equal(t, 7, cur.offset())
}

func TestCursorReadSpanTruncated(t *testing.T) {
	// Length byte promises more bytes than the buffer holds.
	cur := newCursor([]byte{9, 'a', 'b'}, 0)

	_, err := cur.readSpan()
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestCursorExpect(t *testing.T) {
	cur := newCursor([]byte{0x01, 0x07}, 0)

	require.NoError(t, cur.expect(0x01, "separator"))
	require.Equal(t, 1, cur.offset())

	err := cur.expect(0x02, "marker")
	var malformed *MalformedError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, 1, malformed.Offset)
	require.Equal(t, byte(0x07), malformed.Got)
	require.Contains(t, malformed.Expected, "marker")

	_, err = cur.readByte()
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestCursorFillerAhead(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want bool
	}{
		{"AllZero", []byte{0x00, 0x00, 0x00, 0x00}, true},
		{"ZeroThreeFF", []byte{0x00, 0xFF, 0xFF, 0xFF}, true},
		{"TwoZeroTwoFF", []byte{0x00, 0x00, 0xFF, 0xFF}, true},
		{"NotFiller", []byte{0x00, 0xFF, 0x00, 0xFF}, false},
		{"BlockMarker", []byte{0x02, 0x00, 0x00, 0x00}, false},
		{"TooShort", []byte{0x00, 0xFF, 0xFF}, false},
		{"Empty", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cur := newCursor(tc.data, 0)
			require.Equal(t, tc.want, cur.fillerAhead())
			// Probing never advances the cursor.
			require.Equal(t, 0, cur.offset())
		})
	}
}
