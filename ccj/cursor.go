package ccj

import "fmt"

// cursor provides sequential byte-level reading from a CCJ buffer.
//
// All reads are bounds-checked and advance an explicit forward-only
// position. The only look-ahead is the single filler-block probe used
// between the answer layer and the clue sections.
type cursor struct {
	data     []byte
	position int
}

// fillerBlocks are the 4-byte padding patterns observed between the
// answer layer and the clue sections. Their meaning is unknown but their
// presence is non-semantic.
var fillerBlocks = [][4]byte{
	{0x00, 0xFF, 0xFF, 0xFF},
	{0x00, 0x00, 0xFF, 0xFF},
	{0x00, 0x00, 0x00, 0x00},
}

// newCursor creates a cursor over data starting at the given offset.
func newCursor(data []byte, start int) *cursor {
	return &cursor{data: data, position: start}
}

// offset returns the current byte position.
func (c *cursor) offset() int {
	return c.position
}

// remaining returns the number of bytes left to read.
func (c *cursor) remaining() int {
	return len(c.data) - c.position
}

// byteAt returns the byte at the current position without consuming it.
func (c *cursor) byteAt() (byte, error) {
	if c.position >= len(c.data) {
		return 0, fmt.Errorf("byte at offset %d: %w", c.position, ErrOutOfRange)
	}
	return c.data[c.position], nil
}

// readByte reads and consumes a single byte.
func (c *cursor) readByte() (byte, error) {
	b, err := c.byteAt()
	if err != nil {
		return 0, err
	}
	c.position++
	return b, nil
}

// take reads and consumes exactly n raw bytes.
// The returned slice aliases the underlying buffer.
func (c *cursor) take(n int) ([]byte, error) {
	if c.position+n > len(c.data) {
		return nil, fmt.Errorf("%d bytes at offset %d: %w", n, c.position, ErrOutOfRange)
	}
	span := c.data[c.position : c.position+n]
	c.position += n
	return span, nil
}

// readSpan reads a length-prefixed span: one length byte followed by that
// many raw bytes.
func (c *cursor) readSpan() ([]byte, error) {
	n, err := c.readByte()
	if err != nil {
		return nil, err
	}
	span, err := c.take(int(n))
	if err != nil {
		return nil, fmt.Errorf("length-prefixed span: %w", err)
	}
	return span, nil
}

// expect consumes one byte and verifies it holds the wanted value.
func (c *cursor) expect(want byte, what string) error {
	off := c.position
	got, err := c.readByte()
	if err != nil {
		return err
	}
	if got != want {
		return &MalformedError{
			Offset:   off,
			Expected: fmt.Sprintf("%s 0x%02X", what, want),
			Got:      got,
		}
	}
	return nil
}

// fillerAhead reports whether the next four bytes form one of the known
// filler patterns. Returns false near the end of the buffer.
func (c *cursor) fillerAhead() bool {
	if c.position+4 > len(c.data) {
		return false
	}
	var block [4]byte
	copy(block[:], c.data[c.position:])
	for _, f := range fillerBlocks {
		if block == f {
			return true
		}
	}
	return false
}
