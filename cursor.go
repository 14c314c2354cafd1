// SPDX-License-Identifier: MIT
// Source: github.com/k-vog/fantatech

package fantatech

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Cursor is a little-endian, bounds-checked cursor over an in-memory byte
// sequence. The archive index parsers and the BP2, BP3 and TXT_1997
// decoders read through one; TXT_2006 and TXT_UTF8 read their input with
// io.ReadAll. Game asset formats here are small enough to hold fully in
// memory, so there is no streaming variant.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor wraps data in a Cursor starting at position 0.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// NewCursorFromReader reads r to completion and wraps the result in a Cursor.
func NewCursorFromReader(r io.Reader) (*Cursor, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	return NewCursor(data), nil
}

// Len returns the total number of bytes in the underlying buffer.
func (c *Cursor) Len() int {
	return len(c.data)
}

// Tell returns the current absolute position.
func (c *Cursor) Tell() int {
	return c.pos
}

// Seek moves the cursor to an absolute position. Seeking past the end is
// allowed (matches tell/seek_end semantics); only reads fail.
func (c *Cursor) Seek(absolute int) error {
	if absolute < 0 {
		return fmt.Errorf("%w: negative seek to %d", ErrTruncated, absolute)
	}

	c.pos = absolute
	return nil
}

// SeekRelative moves the cursor by delta bytes from its current position.
func (c *Cursor) SeekRelative(delta int) error {
	return c.Seek(c.pos + delta)
}

// SeekEnd moves the cursor to the end of the buffer.
func (c *Cursor) SeekEnd() {
	c.pos = len(c.data)
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	if c.pos >= len(c.data) {
		return 0
	}

	return len(c.data) - c.pos
}

// ReadExact reads exactly n bytes and advances the cursor, or fails with
// ErrTruncated without advancing.
func (c *Cursor) ReadExact(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.data) {
		return nil, fmt.Errorf("%w: wanted %d bytes at offset %d, have %d", ErrTruncated, n, c.pos, c.Remaining())
	}

	out := c.data[c.pos : c.pos+n]
	c.pos += n
	return out, nil
}

// ReadU8 reads one byte.
func (c *Cursor) ReadU8() (uint8, error) {
	b, err := c.ReadExact(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// ReadU16LE reads a little-endian uint16.
func (c *Cursor) ReadU16LE() (uint16, error) {
	b, err := c.ReadExact(2)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint16(b), nil
}

// ReadU32LE reads a little-endian uint32.
func (c *Cursor) ReadU32LE() (uint32, error) {
	b, err := c.ReadExact(4)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(b), nil
}
