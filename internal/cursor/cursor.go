// Package cursor implements a bounds-checked little-endian reader over a byte buffer.
package cursor

import "fmt"

// OutOfBoundsError is returned when a read would exceed the buffer end.
type OutOfBoundsError struct {
	Offset int // start offset of the attempted read
	Length int // number of bytes requested
	Size   int // total buffer size
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("read of %d bytes at offset %d exceeds buffer size %d",
		e.Length, e.Offset, e.Size)
}

// Cursor provides bounds-checked reads over an immutable byte buffer.
// It is the single decoding primitive used by all parsing stages, the
// buffer is never modified.
type Cursor struct {
	data []byte
}

// New creates a new cursor over the given buffer.
func New(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Size returns the total buffer size.
func (c *Cursor) Size() int {
	return len(c.data)
}

// U8 reads an unsigned byte at the given offset.
func (c *Cursor) U8(offset int) (byte, error) {
	if err := c.check(offset, 1); err != nil {
		return 0, err
	}
	return c.data[offset], nil
}

// U16LE reads an unsigned 16 bit little-endian value at the given offset.
func (c *Cursor) U16LE(offset int) (uint16, error) {
	if err := c.check(offset, 2); err != nil {
		return 0, err
	}
	return uint16(c.data[offset]) | uint16(c.data[offset+1])<<8, nil
}

// U32LE reads an unsigned 32 bit little-endian value at the given offset.
func (c *Cursor) U32LE(offset int) (uint32, error) {
	if err := c.check(offset, 4); err != nil {
		return 0, err
	}
	return uint32(c.data[offset]) | uint32(c.data[offset+1])<<8 |
		uint32(c.data[offset+2])<<16 | uint32(c.data[offset+3])<<24, nil
}

// Bytes returns a sub slice of the buffer of the given length.
// The returned slice aliases the underlying buffer and must not be modified.
func (c *Cursor) Bytes(offset, length int) ([]byte, error) {
	if err := c.check(offset, length); err != nil {
		return nil, err
	}
	return c.data[offset : offset+length], nil
}

func (c *Cursor) check(offset, length int) error {
	if offset < 0 || length < 0 || offset+length > len(c.data) {
		return &OutOfBoundsError{Offset: offset, Length: length, Size: len(c.data)}
	}
	return nil
}
