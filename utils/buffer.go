package utils

import (
	"encoding/binary"
)

// Buffer is a simple big-endian read/write buffer for fixed-width integers.
// Writes append to the internal slice, reads consume from its head.
type Buffer struct {
	buf []byte
}

// NewBuffer creates a new Buffer over the provided byte slice.
func NewBuffer(s []byte) *Buffer {
	return &Buffer{buf: s}
}

// Bytes returns the unread portion of the buffer.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// WriteUint8 appends c to the buffer.
func (b *Buffer) WriteUint8(c uint8) {
	b.buf = append(b.buf, c)
}

// WriteUint32 appends a big-endian uint32 to the buffer.
func (b *Buffer) WriteUint32(c uint32) {
	b.buf = append(b.buf, make([]byte, 4)...)
	binary.BigEndian.PutUint32(b.buf[len(b.buf)-4:], c)
}

// WriteUint64 appends a big-endian uint64 to the buffer.
func (b *Buffer) WriteUint64(c uint64) {
	b.buf = append(b.buf, make([]byte, 8)...)
	binary.BigEndian.PutUint64(b.buf[len(b.buf)-8:], c)
}

// WriteUint32Slice appends a slice of big-endian uint32 to the buffer.
func (b *Buffer) WriteUint32Slice(s []uint32) {
	for _, c := range s {
		b.WriteUint32(c)
	}
}

// WriteUint64Slice appends a slice of big-endian uint64 to the buffer.
func (b *Buffer) WriteUint64Slice(s []uint64) {
	for _, c := range s {
		b.WriteUint64(c)
	}
}

// ReadUint8 reads a byte from the head of the buffer.
func (b *Buffer) ReadUint8() (c uint8) {
	c = b.buf[0]
	b.buf = b.buf[1:]
	return
}

// ReadUint32 reads a big-endian uint32 from the head of the buffer.
func (b *Buffer) ReadUint32() (c uint32) {
	c = binary.BigEndian.Uint32(b.buf[:4])
	b.buf = b.buf[4:]
	return
}

// ReadUint64 reads a big-endian uint64 from the head of the buffer.
func (b *Buffer) ReadUint64() (c uint64) {
	c = binary.BigEndian.Uint64(b.buf[:8])
	b.buf = b.buf[8:]
	return
}

// ReadUint32Slice reads a slice of big-endian uint32 from the head of the buffer.
func (b *Buffer) ReadUint32Slice(s []uint32) {
	for i := range s {
		s[i] = b.ReadUint32()
	}
}

// ReadUint64Slice reads a slice of big-endian uint64 from the head of the buffer.
func (b *Buffer) ReadUint64Slice(s []uint64) {
	for i := range s {
		s[i] = b.ReadUint64()
	}
}
