// Package codectest builds persisted record buffers for tests.
package codectest

import (
	"encoding/binary"
	"math"
	"unicode/utf16"

	"github.com/ssargent/stylegraph/pkg/guid"
)

// Builder appends primitives in the persisted wire layout.
type Builder struct {
	buf []byte
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{}
}

// Bytes returns the bytes written so far.
func (b *Builder) Bytes() []byte {
	out := make([]byte, len(b.buf))
	copy(out, b.buf)
	return out
}

// Len returns the number of bytes written so far.
func (b *Builder) Len() int {
	return len(b.buf)
}

// Raw appends raw bytes.
func (b *Builder) Raw(p ...byte) *Builder {
	b.buf = append(b.buf, p...)
	return b
}

// Zero appends n zero bytes.
func (b *Builder) Zero(n int) *Builder {
	return b.Raw(make([]byte, n)...)
}

// Object appends a class identifier in wire order.
func (b *Builder) Object(canonical string) *Builder {
	w := guid.MustParse(canonical).WireBytes()
	return b.Raw(w[:]...)
}

// Versioned appends a class identifier followed by a uint16 version.
func (b *Builder) Versioned(canonical string, version uint16) *Builder {
	return b.Object(canonical).U16(version)
}

// Null appends the all-zero identifier.
func (b *Builder) Null() *Builder {
	return b.Zero(guid.Size)
}

// U8 appends one byte.
func (b *Builder) U8(v uint8) *Builder {
	return b.Raw(v)
}

// U16 appends a little-endian uint16.
func (b *Builder) U16(v uint16) *Builder {
	b.buf = binary.LittleEndian.AppendUint16(b.buf, v)
	return b
}

// U32 appends a little-endian uint32.
func (b *Builder) U32(v uint32) *Builder {
	b.buf = binary.LittleEndian.AppendUint32(b.buf, v)
	return b
}

// I32 appends a little-endian int32.
func (b *Builder) I32(v int32) *Builder {
	return b.U32(uint32(v))
}

// Double appends a little-endian float64.
func (b *Builder) Double(v float64) *Builder {
	b.buf = binary.LittleEndian.AppendUint64(b.buf, math.Float64bits(v))
	return b
}

// String appends a length-prefixed, NUL terminated UTF-16LE string. The
// empty string is written as a zero length.
func (b *Builder) String(s string) *Builder {
	if s == "" {
		return b.U32(0)
	}
	units := append(utf16.Encode([]rune(s)), 0)
	b.U32(uint32(len(units) * 2))
	for _, u := range units {
		b.U16(u)
	}
	return b
}

// Terminator appends the 0x0d terminator byte.
func (b *Builder) Terminator() *Builder {
	return b.Raw(0x0d)
}
