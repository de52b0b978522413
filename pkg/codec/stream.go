package codec

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/unicode"

	"github.com/ssargent/stylegraph/pkg/guid"
)

const (
	// DefaultMaxDepth bounds object nesting for untrusted input.
	DefaultMaxDepth = 64
	// DefaultVersion is the version context given to an unversioned root.
	DefaultVersion = 1
	// Terminator closes certain variable-length structures inside a record.
	Terminator byte = 0x0d
)

// Stream is a forward-only cursor over one persisted record buffer. It is
// created per decode session and must not be shared between goroutines.
type Stream struct {
	buf      []byte
	off      int
	reg      *Registry
	depth    int
	maxDepth int
	version  int
	strict   bool
	log      zerolog.Logger
}

// Option configures a Stream.
type Option func(*Stream)

// WithMaxDepth bounds how deeply ReadObject may nest. Values below one are
// ignored.
func WithMaxDepth(n int) Option {
	return func(s *Stream) {
		if n > 0 {
			s.maxDepth = n
		}
	}
}

// WithVersion sets the version context handed to unversioned objects that
// have no enclosing record.
func WithVersion(v int) Option {
	return func(s *Stream) {
		s.version = v
	}
}

// WithStrictLength makes Decode reject bytes left over after the root
// object. Without it they are logged at debug level and ignored.
func WithStrictLength() Option {
	return func(s *Stream) {
		s.strict = true
	}
}

// WithLogger routes Trace output to l. The default logger discards it.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Stream) {
		s.log = l
	}
}

// NewStream creates a stream over buf. Nested objects are resolved through reg.
func NewStream(buf []byte, reg *Registry, opts ...Option) *Stream {
	s := &Stream{
		buf:      buf,
		reg:      reg,
		maxDepth: DefaultMaxDepth,
		version:  DefaultVersion,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Decode reads a single root object from buf.
func Decode(buf []byte, reg *Registry, opts ...Option) (Object, error) {
	s := NewStream(buf, reg, opts...)
	obj, err := s.ReadObject("root")
	if err != nil {
		return obj, err
	}
	if n := s.Remaining(); n > 0 {
		if s.strict {
			return nil, s.Fail(s.off, "root", ErrTrailingBytes, "%d bytes after the root object", n)
		}
		s.log.Debug().Int("offset", s.off).Int("remaining", n).Msg("ignoring bytes after the root object")
	}
	return obj, nil
}

// Offset returns the current byte offset.
func (s *Stream) Offset() int {
	return s.off
}

// Remaining returns the number of unread bytes.
func (s *Stream) Remaining() int {
	return len(s.buf) - s.off
}

// Depth returns the current object nesting depth.
func (s *Stream) Depth() int {
	return s.depth
}

// Trace emits a diagnostic message tagged with a field name. It never
// affects the decode.
func (s *Stream) Trace(field, format string, args ...any) {
	if e := s.log.Trace(); e.Enabled() {
		e.Int("offset", s.off).Int("depth", s.depth).Str("field", field).Msgf(format, args...)
	}
}

// Fail builds a MalformedError for a grammar violation found at offset at.
// Concrete decoders use it for checks the stream cannot make itself, such as
// out-of-range enumerations.
func (s *Stream) Fail(at int, field string, cause error, format string, args ...any) error {
	return &MalformedError{Offset: at, Field: field, Reason: fmt.Sprintf(format, args...), Cause: cause}
}

// Read consumes n raw bytes. The returned slice aliases the buffer and must
// not be modified.
func (s *Stream) Read(n int, field string) ([]byte, error) {
	if n < 0 {
		return nil, s.Fail(s.off, field, ErrBufferExhausted, "negative length %d", n)
	}
	if n > s.Remaining() {
		return nil, s.Fail(s.off, field, ErrBufferExhausted, "need %d bytes, %d left", n, s.Remaining())
	}
	b := s.buf[s.off : s.off+n]
	s.off += n
	return b, nil
}

// Skip consumes n bytes whose meaning is unknown and which are known to vary
// between samples.
func (s *Stream) Skip(n int, field string) error {
	b, err := s.Read(n, field)
	if err == nil {
		s.Trace(field, "skipped %s", hex.EncodeToString(b))
	}
	return err
}

// Expect consumes len(want) bytes and fails with ErrReservedMismatch unless
// they equal want. Reserved regions whose meaning is not understood are
// checked against the single value seen in every known sample, so a
// misaligned parse stops right here instead of drifting.
func (s *Stream) Expect(field string, want []byte) error {
	at := s.off
	got, err := s.Read(len(want), field)
	if err != nil {
		return err
	}
	if !bytes.Equal(got, want) {
		return s.Fail(at, field, ErrReservedMismatch, "expected %s, got %s", hex.EncodeToString(want), hex.EncodeToString(got))
	}
	return nil
}

// ExpectZero consumes n bytes that must all be zero.
func (s *Stream) ExpectZero(field string, n int) error {
	return s.Expect(field, make([]byte, n))
}

// ReadTerminator consumes the single 0x0d terminator byte.
func (s *Stream) ReadTerminator() error {
	at := s.off
	b, err := s.Read(1, "terminator")
	if err != nil {
		return err
	}
	if b[0] != Terminator {
		return s.Fail(at, "terminator", ErrBadTerminator, "expected %02x, got %02x", Terminator, b[0])
	}
	s.Trace("terminator", "found terminator")
	return nil
}

// ReadUint8 reads one unsigned byte.
func (s *Stream) ReadUint8(field string) (uint8, error) {
	b, err := s.Read(1, field)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint16 reads a little-endian uint16.
func (s *Stream) ReadUint16(field string) (uint16, error) {
	b, err := s.Read(2, field)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadUint32 reads a little-endian uint32.
func (s *Stream) ReadUint32(field string) (uint32, error) {
	b, err := s.Read(4, field)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadUint64 reads a little-endian uint64.
func (s *Stream) ReadUint64(field string) (uint64, error) {
	b, err := s.Read(8, field)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadInt8 reads one signed byte.
func (s *Stream) ReadInt8(field string) (int8, error) {
	v, err := s.ReadUint8(field)
	return int8(v), err
}

// ReadInt16 reads a little-endian int16.
func (s *Stream) ReadInt16(field string) (int16, error) {
	v, err := s.ReadUint16(field)
	return int16(v), err
}

// ReadInt32 reads a little-endian int32.
func (s *Stream) ReadInt32(field string) (int32, error) {
	v, err := s.ReadUint32(field)
	return int32(v), err
}

// ReadInt64 reads a little-endian int64.
func (s *Stream) ReadInt64(field string) (int64, error) {
	v, err := s.ReadUint64(field)
	return int64(v), err
}

// ReadDouble reads a little-endian IEEE 754 float64.
func (s *Stream) ReadDouble(field string) (float64, error) {
	v, err := s.ReadUint64(field)
	if err != nil {
		return 0, err
	}
	f := math.Float64frombits(v)
	s.Trace(field, "read double %v", f)
	return f, nil
}

// ReadBool reads a one byte flag that must be 0 or 1.
func (s *Stream) ReadBool(field string) (bool, error) {
	at := s.off
	v, err := s.ReadUint8(field)
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, s.Fail(at, field, ErrInvalidEnum, "flag value %d", v)
	}
}

// ReadString reads a length-prefixed UTF-16LE string. The uint32 prefix is
// the byte length including a trailing NUL code unit, which is stripped. A
// zero length is the empty string.
func (s *Stream) ReadString(field string) (string, error) {
	at := s.off
	n, err := s.ReadUint32(field)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	if n%2 != 0 {
		return "", s.Fail(at, field, ErrInvalidString, "odd UTF-16 byte length %d", n)
	}
	if uint64(n) > uint64(s.Remaining()) {
		return "", s.Fail(s.off, field, ErrBufferExhausted, "string of %d bytes, %d left", n, s.Remaining())
	}
	raw, err := s.Read(int(n), field)
	if err != nil {
		return "", err
	}
	if raw[n-2] != 0 || raw[n-1] != 0 {
		return "", s.Fail(at, field, ErrInvalidString, "string is not NUL terminated")
	}
	decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(raw[:n-2])
	if err != nil {
		return "", s.Fail(at, field, ErrInvalidString, "%v", err)
	}
	str := string(decoded)
	s.Trace(field, "read string %q", str)
	return str, nil
}

// ReadGUID reads a class identifier in wire order.
func (s *Stream) ReadGUID(field string) (guid.GUID, error) {
	b, err := s.Read(guid.Size, field)
	if err != nil {
		return guid.Null, err
	}
	return guid.FromWireBytes(b)
}

// ReadObject reads an embedded object: a class identifier, then the record
// it names. The null identifier yields (nil, nil).
//
// Types that declare compatible versions carry a uint16 version right after
// the identifier; it is checked before Read runs. Unversioned types inherit
// the version of the enclosing record.
func (s *Stream) ReadObject(field string) (Object, error) {
	at := s.off
	id, err := s.ReadGUID(field)
	if err != nil {
		return nil, err
	}
	if id.IsNull() {
		s.Trace(field, "no object")
		return nil, nil
	}
	if s.depth >= s.maxDepth {
		return nil, s.Fail(at, field, ErrDepthExceeded, "nesting deeper than %d", s.maxDepth)
	}
	obj, err := s.reg.Create(id)
	if err != nil {
		var ue *UnsupportedError
		if errors.As(err, &ue) {
			ue.Offset = at
		}
		var ke *UnknownIDError
		if errors.As(err, &ke) {
			ke.Offset = at
		}
		return nil, err
	}

	version := s.version
	if len(obj.CompatibleVersions()) > 0 {
		vat := s.off
		v, err := s.ReadUint16(field + " version")
		if err != nil {
			return nil, err
		}
		version = int(v)
		if !SupportsVersion(obj, version) {
			return nil, s.Fail(vat, field, ErrUnsupportedVersion, "%s version %d, supported %v", obj.ClassName(), version, obj.CompatibleVersions())
		}
	}
	s.Trace(field, "found %s version %d", obj.ClassName(), version)

	outer := s.version
	s.version = version
	s.depth++
	err = obj.Read(s, version)
	s.depth--
	s.version = outer
	if err != nil {
		return nil, err
	}
	return obj, nil
}
