// Package guid converts legacy COM class identifiers between their canonical
// hyphenated text form and the mixed-endian layout found in persisted streams.
//
// A canonical identifier looks like
//
//	7914e603-c892-11d0-8bb6-080009ee4e41
//
// and is stored on the wire as
//
//	03e6147992c8d0118bb6080009ee4e41
//
// The first three groups are little-endian integers (4, 2 and 2 bytes) and are
// byte-reversed on the wire; the remaining 8 bytes are stored as-is.
package guid

import (
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// Size is the length of an identifier in bytes.
	Size = 16
	// CanonicalLen is the length of the hyphenated text form.
	CanonicalLen = 36
	// WireLen is the length of the wire form rendered as hex text.
	WireLen = 32
)

// GUID is a 128-bit class identifier in canonical byte order, i.e. the order
// in which the hex digits appear in the hyphenated text form.
type GUID [Size]byte

// Null is the all-zero identifier. In a stream it marks an absent object.
var Null GUID

// wireOrder maps a wire byte position to its canonical byte position. The
// permutation is its own inverse.
var wireOrder = [Size]int{3, 2, 1, 0, 5, 4, 7, 6, 8, 9, 10, 11, 12, 13, 14, 15}

// hyphenAt lists the positions of the hyphens in the canonical text form.
var hyphenAt = [...]int{8, 13, 18, 23}

// FormatError reports a malformed identifier. In a well-formed stream this
// never happens and indicates a misaligned parse.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("guid: invalid identifier %q: %s", e.Input, e.Reason)
}

// Parse parses a canonical 36 character identifier. Upper and lower case hex
// digits are both accepted.
func Parse(s string) (GUID, error) {
	compact, err := stripHyphens(s)
	if err != nil {
		return Null, err
	}
	var g GUID
	if _, err := hex.Decode(g[:], []byte(compact)); err != nil {
		return Null, &FormatError{Input: s, Reason: "non-hex character"}
	}
	return g, nil
}

// MustParse is like Parse but panics on malformed input. It is meant for
// compile-time constant identifiers.
func MustParse(s string) GUID {
	g, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return g
}

// ParseAny accepts either the canonical form or the 32 character wire form.
func ParseAny(s string) (GUID, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "{"), "}")
	if len(s) == WireLen {
		canonical, err := FromWireForm(s)
		if err != nil {
			return Null, err
		}
		return Parse(canonical)
	}
	return Parse(s)
}

// FromWireBytes builds a GUID from 16 bytes in wire order.
func FromWireBytes(b []byte) (GUID, error) {
	if len(b) != Size {
		return Null, &FormatError{Input: hex.EncodeToString(b), Reason: fmt.Sprintf("want %d bytes, got %d", Size, len(b))}
	}
	var g GUID
	for wire, canonical := range wireOrder {
		g[canonical] = b[wire]
	}
	return g, nil
}

// WireBytes returns the identifier in wire byte order.
func (g GUID) WireBytes() [Size]byte {
	var out [Size]byte
	for wire, canonical := range wireOrder {
		out[wire] = g[canonical]
	}
	return out
}

// WireHex returns the wire form as lowercase hex text.
func (g GUID) WireHex() string {
	b := g.WireBytes()
	return hex.EncodeToString(b[:])
}

// String returns the lowercase canonical form.
func (g GUID) String() string {
	var buf [CanonicalLen]byte
	hex.Encode(buf[0:8], g[0:4])
	buf[8] = '-'
	hex.Encode(buf[9:13], g[4:6])
	buf[13] = '-'
	hex.Encode(buf[14:18], g[6:8])
	buf[18] = '-'
	hex.Encode(buf[19:23], g[8:10])
	buf[23] = '-'
	hex.Encode(buf[24:], g[10:])
	return string(buf[:])
}

// IsNull reports whether g is the all-zero identifier.
func (g GUID) IsNull() bool {
	return g == Null
}

// MarshalText implements encoding.TextMarshaler.
func (g GUID) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *GUID) UnmarshalText(text []byte) error {
	parsed, err := ParseAny(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// ToWireForm converts a canonical identifier to its wire form as hex text.
// Byte pairs are permuted as text, so letter case is preserved exactly.
func ToWireForm(canonical string) (string, error) {
	compact, err := stripHyphens(canonical)
	if err != nil {
		return "", err
	}
	if !isHex(compact) {
		return "", &FormatError{Input: canonical, Reason: "non-hex character"}
	}
	return permutePairs(compact), nil
}

// FromWireForm converts a 32 character wire form back to the canonical
// hyphenated identifier. It is the exact inverse of ToWireForm.
func FromWireForm(wire string) (string, error) {
	if len(wire) != WireLen {
		return "", &FormatError{Input: wire, Reason: fmt.Sprintf("want %d hex characters, got %d", WireLen, len(wire))}
	}
	if !isHex(wire) {
		return "", &FormatError{Input: wire, Reason: "non-hex character"}
	}
	compact := permutePairs(wire)
	var sb strings.Builder
	sb.Grow(CanonicalLen)
	sb.WriteString(compact[0:8])
	sb.WriteByte('-')
	sb.WriteString(compact[8:12])
	sb.WriteByte('-')
	sb.WriteString(compact[12:16])
	sb.WriteByte('-')
	sb.WriteString(compact[16:20])
	sb.WriteByte('-')
	sb.WriteString(compact[20:32])
	return sb.String(), nil
}

func permutePairs(compact string) string {
	out := make([]byte, WireLen)
	for dst, src := range wireOrder {
		out[dst*2] = compact[src*2]
		out[dst*2+1] = compact[src*2+1]
	}
	return string(out)
}

func stripHyphens(s string) (string, error) {
	if len(s) != CanonicalLen {
		return "", &FormatError{Input: s, Reason: fmt.Sprintf("want %d characters, got %d", CanonicalLen, len(s))}
	}
	for _, i := range hyphenAt {
		if s[i] != '-' {
			return "", &FormatError{Input: s, Reason: fmt.Sprintf("missing hyphen at position %d", i)}
		}
	}
	compact := strings.ReplaceAll(s, "-", "")
	if len(compact) != WireLen {
		return "", &FormatError{Input: s, Reason: "unexpected hyphen"}
	}
	return compact, nil
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
