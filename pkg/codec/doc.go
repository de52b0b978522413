// Package codec decodes the legacy persisted object graph used by style
// libraries: symbols, colors, renderers and layout elements written with the
// COM persistence convention.
//
// # Record Format
//
// Every embedded object starts with a 16 byte class identifier in wire order
// (see package guid). The identifier selects the concrete decoder that owns
// the bytes that follow:
//
//	[ClassID(16)][Version(2), only for versioned types][record body...]
//
// An all-zero identifier stands for "no object" and has no body. All integers
// and doubles are little-endian. Strings are a uint32 byte length followed by
// UTF-16LE code units ending in a NUL unit.
//
// # Usage
//
// Build a Registry once, seal it, and share it between decode sessions:
//
//	reg := codec.NewRegistry()
//	if err := reg.Register(id, factory); err != nil {
//	    return err
//	}
//	reg.Seal()
//
//	obj, err := codec.Decode(buf, reg)
//	if err != nil {
//	    return err
//	}
//	snapshot := codec.SnapshotOf(obj)
//
// Concrete decoders implement Object and call Stream.ReadObject for every
// embedded object field; that call is the only recursion point.
//
// # Error Handling
//
// Three kinds of failure abort the enclosing decode:
//   - ErrUnsupported: the identifier names a known type with no decoder.
//   - ErrUnknownID: the identifier has never been seen before.
//   - ErrMalformed: the bytes did not match the grammar, including buffer
//     exhaustion, reserved-byte mismatches, unsupported versions and
//     excessive nesting.
//
// There is no resynchronization inside a record. Callers decoding many
// independent records should handle errors per record and move on.
//
// # Thread Safety
//
// A sealed Registry is read-only and safe for concurrent use. A Stream and
// the objects it produces belong to a single decode session.
package codec
