package codec

import (
	"fmt"

	"github.com/ssargent/stylegraph/pkg/guid"
)

// Object is implemented by every concrete record type that can be decoded
// from a Stream.
//
// An Object is created empty by its Factory, populated by exactly one call to
// Read, and treated as immutable afterwards. If Read fails the instance must
// be discarded. Implementations are pointer types.
type Object interface {
	// ClassID returns the identifier this type is registered under.
	ClassID() guid.GUID
	// ClassName returns a human readable type name.
	ClassName() string
	// CompatibleVersions lists the format revisions Read understands. An empty
	// list means the record carries no version header and inherits the
	// version of its enclosing record.
	CompatibleVersions() []int
	// Read consumes exactly this record's bytes from s.
	Read(s *Stream, version int) error
	// Children returns the populated object-valued fields, in field order.
	Children() []Object
	// Snapshot returns a plain, serializable view of the decoded fields.
	Snapshot() Snapshot
}

// Factory returns a new, empty instance of one concrete type.
type Factory func() Object

// Snapshot is a structured view of an object: scalars, strings, nested
// snapshots, slices, or nil for absent objects.
type Snapshot = map[string]any

// Owned filters out absent objects, returning the remaining ones in order.
// Concrete types use it to implement Children.
func Owned(objs ...Object) []Object {
	out := make([]Object, 0, len(objs))
	for _, o := range objs {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

// SnapshotOf returns o's snapshot, or nil when o is absent.
func SnapshotOf(o Object) any {
	if o == nil {
		return nil
	}
	return o.Snapshot()
}

// SupportsVersion reports whether v is in o's compatible version set.
func SupportsVersion(o Object, v int) bool {
	for _, c := range o.CompatibleVersions() {
		if c == v {
			return true
		}
	}
	return false
}

// WalkFunc is called for every object reached by Walk.
type WalkFunc func(o Object, depth int) error

// Walk visits root and its descendants depth first, parents before children.
//
// The format gives no evidence of shared or cyclic references, but nothing
// enforces that either: an instance already visited is not entered twice and
// descending deeper than maxDepth fails with ErrDepthExceeded. A maxDepth of
// zero or less selects DefaultMaxDepth.
func Walk(root Object, maxDepth int, fn WalkFunc) error {
	if root == nil {
		return nil
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	seen := make(map[Object]struct{})
	return walk(root, 0, maxDepth, seen, fn)
}

func walk(o Object, depth, maxDepth int, seen map[Object]struct{}, fn WalkFunc) error {
	if depth > maxDepth {
		return fmt.Errorf("walking %s: %w", o.ClassName(), ErrDepthExceeded)
	}
	if _, ok := seen[o]; ok {
		return nil
	}
	seen[o] = struct{}{}
	if err := fn(o, depth); err != nil {
		return err
	}
	for _, child := range o.Children() {
		if child == nil {
			continue
		}
		if err := walk(child, depth+1, maxDepth, seen, fn); err != nil {
			return err
		}
	}
	return nil
}
