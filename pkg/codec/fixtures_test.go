package codec

import (
	"github.com/ssargent/stylegraph/pkg/guid"
)

const (
	leafID        = "11111111-2222-3333-4444-555555555555"
	nodeID        = "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"
	unversionedID = "01234567-89ab-cdef-0123-456789abcdef"
	catalogID     = "22c8c5a1-84fc-11d4-834d-0080c79f0371"
	strangerID    = "deadbeef-0000-1111-2222-333333333333"
)

// leaf: [value u32][terminator]
type leaf struct {
	Value uint32
}

func (*leaf) ClassID() guid.GUID        { return guid.MustParse(leafID) }
func (*leaf) ClassName() string         { return "Leaf" }
func (*leaf) CompatibleVersions() []int { return []int{1} }
func (*leaf) Children() []Object        { return nil }

func (l *leaf) Read(s *Stream, version int) error {
	v, err := s.ReadUint32("value")
	if err != nil {
		return err
	}
	l.Value = v
	return s.ReadTerminator()
}

func (l *leaf) Snapshot() Snapshot {
	return Snapshot{"value": l.Value}
}

// node: [name string][child object][reserved 0000]
type node struct {
	Name    string
	Child   Object
	version int
}

func (*node) ClassID() guid.GUID        { return guid.MustParse(nodeID) }
func (*node) ClassName() string         { return "Node" }
func (*node) CompatibleVersions() []int { return []int{2, 3} }

func (n *node) Read(s *Stream, version int) error {
	n.version = version
	name, err := s.ReadString("name")
	if err != nil {
		return err
	}
	n.Name = name
	if n.Child, err = s.ReadObject("child"); err != nil {
		return err
	}
	return s.ExpectZero("reserved", 2)
}

func (n *node) Children() []Object {
	return Owned(n.Child)
}

func (n *node) Snapshot() Snapshot {
	return Snapshot{
		"name":  n.Name,
		"child": SnapshotOf(n.Child),
	}
}

// plain carries no version header and records the inherited version.
type plain struct {
	Inherited int
	Flag      bool
}

func (*plain) ClassID() guid.GUID        { return guid.MustParse(unversionedID) }
func (*plain) ClassName() string         { return "Plain" }
func (*plain) CompatibleVersions() []int { return nil }
func (*plain) Children() []Object        { return nil }

func (p *plain) Read(s *Stream, version int) error {
	p.Inherited = version
	flag, err := s.ReadBool("flag")
	p.Flag = flag
	return err
}

func (p *plain) Snapshot() Snapshot {
	return Snapshot{"flag": p.Flag}
}

func testRegistry() *Registry {
	reg := NewRegistry()
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(reg.Register(guid.MustParse(leafID), func() Object { return &leaf{} }))
	must(reg.Register(guid.MustParse(nodeID), func() Object { return &node{} }))
	must(reg.Register(guid.MustParse(unversionedID), func() Object { return &plain{} }))
	must(reg.RegisterUnsupported(guid.MustParse(catalogID), "PictureLineSymbol"))
	reg.Seal()
	return reg
}
