package objects

import (
	"strings"

	"github.com/ssargent/stylegraph/pkg/codec"
	"github.com/ssargent/stylegraph/pkg/guid"
)

var PropertySetID = guid.MustParse("588e5a11-d09b-11d1-aa7c-00c04fa33a15")

// Variant type tags used by PropertySet values.
const (
	VariantEmpty    uint16 = 0
	VariantNull     uint16 = 1
	VariantInteger  uint16 = 2
	VariantLong     uint16 = 3
	VariantDouble   uint16 = 5
	VariantString   uint16 = 8
	VariantPassword uint16 = 8209
)

// PropertySet is a string-keyed bag of variant values, typically connection
// properties of a workspace.
type PropertySet struct {
	Properties map[string]any
	// Keys holds property names in stream order.
	Keys []string
}

func (*PropertySet) ClassID() guid.GUID        { return PropertySetID }
func (*PropertySet) ClassName() string         { return "PropertySet" }
func (*PropertySet) CompatibleVersions() []int { return []int{1} }

func (p *PropertySet) Read(s *codec.Stream, version int) error {
	count, err := s.ReadUint32("property count")
	if err != nil {
		return err
	}
	p.Properties = make(map[string]any)
	for i := uint32(0); i < count; i++ {
		key, err := s.ReadString("property key")
		if err != nil {
			return err
		}
		value, err := readVariant(s)
		if err != nil {
			return err
		}
		if _, seen := p.Properties[key]; !seen {
			p.Keys = append(p.Keys, key)
		}
		p.Properties[key] = value
	}
	return nil
}

func readVariant(s *codec.Stream) (any, error) {
	at := s.Offset()
	kind, err := s.ReadUint16("property type")
	if err != nil {
		return nil, err
	}
	switch kind {
	case VariantEmpty, VariantNull:
		return nil, nil
	case VariantInteger:
		return s.ReadInt32("property value")
	case VariantLong:
		return s.ReadUint32("property value")
	case VariantDouble:
		return s.ReadDouble("property value")
	case VariantString:
		return s.ReadString("property value")
	case VariantPassword:
		n, err := s.ReadUint32("password length")
		if err != nil {
			return nil, err
		}
		if uint64(n) > uint64(s.Remaining()) {
			return nil, s.Fail(s.Offset(), "password", codec.ErrBufferExhausted, "password of %d bytes, %d left", n, s.Remaining())
		}
		if err := s.Skip(int(n), "password"); err != nil {
			return nil, err
		}
		return strings.Repeat("*", int(n)), nil
	default:
		return nil, s.Fail(at, "property type", codec.ErrInvalidEnum, "unknown property type %d", kind)
	}
}

func (*PropertySet) Children() []codec.Object { return nil }

func (p *PropertySet) Snapshot() codec.Snapshot {
	props := make(map[string]any, len(p.Properties))
	for k, v := range p.Properties {
		props[k] = v
	}
	return codec.Snapshot{
		"type":       "PropertySet",
		"properties": props,
	}
}
