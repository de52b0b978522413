package objects

import (
	"github.com/ssargent/stylegraph/pkg/codec"
	"github.com/ssargent/stylegraph/pkg/guid"
)

var (
	FieldInfoID     = guid.MustParse("a2baae2d-969b-11d2-ae77-080009ec732a")
	NumericFormatID = guid.MustParse("7e4f4719-8e54-11d2-aad8-000000000000")
)

var (
	fieldInfoHeader  = []byte{0xff, 0xff, 0x00, 0x00}
	fieldInfoV4Guard = []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00, 0x00}
)

// FieldInfo holds display properties of one attribute field.
type FieldInfo struct {
	Alias        string
	NumberFormat codec.Object
	Visible      bool
}

func (*FieldInfo) ClassID() guid.GUID        { return FieldInfoID }
func (*FieldInfo) ClassName() string         { return "FieldInfo" }
func (*FieldInfo) CompatibleVersions() []int { return []int{2, 4} }

func (f *FieldInfo) Read(s *codec.Stream, version int) error {
	if err := s.Expect("field info header", fieldInfoHeader); err != nil {
		return err
	}
	var err error
	if f.Alias, err = s.ReadString("alias"); err != nil {
		return err
	}
	if f.NumberFormat, err = s.ReadObject("number format"); err != nil {
		return err
	}
	// Version 2 predates the visibility toggle.
	f.Visible = true
	if version < 4 {
		return nil
	}
	if err = s.Expect("visibility guard", fieldInfoV4Guard); err != nil {
		return err
	}
	b, err := s.Read(2, "visible")
	if err != nil {
		return err
	}
	f.Visible = b[0] == 0 && b[1] == 0
	return nil
}

func (f *FieldInfo) Children() []codec.Object {
	return codec.Owned(f.NumberFormat)
}

func (f *FieldInfo) Snapshot() codec.Snapshot {
	return codec.Snapshot{
		"type":          "FieldInfo",
		"alias":         f.Alias,
		"number_format": codec.SnapshotOf(f.NumberFormat),
		"visible":       f.Visible,
	}
}

// NumericFormat formats numeric attribute values. Only the alignment width is
// read from the stream; every other property is reported at its default:
// right alignment (0), rounding by decimal places (0) to six places.
type NumericFormat struct {
	AlignmentWidth uint32
}

func (*NumericFormat) ClassID() guid.GUID        { return NumericFormatID }
func (*NumericFormat) ClassName() string         { return "NumericFormat" }
func (*NumericFormat) CompatibleVersions() []int { return []int{1} }

func (n *NumericFormat) Read(s *codec.Stream, version int) error {
	if err := s.ExpectZero("numeric format header", 12); err != nil {
		return err
	}
	var err error
	if n.AlignmentWidth, err = s.ReadUint32("alignment width"); err != nil {
		return err
	}
	return s.ExpectZero("numeric format trailer", 6)
}

func (*NumericFormat) Children() []codec.Object { return nil }

func (n *NumericFormat) Snapshot() codec.Snapshot {
	return codec.Snapshot{
		"type":            "NumericFormat",
		"alignment":       0,
		"alignment_width": n.AlignmentWidth,
		"rounding":        0,
		"rounding_value":  6,
		"show_plus_sign":  false,
		"use_separator":   false,
		"zero_pad":        false,
	}
}
