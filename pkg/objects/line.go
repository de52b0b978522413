package objects

import (
	"github.com/ssargent/stylegraph/pkg/codec"
	"github.com/ssargent/stylegraph/pkg/guid"
)

var (
	SimpleLineSymbolLayerID       = guid.MustParse("7914e5f9-c892-11d0-8bb6-080009ee4e41")
	CartographicLineSymbolLayerID = guid.MustParse("7914e5fb-c892-11d0-8bb6-080009ee4e41")
	HashLineSymbolLayerID         = guid.MustParse("7914e5fc-c892-11d0-8bb6-080009ee4e41")
	MarkerLineSymbolLayerID       = guid.MustParse("7914e5fd-c892-11d0-8bb6-080009ee4e41")
)

var capStyles = map[uint8]string{
	0: "butt",
	1: "round",
	2: "square",
}

var joinStyles = map[uint8]string{
	0: "miter",
	1: "round",
	2: "bevel",
}

var lineTypes = map[uint32]string{
	0: "solid",
	1: "dashed",
	2: "dotted",
	3: "dash dot",
	4: "dash dot dot",
	5: "null",
}

func readCap(s *codec.Stream) (string, error) {
	at := s.Offset()
	v, err := s.ReadUint8("cap")
	if err != nil {
		return "", err
	}
	name, ok := capStyles[v]
	if !ok {
		return "", s.Fail(at, "cap", codec.ErrInvalidEnum, "unknown cap style %d", v)
	}
	return name, nil
}

func readJoin(s *codec.Stream) (string, error) {
	at := s.Offset()
	v, err := s.ReadUint8("join")
	if err != nil {
		return "", err
	}
	name, ok := joinStyles[v]
	if !ok {
		return "", s.Fail(at, "join", codec.ErrInvalidEnum, "unknown join style %d", v)
	}
	return name, nil
}

func readLineType(s *codec.Stream) (string, error) {
	at := s.Offset()
	v, err := s.ReadUint32("line type")
	if err != nil {
		return "", err
	}
	name, ok := lineTypes[v]
	if !ok {
		return "", s.Fail(at, "line type", codec.ErrInvalidEnum, "unknown line type %d", v)
	}
	return name, nil
}

// readCapJoin reads the cap and join bytes, each padded by three reserved
// zero bytes.
func readCapJoin(s *codec.Stream) (capStyle, join string, err error) {
	if capStyle, err = readCap(s); err != nil {
		return
	}
	if err = s.ExpectZero("cap padding", 3); err != nil {
		return
	}
	if join, err = readJoin(s); err != nil {
		return
	}
	err = s.ExpectZero("join padding", 3)
	return
}

// readDecorationTail reads the template and decoration objects and the
// terminator shared by the cartographic family.
func readDecorationTail(s *codec.Stream) (template, decoration codec.Object, err error) {
	if template, err = s.ReadObject("template"); err != nil {
		return
	}
	if decoration, err = s.ReadObject("decoration"); err != nil {
		return
	}
	err = s.ReadTerminator()
	return
}

// readTrailer consumes the unknown char and two doubles that close
// cartographic and hash layers.
func readTrailer(s *codec.Stream) error {
	if _, err := s.ReadUint8("unknown char"); err != nil {
		return err
	}
	if _, err := s.ReadDouble("unknown double"); err != nil {
		return err
	}
	_, err := s.ReadDouble("unknown double")
	return err
}

// SimpleLineSymbolLayer is a solid or dashed stroke of one color.
type SimpleLineSymbolLayer struct {
	Color    codec.Object
	Width    float64
	LineType string
}

func (*SimpleLineSymbolLayer) ClassID() guid.GUID        { return SimpleLineSymbolLayerID }
func (*SimpleLineSymbolLayer) ClassName() string         { return "SimpleLineSymbolLayer" }
func (*SimpleLineSymbolLayer) CompatibleVersions() []int { return []int{1} }

func (l *SimpleLineSymbolLayer) Read(s *codec.Stream, version int) error {
	var err error
	if l.Color, err = s.ReadObject("color"); err != nil {
		return err
	}
	if l.Width, err = s.ReadDouble("width"); err != nil {
		return err
	}
	if l.LineType, err = readLineType(s); err != nil {
		return err
	}
	s.Trace("line type", "read line type of %s", l.LineType)
	return s.ReadTerminator()
}

func (l *SimpleLineSymbolLayer) Children() []codec.Object {
	return codec.Owned(l.Color)
}

func (l *SimpleLineSymbolLayer) Snapshot() codec.Snapshot {
	return codec.Snapshot{
		"type":      "SimpleLineSymbolLayer",
		"color":     codec.SnapshotOf(l.Color),
		"width":     l.Width,
		"line_type": l.LineType,
	}
}

// CartographicLineSymbolLayer is a stroke with caps, joins, an offset and an
// optional dash template.
type CartographicLineSymbolLayer struct {
	Cap        string
	Join       string
	Width      float64
	Offset     float64
	Color      codec.Object
	Template   codec.Object
	Decoration codec.Object
}

func (*CartographicLineSymbolLayer) ClassID() guid.GUID        { return CartographicLineSymbolLayerID }
func (*CartographicLineSymbolLayer) ClassName() string         { return "CartographicLineSymbolLayer" }
func (*CartographicLineSymbolLayer) CompatibleVersions() []int { return []int{1} }

func (l *CartographicLineSymbolLayer) Read(s *codec.Stream, version int) error {
	var err error
	if l.Cap, l.Join, err = readCapJoin(s); err != nil {
		return err
	}
	if l.Width, err = s.ReadDouble("width"); err != nil {
		return err
	}
	if err = s.ExpectZero("unknown byte", 1); err != nil {
		return err
	}
	if l.Offset, err = s.ReadDouble("offset"); err != nil {
		return err
	}
	if l.Color, err = s.ReadObject("color"); err != nil {
		return err
	}
	if l.Template, l.Decoration, err = readDecorationTail(s); err != nil {
		return err
	}
	return readTrailer(s)
}

func (l *CartographicLineSymbolLayer) Children() []codec.Object {
	return codec.Owned(l.Color, l.Template, l.Decoration)
}

func (l *CartographicLineSymbolLayer) Snapshot() codec.Snapshot {
	return codec.Snapshot{
		"type":       "CartographicLineSymbolLayer",
		"cap":        l.Cap,
		"join":       l.Join,
		"width":      l.Width,
		"offset":     l.Offset,
		"color":      codec.SnapshotOf(l.Color),
		"template":   codec.SnapshotOf(l.Template),
		"decoration": codec.SnapshotOf(l.Decoration),
	}
}

// MarkerLineSymbolLayer repeats a marker symbol along a line.
type MarkerLineSymbolLayer struct {
	Cap           string
	Join          string
	Offset        float64
	PatternMarker codec.Object
	Template      codec.Object
	Decoration    codec.Object
}

func (*MarkerLineSymbolLayer) ClassID() guid.GUID        { return MarkerLineSymbolLayerID }
func (*MarkerLineSymbolLayer) ClassName() string         { return "MarkerLineSymbolLayer" }
func (*MarkerLineSymbolLayer) CompatibleVersions() []int { return []int{2} }

func (l *MarkerLineSymbolLayer) Read(s *codec.Stream, version int) error {
	var err error
	if l.Cap, err = readCap(s); err != nil {
		return err
	}
	s.Trace("cap", "read cap of %s", l.Cap)
	if l.Offset, err = s.ReadDouble("offset"); err != nil {
		return err
	}
	if l.PatternMarker, err = s.ReadObject("pattern marker"); err != nil {
		return err
	}
	if l.Template, l.Decoration, err = readDecorationTail(s); err != nil {
		return err
	}
	if _, err = s.ReadDouble("unknown double"); err != nil {
		return err
	}
	if _, err = s.ReadInt32("unknown int"); err != nil {
		return err
	}
	if _, err = s.ReadUint8("unknown char"); err != nil {
		return err
	}
	if l.Join, err = readJoin(s); err != nil {
		return err
	}
	if err = s.ExpectZero("join padding", 3); err != nil {
		return err
	}
	_, err = s.ReadDouble("unknown double")
	return err
}

func (l *MarkerLineSymbolLayer) Children() []codec.Object {
	return codec.Owned(l.Template, l.Decoration, l.PatternMarker)
}

func (l *MarkerLineSymbolLayer) Snapshot() codec.Snapshot {
	return codec.Snapshot{
		"type":           "MarkerLineSymbolLayer",
		"cap":            l.Cap,
		"join":           l.Join,
		"offset":         l.Offset,
		"pattern_marker": codec.SnapshotOf(l.PatternMarker),
		"template":       codec.SnapshotOf(l.Template),
		"decoration":     codec.SnapshotOf(l.Decoration),
	}
}

// HashLineSymbolLayer draws short hash strokes across a line at an angle.
type HashLineSymbolLayer struct {
	Angle      float64
	Cap        string
	Join       string
	Width      float64
	Offset     float64
	Line       codec.Object
	Color      codec.Object
	Template   codec.Object
	Decoration codec.Object
}

func (*HashLineSymbolLayer) ClassID() guid.GUID        { return HashLineSymbolLayerID }
func (*HashLineSymbolLayer) ClassName() string         { return "HashLineSymbolLayer" }
func (*HashLineSymbolLayer) CompatibleVersions() []int { return []int{1} }

func (l *HashLineSymbolLayer) Read(s *codec.Stream, version int) error {
	var err error
	if l.Angle, err = s.ReadDouble("angle"); err != nil {
		return err
	}
	if l.Cap, l.Join, err = readCapJoin(s); err != nil {
		return err
	}
	if l.Width, err = s.ReadDouble("width"); err != nil {
		return err
	}
	// Unlike the cartographic layer this byte varies between samples.
	if err = s.Skip(1, "unknown byte"); err != nil {
		return err
	}
	if l.Offset, err = s.ReadDouble("offset"); err != nil {
		return err
	}
	if l.Line, err = s.ReadObject("line"); err != nil {
		return err
	}
	if l.Color, err = s.ReadObject("color"); err != nil {
		return err
	}
	if l.Template, l.Decoration, err = readDecorationTail(s); err != nil {
		return err
	}
	return readTrailer(s)
}

func (l *HashLineSymbolLayer) Children() []codec.Object {
	return codec.Owned(l.Color, l.Template, l.Decoration, l.Line)
}

func (l *HashLineSymbolLayer) Snapshot() codec.Snapshot {
	return codec.Snapshot{
		"type":       "HashLineSymbolLayer",
		"angle":      l.Angle,
		"cap":        l.Cap,
		"join":       l.Join,
		"width":      l.Width,
		"offset":     l.Offset,
		"line":       codec.SnapshotOf(l.Line),
		"color":      codec.SnapshotOf(l.Color),
		"template":   codec.SnapshotOf(l.Template),
		"decoration": codec.SnapshotOf(l.Decoration),
	}
}
