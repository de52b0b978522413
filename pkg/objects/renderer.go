package objects

import (
	"github.com/ssargent/stylegraph/pkg/codec"
	"github.com/ssargent/stylegraph/pkg/guid"
)

var SimpleRendererID = guid.MustParse("f3435801-5779-11d0-98bf-00805f7ced21")

// SimpleRenderer draws every feature with one symbol.
type SimpleRenderer struct {
	Symbol codec.Object
}

func (*SimpleRenderer) ClassID() guid.GUID        { return SimpleRendererID }
func (*SimpleRenderer) ClassName() string         { return "SimpleRenderer" }
func (*SimpleRenderer) CompatibleVersions() []int { return []int{3} }

func (r *SimpleRenderer) Read(s *codec.Stream, version int) error {
	var err error
	r.Symbol, err = s.ReadObject("symbol")
	return err
}

func (r *SimpleRenderer) Children() []codec.Object {
	return codec.Owned(r.Symbol)
}

func (r *SimpleRenderer) Snapshot() codec.Snapshot {
	return codec.Snapshot{
		"type":   "SimpleRenderer",
		"symbol": codec.SnapshotOf(r.Symbol),
	}
}
