package objects

import (
	"fmt"

	"github.com/ssargent/stylegraph/pkg/codec"
	"github.com/ssargent/stylegraph/pkg/guid"
)

var (
	WorkspaceNameID    = guid.MustParse("5a350011-e371-11d1-aa82-00c04fa33a15")
	FeatureClassNameID = guid.MustParse("198846d0-ca42-11d1-aa7c-00c04fa33a15")
)

var workspaceTypes = map[uint16]string{
	0: "file system",
	1: "local database",
	2: "remote database",
}

var featureTypes = map[uint32]string{
	1:  "simple",
	7:  "simple junction",
	8:  "simple edge",
	9:  "complex junction",
	10: "complex edge",
	11: "annotation",
	12: "coverage annotation",
	13: "dimension",
	14: "raster catalog item",
}

var geometryTypes = map[uint32]string{
	0:  "null",
	1:  "point",
	2:  "multipoint",
	3:  "polyline",
	4:  "polygon",
	5:  "envelope",
	6:  "path",
	7:  "any",
	9:  "multipatch",
	11: "ring",
	13: "line",
	14: "circular arc",
	15: "bezier curve",
	16: "elliptic arc",
	17: "bag",
	18: "triangle strip",
	19: "triangle fan",
	20: "ray",
	21: "sphere",
	22: "triangles",
}

// enumName renders a stored code symbolically. Codes without a name are kept
// rather than rejected since names are descriptive only.
func enumName[K uint16 | uint32](names map[K]string, v K) string {
	if n, ok := names[v]; ok {
		return n
	}
	return fmt.Sprintf("unknown (%d)", v)
}

// WorkspaceName identifies the workspace a dataset lives in.
type WorkspaceName struct {
	Name                 string
	Type                 uint16
	Category             string
	ConnectionProperties codec.Object
}

func (*WorkspaceName) ClassID() guid.GUID        { return WorkspaceNameID }
func (*WorkspaceName) ClassName() string         { return "WorkspaceName" }
func (*WorkspaceName) CompatibleVersions() []int { return []int{1} }

func (w *WorkspaceName) Read(s *codec.Stream, version int) error {
	var err error
	if w.Name, err = s.ReadString("name"); err != nil {
		return err
	}
	if w.Type, err = s.ReadUint16("workspace type"); err != nil {
		return err
	}
	if _, err = s.ReadString("unknown"); err != nil {
		return err
	}
	if w.Category, err = s.ReadString("category"); err != nil {
		return err
	}
	w.ConnectionProperties, err = s.ReadObject("connection properties")
	return err
}

func (w *WorkspaceName) Children() []codec.Object {
	return codec.Owned(w.ConnectionProperties)
}

func (w *WorkspaceName) Snapshot() codec.Snapshot {
	return codec.Snapshot{
		"type":                  "WorkspaceName",
		"name":                  w.Name,
		"workspace_type":        enumName(workspaceTypes, w.Type),
		"category":              w.Category,
		"connection_properties": codec.SnapshotOf(w.ConnectionProperties),
	}
}

// FeatureClassName identifies a feature class inside a workspace.
type FeatureClassName struct {
	DatasetName    string
	ShapeFieldName string
	ShapeType      uint32
	FeatureType    uint32
}

func (*FeatureClassName) ClassID() guid.GUID        { return FeatureClassNameID }
func (*FeatureClassName) ClassName() string         { return "FeatureClassName" }
func (*FeatureClassName) CompatibleVersions() []int { return []int{2} }

func (f *FeatureClassName) Read(s *codec.Stream, version int) error {
	var err error
	if f.DatasetName, err = s.ReadString("dataset name"); err != nil {
		return err
	}
	if _, err = s.ReadString("unknown"); err != nil {
		return err
	}
	// The shape field name is stored twice; the second copy wins.
	for i := 0; i < 2; i++ {
		if f.ShapeFieldName, err = s.ReadString("shape field name"); err != nil {
			return err
		}
	}
	if f.ShapeType, err = s.ReadUint32("shape type"); err != nil {
		return err
	}
	f.FeatureType, err = s.ReadUint32("feature type")
	return err
}

func (*FeatureClassName) Children() []codec.Object { return nil }

func (f *FeatureClassName) Snapshot() codec.Snapshot {
	return codec.Snapshot{
		"type":             "FeatureClassName",
		"dataset_name":     f.DatasetName,
		"shape_field_name": f.ShapeFieldName,
		"shape_type":       enumName(geometryTypes, f.ShapeType),
		"feature_type":     enumName(featureTypes, f.FeatureType),
	}
}
