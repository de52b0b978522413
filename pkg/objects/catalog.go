package objects

import (
	"github.com/ssargent/stylegraph/pkg/codec"
	"github.com/ssargent/stylegraph/pkg/guid"
)

// CatalogEntry names a class that occurs in real records but has no decoder.
type CatalogEntry struct {
	ID   guid.GUID
	Name string
}

// Catalog lists every recognised but unsupported class. Encountering one of
// these yields codec.ErrUnsupported rather than codec.ErrUnknownID.
var Catalog = []CatalogEntry{
	// symbols
	{guid.MustParse("22c8c5a1-84fc-11d4-834d-0080c79f0371"), "PictureLineSymbol"},
	{guid.MustParse("9a1eba10-cdf9-11d3-81eb-0080c79f0371"), "DotDensityFillSymbol"},
	{guid.MustParse("b65a3e74-2993-11d1-9a43-0080c7ec5c96"), "TextSymbol"},
	{guid.MustParse("40987040-204c-11d3-a3f2-0004ac1b1d86"), "ColorRampSymbol"},
	{guid.MustParse("99dccb66-2e09-11d3-a626-0008c7bf3347"), "RasterRGBSymbol"},
	{guid.MustParse("2b74125d-5c1b-4dbd-967a-7412dfff1f09"), "TextMarkerSymbol"},
	{guid.MustParse("6e8ec8f7-e90a-11d5-a129-00508bd60cb9"), "CharacterMarker3DSymbol"},
	{guid.MustParse("773f7274-aefb-11d5-8112-00c04fa0adf8"), "Marker3DSymbol"},
	{guid.MustParse("470b7275-3552-11d6-a12d-00508bd60cb9"), "SimpleLine3DSymbol"},
	{guid.MustParse("773f7270-aefb-11d5-8112-00c04fa0adf8"), "SimpleMarker3DSymbol"},
	{guid.MustParse("8d738780-c069-42e0-9dfa-2b7b61707ba9"), "TextureFillSymbol"},
	{guid.MustParse("b5710c9c-a9bc-4a16-b578-54be176ed57b"), "TextureLineSymbol"},
	{guid.MustParse("5031736a-bd70-11d3-9f79-00c04f6bc709"), "BarChartSymbol"},
	{guid.MustParse("50317368-bd70-11d3-9f79-00c04f6bc709"), "PieChartSymbol"},
	{guid.MustParse("50317369-bd70-11d3-9f79-00c04f6bc709"), "StackedChartSymbol"},

	// dataset classes
	{guid.MustParse("52353152-891a-11d0-bec6-00805f7c4268"), "FeatureClass"},
	{guid.MustParse("7a566981-c114-11d2-8a28-006097aff44e"), "Table"},
	{guid.MustParse("e3676993-c682-11d2-8a2a-006097aff44e"), "AnnotationClass"},
	{guid.MustParse("24429589-d711-11d2-9f41-00c04f6bc6a5"), "AnnotationClassExtension"},
	{guid.MustParse("496764fc-e0c9-11d3-80ce-00c04f601565"), "DimensionClass"},
	{guid.MustParse("48f935e2-da66-11d3-80ce-00c04f601565"), "DimensionClassExtension"},
	{guid.MustParse("cee8d6b8-55fe-11d1-ae55-0000f80372b4"), "SimpleJunctionClass"},
	{guid.MustParse("e7031c90-55fe-11d1-ae55-0000f80372b4"), "SimpleEdgeClass"},
	{guid.MustParse("a30e8a2a-c50b-11d1-aea9-0000f80372b4"), "ComplexEdgeClass"},
	{guid.MustParse("3eaa2478-5332-40f8-8fa8-62382390a3ba"), "RasterCatalogClass"},
	{guid.MustParse("a07e9cb1-9a95-11d2-891a-0000f877762d"), "AttributedRelationshipClass"},

	// renderers
	{guid.MustParse("ae5f7ea2-8b48-11d0-8356-080009b996cc"), "ClassBreaksRenderer"},
	{guid.MustParse("207c19f5-ed81-11d0-8bba-080009ee4e41"), "ScaleDependentRenderer"},
	{guid.MustParse("c3346d29-b2bc-11d1-8817-080009ec732a"), "UniqueValueRenderer"},
	{guid.MustParse("4eab568e-8f9c-11d2-ab21-00c04fa334b3"), "ProportionalSymbolRenderer"},
	{guid.MustParse("b899ccd3-cd1c-11d2-9f25-00c04f6bc709"), "BiUniqueValueRenderer"},
	{guid.MustParse("4f17939a-c490-11d3-9f7a-00c04f6bc709"), "ChartRenderer"},
	{guid.MustParse("4b62f73d-0502-11d4-9f7c-00c04f6bc709"), "CalcRendererValues"},
	{guid.MustParse("9c7776ba-0421-11d4-9f7c-00c04f6bc709"), "DotDensityRenderer"},

	// legends and patches
	{guid.MustParse("a9401a47-4649-11d1-880b-080009ec732a"), "HorizontalLegendItem"},
	{guid.MustParse("a9401a48-4649-11d1-880b-080009ec732a"), "VerticalLegendItem"},
	{guid.MustParse("2b65d211-c2c7-11d3-92f3-00600802e603"), "HorizontalBarLegendItem"},
	{guid.MustParse("2b65d212-c2c7-11d3-92f3-00600802e603"), "NestedLegendItem"},
	{guid.MustParse("167c5ea3-af20-11d1-8817-080009ec732a"), "LegendClass"},
	{guid.MustParse("7a3f91e6-b9e3-11d1-8756-0000f8751720"), "LegendClassFormat"},
	{guid.MustParse("167c5ea2-af20-11d1-8817-080009ec732a"), "LegendGroup"},
	{guid.MustParse("2066267e-e3b8-11d2-b868-00600802e603"), "AreaPatch"},
	{guid.MustParse("2066267f-e3b8-11d2-b868-00600802e603"), "LinePatch"},

	// layers, names and workspace factories
	{guid.MustParse("e663a651-8aad-11d0-bec7-00805f7c4268"), "FeatureLayer"},
	{guid.MustParse("198846cf-ca42-11d1-aa7c-00c04fa33a15"), "FeatureDatasetName"},
	{guid.MustParse("a06adb96-d95c-11d1-aa81-00c04fa33a15"), "ShapefileWorkspaceFactory"},
	{guid.MustParse("d9b4fa40-d6d9-11d1-aa81-00c04fa33a15"), "SdeWorkspaceFactory"},
	{guid.MustParse("4eab5691-8f9c-11d2-ab21-00c04fa334b3"), "SingleSymbolPropertyPage"},
	{guid.MustParse("1d5849f3-0d33-11d2-a26f-080009b6f22b"), "AnnotateLayerPropertiesCollection"},
}

// Factories lists the decoder for every supported class.
var Factories = []codec.Factory{
	func() codec.Object { return &SimpleRenderer{} },
	func() codec.Object { return &RgbColor{} },
	func() codec.Object { return &SimpleLineSymbolLayer{} },
	func() codec.Object { return &CartographicLineSymbolLayer{} },
	func() codec.Object { return &MarkerLineSymbolLayer{} },
	func() codec.Object { return &HashLineSymbolLayer{} },
	func() codec.Object { return &FieldInfo{} },
	func() codec.Object { return &NumericFormat{} },
	func() codec.Object { return &PropertySet{} },
	func() codec.Object { return &WorkspaceName{} },
	func() codec.Object { return &FeatureClassName{} },
}
