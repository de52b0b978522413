// Package objects holds the concrete record decoders and the catalog of
// recognised but unsupported class identifiers.
//
// Each type implements codec.Object directly. Families that share layout,
// such as the line symbol layers, share free helper functions rather than an
// embedded base type.
//
// Most callers only need NewRegistry:
//
//	reg, err := objects.NewRegistry()
//	if err != nil {
//		return err
//	}
//	obj, err := codec.Decode(buf, reg)
package objects
