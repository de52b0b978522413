package objects

import (
	"math"

	"github.com/ssargent/stylegraph/pkg/codec"
	"github.com/ssargent/stylegraph/pkg/guid"
)

var RgbColorID = guid.MustParse("7ee9c496-d123-11d0-8383-080009b996cc")

// RgbColor is stored as CIELAB, not RGB, despite the class name.
type RgbColor struct {
	L, A, B float64
	IsNull  bool
	Dither  bool
}

func (*RgbColor) ClassID() guid.GUID        { return RgbColorID }
func (*RgbColor) ClassName() string         { return "RgbColor" }
func (*RgbColor) CompatibleVersions() []int { return []int{1} }

func (c *RgbColor) Read(s *codec.Stream, version int) error {
	var err error
	if c.L, err = s.ReadDouble("lab l"); err != nil {
		return err
	}
	if c.A, err = s.ReadDouble("lab a"); err != nil {
		return err
	}
	if c.B, err = s.ReadDouble("lab b"); err != nil {
		return err
	}
	if c.IsNull, err = s.ReadBool("null flag"); err != nil {
		return err
	}
	c.Dither, err = s.ReadBool("dither flag")
	return err
}

func (*RgbColor) Children() []codec.Object { return nil }

// RGB converts the stored Lab triple to 8-bit sRGB under a D65 white point.
func (c *RgbColor) RGB() (r, g, b uint8) {
	fy := (c.L + 16) / 116
	fx := fy + c.A/500
	fz := fy - c.B/200

	x := 0.95047 * labInverse(fx)
	y := 1.00000 * labInverse(fy)
	z := 1.08883 * labInverse(fz)

	rl := 3.2404542*x - 1.5371385*y - 0.4985314*z
	gl := -0.9692660*x + 1.8760108*y + 0.0415560*z
	bl := 0.0556434*x - 0.2040259*y + 1.0572252*z

	return gammaByte(rl), gammaByte(gl), gammaByte(bl)
}

func labInverse(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta {
		return t * t * t
	}
	return 3 * delta * delta * (t - 4.0/29.0)
}

func gammaByte(v float64) uint8 {
	if v <= 0.0031308 {
		v *= 12.92
	} else {
		v = 1.055*math.Pow(v, 1/2.4) - 0.055
	}
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func (c *RgbColor) Snapshot() codec.Snapshot {
	r, g, b := c.RGB()
	return codec.Snapshot{
		"type":   "RgbColor",
		"l":      c.L,
		"a":      c.A,
		"b":      c.B,
		"red":    r,
		"green":  g,
		"blue":   b,
		"null":   c.IsNull,
		"dither": c.Dither,
	}
}
