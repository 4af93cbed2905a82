package rgbconv

import "image/color"

// RGB is a color with 8-bit red, green and blue channels.
type RGB struct {
	R, G, B uint8
}

// HSL is a color in the hue, saturation, lightness model. Every component
// is normalized to [0, 1]; a hue of 1 is the same as a hue of 0.
type HSL struct {
	H, S, L float64
}

// HSV is a color in the hue, saturation, value model. Every component is
// normalized to [0, 1].
type HSV struct {
	H, S, V float64
}

// Models for converting arbitrary colors. Translucent colors are
// un-premultiplied, then alpha is discarded; fully transparent is black.
var (
	RGBModel = color.ModelFunc(rgbModel)
	HSLModel = color.ModelFunc(hslModel)
	HSVModel = color.ModelFunc(hsvModel)
)

// HSL converts c to HSL.
func (c RGB) HSL() HSL {
	return RGBToHSL(c.R, c.G, c.B)
}

// HSV converts c to HSV.
func (c RGB) HSV() HSV {
	return RGBToHSV(c.R, c.G, c.B)
}

// RGBA implements color.Color. The color is fully opaque.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// RGB converts c to RGB.
func (c HSL) RGB() RGB {
	return HSLToRGB(c.H, c.S, c.L)
}

// HSV converts c to HSV by way of RGB.
func (c HSL) HSV() HSV {
	return c.RGB().HSV()
}

// RGBA implements color.Color.
func (c HSL) RGBA() (r, g, b, a uint32) {
	return c.RGB().RGBA()
}

// RGB converts c to RGB.
func (c HSV) RGB() RGB {
	return HSVToRGB(c.H, c.S, c.V)
}

// HSL converts c to HSL by way of RGB.
func (c HSV) HSL() HSL {
	return c.RGB().HSL()
}

// RGBA implements color.Color.
func (c HSV) RGBA() (r, g, b, a uint32) {
	return c.RGB().RGBA()
}

func rgbModel(c color.Color) color.Color {
	if _, ok := c.(RGB); ok {
		return c
	}
	return fromColor(c)
}

func hslModel(c color.Color) color.Color {
	if _, ok := c.(HSL); ok {
		return c
	}
	return fromColor(c).HSL()
}

func hsvModel(c color.Color) color.Color {
	if _, ok := c.(HSV); ok {
		return c
	}
	return fromColor(c).HSV()
}

// fromColor un-premultiplies c and reduces its 16-bit channels to 8 bits.
func fromColor(c color.Color) RGB {
	r, g, b, a := c.RGBA()
	switch a {
	case 0:
		return RGB{}
	case 0xffff:
	default:
		r = r * 0xffff / a
		g = g * 0xffff / a
		b = b * 0xffff / a
	}
	return RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}
