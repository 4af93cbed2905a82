package rgbconv

import "math"

// RGBToHSL converts an RGB color to HSL.
// Assumes r, g and b are in [0, 255] and returns h, s and l in [0, 1].
func RGBToHSL(r, g, b uint8) HSL {
	// Normalize RGB to 0-1 range
	rf, gf, bf := float64(r)/255.0, float64(g)/255.0, float64(b)/255.0

	max := max3(rf, gf, bf)
	min := min3(rf, gf, bf)
	l := (max + min) / 2.0

	if max == min {
		return HSL{H: 0, S: 0, L: l} // Achromatic
	}

	d := max - min
	var s float64
	if l > 0.5 {
		s = d / (2.0 - max - min)
	} else {
		s = d / (max + min)
	}

	return HSL{H: hue(rf, gf, bf, max, d), S: s, L: l}
}

// HSLToRGB converts an HSL color to RGB.
// Assumes h, s and l are in [0, 1] and returns r, g and b in [0, 255].
func HSLToRGB(h, s, l float64) RGB {
	if s == 0 {
		v := to8bit(l)
		return RGB{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1.0 + s)
	} else {
		q = l + s - l*s
	}
	p := 2.0*l - q

	return RGB{
		R: to8bit(hueToRGB(p, q, h+1.0/3.0)),
		G: to8bit(hueToRGB(p, q, h)),
		B: to8bit(hueToRGB(p, q, h-1.0/3.0)),
	}
}

// HSLToRGB2 converts an HSL color to RGB using the chroma and sector form
// of the conversion instead of hueToRGB. It agrees with HSLToRGB to within
// one unit per channel.
func HSLToRGB2(h, s, l float64) RGB {
	c := (1.0 - math.Abs(2.0*l-1.0)) * s
	x := c * (1.0 - math.Abs(math.Mod(h*6.0, 2.0)-1.0))
	m := l - c/2.0

	var r, g, b float64
	switch sector(h) {
	case 0:
		r, g, b = c, x, 0
	case 1:
		r, g, b = x, c, 0
	case 2:
		r, g, b = 0, c, x
	case 3:
		r, g, b = 0, x, c
	case 4:
		r, g, b = x, 0, c
	case 5:
		r, g, b = c, 0, x
	}

	return RGB{R: to8bit(r + m), G: to8bit(g + m), B: to8bit(b + m)}
}

// RGBToHSV converts an RGB color to HSV.
// Assumes r, g and b are in [0, 255] and returns h, s and v in [0, 1].
func RGBToHSV(r, g, b uint8) HSV {
	rf, gf, bf := float64(r)/255.0, float64(g)/255.0, float64(b)/255.0

	max := max3(rf, gf, bf)
	min := min3(rf, gf, bf)
	d := max - min

	hsv := HSV{V: max}
	if max != 0 {
		hsv.S = d / max
	}
	if max != min {
		hsv.H = hue(rf, gf, bf, max, d)
	}
	return hsv
}

// HSVToRGB converts an HSV color to RGB.
// Assumes h, s and v are in [0, 1] and returns r, g and b in [0, 255].
func HSVToRGB(h, s, v float64) RGB {
	i := math.Floor(h * 6.0)
	f := h*6.0 - i
	p := v * (1.0 - s)
	q := v * (1.0 - f*s)
	t := v * (1.0 - (1.0-f)*s)

	var r, g, b float64
	switch sector(h) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	}

	return RGB{R: to8bit(r), G: to8bit(g), B: to8bit(b)}
}
