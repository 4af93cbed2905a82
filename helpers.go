package rgbconv

import "math"

// max3 returns the largest of three values.
func max3(a, b, c float64) float64 {
	return math.Max(math.Max(a, b), c)
}

// min3 returns the smallest of three values.
func min3(a, b, c float64) float64 {
	return math.Min(math.Min(a, b), c)
}

// hue selects the hue sector from the channel holding the maximum and
// returns the hue in [0, 1). d is the chroma, max-min, and must be non-zero.
func hue(r, g, b, max, d float64) float64 {
	var h float64
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6.0
		}
	case g:
		h = (b-r)/d + 2.0
	case b:
		h = (r-g)/d + 4.0
	}
	return h / 6.0
}

// hueToRGB interpolates one channel on the HSL cylinder.
func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1.0
	}
	if t > 1 {
		t -= 1.0
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6.0*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6.0
	}
	return p
}

// sector returns floor(h*6) mod 6 as a value in [0, 5].
// h == 1 lands in sector 0, the same place as h == 0.
func sector(h float64) int {
	i := math.Mod(math.Floor(h*6.0), 6.0)
	if math.IsNaN(i) {
		return 0
	}
	if i < 0 {
		i += 6.0
	}
	return int(i)
}

// to8bit scales a unit channel to [0, 255], rounding to nearest.
func to8bit(v float64) uint8 {
	return uint8(math.Round(Clamp01(v) * 255.0))
}
