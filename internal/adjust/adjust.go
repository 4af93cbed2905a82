// Package adjust derives new colors by shifting one HSL component.
package adjust

import (
	"math"

	"github.com/jsvensson/rgbconv"
)

// Lighten returns c with its HSL lightness raised by amount, clamped to 1.
func Lighten(c rgbconv.RGB, amount float64) rgbconv.RGB {
	hsl := c.HSL()
	hsl.L = rgbconv.Clamp01(hsl.L + amount)
	return hsl.RGB()
}

// Darken returns c with its HSL lightness lowered by amount, clamped to 0.
func Darken(c rgbconv.RGB, amount float64) rgbconv.RGB {
	return Lighten(c, -amount)
}

// Saturate returns c with its HSL saturation raised by amount.
func Saturate(c rgbconv.RGB, amount float64) rgbconv.RGB {
	hsl := c.HSL()
	hsl.S = rgbconv.Clamp01(hsl.S + amount)
	return hsl.RGB()
}

// Desaturate returns c with its HSL saturation lowered by amount.
func Desaturate(c rgbconv.RGB, amount float64) rgbconv.RGB {
	return Saturate(c, -amount)
}

// Rotate turns the hue of c by the given fraction of a full circle.
// Negative turns rotate backwards.
func Rotate(c rgbconv.RGB, turns float64) rgbconv.RGB {
	hsl := c.HSL()
	h := math.Mod(hsl.H+turns, 1.0)
	if h < 0 {
		h += 1.0
	}
	hsl.H = h
	return hsl.RGB()
}
