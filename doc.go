/*
Package rgbconv converts colors between the RGB, HSL and HSV models using
closed-form formulas.

RGB channels are 8-bit integers in [0, 255]. HSL and HSV components,
including hue, are normalized to [0, 1]. Conversions are pure functions
that return small value types and are safe for concurrent use.

Converting to HSL:

	hsl := rgbconv.RGBToHSL(255, 0, 0) // {H: 0, S: 1, L: 0.5}

Converting back:

	rgb := rgbconv.HSLToRGB(hsl.H, hsl.S, hsl.L) // {R: 255, G: 0, B: 0}

HSV works the same way:

	hsv := rgbconv.RGB{R: 0, G: 255, B: 0}.HSV() // {H: 1/3, S: 1, V: 1}
	rgb = hsv.RGB()

The conversion functions never fail. Components outside their range produce
clamped output rather than an error; callers that need to reject such input
can check it first:

	if err := (rgbconv.HSL{H: h, S: s, L: l}).Validate(); err != nil {
		// errors.Is(err, rgbconv.ErrOutOfRange)
	}

RGB, HSL and HSV implement image/color.Color, and RGBModel, HSLModel and
HSVModel convert from any color.Color.
*/
package rgbconv
