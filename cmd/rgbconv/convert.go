package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jsvensson/rgbconv"
)

var models = []string{"rgb", "hsl", "hsv"}

func checkModel(name string) error {
	for _, m := range models {
		if m == name {
			return nil
		}
	}
	return fmt.Errorf("unknown model %q (valid: %s)", name, strings.Join(models, ", "))
}

// convert parses three components of model from, converts them through RGB
// and formats them as model to.
func convert(from, to string, args []string, alt, strict bool, precision int) (string, error) {
	if err := checkModel(from); err != nil {
		return "", err
	}
	if err := checkModel(to); err != nil {
		return "", err
	}
	if alt && from != "hsl" {
		return "", fmt.Errorf("--alt only applies to hsl input")
	}
	if len(args) != 3 {
		return "", fmt.Errorf("expected 3 components, got %d", len(args))
	}

	var v [3]float64
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return "", fmt.Errorf("parsing %s component %q: %w", from, a, err)
		}
		v[i] = f
	}

	c, err := toRGB(from, v, alt, strict)
	if err != nil {
		return "", err
	}
	return formatRGB(to, c, precision), nil
}

func toRGB(from string, v [3]float64, alt, strict bool) (rgbconv.RGB, error) {
	switch from {
	case "hsl":
		hsl := rgbconv.HSL{H: v[0], S: v[1], L: v[2]}
		if strict {
			if err := hsl.Validate(); err != nil {
				return rgbconv.RGB{}, err
			}
		}
		if alt {
			return rgbconv.HSLToRGB2(hsl.H, hsl.S, hsl.L), nil
		}
		return hsl.RGB(), nil
	case "hsv":
		hsv := rgbconv.HSV{H: v[0], S: v[1], V: v[2]}
		if strict {
			if err := hsv.Validate(); err != nil {
				return rgbconv.RGB{}, err
			}
		}
		return hsv.RGB(), nil
	default:
		return rgbFromFloats(v, strict)
	}
}

// rgbFromFloats rounds and clamps channels to [0, 255]. In strict mode any
// channel that is not an integer in range is an error.
func rgbFromFloats(v [3]float64, strict bool) (rgbconv.RGB, error) {
	var out [3]uint8
	for i, f := range v {
		if strict && (f != math.Trunc(f) || !(f >= 0 && f <= 255)) {
			return rgbconv.RGB{}, fmt.Errorf("rgb.%c = %g: %w [0, 255]", "rgb"[i], f, rgbconv.ErrOutOfRange)
		}
		if math.IsNaN(f) {
			continue
		}
		out[i] = uint8(math.Round(math.Min(math.Max(f, 0), 255)))
	}
	return rgbconv.RGB{R: out[0], G: out[1], B: out[2]}, nil
}

func formatRGB(to string, c rgbconv.RGB, precision int) string {
	switch to {
	case "hsl":
		hsl := c.HSL()
		return formatFloats(precision, hsl.H, hsl.S, hsl.L)
	case "hsv":
		hsv := c.HSV()
		return formatFloats(precision, hsv.H, hsv.S, hsv.V)
	default:
		return fmt.Sprintf("%d %d %d", c.R, c.G, c.B)
	}
}

func formatFloats(precision int, vals ...float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'f', precision, 64)
	}
	return strings.Join(parts, " ")
}
