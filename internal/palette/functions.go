package palette

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/jsvensson/rgbconv"
	"github.com/jsvensson/rgbconv/internal/adjust"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ColorType is the HCL representation of a color: an object of 8-bit
// integer channels.
var ColorType = cty.Object(map[string]cty.Type{
	"r": cty.Number,
	"g": cty.Number,
	"b": cty.Number,
})

// ctyColor mirrors rgbconv.RGB for gocty decoding.
type ctyColor struct {
	R uint8 `cty:"r"`
	G uint8 `cty:"g"`
	B uint8 `cty:"b"`
}

// ToCty converts a color to its HCL representation.
func ToCty(c rgbconv.RGB) cty.Value {
	return cty.ObjectVal(map[string]cty.Value{
		"r": cty.NumberIntVal(int64(c.R)),
		"g": cty.NumberIntVal(int64(c.G)),
		"b": cty.NumberIntVal(int64(c.B)),
	})
}

// FromCty converts an HCL value to a color. The value must be an object
// with integer r, g and b attributes in [0, 255].
func FromCty(val cty.Value) (rgbconv.RGB, error) {
	if val.IsNull() {
		return rgbconv.RGB{}, errors.New("color is null")
	}
	if !val.IsWhollyKnown() {
		return rgbconv.RGB{}, errors.New("color is not known")
	}

	obj, err := convert.Convert(val, ColorType)
	if err != nil {
		return rgbconv.RGB{}, fmt.Errorf("expected a color, got %s", val.Type().FriendlyName())
	}

	for _, name := range []string{"r", "g", "b"} {
		if _, err := channelValue(obj.GetAttr(name)); err != nil {
			return rgbconv.RGB{}, fmt.Errorf("invalid color: %s %w", name, err)
		}
	}

	var c ctyColor
	if err := gocty.FromCtyValue(obj, &c); err != nil {
		return rgbconv.RGB{}, fmt.Errorf("invalid color: %w", err)
	}
	return rgbconv.RGB{R: c.R, G: c.G, B: c.B}, nil
}

// channelValue decodes an 8-bit channel. gocty truncates exact halves such
// as 12.5, so integrality is checked first.
func channelValue(v cty.Value) (uint8, error) {
	if v.IsNull() || !v.AsBigFloat().IsInt() {
		return 0, errors.New("must be an integer in [0, 255]")
	}
	var ch uint8
	if err := gocty.FromCtyValue(v, &ch); err != nil {
		return 0, errors.New("must be an integer in [0, 255]")
	}
	return ch, nil
}

// Functions returns the functions available in palette expressions.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"rgb":        makeRGBFunc(),
		"hsl":        makeHSLFunc(),
		"hsv":        makeHSVFunc(),
		"lighten":    makeAdjustFunc("Lightens a color by the given amount of HSL lightness", "amount", adjust.Lighten),
		"darken":     makeAdjustFunc("Darkens a color by the given amount of HSL lightness", "amount", adjust.Darken),
		"saturate":   makeAdjustFunc("Raises the HSL saturation of a color by the given amount", "amount", adjust.Saturate),
		"desaturate": makeAdjustFunc("Lowers the HSL saturation of a color by the given amount", "amount", adjust.Desaturate),
		"rotate":     makeAdjustFunc("Rotates the hue of a color by a fraction of a full turn", "turns", adjust.Rotate),
	}
}

// EvalContext creates an HCL evaluation context exposing the given entries
// as palette.<name> along with the palette functions.
func EvalContext(entries []Entry) *hcl.EvalContext {
	vals := make(map[string]cty.Value, len(entries))
	for _, e := range entries {
		vals[e.Name] = ToCty(e.Color)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"palette": cty.ObjectVal(vals),
		},
		Functions: Functions(),
	}
}

// makeRGBFunc creates an HCL function that builds a color from 8-bit channels.
// Usage: rgb(255, 127, 80)
func makeRGBFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Builds a color from red, green and blue channels in [0, 255]",
		Params: []function.Parameter{
			{Name: "r", Type: cty.Number},
			{Name: "g", Type: cty.Number},
			{Name: "b", Type: cty.Number},
		},
		Type: function.StaticReturnType(ColorType),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			var ch [3]uint8
			for i, arg := range args {
				v, err := channelValue(arg)
				if err != nil {
					return cty.NilVal, function.NewArgError(i, err)
				}
				ch[i] = v
			}
			return ToCty(rgbconv.RGB{R: ch[0], G: ch[1], B: ch[2]}), nil
		},
	})
}

// makeHSLFunc creates an HCL function that builds a color from HSL components.
// Usage: hsl(0.5, 1, 0.25)
func makeHSLFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Builds a color from hue, saturation and lightness in [0, 1]",
		Params: []function.Parameter{
			{Name: "h", Type: cty.Number},
			{Name: "s", Type: cty.Number},
			{Name: "l", Type: cty.Number},
		},
		Type: function.StaticReturnType(ColorType),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			v := unitArgs(args)
			hsl := rgbconv.HSL{H: v[0], S: v[1], L: v[2]}
			if err := hsl.Validate(); err != nil {
				return cty.NilVal, rangeArgError(err)
			}
			return ToCty(hsl.RGB()), nil
		},
	})
}

// makeHSVFunc creates an HCL function that builds a color from HSV components.
// Usage: hsv(0.6, 0.3, 0.5)
func makeHSVFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Builds a color from hue, saturation and value in [0, 1]",
		Params: []function.Parameter{
			{Name: "h", Type: cty.Number},
			{Name: "s", Type: cty.Number},
			{Name: "v", Type: cty.Number},
		},
		Type: function.StaticReturnType(ColorType),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			v := unitArgs(args)
			hsv := rgbconv.HSV{H: v[0], S: v[1], V: v[2]}
			if err := hsv.Validate(); err != nil {
				return cty.NilVal, rangeArgError(err)
			}
			return ToCty(hsv.RGB()), nil
		},
	})
}

// makeAdjustFunc wraps a color adjustment as an HCL function.
// Usage: lighten(palette.coral, 0.1)
func makeAdjustFunc(desc, param string, fn func(rgbconv.RGB, float64) rgbconv.RGB) function.Function {
	return function.New(&function.Spec{
		Description: desc,
		Params: []function.Parameter{
			{Name: "color", Type: ColorType},
			{Name: param, Type: cty.Number},
		},
		Type: function.StaticReturnType(ColorType),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := FromCty(args[0])
			if err != nil {
				return cty.NilVal, function.NewArgError(0, err)
			}
			amount, _ := args[1].AsBigFloat().Float64()
			return ToCty(fn(c, amount)), nil
		},
	})
}

func unitArgs(args []cty.Value) [3]float64 {
	var v [3]float64
	for i, arg := range args {
		v[i], _ = arg.AsBigFloat().Float64()
	}
	return v
}

// rangeArgError attaches a validation failure to the argument it came from.
func rangeArgError(err error) error {
	var re *rgbconv.RangeError
	if !errors.As(err, &re) {
		return err
	}
	idx := 0
	switch re.Channel {
	case "s":
		idx = 1
	case "l", "v":
		idx = 2
	}
	return function.NewArgErrorf(idx, "must be in [0, 1], got %g", re.Value)
}
