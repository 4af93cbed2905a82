package rgbconv

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfRange indicates a color component outside its documented range.
var ErrOutOfRange = errors.New("out of range")

// RangeError describes the component that failed validation.
type RangeError struct {
	Model   string  // "hsl" or "hsv"
	Channel string  // "h", "s", "l" or "v"
	Value   float64 // offending value
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s.%s = %g: %s [0, 1]", e.Model, e.Channel, e.Value, ErrOutOfRange)
}

// Is reports whether target is ErrOutOfRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// Clamp01 clamps v to [0, 1]. NaN clamps to 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Validate reports the first component of c outside [0, 1].
func (c HSL) Validate() error {
	return validate("hsl", [3]string{"h", "s", "l"}, [3]float64{c.H, c.S, c.L})
}

// Validate reports the first component of c outside [0, 1].
func (c HSV) Validate() error {
	return validate("hsv", [3]string{"h", "s", "v"}, [3]float64{c.H, c.S, c.V})
}

// Clamp returns c with every component clamped to [0, 1].
func (c HSL) Clamp() HSL {
	return HSL{H: Clamp01(c.H), S: Clamp01(c.S), L: Clamp01(c.L)}
}

// Clamp returns c with every component clamped to [0, 1].
func (c HSV) Clamp() HSV {
	return HSV{H: Clamp01(c.H), S: Clamp01(c.S), V: Clamp01(c.V)}
}

func validate(model string, names [3]string, values [3]float64) error {
	for i, v := range values {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return &RangeError{Model: model, Channel: names[i], Value: v}
		}
	}
	return nil
}
