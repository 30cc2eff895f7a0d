/*
MIT License

Copyright (c) 2025 Yuval Adar <adary@adary.org>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package colors

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrInvalidColor is matched by every *ColorError.
	ErrInvalidColor = errors.New("invalid color")

	// ErrMissingColor means a required source color was not set.
	ErrMissingColor = errors.New("missing color")
)

// ColorError names the palette field that could not be produced.
type ColorError struct {
	Field string
	Value string
	Err   error
}

func (e *ColorError) Error() string {
	if errors.Is(e.Err, ErrMissingColor) {
		return fmt.Sprintf("color %q is not set", e.Field)
	}
	return fmt.Sprintf("color %q: %q is not a valid hex color string", e.Field, e.Value)
}

func (e *ColorError) Unwrap() error {
	return e.Err
}

// Is makes a missing color also count as an invalid one.
func (e *ColorError) Is(target error) bool {
	return target == ErrInvalidColor
}

const (
	altFactor     = 1.25
	inverseFactor = 1.1
	brownFactor   = 1.1

	orangeRotation = -15.0
	brownRotation  = -10.0
)

// ParseHex parses "#rgb" or "#rrggbb", with or without the leading '#'.
func ParseHex(field, value string) (colorful.Color, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return colorful.Color{}, &ColorError{Field: field, Err: ErrMissingColor}
	}

	hex := value
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) != 4 && len(hex) != 7 {
		return colorful.Color{}, &ColorError{Field: field, Value: value, Err: ErrInvalidColor}
	}
	for _, r := range hex[1:] {
		if !isHexDigit(r) {
			return colorful.Color{}, &ColorError{Field: field, Value: value, Err: ErrInvalidColor}
		}
	}

	c, err := colorful.Hex(strings.ToLower(hex))
	if err != nil {
		return colorful.Color{}, &ColorError{Field: field, Value: value, Err: ErrInvalidColor}
	}
	return c, nil
}

// Normalize returns value as a lowercase "#rrggbb" string.
func Normalize(field, value string) (string, error) {
	c, err := ParseHex(field, value)
	if err != nil {
		return "", err
	}
	return toHex(c), nil
}

// Brightness returns the perceived brightness of c in [0, 1].
func Brightness(c colorful.Color) float64 {
	c = c.Clamped()
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// Darker divides the HSL lightness of c by factor.
func Darker(c colorful.Color, factor float64) colorful.Color {
	h, s, l := c.Hsl()
	return colorful.Hsl(h, s, clamp(l/factor))
}

// Brighter multiplies the HSL lightness of c by factor.
func Brighter(c colorful.Color, factor float64) colorful.Color {
	h, s, l := c.Hsl()
	return colorful.Hsl(h, s, clamp(l*factor))
}

// Rotate shifts the hue of c by degrees.
func Rotate(c colorful.Color, degrees float64) colorful.Color {
	h, s, l := c.Hsl()
	h = math.Mod(h+degrees, 360)
	if h < 0 {
		h += 360
	}
	return colorful.Hsl(h, s, l)
}

// Average is the channel-wise mean of a and b.
func Average(a, b colorful.Color) colorful.Color {
	return colorful.Color{
		R: (a.R + b.R) / 2,
		G: (a.G + b.G) / 2,
		B: (a.B + b.B) / 2,
	}
}

// altColor darkens bright colors and brightens dark ones.
func altColor(c colorful.Color) colorful.Color {
	if Brightness(c) > 0.5 {
		return Darker(c, altFactor)
	}
	return Brighter(c, altFactor)
}

// altColorInverse is the lighter_bg rule: the brightness test and the factor
// both differ from altColor.
func altColorInverse(c colorful.Color) colorful.Color {
	if Brightness(c) < 0.5 {
		return Darker(c, inverseFactor)
	}
	return Brighter(c, inverseFactor)
}

func orangeFromYellow(c colorful.Color) colorful.Color {
	return Rotate(c, orangeRotation)
}

func brownFromOrange(c colorful.Color) colorful.Color {
	return Darker(Rotate(c, brownRotation), brownFactor)
}

func toHex(c colorful.Color) string {
	return c.Clamped().Hex()
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
