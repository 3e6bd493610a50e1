package raster

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit fill color.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// NRGBA returns the color as an opaque color.NRGBA.
func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Hex formats the color as "#RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c RGB) String() string { return c.Hex() }

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorInfo describes a fill color in the forms a caller is likely to want.
type ColorInfo struct {
	Hex string   `json:"hex"`
	RGB RGB      `json:"rgb"`
	HSL HSLColor `json:"hsl"`
}

// Describe returns c as hex, RGB and HSL.
func (c RGB) Describe() ColorInfo {
	cf := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	h, s, l := cf.Hsl()
	return ColorInfo{
		Hex: c.Hex(),
		RGB: c,
		HSL: HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
	}
}

// ParseColor parses a fill color.
//
// Accepted forms:
//   - "#RRGGBB" or "#RGB" (the leading '#' is optional)
//   - "rgb(r, g, b)" or "r,g,b" with components 0-255
func ParseColor(s string) (RGB, error) {
	in := strings.TrimSpace(s)
	if in == "" {
		return RGB{}, fmt.Errorf("raster: empty color")
	}

	lower := strings.ToLower(in)
	if strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")") {
		return parseTriple(in[4 : len(in)-1])
	}
	if strings.Contains(in, ",") {
		return parseTriple(in)
	}

	if !strings.HasPrefix(in, "#") {
		in = "#" + in
	}
	if len(in) != 4 && len(in) != 7 {
		return RGB{}, fmt.Errorf("raster: invalid hex color %q", s)
	}
	cf, err := colorful.Hex(in)
	if err != nil {
		return RGB{}, fmt.Errorf("raster: invalid hex color %q: %w", s, err)
	}
	r, g, b := cf.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

func parseTriple(s string) (RGB, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return RGB{}, fmt.Errorf("raster: color %q needs three components", s)
	}
	var v [3]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("raster: color component %q: %w", strings.TrimSpace(p), err)
		}
		v[i] = uint8(n)
	}
	return RGB{R: v[0], G: v[1], B: v[2]}, nil
}
