package palette

import (
	"fmt"
	"image/color"
	"strings"

	sm "github.com/flopp/go-staticmaps"
	"github.com/samber/lo"
	"github.com/spf13/cast"
)

// Parse reads a named color ("red", "blue", ...) or a hex value in
// "#rrggbb", "#rrggbbaa" or "0x..." form.
func Parse(s string) (color.NRGBA, error) {
	c, err := sm.ParseColorString(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
	}
	// the hex parser stores the alpha digits without premultiplying
	if rgba, ok := c.(color.RGBA); ok {
		return color.NRGBA(rgba), nil
	}
	return ToNRGBA(c), nil
}

// Convert accepts a color name or hex string, any color.Color, or an
// integer slice/array with 3 (r, g, b) or 4 (r, g, b, a) components.
func Convert(v any) (color.NRGBA, error) {
	switch c := v.(type) {
	case nil:
		return color.NRGBA{}, fmt.Errorf("%w: nil", ErrInvalidColor)
	case string:
		return Parse(c)
	case color.Color:
		return ToNRGBA(c), nil
	case [3]int:
		return fromComponents(c[:])
	case [4]int:
		return fromComponents(c[:])
	case [3]uint8:
		return color.NRGBA{R: c[0], G: c[1], B: c[2], A: 255}, nil
	case []int:
		return fromComponents(c)
	case []any:
		ints := make([]int, 0, len(c))
		for _, x := range c {
			i, err := cast.ToIntE(x)
			if err != nil {
				return color.NRGBA{}, fmt.Errorf("%w: component %v: %v", ErrInvalidColor, x, err)
			}
			ints = append(ints, i)
		}
		return fromComponents(ints)
	default:
		return color.NRGBA{}, fmt.Errorf("%w: unsupported value %T", ErrInvalidColor, v)
	}
}

// ConvertAll converts every value with Convert.
func ConvertAll[T any](values []T) ([]color.NRGBA, error) {
	out := make([]color.NRGBA, 0, len(values))
	for i, v := range values {
		c, err := Convert(v)
		if err != nil {
			return nil, fmt.Errorf("color %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func fromComponents(c []int) (color.NRGBA, error) {
	if len(c) != 3 && len(c) != 4 {
		return color.NRGBA{}, fmt.Errorf("%w: want 3 or 4 components, got %d", ErrInvalidColor, len(c))
	}
	for _, v := range c {
		if v < 0 || v > 255 {
			return color.NRGBA{}, fmt.Errorf("%w: component %d out of [0,255]", ErrInvalidColor, v)
		}
	}

	out := color.NRGBA{R: uint8(c[0]), G: uint8(c[1]), B: uint8(c[2]), A: 255}
	if len(c) == 4 {
		out.A = uint8(c[3])
	}
	return out, nil
}

// Hex formats c as "#rrggbb", or "#rrggbbaa" when it is not opaque.
func Hex(c color.Color) string {
	n := ToNRGBA(c)
	if n.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

// Repeat returns n copies of c.
func Repeat(c color.Color, n int) []color.NRGBA {
	if n <= 0 {
		return []color.NRGBA{}
	}
	return lo.Times(n, func(int) color.NRGBA { return ToNRGBA(c) })
}
