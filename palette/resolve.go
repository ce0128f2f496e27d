package palette

import (
	"fmt"
	"image/color"

	"github.com/samber/lo"
)

// Spec says where a list of colors comes from: an explicit list, a
// generation mode, or neither (the default color for every item).
// Colors wins over Mode.
type Spec struct {
	Colors []color.Color
	Mode   Mode
}

// IsZero reports whether the spec names no colors at all.
func (s Spec) IsZero() bool {
	return len(s.Colors) == 0 && s.Mode == ""
}

// Resolve returns exactly n colors for spec. An explicit list must hold at
// least n colors; extra entries are ignored.
func Resolve(spec Spec, n int, def color.Color) ([]color.NRGBA, error) {
	switch {
	case len(spec.Colors) > 0:
		if len(spec.Colors) < n {
			return nil, fmt.Errorf("%w: %d colors for %d items", ErrLengthMismatch, len(spec.Colors), n)
		}
		return lo.Map(spec.Colors[:n], func(c color.Color, _ int) color.NRGBA { return ToNRGBA(c) }), nil
	case spec.Mode != "":
		return Generate(n, spec.Mode)
	default:
		return Repeat(def, n), nil
	}
}

// MapIDColors assigns one generated color to every unique id. Ids receive
// colors in first-seen order.
func MapIDColors[K comparable](ids []K, mode Mode) (map[K]color.NRGBA, error) {
	uniq := lo.Uniq(ids)
	cols, err := Generate(len(uniq), mode)
	if err != nil {
		return nil, err
	}

	out := make(map[K]color.NRGBA, len(uniq))
	for i, id := range uniq {
		out[id] = cols[i]
	}
	return out, nil
}

// ProcessIDColors looks up the color of every id in mapping.
func ProcessIDColors[K comparable](ids []K, mapping map[K]color.NRGBA) ([]color.NRGBA, error) {
	out := make([]color.NRGBA, 0, len(ids))
	for _, id := range ids {
		c, ok := mapping[id]
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrMissingID, id)
		}
		out = append(out, c)
	}
	return out, nil
}

// IDColors resolves per-item colors from ids. A non-empty mapping is used
// as is; otherwise colors are generated with mode.
func IDColors[K comparable](ids []K, mapping map[K]color.Color, mode Mode) ([]color.NRGBA, error) {
	if len(mapping) > 0 {
		m := lo.MapValues(mapping, func(c color.Color, _ K) color.NRGBA { return ToNRGBA(c) })
		return ProcessIDColors(ids, m)
	}
	if mode == "" {
		mode = ModeDistinct
	}
	m, err := MapIDColors(ids, mode)
	if err != nil {
		return nil, err
	}
	return ProcessIDColors(ids, m)
}

// Fill describes how fill colors derive from border colors.
type Fill struct {
	// Colors are explicit fills, already resolved per item. They win over
	// everything else.
	Colors []color.NRGBA
	// Same reuses the border colors as fills.
	Same bool
	// Alpha, when set, replaces the alpha channel of every fill.
	Alpha *uint8
	// Default is used when neither Colors nor Same applies.
	Default color.Color
}

// FillColors returns one fill color per border color.
func FillColors(borders []color.NRGBA, f Fill) ([]color.NRGBA, error) {
	n := len(borders)

	var fills []color.NRGBA
	switch {
	case len(f.Colors) > 0:
		if len(f.Colors) < n {
			return nil, fmt.Errorf("%w: %d fill colors for %d items", ErrLengthMismatch, len(f.Colors), n)
		}
		fills = append([]color.NRGBA(nil), f.Colors[:n]...)
	case f.Same:
		fills = append([]color.NRGBA(nil), borders...)
	default:
		def := f.Default
		if def == nil {
			def = TransparentRed
		}
		fills = Repeat(def, n)
	}

	if f.Alpha != nil {
		for i := range fills {
			fills[i].A = *f.Alpha
		}
	}
	return fills, nil
}
