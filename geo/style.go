package geo

import (
	"github.com/spf13/cast"
)

// simplestyle property names, most specific first
var (
	colorKeys = []string{"stroke", "marker-color", "color", "fill"}
	widthKeys = []string{"stroke-width", "width", "line-width"}
	sizeKeys  = []string{"marker-size", "size", "point-size"}
)

// StyleColor returns the first color property as a string, or def.
func StyleColor(props map[string]any, def string) string {
	for _, k := range colorKeys {
		if v, ok := props[k]; ok {
			if s, err := cast.ToStringE(v); err == nil && s != "" {
				return s
			}
		}
	}
	return def
}

// StyleWidth returns the first numeric line width property, or def.
// Values that cannot be read as numbers are skipped.
func StyleWidth(props map[string]any, def float64) float64 {
	return Number(props, def, widthKeys...)
}

// StyleSize returns the first numeric marker size property, or def.
func StyleSize(props map[string]any, def float64) float64 {
	return Number(props, def, sizeKeys...)
}

// Number returns the first positive numeric value among keys, or def.
func Number(props map[string]any, def float64, keys ...string) float64 {
	for _, k := range keys {
		v, ok := props[k]
		if !ok {
			continue
		}
		if f, err := cast.ToFloat64E(v); err == nil && f > 0 {
			return f
		}
	}
	return def
}
