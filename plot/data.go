package plot

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/samber/lo"
	"github.com/spf13/cast"
	"github.com/woozymasta/mapplot/palette"
)

var ErrMissingColumn = errors.New("missing column")

// Table is column oriented data, for example decoded from CSV or JSON.
// All columns are expected to have the same length.
type Table map[string][]any

// DataColumns names the columns PlotPointsData reads.
type DataColumns struct {
	Lat string
	Lon string
	// Color holds a per-row color value in any form palette.Convert accepts.
	Color string
	// ID groups rows; together with Style.IDColors or Style.IDColorMode
	// rows sharing an id share a color.
	ID string
}

// PlotPointsData renders one marker per table row.
func PlotPointsData(t Table, cols DataColumns, style Style, opts RenderOptions) (image.Image, error) {
	lats, err := floatColumn(t, cols.Lat)
	if err != nil {
		return nil, err
	}
	lons, err := floatColumn(t, cols.Lon)
	if err != nil {
		return nil, err
	}

	if cols.Color != "" {
		values, err := column(t, cols.Color)
		if err != nil {
			return nil, err
		}
		colors, err := palette.ConvertAll(values)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", cols.Color, err)
		}
		style.Colors = lo.Map(colors, func(c color.NRGBA, _ int) color.Color { return c })
	}

	if cols.ID != "" {
		values, err := column(t, cols.ID)
		if err != nil {
			return nil, err
		}
		style.IDs = lo.Map(values, func(v any, _ int) string { return cast.ToString(v) })
	}

	return PlotPoints(lats, lons, style, opts)
}

func column(t Table, name string) ([]any, error) {
	values, ok := t[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}
	return values, nil
}

func floatColumn(t Table, name string) ([]float64, error) {
	values, err := column(t, name)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(values))
	for i, v := range values {
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %w", name, i, err)
		}
		out[i] = f
	}
	return out, nil
}
