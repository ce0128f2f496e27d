package palette

import (
	"image/color"

	"github.com/samber/lo"
)

// Paul Tol's color schemes (https://personal.sron.nl/~pault/).
var (
	tolMuted = mustParseAll(
		"#CC6677", "#332288", "#DDCC77", "#117733", "#88CCEE",
		"#882255", "#44AA99", "#999933", "#AA4499",
	)
	tolQualitative12 = mustParseAll(
		"#332288", "#6699CC", "#88CCEE", "#44AA99", "#117733", "#999933",
		"#DDCC77", "#661100", "#CC6677", "#AA4466", "#882255", "#AA4499",
	)
	tolYlOrBr = mustParseAll(
		"#FFFFE5", "#FFF7BC", "#FEE391", "#FEC44F", "#FB9A29",
		"#EC7014", "#CC4C02", "#993404", "#662506",
	)
	tolSunset = mustParseAll(
		"#364B9A", "#4A7BB7", "#6EA6CD", "#98CAE1", "#C2E4EF", "#EAECCC",
		"#FEDA8B", "#FDB366", "#F67E4B", "#DD3D2D", "#A50026",
	)
)

func mustParseAll(hexes ...string) []color.NRGBA {
	return lo.Map(hexes, func(h string, _ int) color.NRGBA {
		c, err := Parse(h)
		if err != nil {
			panic(err)
		}
		return c
	})
}

// Qualitative returns n colors for unordered categories: a prefix of Tol's
// muted scheme up to 9 colors, of his 12 color scheme beyond that. Larger
// palettes repeat the 12 colors.
func Qualitative(n int) []color.NRGBA {
	if n <= 0 {
		return []color.NRGBA{}
	}
	scheme := tolMuted
	if n > len(tolMuted) {
		scheme = tolQualitative12
	}
	return lo.Times(n, func(i int) color.NRGBA { return scheme[i%len(scheme)] })
}

// Sequential returns n colors running from light yellow to dark brown
// (Tol's YlOrBr), sampled evenly along the scheme.
func Sequential(n int) []color.NRGBA {
	return sample(tolYlOrBr, n)
}

// Diverging returns n colors running from blue through pale yellow to red
// (Tol's sunset), sampled evenly along the scheme.
func Diverging(n int) []color.NRGBA {
	return sample(tolSunset, n)
}

// sample picks n evenly spaced colors along stops, blending neighbors in
// L*a*b*. Samples that land on a stop return it unchanged; a single sample
// is the middle of the scheme.
func sample(stops []color.NRGBA, n int) []color.NRGBA {
	if n <= 0 {
		return []color.NRGBA{}
	}
	last := len(stops) - 1

	return lo.Times(n, func(i int) color.NRGBA {
		var pos float64
		if n == 1 {
			pos = float64(last) / 2
		} else {
			pos = float64(i*last) / float64(n-1)
		}

		k := int(pos)
		frac := pos - float64(k)
		if k >= last {
			return stops[last]
		}
		if frac == 0 {
			return stops[k]
		}
		return from255(toColorful(stops[k]).BlendLab(toColorful(stops[k+1]), frac))
	})
}
