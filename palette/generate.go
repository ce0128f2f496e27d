package palette

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// MinDistinctDistance is the CIEDE2000 separation Distinct aims for between
// any two colors of a palette.
const MinDistinctDistance = 0.05

// MaxReliableDistinct is the largest palette size for which Distinct
// reaches MinDistinctDistance in practice.
const MaxReliableDistinct = 15

const distinctAttempts = 8

// RandomColor returns a color with every channel drawn uniformly from [0,255].
// An optional seed makes the result reproducible.
func RandomColor(seed ...int64) color.NRGBA {
	var r *rand.Rand
	if len(seed) > 0 {
		r = rand.New(rand.NewSource(seed[0]))
	} else {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return randomFrom(r)
}

// RandomColors returns n independent random colors. Duplicates are possible.
func RandomColors(n int) []color.NRGBA {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return lo.Times(n, func(int) color.NRGBA { return randomFrom(r) })
}

func randomFrom(r *rand.Rand) color.NRGBA {
	return color.NRGBA{
		R: uint8(r.Intn(256)),
		G: uint8(r.Intn(256)),
		B: uint8(r.Intn(256)),
		A: 255,
	}
}

// Distinct returns n colors chosen to be far apart from each other in
// L*a*b* space. Very dark and very light colors are excluded so the result
// stays readable on top of map tiles.
//
// Pairwise separation of MinDistinctDistance is only reached for n up to
// MaxReliableDistinct. Larger palettes get the best of several attempts,
// which can fall well below it (about 0.02 for n=500); the shortfall is
// logged at warn level.
func Distinct(n int) []color.NRGBA {
	if n <= 0 {
		return []color.NRGBA{}
	}

	settings := colorful.SoftPaletteSettings{
		CheckColor: func(l, a, b float64) bool {
			return l >= 0.25 && l <= 0.9
		},
		Iterations: 50,
	}

	var best []color.NRGBA
	bestDist := -1.0
	for attempt := 0; attempt < distinctAttempts; attempt++ {
		cols, err := colorful.SoftPaletteEx(n, settings)
		if err != nil {
			// the restricted space ran out of samples; widen it
			log.Debug().Err(err).Int("count", n).Msg("Distinct palette falls back to full color space")
			settings.CheckColor = nil
			settings.ManySamples = true
			continue
		}

		out := lo.Map(cols, func(c colorful.Color, _ int) color.NRGBA { return from255(c) })
		d := MinDistance(out)
		if d > bestDist {
			best, bestDist = out, d
		}
		if bestDist >= MinDistinctDistance {
			break
		}
	}

	if best == nil {
		// SoftPaletteEx only fails when n exceeds the sample count
		return Wheel(n)
	}

	if bestDist < MinDistinctDistance {
		log.Warn().
			Int("count", n).
			Float64("min_distance", bestDist).
			Float64("want_distance", MinDistinctDistance).
			Msg("Distinct palette colors are closer than wanted")
	} else {
		log.Trace().Int("count", n).Float64("min_distance", bestDist).Msg("Distinct palette generated")
	}
	return best
}

// DistinctColors is Distinct as plain RGB triples.
func DistinctColors(n int) [][3]uint8 {
	return lo.Map(Distinct(n), func(c color.NRGBA, _ int) [3]uint8 {
		return [3]uint8{c.R, c.G, c.B}
	})
}

// Wheel spaces n hues evenly around the HSV circle at full saturation and value.
func Wheel(n int) []color.NRGBA {
	if n <= 0 {
		return []color.NRGBA{}
	}
	return lo.Times(n, func(i int) color.NRGBA {
		return HSVToRGB(float64(i)/float64(n), 1, 1)
	})
}

// HSVToRGB converts hue, saturation and value, each in [0,1], to a rounded
// RGB color. Hue wraps around.
func HSVToRGB(h, s, v float64) color.NRGBA {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	return from255(colorful.Hsv(h*360, s, v))
}

// Hue returns the HSV hue of c in degrees [0,360).
func Hue(c color.Color) float64 {
	h, _, _ := toColorful(c).Hsv()
	return h
}
