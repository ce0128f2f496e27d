// Package palette generates and converts the colors used to style plotted features.
//
// Colors are color.NRGBA values: channels keep their plain 0..255 meaning
// and a fill transparency only touches the alpha channel.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Mode selects how Generate produces colors.
type Mode string

const (
	ModeRandom      Mode = "random"
	ModeDistinct    Mode = "distinct"
	ModeWheel       Mode = "wheel"
	ModeQualitative Mode = "qualitative"
	ModeSequential  Mode = "sequential"
	ModeDiverging   Mode = "diverging"
)

var (
	ErrUnsupportedMode = errors.New("unsupported color mode")
	ErrInvalidColor    = errors.New("invalid color")
	ErrLengthMismatch  = errors.New("color list length mismatch")
	ErrMissingID       = errors.New("id has no color")
)

// Default styling colors.
var (
	Red            = color.NRGBA{R: 255, A: 255}
	Blue           = color.NRGBA{B: 255, A: 255}
	TransparentRed = color.NRGBA{R: 255, A: 100}
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeRandom, ModeDistinct, ModeWheel, ModeQualitative, ModeSequential, ModeDiverging:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q (want random|distinct|wheel|qualitative|sequential|diverging)", ErrUnsupportedMode, s)
	}
}

// Generate returns n colors produced by mode. n <= 0 yields an empty result.
func Generate(n int, mode Mode) ([]color.NRGBA, error) {
	mode, err := ParseMode(string(mode))
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return []color.NRGBA{}, nil
	}

	switch mode {
	case ModeRandom:
		return RandomColors(n), nil
	case ModeDistinct:
		return Distinct(n), nil
	case ModeQualitative:
		return Qualitative(n), nil
	case ModeSequential:
		return Sequential(n), nil
	case ModeDiverging:
		return Diverging(n), nil
	default:
		return Wheel(n), nil
	}
}

// Distance is the CIEDE2000 difference of two colors ignoring alpha,
// 0 for identical colors.
func Distance(a, b color.Color) float64 {
	return toColorful(a).DistanceCIEDE2000(toColorful(b))
}

// MinDistance returns the smallest pairwise Distance in colors,
// +Inf when there are fewer than two.
func MinDistance(colors []color.NRGBA) float64 {
	shortest := math.Inf(1)
	for i := range colors {
		for j := i + 1; j < len(colors); j++ {
			if d := Distance(colors[i], colors[j]); d < shortest {
				shortest = d
			}
		}
	}
	return shortest
}

// WithAlpha returns c with its alpha channel replaced.
func WithAlpha(c color.Color, alpha uint8) color.NRGBA {
	n := ToNRGBA(c)
	n.A = alpha
	return n
}

// ToNRGBA converts any color to non-premultiplied form.
func ToNRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func toColorful(c color.Color) colorful.Color {
	n := ToNRGBA(c)
	return colorful.Color{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
	}
}

// from255 converts a [0,1] colorful color to rounded 0..255 channels.
func from255(c colorful.Color) color.NRGBA {
	c = c.Clamped()
	return color.NRGBA{
		R: uint8(math.Round(c.R * 255)),
		G: uint8(math.Round(c.G * 255)),
		B: uint8(math.Round(c.B * 255)),
		A: 255,
	}
}
