package palette

import (
	"bytes"
	"errors"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

func TestGenerateReturnsRequestedCount(t *testing.T) {
	is := is.New(t)

	for _, mode := range []Mode{ModeRandom, ModeDistinct, ModeWheel, ModeQualitative, ModeSequential, ModeDiverging} {
		cols, err := Generate(7, mode)
		is.NoErr(err)
		is.Equal(len(cols), 7)
		for _, c := range cols {
			is.Equal(c.A, uint8(255))
		}
	}
}

func TestGenerateWithNonPositiveCountIsEmpty(t *testing.T) {
	is := is.New(t)

	cols, err := Generate(0, ModeDistinct)
	is.NoErr(err)
	is.Equal(len(cols), 0)

	cols, err = Generate(-3, ModeWheel)
	is.NoErr(err)
	is.Equal(len(cols), 0)
}

func TestThatUnknownModeIsRejected(t *testing.T) {
	is := is.New(t)

	_, err := Generate(3, Mode("rainbow"))
	is.True(errors.Is(err, ErrUnsupportedMode))
	is.True(strings.Contains(err.Error(), "rainbow"))

	_, err = ParseMode("test_colors")
	is.True(errors.Is(err, ErrUnsupportedMode))

	m, err := ParseMode("Diverging")
	is.NoErr(err)
	is.Equal(m, ModeDiverging)

	m, err = ParseMode(" Distinct ")
	is.NoErr(err)
	is.Equal(m, ModeDistinct)
}

func TestDistinctColorsAreFarApart(t *testing.T) {
	is := is.New(t)

	for _, n := range []int{2, 3, 5, 10, MaxReliableDistinct} {
		cols := Distinct(n)
		is.Equal(len(cols), n)
		is.True(MinDistance(cols) >= MinDistinctDistance)
	}
}

func TestThatLargeDistinctPaletteWarnsAboutShortfall(t *testing.T) {
	is := is.New(t)

	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf).Level(zerolog.WarnLevel)
	t.Cleanup(func() { log.Logger = prev })

	cols := Distinct(150)
	is.Equal(len(cols), 150)

	if MinDistance(cols) < MinDistinctDistance {
		is.True(strings.Contains(buf.String(), `"level":"warn"`))
		is.True(strings.Contains(buf.String(), `"count":150`))
	} else {
		is.Equal(buf.Len(), 0)
	}
}

func TestQualitativeSchemePrefixes(t *testing.T) {
	is := is.New(t)

	cols, err := Generate(3, ModeQualitative)
	is.NoErr(err)
	is.Equal(Hex(cols[0]), "#cc6677")
	is.Equal(Hex(cols[1]), "#332288")
	is.Equal(Hex(cols[2]), "#ddcc77")

	nine := Qualitative(9)
	is.Equal(len(lo.Uniq(nine)), 9)

	twelve := Qualitative(12)
	is.Equal(len(lo.Uniq(twelve)), 12)
	is.Equal(Hex(twelve[0]), "#332288")

	many := Qualitative(14)
	is.Equal(len(many), 14)
	is.Equal(many[12], many[0])
	is.Equal(many[13], many[1])
}

func TestSequentialRunsLightToDark(t *testing.T) {
	is := is.New(t)

	is.Equal(Sequential(9), tolYlOrBr)

	cols := Sequential(20)
	is.Equal(cols[0], tolYlOrBr[0])
	is.Equal(cols[19], tolYlOrBr[8])
	for i := 1; i < len(cols); i++ {
		prev, _, _ := toColorful(cols[i-1]).Lab()
		cur, _, _ := toColorful(cols[i]).Lab()
		is.True(cur < prev)
	}

	is.Equal(len(Sequential(1)), 1)
	is.Equal(len(Sequential(0)), 0)
}

func TestDivergingIsCenteredOnPaleYellow(t *testing.T) {
	is := is.New(t)

	cols, err := Generate(3, ModeDiverging)
	is.NoErr(err)
	is.Equal(Hex(cols[0]), "#364b9a")
	is.Equal(Hex(cols[1]), "#eaeccc")
	is.Equal(Hex(cols[2]), "#a50026")

	is.Equal(Diverging(11), tolSunset)
	is.Equal(Diverging(1)[0], tolSunset[5])
}

func TestDistinctColorsAsTriples(t *testing.T) {
	is := is.New(t)

	triples := DistinctColors(4)
	is.Equal(len(triples), 4)
	is.Equal(len(lo.Uniq(triples)), 4)
}

func TestWheelHuesAreEvenlySpaced(t *testing.T) {
	is := is.New(t)

	cols := Wheel(3)
	is.Equal(cols, []color.NRGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
		{B: 255, A: 255},
	})

	for i, want := range []float64{0, 120, 240} {
		is.True(math.Abs(Hue(cols[i])-want) < 1e-9)
	}

	cols = Wheel(6)
	is.Equal(cols[1], color.NRGBA{R: 255, G: 255, A: 255})
}

func TestHSVToRGBRoundsChannels(t *testing.T) {
	is := is.New(t)

	is.Equal(HSVToRGB(0, 1, 1), color.NRGBA{R: 255, A: 255})
	is.Equal(HSVToRGB(1, 1, 1), color.NRGBA{R: 255, A: 255})
	is.Equal(HSVToRGB(0, 0, 0.5), color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	is.Equal(HSVToRGB(0, 0, 1), color.NRGBA{R: 255, G: 255, B: 255, A: 255})
}

func TestRandomColorWithSeedIsReproducible(t *testing.T) {
	is := is.New(t)

	is.Equal(RandomColor(42), RandomColor(42))
	is.Equal(len(RandomColors(12)), 12)
}

func TestDistanceOfIdenticalColorsIsZero(t *testing.T) {
	is := is.New(t)

	is.Equal(Distance(Red, Red), 0.0)
	is.True(Distance(Red, Blue) > 0.3)
	is.True(math.IsInf(MinDistance([]color.NRGBA{Red}), 1))
}

func TestParseColorStrings(t *testing.T) {
	is := is.New(t)

	c, err := Parse("red")
	is.NoErr(err)
	is.Equal(c, Red)

	c, err = Parse("#00ff00")
	is.NoErr(err)
	is.Equal(c, color.NRGBA{G: 255, A: 255})

	c, err = Parse("#ff000064")
	is.NoErr(err)
	is.Equal(c, TransparentRed)

	_, err = Parse("not-a-color")
	is.True(errors.Is(err, ErrInvalidColor))
}

func TestConvertAcceptsSeveralForms(t *testing.T) {
	is := is.New(t)

	c, err := Convert([]int{1, 2, 3})
	is.NoErr(err)
	is.Equal(c, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	c, err = Convert([4]int{1, 2, 3, 4})
	is.NoErr(err)
	is.Equal(c, color.NRGBA{R: 1, G: 2, B: 3, A: 4})

	c, err = Convert([]any{10, "20", 30.0})
	is.NoErr(err)
	is.Equal(c, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	c, err = Convert(color.NRGBA{B: 9, A: 255})
	is.NoErr(err)
	is.Equal(c, color.NRGBA{B: 9, A: 255})

	_, err = Convert([]int{1, 2})
	is.True(errors.Is(err, ErrInvalidColor))

	_, err = Convert([]int{1, 2, 300})
	is.True(errors.Is(err, ErrInvalidColor))

	_, err = Convert(3.14)
	is.True(errors.Is(err, ErrInvalidColor))
}

func TestHexFormatting(t *testing.T) {
	is := is.New(t)

	is.Equal(Hex(Red), "#ff0000")
	is.Equal(Hex(TransparentRed), "#ff000064")
}

func TestResolveSpec(t *testing.T) {
	is := is.New(t)

	cols, err := Resolve(Spec{}, 3, Blue)
	is.NoErr(err)
	is.Equal(cols, []color.NRGBA{Blue, Blue, Blue})

	cols, err = Resolve(Spec{Colors: []color.Color{Red, Blue, Red}}, 2, Blue)
	is.NoErr(err)
	is.Equal(cols, []color.NRGBA{Red, Blue})

	_, err = Resolve(Spec{Colors: []color.Color{Red}}, 2, Blue)
	is.True(errors.Is(err, ErrLengthMismatch))

	cols, err = Resolve(Spec{Mode: ModeWheel}, 3, Blue)
	is.NoErr(err)
	is.Equal(cols, Wheel(3))

	_, err = Resolve(Spec{Mode: "nope"}, 3, Blue)
	is.True(errors.Is(err, ErrUnsupportedMode))
}

func TestIDsShareColors(t *testing.T) {
	is := is.New(t)

	ids := []string{"a", "b", "a", "c", "b"}
	mapping, err := MapIDColors(ids, ModeWheel)
	is.NoErr(err)
	is.Equal(len(mapping), 3)
	is.Equal(mapping["a"], Wheel(3)[0])
	is.Equal(mapping["c"], Wheel(3)[2])

	cols, err := ProcessIDColors(ids, mapping)
	is.NoErr(err)
	is.Equal(len(cols), len(ids))
	is.Equal(cols[0], cols[2])
	is.Equal(cols[1], cols[4])

	_, err = ProcessIDColors([]string{"z"}, mapping)
	is.True(errors.Is(err, ErrMissingID))
}

func TestIDColorsWithExplicitMapping(t *testing.T) {
	is := is.New(t)

	cols, err := IDColors([]int{1, 2, 1}, map[int]color.Color{1: Red, 2: Blue}, "")
	is.NoErr(err)
	is.Equal(cols, []color.NRGBA{Red, Blue, Red})

	cols, err = IDColors([]int{1, 2, 1}, nil, "")
	is.NoErr(err)
	is.Equal(cols[0], cols[2])
	is.True(cols[0] != cols[1])
}

func TestFillColors(t *testing.T) {
	is := is.New(t)
	borders := []color.NRGBA{Red, Blue}

	fills, err := FillColors(borders, Fill{})
	is.NoErr(err)
	is.Equal(fills, []color.NRGBA{TransparentRed, TransparentRed})

	fills, err = FillColors(borders, Fill{Same: true, Alpha: lo.ToPtr(uint8(50))})
	is.NoErr(err)
	is.Equal(fills, []color.NRGBA{{R: 255, A: 50}, {B: 255, A: 50}})
	is.Equal(borders[0].A, uint8(255))

	fills, err = FillColors(borders, Fill{Colors: []color.NRGBA{Blue, Red}, Same: true})
	is.NoErr(err)
	is.Equal(fills, []color.NRGBA{Blue, Red})

	_, err = FillColors(borders, Fill{Colors: []color.NRGBA{Blue}})
	is.True(errors.Is(err, ErrLengthMismatch))
}

func TestWithAlphaKeepsChannels(t *testing.T) {
	is := is.New(t)

	is.Equal(WithAlpha(Red, 100), TransparentRed)
}
