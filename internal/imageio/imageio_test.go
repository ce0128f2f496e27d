package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.NRGBA{R: 10, G: 120, B: 200, A: 255}), image.Point{}, draw.Src)
	return img
}

func TestFormatFromPath(t *testing.T) {
	is := is.New(t)

	for path, want := range map[string]Format{
		"out/map.png":  PNG,
		"map.JPG":      JPEG,
		"map.jpeg":     JPEG,
		"a/b/map.webp": WebP,
	} {
		got, err := FormatFromPath(path)
		is.NoErr(err)
		is.Equal(got, want)
	}

	_, err := FormatFromPath("map.gif")
	is.True(errors.Is(err, ErrUnsupportedFormat))

	_, err = FormatFromPath("map")
	is.True(errors.Is(err, ErrUnsupportedFormat))
}

func TestThatEveryFormatDecodesBack(t *testing.T) {
	is := is.New(t)
	src := testImage(40, 20)

	for _, f := range []Format{PNG, JPEG, WebP} {
		data, err := Bytes(src, f, 90)
		is.NoErr(err)

		img, name, err := Decode(bytes.NewReader(data))
		is.NoErr(err)
		is.Equal(name, string(f))
		is.Equal(img.Bounds().Dx(), 40)
		is.Equal(img.Bounds().Dy(), 20)
	}

	is.Equal(WebP.ContentType(), "image/webp")
	is.Equal(Format("bogus").ContentType(), "image/png")
}

func TestThatInputOnlyFormatsDecode(t *testing.T) {
	is := is.New(t)
	src := testImage(12, 6)

	for name, encode := range map[string]func(io.Writer, image.Image) error{
		"gif":  func(w io.Writer, m image.Image) error { return gif.Encode(w, m, nil) },
		"bmp":  bmp.Encode,
		"tiff": func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) },
	} {
		var buf bytes.Buffer
		is.NoErr(encode(&buf, src))

		img, format, err := Decode(&buf)
		is.NoErr(err)
		is.Equal(format, name)
		is.Equal(img.Bounds().Dx(), 12)
		is.Equal(img.Bounds().Dy(), 6)
	}
}

func TestSaveCreatesDirectories(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "nested", "dir", "map.png")

	is.NoErr(Save(path, testImage(8, 8), 0))

	img, err := Load(path)
	is.NoErr(err)
	r, g, b, a := img.At(4, 4).RGBA()
	is.Equal([]uint32{r >> 8, g >> 8, b >> 8, a >> 8}, []uint32{10, 120, 200, 255})
}

func TestScaleKeepsAspectRatio(t *testing.T) {
	is := is.New(t)
	src := testImage(400, 300)

	small := Scale(src, 100)
	is.Equal(small.Bounds().Dx(), 100)
	is.Equal(small.Bounds().Dy(), 75)

	is.Equal(Scale(src, 0), image.Image(src))
	is.Equal(Scale(src, 400), image.Image(src))
}
