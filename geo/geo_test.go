package geo

import (
	"errors"
	"io/fs"
	"math"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/maptile"
	"github.com/woozymasta/mapplot/coords"
)

func TestParseFileExtractsDrawableFeatures(t *testing.T) {
	is := is.New(t)

	doc, err := ParseFile(filepath.Join("testdata", "mixed.geojson"))
	is.NoErr(err)
	is.Equal(doc.Type, TypeFeatureCollection)

	features, err := doc.Features()
	is.NoErr(err)
	is.Equal(len(features), 3)

	pt, ok := features[0].Geometry.(orb.Point)
	is.True(ok)
	is.Equal(pt, orb.Point{-122.33207, 47.60621})
	is.Equal(features[0].Properties["name"], "office")

	ls, ok := features[1].Geometry.(orb.LineString)
	is.True(ok)
	is.Equal(len(ls), 2)
	is.Equal(ls[1], orb.Point{-122.32, 47.61})

	poly, ok := features[2].Geometry.(orb.Polygon)
	is.True(ok)
	is.Equal(len(poly), 1)
	is.Equal(len(poly[0]), 4)
}

func TestParseFileMissing(t *testing.T) {
	is := is.New(t)

	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.geojson"))
	is.True(errors.Is(err, fs.ErrNotExist))
}

func TestParseRejectsBadDocuments(t *testing.T) {
	is := is.New(t)

	_, err := Parse([]byte(`{"type": "Point", "coordinates": [1, 2]`))
	is.True(errors.Is(err, ErrInvalidJSON))

	_, err = Parse([]byte(`{"coordinates": [1, 2]}`))
	is.True(errors.Is(err, ErrMissingType))

	_, err = Parse([]byte(`{"type": "GeometryCollection", "geometries": []}`))
	is.True(errors.Is(err, ErrUnsupportedType))

	_, err = Parse([]byte(`{"type": "Topology"}`))
	is.True(errors.Is(err, ErrUnsupportedType))
}

func TestBareGeometries(t *testing.T) {
	is := is.New(t)

	doc, err := Parse([]byte(`{"type": "MultiPolygon", "coordinates": [
		[[[0, 0], [1, 0], [1, 1], [0, 0]]],
		[[[2, 2], [3, 2], [3, 3], [2, 2]], [[2.1, 2.1], [2.2, 2.1], [2.2, 2.2], [2.1, 2.1]]]
	]}`))
	is.NoErr(err)

	features, err := doc.Features()
	is.NoErr(err)
	is.Equal(len(features), 1)

	mp, ok := features[0].Geometry.(orb.MultiPolygon)
	is.True(ok)
	is.Equal(len(mp), 2)
	is.Equal(len(mp[1]), 2)

	doc, err = Parse([]byte(`{"type": "MultiLineString", "coordinates": [[[0, 0], [1, 1]], [[2, 2], [3, 3]]]}`))
	is.NoErr(err)
	features, err = doc.Features()
	is.NoErr(err)
	mls, ok := features[0].Geometry.(orb.MultiLineString)
	is.True(ok)
	is.Equal(len(mls), 2)
}

func TestSingleFeature(t *testing.T) {
	is := is.New(t)

	doc, err := Parse([]byte(`{"type": "Feature", "properties": {"color": "blue"},
		"geometry": {"type": "MultiPoint", "coordinates": [[10, 20], [30, 40]]}}`))
	is.NoErr(err)

	features, err := doc.Features()
	is.NoErr(err)
	is.Equal(len(features), 1)
	is.Equal(features[0].Geometry, orb.MultiPoint{{10, 20}, {30, 40}})
	is.Equal(StyleColor(features[0].Properties, "red"), "blue")
}

func TestMalformedPositionIsReported(t *testing.T) {
	is := is.New(t)

	doc, err := Parse([]byte(`{"type": "LineString", "coordinates": [[1, 2], [3]]}`))
	is.NoErr(err)

	_, err = doc.Features()
	is.True(errors.Is(err, coords.ErrMalformed))

	doc, err = Parse([]byte(`{"type": "Point", "coordinates": "here"}`))
	is.NoErr(err)
	_, err = doc.Features()
	is.True(errors.Is(err, coords.ErrMalformed))
}

func TestFromFeatureCollection(t *testing.T) {
	is := is.New(t)

	fc := geojson.NewFeatureCollection()
	f := geojson.NewFeature(orb.Point{1, 2})
	f.Properties["size"] = 12
	fc.Append(f)
	fc.Append(geojson.NewFeature(orb.Collection{orb.Point{0, 0}}))

	features := FromFeatureCollection(fc)
	is.Equal(len(features), 1)
	is.Equal(StyleSize(features[0].Properties, 10), 12.0)

	is.Equal(len(FromFeatureCollection(nil)), 0)
}

func TestStyleLookups(t *testing.T) {
	is := is.New(t)

	props := map[string]any{
		"fill":         "#0000ff",
		"stroke":       "#ff0000",
		"width":        "4",
		"stroke-width": "wide",
		"marker-size":  nil,
		"point-size":   7,
	}

	is.Equal(StyleColor(props, "blue"), "#ff0000")
	is.Equal(StyleWidth(props, 2), 4.0)
	is.Equal(StyleSize(props, 10), 7.0)

	is.Equal(StyleColor(nil, "blue"), "blue")
	is.Equal(StyleWidth(map[string]any{}, 2), 2.0)
}

func TestMercatorRoundTrip(t *testing.T) {
	is := is.New(t)

	is.Equal(MercatorX(-180), 0.0)
	is.Equal(MercatorX(180), 1.0)
	is.True(math.Abs(MercatorY(0)-0.5) < 1e-12)
	is.True(MercatorY(60) < MercatorY(-60))

	for _, ll := range [][2]float64{{47.60621, -122.33207}, {-33.86, 151.2}, {0, 0}} {
		lat, lon := MercatorToLatLon(MercatorX(ll[1]), MercatorY(ll[0]))
		is.True(math.Abs(lat-ll[0]) < 1e-9)
		is.True(math.Abs(lon-ll[1]) < 1e-9)
	}

	lat, _ := MercatorToLatLon(0.5, -0.5)
	is.Equal(lat, MaxLat)
}

func TestMercatorMatchesTileGrid(t *testing.T) {
	is := is.New(t)

	const z = 12
	scale := float64(uint32(1) << z)
	for _, ll := range []orb.Point{{-122.33207, 47.60621}, {151.2, -33.86}, {-0.1276, 51.5072}} {
		tile := maptile.At(ll, z)
		is.Equal(uint32(MercatorX(ll.Lon())*scale), tile.X)
		is.Equal(uint32(MercatorY(ll.Lat())*scale), tile.Y)
	}

	// far south clamps to the bottom edge, far north to the top
	is.True(MercatorY(-89) > 0.999)
	is.True(MercatorY(89) < 0.001)

	lat, lon := MercatorToLatLon(0.25, 0.5)
	is.True(math.Abs(lon+90) < 1e-9)
	is.True(math.Abs(lat) < 1e-9)
}
