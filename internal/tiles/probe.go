package tiles

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	sm "github.com/flopp/go-staticmaps"
	"github.com/rs/zerolog/log"
	"github.com/woozymasta/mapplot/internal/imageio"
)

var (
	ErrTileNotFound = errors.New("tile not found")
	ErrEmptyTile    = errors.New("empty tile")
)

// Probe downloads one tile and checks that it decodes to a real image.
func Probe(ctx context.Context, client *http.Client, tp *sm.TileProvider, z, x, y int) error {
	url := URL(tp, z, x, y)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		log.Trace().Str("url", url).Msg("Tile not found (404)")
		return fmt.Errorf("%w: %s", ErrTileNotFound, url)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	img, _, err := imageio.Decode(bytes.NewReader(body))
	if err != nil {
		return err
	}

	// servers answer out-of-range tiles with 1px images
	if img.Bounds().Dx() <= 1 {
		return fmt.Errorf("%w: %s", ErrEmptyTile, url)
	}

	return nil
}
