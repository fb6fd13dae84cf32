package admission

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
)

const (
	headerFile = "header.png"
	stampFile  = "stamp.png"

	// Header images are downscaled to this width before embedding; at A4
	// width that is roughly 150 dpi.
	maxHeaderWidth = 1200
	maxStampWidth  = 400
)

// LoadImage decodes an image file, downscales it to maxWidth pixels when
// wider, and re-encodes it as PNG.
func LoadImage(path, name string, maxWidth int) (*Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode image %s: %w", path, err)
	}
	b := img.Bounds()
	return &Image{Name: name, Data: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}

// LoadAssets reads the letterhead and stamp images from dir. A missing
// image is logged and left nil; pages are then drawn without it.
func LoadAssets(dir string, log zerolog.Logger) Assets {
	var assets Assets
	load := func(file, name string, maxWidth int) *Image {
		path := filepath.Join(dir, file)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			log.Warn().Str("path", path).Msg("Document image not found, pages will be drawn without it")
			return nil
		}
		img, err := LoadImage(path, name, maxWidth)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Document image unreadable, pages will be drawn without it")
			return nil
		}
		return img
	}
	assets.Header = load(headerFile, "header", maxHeaderWidth)
	assets.Stamp = load(stampFile, "stamp", maxStampWidth)
	return assets
}
