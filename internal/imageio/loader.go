// Package imageio reads image files from disk into domain images.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"go.uber.org/zap"

	"pixview/internal/domain"
)

// supported lists the sniffed formats a decoder is registered for
var supported = map[string]bool{
	"png":  true,
	"gif":  true,
	"jpg":  true,
	"bmp":  true,
	"tif":  true,
	"webp": true,
}

// Loader decodes image files
type Loader struct {
	log *zap.Logger
}

// NewLoader creates a loader
func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{log: log}
}

// Load reads and decodes path. The format is taken from the file content,
// not the extension. A missing file yields domain.ErrNotFound, anything
// that is not a supported, decodable image yields domain.ErrDecode.
func (l *Loader) Load(path string) (*domain.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown || !supported[kind.Extension] {
		return nil, fmt.Errorf("load %s: unrecognised content: %w", path, domain.ErrDecode)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load %s: %v: %w", path, err, domain.ErrDecode)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("load %s: empty image: %w", path, domain.ErrDecode)
	}

	l.log.Debug("Decoded image",
		zap.String("path", path),
		zap.String("format", format),
		zap.Int("width", bounds.Dx()),
		zap.Int("height", bounds.Dy()))

	return &domain.Image{
		Path:   path,
		Format: format,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pixels: imaging.Clone(img),
	}, nil
}
