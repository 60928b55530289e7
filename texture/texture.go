// Package texture loads the backdrop drawn behind the solid.
package texture

import (
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/echoflaresat/tiff"
	"golang.org/x/exp/mmap"

	_ "image/jpeg" // register JPEG format with image.Decode
	_ "image/png"  // register PNG format with image.Decode
)

// Load decodes the image at path. TIFF is tried first, then any format
// registered with image.Decode.
func Load(path string) (image.Image, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer m.Close()

	return decode(io.NewSectionReader(m, 0, int64(m.Len())), path)
}

func decode(r *io.SectionReader, name string) (image.Image, error) {
	img, err := tiff.Decode(r)
	if err == nil {
		return img, nil
	}
	slog.Debug("not a TIFF, trying image codecs", "path", name, "error", err)

	// fallback to image codecs
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	slog.Debug("loaded backdrop", "path", name, "format", format, "bounds", img.Bounds())
	return img, nil
}
