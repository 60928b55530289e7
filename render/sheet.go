package render

import (
	"fmt"
	"image"
	"image/draw"
)

// Sheet lays equally sized frames out on a grid with cols columns, row by
// row.
func Sheet(frames []*image.NRGBA, cols int) (*image.NRGBA, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames")
	}
	if cols <= 0 {
		return nil, fmt.Errorf("invalid column count %d", cols)
	}
	if cols > len(frames) {
		cols = len(frames)
	}
	rows := (len(frames) + cols - 1) / cols

	tileW := frames[0].Bounds().Dx()
	tileH := frames[0].Bounds().Dy()
	canvas := image.NewNRGBA(image.Rect(0, 0, cols*tileW, rows*tileH))

	for idx, tile := range frames {
		if tile.Bounds().Dx() != tileW || tile.Bounds().Dy() != tileH {
			return nil, fmt.Errorf("frame %d size mismatch: expected %dx%d, got %dx%d",
				idx, tileW, tileH, tile.Bounds().Dx(), tile.Bounds().Dy())
		}
		x := (idx % cols) * tileW
		y := (idx / cols) * tileH
		draw.Draw(canvas, image.Rect(x, y, x+tileW, y+tileH), tile, tile.Bounds().Min, draw.Src)
	}
	return canvas, nil
}
