// Package screenshot stores the display state as PNG image.
package screenshot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/vm"
)

// Write encodes the bitmap as PNG image with every pixel scaled to a square
// of scale by scale image pixels.
func Write(w io.Writer, bm vm.Bitmap, scale int) error {
	scale = max(scale, 1)
	img := image.NewGray(image.Rect(0, 0, vm.Width*scale, vm.Height*scale))

	for y := range vm.Height {
		for x := range vm.Width {
			if !bm.Pixel(x, y) {
				continue
			}
			for dy := range scale {
				for dx := range scale {
					img.SetGray(x*scale+dx, y*scale+dy, color.Gray{Y: 0xFF})
				}
			}
		}
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// Save writes the bitmap as PNG image to the given file.
func Save(path string, bm vm.Bitmap, scale int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating screenshot file %s: %w", path, err)
	}

	if err := Write(file, bm, scale); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing screenshot file %s: %w", path, err)
	}
	return nil
}
