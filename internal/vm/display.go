package vm

// Display dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// Bitmap is the monochrome display state, indexed by row then column.
type Bitmap [Height][Width]bool

// Pixel returns whether the pixel at the given position is set.
// Positions outside the display are reported as unset.
func (b *Bitmap) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return b[y][x]
}

// Count returns the number of set pixels.
func (b *Bitmap) Count() int {
	var n int
	for _, row := range b {
		for _, on := range row {
			if on {
				n++
			}
		}
	}
	return n
}

// display is the compositor, the only writer of the shadow bitmap.
// Every change is forwarded to the sink.
type display struct {
	bitmap Bitmap
	sink   Sink
}

func (d *display) clear() {
	d.bitmap = Bitmap{}
	d.sink.Clear()
}

// blit XORs the sprite rows into the bitmap with the origin wrapped onto the
// screen. Sprite pixels that extend past the right or bottom edge are clipped.
// It returns whether any set pixel was turned off.
func (d *display) blit(x, y byte, rows []byte) bool {
	originX := int(x) % Width
	originY := int(y) % Height
	var collision bool

	for row, bits := range rows {
		py := originY + row
		if py >= Height {
			break
		}

		for col := range 8 {
			px := originX + col
			if px >= Width {
				break
			}
			if bits&(0x80>>col) == 0 {
				continue
			}

			on := d.bitmap[py][px]
			if on {
				collision = true
			}
			d.bitmap[py][px] = !on
			d.sink.DrawPixel(px, py, !on)
		}
	}

	return collision
}
