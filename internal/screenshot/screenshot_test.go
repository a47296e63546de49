package screenshot

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
)

func TestWrite(t *testing.T) {
	var bm vm.Bitmap
	bm[0][0] = true
	bm[31][63] = true

	var buf bytes.Buffer
	assert.NoError(t, Write(&buf, bm, 2))

	img, err := png.Decode(&buf)
	assert.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 128, 64), img.Bounds())

	assertWhite(t, img, 0, 0)
	assertWhite(t, img, 1, 1)
	assertBlack(t, img, 2, 0)
	assertWhite(t, img, 127, 63)
	assertBlack(t, img, 64, 32)
}

func TestWriteMinimumScale(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Write(&buf, vm.Bitmap{}, 0))

	img, err := png.Decode(&buf)
	assert.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, vm.Width, vm.Height), img.Bounds())
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "screen.png")

	var bm vm.Bitmap
	bm[5][10] = true
	assert.NoError(t, Save(path, bm, 1))

	file, err := os.Open(path)
	assert.NoError(t, err)
	defer func() { _ = file.Close() }()

	img, err := png.Decode(file)
	assert.NoError(t, err)
	assertWhite(t, img, 10, 5)
	assertBlack(t, img, 11, 5)
}

func TestSaveInvalidPath(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "missing", "screen.png"), vm.Bitmap{}, 1)
	assert.ErrorContains(t, err, "creating screenshot file")
}

func assertWhite(t *testing.T, img image.Image, x, y int) {
	t.Helper()
	r, g, b, _ := img.At(x, y).RGBA()
	assert.True(t, r == 0xFFFF && g == 0xFFFF && b == 0xFFFF)
}

func assertBlack(t *testing.T, img image.Image, x, y int) {
	t.Helper()
	r, g, b, _ := img.At(x, y).RGBA()
	assert.True(t, r == 0 && g == 0 && b == 0)
}
