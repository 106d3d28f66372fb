package apps

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestDecodeIconScalesToRequestedSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "icon.png")
	writeTestPNG(t, path, 64, 64)

	out, err := DecodeIcon(path, 32)
	require.NoError(t, err)
	require.Equal(t, 32, out.Bounds().Dx())
	require.Equal(t, 32, out.Bounds().Dy())
}

func TestDecodeIconMissingFileErrors(t *testing.T) {
	_, err := DecodeIcon("/nonexistent/icon.png", 32)
	require.Error(t, err)
}
