package loaders

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	// 2x2: red, green on the top row; blue, white below
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	img.Set(1, 0, color.NRGBA{0, 255, 0, 255})
	img.Set(0, 1, color.NRGBA{0, 0, 255, 255})
	img.Set(1, 1, color.NRGBA{255, 255, 255, 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestLoadImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checker.png")
	writePNG(t, path)

	img, err := LoadImage(path, false)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), img.Width)
	assert.Equal(t, uint32(2), img.Height)
	require.Len(t, img.Pixels, 16)
	assert.Equal(t, []byte{255, 0, 0, 255}, img.Pixels[0:4])
	assert.Equal(t, []byte{255, 255, 255, 255}, img.Pixels[12:16])
}

func TestLoadImageFlipY(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checker.png")
	writePNG(t, path)

	img, err := (&ImageLoader{FlipY: true}).Load(path)
	require.NoError(t, err)
	pixels := img.(*Image).Pixels
	assert.Equal(t, []byte{0, 0, 255, 255}, pixels[0:4])
	assert.Equal(t, []byte{0, 255, 0, 255}, pixels[12:16])
}

func TestDecodeImageRejectsGarbage(t *testing.T) {
	_, err := DecodeImage(bytes.NewReader([]byte("not an image")), false)
	assert.Error(t, err)
}

func TestLoadShaderSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quad.vert")
	require.NoError(t, os.WriteFile(path, []byte("#version 450 core\nvoid main() {}\n"), 0o644))

	src, err := LoadShaderSource(path)
	require.NoError(t, err)
	assert.Contains(t, src, "#version 450 core")

	empty := filepath.Join(dir, "empty.frag")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o644))
	_, err = (&ShaderLoader{}).Load(empty)
	assert.ErrorIs(t, err, ErrEmptyAsset)

	_, err = LoadShaderSource(filepath.Join(dir, "missing.vert"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
