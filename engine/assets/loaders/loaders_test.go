package loaders

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestShaderLoader(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "flat.vert"), "#version 410 core\nvoid main() {}\n")
	writeFile(t, filepath.Join(dir, "flat.frag"), "#version 410 core\nout vec4 colour;\nvoid main() { colour = vec4(1); }\n")

	var sl ShaderLoader
	src, err := sl.Load(dir, "flat")
	require.NoError(t, err)
	assert.Equal(t, "flat", src.Name)
	assert.Contains(t, src.Vertex, "#version 410 core")
	assert.Contains(t, src.Fragment, "out vec4 colour")
}

func TestShaderLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	var sl ShaderLoader

	writeFile(t, filepath.Join(dir, "half.vert"), "void main() {}")
	_, err := sl.Load(dir, "half")
	assert.ErrorIs(t, err, os.ErrNotExist)

	writeFile(t, filepath.Join(dir, "blank.vert"), "void main() {}")
	writeFile(t, filepath.Join(dir, "blank.frag"), " \n\t")
	_, err = sl.Load(dir, "blank")
	assert.ErrorContains(t, err, "is empty")
}

func TestImageLoader(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	// opaque, so bmp round trips without an alpha channel
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	img.Set(2, 1, color.RGBA{R: 255, A: 255})

	encoders := map[string]func(*os.File, image.Image) error{
		"red.png": func(f *os.File, m image.Image) error { return png.Encode(f, m) },
		"red.bmp": func(f *os.File, m image.Image) error { return bmp.Encode(f, m) },
	}
	for name, encode := range encoders {
		f, err := os.Create(filepath.Join(dir, name))
		require.NoError(t, err)
		require.NoError(t, encode(f, img))
		require.NoError(t, f.Close())

		var il ImageLoader
		loaded, err := il.Load(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Equal(t, image.Rect(0, 0, 3, 2), loaded.Bounds(), name)
		r, _, _, a := loaded.At(2, 1).RGBA()
		assert.Equal(t, uint32(0xffff), r, name)
		assert.Equal(t, uint32(0xffff), a, name)
	}
}

func TestImageLoaderRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	writeFile(t, path, "not an image")

	var il ImageLoader
	_, err := il.Load(path)
	assert.Error(t, err)
}
