package renderer

import (
	"image"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
	"golang.org/x/image/draw"
)

// ImageToRGBA converts img to tightly packed RGBA8 rows, bottom row first as OpenGL
// expects texture data.
func ImageToRGBA(img image.Image) (pixels []byte, width, height uint32) {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return flipRows(rgba), uint32(bounds.Dx()), uint32(bounds.Dy())
}

func flipRows(img *image.RGBA) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	row := w * 4
	out := make([]byte, row*h)
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+row]
		copy(out[(h-1-y)*row:], src)
	}
	return out
}

// CreateTexture2DFromImage uploads img as an RGBA8 texture.
func (c *Context) CreateTexture2DFromImage(name string, img image.Image, mipmapped bool) Texture2D {
	if img == nil || img.Bounds().Empty() {
		core.LogError("CreateTexture2DFromImage: %q has no pixels", name)
		return Texture2D{}
	}
	pixels, width, height := ImageToRGBA(img)
	return c.CreateTexture2D(metadata.TextureConfig{
		Name:      name,
		Width:     width,
		Height:    height,
		Format:    metadata.TextureFormatRGBA8,
		Mipmapped: mipmapped,
	}, pixels)
}

// CreateTextureCubeFromImages uploads six faces. Faces are scaled to the size of the
// first one when they differ.
func (c *Context) CreateTextureCubeFromImages(name string, faces [metadata.CubeFaceCount]image.Image) TextureCube {
	if faces[0] == nil || faces[0].Bounds().Empty() {
		core.LogError("CreateTextureCubeFromImages: %q first face has no pixels", name)
		return TextureCube{}
	}
	size := faces[0].Bounds().Dx()
	var data [metadata.CubeFaceCount][]byte
	for i, face := range faces {
		if face == nil {
			core.LogError("CreateTextureCubeFromImages: %q face %d missing", name, i)
			return TextureCube{}
		}
		dst := image.NewRGBA(image.Rect(0, 0, size, size))
		if b := face.Bounds(); b.Dx() == size && b.Dy() == size {
			draw.Draw(dst, dst.Bounds(), face, b.Min, draw.Src)
		} else {
			draw.ApproxBiLinear.Scale(dst, dst.Bounds(), face, b, draw.Src, nil)
		}
		// cube map faces keep the top row first
		data[i] = dst.Pix
	}
	return c.CreateTextureCube(metadata.TextureConfig{
		Name:    name,
		Width:   uint32(size),
		Height:  uint32(size),
		Format:  metadata.TextureFormatRGBA8,
		RepeatU: metadata.TextureRepeatClampToEdge,
		RepeatV: metadata.TextureRepeatClampToEdge,
		RepeatW: metadata.TextureRepeatClampToEdge,
	}, data)
}
