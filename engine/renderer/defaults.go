package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

// CubeVertex is the vertex format of the default cube.
type CubeVertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// CubeLayout describes CubeVertex: position at location 0, normal at 1, uv at 2.
var CubeLayout = metadata.VertexLayout{
	Stride: 32,
	Attributes: []metadata.VertexAttribute{
		{Location: 0, Components: 3, Type: metadata.VertexAttributeFloat32, Offset: 0},
		{Location: 1, Components: 3, Type: metadata.VertexAttributeFloat32, Offset: 12},
		{Location: 2, Components: 2, Type: metadata.VertexAttributeFloat32, Offset: 24},
	},
}

// Defaults are fallback resources owned by a Context: a white texture for untextured
// materials, a black cube map for missing environments and a unit cube.
type Defaults struct {
	White     Texture2D
	BlackCube TextureCube

	CubeVertices VertexBuffer
	CubeIndices  IndexBuffer
	Cube         VertexArray
}

// Defaults returns the set made by CreateDefaults, or nil before it.
func (c *Context) Defaults() *Defaults {
	return c.defaults
}

// CreateDefaults makes the default resource set and hands it to the Context, which
// releases it at Shutdown. The engine calls it once after the Context is up; later
// calls return the existing set.
func (c *Context) CreateDefaults() *Defaults {
	if c.defaults != nil || !c.alive() {
		return c.defaults
	}
	d := &Defaults{}
	d.White = c.CreateTexture2D(metadata.TextureConfig{
		Name:          "default-white",
		Width:         1,
		Height:        1,
		FilterMinify:  metadata.TextureFilterModeNearest,
		FilterMagnify: metadata.TextureFilterModeNearest,
	}, []byte{255, 255, 255, 255})

	var faces [metadata.CubeFaceCount][]byte
	for i := range faces {
		faces[i] = []byte{0, 0, 0, 255}
	}
	d.BlackCube = c.CreateTextureCube(metadata.TextureConfig{Name: "default-black-cube", Width: 1, Height: 1}, faces)

	vertices, indices := UnitCube()
	d.CubeVertices = c.CreateVertexBuffer(AsBytes(vertices), metadata.BufferUsageStatic)
	d.CubeIndices = c.CreateIndexBuffer16(indices, metadata.BufferUsageStatic)
	d.Cube = c.CreateVertexArray(d.CubeVertices, d.CubeIndices, CubeLayout)

	if !d.White.Valid() || !d.BlackCube.Valid() || !d.Cube.Valid() {
		core.LogError("failed to create default resources")
	}
	c.defaults = d
	return d
}

func (d *Defaults) release() {
	d.Cube.Release()
	d.CubeIndices.Release()
	d.CubeVertices.Release()
	d.BlackCube.Release()
	d.White.Release()
}

// UnitCube returns a cube of side 1 centred on the origin, four vertices per face
// with outward normals and counter clockwise triangles.
func UnitCube() ([]CubeVertex, []uint16) {
	faces := [6]struct{ normal, u, v mgl32.Vec3 }{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	}
	corners := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	vertices := make([]CubeVertex, 0, 24)
	indices := make([]uint16, 0, 36)
	for _, f := range faces {
		base := uint16(len(vertices))
		centre := f.normal.Mul(0.5)
		for _, uv := range corners {
			p := centre.Add(f.u.Mul(uv[0] - 0.5)).Add(f.v.Mul(uv[1] - 0.5))
			vertices = append(vertices, CubeVertex{Position: p, Normal: f.normal, UV: uv})
		}
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}
	return vertices, indices
}
