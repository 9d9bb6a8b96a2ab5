package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

// Handles are plain values: an id plus the backend that owns the object. Copies share
// the object; exactly one owner calls Release. A zero handle is invalid and every
// method on it does nothing.

type VertexBuffer struct {
	ID      uint32
	Size    int
	backend Backend
}

func (b VertexBuffer) Valid() bool {
	return b.ID != 0 && b.backend != nil
}

// SetData replaces the buffer contents immediately.
func (b *VertexBuffer) SetData(data []byte) {
	if !b.Valid() {
		return
	}
	if b.backend.SetBufferData(b.ID, data) {
		b.Size = len(data)
	}
}

// Update records a write of data at offset into cmd. The bytes are copied now. A
// write at offset 0 longer than the buffer grows it when cmd executes, and Size
// follows immediately; other handle copies keep the old size.
func (b *VertexBuffer) Update(cmd CommandBuffer, offset int, data []byte) {
	if !b.Valid() || !cmd.Recording() {
		return
	}
	cmd.UpdateVertexBuffer(*b, offset, data)
	if offset == 0 && len(data) > b.Size {
		b.Size = len(data)
	}
}

func (b *VertexBuffer) Release() {
	if !b.Valid() {
		return
	}
	b.backend.DestroyBuffer(b.ID)
	b.ID = 0
}

type IndexBuffer struct {
	ID        uint32
	Size      int
	Count     uint32
	IndexType metadata.IndexType
	backend   Backend
}

func (b IndexBuffer) Valid() bool {
	return b.ID != 0 && b.backend != nil
}

// SetData replaces the indices immediately. data holds elements of the buffer's IndexType.
func (b *IndexBuffer) SetData(data []byte) {
	if !b.Valid() {
		return
	}
	if b.backend.SetBufferData(b.ID, data) {
		b.Size = len(data)
		b.Count = uint32(len(data) / b.IndexType.Size())
	}
}

// Update is VertexBuffer.Update for indices; Count follows a growing write too.
func (b *IndexBuffer) Update(cmd CommandBuffer, offset int, data []byte) {
	if !b.Valid() || !cmd.Recording() {
		return
	}
	cmd.UpdateIndexBuffer(*b, offset, data)
	if offset == 0 && len(data) > b.Size {
		b.Size = len(data)
		b.Count = uint32(len(data) / b.IndexType.Size())
	}
}

func (b *IndexBuffer) Release() {
	if !b.Valid() {
		return
	}
	b.backend.DestroyBuffer(b.ID)
	b.ID = 0
}

type VertexArray struct {
	ID      uint32
	backend Backend
}

func (v VertexArray) Valid() bool {
	return v.ID != 0 && v.backend != nil
}

// Release deletes the vertex array only; the buffers it references stay alive.
func (v *VertexArray) Release() {
	if !v.Valid() {
		return
	}
	v.backend.DestroyVertexArray(v.ID)
	v.ID = 0
}

// Shader is a linked vertex/fragment program. Uniform setters record into a command
// buffer and apply when it executes.
type Shader struct {
	ID      uint32
	backend Backend
}

func (s Shader) Valid() bool {
	return s.ID != 0 && s.backend != nil
}

func (s Shader) SetMat4(cmd CommandBuffer, name string, m mgl32.Mat4) {
	if s.Valid() {
		cmd.record(&metadata.SetUniformMat4{Shader: s.ID, Name: name, Value: m})
	}
}

func (s Shader) SetVec2(cmd CommandBuffer, name string, v mgl32.Vec2) {
	if s.Valid() {
		cmd.record(&metadata.SetUniformVec2{Shader: s.ID, Name: name, Value: v})
	}
}

func (s Shader) SetVec3(cmd CommandBuffer, name string, v mgl32.Vec3) {
	if s.Valid() {
		cmd.record(&metadata.SetUniformVec3{Shader: s.ID, Name: name, Value: v})
	}
}

func (s Shader) SetVec4(cmd CommandBuffer, name string, v mgl32.Vec4) {
	if s.Valid() {
		cmd.record(&metadata.SetUniformVec4{Shader: s.ID, Name: name, Value: v})
	}
}

func (s Shader) SetInt(cmd CommandBuffer, name string, v int32) {
	if s.Valid() {
		cmd.record(&metadata.SetUniformInt{Shader: s.ID, Name: name, Value: v})
	}
}

func (s Shader) SetFloat(cmd CommandBuffer, name string, v float32) {
	if s.Valid() {
		cmd.record(&metadata.SetUniformFloat{Shader: s.ID, Name: name, Value: v})
	}
}

func (s *Shader) Release() {
	if !s.Valid() {
		return
	}
	s.backend.DestroyShader(s.ID)
	s.ID = 0
}

// Texture2D is a colour or depth texture.
type Texture2D struct {
	ID      uint32
	Width   uint32
	Height  uint32
	Format  metadata.TextureFormat
	backend Backend
}

func (t Texture2D) Valid() bool {
	return t.ID != 0 && t.backend != nil
}

// SetData replaces the whole image. pixels must be Width*Height texels of Format.
func (t Texture2D) SetData(pixels []byte) {
	if t.Valid() {
		t.backend.SetTexture2DData(t.ID, pixels)
	}
}

func (t *Texture2D) Release() {
	if !t.Valid() {
		return
	}
	t.backend.DestroyTexture(t.ID)
	t.ID = 0
}

type TextureCube struct {
	ID      uint32
	Size    uint32
	Format  metadata.TextureFormat
	backend Backend
}

func (t TextureCube) Valid() bool {
	return t.ID != 0 && t.backend != nil
}

func (t *TextureCube) Release() {
	if !t.Valid() {
		return
	}
	t.backend.DestroyTexture(t.ID)
	t.ID = 0
}

// Framebuffer owns its attachments: releasing it releases them.
type Framebuffer struct {
	ID      uint32
	Width   uint32
	Height  uint32
	Colour  []Texture2D
	Depth   Texture2D
	backend Backend
}

func (f Framebuffer) Valid() bool {
	return f.ID != 0 && f.backend != nil
}

// ColourAttachment returns attachment i, or an invalid texture.
func (f Framebuffer) ColourAttachment(i int) Texture2D {
	if i < 0 || i >= len(f.Colour) {
		return Texture2D{}
	}
	return f.Colour[i]
}

// Release destroys the framebuffer and its attachments. Only this handle drops the
// attachments; the Colour slice of a copy is left alone since copies share it.
func (f *Framebuffer) Release() {
	if !f.Valid() {
		return
	}
	f.backend.DestroyFramebuffer(f.ID)
	f.ID = 0
	f.Colour = nil
	f.Depth = Texture2D{}
}
