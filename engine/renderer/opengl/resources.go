package opengl

import (
	"fmt"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

// CreateVertexBuffer uploads data into a new ARRAY_BUFFER. Returns 0 on failure.
func (b *Backend) CreateVertexBuffer(data []byte, usage metadata.BufferUsage) uint32 {
	return b.createBuffer(metadata.ResourceVertexBuffer, data, usage)
}

// CreateIndexBuffer uploads data into a new element buffer. The upload goes through
// COPY_WRITE_BUFFER so the element binding of whichever vertex array is bound stays intact.
func (b *Backend) CreateIndexBuffer(data []byte, usage metadata.BufferUsage) uint32 {
	return b.createBuffer(metadata.ResourceIndexBuffer, data, usage)
}

func (b *Backend) createBuffer(kind metadata.ResourceKind, data []byte, usage metadata.BufferUsage) uint32 {
	id := b.driver.GenBuffer()
	if id == 0 {
		core.LogError("failed to create %s", kind)
		return 0
	}
	glUsage := bufferUsage(usage)
	b.driver.BindBuffer(COPY_WRITE_BUFFER, id)
	b.driver.BufferData(COPY_WRITE_BUFFER, len(data), data, glUsage)
	b.driver.BindBuffer(COPY_WRITE_BUFFER, 0)
	b.buffers[id] = &bufferInfo{
		kind:  kind,
		size:  len(data),
		usage: glUsage,
		label: label(kind, ""),
	}
	return id
}

// SetBufferData replaces the whole store of buffer id with data, resizing it as needed.
func (b *Backend) SetBufferData(id uint32, data []byte) bool {
	info, ok := b.buffers[id]
	if !ok {
		core.LogDebug("SetBufferData on unknown buffer %d", id)
		return false
	}
	b.driver.BindBuffer(COPY_WRITE_BUFFER, id)
	b.driver.BufferData(COPY_WRITE_BUFFER, len(data), data, info.usage)
	b.driver.BindBuffer(COPY_WRITE_BUFFER, 0)
	info.size = len(data)
	return true
}

// updateBuffer writes data at offset. A write past the end grows the buffer when it
// starts at offset 0 and is clipped otherwise.
func (b *Backend) updateBuffer(id uint32, offset int, data []byte) {
	info, ok := b.buffers[id]
	if !ok {
		core.LogWarn("deferred update of unknown buffer %d dropped", id)
		return
	}
	if offset < 0 || len(data) == 0 {
		return
	}
	b.driver.BindBuffer(COPY_WRITE_BUFFER, id)
	defer b.driver.BindBuffer(COPY_WRITE_BUFFER, 0)
	if offset+len(data) > info.size {
		if offset == 0 {
			b.driver.BufferData(COPY_WRITE_BUFFER, len(data), data, info.usage)
			info.size = len(data)
			return
		}
		if offset >= info.size {
			core.LogWarn("update of %s %d at offset %d is past its end (%d bytes), dropped", info.kind, id, offset, info.size)
			return
		}
		core.LogWarn("update of %s %d clipped from %d to %d bytes", info.kind, id, len(data), info.size-offset)
		data = data[:info.size-offset]
	}
	b.driver.BufferSubData(COPY_WRITE_BUFFER, offset, data)
}

func (b *Backend) DestroyBuffer(id uint32) {
	if _, ok := b.buffers[id]; !ok {
		return
	}
	b.driver.DeleteBuffer(id)
	delete(b.buffers, id)
}

// CreateVertexArray captures the attribute layout of vertexBuffer and, when indexBuffer
// is not 0, its element binding.
func (b *Backend) CreateVertexArray(vertexBuffer, indexBuffer uint32, layout metadata.VertexLayout) uint32 {
	if _, ok := b.buffers[vertexBuffer]; !ok {
		core.LogError("cannot create vertex array: unknown vertex buffer %d", vertexBuffer)
		return 0
	}
	if indexBuffer != 0 {
		if _, ok := b.buffers[indexBuffer]; !ok {
			core.LogError("cannot create vertex array: unknown index buffer %d", indexBuffer)
			return 0
		}
	}
	id := b.driver.GenVertexArray()
	if id == 0 {
		core.LogError("failed to create vertex array")
		return 0
	}
	stride := layout.EffectiveStride()
	b.driver.BindVertexArray(id)
	b.driver.BindBuffer(ARRAY_BUFFER, vertexBuffer)
	for _, a := range layout.Attributes {
		b.driver.EnableVertexAttribArray(a.Location)
		if a.Type == metadata.VertexAttributeInt32 && !a.Normalized {
			b.driver.VertexAttribIPointer(a.Location, a.Components, attributeType(a.Type), stride, a.Offset)
			continue
		}
		b.driver.VertexAttribPointer(a.Location, a.Components, attributeType(a.Type), a.Normalized, stride, a.Offset)
	}
	if indexBuffer != 0 {
		b.driver.BindBuffer(ELEMENT_ARRAY_BUFFER, indexBuffer)
	}
	b.driver.BindVertexArray(0)
	b.driver.BindBuffer(ARRAY_BUFFER, 0)
	b.vertexArrays[id] = &vertexArrayInfo{
		vertexBuffer: vertexBuffer,
		indexBuffer:  indexBuffer,
		label:        label(metadata.ResourceVertexArray, ""),
	}
	return id
}

func (b *Backend) DestroyVertexArray(id uint32) {
	if _, ok := b.vertexArrays[id]; !ok {
		return
	}
	b.driver.DeleteVertexArray(id)
	delete(b.vertexArrays, id)
}

// CreateShader compiles and links a vertex/fragment program. Compile or link errors are
// logged with the driver's info log and 0 is returned.
func (b *Backend) CreateShader(vertexSource, fragmentSource string) uint32 {
	vs, ok := b.compileShader(VERTEX_SHADER, vertexSource)
	if !ok {
		return 0
	}
	fs, ok := b.compileShader(FRAGMENT_SHADER, fragmentSource)
	if !ok {
		b.driver.DeleteShader(vs)
		return 0
	}
	program := b.driver.CreateProgram()
	b.driver.AttachShader(program, vs)
	b.driver.AttachShader(program, fs)
	b.driver.LinkProgram(program)
	// the program keeps the compiled stages alive
	b.driver.DeleteShader(vs)
	b.driver.DeleteShader(fs)
	if linked, log := b.driver.ProgramStatus(program); !linked {
		core.LogError("failed to link shader program: %s", log)
		b.driver.DeleteProgram(program)
		return 0
	}
	b.shaders[program] = &shaderInfo{
		uniforms: make(map[string]int32),
		label:    label(metadata.ResourceShader, ""),
	}
	return program
}

func (b *Backend) compileShader(xtype uint32, source string) (uint32, bool) {
	shader := b.driver.CreateShader(xtype)
	b.driver.ShaderSource(shader, source)
	b.driver.CompileShader(shader)
	if compiled, log := b.driver.ShaderStatus(shader); !compiled {
		stage := "vertex"
		if xtype == FRAGMENT_SHADER {
			stage = "fragment"
		}
		core.LogError("failed to compile %s shader: %s", stage, log)
		b.driver.DeleteShader(shader)
		return 0, false
	}
	return shader, true
}

func (b *Backend) DestroyShader(id uint32) {
	if _, ok := b.shaders[id]; !ok {
		return
	}
	b.driver.DeleteProgram(id)
	delete(b.shaders, id)
}

// uniformLocation caches lookups, misses included, so an absent uniform costs one query.
func (b *Backend) uniformLocation(program uint32, name string) (int32, bool) {
	info, ok := b.shaders[program]
	if !ok {
		return -1, false
	}
	loc, ok := info.uniforms[name]
	if !ok {
		loc = b.driver.GetUniformLocation(program, name)
		info.uniforms[name] = loc
		if loc < 0 {
			core.LogDebug("uniform %q not found in shader %d", name, program)
		}
	}
	return loc, loc >= 0
}

// CreateTexture2D creates a 2D texture, or a depth texture when the format is a depth
// format. pixels may be nil to allocate storage only.
func (b *Backend) CreateTexture2D(cfg metadata.TextureConfig, pixels []byte) uint32 {
	if cfg.Width == 0 || cfg.Height == 0 {
		core.LogError("cannot create texture %q with size %dx%d", cfg.Name, cfg.Width, cfg.Height)
		return 0
	}
	if !validPixels(cfg, pixels) {
		core.LogError("texture %q expects %d bytes of pixel data, got %d", cfg.Name, expectedPixels(cfg), len(pixels))
		return 0
	}
	id := b.driver.GenTexture()
	if id == 0 {
		core.LogError("failed to create texture %q", cfg.Name)
		return 0
	}
	internal, format, xtype := textureFormat(cfg.Format)
	b.driver.BindTexture(TEXTURE_2D, id)
	b.driver.TexImage2D(TEXTURE_2D, 0, internal, int32(cfg.Width), int32(cfg.Height), format, xtype, pixels)
	b.setSampler(TEXTURE_2D, cfg)
	if cfg.Mipmapped && pixels != nil && !cfg.Format.IsDepth() {
		b.driver.GenerateMipmap(TEXTURE_2D)
	}
	b.driver.BindTexture(TEXTURE_2D, 0)
	cfg.Name = label(metadata.ResourceTexture, cfg.Name)
	b.textures[id] = &textureInfo{target: TEXTURE_2D, config: cfg}
	return id
}

// SetTexture2DData replaces the full image of a 2D texture.
func (b *Backend) SetTexture2DData(id uint32, pixels []byte) bool {
	info, ok := b.textures[id]
	if !ok || info.target != TEXTURE_2D {
		core.LogDebug("SetTexture2DData on unknown texture %d", id)
		return false
	}
	if pixels == nil || !validPixels(info.config, pixels) {
		core.LogError("texture %q expects %d bytes of pixel data, got %d", info.config.Name, expectedPixels(info.config), len(pixels))
		return false
	}
	_, format, xtype := textureFormat(info.config.Format)
	b.driver.BindTexture(TEXTURE_2D, id)
	b.driver.TexSubImage2D(TEXTURE_2D, 0, 0, 0, int32(info.config.Width), int32(info.config.Height), format, xtype, pixels)
	if info.config.Mipmapped && !info.config.Format.IsDepth() {
		b.driver.GenerateMipmap(TEXTURE_2D)
	}
	b.driver.BindTexture(TEXTURE_2D, 0)
	return true
}

// CreateTextureCube creates a cube map from six faces ordered +X, -X, +Y, -Y, +Z, -Z.
func (b *Backend) CreateTextureCube(cfg metadata.TextureConfig, faces [metadata.CubeFaceCount][]byte) uint32 {
	if cfg.Width == 0 || cfg.Height == 0 {
		core.LogError("cannot create cube texture %q with size %dx%d", cfg.Name, cfg.Width, cfg.Height)
		return 0
	}
	for i, face := range faces {
		if !validPixels(cfg, face) {
			core.LogError("cube texture %q face %d expects %d bytes, got %d", cfg.Name, i, expectedPixels(cfg), len(face))
			return 0
		}
	}
	id := b.driver.GenTexture()
	if id == 0 {
		core.LogError("failed to create cube texture %q", cfg.Name)
		return 0
	}
	internal, format, xtype := textureFormat(cfg.Format)
	b.driver.BindTexture(TEXTURE_CUBE_MAP, id)
	for i, face := range faces {
		b.driver.TexImage2D(TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, internal, int32(cfg.Width), int32(cfg.Height), format, xtype, face)
	}
	b.setSampler(TEXTURE_CUBE_MAP, cfg)
	b.driver.TexParameteri(TEXTURE_CUBE_MAP, TEXTURE_WRAP_R, textureRepeat(cfg.RepeatW))
	if cfg.Mipmapped {
		b.driver.GenerateMipmap(TEXTURE_CUBE_MAP)
	}
	b.driver.BindTexture(TEXTURE_CUBE_MAP, 0)
	cfg.Name = label(metadata.ResourceTexture, cfg.Name)
	b.textures[id] = &textureInfo{target: TEXTURE_CUBE_MAP, config: cfg}
	return id
}

func (b *Backend) setSampler(target uint32, cfg metadata.TextureConfig) {
	mipmapped := cfg.Mipmapped && !cfg.Format.IsDepth()
	b.driver.TexParameteri(target, TEXTURE_MIN_FILTER, minFilter(cfg.FilterMinify, mipmapped))
	b.driver.TexParameteri(target, TEXTURE_MAG_FILTER, magFilter(cfg.FilterMagnify))
	b.driver.TexParameteri(target, TEXTURE_WRAP_S, textureRepeat(cfg.RepeatU))
	b.driver.TexParameteri(target, TEXTURE_WRAP_T, textureRepeat(cfg.RepeatV))
}

func expectedPixels(cfg metadata.TextureConfig) int {
	return int(cfg.Width) * int(cfg.Height) * cfg.Format.BytesPerPixel()
}

func validPixels(cfg metadata.TextureConfig, pixels []byte) bool {
	return pixels == nil || len(pixels) == expectedPixels(cfg)
}

// DestroyTexture deletes a standalone texture. Framebuffer attachments are destroyed
// with their framebuffer.
func (b *Backend) DestroyTexture(id uint32) {
	info, ok := b.textures[id]
	if !ok {
		return
	}
	if info.owner != 0 {
		if _, alive := b.framebuffers[info.owner]; alive {
			core.LogWarn("texture %q is an attachment of framebuffer %d; destroy the framebuffer instead", info.config.Name, info.owner)
			return
		}
	}
	b.driver.DeleteTexture(id)
	delete(b.textures, id)
}

// CreateFramebuffer creates a framebuffer with its colour attachments and optional
// depth attachment. Returns zeros when the framebuffer is incomplete.
func (b *Backend) CreateFramebuffer(cfg metadata.FramebufferConfig) (uint32, []uint32, uint32) {
	if cfg.Width == 0 || cfg.Height == 0 {
		core.LogError("cannot create framebuffer %q with size %dx%d", cfg.Name, cfg.Width, cfg.Height)
		return 0, nil, 0
	}
	if cfg.ColourAttachments == 0 && !cfg.Depth {
		core.LogError("framebuffer %q has no attachments", cfg.Name)
		return 0, nil, 0
	}
	name := label(metadata.ResourceFramebuffer, cfg.Name)
	fb := b.driver.GenFramebuffer()
	if fb == 0 {
		core.LogError("failed to create framebuffer %q", name)
		return 0, nil, 0
	}
	b.driver.BindFramebuffer(FRAMEBUFFER, fb)

	colour := make([]uint32, 0, cfg.ColourAttachments)
	drawBuffers := make([]uint32, 0, cfg.ColourAttachments)
	for i := 0; i < cfg.ColourAttachments; i++ {
		tex := b.CreateTexture2D(metadata.TextureConfig{
			Name:    fmt.Sprintf("%s-colour-%d", name, i),
			Width:   cfg.Width,
			Height:  cfg.Height,
			Format:  cfg.ColourFormat,
			RepeatU: metadata.TextureRepeatClampToEdge,
			RepeatV: metadata.TextureRepeatClampToEdge,
		}, nil)
		if tex == 0 {
			break
		}
		colour = append(colour, tex)
		attachment := COLOR_ATTACHMENT0 + uint32(i)
		b.driver.FramebufferTexture2D(FRAMEBUFFER, attachment, TEXTURE_2D, tex, 0)
		drawBuffers = append(drawBuffers, attachment)
	}
	var depth uint32
	if cfg.Depth {
		depth = b.CreateTexture2D(metadata.TextureConfig{
			Name:          name + "-depth",
			Width:         cfg.Width,
			Height:        cfg.Height,
			Format:        metadata.TextureFormatDepth24,
			FilterMinify:  metadata.TextureFilterModeNearest,
			FilterMagnify: metadata.TextureFilterModeNearest,
			RepeatU:       metadata.TextureRepeatClampToEdge,
			RepeatV:       metadata.TextureRepeatClampToEdge,
		}, nil)
		if depth != 0 {
			b.driver.FramebufferTexture2D(FRAMEBUFFER, DEPTH_ATTACHMENT, TEXTURE_2D, depth, 0)
		}
	}
	if len(drawBuffers) == 0 {
		drawBuffers = append(drawBuffers, NONE)
	}
	b.driver.DrawBuffers(drawBuffers)

	status := b.driver.CheckFramebufferStatus(FRAMEBUFFER)
	b.driver.BindFramebuffer(FRAMEBUFFER, 0)
	if status != FRAMEBUFFER_COMPLETE || len(colour) != cfg.ColourAttachments || (cfg.Depth && depth == 0) {
		core.LogError("framebuffer %q is incomplete (status 0x%04X)", name, status)
		for _, tex := range colour {
			b.DestroyTexture(tex)
		}
		if depth != 0 {
			b.DestroyTexture(depth)
		}
		b.driver.DeleteFramebuffer(fb)
		return 0, nil, 0
	}

	for _, tex := range colour {
		b.textures[tex].owner = fb
	}
	if depth != 0 {
		b.textures[depth].owner = fb
	}
	b.framebuffers[fb] = &framebufferInfo{
		colour: colour,
		depth:  depth,
		width:  cfg.Width,
		height: cfg.Height,
		label:  name,
	}
	return fb, colour, depth
}

// DestroyFramebuffer deletes the framebuffer and every attachment it created.
func (b *Backend) DestroyFramebuffer(id uint32) {
	info, ok := b.framebuffers[id]
	if !ok {
		return
	}
	delete(b.framebuffers, id)
	for _, tex := range info.colour {
		b.DestroyTexture(tex)
	}
	if info.depth != 0 {
		b.DestroyTexture(info.depth)
	}
	b.driver.DeleteFramebuffer(id)
}

// ReadPixels reads rect of the first colour attachment of framebuffer id as RGBA8.
// id 0 reads the default framebuffer. Work still recorded in command buffers is not
// visible until the frame is flushed.
func (b *Backend) ReadPixels(id uint32, rect metadata.Rect) []byte {
	if rect.Empty() {
		return nil
	}
	if id != 0 {
		info, ok := b.framebuffers[id]
		if !ok {
			core.LogDebug("ReadPixels on unknown framebuffer %d", id)
			return nil
		}
		if len(info.colour) == 0 {
			core.LogWarn("framebuffer %q has no colour attachment to read", info.label)
			return nil
		}
	}
	pixels := make([]byte, int(rect.Width)*int(rect.Height)*4)
	b.driver.BindFramebuffer(READ_FRAMEBUFFER, id)
	b.driver.ReadPixels(rect.X, rect.Y, rect.Width, rect.Height, RGBA, UNSIGNED_BYTE, pixels)
	b.driver.BindFramebuffer(READ_FRAMEBUFFER, 0)
	return pixels
}

func (b *Backend) framebufferSize(id uint32) (int32, int32, bool) {
	info, ok := b.framebuffers[id]
	if !ok {
		return 0, 0, false
	}
	return int32(info.width), int32(info.height), true
}
