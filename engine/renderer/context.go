package renderer

import (
	"fmt"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

// Context owns the backend of one graphics API and hands out handles stamped with it.
// It is not safe for concurrent use; everything runs on the render thread.
type Context struct {
	api     API
	backend Backend
	window  Window

	width  int
	height int

	defaults *Defaults
	clock    *core.Clock
	metrics  *core.FrameMetrics
	inFrame  bool
}

type Option func(*options)

type options struct {
	backend     Backend
	checkErrors bool
	width       int
	height      int
}

// WithBackend uses b instead of building one for the API.
func WithBackend(b Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithErrorChecks makes the backend poll and log driver errors after binds and draws.
func WithErrorChecks(enabled bool) Option {
	return func(o *options) {
		o.checkErrors = enabled
	}
}

// WithSize sets the initial viewport when there is no window to ask.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// New creates a context for api on win. The backend is picked once, here.
func New(api API, win Window, opts ...Option) (*Context, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	backend := o.backend
	if backend == nil {
		b, err := newBackend(api, win, BackendConfig{CheckErrors: o.checkErrors})
		if err != nil {
			core.LogError("failed to create %s backend: %s", api, err)
			return nil, err
		}
		backend = b
	}
	if backend.API() != api {
		return nil, fmt.Errorf("backend implements %s, not %s: %w", backend.API(), api, core.ErrBackendUnsupported)
	}

	width, height := o.width, o.height
	if win != nil {
		width, height = win.FramebufferSize()
	}
	if err := backend.Initialize(width, height); err != nil {
		core.LogError("failed to initialize %s backend: %s", api, err)
		return nil, err
	}

	return &Context{
		api:     api,
		backend: backend,
		window:  win,
		width:   width,
		height:  height,
		clock:   core.NewClock(),
		metrics: core.NewFrameMetrics(),
	}, nil
}

func (c *Context) API() API {
	return c.api
}

// Shutdown releases the default resources, reports leaks and shuts the backend down.
func (c *Context) Shutdown() error {
	if c.backend == nil {
		return core.ErrNotInitialized
	}
	if c.defaults != nil {
		c.defaults.release()
		c.defaults = nil
	}
	err := c.backend.Shutdown()
	c.backend = nil
	return err
}

func (c *Context) alive() bool {
	return c.backend != nil
}

// BeginFrame opens a frame: the submission queue and every recorded command list are cleared.
func (c *Context) BeginFrame() {
	if !c.alive() {
		return
	}
	if c.inFrame {
		core.LogWarn("BeginFrame called twice, discarding frame %d", c.backend.FrameNumber())
	}
	c.inFrame = true
	c.clock.Start()
	c.backend.BeginFrame()
}

// EndFrame executes the submitted command buffers in submission order.
func (c *Context) EndFrame() {
	if !c.alive() {
		return
	}
	if !c.inFrame {
		core.LogDebug("EndFrame without BeginFrame")
	}
	c.backend.EndFrame()
	c.inFrame = false
	c.clock.Update()
	c.metrics.Update(c.clock.Elapsed())
	c.clock.Stop()
}

// Flush ends the frame, waits for the GPU and opens a new frame. Recorded work is only
// visible to ReadPixels after a Flush or EndFrame.
func (c *Context) Flush() {
	if !c.alive() {
		return
	}
	c.backend.Flush()
	c.inFrame = true
}

// OnResize changes the viewport restored between command buffers.
func (c *Context) OnResize(width, height int) {
	if !c.alive() || (width == c.width && height == c.height) {
		return
	}
	c.width, c.height = width, height
	c.backend.Resized(width, height)
}

// OnEvent is a core.FnOnEvent for EVENT_CODE_RESIZED.
func (c *Context) OnEvent(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	if code != core.EVENT_CODE_RESIZED {
		return false
	}
	c.OnResize(int(data.Data.U32[0]), int(data.Data.U32[1]))
	// other listeners want the size too
	return false
}

func (c *Context) Size() (int, int) {
	return c.width, c.height
}

func (c *Context) FrameNumber() uint64 {
	if !c.alive() {
		return 0
	}
	return c.backend.FrameNumber()
}

// Stats describes the last executed frame.
func (c *Context) Stats() metadata.FrameStats {
	if !c.alive() {
		return metadata.FrameStats{}
	}
	return c.backend.Stats()
}

func (c *Context) FPS() float64 {
	return c.metrics.FPS()
}

// FrameTime is the rolling average of BeginFrame to EndFrame in milliseconds.
func (c *Context) FrameTime() float64 {
	return c.metrics.FrameTime()
}

// LiveResources lists what the backend still holds.
func (c *Context) LiveResources() []metadata.ResourceInfo {
	if !c.alive() {
		return nil
	}
	return c.backend.LiveResources()
}

// ReadPixels reads rect of the first colour attachment of f as RGBA8. An invalid f
// reads the window.
func (c *Context) ReadPixels(f Framebuffer, rect metadata.Rect) []byte {
	if !c.alive() {
		return nil
	}
	id := uint32(0)
	if f.Valid() {
		id = f.ID
	}
	return c.backend.ReadPixels(id, rect)
}

func (c *Context) CreateVertexBuffer(data []byte, usage metadata.BufferUsage) VertexBuffer {
	if !c.alive() {
		return VertexBuffer{}
	}
	id := c.backend.CreateVertexBuffer(data, usage)
	if id == 0 {
		return VertexBuffer{}
	}
	return VertexBuffer{ID: id, Size: len(data), backend: c.backend}
}

// CreateIndexBuffer creates a buffer of 32 bit indices.
func (c *Context) CreateIndexBuffer(indices []uint32, usage metadata.BufferUsage) IndexBuffer {
	return c.createIndexBuffer(AsBytes(indices), len(indices), metadata.IndexTypeUint32, usage)
}

func (c *Context) CreateIndexBuffer16(indices []uint16, usage metadata.BufferUsage) IndexBuffer {
	return c.createIndexBuffer(AsBytes(indices), len(indices), metadata.IndexTypeUint16, usage)
}

func (c *Context) createIndexBuffer(data []byte, count int, indexType metadata.IndexType, usage metadata.BufferUsage) IndexBuffer {
	if !c.alive() {
		return IndexBuffer{}
	}
	id := c.backend.CreateIndexBuffer(data, usage)
	if id == 0 {
		return IndexBuffer{}
	}
	return IndexBuffer{ID: id, Size: len(data), Count: uint32(count), IndexType: indexType, backend: c.backend}
}

// CreateVertexArray binds the layout of vb. ib may be the zero handle for DrawArrays geometry.
func (c *Context) CreateVertexArray(vb VertexBuffer, ib IndexBuffer, layout metadata.VertexLayout) VertexArray {
	if !c.alive() {
		return VertexArray{}
	}
	if !vb.Valid() {
		core.LogError("CreateVertexArray: invalid vertex buffer")
		return VertexArray{}
	}
	var ibID uint32
	if ib.Valid() {
		ibID = ib.ID
	}
	id := c.backend.CreateVertexArray(vb.ID, ibID, layout)
	if id == 0 {
		return VertexArray{}
	}
	return VertexArray{ID: id, backend: c.backend}
}

// CreateShader compiles a program. A compile or link error is logged and yields an
// invalid handle.
func (c *Context) CreateShader(vertexSource, fragmentSource string) Shader {
	if !c.alive() {
		return Shader{}
	}
	id := c.backend.CreateShader(vertexSource, fragmentSource)
	if id == 0 {
		return Shader{}
	}
	return Shader{ID: id, backend: c.backend}
}

// CreateTexture2D creates a texture from tightly packed pixels, or an empty one when pixels is nil.
func (c *Context) CreateTexture2D(cfg metadata.TextureConfig, pixels []byte) Texture2D {
	if !c.alive() {
		return Texture2D{}
	}
	id := c.backend.CreateTexture2D(cfg, pixels)
	if id == 0 {
		return Texture2D{}
	}
	return Texture2D{ID: id, Width: cfg.Width, Height: cfg.Height, Format: cfg.Format, backend: c.backend}
}

// CreateDepthTexture creates an empty 24 bit depth texture, e.g. for shadow maps.
func (c *Context) CreateDepthTexture(width, height uint32) Texture2D {
	return c.CreateTexture2D(metadata.TextureConfig{
		Width:         width,
		Height:        height,
		Format:        metadata.TextureFormatDepth24,
		FilterMinify:  metadata.TextureFilterModeNearest,
		FilterMagnify: metadata.TextureFilterModeNearest,
		RepeatU:       metadata.TextureRepeatClampToEdge,
		RepeatV:       metadata.TextureRepeatClampToEdge,
	}, nil)
}

// CreateTextureCube creates a cube map; faces follow the metadata.CubeFace order.
func (c *Context) CreateTextureCube(cfg metadata.TextureConfig, faces [metadata.CubeFaceCount][]byte) TextureCube {
	if !c.alive() {
		return TextureCube{}
	}
	if cfg.Width != cfg.Height {
		core.LogError("CreateTextureCube: faces must be square, got %dx%d", cfg.Width, cfg.Height)
		return TextureCube{}
	}
	id := c.backend.CreateTextureCube(cfg, faces)
	if id == 0 {
		return TextureCube{}
	}
	return TextureCube{ID: id, Size: cfg.Width, Format: cfg.Format, backend: c.backend}
}

func (c *Context) CreateFramebuffer(cfg metadata.FramebufferConfig) Framebuffer {
	if !c.alive() {
		return Framebuffer{}
	}
	id, colour, depth := c.backend.CreateFramebuffer(cfg)
	if id == 0 {
		return Framebuffer{}
	}
	fb := Framebuffer{ID: id, Width: cfg.Width, Height: cfg.Height, backend: c.backend}
	for _, tex := range colour {
		fb.Colour = append(fb.Colour, Texture2D{ID: tex, Width: cfg.Width, Height: cfg.Height, Format: cfg.ColourFormat, backend: c.backend})
	}
	if depth != 0 {
		fb.Depth = Texture2D{ID: depth, Width: cfg.Width, Height: cfg.Height, Format: metadata.TextureFormatDepth24, backend: c.backend}
	}
	return fb
}

// CreateCommandBuffer allocates a command buffer. It can be kept across frames but has
// to Begin again every frame since BeginFrame drops its commands.
func (c *Context) CreateCommandBuffer() CommandBuffer {
	if !c.alive() {
		return CommandBuffer{}
	}
	id := c.backend.CreateCommandBuffer()
	if id == 0 {
		return CommandBuffer{}
	}
	return CommandBuffer{ID: id, backend: c.backend}
}
