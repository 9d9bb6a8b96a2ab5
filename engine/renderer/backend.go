package renderer

import (
	"fmt"
	"unsafe"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

// API selects the graphics backend of a Context.
type API = metadata.GraphicsAPI

const (
	OpenGL  = metadata.OpenGL
	Vulkan  = metadata.Vulkan
	DirectX = metadata.DirectX
	Metal   = metadata.Metal
)

// ParseAPI accepts the names API.String produces: "opengl", "vulkan", "directx", "metal".
func ParseAPI(name string) (API, error) {
	return metadata.ParseGraphicsAPI(name)
}

// Window is what a Context needs from the platform layer.
type Window interface {
	MakeContextCurrent()
	// ProcAddress resolves a driver entry point for the current context.
	ProcAddress(name string) unsafe.Pointer
	FramebufferSize() (width, height int)
}

// Backend is implemented once per graphics API. Ids returned by the Create methods are
// 0 on failure; every other method ignores unknown ids.
type Backend interface {
	API() metadata.GraphicsAPI
	Initialize(width, height int) error
	Shutdown() error
	Resized(width, height int)

	BeginFrame()
	EndFrame()
	Flush()
	FrameNumber() uint64
	Stats() metadata.FrameStats

	CreateVertexBuffer(data []byte, usage metadata.BufferUsage) uint32
	CreateIndexBuffer(data []byte, usage metadata.BufferUsage) uint32
	SetBufferData(id uint32, data []byte) bool
	DestroyBuffer(id uint32)

	CreateVertexArray(vertexBuffer, indexBuffer uint32, layout metadata.VertexLayout) uint32
	DestroyVertexArray(id uint32)

	CreateShader(vertexSource, fragmentSource string) uint32
	DestroyShader(id uint32)

	CreateTexture2D(cfg metadata.TextureConfig, pixels []byte) uint32
	SetTexture2DData(id uint32, pixels []byte) bool
	CreateTextureCube(cfg metadata.TextureConfig, faces [metadata.CubeFaceCount][]byte) uint32
	DestroyTexture(id uint32)

	CreateFramebuffer(cfg metadata.FramebufferConfig) (framebuffer uint32, colour []uint32, depth uint32)
	DestroyFramebuffer(id uint32)
	ReadPixels(framebuffer uint32, rect metadata.Rect) []byte

	CreateCommandBuffer() uint32
	DestroyCommandBuffer(id uint32)
	BeginCommandBuffer(id uint32)
	EndCommandBuffer(id uint32)
	IsRecording(id uint32) bool
	RecordCommand(id uint32, cmd metadata.Command)
	Commands(id uint32) []metadata.Command
	SubmitCommandBuffer(id uint32)

	LiveResources() []metadata.ResourceInfo
}

// BackendConfig is handed to a BackendFactory.
type BackendConfig struct {
	CheckErrors bool
}

// BackendFactory builds the backend of one API on win, whose context is current.
type BackendFactory func(win Window, cfg BackendConfig) (Backend, error)

var factories = map[API]BackendFactory{}

// RegisterBackend makes an API available to New. Backend packages call it from init.
func RegisterBackend(api API, factory BackendFactory) {
	if factory == nil {
		core.LogError("renderer: RegisterBackend factory for %s is nil", api)
		return
	}
	if _, dup := factories[api]; dup {
		core.LogWarn("renderer: backend %s registered twice, keeping the last one", api)
	}
	factories[api] = factory
}

func newBackend(api API, win Window, cfg BackendConfig) (Backend, error) {
	factory, ok := factories[api]
	if !ok {
		return nil, fmt.Errorf("%s: %w", api, core.ErrBackendUnsupported)
	}
	if win == nil {
		return nil, core.ErrNoWindow
	}
	win.MakeContextCurrent()
	return factory(win, cfg)
}
