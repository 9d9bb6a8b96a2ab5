package metadata

import "fmt"

// GraphicsAPI selects the backend implementation of a context.
type GraphicsAPI uint8

const (
	OpenGL GraphicsAPI = iota
	Vulkan
	DirectX
	Metal
)

func (a GraphicsAPI) String() string {
	switch a {
	case OpenGL:
		return "opengl"
	case Vulkan:
		return "vulkan"
	case DirectX:
		return "directx"
	case Metal:
		return "metal"
	}
	return fmt.Sprintf("GraphicsAPI(%d)", uint8(a))
}

// ParseGraphicsAPI is the inverse of GraphicsAPI.String.
func ParseGraphicsAPI(name string) (GraphicsAPI, error) {
	for _, a := range []GraphicsAPI{OpenGL, Vulkan, DirectX, Metal} {
		if a.String() == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown graphics api %q", name)
}

// FrameStats describes the work done by the last EndFrame.
type FrameStats struct {
	Frame          uint64
	CommandBuffers int
	Commands       int
	DrawCalls      int
	// SkippedDraws counts draws dropped for lack of a bound vertex array or program.
	SkippedDraws int
	DriverErrors int
}

type ResourceKind int

const (
	ResourceVertexBuffer ResourceKind = iota
	ResourceIndexBuffer
	ResourceVertexArray
	ResourceShader
	ResourceTexture
	ResourceFramebuffer
	ResourceCommandBuffer
)

func (k ResourceKind) String() string {
	switch k {
	case ResourceVertexBuffer:
		return "vertex_buffer"
	case ResourceIndexBuffer:
		return "index_buffer"
	case ResourceVertexArray:
		return "vertex_array"
	case ResourceShader:
		return "shader"
	case ResourceTexture:
		return "texture"
	case ResourceFramebuffer:
		return "framebuffer"
	case ResourceCommandBuffer:
		return "command_buffer"
	}
	return "unknown"
}

// ResourceInfo describes a live backend object.
type ResourceInfo struct {
	Kind  ResourceKind
	ID    uint32
	Label string
}
