package metadata

import "github.com/go-gl/mathgl/mgl32"

// CommandKind tags every recordable operation.
type CommandKind int

const (
	CommandSetViewport CommandKind = iota
	CommandBindShader
	CommandBindVertexArray
	CommandBindTexture
	CommandBindTextureCube
	CommandDrawIndexed
	CommandDrawArrays
	CommandBindFramebuffer
	CommandUnbindFramebuffer
	CommandClearFramebuffer
	CommandSetBlend
	CommandSetDepthTest
	CommandSetDepthMask
	CommandSetCullFace
	CommandSetScissorTest
	CommandSetScissorRect
	CommandSetLineWidth
	CommandExecuteCallback
	CommandUpdateVertexBuffer
	CommandUpdateIndexBuffer
	CommandSetUniformMat4
	CommandSetUniformVec2
	CommandSetUniformVec3
	CommandSetUniformVec4
	CommandSetUniformInt
	CommandSetUniformFloat
)

var commandKindNames = [...]string{
	CommandSetViewport:        "set_viewport",
	CommandBindShader:         "bind_shader",
	CommandBindVertexArray:    "bind_vertex_array",
	CommandBindTexture:        "bind_texture",
	CommandBindTextureCube:    "bind_texture_cube",
	CommandDrawIndexed:        "draw_indexed",
	CommandDrawArrays:         "draw_arrays",
	CommandBindFramebuffer:    "bind_framebuffer",
	CommandUnbindFramebuffer:  "unbind_framebuffer",
	CommandClearFramebuffer:   "clear_framebuffer",
	CommandSetBlend:           "set_blend",
	CommandSetDepthTest:       "set_depth_test",
	CommandSetDepthMask:       "set_depth_mask",
	CommandSetCullFace:        "set_cull_face",
	CommandSetScissorTest:     "set_scissor_test",
	CommandSetScissorRect:     "set_scissor_rect",
	CommandSetLineWidth:       "set_line_width",
	CommandExecuteCallback:    "execute_callback",
	CommandUpdateVertexBuffer: "update_vertex_buffer",
	CommandUpdateIndexBuffer:  "update_index_buffer",
	CommandSetUniformMat4:     "set_uniform_mat4",
	CommandSetUniformVec2:     "set_uniform_vec2",
	CommandSetUniformVec3:     "set_uniform_vec3",
	CommandSetUniformVec4:     "set_uniform_vec4",
	CommandSetUniformInt:      "set_uniform_int",
	CommandSetUniformFloat:    "set_uniform_float",
}

func (k CommandKind) String() string {
	if k < 0 || int(k) >= len(commandKindNames) {
		return "unknown"
	}
	return commandKindNames[k]
}

// Command is one recorded operation. The set of implementations is closed:
// every Command dispatches to exactly one Visitor method, so a new kind
// does not compile until each executor handles it.
type Command interface {
	Kind() CommandKind
	Accept(v Visitor)
}

// Visitor is implemented by command executors.
type Visitor interface {
	VisitSetViewport(c *SetViewport)
	VisitBindShader(c *BindShader)
	VisitBindVertexArray(c *BindVertexArray)
	VisitBindTexture(c *BindTexture)
	VisitBindTextureCube(c *BindTextureCube)
	VisitDrawIndexed(c *DrawIndexed)
	VisitDrawArrays(c *DrawArrays)
	VisitBindFramebuffer(c *BindFramebuffer)
	VisitUnbindFramebuffer(c *UnbindFramebuffer)
	VisitClearFramebuffer(c *ClearFramebuffer)
	VisitSetBlend(c *SetBlend)
	VisitSetDepthTest(c *SetDepthTest)
	VisitSetDepthMask(c *SetDepthMask)
	VisitSetCullFace(c *SetCullFace)
	VisitSetScissorTest(c *SetScissorTest)
	VisitSetScissorRect(c *SetScissorRect)
	VisitSetLineWidth(c *SetLineWidth)
	VisitExecuteCallback(c *ExecuteCallback)
	VisitUpdateVertexBuffer(c *UpdateVertexBuffer)
	VisitUpdateIndexBuffer(c *UpdateIndexBuffer)
	VisitSetUniformMat4(c *SetUniformMat4)
	VisitSetUniformVec2(c *SetUniformVec2)
	VisitSetUniformVec3(c *SetUniformVec3)
	VisitSetUniformVec4(c *SetUniformVec4)
	VisitSetUniformInt(c *SetUniformInt)
	VisitSetUniformFloat(c *SetUniformFloat)
}

type SetViewport struct {
	Rect Rect
}

type BindShader struct {
	Shader uint32
}

type BindVertexArray struct {
	VertexArray uint32
}

// BindTexture binds a 2D texture to Slot. When Uniform is not empty the
// executor also writes Slot into that sampler uniform of the bound program.
type BindTexture struct {
	Texture uint32
	Slot    uint32
	Uniform string
}

type BindTextureCube struct {
	Texture uint32
	Slot    uint32
	Uniform string
}

type DrawIndexed struct {
	Count     uint32
	IndexType IndexType
	// Offset in bytes into the bound index buffer.
	Offset    int
	Primitive PrimitiveTopology
}

type DrawArrays struct {
	First     int32
	Count     int32
	Primitive PrimitiveTopology
}

// BindFramebuffer redirects drawing into Framebuffer and fits the viewport to it.
type BindFramebuffer struct {
	Framebuffer uint32
}

type UnbindFramebuffer struct{}

type ClearFramebuffer struct {
	Flags  ClearFlag
	Colour Colour
	Depth  float32
}

type SetBlend struct {
	Enabled bool
	Src     BlendFactor
	Dst     BlendFactor
}

type SetDepthTest struct {
	Enabled bool
}

type SetDepthMask struct {
	Enabled bool
}

type SetCullFace struct {
	Enabled bool
	Mode    FaceCullMode
}

type SetScissorTest struct {
	Enabled bool
}

type SetScissorRect struct {
	Rect Rect
}

type SetLineWidth struct {
	Width float32
}

// ExecuteCallback runs host code at its position in the buffer.
type ExecuteCallback struct {
	Fn func()
}

// UpdateVertexBuffer owns a copy of the bytes taken at record time.
type UpdateVertexBuffer struct {
	Buffer uint32
	Offset int
	Data   []byte
}

// UpdateIndexBuffer owns a copy of the bytes taken at record time.
type UpdateIndexBuffer struct {
	Buffer uint32
	Offset int
	Data   []byte
}

type SetUniformMat4 struct {
	Shader uint32
	Name   string
	Value  mgl32.Mat4
}

type SetUniformVec2 struct {
	Shader uint32
	Name   string
	Value  mgl32.Vec2
}

type SetUniformVec3 struct {
	Shader uint32
	Name   string
	Value  mgl32.Vec3
}

type SetUniformVec4 struct {
	Shader uint32
	Name   string
	Value  mgl32.Vec4
}

type SetUniformInt struct {
	Shader uint32
	Name   string
	Value  int32
}

type SetUniformFloat struct {
	Shader uint32
	Name   string
	Value  float32
}

// NewUpdateVertexBuffer copies data so the caller may reuse its slice right away.
func NewUpdateVertexBuffer(buffer uint32, offset int, data []byte) *UpdateVertexBuffer {
	return &UpdateVertexBuffer{Buffer: buffer, Offset: offset, Data: copyBytes(data)}
}

// NewUpdateIndexBuffer copies data so the caller may reuse its slice right away.
func NewUpdateIndexBuffer(buffer uint32, offset int, data []byte) *UpdateIndexBuffer {
	return &UpdateIndexBuffer{Buffer: buffer, Offset: offset, Data: copyBytes(data)}
}

func copyBytes(data []byte) []byte {
	if data == nil {
		return nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out
}

func (c *SetViewport) Kind() CommandKind        { return CommandSetViewport }
func (c *BindShader) Kind() CommandKind         { return CommandBindShader }
func (c *BindVertexArray) Kind() CommandKind    { return CommandBindVertexArray }
func (c *BindTexture) Kind() CommandKind        { return CommandBindTexture }
func (c *BindTextureCube) Kind() CommandKind    { return CommandBindTextureCube }
func (c *DrawIndexed) Kind() CommandKind        { return CommandDrawIndexed }
func (c *DrawArrays) Kind() CommandKind         { return CommandDrawArrays }
func (c *BindFramebuffer) Kind() CommandKind    { return CommandBindFramebuffer }
func (c *UnbindFramebuffer) Kind() CommandKind  { return CommandUnbindFramebuffer }
func (c *ClearFramebuffer) Kind() CommandKind   { return CommandClearFramebuffer }
func (c *SetBlend) Kind() CommandKind           { return CommandSetBlend }
func (c *SetDepthTest) Kind() CommandKind       { return CommandSetDepthTest }
func (c *SetDepthMask) Kind() CommandKind       { return CommandSetDepthMask }
func (c *SetCullFace) Kind() CommandKind        { return CommandSetCullFace }
func (c *SetScissorTest) Kind() CommandKind     { return CommandSetScissorTest }
func (c *SetScissorRect) Kind() CommandKind     { return CommandSetScissorRect }
func (c *SetLineWidth) Kind() CommandKind       { return CommandSetLineWidth }
func (c *ExecuteCallback) Kind() CommandKind    { return CommandExecuteCallback }
func (c *UpdateVertexBuffer) Kind() CommandKind { return CommandUpdateVertexBuffer }
func (c *UpdateIndexBuffer) Kind() CommandKind  { return CommandUpdateIndexBuffer }
func (c *SetUniformMat4) Kind() CommandKind     { return CommandSetUniformMat4 }
func (c *SetUniformVec2) Kind() CommandKind     { return CommandSetUniformVec2 }
func (c *SetUniformVec3) Kind() CommandKind     { return CommandSetUniformVec3 }
func (c *SetUniformVec4) Kind() CommandKind     { return CommandSetUniformVec4 }
func (c *SetUniformInt) Kind() CommandKind      { return CommandSetUniformInt }
func (c *SetUniformFloat) Kind() CommandKind    { return CommandSetUniformFloat }

func (c *SetViewport) Accept(v Visitor)        { v.VisitSetViewport(c) }
func (c *BindShader) Accept(v Visitor)         { v.VisitBindShader(c) }
func (c *BindVertexArray) Accept(v Visitor)    { v.VisitBindVertexArray(c) }
func (c *BindTexture) Accept(v Visitor)        { v.VisitBindTexture(c) }
func (c *BindTextureCube) Accept(v Visitor)    { v.VisitBindTextureCube(c) }
func (c *DrawIndexed) Accept(v Visitor)        { v.VisitDrawIndexed(c) }
func (c *DrawArrays) Accept(v Visitor)         { v.VisitDrawArrays(c) }
func (c *BindFramebuffer) Accept(v Visitor)    { v.VisitBindFramebuffer(c) }
func (c *UnbindFramebuffer) Accept(v Visitor)  { v.VisitUnbindFramebuffer(c) }
func (c *ClearFramebuffer) Accept(v Visitor)   { v.VisitClearFramebuffer(c) }
func (c *SetBlend) Accept(v Visitor)           { v.VisitSetBlend(c) }
func (c *SetDepthTest) Accept(v Visitor)       { v.VisitSetDepthTest(c) }
func (c *SetDepthMask) Accept(v Visitor)       { v.VisitSetDepthMask(c) }
func (c *SetCullFace) Accept(v Visitor)        { v.VisitSetCullFace(c) }
func (c *SetScissorTest) Accept(v Visitor)     { v.VisitSetScissorTest(c) }
func (c *SetScissorRect) Accept(v Visitor)     { v.VisitSetScissorRect(c) }
func (c *SetLineWidth) Accept(v Visitor)       { v.VisitSetLineWidth(c) }
func (c *ExecuteCallback) Accept(v Visitor)    { v.VisitExecuteCallback(c) }
func (c *UpdateVertexBuffer) Accept(v Visitor) { v.VisitUpdateVertexBuffer(c) }
func (c *UpdateIndexBuffer) Accept(v Visitor)  { v.VisitUpdateIndexBuffer(c) }
func (c *SetUniformMat4) Accept(v Visitor)     { v.VisitSetUniformMat4(c) }
func (c *SetUniformVec2) Accept(v Visitor)     { v.VisitSetUniformVec2(c) }
func (c *SetUniformVec3) Accept(v Visitor)     { v.VisitSetUniformVec3(c) }
func (c *SetUniformVec4) Accept(v Visitor)     { v.VisitSetUniformVec4(c) }
func (c *SetUniformInt) Accept(v Visitor)      { v.VisitSetUniformInt(c) }
func (c *SetUniformFloat) Accept(v Visitor)    { v.VisitSetUniformFloat(c) }
