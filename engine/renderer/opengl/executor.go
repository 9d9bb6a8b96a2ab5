package opengl

import (
	gomath "math"

	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/math"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

// maxLineWidth is the widest line the executor asks for; core profiles reject more.
const maxLineWidth = 64

// executor replays recorded commands against the driver. It tracks the few bindings
// draws depend on; everything else goes straight to the driver.
type executor struct {
	b *Backend

	program     uint32
	vertexArray uint32
	depthMask   bool
}

func newExecutor(b *Backend) *executor {
	return &executor{b: b, depthMask: true}
}

func (e *executor) run(commands []metadata.Command) {
	for _, cmd := range commands {
		cmd.Accept(e)
	}
}

// reset mirrors the driver state left by Backend.resetState.
func (e *executor) reset() {
	e.program = 0
	e.vertexArray = 0
}

func (e *executor) VisitSetViewport(c *metadata.SetViewport) {
	r := c.Rect
	e.b.driver.Viewport(r.X, r.Y, math.Clamp(r.Width, 0, gomath.MaxInt32), math.Clamp(r.Height, 0, gomath.MaxInt32))
}

func (e *executor) VisitBindShader(c *metadata.BindShader) {
	if _, ok := e.b.shaders[c.Shader]; !ok {
		core.LogWarn("bind of unknown shader %d ignored", c.Shader)
		e.program = 0
		return
	}
	e.b.driver.UseProgram(c.Shader)
	e.program = c.Shader
	e.b.checkError("UseProgram")
}

func (e *executor) VisitBindVertexArray(c *metadata.BindVertexArray) {
	if _, ok := e.b.vertexArrays[c.VertexArray]; !ok {
		core.LogWarn("bind of unknown vertex array %d ignored", c.VertexArray)
		e.vertexArray = 0
		return
	}
	e.b.driver.BindVertexArray(c.VertexArray)
	e.vertexArray = c.VertexArray
	e.b.checkError("BindVertexArray")
}

func (e *executor) VisitBindTexture(c *metadata.BindTexture) {
	e.bindTexture(TEXTURE_2D, c.Texture, c.Slot, c.Uniform)
}

func (e *executor) VisitBindTextureCube(c *metadata.BindTextureCube) {
	e.bindTexture(TEXTURE_CUBE_MAP, c.Texture, c.Slot, c.Uniform)
}

func (e *executor) bindTexture(target, texture, slot uint32, uniform string) {
	info, ok := e.b.textures[texture]
	if !ok || info.target != target {
		core.LogWarn("bind of unknown texture %d to slot %d ignored", texture, slot)
		return
	}
	e.b.driver.ActiveTexture(TEXTURE0 + slot)
	e.b.driver.BindTexture(target, texture)
	if uniform == "" || e.program == 0 {
		return
	}
	if loc, ok := e.b.uniformLocation(e.program, uniform); ok {
		e.b.driver.ProgramUniform1i(e.program, loc, int32(slot))
	}
}

func (e *executor) drawable() bool {
	if e.vertexArray == 0 || e.program == 0 {
		e.b.stats.SkippedDraws++
		return false
	}
	return true
}

func (e *executor) VisitDrawIndexed(c *metadata.DrawIndexed) {
	if !e.drawable() || c.Count == 0 {
		return
	}
	e.b.driver.DrawElements(primitiveMode(c.Primitive), int32(c.Count), indexType(c.IndexType), c.Offset)
	e.b.stats.DrawCalls++
	e.b.checkError("DrawElements")
}

func (e *executor) VisitDrawArrays(c *metadata.DrawArrays) {
	if !e.drawable() || c.Count <= 0 {
		return
	}
	e.b.driver.DrawArrays(primitiveMode(c.Primitive), c.First, c.Count)
	e.b.stats.DrawCalls++
	e.b.checkError("DrawArrays")
}

func (e *executor) VisitBindFramebuffer(c *metadata.BindFramebuffer) {
	width, height, ok := e.b.framebufferSize(c.Framebuffer)
	if !ok {
		core.LogWarn("bind of unknown framebuffer %d ignored", c.Framebuffer)
		return
	}
	e.b.driver.BindFramebuffer(FRAMEBUFFER, c.Framebuffer)
	e.b.driver.Viewport(0, 0, width, height)
}

func (e *executor) VisitUnbindFramebuffer(*metadata.UnbindFramebuffer) {
	e.b.driver.BindFramebuffer(FRAMEBUFFER, 0)
	e.b.restoreViewport()
}

func (e *executor) VisitClearFramebuffer(c *metadata.ClearFramebuffer) {
	mask := clearMask(c.Flags)
	if mask == 0 {
		return
	}
	if mask&COLOR_BUFFER_BIT != 0 {
		e.b.driver.ClearColor(c.Colour.R, c.Colour.G, c.Colour.B, c.Colour.A)
	}
	if mask&DEPTH_BUFFER_BIT != 0 {
		e.b.driver.ClearDepth(float64(c.Depth))
		// glClear honours the depth write mask
		if !e.depthMask {
			e.b.driver.DepthMask(true)
			defer e.b.driver.DepthMask(false)
		}
	}
	e.b.driver.Clear(mask)
}

func (e *executor) VisitSetBlend(c *metadata.SetBlend) {
	if !c.Enabled {
		e.b.driver.Disable(BLEND)
		return
	}
	e.b.driver.Enable(BLEND)
	e.b.driver.BlendFunc(blendFactor(c.Src), blendFactor(c.Dst))
}

func (e *executor) VisitSetDepthTest(c *metadata.SetDepthTest) {
	e.toggle(DEPTH_TEST, c.Enabled)
}

func (e *executor) VisitSetDepthMask(c *metadata.SetDepthMask) {
	e.b.driver.DepthMask(c.Enabled)
	e.depthMask = c.Enabled
}

func (e *executor) VisitSetCullFace(c *metadata.SetCullFace) {
	if !c.Enabled || c.Mode == metadata.FaceCullModeNone {
		e.b.driver.Disable(CULL_FACE)
		return
	}
	e.b.driver.Enable(CULL_FACE)
	e.b.driver.CullFace(cullFace(c.Mode))
}

func (e *executor) VisitSetScissorTest(c *metadata.SetScissorTest) {
	e.toggle(SCISSOR_TEST, c.Enabled)
}

func (e *executor) VisitSetScissorRect(c *metadata.SetScissorRect) {
	r := c.Rect
	e.b.driver.Scissor(r.X, r.Y, math.Clamp(r.Width, 0, gomath.MaxInt32), math.Clamp(r.Height, 0, gomath.MaxInt32))
}

func (e *executor) VisitSetLineWidth(c *metadata.SetLineWidth) {
	e.b.driver.LineWidth(math.Clamp(c.Width, 1, maxLineWidth))
}

func (e *executor) VisitExecuteCallback(c *metadata.ExecuteCallback) {
	if c.Fn != nil {
		c.Fn()
	}
}

func (e *executor) VisitUpdateVertexBuffer(c *metadata.UpdateVertexBuffer) {
	e.b.updateBuffer(c.Buffer, c.Offset, c.Data)
}

func (e *executor) VisitUpdateIndexBuffer(c *metadata.UpdateIndexBuffer) {
	e.b.updateBuffer(c.Buffer, c.Offset, c.Data)
}

func (e *executor) VisitSetUniformMat4(c *metadata.SetUniformMat4) {
	if loc, ok := e.b.uniformLocation(c.Shader, c.Name); ok {
		e.b.driver.ProgramUniformMatrix4fv(c.Shader, loc, c.Value)
	}
}

func (e *executor) VisitSetUniformVec2(c *metadata.SetUniformVec2) {
	if loc, ok := e.b.uniformLocation(c.Shader, c.Name); ok {
		e.b.driver.ProgramUniform2f(c.Shader, loc, c.Value[0], c.Value[1])
	}
}

func (e *executor) VisitSetUniformVec3(c *metadata.SetUniformVec3) {
	if loc, ok := e.b.uniformLocation(c.Shader, c.Name); ok {
		e.b.driver.ProgramUniform3f(c.Shader, loc, c.Value[0], c.Value[1], c.Value[2])
	}
}

func (e *executor) VisitSetUniformVec4(c *metadata.SetUniformVec4) {
	if loc, ok := e.b.uniformLocation(c.Shader, c.Name); ok {
		e.b.driver.ProgramUniform4f(c.Shader, loc, c.Value[0], c.Value[1], c.Value[2], c.Value[3])
	}
}

func (e *executor) VisitSetUniformInt(c *metadata.SetUniformInt) {
	if loc, ok := e.b.uniformLocation(c.Shader, c.Name); ok {
		e.b.driver.ProgramUniform1i(c.Shader, loc, c.Value)
	}
}

func (e *executor) VisitSetUniformFloat(c *metadata.SetUniformFloat) {
	if loc, ok := e.b.uniformLocation(c.Shader, c.Name); ok {
		e.b.driver.ProgramUniform1f(c.Shader, loc, c.Value)
	}
}

func (e *executor) toggle(capability uint32, enabled bool) {
	if enabled {
		e.b.driver.Enable(capability)
		return
	}
	e.b.driver.Disable(capability)
}

var _ metadata.Visitor = (*executor)(nil)
