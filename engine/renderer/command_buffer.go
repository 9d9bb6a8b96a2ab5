package renderer

import (
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
)

// CommandBuffer records commands for execution at the end of the frame.
//
// Begin clears the stored list and starts recording; every record method appends
// while recording and is dropped otherwise; End stops recording; Submit queues the
// buffer. Nothing reaches the driver before Context.EndFrame or Context.Flush. The
// stored list lives until the next BeginFrame.
type CommandBuffer struct {
	ID      uint32
	backend Backend
}

func (c CommandBuffer) Valid() bool {
	return c.ID != 0 && c.backend != nil
}

func (c CommandBuffer) Begin() {
	if c.Valid() {
		c.backend.BeginCommandBuffer(c.ID)
	}
}

func (c CommandBuffer) End() {
	if c.Valid() {
		c.backend.EndCommandBuffer(c.ID)
	}
}

// Submit queues the buffer. Submitting twice executes the same list twice.
func (c CommandBuffer) Submit() {
	if c.Valid() {
		c.backend.SubmitCommandBuffer(c.ID)
	}
}

func (c CommandBuffer) Recording() bool {
	return c.Valid() && c.backend.IsRecording(c.ID)
}

// Commands returns a copy of the stored list.
func (c CommandBuffer) Commands() []metadata.Command {
	if !c.Valid() {
		return nil
	}
	return c.backend.Commands(c.ID)
}

func (c CommandBuffer) Len() int {
	return len(c.Commands())
}

func (c *CommandBuffer) Release() {
	if !c.Valid() {
		return
	}
	c.backend.DestroyCommandBuffer(c.ID)
	c.ID = 0
}

func (c CommandBuffer) record(cmd metadata.Command) {
	if c.Recording() {
		c.backend.RecordCommand(c.ID, cmd)
	}
}

func (c CommandBuffer) SetViewport(x, y, width, height int32) {
	c.record(&metadata.SetViewport{Rect: metadata.Rect{X: x, Y: y, Width: width, Height: height}})
}

func (c CommandBuffer) BindShader(s Shader) {
	if s.Valid() {
		c.record(&metadata.BindShader{Shader: s.ID})
	}
}

func (c CommandBuffer) BindVertexArray(v VertexArray) {
	if v.Valid() {
		c.record(&metadata.BindVertexArray{VertexArray: v.ID})
	}
}

// BindTexture binds t to slot. A non-empty uniform also points that sampler of the
// bound shader at slot.
func (c CommandBuffer) BindTexture(t Texture2D, slot uint32, uniform string) {
	if t.Valid() {
		c.record(&metadata.BindTexture{Texture: t.ID, Slot: slot, Uniform: uniform})
	}
}

func (c CommandBuffer) BindTextureCube(t TextureCube, slot uint32, uniform string) {
	if t.Valid() {
		c.record(&metadata.BindTextureCube{Texture: t.ID, Slot: slot, Uniform: uniform})
	}
}

// DrawIndexed draws count indices starting offset bytes into the bound index buffer.
func (c CommandBuffer) DrawIndexed(count uint32, indexType metadata.IndexType, offset int, primitive metadata.PrimitiveTopology) {
	c.record(&metadata.DrawIndexed{Count: count, IndexType: indexType, Offset: offset, Primitive: primitive})
}

// DrawIndexBuffer draws every index of ib.
func (c CommandBuffer) DrawIndexBuffer(ib IndexBuffer, primitive metadata.PrimitiveTopology) {
	if ib.Valid() {
		c.DrawIndexed(ib.Count, ib.IndexType, 0, primitive)
	}
}

func (c CommandBuffer) DrawArrays(first, count int32, primitive metadata.PrimitiveTopology) {
	c.record(&metadata.DrawArrays{First: first, Count: count, Primitive: primitive})
}

// BindFramebuffer draws into f and fits the viewport to it.
func (c CommandBuffer) BindFramebuffer(f Framebuffer) {
	if f.Valid() {
		c.record(&metadata.BindFramebuffer{Framebuffer: f.ID})
	}
}

// UnbindFramebuffer returns drawing to the window and restores its viewport.
func (c CommandBuffer) UnbindFramebuffer() {
	c.record(&metadata.UnbindFramebuffer{})
}

func (c CommandBuffer) Clear(flags metadata.ClearFlag, colour metadata.Colour, depth float32) {
	c.record(&metadata.ClearFramebuffer{Flags: flags, Colour: colour, Depth: depth})
}

func (c CommandBuffer) SetBlend(enabled bool, src, dst metadata.BlendFactor) {
	c.record(&metadata.SetBlend{Enabled: enabled, Src: src, Dst: dst})
}

func (c CommandBuffer) SetDepthTest(enabled bool) {
	c.record(&metadata.SetDepthTest{Enabled: enabled})
}

func (c CommandBuffer) SetDepthMask(enabled bool) {
	c.record(&metadata.SetDepthMask{Enabled: enabled})
}

func (c CommandBuffer) SetCullFace(enabled bool, mode metadata.FaceCullMode) {
	c.record(&metadata.SetCullFace{Enabled: enabled, Mode: mode})
}

func (c CommandBuffer) SetScissorTest(enabled bool) {
	c.record(&metadata.SetScissorTest{Enabled: enabled})
}

func (c CommandBuffer) SetScissorRect(x, y, width, height int32) {
	c.record(&metadata.SetScissorRect{Rect: metadata.Rect{X: x, Y: y, Width: width, Height: height}})
}

func (c CommandBuffer) SetLineWidth(width float32) {
	c.record(&metadata.SetLineWidth{Width: width})
}

// Callback runs fn on the render thread when the buffer executes.
func (c CommandBuffer) Callback(fn func()) {
	if fn != nil {
		c.record(&metadata.ExecuteCallback{Fn: fn})
	}
}

func (c CommandBuffer) UpdateVertexBuffer(b VertexBuffer, offset int, data []byte) {
	// checked first so dropped updates do not copy
	if b.Valid() && c.Recording() {
		c.backend.RecordCommand(c.ID, metadata.NewUpdateVertexBuffer(b.ID, offset, data))
	}
}

func (c CommandBuffer) UpdateIndexBuffer(b IndexBuffer, offset int, data []byte) {
	if b.Valid() && c.Recording() {
		c.backend.RecordCommand(c.ID, metadata.NewUpdateIndexBuffer(b.ID, offset, data))
	}
}
