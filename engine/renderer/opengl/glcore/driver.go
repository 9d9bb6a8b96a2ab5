// Package glcore implements opengl.Driver on top of the go-gl 4.1 core bindings.
package glcore

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/spaghettifunk/prism/engine/core"
)

type Driver struct{}

// New loads the GL entry points through getProcAddress. The context must be
// current on the calling thread.
func New(getProcAddress func(name string) unsafe.Pointer) (*Driver, error) {
	if getProcAddress == nil {
		return nil, fmt.Errorf("%w: no proc address loader", core.ErrDriverLoad)
	}
	if err := gl.InitWithProcAddrFunc(getProcAddress); err != nil {
		core.LogError("failed to initialize OpenGL: %s", err)
		return nil, fmt.Errorf("%w: %s", core.ErrDriverLoad, err)
	}
	d := &Driver{}
	core.LogInfo("OpenGL %s on %s", d.GetString(gl.VERSION), d.GetString(gl.RENDERER))
	return d, nil
}

func ptr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return gl.Ptr(data)
}

func (d *Driver) GetError() uint32 { return gl.GetError() }

func (d *Driver) GetString(name uint32) string {
	s := gl.GetString(name)
	if s == nil {
		return ""
	}
	return gl.GoStr(s)
}

func (d *Driver) Finish() { gl.Finish() }

func (d *Driver) Enable(capability uint32)           { gl.Enable(capability) }
func (d *Driver) Disable(capability uint32)          { gl.Disable(capability) }
func (d *Driver) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }
func (d *Driver) Scissor(x, y, width, height int32)  { gl.Scissor(x, y, width, height) }
func (d *Driver) BlendFunc(src, dst uint32)          { gl.BlendFunc(src, dst) }
func (d *Driver) DepthMask(flag bool)                { gl.DepthMask(flag) }
func (d *Driver) CullFace(mode uint32)               { gl.CullFace(mode) }
func (d *Driver) LineWidth(width float32)            { gl.LineWidth(width) }
func (d *Driver) ClearColor(r, g, b, a float32)      { gl.ClearColor(r, g, b, a) }
func (d *Driver) ClearDepth(depth float64)           { gl.ClearDepth(depth) }
func (d *Driver) Clear(mask uint32)                  { gl.Clear(mask) }

func (d *Driver) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (d *Driver) DeleteBuffer(buffer uint32)       { gl.DeleteBuffers(1, &buffer) }
func (d *Driver) BindBuffer(target, buffer uint32) { gl.BindBuffer(target, buffer) }

func (d *Driver) BufferData(target uint32, size int, data []byte, usage uint32) {
	gl.BufferData(target, size, ptr(data), usage)
}

func (d *Driver) BufferSubData(target uint32, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	gl.BufferSubData(target, offset, len(data), gl.Ptr(data))
}

func (d *Driver) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (d *Driver) DeleteVertexArray(array uint32)       { gl.DeleteVertexArrays(1, &array) }
func (d *Driver) BindVertexArray(array uint32)         { gl.BindVertexArray(array) }
func (d *Driver) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (d *Driver) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(index, size, xtype, normalized, stride, uintptr(offset))
}

func (d *Driver) VertexAttribIPointer(index uint32, size int32, xtype uint32, stride int32, offset int) {
	gl.VertexAttribIPointer(index, size, xtype, stride, gl.PtrOffset(offset))
}

func (d *Driver) CreateShader(xtype uint32) uint32 { return gl.CreateShader(xtype) }

func (d *Driver) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (d *Driver) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (d *Driver) ShaderStatus(shader uint32) (bool, string) {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.TRUE {
		return true, ""
	}
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return false, strings.TrimRight(log, "\x00")
}

func (d *Driver) DeleteShader(shader uint32)          { gl.DeleteShader(shader) }
func (d *Driver) CreateProgram() uint32               { return gl.CreateProgram() }
func (d *Driver) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }
func (d *Driver) LinkProgram(program uint32)          { gl.LinkProgram(program) }

func (d *Driver) ProgramStatus(program uint32) (bool, string) {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.TRUE {
		return true, ""
	}
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return false, strings.TrimRight(log, "\x00")
}

func (d *Driver) DeleteProgram(program uint32) { gl.DeleteProgram(program) }
func (d *Driver) UseProgram(program uint32)    { gl.UseProgram(program) }

func (d *Driver) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Driver) ProgramUniformMatrix4fv(program uint32, location int32, value [16]float32) {
	gl.ProgramUniformMatrix4fv(program, location, 1, false, &value[0])
}

func (d *Driver) ProgramUniform1i(program uint32, location int32, v int32) {
	gl.ProgramUniform1i(program, location, v)
}

func (d *Driver) ProgramUniform1f(program uint32, location int32, v float32) {
	gl.ProgramUniform1f(program, location, v)
}

func (d *Driver) ProgramUniform2f(program uint32, location int32, x, y float32) {
	gl.ProgramUniform2f(program, location, x, y)
}

func (d *Driver) ProgramUniform3f(program uint32, location int32, x, y, z float32) {
	gl.ProgramUniform3f(program, location, x, y, z)
}

func (d *Driver) ProgramUniform4f(program uint32, location int32, x, y, z, w float32) {
	gl.ProgramUniform4f(program, location, x, y, z, w)
}

func (d *Driver) GenTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	return id
}

func (d *Driver) DeleteTexture(texture uint32)       { gl.DeleteTextures(1, &texture) }
func (d *Driver) ActiveTexture(unit uint32)          { gl.ActiveTexture(unit) }
func (d *Driver) BindTexture(target, texture uint32) { gl.BindTexture(target, texture) }
func (d *Driver) GenerateMipmap(target uint32)       { gl.GenerateMipmap(target) }
func (d *Driver) TexParameteri(target, pname uint32, param int32) {
	gl.TexParameteri(target, pname, param)
}

func (d *Driver) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte) {
	gl.TexImage2D(target, level, internalFormat, width, height, 0, format, xtype, ptr(pixels))
}

func (d *Driver) TexSubImage2D(target uint32, level, x, y, width, height int32, format, xtype uint32, pixels []byte) {
	gl.TexSubImage2D(target, level, x, y, width, height, format, xtype, ptr(pixels))
}

func (d *Driver) GenFramebuffer() uint32 {
	var id uint32
	gl.GenFramebuffers(1, &id)
	return id
}

func (d *Driver) DeleteFramebuffer(framebuffer uint32)       { gl.DeleteFramebuffers(1, &framebuffer) }
func (d *Driver) BindFramebuffer(target, framebuffer uint32) { gl.BindFramebuffer(target, framebuffer) }

func (d *Driver) FramebufferTexture2D(target, attachment, textarget, texture uint32, level int32) {
	gl.FramebufferTexture2D(target, attachment, textarget, texture, level)
}

func (d *Driver) DrawBuffers(buffers []uint32) {
	if len(buffers) == 0 {
		return
	}
	gl.DrawBuffers(int32(len(buffers)), &buffers[0])
}

func (d *Driver) CheckFramebufferStatus(target uint32) uint32 {
	return gl.CheckFramebufferStatus(target)
}

func (d *Driver) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels []byte) {
	gl.ReadPixels(x, y, width, height, format, xtype, ptr(pixels))
}

func (d *Driver) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	gl.DrawElementsWithOffset(mode, count, xtype, uintptr(offset))
}

func (d *Driver) DrawArrays(mode uint32, first, count int32) { gl.DrawArrays(mode, first, count) }
