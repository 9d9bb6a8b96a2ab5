// Package gltest provides an instrumented OpenGL driver that records every call
// instead of talking to a GPU.
package gltest

import (
	"fmt"
	"strings"
)

const (
	noError             = 0x0
	framebufferComplete = 0x8CD5
)

// Call is one recorded driver invocation.
type Call struct {
	Name string
	Args []interface{}
}

func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = fmt.Sprint(a)
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Recorder implements opengl.Driver. Object names are handed out from one
// counter so every generated id is unique across object kinds.
type Recorder struct {
	calls  []Call
	nextID uint32

	// FailCompile makes every shader whose source contains the marker fail to compile.
	FailCompile string
	// FailLink makes program linking fail.
	FailLink bool
	// IncompleteFramebuffer makes CheckFramebufferStatus report an error.
	IncompleteFramebuffer bool
	// MissingUniforms are reported with location -1.
	MissingUniforms map[string]bool
	// PixelFill is written into every ReadPixels destination.
	PixelFill byte

	errors   []uint32
	sources  map[uint32]string
	uniforms map[uint32]map[string]int32
	strings  map[uint32]string
	finishes int
}

func New() *Recorder {
	return &Recorder{
		sources:  make(map[uint32]string),
		uniforms: make(map[uint32]map[string]int32),
		strings: map[uint32]string{
			0x1F00: "gltest",
			0x1F01: "recorder",
			0x1F02: "4.1 gltest",
		},
	}
}

func (r *Recorder) record(name string, args ...interface{}) {
	r.calls = append(r.calls, Call{Name: name, Args: args})
}

func (r *Recorder) gen() uint32 {
	r.nextID++
	return r.nextID
}

// PushError queues a code to be returned by the next GetError calls.
func (r *Recorder) PushError(code uint32) {
	r.errors = append(r.errors, code)
}

// Calls returns every recorded call in order.
func (r *Recorder) Calls() []Call {
	return r.calls
}

// Names returns the recorded call names in order.
func (r *Recorder) Names() []string {
	names := make([]string, len(r.calls))
	for i, c := range r.calls {
		names[i] = c.Name
	}
	return names
}

// Strings returns every recorded call formatted with its arguments.
func (r *Recorder) Strings() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.String()
	}
	return out
}

// Find returns the calls with the given name.
func (r *Recorder) Find(name string) []Call {
	var out []Call
	for _, c := range r.calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many times name was called.
func (r *Recorder) Count(name string) int {
	return len(r.Find(name))
}

// Index returns the position of the first call formatted as call at or after from, or -1.
func (r *Recorder) Index(call string, from int) int {
	for i := from; i < len(r.calls); i++ {
		if r.calls[i].String() == call {
			return i
		}
	}
	return -1
}

// Reset forgets the recorded calls but keeps generated objects.
func (r *Recorder) Reset() {
	r.calls = nil
}

// Finishes is the number of Finish calls seen.
func (r *Recorder) Finishes() int {
	return r.finishes
}

func (r *Recorder) GetError() uint32 {
	if len(r.errors) == 0 {
		return noError
	}
	code := r.errors[0]
	r.errors = r.errors[1:]
	r.record("GetError", code)
	return code
}

func (r *Recorder) GetString(name uint32) string {
	return r.strings[name]
}

func (r *Recorder) Finish() {
	r.finishes++
	r.record("Finish")
}

func (r *Recorder) Enable(capability uint32)  { r.record("Enable", capability) }
func (r *Recorder) Disable(capability uint32) { r.record("Disable", capability) }
func (r *Recorder) Viewport(x, y, width, height int32) {
	r.record("Viewport", x, y, width, height)
}
func (r *Recorder) Scissor(x, y, width, height int32) {
	r.record("Scissor", x, y, width, height)
}
func (r *Recorder) BlendFunc(src, dst uint32)      { r.record("BlendFunc", src, dst) }
func (r *Recorder) DepthMask(flag bool)            { r.record("DepthMask", flag) }
func (r *Recorder) CullFace(mode uint32)           { r.record("CullFace", mode) }
func (r *Recorder) LineWidth(width float32)        { r.record("LineWidth", width) }
func (r *Recorder) ClearColor(cr, g, b, a float32) { r.record("ClearColor", cr, g, b, a) }
func (r *Recorder) ClearDepth(depth float64)       { r.record("ClearDepth", depth) }
func (r *Recorder) Clear(mask uint32)              { r.record("Clear", mask) }

func (r *Recorder) GenBuffer() uint32 {
	id := r.gen()
	r.record("GenBuffer", id)
	return id
}

func (r *Recorder) DeleteBuffer(buffer uint32)       { r.record("DeleteBuffer", buffer) }
func (r *Recorder) BindBuffer(target, buffer uint32) { r.record("BindBuffer", target, buffer) }

// BufferData and BufferSubData record a copy of the bytes as they were at call time.
func (r *Recorder) BufferData(target uint32, size int, data []byte, usage uint32) {
	r.record("BufferData", target, size, append([]byte(nil), data...), usage)
}

func (r *Recorder) BufferSubData(target uint32, offset int, data []byte) {
	r.record("BufferSubData", target, offset, append([]byte(nil), data...))
}

func (r *Recorder) GenVertexArray() uint32 {
	id := r.gen()
	r.record("GenVertexArray", id)
	return id
}

func (r *Recorder) DeleteVertexArray(array uint32) { r.record("DeleteVertexArray", array) }
func (r *Recorder) BindVertexArray(array uint32)   { r.record("BindVertexArray", array) }
func (r *Recorder) EnableVertexAttribArray(index uint32) {
	r.record("EnableVertexAttribArray", index)
}

func (r *Recorder) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	r.record("VertexAttribPointer", index, size, xtype, normalized, stride, offset)
}

func (r *Recorder) VertexAttribIPointer(index uint32, size int32, xtype uint32, stride int32, offset int) {
	r.record("VertexAttribIPointer", index, size, xtype, stride, offset)
}

func (r *Recorder) CreateShader(xtype uint32) uint32 {
	id := r.gen()
	r.record("CreateShader", xtype, id)
	return id
}

func (r *Recorder) ShaderSource(shader uint32, source string) {
	r.sources[shader] = source
	r.record("ShaderSource", shader)
}

func (r *Recorder) CompileShader(shader uint32) { r.record("CompileShader", shader) }

func (r *Recorder) ShaderStatus(shader uint32) (bool, string) {
	if r.FailCompile != "" && strings.Contains(r.sources[shader], r.FailCompile) {
		return false, "0:1(1): error: " + r.FailCompile
	}
	return true, ""
}

func (r *Recorder) DeleteShader(shader uint32) { r.record("DeleteShader", shader) }

func (r *Recorder) CreateProgram() uint32 {
	id := r.gen()
	r.record("CreateProgram", id)
	return id
}

func (r *Recorder) AttachShader(program, shader uint32) { r.record("AttachShader", program, shader) }
func (r *Recorder) LinkProgram(program uint32)          { r.record("LinkProgram", program) }

func (r *Recorder) ProgramStatus(program uint32) (bool, string) {
	if r.FailLink {
		return false, "link error: gltest"
	}
	return true, ""
}

func (r *Recorder) DeleteProgram(program uint32) { r.record("DeleteProgram", program) }
func (r *Recorder) UseProgram(program uint32)    { r.record("UseProgram", program) }

// GetUniformLocation hands out locations per program in lookup order.
func (r *Recorder) GetUniformLocation(program uint32, name string) int32 {
	r.record("GetUniformLocation", program, name)
	if r.MissingUniforms[name] {
		return -1
	}
	locs, ok := r.uniforms[program]
	if !ok {
		locs = make(map[string]int32)
		r.uniforms[program] = locs
	}
	loc, ok := locs[name]
	if !ok {
		loc = int32(len(locs))
		locs[name] = loc
	}
	return loc
}

func (r *Recorder) ProgramUniformMatrix4fv(program uint32, location int32, value [16]float32) {
	r.record("ProgramUniformMatrix4fv", program, location, value)
}

func (r *Recorder) ProgramUniform1i(program uint32, location int32, v int32) {
	r.record("ProgramUniform1i", program, location, v)
}

func (r *Recorder) ProgramUniform1f(program uint32, location int32, v float32) {
	r.record("ProgramUniform1f", program, location, v)
}

func (r *Recorder) ProgramUniform2f(program uint32, location int32, x, y float32) {
	r.record("ProgramUniform2f", program, location, x, y)
}

func (r *Recorder) ProgramUniform3f(program uint32, location int32, x, y, z float32) {
	r.record("ProgramUniform3f", program, location, x, y, z)
}

func (r *Recorder) ProgramUniform4f(program uint32, location int32, x, y, z, w float32) {
	r.record("ProgramUniform4f", program, location, x, y, z, w)
}

func (r *Recorder) GenTexture() uint32 {
	id := r.gen()
	r.record("GenTexture", id)
	return id
}

func (r *Recorder) DeleteTexture(texture uint32)       { r.record("DeleteTexture", texture) }
func (r *Recorder) ActiveTexture(unit uint32)          { r.record("ActiveTexture", unit) }
func (r *Recorder) BindTexture(target, texture uint32) { r.record("BindTexture", target, texture) }
func (r *Recorder) GenerateMipmap(target uint32)       { r.record("GenerateMipmap", target) }

func (r *Recorder) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte) {
	r.record("TexImage2D", target, level, internalFormat, width, height, format, xtype, len(pixels))
}

func (r *Recorder) TexSubImage2D(target uint32, level, x, y, width, height int32, format, xtype uint32, pixels []byte) {
	r.record("TexSubImage2D", target, level, x, y, width, height, format, xtype, len(pixels))
}

func (r *Recorder) TexParameteri(target, pname uint32, param int32) {
	r.record("TexParameteri", target, pname, param)
}

func (r *Recorder) GenFramebuffer() uint32 {
	id := r.gen()
	r.record("GenFramebuffer", id)
	return id
}

func (r *Recorder) DeleteFramebuffer(framebuffer uint32) { r.record("DeleteFramebuffer", framebuffer) }
func (r *Recorder) BindFramebuffer(target, framebuffer uint32) {
	r.record("BindFramebuffer", target, framebuffer)
}

func (r *Recorder) FramebufferTexture2D(target, attachment, textarget, texture uint32, level int32) {
	r.record("FramebufferTexture2D", target, attachment, textarget, texture, level)
}

func (r *Recorder) DrawBuffers(buffers []uint32) {
	r.record("DrawBuffers", append([]uint32(nil), buffers...))
}

func (r *Recorder) CheckFramebufferStatus(target uint32) uint32 {
	r.record("CheckFramebufferStatus", target)
	if r.IncompleteFramebuffer {
		return 0x8CD6
	}
	return framebufferComplete
}

func (r *Recorder) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels []byte) {
	for i := range pixels {
		pixels[i] = r.PixelFill
	}
	r.record("ReadPixels", x, y, width, height, format, xtype)
}

func (r *Recorder) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	r.record("DrawElements", mode, count, xtype, offset)
}

func (r *Recorder) DrawArrays(mode uint32, first, count int32) {
	r.record("DrawArrays", mode, first, count)
}
