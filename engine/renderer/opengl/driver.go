package opengl

// Driver is the slice of the OpenGL 4.1 core API the backend issues. The real
// implementation lives in glcore; gltest records calls for tests.
type Driver interface {
	GetError() uint32
	GetString(name uint32) string
	Finish()

	Enable(capability uint32)
	Disable(capability uint32)
	Viewport(x, y, width, height int32)
	Scissor(x, y, width, height int32)
	BlendFunc(src, dst uint32)
	DepthMask(flag bool)
	CullFace(mode uint32)
	LineWidth(width float32)
	ClearColor(r, g, b, a float32)
	ClearDepth(depth float64)
	Clear(mask uint32)

	GenBuffer() uint32
	DeleteBuffer(buffer uint32)
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, size int, data []byte, usage uint32)
	BufferSubData(target uint32, offset int, data []byte)

	GenVertexArray() uint32
	DeleteVertexArray(array uint32)
	BindVertexArray(array uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int)
	VertexAttribIPointer(index uint32, size int32, xtype uint32, stride int32, offset int)

	CreateShader(xtype uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	// ShaderStatus reports COMPILE_STATUS and the info log.
	ShaderStatus(shader uint32) (bool, string)
	DeleteShader(shader uint32)
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	// ProgramStatus reports LINK_STATUS and the info log.
	ProgramStatus(program uint32) (bool, string)
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	GetUniformLocation(program uint32, name string) int32
	ProgramUniformMatrix4fv(program uint32, location int32, value [16]float32)
	ProgramUniform1i(program uint32, location int32, v int32)
	ProgramUniform1f(program uint32, location int32, v float32)
	ProgramUniform2f(program uint32, location int32, x, y float32)
	ProgramUniform3f(program uint32, location int32, x, y, z float32)
	ProgramUniform4f(program uint32, location int32, x, y, z, w float32)

	GenTexture() uint32
	DeleteTexture(texture uint32)
	ActiveTexture(unit uint32)
	BindTexture(target, texture uint32)
	TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte)
	TexSubImage2D(target uint32, level, x, y, width, height int32, format, xtype uint32, pixels []byte)
	TexParameteri(target, pname uint32, param int32)
	GenerateMipmap(target uint32)

	GenFramebuffer() uint32
	DeleteFramebuffer(framebuffer uint32)
	BindFramebuffer(target, framebuffer uint32)
	FramebufferTexture2D(target, attachment, textarget, texture uint32, level int32)
	DrawBuffers(buffers []uint32)
	CheckFramebufferStatus(target uint32) uint32
	ReadPixels(x, y, width, height int32, format, xtype uint32, pixels []byte)

	DrawElements(mode uint32, count int32, xtype uint32, offset int)
	DrawArrays(mode uint32, first, count int32)
}
