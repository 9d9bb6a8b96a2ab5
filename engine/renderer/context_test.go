package renderer

import (
	"image"
	"image/color"
	"io"
	"os"
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/prism/engine/core"
	"github.com/spaghettifunk/prism/engine/renderer/metadata"
	"github.com/spaghettifunk/prism/engine/renderer/opengl"
	"github.com/spaghettifunk/prism/engine/renderer/opengl/gltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	glFramebuffer = 0x8D40
	glScissorTest = 0x0C11
)

func TestMain(m *testing.M) {
	core.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

type fakeWindow struct {
	current       bool
	width, height int
}

func (w *fakeWindow) MakeContextCurrent()                    { w.current = true }
func (w *fakeWindow) ProcAddress(name string) unsafe.Pointer { return nil }
func (w *fakeWindow) FramebufferSize() (int, int)            { return w.width, w.height }

func newTestContext(t *testing.T) (*Context, *gltest.Recorder) {
	t.Helper()
	rec := gltest.New()
	ctx, err := New(OpenGL, nil, WithBackend(opengl.New(rec)), WithSize(640, 480))
	require.NoError(t, err)
	rec.Reset()
	return ctx, rec
}

func call(name string, args ...interface{}) string {
	return gltest.Call{Name: name, Args: args}.String()
}

func triangle(t *testing.T, ctx *Context) (Shader, VertexArray, IndexBuffer) {
	t.Helper()
	shader := ctx.CreateShader("void main() {}", "void main() {}")
	vb := ctx.CreateVertexBuffer(AsBytes([]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}), metadata.BufferUsageStatic)
	ib := ctx.CreateIndexBuffer([]uint32{0, 1, 2}, metadata.BufferUsageStatic)
	vao := ctx.CreateVertexArray(vb, ib, metadata.VertexLayout{
		Attributes: []metadata.VertexAttribute{{Components: 3, Type: metadata.VertexAttributeFloat32}},
	})
	require.True(t, shader.Valid())
	require.True(t, vao.Valid())
	return shader, vao, ib
}

func TestZeroHandlesAreInvalid(t *testing.T) {
	assert.False(t, VertexBuffer{}.Valid())
	assert.False(t, IndexBuffer{}.Valid())
	assert.False(t, VertexArray{}.Valid())
	assert.False(t, Shader{}.Valid())
	assert.False(t, Texture2D{}.Valid())
	assert.False(t, TextureCube{}.Valid())
	assert.False(t, Framebuffer{}.Valid())
	assert.False(t, CommandBuffer{}.Valid())

	// an id without a backend is not enough
	assert.False(t, Shader{ID: 3}.Valid())
	assert.False(t, CommandBuffer{ID: 1}.Valid())

	// and nothing happens when used
	var cb CommandBuffer
	cb.Begin()
	cb.DrawIndexed(3, metadata.IndexTypeUint32, 0, metadata.PrimitiveTriangles)
	cb.Submit()
	cb.Release()
	assert.Zero(t, cb.Len())
}

func TestFactoriesStampBackend(t *testing.T) {
	ctx, _ := newTestContext(t)
	shader, vao, ib := triangle(t, ctx)
	assert.Equal(t, ctx.backend, shader.backend)
	assert.Equal(t, ctx.backend, vao.backend)
	assert.Equal(t, uint32(3), ib.Count)
	assert.Equal(t, 12, ib.Size)

	tex := ctx.CreateTexture2D(metadata.TextureConfig{Width: 1, Height: 1}, []byte{1, 2, 3, 4})
	assert.True(t, tex.Valid())
	depth := ctx.CreateDepthTexture(32, 32)
	assert.True(t, depth.Valid())
	assert.Equal(t, metadata.TextureFormatDepth24, depth.Format)

	fb := ctx.CreateFramebuffer(metadata.FramebufferConfig{Width: 16, Height: 16, ColourAttachments: 2, Depth: true})
	require.True(t, fb.Valid())
	require.Len(t, fb.Colour, 2)
	assert.True(t, fb.ColourAttachment(1).Valid())
	assert.False(t, fb.ColourAttachment(2).Valid())
	assert.True(t, fb.Depth.Valid())

	cb := ctx.CreateCommandBuffer()
	assert.True(t, cb.Valid())
}

func TestFramebufferReleaseLeavesCopies(t *testing.T) {
	ctx, rec := newTestContext(t)
	fb := ctx.CreateFramebuffer(metadata.FramebufferConfig{Width: 4, Height: 4, ColourAttachments: 2, Depth: true})
	require.True(t, fb.Valid())
	other := fb
	colour := other.Colour[1].ID

	fb.Release()
	assert.Nil(t, fb.Colour)
	assert.False(t, fb.Depth.Valid())
	assert.Equal(t, colour, other.Colour[1].ID, "the copy is not rewritten")
	assert.True(t, other.Depth.Valid())

	// the object is gone, so releasing through the copy reaches nothing
	other.Release()
	assert.Equal(t, 1, rec.Count("DeleteFramebuffer"))
	assert.Equal(t, 3, rec.Count("DeleteTexture"))
	assert.Empty(t, ctx.LiveResources())
}

func TestUpdateGrowsHandle(t *testing.T) {
	ctx, rec := newTestContext(t)
	vb := ctx.CreateVertexBuffer(make([]byte, 8), metadata.BufferUsageDynamic)
	ib := ctx.CreateIndexBuffer([]uint32{0, 1, 2}, metadata.BufferUsageDynamic)
	stale := ib
	ctx.BeginFrame()
	cb := ctx.CreateCommandBuffer()

	// not recording: nothing is written and the handles keep their size
	vb.Update(cb, 0, make([]byte, 64))
	assert.Equal(t, 8, vb.Size)

	cb.Begin()
	vb.Update(cb, 0, make([]byte, 16))
	ib.Update(cb, 0, AsBytes([]uint32{0, 1, 2, 2, 1, 3}))
	ib.Update(cb, 8, AsBytes([]uint32{7, 7, 7}))
	cb.DrawIndexBuffer(ib, metadata.PrimitiveTriangles)
	cb.End()
	cb.Submit()

	assert.Equal(t, 16, vb.Size)
	assert.Equal(t, 24, ib.Size)
	assert.Equal(t, uint32(6), ib.Count, "a write at a non zero offset does not grow")
	assert.Equal(t, uint32(3), stale.Count)

	rec.Reset()
	ctx.EndFrame()
	assert.Equal(t, 2, rec.Count("BufferData"), "both growing writes reallocate")
	assert.Equal(t, 1, rec.Count("BufferSubData"))
	cmds := cb.Commands()
	require.NotEmpty(t, cmds)
	draw, ok := cmds[len(cmds)-1].(*metadata.DrawIndexed)
	require.True(t, ok)
	assert.Equal(t, uint32(6), draw.Count)
}

func TestFailedCreationYieldsInvalidHandle(t *testing.T) {
	ctx, rec := newTestContext(t)
	rec.FailCompile = "oops"
	assert.False(t, ctx.CreateShader("oops", "void main() {}").Valid())
	assert.False(t, ctx.CreateVertexArray(VertexBuffer{}, IndexBuffer{}, metadata.VertexLayout{}).Valid())
	assert.False(t, ctx.CreateTextureCube(metadata.TextureConfig{Width: 2, Height: 1}, [metadata.CubeFaceCount][]byte{}).Valid())
	rec.IncompleteFramebuffer = true
	assert.False(t, ctx.CreateFramebuffer(metadata.FramebufferConfig{Width: 4, Height: 4, ColourAttachments: 1}).Valid())
}

func TestReleaseIsIdempotent(t *testing.T) {
	ctx, rec := newTestContext(t)
	shader, vao, ib := triangle(t, ctx)
	tex := ctx.CreateTexture2D(metadata.TextureConfig{Width: 1, Height: 1}, nil)
	fb := ctx.CreateFramebuffer(metadata.FramebufferConfig{Width: 4, Height: 4, ColourAttachments: 1})
	cb := ctx.CreateCommandBuffer()

	for i := 0; i < 2; i++ {
		shader.Release()
		vao.Release()
		ib.Release()
		tex.Release()
		fb.Release()
		cb.Release()
	}
	assert.False(t, shader.Valid())
	assert.False(t, vao.Valid())
	assert.False(t, ib.Valid())
	assert.False(t, tex.Valid())
	assert.False(t, fb.Valid())
	assert.False(t, fb.ColourAttachment(0).Valid())
	assert.False(t, cb.Valid())

	assert.Equal(t, 1, rec.Count("DeleteProgram"))
	assert.Equal(t, 1, rec.Count("DeleteVertexArray"))
	assert.Equal(t, 1, rec.Count("DeleteFramebuffer"))
	assert.Equal(t, 1, rec.Count("DeleteBuffer"))
	assert.Equal(t, 2, rec.Count("DeleteTexture"))
}

func TestCommandsOutsideBeginEndAreDropped(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.BeginFrame()
	cb := ctx.CreateCommandBuffer()

	cb.SetDepthTest(true)
	cb.Begin()
	assert.True(t, cb.Recording())
	cb.SetViewport(0, 0, 10, 10)
	cb.SetLineWidth(2)
	cb.End()
	cb.SetScissorTest(true)

	cmds := cb.Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, metadata.CommandSetViewport, cmds[0].Kind())
	assert.Equal(t, metadata.CommandSetLineWidth, cmds[1].Kind())
	assert.False(t, cb.Recording())
}

func TestInvalidHandlesAreNotRecorded(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.BeginFrame()
	cb := ctx.CreateCommandBuffer()
	cb.Begin()
	cb.BindShader(Shader{})
	cb.BindVertexArray(VertexArray{})
	cb.BindTexture(Texture2D{}, 0, "u_tex")
	cb.BindTextureCube(TextureCube{}, 1, "")
	cb.BindFramebuffer(Framebuffer{})
	cb.UpdateVertexBuffer(VertexBuffer{}, 0, []byte{1})
	cb.DrawIndexBuffer(IndexBuffer{}, metadata.PrimitiveTriangles)
	Shader{}.SetFloat(cb, "u_time", 1)
	cb.Callback(nil)
	cb.End()
	assert.Zero(t, cb.Len())
}

func TestSubmissionOrderAcrossBuffers(t *testing.T) {
	ctx, rec := newTestContext(t)
	ctx.BeginFrame()
	a := ctx.CreateCommandBuffer()
	b := ctx.CreateCommandBuffer()

	a.Begin()
	a.SetLineWidth(2)
	a.SetLineWidth(3)
	a.End()
	b.Begin()
	b.SetLineWidth(4)
	b.End()

	a.Submit()
	b.Submit()
	assert.Zero(t, rec.Count("LineWidth"), "submit does not execute")
	ctx.EndFrame()

	var widths []interface{}
	for _, c := range rec.Find("LineWidth") {
		widths = append(widths, c.Args[0])
	}
	assert.Equal(t, []interface{}{float32(2), float32(3), float32(4)}, widths)
}

func TestUpdateCopiesAtRecordTime(t *testing.T) {
	ctx, rec := newTestContext(t)
	vb := ctx.CreateVertexBuffer(make([]byte, 8), metadata.BufferUsageDynamic)
	ctx.BeginFrame()
	cb := ctx.CreateCommandBuffer()

	payload := []byte{1, 2, 3, 4}
	cb.Begin()
	vb.Update(cb, 4, payload)
	cb.End()
	cb.Submit()
	copy(payload, []byte{9, 9, 9, 9})
	ctx.EndFrame()

	sub := rec.Find("BufferSubData")
	require.Len(t, sub, 1)
	assert.Equal(t, 4, sub[0].Args[1])
	assert.Equal(t, []byte{1, 2, 3, 4}, sub[0].Args[2])
}

func TestUniformSettersRecord(t *testing.T) {
	ctx, rec := newTestContext(t)
	shader, _, _ := triangle(t, ctx)
	ctx.BeginFrame()
	cb := ctx.CreateCommandBuffer()
	cb.Begin()
	shader.SetMat4(cb, "u_mvp", mgl32.Ident4())
	shader.SetVec2(cb, "u_a", mgl32.Vec2{1, 2})
	shader.SetVec3(cb, "u_b", mgl32.Vec3{1, 2, 3})
	shader.SetVec4(cb, "u_c", mgl32.Vec4{1, 2, 3, 4})
	shader.SetInt(cb, "u_d", 7)
	shader.SetFloat(cb, "u_e", 0.5)
	cb.End()
	cb.Submit()
	ctx.EndFrame()

	for _, name := range []string{"ProgramUniformMatrix4fv", "ProgramUniform2f", "ProgramUniform3f", "ProgramUniform4f", "ProgramUniform1i", "ProgramUniform1f"} {
		assert.Equal(t, 1, rec.Count(name), name)
	}
}

func TestDrawWithInvalidVertexArrayIsNoop(t *testing.T) {
	ctx, rec := newTestContext(t)
	shader, _, _ := triangle(t, ctx)
	ctx.BeginFrame()
	cb := ctx.CreateCommandBuffer()
	cb.Begin()
	cb.BindShader(shader)
	cb.BindVertexArray(VertexArray{})
	cb.DrawIndexed(3, metadata.IndexTypeUint32, 0, metadata.PrimitiveTriangles)
	cb.End()
	cb.Submit()
	ctx.EndFrame()

	assert.Zero(t, rec.Count("DrawElements"))
	assert.Equal(t, 1, ctx.Stats().SkippedDraws)
}

func TestDrawIndexBuffer(t *testing.T) {
	ctx, rec := newTestContext(t)
	shader, vao, ib := triangle(t, ctx)
	ctx.BeginFrame()
	cb := ctx.CreateCommandBuffer()
	cb.Begin()
	cb.BindShader(shader)
	cb.BindVertexArray(vao)
	cb.DrawIndexBuffer(ib, metadata.PrimitiveTriangles)
	cb.End()
	cb.Submit()
	cb.Submit()
	ctx.EndFrame()

	assert.Equal(t, 2, rec.Count("DrawElements"), "double submit draws twice")
	assert.Equal(t, 2, ctx.Stats().DrawCalls)
}

func TestBuffersAreIsolated(t *testing.T) {
	ctx, rec := newTestContext(t)
	fb := ctx.CreateFramebuffer(metadata.FramebufferConfig{Width: 64, Height: 64, ColourAttachments: 1})
	require.True(t, fb.Valid())
	ctx.BeginFrame()

	a := ctx.CreateCommandBuffer()
	a.Begin()
	a.BindFramebuffer(fb)
	a.SetScissorTest(true)
	a.SetScissorRect(0, 0, 8, 8)
	a.End()

	b := ctx.CreateCommandBuffer()
	b.Begin()
	b.SetLineWidth(5)
	b.End()

	a.Submit()
	b.Submit()
	rec.Reset()
	ctx.EndFrame()

	scissor := rec.Index(call("Scissor", 0, 0, 8, 8), 0)
	first := rec.Index(call("LineWidth", float32(5)), 0)
	require.NotEqual(t, -1, scissor)
	require.NotEqual(t, -1, first)

	unbind := rec.Index(call("BindFramebuffer", glFramebuffer, 0), scissor)
	disable := rec.Index(call("Disable", glScissorTest), scissor)
	assert.True(t, unbind > scissor && unbind < first)
	assert.True(t, disable > unbind && disable < first)
	assert.NotEqual(t, -1, rec.Index(call("Viewport", 0, 0, 640, 480), disable))
}

func TestBeginFrameDropsRecordedCommands(t *testing.T) {
	ctx, rec := newTestContext(t)
	ctx.BeginFrame()
	a := ctx.CreateCommandBuffer()
	b := ctx.CreateCommandBuffer()
	for _, cb := range []CommandBuffer{a, b} {
		cb.Begin()
		cb.SetLineWidth(2)
		cb.End()
	}
	ctx.EndFrame()
	rec.Reset()

	ctx.BeginFrame()
	for _, cb := range []CommandBuffer{a, b} {
		cb.SetLineWidth(3)
		assert.Zero(t, cb.Len())
		cb.Submit()
	}
	ctx.EndFrame()
	assert.Zero(t, rec.Count("LineWidth"))

	// cached handles keep working after a new Begin
	ctx.BeginFrame()
	a.Begin()
	a.SetLineWidth(4)
	a.End()
	a.Submit()
	ctx.EndFrame()
	assert.Equal(t, 1, rec.Count("LineWidth"))
}

func TestFlushWaitsAndReopens(t *testing.T) {
	ctx, rec := newTestContext(t)
	fb := ctx.CreateFramebuffer(metadata.FramebufferConfig{Width: 2, Height: 2, ColourAttachments: 1})
	rec.PixelFill = 255
	ctx.BeginFrame()
	cb := ctx.CreateCommandBuffer()
	cb.Begin()
	cb.BindFramebuffer(fb)
	cb.Clear(metadata.ClearColourBuffer, metadata.Colour{R: 1, A: 1}, 1)
	cb.End()
	cb.Submit()

	ctx.Flush()
	assert.Equal(t, 1, rec.Finishes())
	assert.Equal(t, 1, rec.Count("Clear"))
	assert.Equal(t, uint64(2), ctx.FrameNumber())

	pixels := ctx.ReadPixels(fb, metadata.Rect{Width: 2, Height: 2})
	assert.Len(t, pixels, 16)
	assert.Equal(t, byte(255), pixels[0])
	ctx.EndFrame()
}

func TestResizeEvent(t *testing.T) {
	ctx, rec := newTestContext(t)
	bus := core.NewEventBus()
	require.True(t, bus.Register(core.EVENT_CODE_RESIZED, ctx, ctx.OnEvent))

	var data core.EventContext
	data.Data.U32[0] = 1920
	data.Data.U32[1] = 1080
	bus.Fire(core.EVENT_CODE_RESIZED, nil, data)

	w, h := ctx.Size()
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)
	ctx.BeginFrame()
	ctx.EndFrame()
	assert.Equal(t, []string{call("Viewport", 0, 0, 1920, 1080)}, rec.Strings())
}

func TestDefaultsAreExplicitAndReleased(t *testing.T) {
	ctx, rec := newTestContext(t)
	assert.Nil(t, ctx.Defaults(), "nothing is created behind the caller's back")
	assert.Empty(t, ctx.LiveResources())

	d := ctx.CreateDefaults()
	require.NotNil(t, d)
	assert.Same(t, d, ctx.Defaults())
	assert.Same(t, d, ctx.CreateDefaults())
	assert.True(t, d.White.Valid())
	assert.True(t, d.BlackCube.Valid())
	assert.True(t, d.Cube.Valid())
	assert.Equal(t, uint32(36), d.CubeIndices.Count)
	assert.Equal(t, metadata.IndexTypeUint16, d.CubeIndices.IndexType)
	assert.Len(t, ctx.LiveResources(), 5)

	rec.Reset()
	require.NoError(t, ctx.Shutdown())
	assert.Equal(t, 2, rec.Count("DeleteTexture"))
	assert.Equal(t, 2, rec.Count("DeleteBuffer"))
	assert.Equal(t, 1, rec.Count("DeleteVertexArray"))
	assert.ErrorIs(t, ctx.Shutdown(), core.ErrNotInitialized)
	assert.False(t, ctx.CreateCommandBuffer().Valid())
	assert.Nil(t, ctx.CreateDefaults(), "no defaults on a shut down context")
}

func TestUnitCube(t *testing.T) {
	vertices, indices := UnitCube()
	require.Len(t, vertices, 24)
	require.Len(t, indices, 36)
	assert.Equal(t, 32, int(unsafe.Sizeof(CubeVertex{})))
	for _, v := range vertices {
		for i := 0; i < 3; i++ {
			assert.InDelta(t, 0.5, float64(mgl32.Abs(v.Position[i])), 1e-6)
		}
		// every vertex lies on the face its normal points at
		assert.InDelta(t, 0.5, float64(v.Position.Dot(v.Normal)), 1e-6)
	}
	for i := 0; i < len(indices); i += 3 {
		a, b, c := vertices[indices[i]], vertices[indices[i+1]], vertices[indices[i+2]]
		n := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position))
		assert.Greater(t, n.Dot(a.Normal), float32(0), "triangle %d winds clockwise", i/3)
	}
}

func TestImageToRGBAFlipsRows(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 1, color.NRGBA{B: 255, A: 255})

	pixels, w, h := ImageToRGBA(img)
	require.Len(t, pixels, 16)
	assert.Equal(t, uint32(2), w)
	assert.Equal(t, uint32(2), h)
	// the top left texel ends up in the last row
	assert.Equal(t, []byte{255, 0, 0, 255}, pixels[8:12])
	assert.Equal(t, []byte{0, 0, 255, 255}, pixels[4:8])
}

func TestCreateTexturesFromImages(t *testing.T) {
	ctx, rec := newTestContext(t)
	tex := ctx.CreateTexture2DFromImage("checker", image.NewRGBA(image.Rect(0, 0, 4, 2)), true)
	require.True(t, tex.Valid())
	assert.Equal(t, uint32(4), tex.Width)
	assert.Equal(t, uint32(2), tex.Height)
	assert.False(t, ctx.CreateTexture2DFromImage("empty", image.NewRGBA(image.Rectangle{}), false).Valid())

	var faces [metadata.CubeFaceCount]image.Image
	for i := range faces {
		faces[i] = image.NewRGBA(image.Rect(0, 0, 4, 4))
	}
	faces[5] = image.NewRGBA(image.Rect(0, 0, 8, 8))
	rec.Reset()
	cube := ctx.CreateTextureCubeFromImages("sky", faces)
	require.True(t, cube.Valid())
	assert.Equal(t, uint32(4), cube.Size)
	uploads := rec.Find("TexImage2D")
	require.Len(t, uploads, metadata.CubeFaceCount)
	for _, u := range uploads {
		assert.Equal(t, 64, u.Args[7])
	}
}

func TestUnknownAPIs(t *testing.T) {
	for _, api := range []API{DirectX, Metal} {
		_, err := New(api, &fakeWindow{}, WithSize(1, 1))
		assert.ErrorIs(t, err, core.ErrBackendUnsupported, api.String())
	}
	_, err := New(Vulkan, nil, WithBackend(opengl.New(gltest.New())))
	assert.ErrorIs(t, err, core.ErrBackendUnsupported)
}

func TestRegisteredBackendUsesWindow(t *testing.T) {
	rec := gltest.New()
	RegisterBackend(DirectX, func(win Window, cfg BackendConfig) (Backend, error) {
		return &directXStandIn{Backend: opengl.New(rec, opengl.WithErrorChecks(cfg.CheckErrors))}, nil
	})
	t.Cleanup(func() { delete(factories, DirectX) })

	_, err := New(DirectX, nil)
	assert.ErrorIs(t, err, core.ErrNoWindow)

	win := &fakeWindow{width: 300, height: 200}
	ctx, err := New(DirectX, win, WithErrorChecks(true))
	require.NoError(t, err)
	assert.True(t, win.current)
	w, h := ctx.Size()
	assert.Equal(t, 300, w)
	assert.Equal(t, 200, h)
	assert.NotEqual(t, -1, rec.Index(call("Viewport", 0, 0, 300, 200), 0))
}

// directXStandIn reports DirectX so the registry can be exercised with the GL backend.
type directXStandIn struct {
	Backend
}

func (directXStandIn) API() metadata.GraphicsAPI { return metadata.DirectX }
